package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractWithPDFCPU reads the document with pdfcpu and scans each
// page's content stream for text-showing operators. This is cruder
// than a proper text extractor but it reliably surfaces the payload
// delimiters, which is all the restore pipeline needs from a document
// ledongthuc could not open.
func extractWithPDFCPU(path string) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", 0, fmt.Errorf("pdfcpu read: %w", err)
	}

	var pageTexts []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageText := extractPageText(ctx, pageNr)
		if pageText == "" {
			continue
		}
		pageTexts = append(pageTexts, pageText)
	}

	return strings.Join(pageTexts, "\n"), ctx.PageCount, nil
}

func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return scanContentStream(data)
}

// literalPattern matches PDF literal strings: (text).
var literalPattern = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// scanContentStream pulls the string operands of Tj/TJ/' operators out
// of a raw content stream. Positioning operators become whitespace so
// delimiters on adjacent lines do not fuse into one token.
func scanContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Writers differ on layout: some put one operator per line,
		// others pack a whole BT..ET block onto one. Look for the
		// operators anywhere in the line.
		showsText := bytes.Contains(line, []byte("Tj")) ||
			bytes.Contains(line, []byte("TJ")) ||
			bytes.Contains(line, []byte(") '"))
		if showsText {
			for _, m := range literalPattern.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeLiteral(m[1]))
			}
			sb.WriteByte('\n')
			continue
		}
		if bytes.Contains(line, []byte("Td")) ||
			bytes.Contains(line, []byte("TD")) ||
			bytes.Equal(line, []byte("T*")) {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}

// decodeLiteral resolves the escape sequences PDF allows inside a
// literal string.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b', 'f':
			// Ignored: never meaningful in form text.
		case '(', ')', '\\':
			sb.WriteByte(raw[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// Octal escape, up to three digits.
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		default:
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
