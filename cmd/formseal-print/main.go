// formseal-print renders a saved form state (a JSON file) as the
// printable PDF test report, or restores a state from an existing
// report. It is the batch counterpart to the MCP tools.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/switchlab/formseal/internal/form"
	"github.com/switchlab/formseal/internal/pdf"
	"github.com/switchlab/formseal/internal/print"
	"github.com/switchlab/formseal/internal/restore"
)

var (
	output  = flag.String("output", "", "Output path (defaults to the input name with a new extension)")
	doBlank = flag.Bool("blank", false, "Render a blank form with default values")
	help    = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if *doBlank {
		out := *output
		if out == "" {
			out = "blank-form.pdf"
		}
		if err := renderState(form.DefaultState(), out); err != nil {
			fatal(err)
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: input file required\n\n")
		printUsage()
		os.Exit(1)
	}

	input := flag.Arg(0)
	if _, err := os.Stat(input); os.IsNotExist(err) {
		fatal(fmt.Errorf("file not found: %s", input))
	}

	var err error
	switch filepath.Ext(input) {
	case ".json":
		err = renderFromJSON(input, *output)
	case ".pdf":
		err = restoreToJSON(input, *output)
	default:
		err = fmt.Errorf("input must be a .json state file or a .pdf report, got %s", input)
	}
	if err != nil {
		fatal(err)
	}
}

func renderFromJSON(input, out string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	state := &form.State{}
	if err := json.Unmarshal(data, state); err != nil {
		return fmt.Errorf("%s is not a valid form state: %w", input, err)
	}

	if out == "" {
		out = replaceExt(input, ".pdf")
	}
	return renderState(state, out)
}

func restoreToJSON(input, out string) error {
	extractor := pdf.NewExtractor(pdf.DefaultMaxFileSize)
	pipeline, err := restore.NewPipeline(extractor)
	if err != nil {
		return err
	}

	state, err := pipeline.FromFile(input)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	if out == "" {
		out = replaceExt(input, ".json")
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o600); err != nil {
		return err
	}
	fmt.Printf("Restored form state written to %s\n", out)
	return nil
}

func renderState(state *form.State, out string) error {
	if err := print.NewRenderer().RenderToFile(state, out); err != nil {
		return err
	}
	fmt.Printf("Printable form written to %s\n", out)
	return nil
}

func replaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Printf("formseal-print - render or restore printable form reports\n\n")
	fmt.Printf("Usage:\n")
	fmt.Printf("  formseal-print [options] <state.json>   render the state as a printable PDF\n")
	fmt.Printf("  formseal-print [options] <report.pdf>   restore the embedded state to JSON\n")
	fmt.Printf("  formseal-print --blank                  render a blank form\n\n")
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}
