package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/switchlab/formseal/internal/config"
	"github.com/switchlab/formseal/internal/form"
	"github.com/switchlab/formseal/internal/pdf"
	"github.com/switchlab/formseal/internal/restore"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()

	docService, err := pdf.NewService(config.DefaultMaxFileSize, dir)
	if err != nil {
		t.Fatalf("failed to create document service: %v", err)
	}

	cfg := &config.Config{
		Mode:           config.ModeStdio,
		Host:           "127.0.0.1",
		Port:           8080,
		FormsDirectory: dir,
		Version:        "1.0.0",
		ServerName:     "formseal-test",
		LogLevel:       "info",
		MaxFileSize:    config.DefaultMaxFileSize,
	}

	srv, err := NewServer(cfg, docService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv, dir
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}
	t.Fatalf("no text content in result (%T)", result.Content[0])
	return ""
}

func TestNewServerNilService(t *testing.T) {
	if _, err := NewServer(config.DefaultConfig(), nil); err == nil {
		t.Error("expected error for nil document service")
	}
}

func TestRenderThenRestoreRoundTrip(t *testing.T) {
	srv, dir := newTestServer(t)

	state := form.DefaultState()
	state.General.SerialNumber = "BRK-7710"
	state.Remarks = "round trip via tools"
	stateJSON, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}

	outPath := filepath.Join(dir, "report.pdf")
	result, err := srv.handleFormRenderPrint(context.Background(), callRequest(map[string]interface{}{
		"state_json":  string(stateJSON),
		"output_path": outPath,
	}))
	if err != nil {
		t.Fatalf("render handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("render reported error: %s", resultText(t, result))
	}

	result, err = srv.handleFormRestoreFile(context.Background(), callRequest(map[string]interface{}{
		"path": outPath,
	}))
	if err != nil {
		t.Fatalf("restore handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("restore reported error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "BRK-7710") {
		t.Errorf("restored state missing serial number: %s", text)
	}
	if !strings.Contains(text, "round trip via tools") {
		t.Errorf("restored state missing remarks: %s", text)
	}
}

func TestRestoreFileMissingPath(t *testing.T) {
	srv, _ := newTestServer(t)

	result, err := srv.handleFormRestoreFile(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for missing path")
	}
}

func TestSerializeStateProducesBothPayloads(t *testing.T) {
	srv, _ := newTestServer(t)

	state := form.DefaultState()
	state.General.SerialNumber = "BRK-0001"
	stateJSON, _ := json.Marshal(state)

	result, err := srv.handleFormSerializeState(context.Background(), callRequest(map[string]interface{}{
		"state_json": string(stateJSON),
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("serialize reported error: %s", resultText(t, result))
	}

	var payload restore.PrintPayload
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("result is not a payload: %v", err)
	}
	if !strings.HasPrefix(payload.MarkerText, "@@FORMSEAL:") {
		t.Errorf("marker payload malformed: %q", payload.MarkerText)
	}
	if payload.ZeroWidthText == "" {
		t.Error("zero-width payload missing")
	}
}

func TestSerializeStateRejectsBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	result, err := srv.handleFormSerializeState(context.Background(), callRequest(map[string]interface{}{
		"state_json": "{not json",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for malformed state_json")
	}
}

func TestRenderPrintRejectsEscapingPath(t *testing.T) {
	srv, _ := newTestServer(t)

	stateJSON, _ := json.Marshal(form.DefaultState())
	result, err := srv.handleFormRenderPrint(context.Background(), callRequest(map[string]interface{}{
		"state_json":  string(stateJSON),
		"output_path": "../escape.pdf",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for a path outside the forms directory")
	}
}

func TestValidateFileHandler(t *testing.T) {
	srv, dir := newTestServer(t)

	result, err := srv.handleFormValidateFile(context.Background(), callRequest(map[string]interface{}{
		"path": filepath.Join(dir, "missing.pdf"),
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !strings.Contains(resultText(t, result), "Invalid PDF") {
		t.Errorf("expected invalid verdict, got: %s", resultText(t, result))
	}
}

func TestListDirectoryHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	state := form.DefaultState()
	stateJSON, _ := json.Marshal(state)
	if _, err := srv.handleFormRenderPrint(context.Background(), callRequest(map[string]interface{}{
		"state_json":  string(stateJSON),
		"output_path": "blank-form.pdf",
	})); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	result, err := srv.handleFormListDirectory(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "blank-form.pdf") {
		t.Errorf("listing missing rendered file: %s", text)
	}
}

func TestServerInfoHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	result, err := srv.handleFormServerInfo(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	text := resultText(t, result)
	for _, tool := range []string{"form_restore_file", "form_serialize_state", "form_render_print"} {
		if !strings.Contains(text, tool) {
			t.Errorf("server info missing %s", tool)
		}
	}
}
