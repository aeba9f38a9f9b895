package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/switchlab/formseal/internal/config"
	"github.com/switchlab/formseal/internal/descriptions"
	"github.com/switchlab/formseal/internal/form"
	"github.com/switchlab/formseal/internal/pdf"
	"github.com/switchlab/formseal/internal/print"
	"github.com/switchlab/formseal/internal/restore"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	docService *pdf.Service
	renderer   *print.Renderer
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, docService *pdf.Service) (*Server, error) {
	if docService == nil {
		return nil, fmt.Errorf("docService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		docService: docService,
		renderer:   print.NewRenderer(),
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	restoreTool := mcp.NewTool(
		"form_restore_file",
		mcp.WithDescription(descriptions.FormRestoreFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the printed form PDF"),
		),
	)
	s.mcpServer.AddTool(restoreTool, s.handleFormRestoreFile)

	serializeTool := mcp.NewTool(
		"form_serialize_state",
		mcp.WithDescription(descriptions.FormSerializeStateDescription),
		mcp.WithString("state_json",
			mcp.Required(),
			mcp.Description("The form state as a JSON object"),
		),
	)
	s.mcpServer.AddTool(serializeTool, s.handleFormSerializeState)

	renderTool := mcp.NewTool(
		"form_render_print",
		mcp.WithDescription(descriptions.FormRenderPrintDescription),
		mcp.WithString("state_json",
			mcp.Required(),
			mcp.Description("The form state as a JSON object"),
		),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Where to write the printable PDF (inside the forms directory)"),
		),
	)
	s.mcpServer.AddTool(renderTool, s.handleFormRenderPrint)

	validateTool := mcp.NewTool(
		"form_validate_file",
		mcp.WithDescription(descriptions.FormValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleFormValidateFile)

	listTool := mcp.NewTool(
		"form_list_directory",
		mcp.WithDescription(descriptions.FormListDirectoryDescription),
		mcp.WithString("directory",
			mcp.Description("Directory to scan (uses the configured forms directory if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional case-insensitive file name filter"),
		),
	)
	s.mcpServer.AddTool(listTool, s.handleFormListDirectory)

	infoTool := mcp.NewTool(
		"form_server_info",
		mcp.WithDescription(descriptions.FormServerInfoDescription),
	)
	s.mcpServer.AddTool(infoTool, s.handleFormServerInfo)
}

// Handler functions

func (s *Server) handleFormRestoreFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	extracted, err := s.docService.Extract(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Could not read document: %v", err)), nil
	}

	state, err := restore.FromExtractedText(extracted.Text)
	switch {
	case errors.Is(err, restore.ErrNoPayload):
		return mcp.NewToolResultError(
			"No embedded form data found in this document. It may not have been printed by this form, " +
				"or the print path stripped the text layer."), nil
	case errors.Is(err, restore.ErrBadPayload):
		return mcp.NewToolResultError(
			"Embedded form data was found but could not be read. The document appears to be corrupted."), nil
	case err != nil:
		return mcp.NewToolResultError(err.Error()), nil
	}

	stateJSON, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Restored form state from %s (pages: %d, extractor: %s)\n\n%s",
		extracted.Path, extracted.Pages, extracted.Backend, stateJSON)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFormSerializeState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stateJSON, err := request.RequireString("state_json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := parseState(stateJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := restore.SerializeForPrint(state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleFormRenderPrint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stateJSON, err := request.RequireString("state_json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := parseState(stateJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.resolveOutputPath(outputPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.renderer.RenderToFile(state, resolved); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render PDF: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Printable form written to %s", resolved)), nil
}

func (s *Server) handleFormValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.docService.ValidateFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.Valid {
		return mcp.NewToolResultText(fmt.Sprintf("✅ Valid PDF: %s", result.Path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("❌ Invalid PDF: %s\nReason: %s", result.Path, result.Message)), nil
}

func (s *Server) handleFormListDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	directory := ""
	if d, ok := args["directory"].(string); ok {
		directory = d
	}
	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	result, err := s.docService.ListFormPDFs(directory, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatListResult(result)), nil
}

func (s *Server) handleFormServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s v%s - production-test form payload service\n\n", s.config.ServerName, s.config.Version)
	fmt.Fprintf(&b, "Forms directory: %s\n", s.docService.FormsDirectory())
	fmt.Fprintf(&b, "Max file size: %d bytes\n\n", s.docService.MaxFileSize())
	b.WriteString("Tools:\n")
	b.WriteString("  form_restore_file     - restore a form from a printed PDF\n")
	b.WriteString("  form_serialize_state  - produce print payloads for a state\n")
	b.WriteString("  form_render_print     - render a state as the printable PDF\n")
	b.WriteString("  form_validate_file    - check a PDF before restoring\n")
	b.WriteString("  form_list_directory   - find form PDFs\n")
	b.WriteString("  form_server_info      - this message\n\n")
	b.WriteString("Typical flow: form_list_directory → form_validate_file → form_restore_file.\n")
	b.WriteString("To produce a document: form_render_print, or embed the payloads from form_serialize_state.\n")
	return mcp.NewToolResultText(b.String()), nil
}

// resolveOutputPath anchors relative output paths at the forms
// directory and rejects anything that escapes it.
func (s *Server) resolveOutputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("output path cannot be empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.docService.FormsDirectory(), path)
	}
	cleaned := filepath.Clean(path)
	root := filepath.Clean(s.docService.FormsDirectory())
	if cleaned != root && !strings.HasPrefix(cleaned, root+string(filepath.Separator)) {
		return "", fmt.Errorf("output path is outside the forms directory: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(cleaned), ".pdf") {
		return "", fmt.Errorf("output path must end in .pdf: %s", path)
	}
	return cleaned, nil
}

func parseState(stateJSON string) (*form.State, error) {
	state := &form.State{}
	if err := json.Unmarshal([]byte(stateJSON), state); err != nil {
		return nil, fmt.Errorf("state_json is not a valid form state: %w", err)
	}
	return state, nil
}

func (s *Server) formatListResult(result *pdf.ListResult) string {
	var b strings.Builder
	if result.Query != "" {
		fmt.Fprintf(&b, "Found %d form PDF(s) in %s matching %q:\n", result.TotalCount, result.Directory, result.Query)
	} else {
		fmt.Fprintf(&b, "Found %d form PDF(s) in %s:\n", result.TotalCount, result.Directory)
	}
	for _, f := range result.Files {
		fmt.Fprintf(&b, "  %s (%d bytes, modified %s)\n", f.Path, f.Size, f.ModifiedTime)
	}
	if result.TotalCount == 0 {
		b.WriteString("  (none)\n")
	}
	return b.String()
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting form MCP server in stdio mode")
		log.Printf("Forms directory: %s", s.config.FormsDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server as an SSE endpoint
func (s *Server) runServerMode(ctx context.Context) error {
	sse := server.NewSSEServer(s.mcpServer)
	log.Printf("Starting form MCP server on %s", s.config.Address())

	errCh := make(chan error, 1)
	go func() {
		errCh <- sse.Start(s.config.Address())
	}()

	select {
	case <-ctx.Done():
		return sse.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve SSE: %w", err)
		}
		return nil
	}
}
