package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"

	"github.com/mvp-joe/ngcomp/internal/editor"
	"github.com/mvp-joe/ngcomp/internal/extract"
	mcputils "github.com/mvp-joe/ngcomp/internal/mcp-utils"
)

// ExtractComponentRequest is the argument set of extract_component.
type ExtractComponentRequest struct {
	DocumentPath string `json:"document_path"`
	Selection    string `json:"selection,omitempty"`
	Lines        string `json:"lines,omitempty"`
	Name         string `json:"name"`
	Strict       *bool  `json:"strict,omitempty"`
}

// ExtractComponentResponse is the result of extract_component.
// Extracted is false when the selection was empty and nothing was written.
type ExtractComponentResponse struct {
	Extracted  bool                 `json:"extracted"`
	Dashed     string               `json:"dashed,omitempty"`
	Classified string               `json:"classified,omitempty"`
	Artifacts  *extract.ArtifactSet `json:"artifacts,omitempty"`
}

// AddExtractComponentTool registers the extract_component tool with an MCP server.
func AddExtractComponentTool(s *server.MCPServer, cfg *ServerConfig) {
	tool := mcp.NewTool(
		"extract_component",
		mcp.WithDescription(`Extract a fragment of an Angular component template into a new component.

Reads the class source and stylesheet next to document_path, rewrites the class metadata for the new name and writes <dir>/<name>/<name>.component.{ts,html,scss} next to the document. The selected markup becomes the new template verbatim.`),
		mcp.WithString("document_path",
			mcp.Required(),
			mcp.Description("Absolute path of the template the fragment is taken from (e.g., /repo/src/app/page/page.component.html)")),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("New component name in any casing (e.g., 'UserCard' or 'user-card')")),
		mcp.WithString("selection",
			mcp.Description("Markup to extract. Mutually exclusive with lines.")),
		mcp.WithString("lines",
			mcp.Description("1-based inclusive line range of document_path to extract, 'A:B' or 'A'. Mutually exclusive with selection.")),
		mcp.WithBoolean("strict",
			mcp.Description("Abort when a metadata field is missing from the class source (default from project config)")),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createExtractComponentHandler(cfg.withDefaults()))
}

// createExtractComponentHandler creates the handler function for extract_component.
func createExtractComponentHandler(cfg *ServerConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req ExtractComponentRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		if req.DocumentPath == "" {
			return mcp.NewToolResultError("document_path parameter is required"), nil
		}
		if req.Selection != "" && req.Lines != "" {
			return mcp.NewToolResultError("selection and lines are mutually exclusive"), nil
		}

		ed, err := newRequestEditor(cfg.FS, &req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		strict := cfg.Project.Rewrite.Strict
		if req.Strict != nil {
			strict = *req.Strict
		}

		opts := []extract.Option{
			extract.WithLayout(cfg.Project.Layout()),
			extract.WithStrict(strict),
			extract.WithLogger(cfg.Logger),
		}
		if cfg.Guard != nil {
			opts = append(opts, extract.WithGuard(cfg.Guard))
		}
		extractor := extract.NewExtractor(extract.NewFileSystem(cfg.FS), opts...)

		set, err := extract.NewCommand(ed, extractor, cfg.Project.Component.NamePlaceholder).Run(ctx)
		if len(ed.errors) > 0 {
			return mcp.NewToolResultError(strings.Join(ed.errors, "; ")), nil
		}
		if err != nil {
			return nil, err
		}
		if set == nil {
			return marshalToolResponse(&ExtractComponentResponse{Extracted: false})
		}

		return marshalToolResponse(&ExtractComponentResponse{
			Extracted:  true,
			Dashed:     set.Name.Dashed,
			Classified: set.Name.Classified,
			Artifacts:  set,
		})
	}
}

// requestEditor is an extract.Editor backed by one tool request.
// The name argument answers the prompt and shown errors are collected.
type requestEditor struct {
	path      string
	text      string
	selection string
	name      string
	errors    []string
}

func newRequestEditor(fs afero.Fs, req *ExtractComponentRequest) (*requestEditor, error) {
	ed := &requestEditor{
		path:      filepath.Clean(req.DocumentPath),
		selection: req.Selection,
		name:      req.Name,
	}

	data, err := afero.ReadFile(fs, ed.path)
	switch {
	case err == nil:
		ed.text = string(data)
	case req.Lines != "":
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	if req.Lines != "" {
		if ed.selection, err = editor.SelectLines(ed.text, req.Lines); err != nil {
			return nil, err
		}
	}

	return ed, nil
}

func (e *requestEditor) DocumentPath() string { return e.path }
func (e *requestEditor) DocumentText() string { return e.text }
func (e *requestEditor) Selection() string    { return e.selection }

func (e *requestEditor) PromptName(ctx context.Context, placeholder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.name, nil
}

func (e *requestEditor) ShowError(msg string) {
	e.errors = append(e.errors, msg)
}
