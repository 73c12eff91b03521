// Package bridge exposes the reframe-stack actions to the desktop shell
// as MCP tools.
//
// The bridge carries no stack logic of its own: each tool is a thin
// request/response adapter over one compose.Stack method. Action failures
// are reported as tool results flagged IsError with the error message as
// text — the shell displays them like any other output — never as
// protocol errors, which are reserved for malformed calls.
package bridge

import (
	"context"
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reframe-media/reframe-stack/internal/compose"
)

//go:embed instructions.md
var Instructions string

// handler holds the shared dependency of all tool handlers: the stack
// being driven.
type handler struct {
	stack *compose.Stack
}

// NewServer creates an MCP server with the five stack actions registered
// as tools. version identifies the binary to connecting hosts.
func NewServer(stack *compose.Stack, version string) *mcp.Server {
	h := &handler{stack: stack}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "reframe-stack", Version: version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "docker_version",
		Description: `Report the installed docker version (runs docker --version).

Works from any directory. Use this to check that docker is installed
before driving the stack.`,
	}, h.dockerVersionHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "compose_file_path",
		Description: `Resolve the absolute path of the Reframe compose file.

The file is found by walking from the working directory upward through
its ancestors. Fails when the process runs outside a Reframe checkout.`,
	}, h.filePathHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "compose_ps",
		Description: `List the stack's containers (runs compose ps).

Returns the compose table verbatim, covering the api, worker, and redis
services.`,
	}, h.psHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "compose_up",
		Description: `Start the stack detached (runs compose up -d --remove-orphans).

Images are rebuilt first unless build is false. Blocks until compose has
brought the services up, which can take a while on a cold build.`,
	}, h.upHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "compose_down",
		Description: `Stop the stack and remove its containers and networks (runs compose down).

Named volumes are preserved, so the stack's data survives a restart.`,
	}, h.downHandler)

	return s
}

// dockerVersionParams is empty: the probe takes no arguments.
type dockerVersionParams struct{}

func (h *handler) dockerVersionHandler(ctx context.Context, req *mcp.CallToolRequest, _ dockerVersionParams) (*mcp.CallToolResult, any, error) {
	out, err := h.stack.DockerVersion(ctx)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(out)
}

// filePathParams is empty: the lookup takes no arguments.
type filePathParams struct{}

func (h *handler) filePathHandler(ctx context.Context, req *mcp.CallToolRequest, _ filePathParams) (*mcp.CallToolResult, any, error) {
	path, err := h.stack.FilePath()
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(path)
}

// psParams is empty: the listing takes no arguments.
type psParams struct{}

func (h *handler) psHandler(ctx context.Context, req *mcp.CallToolRequest, _ psParams) (*mcp.CallToolResult, any, error) {
	out, err := h.stack.PS(ctx)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(out)
}

type upParams struct {
	Build *bool `json:"build,omitempty" jsonschema:"rebuild images before starting. Default: true."`
}

func (h *handler) upHandler(ctx context.Context, req *mcp.CallToolRequest, params upParams) (*mcp.CallToolResult, any, error) {
	// Default build=true when nil (the shell's untouched toggle).
	build := true
	if params.Build != nil {
		build = *params.Build
	}

	out, err := h.stack.Up(ctx, build)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(out)
}

// downParams is empty: the shutdown takes no arguments.
type downParams struct{}

func (h *handler) downHandler(ctx context.Context, req *mcp.CallToolRequest, _ downParams) (*mcp.CallToolResult, any, error) {
	out, err := h.stack.Down(ctx)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(out)
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
