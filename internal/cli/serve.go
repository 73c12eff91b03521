// Package cli — serve.go implements the "reframe-stack serve" command.
//
// The serve command runs the host bridge: an MCP server exposing the five
// stack actions as tools. The Reframe desktop shell spawns the binary with
// this command and talks to it over stdio; --http serves the same tools
// over streamable HTTP for out-of-process hosts instead.
package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/reframe-media/reframe-stack/internal/bridge"
)

// serveFlags holds the flag values for the serve command.
// These are bound to cobra flags in NewServeCommand.
type serveFlags struct {
	// httpAddr, when non-empty, serves over streamable HTTP on this
	// address instead of stdio.
	httpAddr string

	// instructions prints the embedded host instructions and exits.
	instructions bool
}

// NewServeCommand creates the "serve" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stack actions to the desktop shell",
		Long: `Run the host bridge: an MCP server exposing the five stack actions
(docker_version, compose_file_path, compose_ps, compose_up, compose_down)
as tools.

By default the server speaks MCP over stdio, which is how the Reframe
desktop shell drives it. Pass --http to serve the same tools over
streamable HTTP for hosts that run out of process. The server stops on
interrupt.

Examples:
  reframe-stack serve
  reframe-stack serve --http :9090
  reframe-stack serve --instructions`,

		// No positional arguments are accepted.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	// Register command-specific flags.
	cmd.Flags().StringVar(&flags.httpAddr, "http", "", "Serve over streamable HTTP on this address (e.g. :9090) instead of stdio")
	cmd.Flags().BoolVar(&flags.instructions, "instructions", false, "Print the embedded host instructions and exit")

	return cmd
}

// runServe is the main logic function for the serve command.
// It builds the stack from settings, registers it on a bridge server, and
// serves until the transport closes or an interrupt arrives.
func runServe(ctx context.Context, flags *serveFlags) error {
	if flags.instructions {
		fmt.Print(bridge.Instructions)
		return nil
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	st := newStack(cfg)

	server := bridge.NewServer(st, Version)

	// Stdout belongs to the MCP transport in stdio mode, so serve-path
	// diagnostics go through the standard logger on stderr.
	log.SetFlags(0)
	log.SetPrefix("reframe-stack: ")

	// An interrupt must take down the server and, through the context,
	// any compose process still running under a tool call.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if flags.httpAddr != "" {
		return serveHTTP(ctx, server, flags.httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

// serveHTTP serves the bridge over streamable HTTP until ctx is done.
func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
