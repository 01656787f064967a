package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mvp-joe/ngcomp/internal/config"
	"github.com/mvp-joe/ngcomp/internal/extract"
)

// ServerName identifies the server to MCP clients.
const ServerName = "ngcomp-mcp"

// DefaultServerVersion is reported when ServerConfig.Version is empty.
const DefaultServerVersion = "dev"

// ServerConfig holds the dependencies shared by every tool call.
type ServerConfig struct {
	Version string // reported in the initialize handshake
	Project *config.Config
	Guard   extract.Guard
	FS      afero.Fs
	Logger  logrus.FieldLogger
}

// withDefaults fills unset dependencies.
func (c *ServerConfig) withDefaults() *ServerConfig {
	out := &ServerConfig{}
	if c != nil {
		*out = *c
	}
	if out.Version == "" {
		out.Version = DefaultServerVersion
	}
	if out.Project == nil {
		out.Project = config.Default()
	}
	if out.FS == nil {
		out.FS = afero.NewOsFs()
	}
	if out.Logger == nil {
		out.Logger = logrus.StandardLogger()
	}
	return out
}

// Server manages the MCP server lifecycle.
type Server struct {
	config *ServerConfig
	mcp    *server.MCPServer
}

// NewServer creates an MCP server with the extract_component and
// inspect_component tools registered.
func NewServer(cfg *ServerConfig) *Server {
	cfg = cfg.withDefaults()

	mcpServer := server.NewMCPServer(
		ServerName,
		cfg.Version,
		server.WithToolCapabilities(true),
	)

	AddExtractComponentTool(mcpServer, cfg)
	AddInspectComponentTool(mcpServer, cfg)

	return &Server{
		config: cfg,
		mcp:    mcpServer,
	}
}

// MCPServer exposes the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve runs the server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.config.Logger.Info("Starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		s.config.Logger.Info("Received shutdown signal, stopping gracefully")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
