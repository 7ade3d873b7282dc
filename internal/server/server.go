// Package server exposes a SAP GUI session as Model Context Protocol tools.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/mj1618/sapgui-cli/internal/version"
	"go.uber.org/zap"
)

// Opener produces sessions for the server. Attach joins a running host;
// Login relaunches the host and signs in.
type Opener interface {
	Attach(ctx context.Context) (*sapgui.Session, error)
	Login(ctx context.Context) (*sapgui.Session, error)
}

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the session and tree cache. Every tool
// call holds mu for its whole duration: the host is single-threaded.
type Server struct {
	opener Opener
	cache  *TreeCache
	log    *zap.Logger

	mu     sync.Mutex
	root   *sapgui.Session
	active *sapgui.Session

	mcp *mcpserver.MCPServer
}

// New creates and configures an MCP server with all sapgui-cli tools.
func New(cfg Config, opener Opener, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		opener: opener,
		cache:  NewTreeCache(cfg.CacheTTL),
		log:    log,
	}
	s.mcp = mcpserver.NewMCPServer("sapgui-cli", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.log.Info("serving MCP over HTTP", zap.Int("port", cfg.Port))
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// Close detaches from the host. The host keeps running.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root != nil {
		s.root.Detach()
	}
	s.root, s.active = nil, nil
	s.cache.InvalidateAll()
}

// session returns the active session, attaching on first use or after the
// previous session was closed. The caller must hold mu.
func (s *Server) session(ctx context.Context) (*sapgui.Session, error) {
	if s.root != nil && s.root.Connected() {
		return s.active, nil
	}
	sess, err := s.opener.Attach(ctx)
	if err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	s.root, s.active = sess, sess
	s.cache.InvalidateAll()
	return sess, nil
}

// login replaces the current session with a fresh signed-in one. The caller
// must hold mu.
func (s *Server) login(ctx context.Context) (*sapgui.Session, error) {
	if s.root != nil {
		s.root.Detach()
		s.root, s.active = nil, nil
	}
	s.cache.InvalidateAll()
	sess, err := s.opener.Login(ctx)
	if err != nil {
		return nil, err
	}
	s.root, s.active = sess, sess
	return sess, nil
}
