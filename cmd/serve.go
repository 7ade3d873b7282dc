package cmd

import (
	"context"
	"time"

	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/mj1618/sapgui-cli/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing sapgui-cli tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the sapgui-cli
commands as tools. The server attaches to the running SAP GUI on the first
tool call and keeps the session between calls; the login tool signs in from
scratch.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  sapgui-cli serve
  sapgui-cli serve --transport streamable-http --port 8080
  sapgui-cli serve --cache-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Object tree cache TTL in milliseconds (0 to disable)")
}

// hostOpener adapts a host and the profile options to server.Opener.
type hostOpener struct {
	host *host
	opts sapgui.Options
}

func (o hostOpener) Attach(ctx context.Context) (*sapgui.Session, error) {
	return o.host.attach(ctx, o.opts)
}

func (o hostOpener) Login(ctx context.Context) (*sapgui.Session, error) {
	return o.host.login(ctx, o.opts)
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	h, err := newHost()
	if err != nil {
		return err
	}
	defer h.provider.Release()

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
	}
	srv := server.New(cfg, hostOpener{host: h, opts: opts}, logger)
	defer srv.Close()

	return srv.Serve(cfg)
}
