package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/sapgui-cli/internal/capture"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/script"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// resultToText serializes a result to YAML for the MCP response.
func resultToText(result interface{}) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func stepError(result script.StepResult, err error) *mcp.CallToolResult {
	result.OK = false
	result.Error = err.Error()
	return mcp.NewToolResultError(resultToText(result))
}

// stepHandler runs one script step with the call's arguments as parameters.
// Writes drop the tree cache of the active session even when they fail,
// since a failed write may have changed the screen.
func (s *Server) stepHandler(action string, write bool) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := request.GetArguments()
		if params == nil {
			params = map[string]interface{}{}
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		result := script.StepResult{Action: action}
		sess, err := s.session(ctx)
		if err != nil {
			return stepError(result, err), nil
		}

		s.log.Debug("tool call", zap.String("tool", action), zap.Int("session", sess.Index()))
		result, err = script.Execute(ctx, sess, script.Step{Action: action, Params: params})
		if write {
			s.cache.InvalidateSession(sess.Index())
		}
		if err != nil {
			return stepError(result, err), nil
		}
		result.OK = true
		return mcp.NewToolResultText(resultToText(result)), nil
	}
}

func (s *Server) handleLogin(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := script.StepResult{Action: "login"}
	sess, err := s.login(ctx)
	if err != nil {
		return stepError(result, err), nil
	}
	info, err := sess.Info()
	if err != nil {
		return stepError(result, err), nil
	}
	result.OK = true
	result.Info = &info
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleUse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	i := request.GetInt("session", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	result := script.StepResult{Action: "use", Session: &i}
	if _, err := s.session(ctx); err != nil {
		return stepError(result, err), nil
	}
	sess, err := s.root.Use(i)
	if err != nil {
		return stepError(result, err), nil
	}
	s.active = sess
	result.OK = true
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := model.NodeID(request.GetString("root", string(model.MainWindow)))
	types := request.GetString("types", "")
	text := request.GetString("text", "")
	prune := request.GetBool("prune", false)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	nodes, err := s.cache.ReadNodes(sess.Index(), root, func() ([]model.FlatNode, error) {
		return sess.Nodes(root)
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if types != "" {
		nodes = model.FilterByTypes(nodes, strings.Split(types, ","))
	}
	nodes = model.FilterByText(nodes, text)
	if prune {
		nodes = model.PruneEmpty(nodes)
	}

	result := output.ReadResult{Root: root, TS: time.Now().Unix(), Elements: nodes}
	if info, err := sess.Info(); err == nil {
		result.System = info.SystemName
		result.Transaction = info.Transaction
	} else {
		s.log.Debug("session info unavailable", zap.Error(err))
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window := model.NodeID(request.GetString("window", string(model.MainWindow)))
	format, err := capture.ParseFormat(request.GetString("format", "png"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := capture.Options{
		Format:  format,
		Quality: request.GetInt("quality", 80),
		Scale:   request.GetFloat("scale", 0.5),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if request.GetBool("label", false) {
		if title, err := sess.GetText(window); err == nil {
			opts.Label = title
		}
	}

	dir, err := os.MkdirTemp("", "sapgui-shot-")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer os.RemoveAll(dir)

	written, err := sess.HardCopy(window, filepath.Join(dir, "window.bmp"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	img, err := capture.Process(written, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mimeType := "image/png"
	if img.Format == capture.JPEG {
		mimeType = "image/jpeg"
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(img.Data),
				MIMEType: mimeType,
			},
		},
	}, nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	stopOnError := request.GetBool("stop-on-error", true)

	raw, ok := params["steps"].([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array"), nil
	}
	steps, err := script.FromList(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	runner := &script.Runner{Session: sess, StopOnError: stopOnError, Logger: s.log}
	result := runner.Run(ctx, steps)
	s.cache.InvalidateAll()

	if !result.OK {
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}
