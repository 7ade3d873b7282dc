// Package script runs YAML step lists against a session. It backs the `run`
// command and the MCP `run` tool.
package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Result is the output of a step script.
type Result struct {
	OK        bool         `yaml:"ok"              json:"ok"`
	Action    string       `yaml:"action"          json:"action"`
	Steps     int          `yaml:"steps"           json:"steps"`
	Completed int          `yaml:"completed"       json:"completed"`
	Error     string       `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []StepResult `yaml:"results"         json:"results"`
}

// StepResult is the output for a single step.
type StepResult struct {
	Step    int                  `yaml:"step"              json:"step"`
	OK      bool                 `yaml:"ok"                json:"ok"`
	Action  string               `yaml:"action"            json:"action"`
	Error   string               `yaml:"error,omitempty"   json:"error,omitempty"`
	ID      model.NodeID         `yaml:"id,omitempty"      json:"id,omitempty"`
	Text    *model.TextTree      `yaml:"text,omitempty"    json:"text,omitempty"`
	Match   *model.Resolution    `yaml:"match,omitempty"   json:"match,omitempty"`
	Info    *model.SessionInfo   `yaml:"info,omitempty"    json:"info,omitempty"`
	Export  *sapgui.ExportResult `yaml:"export,omitempty"  json:"export,omitempty"`
	Session *int                 `yaml:"session,omitempty" json:"session,omitempty"`
	Elapsed string               `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
}

// Step is one parsed step: an action name and its parameters.
type Step struct {
	Action string
	Params map[string]interface{}
}

// Actions lists the supported step types.
var Actions = []string{
	"get", "set", "click", "press", "close", "find", "input", "vkey", "execute",
	"tcode", "end", "info", "validate", "home", "export", "wait", "sleep", "use",
}

// Parse reads a YAML list of single-key maps:
//
//	- tcode: { code: ME2N }
//	- set: { id: "wnd[0]/usr/ctxtS_WERKS-LOW", text: "1000" }
//	- execute: {}
func Parse(data []byte) ([]Step, error) {
	var raw []interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	return FromList(raw)
}

// FromList converts decoded step objects, as produced by the YAML decoder or
// by an MCP client's JSON arguments, into steps.
func FromList(raw []interface{}) ([]Step, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no steps provided, expected a list of actions")
	}
	steps := make([]Step, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("step %d: expected an object with one action key", i+1)
		}
		if len(m) != 1 {
			return nil, fmt.Errorf("step %d: expected exactly one action key, got %d", i+1, len(m))
		}
		for action, v := range m {
			var params map[string]interface{}
			switch p := v.(type) {
			case nil:
				params = map[string]interface{}{}
			case map[string]interface{}:
				params = p
			default:
				return nil, fmt.Errorf("step %d: parameters of %q must be an object", i+1, action)
			}
			steps = append(steps, Step{Action: action, Params: params})
		}
	}
	return steps, nil
}

// Runner executes steps. Steps after a "use" step drive that parallel
// session.
type Runner struct {
	Session     *sapgui.Session
	StopOnError bool
	Logger      *zap.Logger
}

// Run executes every step in order and reports each outcome.
func (r *Runner) Run(ctx context.Context, steps []Step) Result {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sess := r.Session
	results := make([]StepResult, 0, len(steps))
	completed := 0
	var lastErr string

	for i, step := range steps {
		stepNum := i + 1
		if err := ctx.Err(); err != nil {
			lastErr = fmt.Sprintf("step %d: %s", stepNum, err)
			break
		}

		var (
			result StepResult
			err    error
		)
		if step.Action == "use" {
			result, sess, err = use(r.Session, step.Params)
		} else {
			result, err = Execute(ctx, sess, step)
		}
		result.Step = stepNum
		if err != nil {
			log.Warn("step failed", zap.Int("step", stepNum), zap.String("action", step.Action), zap.Error(err))
			result.OK = false
			result.Error = err.Error()
			results = append(results, result)
			if lastErr == "" || r.StopOnError {
				lastErr = fmt.Sprintf("step %d: %s", stepNum, err)
			}
			if r.StopOnError {
				break
			}
			continue
		}
		result.OK = true
		completed++
		results = append(results, result)
	}

	return Result{
		OK:        completed == len(steps),
		Action:    "run",
		Steps:     len(steps),
		Completed: completed,
		Error:     lastErr,
		Results:   results,
	}
}

func use(root *sapgui.Session, params map[string]interface{}) (StepResult, *sapgui.Session, error) {
	i := intParam(params, "session", 0)
	result := StepResult{Action: "use", Session: &i}
	sess, err := root.Use(i)
	if err != nil {
		return result, root, err
	}
	return result, sess, nil
}

// Execute runs a single step.
func Execute(ctx context.Context, s *sapgui.Session, step Step) (StepResult, error) {
	p := step.Params
	result := StepResult{Action: step.Action}

	switch step.Action {
	case "get":
		ids := idsParam(p)
		if len(ids) == 0 {
			return result, fmt.Errorf("specify id or ids")
		}
		target := model.One(ids[0])
		if _, many := p["ids"]; many {
			target = model.Many(ids)
		}
		text, err := s.Fetch(target)
		if err != nil {
			return result, err
		}
		result.Text = &text
		return result, nil

	case "set":
		if values := mapParam(p, "values"); len(values) > 0 {
			return result, s.SetMany(values)
		}
		id, err := targetParam(s, p)
		if err != nil {
			return result, err
		}
		result.ID = id
		return result, s.SetText(id, stringParam(p, "text", ""))

	case "click", "press":
		id, err := targetParam(s, p)
		if err != nil {
			return result, err
		}
		result.ID = id
		if step.Action == "press" {
			return result, s.Press(id)
		}
		return result, s.Click(id)

	case "close":
		id := model.NodeID(stringParam(p, "id", "wnd[1]"))
		result.ID = id
		return result, s.CloseWindow(id)

	case "find":
		text := stringParam(p, "text", "")
		res, err := s.FindByText(text, model.NodeID(stringParam(p, "root", "")), boolParam(p, "case-sensitive", false))
		if err != nil {
			return result, err
		}
		result.Match = &res
		return result, nil

	case "input":
		label := stringParam(p, "label", "")
		if label == "" {
			return result, fmt.Errorf("specify label")
		}
		id, err := s.FindInputByLabel(label)
		if err != nil {
			return result, err
		}
		result.ID = id
		if text, ok := p["text"]; ok {
			return result, s.SetText(id, fmt.Sprintf("%v", text))
		}
		return result, nil

	case "vkey":
		key, err := platform.ParseVKey(stringParam(p, "key", "enter"))
		if err != nil {
			return result, err
		}
		window := model.NodeID(stringParam(p, "window", string(model.MainWindow)))
		result.ID = window
		return result, s.SendVKey(window, key)

	case "execute":
		return result, s.Execute()

	case "tcode":
		code := stringParam(p, "code", "")
		if code == "" {
			return result, fmt.Errorf("specify code")
		}
		info, err := s.StartTransaction(code)
		if err != nil {
			return result, err
		}
		result.Info = &info
		return result, nil

	case "end":
		info, err := s.EndTransaction()
		if err != nil {
			return result, err
		}
		result.Info = &info
		return result, nil

	case "info":
		info, err := s.Info()
		if err != nil {
			return result, err
		}
		result.Info = &info
		return result, nil

	case "validate":
		return result, s.ValidateWindowName(stringParam(p, "name", ""), intParam(p, "window", 0), boolParam(p, "case-sensitive", true))

	case "home":
		return result, s.GoHome()

	case "export":
		file := stringParam(p, "file", "")
		dir := stringParam(p, "dir", "")
		if file == "" || dir == "" {
			return result, fmt.Errorf("specify file and dir")
		}
		exp, err := s.ExportSpreadsheet(file, dir)
		result.Export = &exp
		return result, err

	case "wait":
		id := model.NodeID(stringParam(p, "id", ""))
		if id == "" {
			return result, fmt.Errorf("specify id")
		}
		timeout := time.Duration(intParam(p, "timeout", 30)) * time.Second
		interval := time.Duration(intParam(p, "interval", 500)) * time.Millisecond
		if interval <= 0 {
			interval = 500 * time.Millisecond
		}
		attempts := int(timeout/interval) + 1
		start := time.Now()
		err := s.WaitForWindow(ctx, id, attempts, interval)
		result.ID = id
		result.Elapsed = fmt.Sprintf("%.1fs", time.Since(start).Seconds())
		return result, err

	case "sleep":
		ms := intParam(p, "ms", 0)
		if ms <= 0 {
			return result, fmt.Errorf("specify ms > 0")
		}
		t := time.NewTimer(time.Duration(ms) * time.Millisecond)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-t.C:
		}
		result.Elapsed = fmt.Sprintf("%dms", ms)
		return result, nil

	default:
		return result, fmt.Errorf("unknown step type %q, supported: %s", step.Action, strings.Join(Actions, ", "))
	}
}

// targetParam resolves the "id" parameter, or the "label" parameter by text
// lookup below "root".
func targetParam(s *sapgui.Session, p map[string]interface{}) (model.NodeID, error) {
	if id := stringParam(p, "id", ""); id != "" {
		return model.NodeID(id), nil
	}
	if text := stringParam(p, "label", ""); text != "" {
		return s.FindOne(text, model.NodeID(stringParam(p, "root", "")), boolParam(p, "case-sensitive", false))
	}
	return "", fmt.Errorf("specify id or label")
}

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// YAML may parse values like 1000 as numbers
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// idsParam reads "ids" (a list) or "id" (a single id).
func idsParam(params map[string]interface{}) []model.NodeID {
	if list, ok := params["ids"].([]interface{}); ok {
		ids := make([]model.NodeID, 0, len(list))
		for _, v := range list {
			ids = append(ids, model.NodeID(fmt.Sprintf("%v", v)))
		}
		return ids
	}
	if id := stringParam(params, "id", ""); id != "" {
		return []model.NodeID{model.NodeID(id)}
	}
	return nil
}

// mapParam reads a mapping of id to text.
func mapParam(params map[string]interface{}, key string) map[model.NodeID]string {
	m, ok := params[key].(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[model.NodeID]string, len(m))
	for k, v := range m {
		out[model.NodeID(k)] = fmt.Sprintf("%v", v)
	}
	return out
}
