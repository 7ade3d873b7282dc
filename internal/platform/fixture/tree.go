// Package fixture provides an in-memory SAP GUI host driven by a YAML
// description of its screens. It implements every platform interface so the
// session layer, the CLI and the MCP server can run without a live engine.
package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/model"
	"gopkg.in/yaml.v3"
)

// Operations recorded in the call log and matched by transitions and
// injected failures.
const (
	OpLaunch   = "launch"
	OpKill     = "kill"
	OpOpen     = "open"
	OpCreate   = "create_session"
	OpSetText  = "set"
	OpPress    = "press"
	OpSelect   = "select"
	OpClose    = "close"
	OpVKey     = "vkey"
	OpKey      = "key"
	OpTCode    = "tcode"
	OpEnd      = "end"
	OpHardCopy = "hardcopy"
)

// Transition moves a session to another screen when an operation is applied
// to a target. An empty From matches every screen.
type Transition struct {
	From        string `yaml:"from,omitempty"`
	Op          string `yaml:"op"`
	Target      string `yaml:"target"`
	To          string `yaml:"to"`
	Transaction string `yaml:"transaction,omitempty"`
}

// Tree describes a host: its screens (each a list of top-level windows) and
// how operations move between them.
type Tree struct {
	System string            `yaml:"system"`
	Info   model.SessionInfo `yaml:"info"`

	// Start is the screen a new connection opens on (the logon screen).
	Start string `yaml:"start"`
	// Home is the screen new parallel sessions open on. Defaults to Start.
	Home string `yaml:"home,omitempty"`
	// Attach, when set, opens connection 0 on this screen at load time so
	// commands can attach to an already logged-in host.
	Attach string `yaml:"attach,omitempty"`
	// ScriptableAfter is the number of engine polls that fail after a launch.
	ScriptableAfter int `yaml:"scriptable_after,omitempty"`

	Screens     map[string][]model.Node `yaml:"screens"`
	Transitions []Transition            `yaml:"transitions,omitempty"`
}

// Load reads a fixture tree from a YAML file. SampleName loads the embedded
// sample.
func Load(path string) (*Host, error) {
	if path == SampleName {
		return Sample()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data)
}

// Parse builds a host from YAML.
func Parse(data []byte) (*Host, error) {
	var tree Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("invalid fixture YAML: %w", err)
	}
	return New(tree)
}

func (t Tree) validate() error {
	if len(t.Screens) == 0 {
		return fmt.Errorf("fixture has no screens")
	}
	for _, name := range []string{t.Start, t.Home, t.Attach} {
		if name == "" {
			continue
		}
		if _, ok := t.Screens[name]; !ok {
			return fmt.Errorf("unknown screen: %q", name)
		}
	}
	if t.Start == "" {
		return fmt.Errorf("fixture needs a start screen")
	}
	for name, wins := range t.Screens {
		seen := map[model.NodeID]bool{}
		for _, n := range model.FlattenNodes(wins) {
			if seen[n.ID] {
				return fmt.Errorf("screen %q: duplicate id %q", name, n.ID)
			}
			seen[n.ID] = true
		}
	}
	for i, tr := range t.Transitions {
		if _, ok := t.Screens[tr.To]; !ok {
			return fmt.Errorf("transition %d: unknown screen %q", i+1, tr.To)
		}
		if tr.From != "" {
			if _, ok := t.Screens[tr.From]; !ok {
				return fmt.Errorf("transition %d: unknown screen %q", i+1, tr.From)
			}
		}
		if tr.Op == "" {
			return fmt.Errorf("transition %d: missing op", i+1)
		}
	}
	return nil
}

func (t Tree) homeScreen() string {
	if t.Home != "" {
		return t.Home
	}
	return t.Start
}

// normalizeID strips the "/app/con[n]/ses[n]/" prefix of absolute ids.
func normalizeID(id model.NodeID) model.NodeID {
	s := string(id)
	if i := strings.Index(s, "wnd["); i > 0 {
		return model.NodeID(s[i:])
	}
	return id
}

//go:embed sample.yaml
var sampleYAML []byte

// SampleName selects the embedded sample system instead of a file.
const SampleName = "sample"

// Sample returns a host for the embedded sample ERP system.
func Sample() (*Host, error) {
	return Parse(sampleYAML)
}
