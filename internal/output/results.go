package output

import "github.com/mj1618/sapgui-cli/internal/model"

// ReadResult is the top-level output of the `read` command.
type ReadResult struct {
	System      string           `yaml:"system,omitempty"      json:"system,omitempty"`
	Transaction string           `yaml:"transaction,omitempty" json:"transaction,omitempty"`
	Root        model.NodeID     `yaml:"root"                  json:"root"`
	TS          int64            `yaml:"ts"                    json:"ts"`
	Elements    []model.FlatNode `yaml:"elements"              json:"elements"`
}

// FindResult is the output of the `find` command. Match renders as the
// "Not found" sentinel, a single id, or a list of ids.
type FindResult struct {
	Query string           `yaml:"query" json:"query"`
	Root  model.NodeID     `yaml:"root"  json:"root"`
	Match model.Resolution `yaml:"match" json:"match"`
}

// TextResult is the output of the `get` command. Text mirrors the shape of
// the request: a string for one id, a list for several.
type TextResult struct {
	IDs  []model.NodeID `yaml:"ids"  json:"ids"`
	Text model.TextTree `yaml:"text" json:"text"`
}

// ActionResult reports a completed write action.
type ActionResult struct {
	OK     bool         `yaml:"ok"               json:"ok"`
	Action string       `yaml:"action"           json:"action"`
	ID     model.NodeID `yaml:"id,omitempty"     json:"id,omitempty"`
	Detail string       `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// ScreenshotResult describes a written window image.
type ScreenshotResult struct {
	Window model.NodeID `yaml:"window" json:"window"`
	Path   string       `yaml:"path"   json:"path"`
	Format string       `yaml:"format" json:"format"`
	Width  int          `yaml:"width"  json:"width"`
	Height int          `yaml:"height" json:"height"`
}
