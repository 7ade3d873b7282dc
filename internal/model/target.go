package model

import "encoding/json"

// Target is either a single node id or an ordered group of targets. Text
// fetches recurse over groups and return a TextTree of the same shape.
type Target struct {
	ID    NodeID
	Items []Target
	group bool
}

// One targets a single node.
func One(id NodeID) Target {
	return Target{ID: id}
}

// Group targets each item in order.
func Group(items ...Target) Target {
	return Target{Items: items, group: true}
}

// Many targets each id in order.
func Many(ids []NodeID) Target {
	items := make([]Target, len(ids))
	for i, id := range ids {
		items[i] = One(id)
	}
	return Group(items...)
}

// IsGroup reports whether t is a group rather than a single id.
func (t Target) IsGroup() bool { return t.group }

// TextTree mirrors the shape of the Target it was fetched for.
type TextTree struct {
	Text  string
	Items []TextTree
	group bool
}

// Leaf returns a scalar text result.
func Leaf(text string) TextTree {
	return TextTree{Text: text}
}

// Branch returns a grouped text result.
func Branch(items ...TextTree) TextTree {
	return TextTree{Items: items, group: true}
}

// IsGroup reports whether tt is a grouped result.
func (tt TextTree) IsGroup() bool { return tt.group }

// Strings flattens the tree into its leaf texts, depth first.
func (tt TextTree) Strings() []string {
	if !tt.group {
		return []string{tt.Text}
	}
	var out []string
	for _, item := range tt.Items {
		out = append(out, item.Strings()...)
	}
	return out
}

// MarshalYAML renders a leaf as a string and a group as a list.
func (tt TextTree) MarshalYAML() (interface{}, error) {
	if !tt.group {
		return tt.Text, nil
	}
	return tt.Items, nil
}

// MarshalJSON renders a leaf as a string and a group as an array.
func (tt TextTree) MarshalJSON() ([]byte, error) {
	if !tt.group {
		return json.Marshal(tt.Text)
	}
	if tt.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(tt.Items)
}
