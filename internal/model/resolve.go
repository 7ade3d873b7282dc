package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NotFoundText is the sentinel printed for a text lookup without matches.
const NotFoundText = "Not found"

// ResolutionKind is the arity of a text lookup.
type ResolutionKind int

const (
	NotFound ResolutionKind = iota
	Single
	Multiple
)

// Resolution is the result of resolving a text fragment to node ids: nothing,
// exactly one id, or an ordered list of ids. Callers check NotFound before
// Multiple.
type Resolution struct {
	kind ResolutionKind
	ids  []NodeID
}

// Kind returns the arity of the result.
func (r Resolution) Kind() ResolutionKind { return r.kind }

// Found reports whether at least one node matched.
func (r Resolution) Found() bool { return r.kind != NotFound }

// ID returns the matched id of a Single result, or "" otherwise.
func (r Resolution) ID() NodeID {
	if r.kind != Single {
		return ""
	}
	return r.ids[0]
}

// IDs returns every matched id in tree order.
func (r Resolution) IDs() []NodeID { return r.ids }

func (r Resolution) String() string {
	switch r.kind {
	case NotFound:
		return NotFoundText
	case Single:
		return string(r.ids[0])
	default:
		parts := make([]string, len(r.ids))
		for i, id := range r.ids {
			parts[i] = string(id)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
}

// value is the wire form: the sentinel string, a scalar id or a list of ids.
func (r Resolution) value() interface{} {
	switch r.kind {
	case NotFound:
		return NotFoundText
	case Single:
		return r.ids[0]
	default:
		return r.ids
	}
}

func (r Resolution) MarshalYAML() (interface{}, error) { return r.value(), nil }

func (r Resolution) MarshalJSON() ([]byte, error) { return json.Marshal(r.value()) }

// NewResolution builds the result for the given matches.
func NewResolution(matches []NodeID) Resolution {
	switch len(matches) {
	case 0:
		return Resolution{kind: NotFound}
	case 1:
		return Resolution{kind: Single, ids: matches}
	default:
		return Resolution{kind: Multiple, ids: matches}
	}
}

// Resolve matches query against texts[i] for each ids[i] by substring
// containment. Unless caseSensitive, both sides are lower-cased first. An
// empty query matches every node. ids and texts must have the same length.
func Resolve(ids []NodeID, texts []string, query string, caseSensitive bool) Resolution {
	if len(ids) != len(texts) {
		panic(fmt.Sprintf("model.Resolve: %d ids but %d texts", len(ids), len(texts)))
	}
	if !caseSensitive {
		query = strings.ToLower(query)
	}
	var matches []NodeID
	for i, id := range ids {
		text := texts[i]
		if !caseSensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, query) {
			matches = append(matches, id)
		}
	}
	return NewResolution(matches)
}
