package model

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// IDKey is the structural key whose value is a node id in the host's tree
// export.
const IDKey = "Id"

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindScalar ValueKind = iota
	KindMapping
	KindSequence
)

// Field is one key of a mapping, kept in payload order.
type Field struct {
	Key   string
	Value Value
}

// Value is one node of the host's serialized object tree: a scalar, a keyed
// mapping or an ordered sequence.
type Value struct {
	Kind   ValueKind
	Scalar string  // KindScalar: strings unescaped, numbers/bools/null as written
	Fields []Field // KindMapping
	Items  []Value // KindSequence
}

// ParseError reports a tree payload the host returned that is not valid
// structured data. It is not recoverable.
type ParseError struct {
	Payload string
	Err     error
}

func (e *ParseError) Error() string {
	p := e.Payload
	if len(p) > 64 {
		p = p[:64] + "..."
	}
	return fmt.Sprintf("malformed object tree %q: %v", p, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseObjectTree parses the host's tree export payload.
func ParseObjectTree(payload string) (Value, error) {
	data := []byte(payload)
	if !json.Valid(data) {
		return Value{}, &ParseError{Payload: payload, Err: fmt.Errorf("invalid JSON")}
	}
	raw, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, &ParseError{Payload: payload, Err: err}
	}
	v, err := parseValue(raw, typ)
	if err != nil {
		return Value{}, &ParseError{Payload: payload, Err: err}
	}
	return v, nil
}

func parseValue(raw []byte, typ jsonparser.ValueType) (Value, error) {
	switch typ {
	case jsonparser.Object:
		v := Value{Kind: KindMapping}
		err := jsonparser.ObjectEach(raw, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}
			child, err := parseValue(value, dt)
			if err != nil {
				return err
			}
			v.Fields = append(v.Fields, Field{Key: k, Value: child})
			return nil
		})
		return v, err
	case jsonparser.Array:
		v := Value{Kind: KindSequence}
		var walkErr error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, dt jsonparser.ValueType, _ int, err error) {
			if walkErr != nil {
				return
			}
			if err != nil {
				walkErr = err
				return
			}
			child, err := parseValue(value, dt)
			if err != nil {
				walkErr = err
				return
			}
			v.Items = append(v.Items, child)
		})
		if err == nil {
			err = walkErr
		}
		return v, err
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		return Value{Kind: KindScalar, Scalar: s}, err
	case jsonparser.Number, jsonparser.Boolean, jsonparser.Null:
		return Value{Kind: KindScalar, Scalar: string(raw)}, nil
	default:
		return Value{}, fmt.Errorf("unexpected value type %s", typ)
	}
}

// Flatten collects every node id in v in depth-first encounter order. Ids are
// found at any depth, inside mappings or sequences; duplicates are kept.
func Flatten(v Value) []NodeID {
	var ids []NodeID
	flattenValue(v, &ids)
	return ids
}

func flattenValue(v Value, ids *[]NodeID) {
	switch v.Kind {
	case KindMapping:
		for _, f := range v.Fields {
			// Only scalar ids name a node; a structured Id value is still
			// walked for nested ids.
			if f.Key == IDKey && f.Value.Kind == KindScalar {
				*ids = append(*ids, NodeID(f.Value.Scalar))
			}
			flattenValue(f.Value, ids)
		}
	case KindSequence:
		for _, item := range v.Items {
			flattenValue(item, ids)
		}
	}
}

// ObjectTree serializes nodes in the host's tree export shape. It is the
// inverse used by in-memory hosts: each node becomes a mapping with its
// properties followed by a "children" sequence.
func ObjectTree(nodes []Node) (string, error) {
	type exported struct {
		ID       NodeID     `json:"Id"`
		Type     string     `json:"Type,omitempty"`
		Name     string     `json:"Name,omitempty"`
		Text     string     `json:"Text,omitempty"`
		Children []exported `json:"children,omitempty"`
	}
	var convert func([]Node) []exported
	convert = func(ns []Node) []exported {
		out := make([]exported, 0, len(ns))
		for _, n := range ns {
			out = append(out, exported{ID: n.ID, Type: n.Type, Name: n.Name, Text: n.Text, Children: convert(n.Children)})
		}
		return out
	}
	b, err := json.Marshal(map[string]interface{}{"children": convert(nodes)})
	if err != nil {
		return "", fmt.Errorf("encode object tree: %w", err)
	}
	return string(b), nil
}
