package sapgui

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"go.uber.org/zap"
)

// FindAll returns every id in the tree below root, depth first, root included.
func (s *Session) FindAll(root model.NodeID) ([]model.NodeID, error) {
	host, err := s.host()
	if err != nil {
		return nil, err
	}
	payload, err := host.ObjectTree(root)
	if err != nil {
		return nil, fmt.Errorf("object tree of %s: %w", root, err)
	}
	v, err := model.ParseObjectTree(payload)
	if err != nil {
		return nil, err
	}
	return model.Flatten(v), nil
}

// FindByText returns the ids below root whose text contains text. Matching
// ignores case unless caseSensitive is set.
func (s *Session) FindByText(text string, root model.NodeID, caseSensitive bool) (model.Resolution, error) {
	if root == "" {
		root = model.MainWindow
	}
	ids, err := s.FindAll(root)
	if err != nil {
		return model.Resolution{}, err
	}
	texts, err := s.GetTexts(ids)
	if err != nil {
		return model.Resolution{}, err
	}
	res := model.Resolve(ids, texts, text, caseSensitive)
	s.log.Debug("resolved text", zap.String("query", text), zap.String("root", string(root)), zap.Int("matches", len(res.IDs())))
	return res, nil
}

// Nodes returns the tree below root with each node's type and text, in the
// same order as FindAll.
func (s *Session) Nodes(root model.NodeID) ([]model.FlatNode, error) {
	ids, err := s.FindAll(root)
	if err != nil {
		return nil, err
	}
	nodes := make([]model.FlatNode, 0, len(ids))
	for _, id := range ids {
		el, err := s.Find(id)
		if err != nil {
			return nil, err
		}
		typ, err := el.Type()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", id, err)
		}
		text, err := el.Text()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", id, err)
		}
		nodes = append(nodes, model.FlatNode{ID: id, Type: model.CodeOf(typ, id), Text: text})
	}
	return nodes, nil
}

// FindOne resolves text to exactly one id below root. No match wraps
// platform.ErrNotFound; several matches return ErrAmbiguous.
func (s *Session) FindOne(text string, root model.NodeID, caseSensitive bool) (model.NodeID, error) {
	res, err := s.FindByText(text, root, caseSensitive)
	if err != nil {
		return "", err
	}
	switch res.Kind() {
	case model.NotFound:
		return "", fmt.Errorf("no element with text %q: %w", text, platform.ErrNotFound)
	case model.Multiple:
		return "", fmt.Errorf("%w: %d elements contain %q: %v", ErrAmbiguous, len(res.IDs()), text, res.IDs())
	}
	return res.ID(), nil
}
