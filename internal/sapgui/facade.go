package sapgui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"go.uber.org/zap"
)

// Find resolves id on the active parallel session.
func (s *Session) Find(id model.NodeID) (platform.Element, error) {
	host, err := s.host()
	if err != nil {
		return nil, err
	}
	el, err := host.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", id, err)
	}
	return el, nil
}

// GetText returns the display text of id.
func (s *Session) GetText(id model.NodeID) (string, error) {
	el, err := s.Find(id)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", id, err)
	}
	return text, nil
}

// GetTexts returns the texts of ids in order.
func (s *Session) GetTexts(ids []model.NodeID) ([]string, error) {
	tree, err := s.Fetch(model.Many(ids))
	if err != nil {
		return nil, err
	}
	return tree.Strings(), nil
}

// Fetch reads the texts of a target, recursing into groups so the result has
// the target's shape.
func (s *Session) Fetch(t model.Target) (model.TextTree, error) {
	if !t.IsGroup() {
		text, err := s.GetText(t.ID)
		if err != nil {
			return model.TextTree{}, err
		}
		return model.Leaf(text), nil
	}
	items := make([]model.TextTree, 0, len(t.Items))
	for _, item := range t.Items {
		tt, err := s.Fetch(item)
		if err != nil {
			return model.TextTree{}, err
		}
		items = append(items, tt)
	}
	return model.Branch(items...), nil
}

// SetText writes value into id.
func (s *Session) SetText(id model.NodeID, value string) error {
	el, err := s.Find(id)
	if err != nil {
		return err
	}
	if err := el.SetText(value); err != nil {
		return fmt.Errorf("set %s: %w", id, err)
	}
	s.log.Debug("set text", zap.String("id", string(id)))
	return nil
}

// SetMany writes every value in id order. It stops at the first failure;
// earlier writes stay applied.
func (s *Session) SetMany(values map[model.NodeID]string) error {
	ids := make([]model.NodeID, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := s.SetText(id, values[id]); err != nil {
			return err
		}
	}
	return nil
}

// Click presses id, falling back to a single select when the element cannot
// be pressed or the press fails.
func (s *Session) Click(id model.NodeID) error {
	el, err := s.Find(id)
	if err != nil {
		return err
	}

	pressErr := platform.ErrNoCapability
	if p, ok := el.(platform.Presser); ok {
		if pressErr = p.Press(); pressErr == nil {
			return nil
		}
	}
	s.log.Debug("press failed, selecting", zap.String("id", string(id)), zap.Error(pressErr))

	selectErr := platform.ErrNoCapability
	if sel, ok := el.(platform.Selector); ok {
		if selectErr = sel.Select(); selectErr == nil {
			return nil
		}
	}
	return &ActionError{ID: id, Press: pressErr, Select: selectErr}
}

// Press presses id without the select fallback.
func (s *Session) Press(id model.NodeID) error {
	el, err := s.Find(id)
	if err != nil {
		return err
	}
	p, ok := el.(platform.Presser)
	if !ok {
		return fmt.Errorf("press %s: %w", id, platform.ErrNoCapability)
	}
	if err := p.Press(); err != nil {
		return fmt.Errorf("press %s: %w", id, err)
	}
	return nil
}

// CloseWindow closes the window (or closable element) id.
func (s *Session) CloseWindow(id model.NodeID) error {
	el, err := s.Find(id)
	if err != nil {
		return err
	}
	c, ok := el.(platform.Closer)
	if !ok {
		return fmt.Errorf("close %s: %w", id, platform.ErrNoCapability)
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("close %s: %w", id, err)
	}
	return nil
}

// SetKey selects the entry key of the combo box id.
func (s *Session) SetKey(id model.NodeID, key string) error {
	el, err := s.Find(id)
	if err != nil {
		return err
	}
	ks, ok := el.(platform.KeySetter)
	if !ok {
		return fmt.Errorf("set key %s: %w", id, platform.ErrNoCapability)
	}
	if err := ks.SetKey(key); err != nil {
		return fmt.Errorf("set key %s: %w", id, err)
	}
	return nil
}

// HardCopy writes an image of window to path and returns the path the host
// actually wrote.
func (s *Session) HardCopy(window model.NodeID, path string) (string, error) {
	el, err := s.Find(window)
	if err != nil {
		return "", err
	}
	hc, ok := el.(platform.HardCopier)
	if !ok {
		return "", fmt.Errorf("hardcopy %s: %w", window, platform.ErrNoCapability)
	}
	written, err := hc.HardCopy(path)
	if err != nil {
		return "", fmt.Errorf("hardcopy %s: %w", window, err)
	}
	return written, nil
}

// WindowIsOpen reports whether id resolves. Any failure means "not open".
func (s *Session) WindowIsOpen(id model.NodeID) bool {
	_, err := s.Find(id)
	return err == nil
}

// IsExitConfirmationDialog reports whether some element below id has a text
// containing "EXIT" (any case) and a question mark.
func (s *Session) IsExitConfirmationDialog(id model.NodeID) bool {
	ids, err := s.FindAll(id)
	if err != nil {
		s.log.Debug("exit dialog probe failed", zap.String("id", string(id)), zap.Error(err))
		return false
	}
	texts, err := s.GetTexts(ids)
	if err != nil {
		s.log.Debug("exit dialog probe failed", zap.String("id", string(id)), zap.Error(err))
		return false
	}
	for _, text := range texts {
		if isExitQuestion(text) {
			return true
		}
	}
	return false
}

func isExitQuestion(text string) bool {
	return strings.Contains(strings.ToUpper(text), "EXIT") && strings.Contains(text, "?")
}

// SendVKey sends a virtual key to window.
func (s *Session) SendVKey(window model.NodeID, key platform.VKey) error {
	el, err := s.Find(window)
	if err != nil {
		return err
	}
	ks, ok := el.(platform.KeySender)
	if !ok {
		return fmt.Errorf("send key to %s: %w", window, platform.ErrNoCapability)
	}
	if err := ks.SendVKey(key); err != nil {
		return fmt.Errorf("send key %d to %s: %w", key, window, err)
	}
	return nil
}

// Execute presses F8 on the main window.
func (s *Session) Execute() error {
	return s.SendVKey(model.MainWindow, platform.VKeyExecute)
}

// IsNotFound reports whether err means an id did not resolve.
func IsNotFound(err error) bool {
	return errors.Is(err, platform.ErrNotFound)
}
