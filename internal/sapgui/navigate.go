package sapgui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"go.uber.org/zap"
)

// Info reads the session's current characteristics from the host.
func (s *Session) Info() (model.SessionInfo, error) {
	host, err := s.host()
	if err != nil {
		return model.SessionInfo{}, err
	}
	info, err := host.Info()
	if err != nil {
		return model.SessionInfo{}, fmt.Errorf("session info: %w", err)
	}
	return info, nil
}

// StartTransaction starts tcode and returns the refreshed characteristics.
func (s *Session) StartTransaction(tcode string) (model.SessionInfo, error) {
	host, err := s.host()
	if err != nil {
		return model.SessionInfo{}, err
	}
	if err := host.StartTransaction(tcode); err != nil {
		return model.SessionInfo{}, fmt.Errorf("failed to execute transaction code %q: %w", tcode, err)
	}
	s.log.Info("started transaction", zap.String("tcode", tcode))
	return s.Info()
}

// EndTransaction leaves the current transaction.
func (s *Session) EndTransaction() (model.SessionInfo, error) {
	host, err := s.host()
	if err != nil {
		return model.SessionInfo{}, err
	}
	if err := host.EndTransaction(); err != nil {
		return model.SessionInfo{}, fmt.Errorf("failed to end transaction: %w", err)
	}
	return s.Info()
}

// ValidateWindowName checks the title of window n against name.
func (s *Session) ValidateWindowName(name string, window int, caseSensitive bool) error {
	id := model.WindowID(window)
	got, err := s.GetText(id)
	if err != nil {
		return err
	}
	match := got == name
	if !caseSensitive {
		match = strings.EqualFold(got, name)
	}
	if !match {
		return &ValidationError{Window: id, Want: name, Got: got}
	}
	return nil
}

// FindInputByLabel returns the element that follows the label with exactly
// this text among the active window's children.
func (s *Session) FindInputByLabel(label string) (model.NodeID, error) {
	host, err := s.host()
	if err != nil {
		return "", err
	}
	wnd, err := host.ActiveWindow()
	if err != nil {
		return "", fmt.Errorf("active window: %w", err)
	}
	children, err := wnd.Children()
	if err != nil {
		return "", fmt.Errorf("children of %s: %w", wnd.ID(), err)
	}
	for i, child := range children {
		typ, err := child.Type()
		if err != nil || typ != "GuiLabel" {
			continue
		}
		if text, err := child.Text(); err != nil || text != label {
			continue
		}
		if i+1 < len(children) {
			return children[i+1].ID(), nil
		}
	}
	return "", fmt.Errorf("input field for label %q: %w", label, platform.ErrNotFound)
}

// GoHome backs out of the current screen until the main window shows the
// home marker, dismissing popups and confirming exit dialogs on the way.
func (s *Session) GoHome() error {
	popup := model.WindowID(1)
	attempts := s.opts.HomeAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		if s.WindowIsOpen(popup) {
			if err := s.CloseWindow(popup); err != nil {
				s.log.Debug("close popup failed", zap.Error(err))
			}
			if s.WindowIsOpen(popup) && s.IsExitConfirmationDialog(popup) {
				if err := s.Click(platform.ExitConfirmButton); err != nil {
					s.log.Debug("exit confirmation failed", zap.Error(err))
				}
			}
		}

		title, err := s.GetText(model.MainWindow)
		if err != nil {
			return err
		}
		if title == s.link.homeMarker {
			return nil
		}
		s.log.Debug("going back", zap.String("title", title), zap.Int("attempt", i))
		if err := s.Press(platform.BackButton); err != nil {
			return err
		}
	}
	return &TimeoutError{Stage: "main screen not reached", Attempts: attempts}
}

// WaitForWindow polls until id resolves.
func (s *Session) WaitForWindow(ctx context.Context, id model.NodeID, attempts int, interval time.Duration) error {
	if !s.Connected() {
		return ErrNotConnected
	}
	n, err := poll(ctx, attempts, interval, func(int) error {
		if s.WindowIsOpen(id) {
			return nil
		}
		return fmt.Errorf("%s: %w", id, platform.ErrNotFound)
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}
	return &TimeoutError{Stage: fmt.Sprintf("window %s did not open", id), Attempts: n, Last: err}
}
