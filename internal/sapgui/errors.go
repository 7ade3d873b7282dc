package sapgui

import (
	"errors"
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/model"
)

// ErrNotConnected is returned by id-addressed operations once the session is
// disconnected. Ids obtained earlier are stale and must not be reused.
var ErrNotConnected = errors.New("not connected to SAP")

// ErrAmbiguous is returned when a text lookup that needs one element matches
// several.
var ErrAmbiguous = errors.New("ambiguous match")

// TimeoutError reports a bounded wait that ran out of attempts.
type TimeoutError struct {
	Stage    string
	Attempts int
	Last     error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timeout: %s (%d attempts)", e.Stage, e.Attempts)
	if e.Last != nil {
		msg += ": " + e.Last.Error()
	}
	return msg
}

func (e *TimeoutError) Unwrap() error { return e.Last }

// ValidationError reports a window whose title is not the expected one.
type ValidationError struct {
	Window model.NodeID
	Want   string
	Got    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s is %q, expected %q", e.Window, e.Got, e.Want)
}

// ActionError is returned by Click when both press and select failed.
type ActionError struct {
	ID     model.NodeID
	Press  error
	Select error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("click %s: press: %v; select: %v", e.ID, e.Press, e.Select)
}

func (e *ActionError) Unwrap() []error { return []error{e.Press, e.Select} }
