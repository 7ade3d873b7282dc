package sapgui

import (
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
	"go.uber.org/zap"
)

// DefaultLogonPath is where SAP GUI for Windows installs the logon pad.
const DefaultLogonPath = `C:\Program Files (x86)\SAP\FrontEnd\SAPgui\saplogon.exe`

// Options configure a Session. Start from DefaultOptions; zero durations
// disable the corresponding pause.
type Options struct {
	Credentials model.Credentials

	// Sessions is the number of parallel sessions to open, clamped to
	// [1, MaxSessions].
	Sessions    int
	MaxSessions int

	LogonPath          string
	ProcessName        string
	SpreadsheetProcess string

	ScriptableAttempts int
	PollInterval       time.Duration
	TeardownPause      time.Duration
	LaunchPause        time.Duration
	SessionPause       time.Duration

	// HomeMarker overrides the main window title captured after login.
	HomeMarker   string
	HomeAttempts int

	Logger *zap.Logger
}

// DefaultOptions returns the timings of a desktop SAP GUI installation.
func DefaultOptions() Options {
	return Options{
		Sessions:           1,
		MaxSessions:        6,
		LogonPath:          DefaultLogonPath,
		ProcessName:        "saplogon.exe",
		SpreadsheetProcess: "excel.exe",
		ScriptableAttempts: 120,
		PollInterval:       time.Second,
		TeardownPause:      time.Second,
		LaunchPause:        time.Second,
		SessionPause:       3 * time.Second,
		HomeAttempts:       10,
	}
}

func (o Options) sessionCount() int {
	limit := o.MaxSessions
	if limit < 1 {
		limit = 1
	}
	n := o.Sessions
	if n < 1 {
		n = 1
	}
	if n > limit {
		n = limit
	}
	return n
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
