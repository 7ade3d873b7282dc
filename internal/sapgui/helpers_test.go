package sapgui

import (
	"context"
	"testing"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform/fixture"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Credentials = model.Credentials{System: "ERP Production", User: "JDOE", Password: "secret", Language: "EN"}
	opts.PollInterval = time.Millisecond
	opts.TeardownPause = 0
	opts.LaunchPause = 0
	opts.SessionPause = 0
	return opts
}

func newHost(t *testing.T) *fixture.Host {
	t.Helper()
	h, err := fixture.Sample()
	require.NoError(t, err)
	return h
}

func connect(t *testing.T, h *fixture.Host, opts Options) *Session {
	t.Helper()
	s, err := Connect(context.Background(), h.Provider(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// connected returns a logged-in session on the sample host's home screen.
func connected(t *testing.T) (*Session, *fixture.Host) {
	t.Helper()
	h := newHost(t)
	return connect(t, h, testOptions()), h
}

func attachTo(t *testing.T, yaml string) (*Session, *fixture.Host) {
	t.Helper()
	h, err := fixture.Parse([]byte(yaml))
	require.NoError(t, err)
	s, err := Attach(context.Background(), h.Provider(), testOptions())
	require.NoError(t, err)
	return s, h
}

func callIDs(calls []fixture.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.ID
	}
	return out
}
