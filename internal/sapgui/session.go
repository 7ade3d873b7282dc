package sapgui

import (
	"context"
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"go.uber.org/zap"
)

// State is the lifecycle state of a Session.
type State int

const (
	Disconnected State = iota
	Launching
	Authenticating
	Connected
)

func (s State) String() string {
	switch s {
	case Launching:
		return "launching"
	case Authenticating:
		return "authenticating"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// link is the state shared by a Session and the views returned by Use.
type link struct {
	state      State
	provider   *platform.Provider
	conn       platform.Connection
	handles    []platform.HostSession
	homeMarker string
}

// Session drives one logged-in SAP GUI connection. It is not safe for
// concurrent use; parallel sessions obtained with Use share the login but
// are driven independently.
type Session struct {
	link  *link
	index int
	opts  Options
	log   *zap.Logger
}

func newSession(provider *platform.Provider, opts Options) *Session {
	return &Session{
		link: &link{provider: provider},
		opts: opts,
		log:  opts.logger().With(zap.String("system", opts.Credentials.System)),
	}
}

// Connect restarts SAP Logon, waits for its scripting engine, logs in and
// opens the requested number of parallel sessions.
func Connect(ctx context.Context, provider *platform.Provider, opts Options) (*Session, error) {
	s := newSession(provider, opts)
	if err := s.connect(ctx); err != nil {
		s.link.state = Disconnected
		return nil, err
	}
	return s, nil
}

func (s *Session) connect(ctx context.Context) error {
	p := s.link.provider
	s.link.state = Launching

	s.killHost()
	if err := pause(ctx, s.opts.TeardownPause); err != nil {
		return err
	}
	s.log.Info("launching SAP Logon", zap.String("path", s.opts.LogonPath))
	if err := p.Processes.Launch(s.opts.LogonPath); err != nil {
		return fmt.Errorf("failed to launch SAP Logon: %w", err)
	}
	if err := pause(ctx, s.opts.LaunchPause); err != nil {
		return err
	}

	var engine platform.Engine
	attempts, err := poll(ctx, s.opts.ScriptableAttempts, s.opts.PollInterval, func(attempt int) error {
		e, err := p.Scripting.ScriptingEngine()
		if err != nil {
			s.log.Debug("scripting engine not ready", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		engine = e
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return &TimeoutError{Stage: "host did not become scriptable in time", Attempts: attempts, Last: err}
	}

	s.link.state = Authenticating
	creds := s.opts.Credentials
	conn, err := engine.OpenConnection(creds.System)
	if err != nil {
		return fmt.Errorf("failed to open connection to %q: %w", creds.System, err)
	}
	primary, err := conn.Session(0)
	if err != nil {
		return fmt.Errorf("failed to get primary session: %w", err)
	}
	s.link.conn = conn
	s.link.handles = []platform.HostSession{primary}

	if err := s.login(primary, creds); err != nil {
		return err
	}
	if err := s.captureHome(primary); err != nil {
		return err
	}

	if n := s.opts.sessionCount(); n > 1 {
		if err := s.openParallel(ctx, primary, n); err != nil {
			return err
		}
	}
	s.link.state = Connected
	s.log.Info("connected", zap.String("user", creds.User), zap.Int("sessions", len(s.link.handles)))
	return nil
}

func (s *Session) login(host platform.HostSession, creds model.Credentials) error {
	fields := []struct {
		id    model.NodeID
		value string
	}{
		{platform.LogonUserField, creds.User},
		{platform.LogonPasswordField, creds.Password},
		{platform.LogonLanguageField, creds.Language},
	}
	for _, f := range fields {
		if f.id == platform.LogonLanguageField && f.value == "" {
			continue
		}
		el, err := host.FindByID(f.id)
		if err != nil {
			return fmt.Errorf("logon screen: %w", err)
		}
		if err := el.SetText(f.value); err != nil {
			return fmt.Errorf("logon screen: set %s: %w", f.id, err)
		}
	}

	wnd, err := host.FindByID(model.MainWindow)
	if err != nil {
		return fmt.Errorf("logon screen: %w", err)
	}
	ks, ok := wnd.(platform.KeySender)
	if !ok {
		return fmt.Errorf("logon screen: %s: %w", model.MainWindow, platform.ErrNoCapability)
	}
	if err := ks.SendVKey(platform.VKeyEnter); err != nil {
		return fmt.Errorf("failed to submit logon: %w", err)
	}
	return nil
}

func (s *Session) captureHome(host platform.HostSession) error {
	if s.opts.HomeMarker != "" {
		s.link.homeMarker = s.opts.HomeMarker
		return nil
	}
	wnd, err := host.FindByID(model.MainWindow)
	if err != nil {
		return fmt.Errorf("failed to read main window: %w", err)
	}
	text, err := wnd.Text()
	if err != nil {
		return fmt.Errorf("failed to read main window: %w", err)
	}
	s.link.homeMarker = text
	return nil
}

func (s *Session) openParallel(ctx context.Context, primary platform.HostSession, n int) error {
	for i := 1; i < n; i++ {
		if err := primary.CreateSession(); err != nil {
			return fmt.Errorf("failed to create session %d: %w", i, err)
		}
	}
	if err := pause(ctx, s.opts.SessionPause); err != nil {
		return err
	}
	for i := 1; i < n; i++ {
		h, err := s.link.conn.Session(i)
		if err != nil {
			return fmt.Errorf("failed to collect session %d: %w", i, err)
		}
		s.link.handles = append(s.link.handles, h)
	}
	return nil
}

// Attach joins the sessions of an already running, logged-in SAP GUI
// (connection 0) without restarting or logging in.
func Attach(ctx context.Context, provider *platform.Provider, opts Options) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := newSession(provider, opts)
	engine, err := provider.Scripting.ScriptingEngine()
	if err != nil {
		return nil, fmt.Errorf("SAP GUI scripting is not available: %w", err)
	}
	conn, err := engine.Connection(0)
	if err != nil {
		return nil, fmt.Errorf("no open connection: %w", err)
	}
	s.link.conn = conn
	limit := opts.MaxSessions
	if limit < 1 {
		limit = 1
	}
	for i := 0; i < limit; i++ {
		h, err := conn.Session(i)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("no open session: %w", err)
			}
			break
		}
		s.link.handles = append(s.link.handles, h)
	}
	if err := s.captureHome(s.link.handles[0]); err != nil {
		return nil, err
	}
	s.link.state = Connected
	s.log.Debug("attached", zap.Int("sessions", len(s.link.handles)))
	return s, nil
}

// Close disconnects every view of the session and terminates SAP Logon.
func (s *Session) Close() error {
	if s.link.state == Disconnected {
		return nil
	}
	s.Detach()
	s.killHost()
	return nil
}

// Detach disconnects without touching the host process.
func (s *Session) Detach() {
	s.link.state = Disconnected
	s.link.handles = nil
	s.link.conn = nil
}

func (s *Session) killHost() {
	p := s.link.provider
	if p == nil || p.Processes == nil {
		return
	}
	if err := p.Processes.Kill(s.opts.ProcessName); err != nil {
		s.log.Debug("kill failed", zap.String("process", s.opts.ProcessName), zap.Error(err))
	}
}

// State reports the lifecycle state.
func (s *Session) State() State { return s.link.state }

// Connected reports whether id-addressed operations are valid.
func (s *Session) Connected() bool { return s.link.state == Connected }

// HomeMarker is the main window title captured after login.
func (s *Session) HomeMarker() string { return s.link.homeMarker }

// System is the connection description the session logged in to.
func (s *Session) System() string { return s.opts.Credentials.System }

// User is the user the session logged in as.
func (s *Session) User() string { return s.opts.Credentials.User }

// Index is the parallel session this view drives.
func (s *Session) Index() int { return s.index }

// Windows returns the host handle of every parallel session.
func (s *Session) Windows() []platform.HostSession {
	out := make([]platform.HostSession, len(s.link.handles))
	copy(out, s.link.handles)
	return out
}

// Use returns a view of the session that drives parallel session i.
func (s *Session) Use(i int) (*Session, error) {
	if !s.Connected() {
		return nil, ErrNotConnected
	}
	if i < 0 || i >= len(s.link.handles) {
		return nil, fmt.Errorf("session %d out of range [0, %d)", i, len(s.link.handles))
	}
	return &Session{link: s.link, index: i, opts: s.opts, log: s.log.With(zap.Int("session", i))}, nil
}

func (s *Session) host() (platform.HostSession, error) {
	if !s.Connected() || s.index >= len(s.link.handles) {
		return nil, ErrNotConnected
	}
	return s.link.handles[s.index], nil
}
