package fixture

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

const maxSessions = 6

// Call is one entry of the host's call log.
type Call struct {
	Op  string
	ID  string
	Arg string
}

func (c Call) String() string {
	if c.Arg == "" {
		return c.Op + " " + c.ID
	}
	return fmt.Sprintf("%s %s=%q", c.Op, c.ID, c.Arg)
}

// Host is an in-memory SAP GUI. It is safe for concurrent use.
type Host struct {
	mu          sync.Mutex
	tree        Tree
	running     bool
	unavailable int
	conns       []*connection
	failures    map[string]error
	calls       []Call
}

// New returns a running host for tree.
func New(tree Tree) (*Host, error) {
	if err := tree.validate(); err != nil {
		return nil, err
	}
	h := &Host{tree: tree, running: true, failures: map[string]error{}}
	if tree.Attach != "" {
		c := &connection{host: h}
		c.sessions = append(c.sessions, h.newSession(c, tree.Attach))
		h.conns = append(h.conns, c)
	}
	return h, nil
}

// Provider returns a platform provider backed by h.
func (h *Host) Provider() *platform.Provider {
	return &platform.Provider{Scripting: h, Processes: h}
}

// FailOn makes op on id return err. An empty id matches every target.
func (h *Host) FailOn(op string, id model.NodeID, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures[op+":"+string(id)] = err
}

// SetUnscriptable makes the next n engine polls fail.
func (h *Host) SetUnscriptable(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unavailable = n
}

// Running reports whether the host process is up.
func (h *Host) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// System is the connection description the host accepts.
func (h *Host) System() string { return h.tree.System }

// Attached reports whether a connection is already open, so a session can
// attach without logging in.
func (h *Host) Attached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running && len(h.conns) > 0
}

// Calls returns a copy of the call log.
func (h *Host) Calls() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Call, len(h.calls))
	copy(out, h.calls)
	return out
}

// CallsFor returns the logged calls of one operation.
func (h *Host) CallsFor(op string) []Call {
	var out []Call
	for _, c := range h.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Screen returns the current screen of connection conn, session sess.
func (h *Host) Screen(conn, sess int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn >= len(h.conns) || sess >= len(h.conns[conn].sessions) {
		return ""
	}
	return h.conns[conn].sessions[sess].screen
}

// record logs a call and returns the injected failure for it, if any.
// Callers hold h.mu.
func (h *Host) record(op string, id model.NodeID, arg string) error {
	h.calls = append(h.calls, Call{Op: op, ID: string(id), Arg: arg})
	if err, ok := h.failures[op+":"+string(id)]; ok {
		return err
	}
	return h.failures[op+":"]
}

// ScriptingEngine implements platform.ScriptingSource.
func (h *Host) ScriptingEngine() (platform.Engine, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return nil, fmt.Errorf("SAP Logon is not running")
	}
	if h.unavailable > 0 {
		h.unavailable--
		return nil, fmt.Errorf("scripting engine not registered yet")
	}
	return engine{h: h}, nil
}

// Release implements platform.ScriptingSource.
func (h *Host) Release() {}

// Launch implements platform.ProcessManager.
func (h *Host) Launch(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.record(OpLaunch, "", path); err != nil {
		return err
	}
	h.running = true
	h.unavailable = h.tree.ScriptableAfter
	return nil
}

// Kill implements platform.ProcessManager. Killing the logon pad drops every
// connection.
func (h *Host) Kill(imageName string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.record(OpKill, model.NodeID(imageName), ""); err != nil {
		return err
	}
	if strings.EqualFold(imageName, "saplogon.exe") {
		h.running = false
		h.conns = nil
	}
	return nil
}

func (h *Host) newSession(c *connection, screen string) *session {
	return &session{
		host:   h,
		conn:   c,
		screen: screen,
		texts:  map[model.NodeID]string{},
		closed: map[model.NodeID]bool{},
		info:   h.tree.Info,
	}
}

type engine struct{ h *Host }

func (e engine) OpenConnection(system string) (platform.Connection, error) {
	h := e.h
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.record(OpOpen, "", system); err != nil {
		return nil, err
	}
	if h.tree.System != "" && !strings.EqualFold(system, h.tree.System) {
		return nil, fmt.Errorf("system %q: %w", system, platform.ErrNotFound)
	}
	c := &connection{host: h}
	c.sessions = append(c.sessions, h.newSession(c, h.tree.Start))
	h.conns = append(h.conns, c)
	return c, nil
}

func (e engine) Connection(index int) (platform.Connection, error) {
	h := e.h
	h.mu.Lock()
	defer h.mu.Unlock()
	if index < 0 || index >= len(h.conns) {
		return nil, fmt.Errorf("connection %d: %w", index, platform.ErrNotFound)
	}
	return h.conns[index], nil
}

type connection struct {
	host     *Host
	sessions []*session
}

func (c *connection) Session(index int) (platform.HostSession, error) {
	c.host.mu.Lock()
	defer c.host.mu.Unlock()
	if index < 0 || index >= len(c.sessions) {
		return nil, fmt.Errorf("session %d: %w", index, platform.ErrNotFound)
	}
	return c.sessions[index], nil
}
