package platform

import (
	"errors"

	"github.com/mj1618/sapgui-cli/internal/model"
)

// ErrNotFound is returned when an id does not resolve to an element.
var ErrNotFound = errors.New("element not found")

// ErrNoCapability is returned when an element does not support an action.
var ErrNoCapability = errors.New("element does not support this action")

// Engine is the host's scripting engine: the root of the object model that
// owns every connection.
type Engine interface {
	// OpenConnection opens a new connection to the named system and returns it.
	OpenConnection(system string) (Connection, error)

	// Connection returns an already open connection by index.
	Connection(index int) (Connection, error)
}

// Connection is one connection to a system. Its children are the parallel
// sessions sharing the connection's login.
type Connection interface {
	Session(index int) (HostSession, error)
}

// HostSession is one session window set of the host. All element access goes
// through FindByID.
type HostSession interface {
	// FindByID resolves an id to an element. Unknown ids wrap ErrNotFound.
	FindByID(id model.NodeID) (Element, error)

	// ObjectTree returns the host's serialized tree below root.
	ObjectTree(root model.NodeID) (string, error)

	// ActiveWindow returns the window that currently has focus.
	ActiveWindow() (Element, error)

	// CreateSession asks the host to open one more parallel session.
	CreateSession() error

	StartTransaction(tcode string) error
	EndTransaction() error

	// Info reads the session's current characteristics.
	Info() (model.SessionInfo, error)
}

// Element is a UI element of the host. Optional capabilities are expressed by
// the interfaces below; an element may also implement one and still return
// ErrNoCapability for a particular widget kind.
type Element interface {
	ID() model.NodeID
	Type() (string, error)
	Text() (string, error)
	SetText(text string) error
	Children() ([]Element, error)
}

// Presser is implemented by elements that can be pressed (buttons).
type Presser interface {
	Press() error
}

// Selector is implemented by elements that can be selected (tabs, menus,
// radio buttons).
type Selector interface {
	Select() error
}

// Closer is implemented by closable windows.
type Closer interface {
	Close() error
}

// KeySender is implemented by windows that accept virtual keys.
type KeySender interface {
	SendVKey(key VKey) error
}

// KeySetter is implemented by combo boxes, which are set by entry key.
type KeySetter interface {
	SetKey(key string) error
}

// HardCopier is implemented by windows that can write an image of themselves
// to disk. It returns the path of the written file.
type HardCopier interface {
	HardCopy(path string) (string, error)
}

// ScriptingSource yields the scripting engine once the host is scriptable.
// Until then ScriptingEngine returns an error and callers poll.
type ScriptingSource interface {
	ScriptingEngine() (Engine, error)

	// Release frees any resources held for talking to the host.
	Release()
}

// ProcessManager launches and terminates host processes.
type ProcessManager interface {
	Launch(path string) error
	Kill(imageName string) error
}
