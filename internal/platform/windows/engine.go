//go:build windows

package windows

import (
	"fmt"
	"sync"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

// Scripting reaches the SAP GUI scripting engine through the running object
// table. Objects handed out by it stay valid until Release.
type Scripting struct {
	apt *apartment

	mu     sync.Mutex
	engine *ole.IDispatch
	held   []*ole.IDispatch
}

// NewScripting starts the COM apartment thread.
func NewScripting() (*Scripting, error) {
	apt, err := newApartment()
	if err != nil {
		return nil, err
	}
	return &Scripting{apt: apt}, nil
}

// ScriptingEngine implements platform.ScriptingSource. It fails until SAP
// Logon has registered itself as "SAPGUI".
func (s *Scripting) ScriptingEngine() (platform.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		return &engine{s: s, obj: s.engine}, nil
	}
	err := s.apt.do(func() error {
		unknown, err := oleutil.CreateObject("SapROTWr.SapROTWrapper")
		if err != nil {
			return fmt.Errorf("SAP GUI scripting is not installed: %w", err)
		}
		defer unknown.Release()
		rot, err := unknown.QueryInterface(ole.IID_IDispatch)
		if err != nil {
			return fmt.Errorf("query ROT wrapper: %w", err)
		}
		defer rot.Release()

		entry, err := oleutil.CallMethod(rot, "GetROTEntry", "SAPGUI")
		if err != nil {
			return classify(err, "GetROTEntry")
		}
		gui := dispatchOf(entry)
		if gui == nil {
			return fmt.Errorf("SAPGUI is not registered yet")
		}
		defer gui.Release()

		eng, err := oleutil.CallMethod(gui, "GetScriptingEngine")
		if err != nil {
			return classify(err, "GetScriptingEngine")
		}
		if s.engine = dispatchOf(eng); s.engine == nil {
			return fmt.Errorf("scripting engine unavailable; is scripting enabled on the server?")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &engine{s: s, obj: s.engine}, nil
}

// Release implements platform.ScriptingSource.
func (s *Scripting) Release() {
	s.reset()
	s.apt.close()
}

// reset drops every held object so the next ScriptingEngine call starts from
// the running object table again.
func (s *Scripting) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.apt.do(func() error {
		for _, obj := range s.held {
			obj.Release()
		}
		if s.engine != nil {
			s.engine.Release()
		}
		s.held = nil
		s.engine = nil
		return nil
	})
}

// hold keeps obj alive until reset. held is only touched on the apartment
// thread.
func (s *Scripting) hold(obj *ole.IDispatch) *ole.IDispatch {
	s.held = append(s.held, obj)
	return obj
}

// child returns item index of the "Children" collection of obj.
func child(obj *ole.IDispatch, index int) (*ole.IDispatch, error) {
	coll, err := oleutil.GetProperty(obj, "Children")
	if err != nil {
		return nil, classify(err, "Children")
	}
	children := dispatchOf(coll)
	if children == nil {
		return nil, fmt.Errorf("Children(%d): %w", index, platform.ErrNotFound)
	}
	defer children.Release()
	item, err := oleutil.CallMethod(children, "ElementAt", index)
	if err != nil {
		return nil, fmt.Errorf("Children(%d): %w", index, platform.ErrNotFound)
	}
	found := dispatchOf(item)
	if found == nil {
		return nil, fmt.Errorf("Children(%d): %w", index, platform.ErrNotFound)
	}
	return found, nil
}

type engine struct {
	s   *Scripting
	obj *ole.IDispatch
}

func (e *engine) OpenConnection(system string) (platform.Connection, error) {
	var conn *ole.IDispatch
	err := e.s.apt.do(func() error {
		v, err := oleutil.CallMethod(e.obj, "OpenConnection", system, true)
		if err != nil {
			return classify(err, "OpenConnection")
		}
		if conn = dispatchOf(v); conn == nil {
			return fmt.Errorf("OpenConnection %q returned nothing", system)
		}
		e.s.hold(conn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &connection{s: e.s, obj: conn}, nil
}

func (e *engine) Connection(index int) (platform.Connection, error) {
	var conn *ole.IDispatch
	err := e.s.apt.do(func() error {
		c, err := child(e.obj, index)
		if err != nil {
			return err
		}
		conn = e.s.hold(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &connection{s: e.s, obj: conn}, nil
}

type connection struct {
	s   *Scripting
	obj *ole.IDispatch
}

func (c *connection) Session(index int) (platform.HostSession, error) {
	var sess *ole.IDispatch
	err := c.s.apt.do(func() error {
		obj, err := child(c.obj, index)
		if err != nil {
			return err
		}
		sess = c.s.hold(obj)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session{s: c.s, obj: sess}, nil
}
