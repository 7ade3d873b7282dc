//go:build windows

package windows

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

type session struct {
	s   *Scripting
	obj *ole.IDispatch
}

// find resolves id on the apartment thread. The caller releases the result.
func (sess *session) find(id model.NodeID) (*ole.IDispatch, error) {
	v, err := oleutil.CallMethod(sess.obj, "FindById", string(id), false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, platform.ErrNotFound)
	}
	obj := dispatchOf(v)
	if obj == nil {
		return nil, fmt.Errorf("%s: %w", id, platform.ErrNotFound)
	}
	return obj, nil
}

// with runs fn against a freshly resolved id. Host objects go stale whenever
// the screen changes, so elements never keep them between calls.
func (sess *session) with(id model.NodeID, fn func(obj *ole.IDispatch) error) error {
	return sess.s.apt.do(func() error {
		obj, err := sess.find(id)
		if err != nil {
			return err
		}
		defer obj.Release()
		return fn(obj)
	})
}

func (sess *session) FindByID(id model.NodeID) (platform.Element, error) {
	var resolved model.NodeID
	err := sess.with(id, func(obj *ole.IDispatch) error {
		abs, err := getString(obj, "Id")
		if err != nil {
			return err
		}
		resolved = relativeID(abs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &element{sess: sess, id: resolved}, nil
}

func (sess *session) ObjectTree(root model.NodeID) (string, error) {
	var payload string
	err := sess.s.apt.do(func() error {
		id := string(root)
		if id == "" {
			var err error
			if id, err = getString(sess.obj, "Id"); err != nil {
				return err
			}
		}
		v, err := oleutil.CallMethod(sess.obj, "GetObjectTree", id)
		if err != nil {
			return classify(err, "GetObjectTree")
		}
		defer v.Clear()
		payload = variantString(v)
		return nil
	})
	return payload, err
}

func (sess *session) ActiveWindow() (platform.Element, error) {
	var id model.NodeID
	err := sess.s.apt.do(func() error {
		v, err := oleutil.GetProperty(sess.obj, "ActiveWindow")
		if err != nil {
			return classify(err, "ActiveWindow")
		}
		win := dispatchOf(v)
		if win == nil {
			return fmt.Errorf("no open window: %w", platform.ErrNotFound)
		}
		defer win.Release()
		abs, err := getString(win, "Id")
		if err != nil {
			return err
		}
		id = relativeID(abs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &element{sess: sess, id: id}, nil
}

func (sess *session) CreateSession() error {
	return sess.s.apt.do(func() error { return call(sess.obj, "CreateSession") })
}

func (sess *session) StartTransaction(tcode string) error {
	return sess.s.apt.do(func() error { return call(sess.obj, "StartTransaction", tcode) })
}

func (sess *session) EndTransaction() error {
	return sess.s.apt.do(func() error { return call(sess.obj, "EndTransaction") })
}

func (sess *session) Info() (model.SessionInfo, error) {
	var info model.SessionInfo
	err := sess.s.apt.do(func() error {
		v, err := oleutil.GetProperty(sess.obj, "Info")
		if err != nil {
			return classify(err, "Info")
		}
		obj := dispatchOf(v)
		if obj == nil {
			return fmt.Errorf("session info unavailable")
		}
		defer obj.Release()
		fields := []struct {
			name string
			dst  *string
		}{
			{"SystemName", &info.SystemName},
			{"Client", &info.Client},
			{"User", &info.User},
			{"Program", &info.Program},
			{"Transaction", &info.Transaction},
		}
		for _, f := range fields {
			if *f.dst, err = getString(obj, f.name); err != nil {
				return err
			}
		}
		return nil
	})
	return info, err
}
