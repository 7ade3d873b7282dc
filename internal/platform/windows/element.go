//go:build windows

package windows

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

// hardCopyBMP is the image type HardCopy is asked for; the capture package
// decodes BMP.
const hardCopyBMP = 0

// element is a host element addressed by id. It implements every optional
// capability; widgets lacking the member report platform.ErrNoCapability.
type element struct {
	sess *session
	id   model.NodeID
}

func (e *element) ID() model.NodeID { return e.id }

func (e *element) Type() (string, error) {
	var typ string
	err := e.sess.with(e.id, func(obj *ole.IDispatch) (err error) {
		typ, err = getString(obj, "Type")
		return err
	})
	return typ, err
}

func (e *element) Text() (string, error) {
	var text string
	err := e.sess.with(e.id, func(obj *ole.IDispatch) (err error) {
		text, err = getString(obj, "Text")
		return err
	})
	return text, err
}

func (e *element) SetText(text string) error {
	return e.sess.with(e.id, func(obj *ole.IDispatch) error {
		return putString(obj, "Text", text)
	})
}

func (e *element) Children() ([]platform.Element, error) {
	var out []platform.Element
	err := e.sess.with(e.id, func(obj *ole.IDispatch) error {
		v, err := oleutil.GetProperty(obj, "Children")
		if err != nil {
			return classify(err, "Children")
		}
		coll := dispatchOf(v)
		if coll == nil {
			return nil
		}
		defer coll.Release()
		count, err := getString(coll, "Count")
		if err != nil {
			return err
		}
		var n int
		if _, err := fmt.Sscan(count, &n); err != nil {
			return fmt.Errorf("Children.Count %q: %w", count, err)
		}
		for i := 0; i < n; i++ {
			item, err := oleutil.CallMethod(coll, "ElementAt", i)
			if err != nil {
				return classify(err, "ElementAt")
			}
			c := dispatchOf(item)
			if c == nil {
				continue
			}
			abs, err := getString(c, "Id")
			c.Release()
			if err != nil {
				return err
			}
			out = append(out, &element{sess: e.sess, id: relativeID(abs)})
		}
		return nil
	})
	return out, err
}

func (e *element) invoke(method string, args ...interface{}) error {
	return e.sess.with(e.id, func(obj *ole.IDispatch) error {
		return call(obj, method, args...)
	})
}

func (e *element) Press() error  { return e.invoke("Press") }
func (e *element) Select() error { return e.invoke("Select") }
func (e *element) Close() error  { return e.invoke("Close") }

func (e *element) SendVKey(key platform.VKey) error {
	return e.invoke("SendVKey", int(key))
}

func (e *element) SetKey(key string) error {
	return e.sess.with(e.id, func(obj *ole.IDispatch) error {
		return putString(obj, "Key", key)
	})
}

func (e *element) HardCopy(path string) (string, error) {
	var written string
	err := e.sess.with(e.id, func(obj *ole.IDispatch) error {
		v, err := oleutil.CallMethod(obj, "HardCopy", path, hardCopyBMP)
		if err != nil {
			return classify(err, "HardCopy")
		}
		defer v.Clear()
		written = variantString(v)
		return nil
	})
	if err == nil && written == "" {
		written = path
	}
	return written, err
}
