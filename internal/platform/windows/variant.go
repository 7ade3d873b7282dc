//go:build windows

package windows

import (
	"errors"
	"fmt"
	"strings"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

// HRESULTs the scripting API answers with when a member or object is missing.
const (
	dispUnknownName    = 0x80020006
	dispMemberNotFound = 0x80020003
)

// classify maps COM failures onto the platform error kinds. what names the
// call for the message.
func classify(err error, what string) error {
	if err == nil {
		return nil
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		switch oleErr.Code() {
		case dispUnknownName, dispMemberNotFound:
			return fmt.Errorf("%s: %w", what, platform.ErrNoCapability)
		}
		if desc := oleErr.String(); desc != "" {
			return fmt.Errorf("%s: %s", what, desc)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

func call(obj *ole.IDispatch, name string, args ...interface{}) error {
	v, err := oleutil.CallMethod(obj, name, args...)
	if err != nil {
		return classify(err, name)
	}
	_ = v.Clear()
	return nil
}

func getString(obj *ole.IDispatch, name string) (string, error) {
	v, err := oleutil.GetProperty(obj, name)
	if err != nil {
		return "", classify(err, name)
	}
	defer v.Clear()
	return variantString(v), nil
}

func putString(obj *ole.IDispatch, name, value string) error {
	v, err := oleutil.PutProperty(obj, name, value)
	if err != nil {
		return classify(err, name)
	}
	_ = v.Clear()
	return nil
}

// dispatchOf takes ownership of the IDispatch held by v. A nil result means
// the host answered Nothing.
func dispatchOf(v *ole.VARIANT) *ole.IDispatch {
	if v == nil || v.VT != ole.VT_DISPATCH {
		if v != nil {
			_ = v.Clear()
		}
		return nil
	}
	return v.ToIDispatch()
}

func variantString(v *ole.VARIANT) string {
	switch v.VT {
	case ole.VT_EMPTY, ole.VT_NULL:
		return ""
	case ole.VT_BSTR:
		return v.ToString()
	}
	return fmt.Sprint(v.Value())
}

// relativeID strips the "/app/con[n]/ses[n]/" prefix the host puts on ids.
func relativeID(id string) model.NodeID {
	if i := strings.Index(id, "wnd["); i > 0 {
		return model.NodeID(id[i:])
	}
	return model.NodeID(id)
}
