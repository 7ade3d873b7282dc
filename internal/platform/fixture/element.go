package fixture

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

var (
	writableTypes = map[string]bool{
		"GuiTextField":     true,
		"GuiCTextField":    true,
		"GuiPasswordField": true,
		"GuiOkCodeField":   true,
		"GuiTextedit":      true,
		"GuiComboBox":      true,
	}
	pressableTypes = map[string]bool{
		"GuiButton": true,
	}
	selectableTypes = map[string]bool{
		"GuiTab":         true,
		"GuiMenu":        true,
		"GuiRadioButton": true,
		"GuiCheckBox":    true,
	}
	windowTypes = map[string]bool{
		"GuiMainWindow":  true,
		"GuiModalWindow": true,
		"GuiFrameWindow": true,
	}
)

// HardCopySize is the size of the image written by HardCopy.
var HardCopySize = image.Pt(160, 120)

// element is a live handle: every call re-resolves the id on the session's
// current screen, so handles go stale when the screen changes.
type element struct {
	sess *session
	id   model.NodeID
}

func (e *element) ID() model.NodeID { return e.id }

func (e *element) lookup() (*model.Node, error) {
	return e.sess.node(e.id)
}

func (e *element) Type() (string, error) {
	e.sess.host.mu.Lock()
	defer e.sess.host.mu.Unlock()
	n, err := e.lookup()
	if err != nil {
		return "", err
	}
	return n.Type, nil
}

func (e *element) Text() (string, error) {
	e.sess.host.mu.Lock()
	defer e.sess.host.mu.Unlock()
	n, err := e.lookup()
	if err != nil {
		return "", err
	}
	if text, ok := e.sess.texts[n.ID]; ok {
		return text, nil
	}
	return n.Text, nil
}

func (e *element) SetText(text string) error {
	e.sess.host.mu.Lock()
	defer e.sess.host.mu.Unlock()
	n, err := e.lookup()
	if err != nil {
		return err
	}
	if err := e.sess.host.record(OpSetText, n.ID, text); err != nil {
		return err
	}
	if !writableTypes[n.Type] {
		return fmt.Errorf("%s (%s) is read-only: %w", n.ID, n.Type, platform.ErrNoCapability)
	}
	e.sess.texts[n.ID] = text
	return nil
}

func (e *element) Children() ([]platform.Element, error) {
	e.sess.host.mu.Lock()
	defer e.sess.host.mu.Unlock()
	n, err := e.lookup()
	if err != nil {
		return nil, err
	}
	out := make([]platform.Element, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, &element{sess: e.sess, id: c.ID})
	}
	return out, nil
}

// act runs a capability-checked action and follows its transition.
func (e *element) act(op string, allowed map[string]bool, arg string) error {
	e.sess.host.mu.Lock()
	defer e.sess.host.mu.Unlock()
	n, err := e.lookup()
	if err != nil {
		return err
	}
	if err := e.sess.host.record(op, n.ID, arg); err != nil {
		return err
	}
	if !allowed[n.Type] {
		return fmt.Errorf("%s (%s) cannot %s: %w", n.ID, n.Type, op, platform.ErrNoCapability)
	}
	target := string(n.ID)
	if arg != "" {
		target = arg
	}
	if !e.sess.follow(op, target) && op == OpClose {
		e.sess.closed[n.ID.Window()] = true
	}
	return nil
}

func (e *element) Press() error  { return e.act(OpPress, pressableTypes, "") }
func (e *element) Select() error { return e.act(OpSelect, selectableTypes, "") }
func (e *element) Close() error  { return e.act(OpClose, windowTypes, "") }

func (e *element) SendVKey(key platform.VKey) error {
	return e.act(OpVKey, windowTypes, strconv.Itoa(int(key)))
}

func (e *element) SetKey(key string) error {
	return e.act(OpKey, map[string]bool{"GuiComboBox": true}, key)
}

// HardCopy writes a flat grey BMP of HardCopySize to path.
func (e *element) HardCopy(path string) (string, error) {
	e.sess.host.mu.Lock()
	defer e.sess.host.mu.Unlock()
	n, err := e.lookup()
	if err != nil {
		return "", err
	}
	if err := e.sess.host.record(OpHardCopy, n.ID, path); err != nil {
		return "", err
	}
	if !windowTypes[n.Type] {
		return "", fmt.Errorf("%s (%s) cannot hardcopy: %w", n.ID, n.Type, platform.ErrNoCapability)
	}

	img := image.NewRGBA(image.Rectangle{Max: HardCopySize})
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0xd4, G: 0xdb, B: 0xe3, A: 0xff}}, image.Point{}, draw.Src)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("hardcopy: %w", err)
	}
	defer f.Close()
	if err := bmp.Encode(f, img); err != nil {
		return "", fmt.Errorf("hardcopy: %w", err)
	}
	return path, nil
}
