package platform

import (
	"errors"
	"runtime"
	"testing"
)

func TestNewProvider_ReturnsProvider(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("skipping on non-windows")
	}
	// The windows backend registers itself only when its package is linked
	// into the test binary, so this just verifies NewProvider doesn't panic.
	p, err := NewProvider()
	if err == nil {
		p.Release()
	}
}

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider()
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

type stubSource struct{ released bool }

func (s *stubSource) ScriptingEngine() (Engine, error) { return nil, errors.New("not scriptable") }
func (s *stubSource) Release()                        { s.released = true }

func TestProvider_Release(t *testing.T) {
	src := &stubSource{}
	p := &Provider{Scripting: src}
	p.Release()
	if !src.released {
		t.Error("Release should release the scripting source")
	}

	var nilProvider *Provider
	nilProvider.Release()
}
