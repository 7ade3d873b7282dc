package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the host backends for the current OS.
type Provider struct {
	Scripting ScriptingSource
	Processes ProcessManager
}

// Release frees the scripting backend.
func (p *Provider) Release() {
	if p != nil && p.Scripting != nil {
		p.Scripting.Release()
	}
}

// ErrUnsupported is returned on platforms without a live scripting backend.
var ErrUnsupported = fmt.Errorf("sapgui-cli needs the SAP GUI scripting engine, which is not available on %s/%s; supported: windows (or use --fixture)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/windows/init.go for the Windows registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
