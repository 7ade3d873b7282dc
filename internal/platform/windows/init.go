//go:build windows

package windows

import "github.com/mj1618/sapgui-cli/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		s, err := NewScripting()
		if err != nil {
			return nil, err
		}
		return &platform.Provider{
			Scripting: s,
			Processes: &Processes{scripting: s},
		}, nil
	}
}
