//go:build windows

package windows

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	ole "github.com/go-ole/go-ole"
)

// sFalse is returned by CoInitializeEx when the thread was already
// initialised; it is not a failure.
const sFalse = 0x00000001

var errReleased = errors.New("scripting backend released")

// apartment owns one locked OS thread initialised as a single-threaded COM
// apartment. SAP GUI objects may only be used from the thread that created
// them, so every call is sent here as a closure.
type apartment struct {
	calls chan func()
	done  chan struct{}
	once  sync.Once
}

func newApartment() (*apartment, error) {
	a := &apartment{
		calls: make(chan func()),
		done:  make(chan struct{}),
	}
	ready := make(chan error, 1)
	go a.loop(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return a, nil
}

func (a *apartment) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			ready <- fmt.Errorf("CoInitializeEx: %w", err)
			return
		}
	}
	defer ole.CoUninitialize()
	ready <- nil

	for {
		select {
		case fn := <-a.calls:
			fn()
		case <-a.done:
			return
		}
	}
}

// do runs fn on the apartment thread and waits for it.
func (a *apartment) do(fn func() error) error {
	errc := make(chan error, 1)
	select {
	case a.calls <- func() { errc <- fn() }:
	case <-a.done:
		return errReleased
	}
	return <-errc
}

func (a *apartment) close() {
	a.once.Do(func() { close(a.done) })
}
