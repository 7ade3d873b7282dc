package sapgui

import (
	"context"
	"time"
)

// poll calls fn until it succeeds or attempts run out, waiting interval
// between calls. It returns the number of attempts made and the last error.
// A cancelled ctx stops the wait early with ctx.Err().
func poll(ctx context.Context, attempts int, interval time.Duration, fn func(attempt int) error) (int, error) {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(i); err == nil {
			return i, nil
		}
		if i == attempts {
			return i, err
		}
		if perr := pause(ctx, interval); perr != nil {
			return i, perr
		}
	}
	return attempts, err
}

// pause sleeps for d unless ctx is done first.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
