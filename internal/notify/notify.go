// Package notify provides the Dispatcher implementations that deliver
// proposal lifecycle events out of band: a structured log sink, e-mail via
// Resend, a Redis pub/sub publisher, and a fan-out combinator.
//
// Every implementation satisfies services.Dispatcher. Failures are returned
// to the caller, which logs them without undoing the committed transition.
package notify

import (
	"context"
	"errors"

	"github.com/tbourn/go-proposal-backend/internal/services"
)

// Multi fans an event out to every dispatcher and joins their errors.
// A failing dispatcher does not stop the others.
type Multi []services.Dispatcher

// Dispatch implements services.Dispatcher.
func (m Multi) Dispatch(ctx context.Context, ev services.Event) error {
	var errs []error
	for _, d := range m {
		if d == nil {
			continue
		}
		if err := d.Dispatch(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
