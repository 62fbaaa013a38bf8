package manager

import (
	"context"
	"errors"

	"github.com/carson-networks/service-console/internal/apiclient"
)

// Submission describes one form submit against a list.
type Submission[T, V any] struct {
	Operation string
	Fallback  string
	Call      func(ctx context.Context, values V) error
	// Signal runs after the list has been re-fetched.
	Signal func(ctx context.Context) error
}

// Submit validates form, runs the call through list.Mutate and settles the form. A
// validation failure or a busy list never reaches the API. A failed call leaves the
// form open with its values and records the error message on it.
func Submit[T, V any](ctx context.Context, list *List[T], form *Form[V], s Submission[T, V]) error {
	if err := form.Validate(); err != nil {
		return err
	}
	values := form.Values()

	var callErr error
	err := list.Mutate(ctx, s.Operation, func(ctx context.Context) error {
		callErr = s.Call(ctx, values)
		return callErr
	})
	if errors.Is(err, ErrBusy) {
		return err
	}
	if callErr != nil {
		form.Fail(apiclient.MessageOf(callErr, s.Fallback))
		return callErr
	}

	form.Close()
	if s.Signal != nil {
		if signalErr := s.Signal(ctx); signalErr != nil {
			return errors.Join(err, signalErr)
		}
	}
	return err
}
