package manager

import (
	"context"
	"sync"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/logging"
)

// Fetch loads a full list. parentID is 0 for lists that are not parent scoped.
type Fetch[T any] func(ctx context.Context, parentID int) ([]T, error)

// List owns one fetched list. Every Load bumps the generation, and a result is
// committed only while its generation is still current.
type List[T any] struct {
	name     string
	fallback string
	scoped   bool
	fetch    Fetch[T]
	logger   *logrus.Logger

	mu         sync.Mutex
	status     Status
	items      []T
	errMsg     string
	generation uint64
	parent     mo.Option[int]
	submitting bool
}

// NewList builds a list that always fetches. fallback is shown when a load error has no message.
func NewList[T any](name, fallback string, fetch Fetch[T], logger *logrus.Logger) *List[T] {
	return &List[T]{name: name, fallback: fallback, fetch: fetch, logger: logger}
}

// NewScopedList builds a list that is empty, without fetching, until a parent is set.
func NewScopedList[T any](name, fallback string, fetch Fetch[T], logger *logrus.Logger) *List[T] {
	l := NewList(name, fallback, fetch, logger)
	l.scoped = true
	return l
}

// Load re-enters loading and replaces the list with the fetch result.
func (l *List[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	parent := l.parent
	l.errMsg = ""
	if l.scoped && parent.IsAbsent() {
		l.items = nil
		l.status = StatusSuccess
		l.mu.Unlock()
		return nil
	}
	l.status = StatusLoading
	l.mu.Unlock()

	logData := logging.NewLogData(l.logger)
	logData.AddData("manager", l.name)
	logData.AddData("generation", gen)
	finish := logData.AddTiming("fetchMs")
	items, err := l.fetch(logging.WithLogData(ctx, logData), parent.OrEmpty())
	finish()

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		logData.AddData("stale", true)
		logData.Log().Debugf("Manager.%v.Stale", l.name)
		return nil
	}

	if err != nil {
		l.status = StatusError
		l.errMsg = apiclient.MessageOf(err, l.fallback)
		logData.Log().WithError(err).Warnf("Manager.%v.LoadError", l.name)
		return err
	}

	l.items = items
	l.status = StatusSuccess
	logData.AddData("count", len(items))
	logData.Log().Debugf("Manager.%v.Loaded", l.name)
	return nil
}

// SetParent changes the scope. A different parent clears the list and invalidates any
// in-flight fetch; it reports whether the parent changed.
func (l *List[T]) SetParent(parent mo.Option[int]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if parent.OrEmpty() == l.parent.OrEmpty() && parent.IsPresent() == l.parent.IsPresent() {
		return false
	}
	l.parent = parent
	l.generation++
	l.items = nil
	l.errMsg = ""
	l.status = StatusIdle
	return true
}

func (l *List[T]) Parent() mo.Option[int] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.parent
}

// Mutate runs call unless the list is loading or another mutation is running. On success
// the list is re-fetched once. On failure the list error is left alone; the caller owns
// the message.
func (l *List[T]) Mutate(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	l.mu.Lock()
	if l.status == StatusLoading || l.submitting {
		l.mu.Unlock()
		return ErrBusy
	}
	l.submitting = true
	l.mu.Unlock()

	err := call(ctx)

	l.mu.Lock()
	l.submitting = false
	l.mu.Unlock()

	if err != nil {
		l.logger.WithError(err).WithField("manager", l.name).Warnf("Manager.%v.%v.Error", l.name, operation)
		return err
	}
	l.logger.WithField("manager", l.name).Infof("Manager.%v.%v.Complete", l.name, operation)
	return l.Load(ctx)
}

// Items returns a copy of the current list.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

func (l *List[T]) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Error is the display message of the last failed load, or "".
func (l *List[T]) Error() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Busy reports whether submissions are currently refused.
func (l *List[T]) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status == StatusLoading || l.submitting
}

func (l *List[T]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}
