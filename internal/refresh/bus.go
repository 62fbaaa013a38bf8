// Package refresh fans mutation signals out to the managers that depend on the mutated entity kind.
package refresh

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/service-console/internal/operator"
)

// Kind names an entity type whose lists can go stale.
type Kind string

const (
	Customers    Kind = "customers"
	Accounts     Kind = "accounts"
	Transactions Kind = "transactions"
	CreditCards  Kind = "credit_cards"
	Playlists    Kind = "playlists"
	Songs        Kind = "songs"
)

// Handler reloads a subscriber's data.
type Handler func(ctx context.Context) error

type subscription struct {
	name    string
	kinds   []Kind
	handler Handler
}

// Bus counts refresh signals and delivers each one to subscribers of the signalled kinds.
type Bus struct {
	delegator *operator.OperatorDelegator
	logger    *logrus.Logger
	count     atomic.Uint64

	mu   sync.RWMutex
	subs []subscription
}

func NewBus(delegator *operator.OperatorDelegator, logger *logrus.Logger) *Bus {
	return &Bus{
		delegator: delegator,
		logger:    logger,
	}
}

// Subscribe registers handler under name for the given kinds. A later subscription
// with the same name replaces the earlier one.
func (b *Bus) Subscribe(name string, handler Handler, kinds ...Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = lo.Reject(b.subs, func(s subscription, _ int) bool { return s.name == name })
	b.subs = append(b.subs, subscription{name: name, kinds: kinds, handler: handler})
}

func (b *Bus) Unsubscribe(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = lo.Reject(b.subs, func(s subscription, _ int) bool { return s.name == name })
}

// Signal increments the refresh count once and runs every subscriber of any of kinds,
// except source, waiting for all of them. A failing subscriber keeps its own error state
// and is only logged here; the returned error is limited to delivery failures such as
// operator.ErrStopped or a done ctx.
func (b *Bus) Signal(ctx context.Context, source string, kinds ...Kind) error {
	count := b.count.Add(1)

	b.mu.RLock()
	targets := lo.Filter(b.subs, func(s subscription, _ int) bool {
		return s.name != source && lo.Some(s.kinds, kinds)
	})
	b.mu.RUnlock()

	b.logger.WithFields(logrus.Fields{
		"source":      source,
		"kinds":       kinds,
		"count":       count,
		"subscribers": lo.Map(targets, func(s subscription, _ int) string { return s.name }),
	}).Debug("Refresh.Signal")

	if len(targets) == 0 {
		return nil
	}

	actions := lo.Map(targets, func(s subscription, _ int) operator.Action {
		return operator.ActionFunc{ActionName: "Refresh." + s.name, Fn: b.deliver(s, count)}
	})
	return b.delegator.ProcessAll(ctx, actions...)
}

func (b *Bus) deliver(s subscription, count uint64) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := s.handler(ctx); err != nil {
			b.logger.WithError(err).WithFields(logrus.Fields{
				"subscriber": s.name,
				"count":      count,
			}).Warn("Refresh.Subscriber.Error")
		}
		return nil
	}
}

// Count is the number of signals so far. It never decreases.
func (b *Bus) Count() uint64 {
	return b.count.Load()
}
