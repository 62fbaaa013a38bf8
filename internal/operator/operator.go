package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Action is a unit of work run by an Operator.
type Action interface {
	Name() string
	Perform(ctx context.Context) error
}

// ActionFunc adapts a named function to Action.
type ActionFunc struct {
	ActionName string
	Fn         func(ctx context.Context) error
}

func (a ActionFunc) Name() string {
	return a.ActionName
}

func (a ActionFunc) Perform(ctx context.Context) error {
	return a.Fn(ctx)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	logger *logrus.Logger
	queue  chan ActionItem
}

func NewOperator(logger *logrus.Logger, queue chan ActionItem) *Operator {
	return &Operator{
		logger: logger,
		queue:  queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err := o.perform(item)
	if err != nil {
		o.logger.WithError(err).WithField("action", item.action.Name()).Warnf("Operator.%v.Error", item.action.Name())
	}
	item.response <- ActionItemResponse{err: err}
}

func (o *Operator) perform(item ActionItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operator: action %s panicked: %v", item.action.Name(), r)
		}
	}()
	return item.action.Perform(item.ctx)
}

type ActionItem struct {
	ctx      context.Context
	action   Action
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
