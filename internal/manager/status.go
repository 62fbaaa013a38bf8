// Package manager holds the list and form state machines shared by every entity screen.
package manager

import "errors"

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when a submission is attempted while the manager is loading.
	ErrBusy = errors.New("manager: busy")
	// ErrNoParent is returned by a scoped submission without a selected parent.
	ErrNoParent = errors.New("manager: no parent selected")
)
