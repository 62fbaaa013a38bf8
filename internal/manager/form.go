package manager

import (
	"sync"
)

// Form holds the values of one create or edit form. Check gates submission.
type Form[V any] struct {
	initial V
	check   func(V) error

	mu     sync.Mutex
	open   bool
	values V
	errMsg string
}

func NewForm[V any](initial V, check func(V) error) *Form[V] {
	return &Form[V]{initial: initial, check: check, values: initial}
}

// Open shows the form with values.
func (f *Form[V]) Open(values V) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.values = values
	f.errMsg = ""
}

// Close hides the form and clears values and error.
func (f *Form[V]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.values = f.initial
	f.errMsg = ""
}

// Set replaces the values without touching visibility.
func (f *Form[V]) Set(values V) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
}

// Update edits the values in place.
func (f *Form[V]) Update(fn func(*V)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.values)
}

func (f *Form[V]) Values() V {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form[V]) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Validate runs the check against the current values.
func (f *Form[V]) Validate() error {
	if f.check == nil {
		return nil
	}
	return f.check(f.Values())
}

func (f *Form[V]) CanSubmit() bool {
	return f.Validate() == nil
}

// Fail records a submission error and keeps values and visibility.
func (f *Form[V]) Fail(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg = message
}

func (f *Form[V]) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}
