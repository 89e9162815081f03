package mold

import (
	"sync"
)

// Immutable is a mold whose data is given once, at creation.
// Validation happens on the first read and the result is kept for the mold's lifetime,
// so an Immutable may be shared between goroutines.
type Immutable struct {
	mu    sync.Mutex
	store *store
}

// NewImmutable creates an Immutable mold: base is filled first, then changes on top of it
func NewImmutable(shape *Shape, base, changes Fields, mode Mode) (*Immutable, error) {
	im := &Immutable{store: newStore(shape)}
	if err := im.store.fillBase(base, mode); err != nil {
		return nil, err
	}
	if err := im.store.fillChanges(changes, mode); err != nil {
		return nil, err
	}
	return im, nil
}

// Validated returns a copy of the validated snapshot of all data
func (im *Immutable) Validated() (Fields, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.store.validated()
}

// ValidatedValue returns a single validated field, or def when it is absent or nil
func (im *Immutable) ValidatedValue(fieldName string, def interface{}) (interface{}, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.store.validatedValue(fieldName, def)
}

// ChangesValidated returns the validated snapshot restricted to changed fields
func (im *Immutable) ChangesValidated() (Fields, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.store.changesValidated()
}

// ChangesValidatedValue returns a single changed validated field, or def when it is absent or nil
func (im *Immutable) ChangesValidatedValue(fieldName string, def interface{}) (interface{}, error) {
	changes, err := im.ChangesValidated()
	if err != nil {
		return nil, err
	}
	return changes.Value(fieldName, def), nil
}

// Diff returns raw change data of every changed field
func (im *Immutable) Diff() ChangedFields {
	return im.store.changes()
}

// Status reports whether any change differs from the base data
func (im *Immutable) Status() Status {
	return im.store.status()
}
