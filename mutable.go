package mold

// Mutable is a mold that accepts changes after it has been created.
// It is not safe for concurrent use.
type Mutable struct {
	store *store
}

// NewMutable creates a Mutable mold filled with base data.
// Base fields are not tracked as changes.
func NewMutable(shape *Shape, base Fields, mode Mode) (*Mutable, error) {
	m := &Mutable{store: newStore(shape)}
	if err := m.store.fillBase(base, mode); err != nil {
		return nil, err
	}
	return m, nil
}

// Change sets a single field and tracks it as changed
func (m *Mutable) Change(fieldName string, value interface{}, mode Mode) error {
	return m.store.fillChange(fieldName, value, mode)
}

// Changes sets every given field in order and tracks them as changed.
// In Strict mode the first unknown field aborts the call, fields set before it stay set.
func (m *Mutable) Changes(fields Fields, mode Mode) error {
	return m.store.fillChanges(fields, mode)
}

// Validated returns a copy of the validated snapshot of all data.
// The snapshot is computed once and cached until the next change.
func (m *Mutable) Validated() (Fields, error) {
	return m.store.validated()
}

// ValidatedValue returns a single validated field, or def when it is absent or nil
func (m *Mutable) ValidatedValue(fieldName string, def interface{}) (interface{}, error) {
	return m.store.validatedValue(fieldName, def)
}

// ChangesValidated returns the validated snapshot restricted to changed fields
func (m *Mutable) ChangesValidated() (Fields, error) {
	return m.store.changesValidated()
}

// ChangesValidatedValue returns a single changed validated field, or def when it is absent or nil
func (m *Mutable) ChangesValidatedValue(fieldName string, def interface{}) (interface{}, error) {
	changes, err := m.store.changesValidated()
	if err != nil {
		return nil, err
	}
	return changes.Value(fieldName, def), nil
}

// Diff returns raw change data of every changed field
func (m *Mutable) Diff() ChangedFields {
	return m.store.changes()
}

// Status reports whether any change differs from the base data
func (m *Mutable) Status() Status {
	return m.store.status()
}
