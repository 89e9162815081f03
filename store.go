package mold

import (
	"reflect"

	"github.com/go-ext/logger"
)

// store is the merge core shared by Mutable and Immutable.
// It keeps base data apart from tracked changes and caches the validated snapshot.
type store struct {
	guard guard
	// Raw data, base and changes merged
	raw Fields
	// Names accepted through fillChange, in acceptance order
	changed []string
	// Base values replaced by the first change of a field
	origins map[string]origin
	cache   cache
}

type origin struct {
	value  interface{}
	exists bool
}

func newStore(shape *Shape) *store {
	return &store{
		guard:   guard{allowed: shape.allowed},
		origins: map[string]origin{},
		cache:   cache{validate: shape.validate},
	}
}

// fillBase writes fields without tracking them as changes
func (s *store) fillBase(fields Fields, mode Mode) error {
	for _, name := range fields.keys {
		ok, err := s.guard.check(name, mode)
		if err != nil {
			return err
		}
		if ok {
			s.raw.Set(name, fields.values[name])
		}
	}
	return nil
}

// fillChange writes a single tracked change and drops the cached snapshot
func (s *store) fillChange(fieldName string, value interface{}, mode Mode) error {
	ok, err := s.guard.check(fieldName, mode)
	if err != nil || !ok {
		return err
	}
	if _, tracked := s.origins[fieldName]; !tracked {
		// Remember what the change replaced
		old, exists := s.raw.Get(fieldName)
		s.origins[fieldName] = origin{value: old, exists: exists}
		s.changed = append(s.changed, fieldName)
	}
	s.raw.Set(fieldName, value)
	s.cache.invalidate()
	return nil
}

// fillChanges applies fillChange to every field in order, stopping at the first error
func (s *store) fillChanges(fields Fields, mode Mode) error {
	for _, name := range fields.keys {
		if err := s.fillChange(name, fields.values[name], mode); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) read() Raw {
	return Raw{fields: &s.raw}
}

// validated returns a copy of the cached snapshot, so callers cannot alter it
func (s *store) validated() (Fields, error) {
	snapshot, err := s.cache.get(s.read())
	if err != nil {
		return Fields{}, err
	}
	return snapshot.Clone(), nil
}

// validatedValue reads a single field of the cached snapshot
func (s *store) validatedValue(fieldName string, def interface{}) (interface{}, error) {
	snapshot, err := s.cache.get(s.read())
	if err != nil {
		return nil, err
	}
	return snapshot.Value(fieldName, def), nil
}

// changesValidated returns the validated snapshot restricted to changed fields
func (s *store) changesValidated() (Fields, error) {
	snapshot, err := s.cache.get(s.read())
	if err != nil {
		return Fields{}, err
	}
	return snapshot.Pick(func(name string) bool {
		_, tracked := s.origins[name]
		return tracked
	}), nil
}

// changes reports raw changes in the order they were first made
func (s *store) changes() ChangedFields {
	result := make(ChangedFields, 0, len(s.changed))
	for _, name := range s.changed {
		o := s.origins[name]
		newValue, _ := s.raw.Get(name)
		field := &ChangedField{
			Name:     name,
			OldValue: o.value,
			NewValue: newValue,
		}
		switch {
		case !o.exists:
			field.Status = Added
		case equal(newValue, o.value):
			field.Status = NotChanged
		default:
			field.Status = Changed
		}
		result = append(result, field)
	}
	return result
}

// status is Changed once any tracked field differs from its base value
func (s *store) status() Status {
	for _, field := range s.changes() {
		if field.Status != NotChanged {
			return Changed
		}
	}
	return NotChanged
}

func equal(a, b interface{}) bool {
	if eq, ok := a.(Equaler); ok {
		// Compare with type's Equal method
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// cache memoizes a successful validation until invalidated
type cache struct {
	validate ValidateFunc
	snapshot Fields
	valid    bool
}

func (c *cache) get(raw Raw) (Fields, error) {
	if c.valid {
		return c.snapshot, nil
	}
	snapshot, err := c.validate(raw)
	if err != nil {
		logger.Debugf("validation failed: %v", err)
		return Fields{}, err
	}
	c.snapshot, c.valid = snapshot, true
	return c.snapshot, nil
}

func (c *cache) invalidate() {
	c.snapshot, c.valid = Fields{}, false
}
