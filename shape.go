package mold

import (
	"github.com/go-ext/logger"
)

// Mode controls what happens to a field outside of the whitelist
type Mode int

const (
	// Strict rejects an unknown field with an InvalidFieldError
	Strict Mode = iota
	// Lenient silently skips an unknown field
	Lenient
)

// String implements Stringer interface for Mode
func (m Mode) String() string {
	if m == Lenient {
		return "Lenient"
	}
	return "Strict"
}

// ValidateFunc turns raw mold data into a storage-ready snapshot.
// It must not keep raw beyond the call. Any returned error is passed to the caller as is.
type ValidateFunc func(raw Raw) (Fields, error)

// Shape describes a family of molds: the fields they accept and how their data is validated.
// A Shape is immutable and may be shared.
type Shape struct {
	fields   []string
	allowed  map[string]struct{}
	validate ValidateFunc
}

// NewShape returns a Shape accepting publicFields only and validating with validate
func NewShape(publicFields []string, validate ValidateFunc) *Shape {
	if validate == nil {
		panic("mold: nil ValidateFunc")
	}
	s := &Shape{
		fields:   make([]string, len(publicFields)),
		allowed:  make(map[string]struct{}, len(publicFields)),
		validate: validate,
	}
	copy(s.fields, publicFields)
	for _, name := range publicFields {
		s.allowed[name] = struct{}{}
	}
	return s
}

// Fields returns the whitelist in its original order
func (s *Shape) Fields() []string {
	result := make([]string, len(s.fields))
	copy(result, s.fields)
	return result
}

// guard checks field names against the whitelist
type guard struct {
	allowed map[string]struct{}
}

// check reports whether fieldName may be stored.
// An unknown field is an error in Strict mode and is skipped otherwise.
func (g guard) check(fieldName string, mode Mode) (bool, error) {
	if _, ok := g.allowed[fieldName]; ok {
		return true, nil
	}
	if mode == Strict {
		return false, &InvalidFieldError{Field: fieldName}
	}
	logger.Debugf("field (%s) is not allowed, skipped", fieldName)
	return false, nil
}

// Raw is a read-only view of the data accepted by a mold
type Raw struct {
	fields *Fields
}

// Get returns a value by field name, or def when it is absent or nil
func (r Raw) Get(fieldName string, def interface{}) interface{} {
	return r.fields.Value(fieldName, def)
}

// Contains reports whether fieldName has been set
func (r Raw) Contains(fieldName string) bool {
	return r.fields.Contains(fieldName)
}

// Len returns the number of fields set
func (r Raw) Len() int {
	return r.fields.Len()
}

// All returns a copy of every field set, in the order they were first set
func (r Raw) All() Fields {
	return r.fields.Clone()
}
