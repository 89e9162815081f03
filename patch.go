package mold

import (
	"github.com/go-ext/logger"
)

// Patch is the simple single-mapping mold.
// It validates on every read and keeps an ordered history of patched names.
type Patch struct {
	guard    guard
	validate ValidateFunc
	data     Fields
	// Names touched by ApplyPatch, duplicates included
	patched []string
}

// NewPatch creates a Patch mold with initial data. Unknown initial fields are an error.
func NewPatch(shape *Shape, initial Fields) (*Patch, error) {
	p := &Patch{
		guard:    guard{allowed: shape.allowed},
		validate: shape.validate,
	}
	for _, name := range initial.keys {
		if err := p.Set(name, initial.values[name]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ApplyPatch merges fields in order and records every accepted name as patched
func (p *Patch) ApplyPatch(fields Fields, mode Mode) error {
	for _, name := range fields.keys {
		ok, err := p.guard.check(name, mode)
		if err != nil {
			return err
		}
		if ok {
			p.data.Set(name, fields.values[name])
			p.patched = append(p.patched, name)
		}
	}
	return nil
}

// AllValidated validates the current data. Nothing is cached.
func (p *Patch) AllValidated() (Fields, error) {
	snapshot, err := p.validate(Raw{fields: &p.data})
	if err != nil {
		logger.Debugf("validation failed: %v", err)
		return Fields{}, err
	}
	return snapshot, nil
}

// ValidatedPatch returns the validated data restricted to patched fields
func (p *Patch) ValidatedPatch() (Fields, error) {
	snapshot, err := p.AllValidated()
	if err != nil {
		return Fields{}, err
	}
	patched := make(map[string]struct{}, len(p.patched))
	for _, name := range p.patched {
		patched[name] = struct{}{}
	}
	return snapshot.Pick(func(name string) bool {
		_, ok := patched[name]
		return ok
	}), nil
}

// Reset drops all data. The patch history is kept.
func (p *Patch) Reset() *Patch {
	p.data = Fields{}
	return p
}

// PatchedKeys returns patched names in the order they were patched
func (p *Patch) PatchedKeys() []string {
	result := make([]string, len(p.patched))
	copy(result, p.patched)
	return result
}

// Set stores a single value without recording it as patched.
// Unknown fields are always an error.
func (p *Patch) Set(fieldName string, value interface{}) error {
	if _, err := p.guard.check(fieldName, Strict); err != nil {
		return err
	}
	p.data.Set(fieldName, value)
	return nil
}

// Get returns a stored value, or def when it is absent or nil
func (p *Patch) Get(fieldName string, def interface{}) interface{} {
	return p.data.Value(fieldName, def)
}
