package mold

// Molder is the read side shared by Mutable and Immutable molds
type Molder interface {
	Validated() (Fields, error)
	ValidatedValue(fieldName string, def interface{}) (interface{}, error)
	ChangesValidated() (Fields, error)
	ChangesValidatedValue(fieldName string, def interface{}) (interface{}, error)
	Diff() ChangedFields
	Status() Status
}

var (
	_ Molder = (*Mutable)(nil)
	_ Molder = (*Immutable)(nil)
)
