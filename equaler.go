package mold

// Equaler is implemented by values that know how to compare themselves with a base value.
// It decides whether a change leaves a field NotChanged.
type Equaler interface {
	Equal(interface{}) bool
}
