package mold

import (
	"strconv"
)

// Status is the change status of a mold or of one of its fields
type Status int

// Change statuses
const (
	NotChanged Status = iota
	Added
	Changed
)

// String implements Stringer interface for Status
func (m Status) String() string {
	switch m {
	case NotChanged:
		return "NotChanged"
	case Added:
		return "Added"
	case Changed:
		return "Changed"
	default:
		return strconv.Itoa(int(m))
	}
}

// MarshalJSON encodes a status by its name
func (m Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}
