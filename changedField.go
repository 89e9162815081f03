package mold

import (
	"bytes"
	"encoding/json"

	"github.com/go-ext/logger"
	"github.com/pquerna/ffjson/ffjson"
)

// ChangedFields is an ordered list of ChangedField objects
type ChangedFields []*ChangedField

// ChangedField contains raw change data of a single mold field
type ChangedField struct {
	Name     string      `json:"name"`      // Field name
	OldValue interface{} `json:"old_value"` // Base value, nil if there was none
	NewValue interface{} `json:"new_value"` // Value set by the change
	Status   Status      `json:"status"`    // Change kind
}

// Contains reports whether a field with fieldName exists within c
func (c ChangedFields) Contains(fieldName string) bool {
	return c.GetField(fieldName) != nil
}

// Keys returns an array of changed field names
func (c ChangedFields) Keys() []string {
	var result = make([]string, 0, len(c))
	for _, field := range c {
		result = append(result, field.Name)
	}
	return result
}

// GetField returns ChangedField object by field name
func (c ChangedFields) GetField(fieldName string) *ChangedField {
	for _, field := range c {
		if field.Name == fieldName {
			return field
		}
	}
	return nil
}

// JSON serializes c
func (c ChangedFields) JSON(pretty bool) []byte {
	result, err := ffjson.Marshal(c)
	if err != nil {
		logger.Error(err)
		return nil
	}
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, result, "", "\t"); err != nil {
			logger.Error(err)
			return nil
		}
		result = buf.Bytes()
	}
	return result
}

// String implements Stringer interface for ChangedFields
func (c ChangedFields) String() string {
	return string(c.JSON(true))
}
