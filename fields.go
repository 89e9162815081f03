package mold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-ext/logger"
	"github.com/pquerna/ffjson/ffjson"
	"gopkg.in/yaml.v3"
)

// Field is a single named value
type Field struct {
	Name  string
	Value interface{}
}

// F is a shorthand for Field{Name: name, Value: value}
func F(name string, value interface{}) Field {
	return Field{Name: name, Value: value}
}

// Fields is an ordered mapping of field names to values.
// The zero value is an empty mapping ready to use.
type Fields struct {
	keys   []string
	values map[string]interface{}
}

// NewFields builds Fields from the given pairs keeping their order.
// A repeated name overwrites the earlier value in place.
func NewFields(fields ...Field) Fields {
	var f Fields
	for _, field := range fields {
		f.Set(field.Name, field.Value)
	}
	return f
}

// FieldsFromMap builds Fields from a plain map, names sorted
func FieldsFromMap(m map[string]interface{}) Fields {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	var f Fields
	for _, name := range names {
		f.Set(name, m[name])
	}
	return f
}

// Len returns the number of fields
func (f Fields) Len() int {
	return len(f.keys)
}

// Keys returns field names in order
func (f Fields) Keys() []string {
	result := make([]string, len(f.keys))
	copy(result, f.keys)
	return result
}

// Contains reports whether a field with fieldName exists within f
func (f Fields) Contains(fieldName string) bool {
	_, exists := f.values[fieldName]
	return exists
}

// Get returns a value by field name and whether it exists
func (f Fields) Get(fieldName string) (interface{}, bool) {
	value, exists := f.values[fieldName]
	return value, exists
}

// Value returns a value by field name, or def when the field is absent or nil
func (f Fields) Value(fieldName string, def interface{}) interface{} {
	if value, exists := f.values[fieldName]; exists && value != nil {
		return value
	}
	return def
}

// Set sets a value for fieldName. An existing field keeps its position.
func (f *Fields) Set(fieldName string, value interface{}) {
	if f.values == nil {
		f.values = map[string]interface{}{}
	}
	if _, exists := f.values[fieldName]; !exists {
		f.keys = append(f.keys, fieldName)
	}
	f.values[fieldName] = value
}

// Range calls fn for every field in order until fn returns false
func (f Fields) Range(fn func(name string, value interface{}) bool) {
	for _, name := range f.keys {
		if !fn(name, f.values[name]) {
			return
		}
	}
}

// Map returns a copy of f as a plain map
func (f Fields) Map() map[string]interface{} {
	result := make(map[string]interface{}, len(f.keys))
	for name, value := range f.values {
		result[name] = value
	}
	return result
}

// Clone returns a copy of f sharing no storage with it
func (f Fields) Clone() Fields {
	return f.Pick(func(string) bool { return true })
}

// Pick returns the fields whose names satisfy keep, in f's order
func (f Fields) Pick(keep func(name string) bool) Fields {
	var result Fields
	for _, name := range f.keys {
		if keep(name) {
			result.Set(name, f.values[name])
		}
	}
	return result
}

// MarshalJSON implements json.Marshaler keeping field order
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := ffjson.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := ffjson.Marshal(f.values[name])
		if err != nil {
			return nil, fmt.Errorf("field (%s): %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler keeping the object's key order.
// Nested objects are decoded as plain maps. A null leaves f untouched.
func (f *Fields) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	token, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errNotObject
	}
	var result Fields
	for dec.More() {
		token, err = dec.Token()
		if err != nil {
			return err
		}
		name, ok := token.(string)
		if !ok {
			return errNotObject
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field (%s): %w", name, err)
		}
		result.Set(name, value)
	}
	// Consume the closing delimiter
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = result
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler keeping the mapping's key order
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return errNotObject
	}
	var result Fields
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("field (%s): %w", name, err)
		}
		result.Set(name, value)
	}
	*f = result
	return nil
}

// JSON serializes f
func (f Fields) JSON(pretty bool) []byte {
	result, err := f.MarshalJSON()
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

// String implements Stringer interface for Fields
func (f Fields) String() string {
	return string(f.JSON(false))
}
