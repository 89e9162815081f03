package mold

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTooManyFields = errors.New("too many fields")
	errAgeNotNumeric = errors.New("age must be numeric")
)

// validateUser lowercases email and casts age to int
func validateUser(raw Raw) (Fields, error) {
	if raw.Len() > 3 {
		return Fields{}, errTooManyFields
	}
	var age interface{}
	if value := raw.Get("age", nil); value != nil {
		n, err := strconv.Atoi(fmt.Sprint(value))
		if err != nil {
			return Fields{}, errAgeNotNumeric
		}
		age = n
	}
	return NewFields(
		F("name", fmt.Sprint(raw.Get("name", ""))),
		F("email", strings.ToLower(fmt.Sprint(raw.Get("email", "")))),
		F("age", age),
	), nil
}

// countingShape returns a user shape and a pointer to the number of validations run
func countingShape() (*Shape, *int) {
	var calls int
	shape := NewShape([]string{"name", "email", "age", "fourth_field"}, func(raw Raw) (Fields, error) {
		calls++
		return validateUser(raw)
	})
	return shape, &calls
}

func userShape() *Shape {
	shape, _ := countingShape()
	return shape
}

func johnBase() Fields {
	return NewFields(F("name", "John"), F("email", "John@EXAMPLE.COM"), F("age", "30"))
}

func TestShape_Fields(t *testing.T) {
	fields := []string{"name", "email"}
	shape := NewShape(fields, validateUser)
	// The shape keeps its own copy of the whitelist
	fields[0] = "changed"
	assert.Equal(t, []string{"name", "email"}, shape.Fields())

	got := shape.Fields()
	got[1] = "changed"
	assert.Equal(t, []string{"name", "email"}, shape.Fields())
}

func TestShape_nilValidate(t *testing.T) {
	assert.Panics(t, func() { NewShape([]string{"name"}, nil) })
}

func TestGuard_check(t *testing.T) {
	g := guard{allowed: userShape().allowed}
	testCases := []struct {
		name      string
		field     string
		mode      Mode
		allowed   bool
		wantError bool
	}{
		{name: "knownStrict", field: "name", mode: Strict, allowed: true},
		{name: "knownLenient", field: "email", mode: Lenient, allowed: true},
		{name: "unknownStrict", field: "bogus", mode: Strict, wantError: true},
		{name: "unknownLenient", field: "bogus", mode: Lenient},
		// No normalization of any kind
		{name: "caseSensitive", field: "Name", mode: Strict, wantError: true},
		{name: "spaces", field: " name", mode: Lenient},
	}
	for _, tc := range testCases {
		allowed, err := g.check(tc.field, tc.mode)
		assert.Equal(t, tc.allowed, allowed, tc.name)
		if tc.wantError {
			require.Error(t, err, tc.name)
			assert.True(t, IsInvalidFieldErr(err), tc.name)
			assert.True(t, errors.Is(err, ErrInvalidField), tc.name)
			var invalid *InvalidFieldError
			require.True(t, errors.As(err, &invalid), tc.name)
			assert.Equal(t, tc.field, invalid.Field, tc.name)
		} else {
			assert.NoError(t, err, tc.name)
		}
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "Strict", Strict.String())
	assert.Equal(t, "Lenient", Lenient.String())
	var zero Mode
	assert.Equal(t, Strict, zero)
}

func TestRaw(t *testing.T) {
	fields := NewFields(F("name", "John"), F("age", nil))
	raw := Raw{fields: &fields}
	assert.Equal(t, 2, raw.Len())
	assert.True(t, raw.Contains("age"))
	assert.False(t, raw.Contains("email"))
	assert.Equal(t, "John", raw.Get("name", "x"))
	assert.Equal(t, "x", raw.Get("age", "x"))
	assert.Equal(t, "x", raw.Get("email", "x"))

	// All is a copy
	all := raw.All()
	all.Set("email", "john@example.com")
	assert.False(t, raw.Contains("email"))
}

func TestInvalidFieldError_Error(t *testing.T) {
	err := error(&InvalidFieldError{Field: "bogus"})
	assert.Equal(t, "field (bogus) is not allowed", err.Error())
	assert.True(t, IsInvalidFieldErr(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsInvalidFieldErr(errTooManyFields))
}
