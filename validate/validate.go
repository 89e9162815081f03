// Package validate builds mold.ValidateFunc values out of tagged structs.
//
// The raw mold data is decoded into a fresh struct (weakly typed, so "30" fills an int field),
// checked with go-playground/validator and emitted back as mold.Fields in field declaration order.
//
//	type user struct {
//		Name  string `mold:"name" validate:"required"`
//		Email string `mold:"email" validate:"omitempty,email"`
//		Age   int    `mold:"age" validate:"gte=0"`
//	}
//
//	shape := mold.NewShape([]string{"name", "email", "age"}, validate.Struct[user]())
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/askretov/mold"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

const defaultTagName = "mold"

type config[T any] struct {
	validate *validator.Validate
	tagName  string
	hooks    []func(*T) error
}

// Option configures Struct
type Option[T any] func(*config[T])

// WithValidator replaces the default validator instance
func WithValidator[T any](v *validator.Validate) Option[T] {
	return func(c *config[T]) { c.validate = v }
}

// WithTagName sets the struct tag holding field names, "mold" by default
func WithTagName[T any](name string) Option[T] {
	return func(c *config[T]) { c.tagName = name }
}

// WithHook adds a function run on the decoded value after it passed validation.
// Hooks run in the order given; the first error stops validation.
func WithHook[T any](hook func(*T) error) Option[T] {
	return func(c *config[T]) { c.hooks = append(c.hooks, hook) }
}

// Struct returns a ValidateFunc backed by the struct type T.
// Decode errors are wrapped, validator errors are returned as validator.ValidationErrors.
func Struct[T any](opts ...Option[T]) mold.ValidateFunc {
	c := &config[T]{tagName: defaultTagName}
	for _, opt := range opts {
		opt(c)
	}
	if c.validate == nil {
		c.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if reflect.TypeOf((*T)(nil)).Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("validate: %T is not a struct", *new(T)))
	}

	return func(raw mold.Raw) (mold.Fields, error) {
		var value T
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			TagName:          c.tagName,
			Result:           &value,
		})
		if err != nil {
			return mold.Fields{}, fmt.Errorf("validate: decoder: %w", err)
		}
		if err := decoder.Decode(raw.All().Map()); err != nil {
			return mold.Fields{}, fmt.Errorf("validate: decode: %w", err)
		}
		if err := c.validate.Struct(&value); err != nil {
			return mold.Fields{}, err
		}
		for _, hook := range c.hooks {
			if err := hook(&value); err != nil {
				return mold.Fields{}, err
			}
		}
		return fieldsOf(reflect.ValueOf(value), c.tagName), nil
	}
}

// fieldsOf lists exported fields of a struct value under their tag names
func fieldsOf(v reflect.Value, tagName string) mold.Fields {
	var result mold.Fields
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup(tagName); ok {
			tag = strings.Split(tag, ",")[0]
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		result.Set(name, v.Field(i).Interface())
	}
	return result
}
