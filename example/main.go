package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/askretov/mold"
)

// validateUser is a hand written validation: email is lowercased and age becomes an int
func validateUser(raw mold.Raw) (mold.Fields, error) {
	var age interface{}
	if value := raw.Get("age", nil); value != nil {
		n, err := strconv.Atoi(fmt.Sprint(value))
		if err != nil {
			return mold.Fields{}, fmt.Errorf("age must be numeric: %w", err)
		}
		age = n
	}
	return mold.NewFields(
		mold.F("name", fmt.Sprint(raw.Get("name", ""))),
		mold.F("email", strings.ToLower(fmt.Sprint(raw.Get("email", "")))),
		mold.F("age", age),
	), nil
}

func main() {
	var shape = mold.NewShape([]string{"name", "email", "age"}, validateUser)
	// Data as it is stored now
	var stored = mold.NewFields(
		mold.F("name", "John"),
		mold.F("email", "John@EXAMPLE.COM"),
		mold.F("age", "30"),
	)

	// Mutable mold: changes come one by one
	m, err := mold.NewMutable(shape, stored, mold.Strict)
	if err != nil {
		panic(err)
	}
	if err := m.Change("name", "Johnny", mold.Strict); err != nil {
		panic(err)
	}
	// Unknown fields are dropped in Lenient mode
	fmt.Println(m.Changes(mold.NewFields(mold.F("is_admin", true)), mold.Lenient))
	validated, _ := m.Validated()
	changes, _ := m.ChangesValidated()
	fmt.Println(validated)
	fmt.Println(changes)
	fmt.Println(m.Diff())

	// ...and rejected in Strict mode
	fmt.Println(m.Change("is_admin", true, mold.Strict))

	// Immutable mold: everything is given at once
	im, err := mold.NewImmutable(shape, stored, mold.NewFields(mold.F("email", "Johnny@Example.com")), mold.Strict)
	if err != nil {
		panic(err)
	}
	changes, _ = im.ChangesValidated()
	fmt.Println(changes, im.Status())

	// Patch mold: one mapping, validated on every read
	p, err := mold.NewPatch(shape, stored)
	if err != nil {
		panic(err)
	}
	fmt.Println(p.ApplyPatch(mold.NewFields(mold.F("age", 31), mold.F("is_admin", true)), mold.Lenient))
	patch, _ := p.ValidatedPatch()
	fmt.Println(patch)
}
