// Package category classifies value types into the categories that select
// return and local-variable instructions.
package category

import (
	"fmt"

	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/stack"
)

// Category is the closed set of type categories.
type Category uint8

const (
	OtherPrimitive Category = iota // boolean, byte, char, short, int
	Long
	Double
	Float
	Void
	Reference
)

// All lists every category.
var All = []Category{OtherPrimitive, Long, Double, Float, Void, Reference}

// IsPrimitive reports whether c is a primitive kind, including void.
func (c Category) IsPrimitive() bool {
	return c != Reference
}

// Width returns the number of stack words a value of c occupies.
func (c Category) Width() stack.StackSize {
	switch c {
	case Long, Double:
		return stack.DoubleSlot
	case Void:
		return stack.ZeroSlots
	case OtherPrimitive, Float, Reference:
		return stack.SingleSlot
	}
	panic(fmt.Sprintf("category: unknown category %d", c))
}

func (c Category) String() string {
	switch c {
	case OtherPrimitive:
		return "int"
	case Long:
		return "long"
	case Double:
		return "double"
	case Float:
		return "float"
	case Void:
		return "void"
	case Reference:
		return "reference"
	}
	return fmt.Sprintf("Category(%d)", c)
}

// FromDescriptor classifies a JVM field or return descriptor such as "J",
// "Ljava/lang/String;" or "[I".
func FromDescriptor(desc string) (Category, error) {
	if desc == "" {
		return 0, errors.InvalidDescriptor(desc)
	}
	switch desc[0] {
	case 'J':
		if len(desc) == 1 {
			return Long, nil
		}
	case 'D':
		if len(desc) == 1 {
			return Double, nil
		}
	case 'F':
		if len(desc) == 1 {
			return Float, nil
		}
	case 'V':
		if len(desc) == 1 {
			return Void, nil
		}
	case 'Z', 'B', 'C', 'S', 'I':
		if len(desc) == 1 {
			return OtherPrimitive, nil
		}
	case 'L':
		if len(desc) > 2 && desc[len(desc)-1] == ';' {
			return Reference, nil
		}
	case '[':
		elem := desc[1:]
		for len(elem) > 0 && elem[0] == '[' {
			elem = elem[1:]
		}
		if c, err := FromDescriptor(elem); err == nil && c != Void {
			return Reference, nil
		}
	}
	return 0, errors.InvalidDescriptor(desc)
}

// Parse accepts a descriptor, a category name ("long", "reference", ...) or a
// Java primitive keyword ("boolean", "short", ...).
func Parse(s string) (Category, error) {
	switch s {
	case "int", "boolean", "byte", "char", "short":
		return OtherPrimitive, nil
	case "long":
		return Long, nil
	case "double":
		return Double, nil
	case "float":
		return Float, nil
	case "void":
		return Void, nil
	case "reference", "object":
		return Reference, nil
	}
	return FromDescriptor(s)
}
