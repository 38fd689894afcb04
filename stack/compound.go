package stack

import (
	"strconv"
	"strings"

	"github.com/wippyai/stackgen/errors"
)

// Compound applies a sequence of manipulations in order.
type Compound struct {
	items []Manipulation
}

// NewCompound builds a sequence. Nested compounds are flattened and nil
// entries are dropped.
func NewCompound(ms ...Manipulation) Compound {
	items := make([]Manipulation, 0, len(ms))
	for _, m := range ms {
		switch v := m.(type) {
		case nil:
		case Compound:
			items = append(items, v.items...)
		case *Compound:
			if v != nil {
				items = append(items, v.items...)
			}
		default:
			items = append(items, m)
		}
	}
	return Compound{items: items}
}

// Len returns the number of flattened elements.
func (c Compound) Len() int {
	return len(c.items)
}

// IsValid reports whether every element is valid.
func (c Compound) IsValid() bool {
	return c.firstInvalid() < 0
}

// Apply emits every element in order and aggregates their sizes.
// It panics without emitting anything if any element is invalid.
func (c Compound) Apply(e Emitter, ctx Context) Size {
	size, err := c.TryApply(e, ctx)
	if err != nil {
		panic(err)
	}
	return size
}

// TryApply is Apply returning the contract violation instead of panicking.
func (c Compound) TryApply(e Emitter, ctx Context) (Size, error) {
	if i := c.firstInvalid(); i >= 0 {
		return Zero, errors.ContractViolation(describe(c.items[i]), []string{"compound", strconv.Itoa(i)})
	}
	size := Zero
	for _, m := range c.items {
		size = size.Aggregate(m.Apply(e, ctx))
	}
	return size, nil
}

func (c Compound) firstInvalid() int {
	for i, m := range c.items {
		if !m.IsValid() {
			return i
		}
	}
	return -1
}

func (c Compound) String() string {
	parts := make([]string, len(c.items))
	for i, m := range c.items {
		parts[i] = describe(m)
	}
	return "compound[" + strings.Join(parts, ", ") + "]"
}
