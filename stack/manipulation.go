package stack

import (
	"fmt"

	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/opcode"
)

// Emitter is the instruction sink a Manipulation writes to.
//
// Emitters are append-only and stateful; a single Emitter must not be shared
// between goroutines while a method body is being generated.
type Emitter interface {
	// Insn emits an opcode without operands.
	Insn(op opcode.Opcode)

	// IntInsn emits bipush or sipush with its immediate.
	IntInsn(op opcode.Opcode, operand int)

	// VarInsn emits a load or store of a local variable slot.
	VarInsn(op opcode.Opcode, slot int)

	// Ldc emits a load of a literal that needs a constant table entry.
	// Value is one of int32, int64, float32, float64 or string.
	Ldc(value any)
}

// Context is the generation context passed through to every manipulation.
// The kernel never inspects it; it may be nil.
type Context interface{}

// Manipulation emits instructions and reports their effect on the operand stack.
//
// Apply must only be called when IsValid returns true. The reported Size is the
// same on every call even though every call emits again.
type Manipulation interface {
	IsValid() bool
	Apply(e Emitter, ctx Context) Size
}

// Apply checks m for validity and applies it.
// It panics with a contract violation when m is invalid.
func Apply(m Manipulation, e Emitter, ctx Context) Size {
	if !m.IsValid() {
		panic(errors.ContractViolation(describe(m), nil))
	}
	return m.Apply(e, ctx)
}

func describe(m Manipulation) string {
	if s, ok := m.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", m)
}

type trivial struct{}

// Trivial is a valid manipulation that emits nothing.
var Trivial Manipulation = trivial{}

func (trivial) IsValid() bool { return true }

func (trivial) Apply(Emitter, Context) Size { return Zero }

func (trivial) String() string { return "trivial" }

type illegal struct{}

// Illegal is a manipulation that can never be applied. Factories return it
// when the requested operation cannot be generated at all.
var Illegal Manipulation = illegal{}

func (illegal) IsValid() bool { return false }

func (illegal) Apply(Emitter, Context) Size {
	panic(errors.ContractViolation("illegal", nil))
}

func (illegal) String() string { return "illegal" }
