package constant

import (
	"fmt"
	"math"

	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

var floatSize = stack.SingleSlot.ToIncreasingSize()

// FloatConstant is a shortcut load of a common float.
type FloatConstant uint8

const (
	FloatZero FloatConstant = iota // fconst_0
	FloatOne                       // fconst_1
	FloatTwo                       // fconst_2
)

var floatOps = [...]opcode.Opcode{
	FloatZero: opcode.Fconst0,
	FloatOne:  opcode.Fconst1,
	FloatTwo:  opcode.Fconst2,
}

// ForFloat returns a manipulation loading v.
func ForFloat(v float32) stack.Manipulation {
	switch v {
	case 0:
		return FloatZero
	case 1:
		return FloatOne
	case 2:
		return FloatTwo
	default:
		return NewFloatPool(v)
	}
}

func (c FloatConstant) IsValid() bool {
	return c <= FloatTwo
}

func (c FloatConstant) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Insn(floatOps[c])
	return floatSize
}

func (c FloatConstant) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("fconst(%d)", uint8(c))
	}
	return floatOps[c].String()
}

// FloatPool loads a float from the constant table, compared by bit pattern.
type FloatPool struct {
	bits uint32
}

// NewFloatPool creates a table reference for v without checking shortcuts.
func NewFloatPool(v float32) FloatPool {
	return FloatPool{bits: math.Float32bits(v)}
}

// Value returns the literal.
func (p FloatPool) Value() float32 {
	return math.Float32frombits(p.bits)
}

// Equal reports whether both pools load the same bit pattern.
func (p FloatPool) Equal(other FloatPool) bool {
	return p.bits == other.bits
}

// Hash returns the bit pattern.
func (p FloatPool) Hash() uint32 {
	return p.bits
}

func (p FloatPool) IsValid() bool {
	return true
}

func (p FloatPool) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Ldc(p.Value())
	return floatSize
}

func (p FloatPool) String() string {
	return fmt.Sprintf("ldc float %v", p.Value())
}
