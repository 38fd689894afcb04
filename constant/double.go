package constant

import (
	"fmt"
	"math"

	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

var doubleSize = stack.DoubleSlot.ToIncreasingSize()

// DoubleConstant is a shortcut load of a common double.
type DoubleConstant uint8

const (
	DoubleZero DoubleConstant = iota // dconst_0
	DoubleOne                        // dconst_1
)

var doubleOps = [...]opcode.Opcode{
	DoubleZero: opcode.Dconst0,
	DoubleOne:  opcode.Dconst1,
}

// ForDouble returns a manipulation loading v. The comparison against the
// shortcut values is exact, so -0.0 also loads through dconst_0.
func ForDouble(v float64) stack.Manipulation {
	switch v {
	case 0:
		return DoubleZero
	case 1:
		return DoubleOne
	default:
		return NewDoublePool(v)
	}
}

func (c DoubleConstant) IsValid() bool {
	return c <= DoubleOne
}

func (c DoubleConstant) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Insn(doubleOps[c])
	return doubleSize
}

func (c DoubleConstant) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("dconst(%d)", uint8(c))
	}
	return doubleOps[c].String()
}

// DoublePool loads a double from the constant table.
// Two pools are equal when their values have the same bit pattern.
type DoublePool struct {
	bits uint64
}

// NewDoublePool creates a table reference for v without checking shortcuts.
func NewDoublePool(v float64) DoublePool {
	return DoublePool{bits: math.Float64bits(v)}
}

// Value returns the literal.
func (p DoublePool) Value() float64 {
	return math.Float64frombits(p.bits)
}

// Equal reports whether both pools load the same bit pattern.
func (p DoublePool) Equal(other DoublePool) bool {
	return p.bits == other.bits
}

// Hash folds the bit pattern to 32 bits.
func (p DoublePool) Hash() uint32 {
	return uint32(p.bits ^ p.bits>>32)
}

func (p DoublePool) IsValid() bool {
	return true
}

func (p DoublePool) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Ldc(p.Value())
	return doubleSize
}

func (p DoublePool) String() string {
	return fmt.Sprintf("ldc double %v", p.Value())
}
