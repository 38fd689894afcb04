package constant

import (
	"fmt"

	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

var longSize = stack.DoubleSlot.ToIncreasingSize()

// LongConstant is a shortcut load of a common long.
type LongConstant uint8

const (
	LongZero LongConstant = iota // lconst_0
	LongOne                      // lconst_1
)

var longOps = [...]opcode.Opcode{
	LongZero: opcode.Lconst0,
	LongOne:  opcode.Lconst1,
}

// ForLong returns a manipulation loading v.
func ForLong(v int64) stack.Manipulation {
	switch v {
	case 0:
		return LongZero
	case 1:
		return LongOne
	default:
		return LongPool(v)
	}
}

func (c LongConstant) IsValid() bool {
	return c <= LongOne
}

func (c LongConstant) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Insn(longOps[c])
	return longSize
}

func (c LongConstant) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("lconst(%d)", uint8(c))
	}
	return longOps[c].String()
}

// LongPool loads a long from the constant table.
type LongPool int64

func (p LongPool) IsValid() bool {
	return true
}

func (p LongPool) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Ldc(int64(p))
	return longSize
}

func (p LongPool) String() string {
	return fmt.Sprintf("ldc long %d", int64(p))
}
