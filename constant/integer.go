package constant

import (
	"fmt"
	"math"

	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

var intSize = stack.SingleSlot.ToIncreasingSize()

// IntegerConstant is a shortcut load of an int in -1..5.
type IntegerConstant int8

const (
	IntegerMinusOne IntegerConstant = -1
	IntegerZero     IntegerConstant = 0
	IntegerOne      IntegerConstant = 1
	IntegerTwo      IntegerConstant = 2
	IntegerThree    IntegerConstant = 3
	IntegerFour     IntegerConstant = 4
	IntegerFive     IntegerConstant = 5
)

// ForInt returns the shortest encoding for v: iconst_<n>, bipush, sipush, or
// a constant table reference.
func ForInt(v int32) stack.Manipulation {
	switch {
	case v >= -1 && v <= 5:
		return IntegerConstant(v)
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return BytePush(v)
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return ShortPush(v)
	default:
		return IntegerPool(v)
	}
}

// ForBool loads true as 1 and false as 0.
func ForBool(v bool) stack.Manipulation {
	if v {
		return IntegerOne
	}
	return IntegerZero
}

func (c IntegerConstant) IsValid() bool {
	return c >= IntegerMinusOne && c <= IntegerFive
}

func (c IntegerConstant) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Insn(opcode.Iconst0 + opcode.Opcode(c))
	return intSize
}

func (c IntegerConstant) String() string {
	return (opcode.Iconst0 + opcode.Opcode(c)).String()
}

// BytePush loads a signed byte with bipush.
type BytePush int8

func (p BytePush) IsValid() bool {
	return true
}

func (p BytePush) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.IntInsn(opcode.Bipush, int(p))
	return intSize
}

func (p BytePush) String() string {
	return fmt.Sprintf("bipush %d", p)
}

// ShortPush loads a signed short with sipush.
type ShortPush int16

func (p ShortPush) IsValid() bool {
	return true
}

func (p ShortPush) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.IntInsn(opcode.Sipush, int(p))
	return intSize
}

func (p ShortPush) String() string {
	return fmt.Sprintf("sipush %d", p)
}

// IntegerPool loads an int from the constant table.
type IntegerPool int32

func (p IntegerPool) IsValid() bool {
	return true
}

func (p IntegerPool) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Ldc(int32(p))
	return intSize
}

func (p IntegerPool) String() string {
	return fmt.Sprintf("ldc int %d", int32(p))
}
