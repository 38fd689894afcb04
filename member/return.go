package member

import (
	"fmt"

	"github.com/wippyai/stackgen/category"
	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

// MethodReturn returns a value of one category from the current method.
type MethodReturn uint8

const (
	ReturnInteger MethodReturn = iota
	ReturnDouble
	ReturnFloat
	ReturnLong
	ReturnVoid
	ReturnReference
)

type returnInfo struct {
	op   opcode.Opcode
	size stack.Size
}

var returns = [...]returnInfo{
	ReturnInteger:   {opcode.Ireturn, stack.Decreasing(1)},
	ReturnDouble:    {opcode.Dreturn, stack.Decreasing(1)},
	ReturnFloat:     {opcode.Freturn, stack.Decreasing(1)},
	ReturnLong:      {opcode.Lreturn, stack.Decreasing(1)},
	ReturnVoid:      {opcode.Return, stack.Zero},
	ReturnReference: {opcode.Areturn, stack.Decreasing(1)},
}

// Return selects the return for c. Primitive categories are matched in the
// order long, double, float, void; any other primitive returns as an int.
func Return(c category.Category) MethodReturn {
	if !c.IsPrimitive() {
		return ReturnReference
	}
	switch c {
	case category.Long:
		return ReturnLong
	case category.Double:
		return ReturnDouble
	case category.Float:
		return ReturnFloat
	case category.Void:
		return ReturnVoid
	default:
		return ReturnInteger
	}
}

func (r MethodReturn) IsValid() bool {
	return true
}

func (r MethodReturn) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	info := r.info()
	e.Insn(info.op)
	return info.size
}

// Opcode returns the instruction this variant emits.
func (r MethodReturn) Opcode() opcode.Opcode {
	return r.info().op
}

// Size returns the precomputed stack effect.
func (r MethodReturn) Size() stack.Size {
	return r.info().size
}

func (r MethodReturn) info() returnInfo {
	if int(r) >= len(returns) {
		panic(fmt.Sprintf("member: unknown return variant %d", r))
	}
	return returns[r]
}

func (r MethodReturn) String() string {
	return r.Opcode().String()
}
