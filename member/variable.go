package member

import (
	"fmt"

	"github.com/wippyai/stackgen/category"
	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

// VariableAccess loads or stores one local variable slot.
type VariableAccess struct {
	op    opcode.Opcode // long form: iload, lstore, ...
	short opcode.Opcode // slot 0 form: iload_0, lstore_0, ...
	slot  int
	size  stack.Size
}

var (
	loads = map[category.Category][2]opcode.Opcode{
		category.OtherPrimitive: {opcode.Iload, opcode.Iload0},
		category.Long:           {opcode.Lload, opcode.Lload0},
		category.Float:          {opcode.Fload, opcode.Fload0},
		category.Double:         {opcode.Dload, opcode.Dload0},
		category.Reference:      {opcode.Aload, opcode.Aload0},
	}
	stores = map[category.Category][2]opcode.Opcode{
		category.OtherPrimitive: {opcode.Istore, opcode.Istore0},
		category.Long:           {opcode.Lstore, opcode.Lstore0},
		category.Float:          {opcode.Fstore, opcode.Fstore0},
		category.Double:         {opcode.Dstore, opcode.Dstore0},
		category.Reference:      {opcode.Astore, opcode.Astore0},
	}
)

// Load pushes local slot of category c. Void has no locals and a negative
// slot does not exist; both return stack.Illegal.
func Load(c category.Category, slot int) stack.Manipulation {
	ops, ok := loads[c]
	if !ok || slot < 0 || slot > 0xFFFF {
		return stack.Illegal
	}
	return VariableAccess{op: ops[0], short: ops[1], slot: slot, size: c.Width().ToIncreasingSize()}
}

// Store pops into local slot of category c.
func Store(c category.Category, slot int) stack.Manipulation {
	ops, ok := stores[c]
	if !ok || slot < 0 || slot > 0xFFFF {
		return stack.Illegal
	}
	return VariableAccess{op: ops[0], short: ops[1], slot: slot, size: c.Width().ToDecreasingSize()}
}

// Slot returns the local variable index.
func (v VariableAccess) Slot() int {
	return v.slot
}

func (v VariableAccess) IsValid() bool {
	return true
}

func (v VariableAccess) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	if v.slot < 4 {
		e.Insn(v.short + opcode.Opcode(v.slot))
	} else {
		e.VarInsn(v.op, v.slot)
	}
	return v.size
}

func (v VariableAccess) String() string {
	if v.slot < 4 {
		return (v.short + opcode.Opcode(v.slot)).String()
	}
	return fmt.Sprintf("%s %d", v.op, v.slot)
}
