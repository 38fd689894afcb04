package stack

import (
	"fmt"

	"github.com/wippyai/stackgen/opcode"
)

// Removal pops one value of the given width: nothing, pop, or pop2.
type Removal StackSize

// Remove returns the removal for a value of width s.
func Remove(s StackSize) Removal {
	return Removal(s)
}

func (r Removal) IsValid() bool {
	return StackSize(r) <= DoubleSlot
}

func (r Removal) Apply(e Emitter, _ Context) Size {
	switch StackSize(r) {
	case ZeroSlots:
	case SingleSlot:
		e.Insn(opcode.Pop)
	case DoubleSlot:
		e.Insn(opcode.Pop2)
	default:
		panic(fmt.Sprintf("stack: removal of %d words", r))
	}
	return StackSize(r).ToDecreasingSize()
}

func (r Removal) String() string {
	return fmt.Sprintf("remove(%d)", r)
}

// Duplication copies the top value of the given width: nothing, dup, or dup2.
type Duplication StackSize

// Duplicate returns the duplication for a value of width s.
func Duplicate(s StackSize) Duplication {
	return Duplication(s)
}

func (d Duplication) IsValid() bool {
	return StackSize(d) <= DoubleSlot
}

func (d Duplication) Apply(e Emitter, _ Context) Size {
	switch StackSize(d) {
	case ZeroSlots:
	case SingleSlot:
		e.Insn(opcode.Dup)
	case DoubleSlot:
		e.Insn(opcode.Dup2)
	default:
		panic(fmt.Sprintf("stack: duplication of %d words", d))
	}
	return StackSize(d).ToIncreasingSize()
}

func (d Duplication) String() string {
	return fmt.Sprintf("duplicate(%d)", d)
}

// Instruction is a single operand-less opcode whose effect comes from the
// opcode table. Opcodes that are unknown or need an operand are invalid.
type Instruction opcode.Opcode

func (i Instruction) IsValid() bool {
	info, ok := opcode.Get(opcode.Opcode(i))
	return ok && info.Operand == opcode.OperandNone
}

func (i Instruction) Apply(e Emitter, _ Context) Size {
	op := opcode.Opcode(i)
	e.Insn(op)
	info, _ := opcode.Get(op)
	// Pops happen before pushes, so the peak is pushes - pops only when positive.
	return Decreasing(uint(info.Pops)).Aggregate(Increasing(uint(info.Pushes)))
}

func (i Instruction) String() string {
	return opcode.Opcode(i).String()
}
