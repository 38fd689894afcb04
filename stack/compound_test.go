package stack_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
	"github.com/wippyai/stackgen/stack/stacktest"
)

func TestCompound_RequiredCapacity(t *testing.T) {
	c := stack.NewCompound(
		stacktest.NewProbe(stack.Increasing(2), true),
		stacktest.NewProbe(stack.Increasing(1), true),
		stacktest.NewProbe(stack.Decreasing(3), true),
	)

	rec := stacktest.NewRecorder()
	size := stack.Apply(c, rec, nil)

	if size.Impact() != 0 {
		t.Errorf("net impact = %d, want 0", size.Impact())
	}
	if size.Maximal() != 3 {
		t.Errorf("required capacity = %d, want 3", size.Maximal())
	}
	if rec.Len() != 3 {
		t.Errorf("emitted %d instructions, want 3", rec.Len())
	}
}

func TestCompound_InvalidEmitsNothing(t *testing.T) {
	first := stacktest.NewProbe(stack.Increasing(1), true)
	bad := stacktest.NewProbe(stack.Increasing(1), false)
	last := stacktest.NewProbe(stack.Decreasing(1), true)
	c := stack.NewCompound(first, bad, last)

	if c.IsValid() {
		t.Fatal("compound with an invalid element should be invalid")
	}

	rec := stacktest.NewRecorder()
	_, err := c.TryApply(rec, nil)
	if err == nil {
		t.Fatal("TryApply should fail")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindContractViolation}) {
		t.Errorf("err = %v, want contract violation", err)
	}
	var se *errors.Error
	if stderrors.As(err, &se) && (len(se.Path) != 2 || se.Path[1] != "1") {
		t.Errorf("path = %v, want [compound 1]", se.Path)
	}
	if rec.Len() != 0 {
		t.Errorf("sink received %d emissions, want 0", rec.Len())
	}
	if first.Applied()+bad.Applied()+last.Applied() != 0 {
		t.Error("no element should have been applied")
	}
}

func TestCompound_ApplyPanicsWhenInvalid(t *testing.T) {
	rec := stacktest.NewRecorder()
	c := stack.NewCompound(stack.Trivial, stack.Illegal)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindContractViolation}) {
			t.Errorf("panic value = %v, want contract violation", r)
		}
		if rec.Len() != 0 {
			t.Errorf("sink received %d emissions, want 0", rec.Len())
		}
	}()
	c.Apply(rec, nil)
}

func TestApply_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	stack.Apply(stack.Illegal, stacktest.NewRecorder(), nil)
}

func TestCompound_Flatten(t *testing.T) {
	inner := stack.NewCompound(stack.Duplicate(stack.SingleSlot), stack.Remove(stack.SingleSlot))
	c := stack.NewCompound(nil, inner, &inner, stack.Trivial)

	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}

	rec := stacktest.NewRecorder()
	size := stack.Apply(c, rec, nil)
	want := []opcode.Opcode{opcode.Dup, opcode.Pop, opcode.Dup, opcode.Pop}
	got := rec.Ops()
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if size.Impact() != 0 || size.Maximal() != 1 {
		t.Errorf("size = %s, want +0 (max 1)", size)
	}
}

func TestCompound_Empty(t *testing.T) {
	c := stack.NewCompound()
	if !c.IsValid() {
		t.Error("empty compound should be valid")
	}
	if size := c.Apply(stacktest.NewRecorder(), nil); size != stack.Zero {
		t.Errorf("size = %s, want zero", size)
	}
}

func TestCompound_Deterministic(t *testing.T) {
	c := stack.NewCompound(stack.Duplicate(stack.DoubleSlot), stack.Remove(stack.DoubleSlot), stack.Remove(stack.SingleSlot))
	a := c.Apply(stacktest.NewRecorder(), nil)
	b := c.Apply(stacktest.NewRecorder(), nil)
	if a != b {
		t.Errorf("sizes differ across sinks: %s vs %s", a, b)
	}
}

func TestRemovalAndDuplication(t *testing.T) {
	tests := []struct {
		m    stack.Manipulation
		ops  []opcode.Opcode
		name string
		size stack.Size
	}{
		{stack.Remove(stack.ZeroSlots), nil, "remove 0", stack.Zero},
		{stack.Remove(stack.SingleSlot), []opcode.Opcode{opcode.Pop}, "remove 1", stack.Decreasing(1)},
		{stack.Remove(stack.DoubleSlot), []opcode.Opcode{opcode.Pop2}, "remove 2", stack.Decreasing(2)},
		{stack.Duplicate(stack.ZeroSlots), nil, "dup 0", stack.Zero},
		{stack.Duplicate(stack.SingleSlot), []opcode.Opcode{opcode.Dup}, "dup 1", stack.Increasing(1)},
		{stack.Duplicate(stack.DoubleSlot), []opcode.Opcode{opcode.Dup2}, "dup 2", stack.Increasing(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := stacktest.NewRecorder()
			if got := stack.Apply(tt.m, rec, nil); got != tt.size {
				t.Errorf("size = %s, want %s", got, tt.size)
			}
			if rec.Len() != len(tt.ops) {
				t.Fatalf("ops = %v, want %v", rec.Ops(), tt.ops)
			}
			for i, op := range tt.ops {
				if rec.Instructions[i].Op != op {
					t.Errorf("op[%d] = %s, want %s", i, rec.Instructions[i].Op, op)
				}
			}
		})
	}

	if stack.Remove(stack.StackSize(3)).IsValid() {
		t.Error("removing three words should be invalid")
	}
}

func TestInstruction(t *testing.T) {
	rec := stacktest.NewRecorder()

	swap := stack.Instruction(opcode.Swap)
	if !swap.IsValid() {
		t.Fatal("swap should be valid")
	}
	if size := swap.Apply(rec, nil); size.Impact() != 0 || size.Maximal() != 0 {
		t.Errorf("swap size = %s", size)
	}

	dup := stack.Instruction(opcode.Dup)
	if size := dup.Apply(rec, nil); size.Impact() != 1 || size.Maximal() != 1 {
		t.Errorf("dup size = %s", size)
	}

	if stack.Instruction(opcode.Bipush).IsValid() {
		t.Error("bipush needs an operand and should be invalid")
	}
	if stack.Instruction(0xFE).IsValid() {
		t.Error("unknown opcode should be invalid")
	}
}
