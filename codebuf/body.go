package codebuf

import (
	"strconv"

	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

// Body accumulates manipulations into a Code buffer and tracks the aggregate
// stack size of everything added, which yields the max_stack of the method.
//
// depth follows the words the emitted instructions actually leave on the
// stack. It differs from size.Impact() after a long or double return, whose
// manipulation reports a single word consumed.
type Body struct {
	code  *Code
	ctx   stack.Context
	size  stack.Size
	depth int
}

// NewBody starts an empty method body writing into code.
func NewBody(code *Code, ctx stack.Context) *Body {
	return &Body{code: code, ctx: ctx}
}

// Add applies each manipulation in order. An invalid manipulation or one
// that would pop below the bottom of the stack is rejected before anything
// is emitted for it. Manipulations before the rejected one stay emitted.
func (b *Body) Add(ms ...stack.Manipulation) error {
	for i, m := range ms {
		if m == nil {
			continue
		}
		if !m.IsValid() {
			return errors.ContractViolation(describe(m), []string{"body", strconv.Itoa(i)})
		}
		// Sizes do not depend on the emitter, so a dry run predicts the effect.
		dry, w := lowest(m, b.ctx)
		if low := b.depth + w.low; low < 0 {
			return errors.New(errors.PhaseEmit, errors.KindStackUnderflow).
				Op(describe(m)).
				Path("body", strconv.Itoa(i)).
				Value(b.depth).
				Detail("needs %d more words than available", -low).
				Build()
		}
		m.Apply(b.code, b.ctx)
		if err := b.code.Err(); err != nil {
			return err
		}
		b.size = b.size.Aggregate(dry)
		b.depth += w.depth
	}
	return nil
}

// Size returns the aggregate size of all manipulations added.
func (b *Body) Size() stack.Size {
	return b.size
}

// MaxStack returns the peak operand stack depth in words.
func (b *Body) MaxStack() int {
	return b.size.Maximal()
}

// Depth returns the words left on the operand stack by the emitted
// instructions.
func (b *Body) Depth() int {
	return b.depth
}

// Code returns the underlying buffer.
func (b *Body) Code() *Code {
	return b.code
}

// lowest replays m without emitting and returns its size along with the
// running depth of its instructions, relative to the start.
func lowest(m stack.Manipulation, ctx stack.Context) (stack.Size, lowWater) {
	var w lowWater
	size := m.Apply(&w, ctx)
	return size, w
}

type lowWater struct {
	depth int
	low   int
}

func (w *lowWater) step(op opcode.Opcode) {
	info, _ := opcode.Get(op)
	if d := w.depth - info.Pops; d < w.low {
		w.low = d
	}
	w.depth += op.Delta()
}

func (w *lowWater) Insn(op opcode.Opcode)           { w.step(op) }
func (w *lowWater) IntInsn(op opcode.Opcode, _ int) { w.step(op) }
func (w *lowWater) VarInsn(op opcode.Opcode, _ int) { w.step(op) }

func (w *lowWater) Ldc(v any) {
	switch v.(type) {
	case int64, float64:
		w.step(opcode.Ldc2W)
	default:
		w.step(opcode.Ldc)
	}
}

type stringer interface{ String() string }

func describe(m stack.Manipulation) string {
	if s, ok := m.(stringer); ok {
		return s.String()
	}
	return "manipulation"
}
