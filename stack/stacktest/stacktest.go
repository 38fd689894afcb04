// Package stacktest provides a recording Emitter and probe manipulations for
// testing code built on package stack.
package stacktest

import (
	"fmt"
	"strings"

	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

// Kind identifies which Emitter method produced an Instruction.
type Kind uint8

const (
	KindInsn Kind = iota
	KindInt
	KindVar
	KindLdc
)

// Instruction is one recorded Emitter call.
type Instruction struct {
	Value   any // Ldc literal
	Operand int // IntInsn immediate or VarInsn slot
	Op      opcode.Opcode
	Kind    Kind
}

func (in Instruction) String() string {
	switch in.Kind {
	case KindInt, KindVar:
		return fmt.Sprintf("%s %d", in.Op, in.Operand)
	case KindLdc:
		return fmt.Sprintf("ldc %#v", in.Value)
	default:
		return in.Op.String()
	}
}

// Recorder is a stack.Emitter that records every call.
type Recorder struct {
	Instructions []Instruction
}

var _ stack.Emitter = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Insn(op opcode.Opcode) {
	r.Instructions = append(r.Instructions, Instruction{Kind: KindInsn, Op: op})
}

func (r *Recorder) IntInsn(op opcode.Opcode, operand int) {
	r.Instructions = append(r.Instructions, Instruction{Kind: KindInt, Op: op, Operand: operand})
}

func (r *Recorder) VarInsn(op opcode.Opcode, slot int) {
	r.Instructions = append(r.Instructions, Instruction{Kind: KindVar, Op: op, Operand: slot})
}

// Ldc records the literal. Op is set to opcode.Ldc regardless of width;
// choosing ldc_w or ldc2_w is the real emitter's job.
func (r *Recorder) Ldc(value any) {
	r.Instructions = append(r.Instructions, Instruction{Kind: KindLdc, Op: opcode.Ldc, Value: value})
}

// Len returns the number of recorded instructions.
func (r *Recorder) Len() int {
	return len(r.Instructions)
}

// Ops returns the recorded opcodes in order.
func (r *Recorder) Ops() []opcode.Opcode {
	ops := make([]opcode.Opcode, len(r.Instructions))
	for i, in := range r.Instructions {
		ops[i] = in.Op
	}
	return ops
}

// Reset discards recorded instructions.
func (r *Recorder) Reset() {
	r.Instructions = r.Instructions[:0]
}

func (r *Recorder) String() string {
	lines := make([]string, len(r.Instructions))
	for i, in := range r.Instructions {
		lines[i] = in.String()
	}
	return strings.Join(lines, "\n")
}

// Probe is a manipulation with a fixed size and validity that counts how
// often it was applied. Each application emits a nop.
type Probe struct {
	size    stack.Size
	valid   bool
	applied int
}

// NewProbe creates a Probe reporting size.
func NewProbe(size stack.Size, valid bool) *Probe {
	return &Probe{size: size, valid: valid}
}

func (p *Probe) IsValid() bool {
	return p.valid
}

func (p *Probe) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	p.applied++
	e.Insn(opcode.Nop)
	return p.size
}

// Applied returns the number of Apply calls.
func (p *Probe) Applied() int {
	return p.applied
}

func (p *Probe) String() string {
	return fmt.Sprintf("probe(%s, valid=%t)", p.size, p.valid)
}
