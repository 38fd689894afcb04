package wasmlower

import (
	"fmt"
	"strings"

	"github.com/wippyai/stackgen/category"
	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
	"github.com/wippyai/stackgen/wasmlower/internal/binary"
	"go.uber.org/zap"
)

// Wasm instruction bytes used by the lowering.
const (
	opNop      byte = 0x01
	opEnd      byte = 0x0B
	opReturn   byte = 0x0F
	opDrop     byte = 0x1A
	opLocalGet byte = 0x20
	opLocalSet byte = 0x21
	opLocalTee byte = 0x22
	opI32Const byte = 0x41
	opI64Const byte = 0x42
	opF32Const byte = 0x43
	opF64Const byte = 0x44
)

type slotKey struct {
	slot int
	typ  ValType
}

// Function is a single WebAssembly function under construction.
type Function struct {
	err     error
	slots   map[slotKey]uint32
	scratch map[ValType][]uint32
	code    *binary.Writer
	cfg     Config
	params  []ValType
	locals  []ValType
	stack   []ValType
	result  ValType
	void    bool
	dead    bool // a return was emitted; the rest of the body is unreachable
}

// New starts a function with the signature described by cfg. An unsupported
// signature is reported by Err and by every later call.
func New(cfg Config) *Function {
	f := &Function{
		cfg:     cfg,
		code:    binary.NewWriter(),
		slots:   make(map[slotKey]uint32),
		scratch: make(map[ValType][]uint32),
	}
	if f.cfg.Export == "" {
		f.cfg.Export = DefaultConfig().Export
	}
	slot := 0
	for i, c := range cfg.Params {
		t, ok := ValTypeOf(c)
		if !ok {
			f.fail(errors.New(errors.PhaseLower, errors.KindUnsupported).
				Path("param", fmt.Sprint(i)).
				Value(c.String()).
				Detail("parameter category %s has no wasm type", c).
				Build())
			return f
		}
		f.slots[slotKey{slot, t}] = uint32(len(f.params))
		f.params = append(f.params, t)
		slot += t.Words()
	}
	if cfg.Result == category.Void {
		f.void = true
	} else if t, ok := ValTypeOf(cfg.Result); ok {
		f.result = t
	} else {
		f.fail(errors.Unsupported(errors.PhaseLower, "result category "+cfg.Result.String()))
	}
	return f
}

// Lower applies the manipulations in order as one compound.
func (f *Function) Lower(ms ...stack.Manipulation) error {
	if _, err := stack.NewCompound(ms...).TryApply(f, nil); err != nil {
		return err
	}
	return f.err
}

// Insn lowers an instruction without operands.
func (f *Function) Insn(op opcode.Opcode) {
	if f.err != nil {
		return
	}
	if general, slot, ok := op.Expand(); ok {
		f.local(general, slot)
		return
	}
	if op.IsReturn() && op != opcode.Areturn {
		f.ret(op)
		return
	}
	switch op {
	case opcode.Nop:
		f.code.Byte(opNop)
	case opcode.IconstM1, opcode.Iconst0, opcode.Iconst1, opcode.Iconst2,
		opcode.Iconst3, opcode.Iconst4, opcode.Iconst5:
		f.i32(int32(op) - int32(opcode.Iconst0))
	case opcode.Lconst0, opcode.Lconst1:
		f.i64(int64(op - opcode.Lconst0))
	case opcode.Fconst0, opcode.Fconst1, opcode.Fconst2:
		f.f32(float32(op - opcode.Fconst0))
	case opcode.Dconst0, opcode.Dconst1:
		f.f64(float64(op - opcode.Dconst0))
	case opcode.Pop:
		if t, ok := f.pop(op, 1); ok {
			f.code.Byte(opDrop)
			f.logDrop(t)
		}
	case opcode.Pop2:
		f.pop2()
	case opcode.Dup:
		f.dup(op, 1)
	case opcode.Dup2:
		f.dup2()
	case opcode.Swap:
		f.swap()
	default:
		f.fail(errors.Unsupported(errors.PhaseLower, op.String()))
	}
}

// IntInsn lowers bipush and sipush to i32.const.
func (f *Function) IntInsn(op opcode.Opcode, operand int) {
	if f.err != nil {
		return
	}
	switch op {
	case opcode.Bipush, opcode.Sipush:
		f.i32(int32(operand))
	default:
		f.fail(errors.InvalidOperand(errors.PhaseLower, op.String(), operand))
	}
}

// VarInsn lowers a load or store to local.get or local.set.
func (f *Function) VarInsn(op opcode.Opcode, slot int) {
	if f.err != nil {
		return
	}
	f.local(op, slot)
}

// Ldc lowers a pooled literal to the matching const instruction.
func (f *Function) Ldc(value any) {
	if f.err != nil {
		return
	}
	switch v := value.(type) {
	case int32:
		f.i32(v)
	case int64:
		f.i64(v)
	case float32:
		f.f32(v)
	case float64:
		f.f64(v)
	case string:
		f.fail(errors.Unsupported(errors.PhaseLower, "string constant"))
	default:
		f.fail(errors.InvalidOperand(errors.PhaseLower, "ldc", value))
	}
}

func (f *Function) i32(v int32) {
	f.code.Byte(opI32Const)
	f.code.WriteS32(v)
	f.push(I32)
}

func (f *Function) i64(v int64) {
	f.code.Byte(opI64Const)
	f.code.WriteS64(v)
	f.push(I64)
}

func (f *Function) f32(v float32) {
	f.code.Byte(opF32Const)
	f.code.WriteF32(v)
	f.push(F32)
}

func (f *Function) f64(v float64) {
	f.code.Byte(opF64Const)
	f.code.WriteF64(v)
	f.push(F64)
}

var localTypes = map[opcode.Opcode]struct {
	typ   ValType
	store bool
}{
	opcode.Iload:  {I32, false},
	opcode.Lload:  {I64, false},
	opcode.Fload:  {F32, false},
	opcode.Dload:  {F64, false},
	opcode.Istore: {I32, true},
	opcode.Lstore: {I64, true},
	opcode.Fstore: {F32, true},
	opcode.Dstore: {F64, true},
}

func (f *Function) local(op opcode.Opcode, slot int) {
	lt, ok := localTypes[op]
	if !ok {
		if op == opcode.Aload || op == opcode.Astore {
			f.fail(errors.Unsupported(errors.PhaseLower, "reference local"))
		} else {
			f.fail(errors.InvalidOperand(errors.PhaseLower, op.String(), slot))
		}
		return
	}
	key := slotKey{slot, lt.typ}
	if !lt.store {
		idx, ok := f.slots[key]
		if !ok {
			f.fail(errors.New(errors.PhaseLower, errors.KindInvalidOperand).
				Op(op.String()).
				Value(slot).
				Detail("slot %d holds no %s value", slot, lt.typ).
				Build())
			return
		}
		f.code.Byte(opLocalGet)
		f.code.WriteU32(idx)
		f.push(lt.typ)
		return
	}
	if _, ok := f.popType(op, lt.typ); !ok {
		return
	}
	idx, ok := f.slots[key]
	if !ok {
		idx = f.newLocal(lt.typ)
		f.slots[key] = idx
	}
	f.code.Byte(opLocalSet)
	f.code.WriteU32(idx)
}

func (f *Function) newLocal(t ValType) uint32 {
	idx := uint32(len(f.params) + len(f.locals))
	f.locals = append(f.locals, t)
	return idx
}

// scratchLocal returns the n-th scratch local of type t, allocating as needed.
func (f *Function) scratchLocal(t ValType, n int) uint32 {
	for len(f.scratch[t]) <= n {
		f.scratch[t] = append(f.scratch[t], f.newLocal(t))
	}
	return f.scratch[t][n]
}

func (f *Function) push(t ValType) {
	f.stack = append(f.stack, t)
}

// pop removes the top value, which must be words wide.
func (f *Function) pop(op opcode.Opcode, words int) (ValType, bool) {
	if len(f.stack) == 0 {
		f.fail(errors.StackUnderflow(errors.PhaseLower, op.String(), -words))
		return 0, false
	}
	t := f.stack[len(f.stack)-1]
	if t.Words() != words {
		f.fail(errors.New(errors.PhaseLower, errors.KindInvalidOperand).
			Op(op.String()).
			Value(t.String()).
			Detail("top of stack is %s, need a %d-word value", t, words).
			Build())
		return 0, false
	}
	f.stack = f.stack[:len(f.stack)-1]
	return t, true
}

func (f *Function) popType(op opcode.Opcode, want ValType) (ValType, bool) {
	if len(f.stack) == 0 {
		f.fail(errors.StackUnderflow(errors.PhaseLower, op.String(), -want.Words()))
		return 0, false
	}
	if t := f.stack[len(f.stack)-1]; t != want {
		f.fail(errors.New(errors.PhaseLower, errors.KindInvalidOperand).
			Op(op.String()).
			Value(t.String()).
			Detail("top of stack is %s, need %s", t, want).
			Build())
		return 0, false
	}
	f.stack = f.stack[:len(f.stack)-1]
	return want, true
}

func (f *Function) top() (ValType, bool) {
	if len(f.stack) == 0 {
		return 0, false
	}
	return f.stack[len(f.stack)-1], true
}

// pop2 drops one two-word value or two one-word values.
func (f *Function) pop2() {
	if t, ok := f.top(); ok && t.Words() == 2 {
		f.stack = f.stack[:len(f.stack)-1]
		f.code.Byte(opDrop)
		f.logDrop(t)
		return
	}
	for i := 0; i < 2; i++ {
		t, ok := f.pop(opcode.Pop2, 1)
		if !ok {
			return
		}
		f.code.Byte(opDrop)
		f.logDrop(t)
	}
}

func (f *Function) dup(op opcode.Opcode, words int) {
	t, ok := f.pop(op, words)
	if !ok {
		return
	}
	s := f.scratchLocal(t, 0)
	f.code.Byte(opLocalTee)
	f.code.WriteU32(s)
	f.code.Byte(opLocalGet)
	f.code.WriteU32(s)
	f.push(t)
	f.push(t)
}

// dup2 duplicates one two-word value or the top two one-word values.
func (f *Function) dup2() {
	if t, ok := f.top(); ok && t.Words() == 2 {
		f.dup(opcode.Dup2, 2)
		return
	}
	b, ok := f.pop(opcode.Dup2, 1)
	if !ok {
		return
	}
	a, ok := f.pop(opcode.Dup2, 1)
	if !ok {
		return
	}
	// Scratch index 1 keeps a and b apart when they share a type.
	sb := f.scratchLocal(b, 0)
	sa := f.scratchLocal(a, 1)
	f.code.Byte(opLocalSet)
	f.code.WriteU32(sb)
	f.code.Byte(opLocalTee)
	f.code.WriteU32(sa)
	f.code.Byte(opLocalGet)
	f.code.WriteU32(sb)
	f.code.Byte(opLocalGet)
	f.code.WriteU32(sa)
	f.code.Byte(opLocalGet)
	f.code.WriteU32(sb)
	f.stack = append(f.stack, a, b, a, b)
}

func (f *Function) swap() {
	b, ok := f.pop(opcode.Swap, 1)
	if !ok {
		return
	}
	a, ok := f.pop(opcode.Swap, 1)
	if !ok {
		return
	}
	sb := f.scratchLocal(b, 0)
	sa := f.scratchLocal(a, 1)
	f.code.Byte(opLocalSet)
	f.code.WriteU32(sb)
	f.code.Byte(opLocalSet)
	f.code.WriteU32(sa)
	f.code.Byte(opLocalGet)
	f.code.WriteU32(sb)
	f.code.Byte(opLocalGet)
	f.code.WriteU32(sa)
	f.stack = append(f.stack, b, a)
}

var returnTypes = map[opcode.Opcode]ValType{
	opcode.Ireturn: I32,
	opcode.Lreturn: I64,
	opcode.Freturn: F32,
	opcode.Dreturn: F64,
}

func (f *Function) ret(op opcode.Opcode) {
	if op == opcode.Return {
		if !f.void {
			f.fail(errors.New(errors.PhaseLower, errors.KindInvalidOperand).
				Op(op.String()).
				Detail("function returns %s", f.result).
				Build())
			return
		}
	} else {
		want := returnTypes[op]
		if f.void || f.result != want {
			f.fail(errors.New(errors.PhaseLower, errors.KindInvalidOperand).
				Op(op.String()).
				Detail("function signature returns %s", f.resultName()).
				Build())
			return
		}
		if _, ok := f.popType(op, want); !ok {
			return
		}
	}
	f.code.Byte(opReturn)
	f.stack = f.stack[:0]
	f.dead = true
}

func (f *Function) resultName() string {
	if f.void {
		return "nothing"
	}
	return f.result.String()
}

func (f *Function) fail(err error) {
	f.err = err
	Logger().Debug("lowering failed", zap.Error(err), zap.Int("offset", f.code.Len()))
}

func (f *Function) logDrop(t ValType) {
	Logger().Debug("drop", zap.Stringer("type", t))
}

// Err returns the first lowering error, if any.
func (f *Function) Err() error {
	return f.err
}

// Stack returns the simulated operand stack, bottom first.
func (f *Function) Stack() []ValType {
	return append([]ValType(nil), f.stack...)
}

// Locals returns the types of locals declared beyond the parameters.
func (f *Function) Locals() []ValType {
	return append([]ValType(nil), f.locals...)
}

func formatStack(s []ValType) string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
