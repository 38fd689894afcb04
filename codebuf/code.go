package codebuf

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/opcode"
	"go.uber.org/zap"
)

// Code is a JVM bytecode buffer with its constant pool.
type Code struct {
	err   error
	pool  *Pool
	buf   []byte
	cfg   Config
	depth int
	max   int
}

// New creates an empty code buffer.
func New(cfg Config) *Code {
	cfg = cfg.normalized()
	return &Code{
		cfg:  cfg,
		buf:  make([]byte, 0, cfg.InitialCapacity),
		pool: NewPool(cfg.PoolLimit),
	}
}

// Insn emits an instruction without operands.
func (c *Code) Insn(op opcode.Opcode) {
	if c.err != nil {
		return
	}
	info, ok := opcode.Get(op)
	if !ok || info.Operand != opcode.OperandNone {
		c.fail(errors.InvalidOperand(errors.PhaseEncode, op.String(), "no operand"))
		return
	}
	c.buf = append(c.buf, byte(op))
	c.track(op)
}

// IntInsn emits bipush or sipush with an immediate operand.
func (c *Code) IntInsn(op opcode.Opcode, operand int) {
	if c.err != nil {
		return
	}
	switch op {
	case opcode.Bipush:
		if operand < math.MinInt8 || operand > math.MaxInt8 {
			c.fail(errors.OutOfRange(errors.PhaseEncode, op.String(), operand, "[-128, 127]"))
			return
		}
		c.buf = append(c.buf, byte(op), byte(int8(operand)))
	case opcode.Sipush:
		if operand < math.MinInt16 || operand > math.MaxInt16 {
			c.fail(errors.OutOfRange(errors.PhaseEncode, op.String(), operand, "[-32768, 32767]"))
			return
		}
		c.buf = append(c.buf, byte(op))
		c.buf = binary.BigEndian.AppendUint16(c.buf, uint16(int16(operand)))
	default:
		c.fail(errors.InvalidOperand(errors.PhaseEncode, op.String(), operand))
		return
	}
	c.track(op)
}

// VarInsn emits a local variable load or store. Slots above 255 use the wide prefix.
func (c *Code) VarInsn(op opcode.Opcode, slot int) {
	if c.err != nil {
		return
	}
	info, ok := opcode.Get(op)
	if !ok || info.Operand != opcode.OperandSlot {
		c.fail(errors.InvalidOperand(errors.PhaseEncode, op.String(), slot))
		return
	}
	switch {
	case slot < 0 || slot > math.MaxUint16:
		c.fail(errors.OutOfRange(errors.PhaseEncode, op.String(), slot, "[0, 65535]"))
		return
	case slot > math.MaxUint8:
		c.buf = append(c.buf, byte(opcode.Wide), byte(op))
		c.buf = binary.BigEndian.AppendUint16(c.buf, uint16(slot))
	default:
		c.buf = append(c.buf, byte(op), byte(slot))
	}
	c.track(op)
}

// Ldc interns value in the pool and emits the matching load. int64 and float64
// use ldc2_w. Other literals use ldc when the index fits in one byte and
// PreferWide is unset, and ldc_w otherwise.
func (c *Code) Ldc(value any) {
	if c.err != nil {
		return
	}
	idx, err := c.pool.Add(value)
	if err != nil {
		c.fail(err)
		return
	}
	var op opcode.Opcode
	switch value.(type) {
	case int64, float64:
		op = opcode.Ldc2W
	default:
		op = opcode.LdcW
		if idx <= math.MaxUint8 && !c.cfg.PreferWide {
			op = opcode.Ldc
		}
	}
	Logger().Debug("constant load", zap.Stringer("op", op), zap.Uint16("index", idx))
	if op == opcode.Ldc {
		c.buf = append(c.buf, byte(op), byte(idx))
	} else {
		c.buf = append(c.buf, byte(op))
		c.buf = binary.BigEndian.AppendUint16(c.buf, idx)
	}
	c.track(op)
}

func (c *Code) track(op opcode.Opcode) {
	c.depth += op.Delta()
	if c.depth > c.max {
		c.max = c.depth
	}
}

func (c *Code) fail(err error) {
	c.err = err
	Logger().Debug("code emission failed", zap.Error(err), zap.Int("offset", len(c.buf)))
}

// Err returns the first encoding error, if any.
func (c *Code) Err() error {
	return c.err
}

// Bytes returns a copy of the encoded instructions.
func (c *Code) Bytes() []byte {
	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return out
}

// Len returns the number of encoded bytes.
func (c *Code) Len() int {
	return len(c.buf)
}

// Pool returns the constant pool shared by all emitted literals.
func (c *Code) Pool() *Pool {
	return c.pool
}

// Depth returns the operand stack depth in words implied by the opcodes
// emitted so far.
func (c *Code) Depth() int {
	return c.depth
}

// MaxDepth returns the highest depth observed by Depth.
func (c *Code) MaxDepth() int {
	return c.max
}

// Reset clears instructions, pool and error while keeping the configuration.
func (c *Code) Reset() {
	c.buf = c.buf[:0]
	c.pool = NewPool(c.cfg.PoolLimit)
	c.err = nil
	c.depth = 0
	c.max = 0
}

// Listing disassembles the emitted instructions.
func (c *Code) Listing() ([]Line, error) {
	return Disassemble(c.buf, c.pool)
}
