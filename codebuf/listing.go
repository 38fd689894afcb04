package codebuf

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/opcode"
)

// Line is one disassembled instruction.
type Line struct {
	Comment string
	Offset  int
	Operand int
	Op      opcode.Opcode
	Wide    bool
	HasArg  bool
}

func (l Line) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d: ", l.Offset)
	if l.Wide {
		b.WriteString("wide ")
	}
	b.WriteString(l.Op.String())
	if arg := l.Arg(); arg != "" {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	if l.Comment != "" {
		b.WriteString(" // ")
		b.WriteString(l.Comment)
	}
	return b.String()
}

// Arg formats the operand: "#n" for pool references, the plain number
// otherwise, and "" when the instruction has none.
func (l Line) Arg() string {
	if !l.HasArg {
		return ""
	}
	info, _ := opcode.Get(l.Op)
	if info.Operand == opcode.OperandPool1 || info.Operand == opcode.OperandPool2 {
		return fmt.Sprintf("#%d", l.Operand)
	}
	return fmt.Sprint(l.Operand)
}

// Disassemble decodes code into lines. Pool references are annotated from
// pool when it is non-nil.
func Disassemble(code []byte, pool *Pool) ([]Line, error) {
	var lines []Line
	for pos := 0; pos < len(code); {
		line := Line{Offset: pos, Op: opcode.Opcode(code[pos])}
		pos++
		if line.Op == opcode.Wide {
			if pos >= len(code) {
				return lines, truncated(line.Offset)
			}
			line.Wide = true
			line.Op = opcode.Opcode(code[pos])
			pos++
		}
		info, ok := opcode.Get(line.Op)
		if !ok {
			return lines, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Op(line.Op.String()).
				Detail("unknown opcode at offset %d", line.Offset).
				Build()
		}
		if line.Wide && info.Operand != opcode.OperandSlot {
			return lines, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Op(line.Op.String()).
				Detail("wide prefix on non-slot instruction at offset %d", line.Offset).
				Build()
		}
		n := info.Operand.Len()
		if line.Wide {
			n = 2
		}
		if pos+n > len(code) {
			return lines, truncated(line.Offset)
		}
		switch {
		case n == 0:
		case info.Operand == opcode.OperandByte:
			line.Operand = int(int8(code[pos]))
		case info.Operand == opcode.OperandShort:
			line.Operand = int(int16(binary.BigEndian.Uint16(code[pos:])))
		case n == 1:
			line.Operand = int(code[pos])
		default:
			line.Operand = int(binary.BigEndian.Uint16(code[pos:]))
		}
		line.HasArg = n > 0
		pos += n
		if pool != nil && (info.Operand == opcode.OperandPool1 || info.Operand == opcode.OperandPool2) {
			line.Comment = pool.Describe(uint16(line.Operand))
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func truncated(offset int) error {
	return errors.New(errors.PhaseEncode, errors.KindInvalidInput).
		Detail("truncated instruction at offset %d", offset).
		Build()
}

// FormatListing renders lines one per row.
func FormatListing(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}
