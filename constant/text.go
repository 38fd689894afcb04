package constant

import (
	"fmt"

	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

var referenceSize = stack.SingleSlot.ToIncreasingSize()

// Text loads a string from the constant table. Strings have no shortcut form.
type Text string

// ForString returns a manipulation loading s.
func ForString(s string) stack.Manipulation {
	return Text(s)
}

func (t Text) IsValid() bool {
	return true
}

func (t Text) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Ldc(string(t))
	return referenceSize
}

func (t Text) String() string {
	return fmt.Sprintf("ldc string %q", string(t))
}

type nullConstant struct{}

// Null loads the null reference.
var Null stack.Manipulation = nullConstant{}

func (nullConstant) IsValid() bool {
	return true
}

func (nullConstant) Apply(e stack.Emitter, _ stack.Context) stack.Size {
	e.Insn(opcode.AconstNull)
	return referenceSize
}

func (nullConstant) String() string {
	return opcode.AconstNull.String()
}
