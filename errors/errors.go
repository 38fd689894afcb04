package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in code generation the error occurred
type Phase string

const (
	PhaseEmit     Phase = "emit"     // manipulation applied to an emitter
	PhaseClassify Phase = "classify" // type category resolution
	PhaseEncode   Phase = "encode"   // bytecode and constant pool encoding
	PhaseLower    Phase = "lower"    // lowering to WebAssembly
	PhaseExecute  Phase = "execute"  // running lowered code
	PhaseParse    Phase = "parse"    // manipulation script parsing
)

// Kind categorizes the error
type Kind string

const (
	KindContractViolation Kind = "contract_violation"
	KindInvalidDescriptor Kind = "invalid_descriptor"
	KindInvalidOperand    Kind = "invalid_operand"
	KindUnsupported       Kind = "unsupported"
	KindPoolOverflow      Kind = "pool_overflow"
	KindOutOfRange        Kind = "out_of_range"
	KindStackUnderflow    Kind = "stack_underflow"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		if e.Op != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path, e.g. the index inside a compound manipulation
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Op sets the manipulation or opcode name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ContractViolation reports a manipulation applied while invalid.
func ContractViolation(op string, path []string) *Error {
	return &Error{
		Phase:  PhaseEmit,
		Kind:   KindContractViolation,
		Op:     op,
		Path:   path,
		Detail: "apply called on an invalid manipulation",
	}
}

// InvalidDescriptor creates a descriptor classification error
func InvalidDescriptor(desc string) *Error {
	return &Error{
		Phase:  PhaseClassify,
		Kind:   KindInvalidDescriptor,
		Value:  desc,
		Detail: fmt.Sprintf("cannot classify descriptor %q", desc),
	}
}

// InvalidOperand creates an error for an operand the instruction cannot encode
func InvalidOperand(phase Phase, op string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidOperand,
		Op:     op,
		Value:  value,
		Detail: fmt.Sprintf("operand %v (%T) not encodable", value, value),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// PoolOverflow creates a constant pool exhaustion error
func PoolOverflow(size, limit int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindPoolOverflow,
		Value:  size,
		Detail: fmt.Sprintf("constant pool needs %d entries, limit is %d", size, limit),
	}
}

// OutOfRange creates an error for a value outside the encodable range
func OutOfRange(phase Phase, op string, value any, limit string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Op:     op,
		Value:  value,
		Detail: fmt.Sprintf("%v exceeds %s", value, limit),
	}
}

// StackUnderflow creates an error for an operation popping an empty stack
func StackUnderflow(phase Phase, op string, depth int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindStackUnderflow,
		Op:     op,
		Value:  depth,
		Detail: fmt.Sprintf("stack depth would become %d", depth),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Cause:  cause,
		Detail: detail,
	}
}

// ParseFailed creates a parsing error for a script line
func ParseFailed(line int, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Path:   []string{fmt.Sprintf("line %d", line)},
		Cause:  cause,
		Detail: "cannot parse manipulation",
	}
}
