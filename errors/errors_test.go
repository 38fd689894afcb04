package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEmit,
				Kind:   KindContractViolation,
				Path:   []string{"compound", "2"},
				Op:     "illegal",
				Detail: "apply called on an invalid manipulation",
			},
			contains: []string{"[emit]", "contract_violation", "compound.2", "illegal", " - apply called"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEncode,
				Kind:  KindPoolOverflow,
			},
			contains: []string{"[encode]", "pool_overflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseExecute,
				Kind:   KindInvalidInput,
				Detail: "instantiate",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[execute]", "invalid_input", ": instantiate", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLower,
		Kind:  KindUnsupported,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindOutOfRange,
		Op:    "sipush",
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfRange}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseLower, Kind: KindOutOfRange}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidOperand}) {
		t.Error("Is should not match different kind")
	}

	var wrapped error = Wrap(PhaseParse, KindInvalidInput, err, "line 3")
	if !errors.Is(wrapped, &Error{Phase: PhaseEncode, Kind: KindOutOfRange}) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var target *Error
	if !errors.As(wrapped, &target) || target.Phase != PhaseParse {
		t.Errorf("errors.As = %v, want outer parse error", target)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindOutOfRange).
		Path("code", "17").
		Op("sipush").
		Value(40000).
		Cause(cause).
		Detail("expected %s, got %d", "short", 40000).
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindOutOfRange {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
	}
	if len(err.Path) != 2 || err.Path[0] != "code" || err.Path[1] != "17" {
		t.Errorf("Path = %v, want [code 17]", err.Path)
	}
	if err.Op != "sipush" {
		t.Errorf("Op = %v, want sipush", err.Op)
	}
	if err.Value != 40000 {
		t.Errorf("Value = %v, want 40000", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected short, got 40000" {
		t.Errorf("Detail = %v, want 'expected short, got 40000'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		name  string
		phase Phase
		kind  Kind
	}{
		{name: "contract", err: ContractViolation("illegal", nil), phase: PhaseEmit, kind: KindContractViolation},
		{name: "descriptor", err: InvalidDescriptor("Q"), phase: PhaseClassify, kind: KindInvalidDescriptor},
		{name: "operand", err: InvalidOperand(PhaseEncode, "ldc", true), phase: PhaseEncode, kind: KindInvalidOperand},
		{name: "unsupported", err: Unsupported(PhaseLower, "areturn"), phase: PhaseLower, kind: KindUnsupported},
		{name: "pool", err: PoolOverflow(10, 8), phase: PhaseEncode, kind: KindPoolOverflow},
		{name: "range", err: OutOfRange(PhaseEncode, "bipush", 300, "byte"), phase: PhaseEncode, kind: KindOutOfRange},
		{name: "underflow", err: StackUnderflow(PhaseLower, "drop", -1), phase: PhaseLower, kind: KindStackUnderflow},
		{name: "input", err: InvalidInput(PhaseExecute, "no export"), phase: PhaseExecute, kind: KindInvalidInput},
		{name: "parse", err: ParseFailed(4, errors.New("x")), phase: PhaseParse, kind: KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase || tt.err.Kind != tt.kind {
				t.Errorf("got [%s] %s, want [%s] %s", tt.err.Phase, tt.err.Kind, tt.phase, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}

	if got := ParseFailed(4, errors.New("x")).Path; len(got) != 1 || got[0] != "line 4" {
		t.Errorf("ParseFailed path = %v", got)
	}
}
