package codebuf_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/stackgen/category"
	"github.com/wippyai/stackgen/codebuf"
	"github.com/wippyai/stackgen/constant"
	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/member"
	"github.com/wippyai/stackgen/stack"
)

func TestBody_MaxStack(t *testing.T) {
	tests := []struct {
		name      string
		ms        []stack.Manipulation
		wantMax   int
		wantDepth int
	}{
		{"empty", nil, 0, 0},
		{"double return", []stack.Manipulation{constant.ForDouble(2.5), member.Return(category.Double)}, 2, 0},
		{"void return", []stack.Manipulation{member.Return(category.Void)}, 0, 0},
		{
			"load dup pop",
			[]stack.Manipulation{
				member.Load(category.Long, 1),
				stack.Duplicate(stack.DoubleSlot),
				stack.Remove(stack.DoubleSlot),
				stack.Remove(stack.DoubleSlot),
			},
			4, 0,
		},
		{
			"compound",
			[]stack.Manipulation{stack.NewCompound(constant.ForInt(3), constant.ForLong(1), stack.Remove(stack.DoubleSlot))},
			3, 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := codebuf.NewBody(codebuf.New(codebuf.DefaultConfig()), nil)
			if err := body.Add(tt.ms...); err != nil {
				t.Fatal(err)
			}
			if body.MaxStack() != tt.wantMax || body.Depth() != tt.wantDepth {
				t.Errorf("MaxStack() = %d, Depth() = %d; want %d, %d",
					body.MaxStack(), body.Depth(), tt.wantMax, tt.wantDepth)
			}
		})
	}
}

func TestBody_Underflow(t *testing.T) {
	code := codebuf.New(codebuf.DefaultConfig())
	body := codebuf.NewBody(code, nil)
	err := body.Add(constant.ForInt(1), stack.Remove(stack.DoubleSlot))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindStackUnderflow}) {
		t.Fatalf("Add() = %v, want stack underflow", err)
	}
	if code.Len() != 1 {
		t.Errorf("Len() = %d, want only iconst_1 emitted", code.Len())
	}
	if body.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", body.Depth())
	}
}

func TestBody_UnderflowAfterWideReturn(t *testing.T) {
	code := codebuf.New(codebuf.DefaultConfig())
	body := codebuf.NewBody(code, nil)
	err := body.Add(constant.ForLong(7), member.Return(category.Long), member.Return(category.OtherPrimitive))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindStackUnderflow}) {
		t.Fatalf("Add() = %v, want stack underflow", err)
	}
	if code.Len() != 4 {
		t.Errorf("Len() = %d, want ldc2_w and lreturn only", code.Len())
	}
	if body.Depth() != 0 || code.Depth() != 0 {
		t.Errorf("Depth() = %d, Code.Depth() = %d; want 0, 0", body.Depth(), code.Depth())
	}
	if body.Size().Impact() != 1 {
		t.Errorf("Size().Impact() = %d, want 1", body.Size().Impact())
	}
}

func TestBody_DepthMatchesCode(t *testing.T) {
	code := codebuf.New(codebuf.DefaultConfig())
	body := codebuf.NewBody(code, nil)
	if err := body.Add(constant.ForDouble(2.5), member.Return(category.Double)); err != nil {
		t.Fatal(err)
	}
	if body.Depth() != code.Depth() {
		t.Errorf("Depth() = %d, Code.Depth() = %d", body.Depth(), code.Depth())
	}
}

func TestBody_InvalidManipulation(t *testing.T) {
	code := codebuf.New(codebuf.DefaultConfig())
	body := codebuf.NewBody(code, nil)
	err := body.Add(constant.ForInt(1), member.Load(category.Void, 0))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEmit, Kind: errors.KindContractViolation}) {
		t.Fatalf("Add() = %v, want contract violation", err)
	}
	if code.Len() != 1 {
		t.Errorf("Len() = %d, want 1", code.Len())
	}
}

func TestBody_EncodingError(t *testing.T) {
	code := codebuf.New(codebuf.DefaultConfig().WithPoolLimit(2))
	body := codebuf.NewBody(code, nil)
	err := body.Add(constant.ForDouble(2.5))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindPoolOverflow}) {
		t.Fatalf("Add() = %v, want pool overflow", err)
	}
	if body.MaxStack() != 0 {
		t.Errorf("MaxStack() = %d, want 0", body.MaxStack())
	}
}
