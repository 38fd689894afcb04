package opcode

import (
	"strings"
	"testing"
)

func TestAllOpcodesHaveMetadata(t *testing.T) {
	for op := range table {
		info, ok := Get(op)
		if !ok || info.Name == "" {
			t.Errorf("opcode 0x%02x has no metadata", byte(op))
		}
		back, ok := Lookup(info.Name)
		if !ok || back != op {
			t.Errorf("Lookup(%q) = 0x%02x, %v; want 0x%02x", info.Name, byte(back), ok, byte(op))
		}
	}
}

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		want string
		op   Opcode
	}{
		{"dconst_0", Dconst0},
		{"dconst_1", Dconst1},
		{"ldc2_w", Ldc2W},
		{"iload_3", Iload0 + 3},
		{"astore_2", Astore0 + 2},
		{"dreturn", Dreturn},
		{"return", Return},
		{"pop2", Pop2},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.op.String(); got != tt.want {
				t.Errorf("Opcode(0x%02x).String() = %q, want %q", byte(tt.op), got, tt.want)
			}
		})
	}
}

func TestUnknownOpcodeString(t *testing.T) {
	got := Opcode(0xFE).String()
	if !strings.HasPrefix(got, "unknown") {
		t.Errorf("unknown opcode should render as unknown, got %q", got)
	}
	if _, ok := Get(0xFE); ok {
		t.Error("Get(0xfe) should report missing metadata")
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		op   Opcode
		want int
	}{
		{Dconst1, 2},
		{Fconst2, 1},
		{Ldc, 1},
		{Ldc2W, 2},
		{Pop2, -2},
		{Dup2, 2},
		{Lreturn, -2},
		{Return, 0},
		{Dstore0 + 1, -2},
	}

	for _, tt := range tests {
		if got := tt.op.Delta(); got != tt.want {
			t.Errorf("%s.Delta() = %d, want %d", tt.op, got, tt.want)
		}
	}
}

func TestOperandLen(t *testing.T) {
	tests := []struct {
		op   Opcode
		want int
	}{
		{Nop, 0},
		{Bipush, 1},
		{Sipush, 2},
		{Ldc, 1},
		{LdcW, 2},
		{Ldc2W, 2},
		{Iload, 1},
		{Iload0, 0},
		{Wide, 0},
	}

	for _, tt := range tests {
		info, _ := Get(tt.op)
		if got := info.Operand.Len(); got != tt.want {
			t.Errorf("%s operand len = %d, want %d", tt.op, got, tt.want)
		}
	}
}

func TestIsReturn(t *testing.T) {
	for _, op := range []Opcode{Ireturn, Lreturn, Freturn, Dreturn, Areturn, Return} {
		if !op.IsReturn() {
			t.Errorf("%s should be a return", op)
		}
	}
	for _, op := range []Opcode{Nop, Pop, Ldc2W, Wide} {
		if op.IsReturn() {
			t.Errorf("%s should not be a return", op)
		}
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		op      Opcode
		general Opcode
		slot    int
		ok      bool
	}{
		{Iload0, Iload, 0, true},
		{Lload0 + 3, Lload, 3, true},
		{Dload0 + 2, Dload, 2, true},
		{Aload0 + 1, Aload, 1, true},
		{Istore0 + 3, Istore, 3, true},
		{Fstore0, Fstore, 0, true},
		{Astore0 + 3, Astore, 3, true},
		{Iload, Iload, 0, false},
		{Pop, Pop, 0, false},
	}
	for _, tt := range tests {
		general, slot, ok := tt.op.Expand()
		if general != tt.general || slot != tt.slot || ok != tt.ok {
			t.Errorf("%s.Expand() = %s, %d, %v; want %s, %d, %v",
				tt.op, general, slot, ok, tt.general, tt.slot, tt.ok)
		}
	}
}
