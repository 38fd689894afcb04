package wasmlower

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/stackgen/category"
	"github.com/wippyai/stackgen/errors"
)

// ValType is a WebAssembly number type.
type ValType byte

// Number types as encoded in the binary format.
const (
	I32 ValType = 0x7F
	I64 ValType = 0x7E
	F32 ValType = 0x7D
	F64 ValType = 0x7C
)

func (v ValType) String() string {
	switch v {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("valtype(0x%02x)", byte(v))
	}
}

// Words returns the JVM operand stack width of a value of this type.
func (v ValType) Words() int {
	if v == I64 || v == F64 {
		return 2
	}
	return 1
}

// ValTypeOf maps a category to its Wasm type. Void and Reference have none.
func ValTypeOf(c category.Category) (ValType, bool) {
	switch c {
	case category.OtherPrimitive:
		return I32, true
	case category.Long:
		return I64, true
	case category.Float:
		return F32, true
	case category.Double:
		return F64, true
	default:
		return 0, false
	}
}

// EncodeArg converts a Go value to the raw uint64 form wazero passes to exported functions.
func EncodeArg(v any) (uint64, error) {
	switch x := v.(type) {
	case int32:
		return api.EncodeI32(x), nil
	case int64:
		return api.EncodeI64(x), nil
	case float32:
		return api.EncodeF32(x), nil
	case float64:
		return api.EncodeF64(x), nil
	case bool:
		if x {
			return api.EncodeI32(1), nil
		}
		return api.EncodeI32(0), nil
	default:
		return 0, errors.InvalidOperand(errors.PhaseExecute, "argument", v)
	}
}

// DecodeResult converts a raw wazero result back to a Go value of type t.
func DecodeResult(t ValType, raw uint64) any {
	switch t {
	case I32:
		return api.DecodeI32(raw)
	case I64:
		return int64(raw)
	case F32:
		return api.DecodeF32(raw)
	default:
		return api.DecodeF64(raw)
	}
}
