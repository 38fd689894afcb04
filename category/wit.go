package category

import "go.bytecodealliance.org/wit"

// FromWIT classifies a WIT type. A nil type stands for a function without
// results and maps to Void.
func FromWIT(t wit.Type) Category {
	switch t.(type) {
	case nil:
		return Void
	case wit.S64, wit.U64:
		return Long
	case wit.F64:
		return Double
	case wit.F32:
		return Float
	case wit.Bool, wit.U8, wit.S8, wit.U16, wit.S16, wit.U32, wit.S32, wit.Char:
		return OtherPrimitive
	default:
		return Reference
	}
}

// witPrimitives maps WIT primitive names to their types.
var witPrimitives = map[string]wit.Type{
	"bool":   wit.Bool{},
	"u8":     wit.U8{},
	"s8":     wit.S8{},
	"u16":    wit.U16{},
	"s16":    wit.S16{},
	"u32":    wit.U32{},
	"s32":    wit.S32{},
	"u64":    wit.U64{},
	"s64":    wit.S64{},
	"f32":    wit.F32{},
	"f64":    wit.F64{},
	"char":   wit.Char{},
	"string": wit.String{},
}

// ParseWIT classifies a WIT primitive type name. Unknown names report ok == false.
func ParseWIT(name string) (c Category, ok bool) {
	t, ok := witPrimitives[name]
	if !ok {
		return 0, false
	}
	return FromWIT(t), true
}
