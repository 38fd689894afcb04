package opcode

import "fmt"

// Opcode is a single-byte instruction of the target stack machine.
// Values follow the JVM instruction set.
type Opcode byte

// Constants
const (
	Nop        Opcode = 0x00
	AconstNull Opcode = 0x01
	IconstM1   Opcode = 0x02
	Iconst0    Opcode = 0x03
	Iconst1    Opcode = 0x04
	Iconst2    Opcode = 0x05
	Iconst3    Opcode = 0x06
	Iconst4    Opcode = 0x07
	Iconst5    Opcode = 0x08
	Lconst0    Opcode = 0x09
	Lconst1    Opcode = 0x0A
	Fconst0    Opcode = 0x0B
	Fconst1    Opcode = 0x0C
	Fconst2    Opcode = 0x0D
	Dconst0    Opcode = 0x0E
	Dconst1    Opcode = 0x0F
	Bipush     Opcode = 0x10 // operand: s1
	Sipush     Opcode = 0x11 // operand: s2
	Ldc        Opcode = 0x12 // operand: u1 pool index
	LdcW       Opcode = 0x13 // operand: u2 pool index
	Ldc2W      Opcode = 0x14 // operand: u2 pool index, long/double only
)

// Local variable loads
const (
	Iload  Opcode = 0x15 // operand: u1 slot
	Lload  Opcode = 0x16
	Fload  Opcode = 0x17
	Dload  Opcode = 0x18
	Aload  Opcode = 0x19
	Iload0 Opcode = 0x1A
	Lload0 Opcode = 0x1E
	Fload0 Opcode = 0x22
	Dload0 Opcode = 0x26
	Aload0 Opcode = 0x2A
)

// Local variable stores
const (
	Istore  Opcode = 0x36 // operand: u1 slot
	Lstore  Opcode = 0x37
	Fstore  Opcode = 0x38
	Dstore  Opcode = 0x39
	Astore  Opcode = 0x3A
	Istore0 Opcode = 0x3B
	Lstore0 Opcode = 0x3F
	Fstore0 Opcode = 0x43
	Dstore0 Opcode = 0x47
	Astore0 Opcode = 0x4B
)

// Stack
const (
	Pop    Opcode = 0x57
	Pop2   Opcode = 0x58
	Dup    Opcode = 0x59
	DupX1  Opcode = 0x5A
	DupX2  Opcode = 0x5B
	Dup2   Opcode = 0x5C
	Dup2X1 Opcode = 0x5D
	Dup2X2 Opcode = 0x5E
	Swap   Opcode = 0x5F
)

// Returns
const (
	Ireturn Opcode = 0xAC
	Lreturn Opcode = 0xAD
	Freturn Opcode = 0xAE
	Dreturn Opcode = 0xAF
	Areturn Opcode = 0xB0
	Return  Opcode = 0xB1
)

// Wide widens the slot operand of the following load/store to u2.
const Wide Opcode = 0xC4

// OperandKind describes the immediate bytes following an opcode.
type OperandKind int

const (
	OperandNone   OperandKind = iota
	OperandByte               // bipush: signed byte
	OperandShort              // sipush: signed short
	OperandPool1              // ldc: u1 constant pool index
	OperandPool2              // ldc_w, ldc2_w: u2 constant pool index
	OperandSlot               // xload/xstore: u1 local slot (u2 after wide)
	OperandPrefix             // wide: modifies the next instruction
)

// Len returns the number of operand bytes, without a wide prefix.
func (k OperandKind) Len() int {
	switch k {
	case OperandByte, OperandPool1, OperandSlot:
		return 1
	case OperandShort, OperandPool2:
		return 2
	default:
		return 0
	}
}

// Info describes an opcode's mnemonic, operand and stack words.
type Info struct {
	Name    string
	Operand OperandKind
	Pops    int // words popped
	Pushes  int // words pushed
}

// Get returns metadata for op. Unknown opcodes report ok == false.
func Get(op Opcode) (Info, bool) {
	info, ok := table[op]
	return info, ok
}

// Lookup finds an opcode by its mnemonic, e.g. "dconst_1".
func Lookup(name string) (Opcode, bool) {
	op, ok := byName[name]
	return op, ok
}

// String returns the mnemonic, or a hex form for unknown opcodes.
func (op Opcode) String() string {
	if info, ok := table[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("unknown(0x%02x)", byte(op))
}

// Delta returns pushes minus pops in words.
func (op Opcode) Delta() int {
	info := table[op]
	return info.Pushes - info.Pops
}

// IsReturn reports whether op terminates the method.
func (op Opcode) IsReturn() bool {
	return op >= Ireturn && op <= Return
}

// Expand maps a short load or store form such as dload_2 to its general
// opcode and slot. Other opcodes report ok == false.
func (op Opcode) Expand() (general Opcode, slot int, ok bool) {
	switch {
	case op >= Iload0 && op <= Aload0+3:
		k := int(op - Iload0)
		return Iload + Opcode(k/4), k % 4, true
	case op >= Istore0 && op <= Astore0+3:
		k := int(op - Istore0)
		return Istore + Opcode(k/4), k % 4, true
	default:
		return op, 0, false
	}
}
