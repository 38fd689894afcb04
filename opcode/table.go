package opcode

import "fmt"

var table = map[Opcode]Info{
	Nop:        {"nop", OperandNone, 0, 0},
	AconstNull: {"aconst_null", OperandNone, 0, 1},
	IconstM1:   {"iconst_m1", OperandNone, 0, 1},
	Iconst0:    {"iconst_0", OperandNone, 0, 1},
	Iconst1:    {"iconst_1", OperandNone, 0, 1},
	Iconst2:    {"iconst_2", OperandNone, 0, 1},
	Iconst3:    {"iconst_3", OperandNone, 0, 1},
	Iconst4:    {"iconst_4", OperandNone, 0, 1},
	Iconst5:    {"iconst_5", OperandNone, 0, 1},
	Lconst0:    {"lconst_0", OperandNone, 0, 2},
	Lconst1:    {"lconst_1", OperandNone, 0, 2},
	Fconst0:    {"fconst_0", OperandNone, 0, 1},
	Fconst1:    {"fconst_1", OperandNone, 0, 1},
	Fconst2:    {"fconst_2", OperandNone, 0, 1},
	Dconst0:    {"dconst_0", OperandNone, 0, 2},
	Dconst1:    {"dconst_1", OperandNone, 0, 2},
	Bipush:     {"bipush", OperandByte, 0, 1},
	Sipush:     {"sipush", OperandShort, 0, 1},
	Ldc:        {"ldc", OperandPool1, 0, 1},
	LdcW:       {"ldc_w", OperandPool2, 0, 1},
	Ldc2W:      {"ldc2_w", OperandPool2, 0, 2},

	Iload: {"iload", OperandSlot, 0, 1},
	Lload: {"lload", OperandSlot, 0, 2},
	Fload: {"fload", OperandSlot, 0, 1},
	Dload: {"dload", OperandSlot, 0, 2},
	Aload: {"aload", OperandSlot, 0, 1},

	Istore: {"istore", OperandSlot, 1, 0},
	Lstore: {"lstore", OperandSlot, 2, 0},
	Fstore: {"fstore", OperandSlot, 1, 0},
	Dstore: {"dstore", OperandSlot, 2, 0},
	Astore: {"astore", OperandSlot, 1, 0},

	Pop:    {"pop", OperandNone, 1, 0},
	Pop2:   {"pop2", OperandNone, 2, 0},
	Dup:    {"dup", OperandNone, 1, 2},
	DupX1:  {"dup_x1", OperandNone, 2, 3},
	DupX2:  {"dup_x2", OperandNone, 3, 4},
	Dup2:   {"dup2", OperandNone, 2, 4},
	Dup2X1: {"dup2_x1", OperandNone, 3, 5},
	Dup2X2: {"dup2_x2", OperandNone, 4, 6},
	Swap:   {"swap", OperandNone, 2, 2},

	Ireturn: {"ireturn", OperandNone, 1, 0},
	Lreturn: {"lreturn", OperandNone, 2, 0},
	Freturn: {"freturn", OperandNone, 1, 0},
	Dreturn: {"dreturn", OperandNone, 2, 0},
	Areturn: {"areturn", OperandNone, 1, 0},
	Return:  {"return", OperandNone, 0, 0},

	Wide: {"wide", OperandPrefix, 0, 0},
}

var byName = make(map[string]Opcode, len(table)+40)

func init() {
	// Short-form loads and stores: <x>load_<n> / <x>store_<n> for n in 0..3.
	shortForms := []struct {
		base   Opcode
		prefix string
		pops   int
		pushes int
	}{
		{Iload0, "iload", 0, 1},
		{Lload0, "lload", 0, 2},
		{Fload0, "fload", 0, 1},
		{Dload0, "dload", 0, 2},
		{Aload0, "aload", 0, 1},
		{Istore0, "istore", 1, 0},
		{Lstore0, "lstore", 2, 0},
		{Fstore0, "fstore", 1, 0},
		{Dstore0, "dstore", 2, 0},
		{Astore0, "astore", 1, 0},
	}
	for _, sf := range shortForms {
		for n := 0; n < 4; n++ {
			table[sf.base+Opcode(n)] = Info{
				Name:   fmt.Sprintf("%s_%d", sf.prefix, n),
				Pops:   sf.pops,
				Pushes: sf.pushes,
			}
		}
	}

	for op, info := range table {
		byName[info.Name] = op
	}
}
