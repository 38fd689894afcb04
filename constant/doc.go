// Package constant selects the cheapest instruction that loads a literal onto
// the operand stack.
//
// Each numeric kind has a small set of values with a dedicated one-byte opcode
// (dconst_0, iconst_m1, ...). Those values resolve to shared, stateless shortcut
// manipulations. Every other value resolves to a constant table reference, whose
// equality follows the literal's bit pattern so that identical literals
// deduplicate to one table entry:
//
//	constant.ForDouble(1)   // DoubleOne, emits dconst_1
//	constant.ForDouble(2.5) // DoublePool, emits ldc2_w #n
//
// The encoding affects code size only. Both forms of a kind report the same
// stack effect: one word for int, float, string and null, two for long and double.
package constant
