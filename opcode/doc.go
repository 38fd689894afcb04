// Package opcode defines the instruction set emitted by stackgen manipulations.
//
// Opcode values and stack words follow the JVM instruction set. Each opcode carries
// an Info record with its mnemonic, the kind of immediate operand it takes, and the
// number of operand-stack words it pops and pushes. Long and double values occupy
// two words.
package opcode
