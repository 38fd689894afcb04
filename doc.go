// Package stackgen generates operand stack manipulations for a JVM-style
// stack machine and tracks their effect on stack depth.
//
// Every manipulation reports whether it can be applied and, once applied to
// an emitter, the size it contributes: the net change in words and the peak
// depth reached on the way. Sizes compose, so the peak of a whole method body
// falls out of aggregating its parts.
//
// # Architecture Overview
//
//	stackgen/
//	├── stack/           Size algebra, Manipulation protocol, Compound sequencer
//	│   └── stacktest/   Recording emitter and probe manipulations for tests
//	├── opcode/          Instruction set table: mnemonics, operands, stack words
//	├── category/        Type categories from descriptors and WIT types
//	├── constant/        Shortcut or constant-table loads for literals
//	├── member/          Method return dispatch and local variable access
//	├── codebuf/         JVM bytecode assembly with a deduplicating constant pool
//	├── wasmlower/       Lowering to a WebAssembly function, executed by wazero
//	├── errors/          Structured error types
//	└── cmd/stackgen/    Script assembler and interactive TUI
//
// # Quick Start
//
// Load a double and return it:
//
//	code := codebuf.New(codebuf.DefaultConfig())
//	body := codebuf.NewBody(code, nil)
//	err := body.Add(
//	    constant.ForDouble(2.5),
//	    member.Return(category.Double),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(body.MaxStack()) // 2
//
// The same manipulations can be lowered to WebAssembly and run:
//
//	fn := wasmlower.New(wasmlower.DefaultConfig().WithResult(category.Double))
//	if err := fn.Lower(constant.ForDouble(2.5), member.Return(category.Double)); err != nil {
//	    log.Fatal(err)
//	}
//	v, err := fn.Call(ctx) // 2.5
//
// # Constants
//
// Literals with a dedicated opcode use it (iconst_m1..iconst_5, lconst_0/1,
// fconst_0..2, dconst_0/1). Small ints fall back to bipush and sipush.
// Everything else loads from the constant table, where floating point values
// are identified by bit pattern so that 0.0 and -0.0 stay distinct.
//
// # Contract Violations
//
// Applying an invalid manipulation is a programming error and panics with an
// *errors.Error of kind contract_violation. Compound.TryApply and
// codebuf.Body.Add check validity up front and return the error instead,
// emitting nothing for the rejected manipulation.
//
// # Error Handling
//
// Errors carry the phase (emit, classify, encode, lower, execute, parse) and
// a kind:
//
//	var se *errors.Error
//	if stderrors.As(err, &se) {
//	    fmt.Printf("phase=%s kind=%s path=%v\n", se.Phase, se.Kind, se.Path)
//	}
//
// # Thread Safety
//
// Manipulations are immutable values and may be shared across goroutines.
// Emitters (codebuf.Code, wasmlower.Function) are not safe for concurrent use.
package stackgen
