// Package wasmlower lowers stackgen manipulations to a WebAssembly function
// and runs the result with wazero.
//
// Function implements stack.Emitter. It keeps a typed model of the JVM
// operand stack so word-oriented instructions such as pop2 and dup2 can be
// rewritten into drop, local.tee and local.get on typed Wasm values. JVM
// local slots map to Wasm locals per value type; parameters occupy the
// leading slots the same way they do in a JVM frame.
//
// References are not lowered: strings, null and areturn fail with an
// unsupported error.
//
//	fn := wasmlower.New(wasmlower.DefaultConfig().WithResult(category.Double))
//	if err := fn.Lower(constant.ForDouble(2.5), member.Return(category.Double)); err != nil {
//		return err
//	}
//	mod, err := fn.Finish()
//	...
//	results, err := wasmlower.Run(ctx, mod, "run")
package wasmlower
