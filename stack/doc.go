// Package stack defines the manipulation protocol that stackgen code generation
// composes against.
//
// A Manipulation emits zero or more instructions into an Emitter and reports the
// net effect on the operand stack as a Size. Sizes aggregate: summing the impacts
// of a sequence gives its net effect, and the running maximum of the cumulative
// impact gives the stack capacity the sequence requires.
//
//	body := stack.NewCompound(
//		constant.ForDouble(2.5),
//		constant.ForDouble(1),
//		stack.Remove(stack.DoubleSlot),
//		member.Return(category.Double),
//	)
//	size := stack.Apply(body, code, nil)
//	maxStack := size.Maximal()
//
// # Validity
//
// IsValid must hold before Apply is invoked. Applying an invalid manipulation is
// a programming error in the caller and panics with an *errors.Error of kind
// contract_violation. Compound checks every element before emitting anything, so
// an invalid sequence never produces partial output.
//
// # Thread Safety
//
// Manipulations defined by stackgen are immutable values and safe for concurrent
// use. Emitters are not: a method body must be generated by one goroutine at a time.
package stack
