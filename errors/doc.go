// Package errors provides structured error types for the stackgen module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending operation, a location path, the offending
// value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindOutOfRange).
//		Op("sipush").
//		Value(40000).
//		Detail("operand exceeds signed 16-bit range").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidDescriptor("Q")
//	err := errors.PoolOverflow(70000, 65535)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
