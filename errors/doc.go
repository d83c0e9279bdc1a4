// Package errors provides the error taxonomy shared by the expression
// builder and the chain engine.
//
// Every failure raised by lambdachain itself is an *Error carrying a
// machine-readable Code. Errors returned by user code (methods invoked
// through an expression, stage functions) are passed through unchanged.
package errors
