// Package lambda builds deferred expressions from a shared placeholder.
//
// Operations applied to X are recorded instead of executed; the result is an
// immutable expression tree that can be replayed against any input:
//
//	even := lambda.X.Mod(2).Eq(0)
//	ok, _ := even.Eval(4) // true
//
//	name := lambda.X.Attr("Name").Call() // invoke the method Name()
//	first := lambda.X.Item(0)
//	size := lambda.Len(lambda.X)         // registry function
//
// Evaluation is pure: it never caches and never mutates the input. Values are
// handled dynamically (numbers are promoted across integer, float and decimal
// kinds; members are resolved by reflection).
//
// For describes a generator template ("for each element of X, where ..., select
// ...") that the chain package splices onto its current data.
package lambda
