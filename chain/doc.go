// Package chain composes lazy, restartable sequences of stages.
//
// A Chain is a source plus an immutable list of stages. Builder methods
// record a stage and return a new Chain; nothing is read from the source
// until a terminal (Force, Sum, Fold, Persist) drives the pipeline:
//
//	out, err := chain.From([]int{1, 2, 3, 4, 5}).
//		Filter(lambda.X.Mod(2).Eq(0)).
//		Map(lambda.X.Mul(3)).
//		Force(ctx) // []any{6, 12}
//
// Stage parameters are resolved when forced: an expression built from
// lambda.X, a func(any) any, a func(any) (any, error), a predicate, or any
// one-argument Go function. Apply splices a generator template
// (lambda.For(lambda.X).Where(...).Select(...)) onto the chain's current
// data.
//
// Every force is logged under the "lambdachain" component and wrapped in an
// OpenTelemetry span when the Runtime enables tracing.
package chain
