package lambda

import (
	"reflect"

	"github.com/kbukum/lambdachain/errors"
)

// Callable resolves a stage parameter into a unary function. Expressions,
// the common func shapes, and any one-argument Go function are accepted.
func Callable(f any) (func(any) (any, error), error) {
	if nilFunc(f) {
		return nil, errors.NotCallable(f)
	}
	switch fn := f.(type) {
	case *Expr:
		if fn == nil {
			return nil, errors.NotCallable(f)
		}
		return fn.eval, nil
	case func(any) (any, error):
		return fn, nil
	case func(any) any:
		return func(x any) (any, error) { return fn(x), nil }, nil
	case func(any) bool:
		return func(x any) (any, error) { return fn(x), nil }, nil
	case func(any) (bool, error):
		return func(x any) (any, error) { return fn(x) }, nil
	}
	if arity(f) == 1 {
		return func(x any) (any, error) { return invoke(f, []any{x}) }, nil
	}
	return nil, errors.NotCallable(f)
}

// Predicate resolves f like Callable and applies truthiness to its result.
func Predicate(f any) (func(any) (bool, error), error) {
	if nilFunc(f) {
		return nil, errors.NotCallable(f)
	}
	switch fn := f.(type) {
	case func(any) bool:
		return func(x any) (bool, error) { return fn(x), nil }, nil
	case func(any) (bool, error):
		return fn, nil
	}
	call, err := Callable(f)
	if err != nil {
		return nil, err
	}
	return func(x any) (bool, error) {
		v, err := call(x)
		if err != nil {
			return false, err
		}
		return Truthy(v), nil
	}, nil
}

// Callable2 resolves a two-argument reducer (accumulator, element).
func Callable2(f any) (func(acc, x any) (any, error), error) {
	if nilFunc(f) {
		return nil, errors.NotCallable(f)
	}
	switch fn := f.(type) {
	case func(any, any) (any, error):
		return fn, nil
	case func(any, any) any:
		return func(acc, x any) (any, error) { return fn(acc, x), nil }, nil
	case string:
		// an operator symbol such as "+" or "*"
		return func(acc, x any) (any, error) { return Compute(fn, acc, x) }, nil
	}
	if arity(f) == 2 {
		return func(acc, x any) (any, error) { return invoke(f, []any{acc, x}) }, nil
	}
	return nil, errors.NotCallable(f)
}

func arity(f any) int {
	rv := reflect.ValueOf(f)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() || rv.Type().IsVariadic() {
		return -1
	}
	return rv.Type().NumIn()
}

// nilFunc reports a typed nil function, which passes a type switch.
func nilFunc(f any) bool {
	rv := reflect.ValueOf(f)
	return rv.IsValid() && rv.Kind() == reflect.Func && rv.IsNil()
}
