package lambda

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"

	"github.com/kbukum/lambdachain/errors"
)

// Lener is implemented by values that report their own length.
type Lener interface {
	Len() int
}

func init() {
	Register("len", unaryFunc("len", builtinLen))
	Register("str", unaryFunc("str", builtinStr))
	Register("int", unaryFunc("int", func(v any) (any, error) { return convert("int", v, cast.ToIntE) }))
	Register("float", unaryFunc("float", func(v any) (any, error) { return convert("float64", v, cast.ToFloat64E) }))
	Register("bool", unaryFunc("bool", func(v any) (any, error) { return Truthy(v), nil }))
	Register("type", unaryFunc("type", func(v any) (any, error) { return fmt.Sprintf("%T", v), nil }))
	Register("abs", unaryFunc("abs", builtinAbs))
	Register("sorted", unaryFunc("sorted", builtinSorted))
	Register("sum", unaryFunc("sum", builtinSum))
	Register("lower", unaryFunc("lower", func(v any) (any, error) { return mapString("lower", v, strings.ToLower) }))
	Register("upper", unaryFunc("upper", func(v any) (any, error) { return mapString("upper", v, strings.ToUpper) }))
	Register("isinstance", builtinIsInstance)
}

func unaryFunc(name string, fn func(any) (any, error)) Func {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New(errors.ErrCodeTypeMismatch,
				fmt.Sprintf("%s expects 1 argument, got %d", name, len(args)))
		}
		return fn(args[0])
	}
}

func convert[T any](want string, v any, fn func(any) (T, error)) (any, error) {
	out, err := fn(v)
	if err != nil {
		return nil, errors.TypeMismatch(want, v).WithCause(err)
	}
	return out, nil
}

func builtinLen(v any) (any, error) {
	if l, ok := v.(Lener); ok {
		return l.Len(), nil
	}
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), nil
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), nil
	}
	return nil, errors.UnsupportedOperation("len", v)
}

func builtinStr(v any) (any, error) {
	if s, err := cast.ToStringE(v); err == nil {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

func builtinAbs(v any) (any, error) {
	c, err := Compare(v, 0)
	if err != nil {
		return nil, errors.UnsupportedOperation("abs", v)
	}
	if c < 0 {
		return unary("-", v)
	}
	return v, nil
}

func elements(name string, v any) ([]any, error) {
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, errors.UnsupportedOperation(name, v)
}

func builtinSorted(v any) (any, error) {
	items, err := elements("sorted", v)
	if err != nil {
		return nil, err
	}
	var cmpErr error
	slices.SortStableFunc(items, func(a, b any) int {
		c, err := Compare(a, b)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return c
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return items, nil
}

func builtinSum(v any) (any, error) {
	items, err := elements("sum", v)
	if err != nil {
		return nil, err
	}
	var acc any = 0
	for _, it := range items {
		if acc, err = Compute("+", acc, it); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func mapString(name string, v any, fn func(string) string) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.String {
		return nil, errors.UnsupportedOperation(name, v)
	}
	return fn(rv.String()), nil
}

func builtinIsInstance(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, errors.New(errors.ErrCodeTypeMismatch,
			fmt.Sprintf("isinstance expects 2 arguments, got %d", len(args)))
	}
	name, ok := args[1].(string)
	if !ok {
		return nil, errors.TypeMismatch("type name", args[1])
	}
	t := reflect.TypeOf(args[0])
	if t == nil {
		return name == "nil", nil
	}
	return t.String() == name || t.Kind().String() == name, nil
}
