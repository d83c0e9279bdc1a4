package lambda

import (
	"fmt"
	"reflect"

	"github.com/kbukum/lambdachain/errors"
)

// Indexer is implemented by values with their own item access rules.
type Indexer interface {
	At(key any) (any, error)
}

// Accessor is implemented by values with their own member lookup rules.
type Accessor interface {
	Member(name string) (any, bool)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func getAttr(v any, name string) (any, error) {
	if a, ok := v.(Accessor); ok {
		if m, ok := a.Member(name); ok {
			return m, nil
		}
		return nil, errors.AttributeNotFound(name, v)
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.AttributeNotFound(name, v)
	}
	base, derefed := rv, false
	for base.Kind() == reflect.Pointer || base.Kind() == reflect.Interface {
		if base.IsNil() {
			return nil, errors.AttributeNotFound(name, v)
		}
		base, derefed = base.Elem(), true
	}
	if base.Kind() == reflect.Struct {
		if sf, ok := base.Type().FieldByName(name); ok && sf.IsExported() {
			if f, err := base.FieldByIndexErr(sf.Index); err == nil && f.CanInterface() {
				return f.Interface(), nil
			}
		}
	}
	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}
	if derefed {
		if m := base.MethodByName(name); m.IsValid() {
			return m.Interface(), nil
		}
	}
	if base.Kind() == reflect.Map && base.Type().Key().Kind() == reflect.String {
		if mv := base.MapIndex(reflect.ValueOf(name).Convert(base.Type().Key())); mv.IsValid() {
			return mv.Interface(), nil
		}
	}
	return nil, errors.AttributeNotFound(name, v)
}

func getItem(v, key any) (any, error) {
	if ix, ok := v.(Indexer); ok {
		return ix.At(key)
	}
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.String:
		runes := []rune(rv.String())
		i, err := position(key, len(runes))
		if err != nil {
			return nil, err
		}
		return string(runes[i]), nil
	case reflect.Slice, reflect.Array:
		i, err := position(key, rv.Len())
		if err != nil {
			return nil, err
		}
		return rv.Index(i).Interface(), nil
	case reflect.Map:
		kv, err := argValue(key, rv.Type().Key())
		if err != nil {
			return nil, err
		}
		if !kv.Comparable() {
			return nil, errors.TypeMismatch("hashable key", key)
		}
		mv := rv.MapIndex(kv)
		if !mv.IsValid() {
			return nil, errors.KeyNotFound(key)
		}
		return mv.Interface(), nil
	}
	return nil, errors.UnsupportedOperation("[]", v, key)
}

// position resolves key against a sequence of length n, counting negative
// indices from the end.
func position(key any, n int) (int, error) {
	k, kv := kindOf(key)
	if k != intKind && k != uintKind {
		return 0, errors.TypeMismatch("integer index", key)
	}
	i := int(toInt(k, kv))
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, errors.IndexOutOfRange(i, n)
	}
	return j, nil
}

// bound clamps a slice bound the way Python does; nil means def.
func bound(b any, n, def int) (int, error) {
	if b == nil {
		return def, nil
	}
	k, bv := kindOf(b)
	if k != intKind && k != uintKind {
		return 0, errors.TypeMismatch("integer slice bound", b)
	}
	i := int(toInt(k, bv))
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n), nil
}

func sliceOf(v, start, stop any) (any, error) {
	rv := indirect(reflect.ValueOf(v))
	var n int
	var runes []rune
	switch rv.Kind() {
	case reflect.String:
		runes = []rune(rv.String())
		n = len(runes)
	case reflect.Slice, reflect.Array:
		n = rv.Len()
	default:
		return nil, errors.UnsupportedOperation("[:]", v)
	}
	lo, err := bound(start, n, 0)
	if err != nil {
		return nil, err
	}
	hi, err := bound(stop, n, n)
	if err != nil {
		return nil, err
	}
	hi = max(hi, lo)
	switch rv.Kind() {
	case reflect.String:
		return reflect.ValueOf(string(runes[lo:hi])).Convert(rv.Type()).Interface(), nil
	case reflect.Array:
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}
	return rv.Slice(lo, hi).Interface(), nil
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func callMethod(recv any, name string, args []any) (any, error) {
	m, err := getAttr(recv, name)
	if err != nil {
		return nil, err
	}
	return invoke(m, args)
}

// invoke calls fn with args converted to its parameter types. A trailing
// error result is returned as the error, unchanged.
func invoke(fn any, args []any) (any, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, errors.NotCallable(fn)
	}
	t := rv.Type()
	n := t.NumIn()
	if (!t.IsVariadic() && len(args) != n) || (t.IsVariadic() && len(args) < n-1) {
		return nil, errors.New(errors.ErrCodeTypeMismatch,
			fmt.Sprintf("%s expects %d argument(s), got %d", t, n, len(args)))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(t, i)
		av, err := argValue(a, pt)
		if err != nil {
			return nil, err
		}
		in[i] = av
	}
	return results(rv.Call(in))
}

func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

func argValue(a any, pt reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch pt.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, errors.TypeMismatch(pt.String(), a)
	}
	av := reflect.ValueOf(a)
	if av.Type().AssignableTo(pt) {
		return av, nil
	}
	// int -> string conversion yields a rune, never what the caller meant.
	if pt.Kind() == reflect.String && av.Kind() != reflect.String {
		return reflect.Value{}, errors.TypeMismatch(pt.String(), a)
	}
	if av.Type().ConvertibleTo(pt) {
		return av.Convert(pt), nil
	}
	return reflect.Value{}, errors.TypeMismatch(pt.String(), a)
}

func results(out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	vals := make([]any, len(out))
	for i, o := range out {
		vals[i] = o.Interface()
	}
	return vals, nil
}
