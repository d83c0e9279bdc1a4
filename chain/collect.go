package chain

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/kbukum/lambdachain/errors"
	"github.com/kbukum/lambdachain/pipeline"
)

// Collector materializes the elements of a forced chain. Collect pulls from
// it until exhaustion or the first error; the caller closes it.
type Collector interface {
	Collect(ctx context.Context, it pipeline.Iterator[any]) (any, error)
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func(ctx context.Context, it pipeline.Iterator[any]) (any, error)

// Collect calls f.
func (f CollectorFunc) Collect(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
	return f(ctx, it)
}

// Built-in collectors.
var (
	// List collects into a []any in order. An empty chain gives an empty,
	// non-nil slice.
	List Collector = CollectorFunc(collectList)
	// Set collects the distinct elements into a []any, in order of first
	// appearance.
	Set Collector = CollectorFunc(collectSet)
	// Dict collects Pair, Group, or two-element []any values into a
	// map[any]any. Later keys overwrite earlier ones.
	Dict Collector = CollectorFunc(collectDict)
	// Count returns the number of elements as an int.
	Count Collector = CollectorFunc(collectCount)
)

// Join concatenates the elements, converted to strings, separated by sep.
func Join(sep string) Collector {
	return CollectorFunc(func(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
		var b strings.Builder
		first := true
		err := each(ctx, it, func(v any) error {
			s, err := cast.ToStringE(v)
			if err != nil {
				return errors.TypeMismatch("string", v).WithCause(err)
			}
			if !first {
				b.WriteString(sep)
			}
			first = false
			b.WriteString(s)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return b.String(), nil
	})
}

// CollectorByName returns the collector configured by name: "list", "set"
// or "dict". An empty name selects List.
func CollectorByName(name string) (Collector, error) {
	switch name {
	case "", "list":
		return List, nil
	case "set":
		return Set, nil
	case "dict":
		return Dict, nil
	}
	return nil, errors.InvalidConfig(fmt.Sprintf("unknown collector %q", name))
}

func each(ctx context.Context, it pipeline.Iterator[any], fn func(any) error) error {
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

func collectList(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
	out := []any{}
	err := each(ctx, it, func(v any) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func collectSet(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
	distinct := pipeline.Distinct[any, any](pipeline.From[any](borrowed{it}), nil)
	return collectList(ctx, distinct.Iter(ctx))
}

func collectDict(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
	out := make(map[any]any)
	err := each(ctx, it, func(v any) error {
		k, val, err := entry(v)
		if err != nil {
			return err
		}
		out[k] = val
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func collectCount(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
	n := 0
	err := each(ctx, it, func(any) error {
		n++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// entry splits a dict element into key and value.
func entry(v any) (any, any, error) {
	var k, val any
	switch e := v.(type) {
	case Pair:
		k, val = e.Key, e.Value
	case Group:
		k, val = e.Key, e.Items
	case []any:
		if len(e) != 2 {
			return nil, nil, errors.TypeMismatch("pair", v)
		}
		k, val = e[0], e[1]
	default:
		return nil, nil, errors.TypeMismatch("pair", v)
	}
	if k != nil && !reflect.ValueOf(k).Comparable() {
		return nil, nil, errors.TypeMismatch("comparable key", k)
	}
	return k, val, nil
}

// borrowed hands an iterator to a nested pipeline without transferring
// ownership: closing it is left to the terminal that opened it.
type borrowed struct {
	pipeline.Iterator[any]
}

func (borrowed) Close() error { return nil }

// ToSlice forces c and converts every element to T.
func ToSlice[T any](ctx context.Context, c *Chain) ([]T, error) {
	out, err := c.Force(ctx, List)
	if err != nil {
		return nil, err
	}
	items := out.([]any)
	result := make([]T, len(items))
	for i, v := range items {
		t, ok := v.(T)
		if !ok {
			return nil, errors.TypeMismatch(reflect.TypeFor[T]().String(), v)
		}
		result[i] = t
	}
	return result, nil
}

// ToMap forces c, a chain of Pair, Group or two-element []any values, into
// a typed map.
func ToMap[K comparable, V any](ctx context.Context, c *Chain) (map[K]V, error) {
	out, err := c.Force(ctx, CollectorFunc(func(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
		m := make(map[K]V)
		err := each(ctx, it, func(v any) error {
			k, val, err := entry(v)
			if err != nil {
				return err
			}
			key, ok := k.(K)
			if !ok {
				return errors.TypeMismatch(reflect.TypeFor[K]().String(), k)
			}
			typed, ok := val.(V)
			if !ok && val != nil {
				return errors.TypeMismatch(reflect.TypeFor[V]().String(), val)
			}
			m[key] = typed
			return nil
		})
		return m, err
	}))
	if err != nil {
		return nil, err
	}
	return out.(map[K]V), nil
}
