package chain

import (
	"context"
	"iter"
	"reflect"

	"github.com/kbukum/lambdachain/errors"
	"github.com/kbukum/lambdachain/pipeline"
)

// sourceOf adapts src into a pipeline without reading it. Slices, arrays
// and strings are indexed in place on every run; channels and raw
// iterators are drained by the first run only.
func sourceOf(src any) *pipeline.Pipeline[any] {
	switch s := src.(type) {
	case nil:
		return pipeline.Empty[any]()
	case *Chain:
		if s == nil {
			return pipeline.Empty[any]()
		}
		return s.pipeline()
	case *pipeline.Pipeline[any]:
		return s
	case pipeline.Iterator[any]:
		return pipeline.From(s)
	case iter.Seq[any]:
		return pipeline.FromSeq(s)
	case []any:
		return pipeline.FromSlice(s)
	case chan any:
		return pipeline.FromChan(s)
	case <-chan any:
		return pipeline.FromChan(s)
	}

	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return pipeline.FromFunc(func(context.Context) pipeline.Iterator[any] {
			return &indexIter{v: rv}
		})
	case reflect.String:
		return pipeline.FromSeq(func(yield func(any) bool) {
			for _, r := range rv.String() {
				if !yield(string(r)) {
					return
				}
			}
		})
	case reflect.Chan:
		if rv.Type().ChanDir()&reflect.RecvDir != 0 {
			return pipeline.FromFunc(func(context.Context) pipeline.Iterator[any] {
				return &chanIter{ch: rv}
			})
		}
	case reflect.Func:
		if seq, ok := seqOf(rv); ok {
			return pipeline.FromSeq(seq)
		}
	}
	return pipeline.Fail[any](errors.TypeMismatch("iterable", src))
}

// seqOf adapts a range-over-func sequence of any element type.
func seqOf(rv reflect.Value) (iter.Seq[any], bool) {
	t := rv.Type()
	if rv.IsNil() || t.NumIn() != 1 || t.NumOut() != 0 {
		return nil, false
	}
	yt := t.In(0)
	if yt.Kind() != reflect.Func || yt.NumIn() != 1 || yt.NumOut() != 1 || yt.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	return func(yield func(any) bool) {
		fn := reflect.MakeFunc(yt, func(args []reflect.Value) []reflect.Value {
			return []reflect.Value{reflect.ValueOf(yield(args[0].Interface()))}
		})
		rv.Call([]reflect.Value{fn})
	}, true
}

type indexIter struct {
	v     reflect.Value
	index int
}

func (it *indexIter) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if it.index >= it.v.Len() {
		return nil, false, nil
	}
	val := it.v.Index(it.index).Interface()
	it.index++
	return val, true, nil
}

func (it *indexIter) Close() error { return nil }

type chanIter struct {
	ch reflect.Value
}

func (it *chanIter) Next(ctx context.Context) (any, bool, error) {
	chosen, v, ok := reflect.Select([]reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: it.ch},
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())},
	})
	if chosen == 1 {
		return nil, false, ctx.Err()
	}
	if !ok {
		return nil, false, nil
	}
	return v.Interface(), true, nil
}

func (it *chanIter) Close() error { return nil }
