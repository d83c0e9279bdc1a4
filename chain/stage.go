package chain

import (
	"context"

	"github.com/kbukum/lambdachain/lambda"
	"github.com/kbukum/lambdachain/pipeline"
)

type stageKind int

const (
	stageFilter stageKind = iota
	stageReject
	stageMap
	stageUnique
	stageUniqueBy
	stageGroupBy
	stageGroupAll
	stageSortBy
	stageEnumerate
	stageZip
	stageApply
	stageChunk
	stageWindow
	stageFlatMap
	stageConcat
)

var stageNames = [...]string{
	stageFilter:    "filter",
	stageReject:    "reject",
	stageMap:       "map",
	stageUnique:    "unique",
	stageUniqueBy:  "unique-by",
	stageGroupBy:   "groupby",
	stageGroupAll:  "group-all",
	stageSortBy:    "sort-by",
	stageEnumerate: "enumerate",
	stageZip:       "zip",
	stageApply:     "apply",
	stageChunk:     "chunk",
	stageWindow:    "window",
	stageFlatMap:   "flat-map",
	stageConcat:    "concat",
}

func (k stageKind) String() string { return stageNames[k] }

// stage is one node of a chain's persistent stage list. Nodes are never
// modified after creation, so chains share their common prefix.
type stage struct {
	kind  stageKind
	param any
	a, b  int // enumerate start/step, chunk size, window size/step
	prev  *stage
}

// apply wraps p with the stage. Parameter resolution errors surface on the
// first pull.
func (s *stage) apply(p *pipeline.Pipeline[any]) *pipeline.Pipeline[any] {
	switch s.kind {
	case stageFilter, stageReject:
		pred, err := lambda.Predicate(s.param)
		if err != nil {
			return pipeline.Fail[any](err)
		}
		want := s.kind == stageFilter
		return pipeline.Filter(p, func(_ context.Context, x any) (bool, error) {
			ok, err := pred(x)
			return ok == want, err
		})
	case stageMap:
		fn, err := lambda.Callable(s.param)
		if err != nil {
			return pipeline.Fail[any](err)
		}
		return pipeline.Map(p, func(_ context.Context, x any) (any, error) { return fn(x) })
	case stageUnique:
		return pipeline.Distinct[any, any](p, nil)
	case stageUniqueBy:
		key, err := keyFunc(s.param)
		if err != nil {
			return pipeline.Fail[any](err)
		}
		return pipeline.Distinct(p, key)
	case stageGroupBy:
		key, err := keyFunc(s.param)
		if err != nil {
			return pipeline.Fail[any](err)
		}
		return widen(pipeline.GroupAdjacent(p, key, lambda.Equal))
	case stageGroupAll:
		key, err := keyFunc(s.param)
		if err != nil {
			return pipeline.Fail[any](err)
		}
		return widen(pipeline.GroupAll(p, key))
	case stageSortBy:
		key, err := keyFunc(s.param)
		if err != nil {
			return pipeline.Fail[any](err)
		}
		return pipeline.SortBy(p, key, lambda.Compare)
	case stageEnumerate:
		return pipeline.Map(pipeline.Enumerate(p, s.a, s.b), func(_ context.Context, pr pipeline.Pair[int, any]) (any, error) {
			return Pair{Key: pr.Key, Value: pr.Value}, nil
		})
	case stageZip:
		return widen(pipeline.Zip(p, sourceOf(s.param)))
	case stageApply:
		out, err := splice(p, s.param)
		if err != nil {
			return pipeline.Fail[any](err)
		}
		return out
	case stageChunk:
		return widen(pipeline.Batch(p, s.a))
	case stageWindow:
		return widen(pipeline.Window(p, s.a, s.b))
	case stageFlatMap:
		fn, err := keyFunc(s.param)
		if err != nil {
			return pipeline.Fail[any](err)
		}
		return pipeline.FlatMap(p, func(ctx context.Context, x any) (pipeline.Iterator[any], error) {
			v, err := fn(ctx, x)
			if err != nil {
				return nil, err
			}
			return sourceOf(v).Iter(ctx), nil
		})
	case stageConcat:
		parts := []*pipeline.Pipeline[any]{p}
		for _, o := range s.param.([]any) {
			parts = append(parts, sourceOf(o))
		}
		return pipeline.Concat(parts...)
	}
	return p
}

// keyFunc resolves a key parameter. A nil parameter keys by the element.
func keyFunc(f any) (func(context.Context, any) (any, error), error) {
	if f == nil {
		return func(_ context.Context, x any) (any, error) { return x, nil }, nil
	}
	fn, err := lambda.Callable(f)
	if err != nil {
		return nil, err
	}
	return func(_ context.Context, x any) (any, error) { return fn(x) }, nil
}

// widen erases the element type of a typed stage output.
func widen[T any](p *pipeline.Pipeline[T]) *pipeline.Pipeline[any] {
	return pipeline.Map(p, func(_ context.Context, v T) (any, error) { return v, nil })
}
