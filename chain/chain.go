package chain

import (
	"context"
	"iter"
	"strings"

	"github.com/kbukum/lambdachain/pipeline"
)

// Chain is a lazy sequence: a source plus the stages recorded on it.
// Chains are immutable; every builder returns a new Chain sharing the
// receiver's source and stages.
type Chain struct {
	src   any
	tail  *stage
	depth int
	rt    *Runtime
}

// From creates a chain over src using the default runtime. src may be a
// slice, array, string, channel, iter.Seq, pipeline.Iterator[any],
// *pipeline.Pipeline[any] or another *Chain. Nothing is read until the
// chain is forced. Channels and iterators can be forced only once; call
// Persist to reuse their contents.
func From(src any) *Chain {
	return defaultRuntime.From(src)
}

// Of creates a chain over the given items.
func Of(items ...any) *Chain {
	return From(items)
}

// FromSeq creates a chain over a typed range-over-func sequence.
func FromSeq[T any](seq iter.Seq[T]) *Chain {
	return From(iter.Seq[any](func(yield func(any) bool) {
		for v := range seq {
			if !yield(v) {
				return
			}
		}
	}))
}

func (c *Chain) runtime() *Runtime {
	if c.rt == nil {
		return defaultRuntime
	}
	return c.rt
}

func (c *Chain) with(s *stage) *Chain {
	s.prev = c.tail
	return &Chain{src: c.src, tail: s, depth: c.depth + 1, rt: c.rt}
}

// Filter keeps elements for which f is truthy.
func (c *Chain) Filter(f any) *Chain {
	return c.with(&stage{kind: stageFilter, param: f})
}

// Reject drops elements for which f is truthy.
func (c *Chain) Reject(f any) *Chain {
	return c.with(&stage{kind: stageReject, param: f})
}

// Map replaces every element with f applied to it.
func (c *Chain) Map(f any) *Chain {
	return c.with(&stage{kind: stageMap, param: f})
}

// Unique drops elements equal to an earlier element, keeping first
// occurrences in order.
func (c *Chain) Unique() *Chain {
	return c.with(&stage{kind: stageUnique})
}

// UniqueBy drops elements whose key under f equals the key of an earlier
// element.
func (c *Chain) UniqueBy(f any) *Chain {
	return c.with(&stage{kind: stageUniqueBy, param: f})
}

// GroupBy groups consecutive elements with equal keys under f into Group
// values. Equal keys separated by a different key form separate groups;
// sort first (or use GroupAll) to group across the whole input.
func (c *Chain) GroupBy(f any) *Chain {
	return c.with(&stage{kind: stageGroupBy, param: f})
}

// GroupAll collects all elements with equal keys under f into one Group,
// in order of each key's first appearance. It reads the whole upstream on
// the first pull.
func (c *Chain) GroupAll(f any) *Chain {
	return c.with(&stage{kind: stageGroupAll, param: f})
}

// SortBy orders elements by their key under f, keeping equal keys in input
// order. A nil f sorts by the elements themselves. It reads the whole
// upstream on the first pull.
func (c *Chain) SortBy(f any) *Chain {
	return c.with(&stage{kind: stageSortBy, param: f})
}

// Enumerate pairs each element with a counter as Pair{Key: counter, Value:
// element}, counting from start by step.
func (c *Chain) Enumerate(start, step int) *Chain {
	return c.with(&stage{kind: stageEnumerate, a: start, b: step})
}

// Zip pairs elements with those of other as Pair{Key: element, Value:
// other element}, stopping at the shorter input. other accepts anything
// From does.
func (c *Chain) Zip(other any) *Chain {
	return c.with(&stage{kind: stageZip, param: other})
}

// Apply splices a template onto the current data: a lambda.Gen drawing
// from lambda.X, a Template, a TemplateFunc, a
// func(*pipeline.Pipeline[any]) *pipeline.Pipeline[any], or a
// func(iter.Seq[any]) iter.Seq[any].
func (c *Chain) Apply(template any) *Chain {
	return c.with(&stage{kind: stageApply, param: template})
}

// Chunk groups elements into []any slices of size elements; the last chunk
// may be shorter.
func (c *Chain) Chunk(size int) *Chain {
	return c.with(&stage{kind: stageChunk, a: size})
}

// Window yields []any windows of size consecutive elements, advancing by
// step. A trailing window shorter than size is dropped.
func (c *Chain) Window(size, step int) *Chain {
	return c.with(&stage{kind: stageWindow, a: size, b: step})
}

// FlatMap replaces every element with the elements of f applied to it. The
// result of f may be anything From accepts.
func (c *Chain) FlatMap(f any) *Chain {
	return c.with(&stage{kind: stageFlatMap, param: f})
}

// Flatten yields the elements of each element in turn.
func (c *Chain) Flatten() *Chain {
	return c.with(&stage{kind: stageFlatMap})
}

// Concat appends the elements of each of others after the chain's own.
// others accept anything From does.
func (c *Chain) Concat(others ...any) *Chain {
	return c.with(&stage{kind: stageConcat, param: others})
}

// Stages returns the stage names in declaration order.
func (c *Chain) Stages() []string {
	names := make([]string, c.depth)
	i := c.depth
	for s := c.tail; s != nil; s = s.prev {
		i--
		names[i] = s.kind.String()
	}
	return names
}

func (c *Chain) String() string {
	return "chain(" + strings.Join(c.Stages(), " -> ") + ")"
}

// pipeline builds a fresh pipeline from the source through every stage.
func (c *Chain) pipeline() *pipeline.Pipeline[any] {
	stages := make([]*stage, c.depth)
	i := c.depth
	for s := c.tail; s != nil; s = s.prev {
		i--
		stages[i] = s
	}
	p := sourceOf(c.src)
	for _, s := range stages {
		p = s.apply(p)
	}
	return p
}

// Iter returns the raw lazy iterator of the chain. The caller must Close it.
// No force logging or tracing happens on this path.
func (c *Chain) Iter(ctx context.Context) pipeline.Iterator[any] {
	return c.pipeline().Iter(ctx)
}

// All returns the chain as a range-over-func sequence yielding each element
// with a nil error, or a final zero value with the first error.
func (c *Chain) All(ctx context.Context) iter.Seq2[any, error] {
	return pipeline.All(ctx, c.pipeline())
}
