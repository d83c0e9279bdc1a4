package pipeline

import (
	"context"
	"reflect"
)

// Group is a run of values sharing a key.
type Group[K, T any] struct {
	Key   K
	Items []T
}

// At reads the group as the pair (Key, Items). Negative indices count from
// the end.
func (g Group[K, T]) At(index any) (any, error) {
	i, err := tupleIndex(index)
	if err != nil {
		return nil, err
	}
	if i == 0 {
		return g.Key, nil
	}
	return g.Items, nil
}

// GroupAdjacent groups consecutive values with equal keys. A key that
// reappears after a different key starts a new group. A nil eq compares keys
// with reflect.DeepEqual.
func GroupAdjacent[T, K any](p *Pipeline[T], key func(context.Context, T) (K, error), eq func(a, b K) bool) *Pipeline[Group[K, T]] {
	if eq == nil {
		eq = func(a, b K) bool { return reflect.DeepEqual(a, b) }
	}
	return &Pipeline[Group[K, T]]{
		create: func(ctx context.Context) Iterator[Group[K, T]] {
			return &adjacentIter[T, K]{source: p.create(ctx), key: key, eq: eq}
		},
	}
}

// GroupAll collects every value into one group per distinct key, emitting
// groups in order of each key's first appearance. The whole upstream is
// consumed on the first pull.
func GroupAll[T, K any](p *Pipeline[T], key func(context.Context, T) (K, error)) *Pipeline[Group[K, T]] {
	return &Pipeline[Group[K, T]]{
		create: func(ctx context.Context) Iterator[Group[K, T]] {
			source := p.create(ctx)
			return &bufferedIter[Group[K, T]]{
				closer: source.Close,
				fill: func(ctx context.Context) ([]Group[K, T], error) {
					var groups []Group[K, T]
					index := newKeyIndex()
					for {
						val, ok, err := source.Next(ctx)
						if err != nil {
							return nil, err
						}
						if !ok {
							return groups, nil
						}
						k, err := key(ctx, val)
						if err != nil {
							return nil, err
						}
						if pos, found := index.lookup(k); found {
							groups[pos].Items = append(groups[pos].Items, val)
							continue
						}
						index.insert(k, len(groups))
						groups = append(groups, Group[K, T]{Key: k, Items: []T{val}})
					}
				},
			}
		},
	}
}

type adjacentIter[T, K any] struct {
	source Iterator[T]
	key    func(context.Context, T) (K, error)
	eq     func(a, b K) bool
	cur    *Group[K, T]
	done   bool
}

func (it *adjacentIter[T, K]) Next(ctx context.Context) (result Group[K, T], ok bool, err error) {
	var zero Group[K, T]
	if it.done {
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			it.done = true
			if it.cur == nil {
				return zero, false, nil
			}
			g := *it.cur
			it.cur = nil
			return g, true, nil
		}
		k, err := it.key(ctx, val)
		if err != nil {
			return zero, false, err
		}
		switch {
		case it.cur == nil:
			it.cur = &Group[K, T]{Key: k, Items: []T{val}}
		case it.eq(it.cur.Key, k):
			it.cur.Items = append(it.cur.Items, val)
		default:
			g := *it.cur
			it.cur = &Group[K, T]{Key: k, Items: []T{val}}
			return g, true, nil
		}
	}
}

func (it *adjacentIter[T, K]) Close() error { return it.source.Close() }

// bufferedIter materializes its values with fill on the first pull.
type bufferedIter[T any] struct {
	fill   func(context.Context) ([]T, error)
	closer func() error
	items  []T
	index  int
	filled bool
}

func (it *bufferedIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if !it.filled {
		items, err := it.fill(ctx)
		if err != nil {
			return zero, false, err
		}
		it.items, it.filled = items, true
	}
	if it.index >= len(it.items) {
		return zero, false, nil
	}
	v := it.items[it.index]
	it.index++
	return v, true, nil
}

func (it *bufferedIter[T]) Close() error { return it.closer() }
