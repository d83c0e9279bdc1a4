package pipeline

import (
	"context"
	"slices"
)

// SortBy buffers the whole upstream on the first pull and yields it stably
// sorted by key. The first key or comparison error aborts the sort.
func SortBy[T, K any](p *Pipeline[T], key func(context.Context, T) (K, error), cmp func(a, b K) (int, error)) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			source := p.create(ctx)
			return &bufferedIter[T]{
				closer: source.Close,
				fill: func(ctx context.Context) ([]T, error) {
					type keyed struct {
						key K
						val T
					}
					var rows []keyed
					for {
						val, ok, err := source.Next(ctx)
						if err != nil {
							return nil, err
						}
						if !ok {
							break
						}
						k, err := key(ctx, val)
						if err != nil {
							return nil, err
						}
						rows = append(rows, keyed{key: k, val: val})
					}
					var cmpErr error
					slices.SortStableFunc(rows, func(a, b keyed) int {
						c, err := cmp(a.key, b.key)
						if err != nil && cmpErr == nil {
							cmpErr = err
						}
						return c
					})
					if cmpErr != nil {
						return nil, cmpErr
					}
					out := make([]T, len(rows))
					for i, r := range rows {
						out[i] = r.val
					}
					return out, nil
				},
			}
		},
	}
}
