package pipeline

import "context"

// Distinct yields each value whose key was not produced by an earlier value,
// keeping first occurrences in their original order. A nil key function uses
// the value itself as the key.
func Distinct[T, K any](p *Pipeline[T], key func(context.Context, T) (K, error)) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &distinctIter[T, K]{source: p.create(ctx), key: key, seen: newKeySet()}
		},
	}
}

type distinctIter[T, K any] struct {
	source Iterator[T]
	key    func(context.Context, T) (K, error)
	seen   *keySet
}

func (it *distinctIter[T, K]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		var k any = val
		if it.key != nil {
			kv, err := it.key(ctx, val)
			if err != nil {
				var zero T
				return zero, false, err
			}
			k = kv
		}
		if it.seen.add(k) {
			return val, true, nil
		}
	}
}

func (it *distinctIter[T, K]) Close() error { return it.source.Close() }
