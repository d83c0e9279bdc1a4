// Package pipeline provides composable, pull-based data pipeline operators.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous stage on demand, one
// element at a time, so an error stops the run before later elements are
// read. Every run creates a fresh iterator chain; a pipeline is a recipe and
// can be run any number of times as long as its source is restartable.
//
// # Operators
//
// Element-wise:
//
//   - Map: transform each value
//   - FlatMap: transform each value into multiple values
//   - Filter: keep values matching a predicate
//   - FilterMap: filter and project in one step
//   - Tap: side-effect without altering the value
//   - Distinct: drop values whose key was already seen
//   - GroupAdjacent: group runs of equal keys
//   - Enumerate, Zip: pair values with a counter or another pipeline
//   - Batch, Window: fixed-size chunks and sliding windows
//   - Concat: join pipelines sequentially
//
// Buffering (consume the whole upstream on the first pull):
//
//   - GroupAll: one group per distinct key, in first-appearance order
//   - SortBy: stable sort by key
//   - Reduce: accumulate all values into one result
//
// Interop with range-over-func:
//
//   - FromSeq: build a pipeline from an iter.Seq
//   - All: run a pipeline as an iter.Seq2 of values and errors
//   - Through: hand the stream to a sequence transformer and continue
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := pipeline.Map(src, func(_ context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	big := pipeline.Filter(doubled, func(_ context.Context, n int) (bool, error) {
//	    return n > 4, nil
//	})
//	results, _ := pipeline.Collect(ctx, big)
package pipeline
