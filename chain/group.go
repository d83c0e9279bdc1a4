package chain

import "github.com/kbukum/lambdachain/pipeline"

// Group is a key with the elements grouped under it, produced by GroupBy
// and GroupAll. Expressions read it as g.Key and g.Items, or as the pair
// X.Item(0), X.Item(1).
type Group = pipeline.Group[any, any]

// Pair is a key and value, produced by Zip and Enumerate and consumed by
// the Dict collector.
type Pair = pipeline.Pair[any, any]
