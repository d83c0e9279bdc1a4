package chain

import (
	"context"
	"fmt"
	"iter"

	"github.com/kbukum/lambdachain/errors"
	"github.com/kbukum/lambdachain/lambda"
	"github.com/kbukum/lambdachain/pipeline"
)

// Template rebinds a sequence transformation onto a new source. Bind is
// called once per force with a fresh source pipeline.
type Template interface {
	Bind(src *pipeline.Pipeline[any]) (*pipeline.Pipeline[any], error)
}

// TemplateFunc is a template taking its source explicitly.
type TemplateFunc func(src *pipeline.Pipeline[any]) *pipeline.Pipeline[any]

// Bind calls f with src.
func (f TemplateFunc) Bind(src *pipeline.Pipeline[any]) (*pipeline.Pipeline[any], error) {
	if f == nil {
		return nil, errors.NotSpliceable("nil template func")
	}
	out := f(src)
	if out == nil {
		return nil, errors.NotSpliceable("template func returned no pipeline")
	}
	return out, nil
}

// splice substitutes src for the iteration source of tmpl. Generator
// templates must draw from the placeholder; their conditions and projection
// are reused as captured.
func splice(src *pipeline.Pipeline[any], tmpl any) (*pipeline.Pipeline[any], error) {
	switch t := tmpl.(type) {
	case nil:
		return nil, errors.NotSpliceable("nil template")
	case *lambda.Gen:
		if t == nil {
			return nil, errors.NotSpliceable("nil template")
		}
		if !t.Spliceable() {
			return nil, errors.NotSpliceable(fmt.Sprintf("template %s does not iterate over X", t)).
				WithDetail("source", t.Source())
		}
		step, err := t.Compile()
		if err != nil {
			return nil, err
		}
		return pipeline.FilterMap(src, func(_ context.Context, x any) (any, bool, error) {
			return step(x)
		}), nil
	case Template:
		return t.Bind(src)
	case func(*pipeline.Pipeline[any]) *pipeline.Pipeline[any]:
		return TemplateFunc(t).Bind(src)
	case func(iter.Seq[any]) iter.Seq[any]:
		if t == nil {
			return nil, errors.NotSpliceable("nil sequence func")
		}
		return pipeline.Through(src, t), nil
	}
	return nil, errors.NotSpliceable(fmt.Sprintf("unsupported template %T", tmpl))
}
