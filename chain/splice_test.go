package chain

import (
	"context"
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/lambdachain/errors"
	"github.com/kbukum/lambdachain/lambda"
	"github.com/kbukum/lambdachain/pipeline"
)

type offsetTemplate struct{ by int }

func (o offsetTemplate) Bind(src *pipeline.Pipeline[any]) (*pipeline.Pipeline[any], error) {
	return pipeline.Map(src, func(_ context.Context, x any) (any, error) {
		return lambda.Compute("+", x, o.by)
	}), nil
}

func takeTwo(seq iter.Seq[any]) iter.Seq[any] {
	return func(yield func(any) bool) {
		n := 0
		for v := range seq {
			if n == 2 || !yield(v) {
				return
			}
			n++
		}
	}
}

func TestApplyGenerator(t *testing.T) {
	threshold := 1
	tests := []struct {
		name string
		src  any
		tmpl *lambda.Gen
		want []any
	}{
		{"where and select", []int{-1, 2, 3}, lambda.For(X).Where(X.Gt(0)).Select(X.Mul(2)), []any{4, 6}},
		{"select only", []any{0, 2.0, "str", []any{"in_list"}}, lambda.For(X).Select(X.Mul(2)),
			[]any{0, 4.0, "strstr", []any{"in_list", "in_list"}}},
		{"where only", []int{1, 2, 3, 4}, lambda.For(X).Where(X.Mod(2).Eq(1)), []any{1, 3}},
		{"captured literal", []int{1, 2, 3}, lambda.For(X).Where(X.Gt(threshold)), []any{2, 3}},
		{"several conditions", []int{1, 2, 3, 4, 5, 6}, lambda.For(X).Where(X.Gt(1)).Where(X.Lt(5)), []any{2, 3, 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, force(t, From(tc.src).Apply(tc.tmpl))); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyRestartable(t *testing.T) {
	gen := lambda.For(X).Where(X.Gt(0)).Select(X.Mul(2))
	before := gen.String()

	a := From([]int{-1, 2, 3}).Apply(gen)
	b := From([]int{5, -5}).Apply(gen)

	for range 2 {
		if diff := cmp.Diff([]any{4, 6}, force(t, a)); diff != "" {
			t.Errorf("a mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]any{10}, force(t, b)); diff != "" {
			t.Errorf("b mismatch (-want +got):\n%s", diff)
		}
	}
	if gen.String() != before {
		t.Errorf("template changed: %q -> %q", before, gen.String())
	}

	t.Run("chained templates", func(t *testing.T) {
		c := From([]int{1, 2, 3}).Apply(gen).Apply(gen)
		if diff := cmp.Diff([]any{4, 8, 12}, force(t, c)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestApplyTemplates(t *testing.T) {
	tests := []struct {
		name string
		tmpl any
		want []any
	}{
		{"template", offsetTemplate{by: 100}, []any{101, 102, 103}},
		{"template func", TemplateFunc(func(src *pipeline.Pipeline[any]) *pipeline.Pipeline[any] {
			return pipeline.Filter(src, func(_ context.Context, x any) (bool, error) { return x.(int) != 2, nil })
		}), []any{1, 3}},
		{"plain func", func(src *pipeline.Pipeline[any]) *pipeline.Pipeline[any] {
			return pipeline.Concat(src, pipeline.FromSlice([]any{4}))
		}, []any{1, 2, 3, 4}},
		{"sequence func", takeTwo, []any{1, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, force(t, From([]int{1, 2, 3}).Apply(tc.tmpl))); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyNotSpliceable(t *testing.T) {
	tests := []struct {
		name string
		tmpl any
	}{
		{"concrete source", lambda.For([]int{1, 2})},
		{"expression source", lambda.For(X.Add(1)).Select(X)},
		{"nil", nil},
		{"nil gen", (*lambda.Gen)(nil)},
		{"nil template func", TemplateFunc(nil)},
		{"template func without result", TemplateFunc(func(*pipeline.Pipeline[any]) *pipeline.Pipeline[any] { return nil })},
		{"unsupported value", 42},
		{"expression", X.Add(1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := From([]int{1, 2}).Apply(tc.tmpl) // building never fails
			_, err := c.Force(context.Background())
			if !errors.HasCode(err, errors.ErrCodeNotSpliceable) {
				t.Errorf("expected NOT_SPLICEABLE, got %v", err)
			}
		})
	}
}

func TestApplyErrors(t *testing.T) {
	t.Run("condition not callable", func(t *testing.T) {
		_, err := From([]int{1}).Apply(lambda.For(X).Where(42)).Force(context.Background())
		if !errors.HasCode(err, errors.ErrCodeNotCallable) {
			t.Errorf("expected NOT_CALLABLE, got %v", err)
		}
	})

	t.Run("upstream error", func(t *testing.T) {
		c := From([]int{1, 0, 2}).Map(X.RDiv(1)).Apply(lambda.For(X).Select(X.Add(1)))
		_, err := c.Force(context.Background())
		if !errors.HasCode(err, errors.ErrCodeDivisionByZero) {
			t.Errorf("expected DIVISION_BY_ZERO, got %v", err)
		}
	})

	t.Run("upstream error through sequence func", func(t *testing.T) {
		c := From([]int{1, 0, 2}).Map(X.RDiv(1)).Apply(takeTwo)
		_, err := c.Force(context.Background())
		if !errors.HasCode(err, errors.ErrCodeDivisionByZero) {
			t.Errorf("expected DIVISION_BY_ZERO, got %v", err)
		}
	})
}
