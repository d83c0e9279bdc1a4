package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/lambdachain/config"
	"github.com/kbukum/lambdachain/errors"
	"github.com/kbukum/lambdachain/lambda"
	"github.com/kbukum/lambdachain/logger"
	"github.com/kbukum/lambdachain/observability"
	"github.com/kbukum/lambdachain/pipeline"
)

func TestCollectors(t *testing.T) {
	words := []string{"b", "a", "b", "c", "a"}
	tests := []struct {
		name string
		c    *Chain
		into Collector
		want any
	}{
		{"list", From(words), List, []any{"b", "a", "b", "c", "a"}},
		{"empty list", From([]int{}), List, []any{}},
		{"set", From(words), Set, []any{"b", "a", "c"}},
		{"set across numeric kinds", Of(1, int64(1), 1.0, 2), Set, []any{1, 2}},
		{"group all across kinds", From([]any{1, 1.0, 2}).GroupAll(nil), Count, 2},
		{"dict from zip", From([]string{"x", "y"}).Zip([]int{1, 2}), Dict, map[any]any{"x": 1, "y": 2}},
		{"dict from groups", From([]int{1, 2, 3}).GroupAll(X.Mod(2)), Dict, map[any]any{1: []any{1, 3}, 0: []any{2}}},
		{"dict from tuples", From([]string{"ab", "cd"}).Map(lambda.Tuple(X.Item(0), X.Item(1))), Dict, map[any]any{"a": "b", "c": "d"}},
		{"dict later wins", From([]string{"k", "k"}).Enumerate(0, 1).Map(lambda.Tuple(X.Item(1), X.Item(0))), Dict, map[any]any{"k": 1}},
		{"join", From([]any{1, "a", 2.5}), Join("-"), "1-a-2.5"},
		{"join empty", From(nil), Join(","), ""},
		{"count", From(words).Unique(), Count, 3},
		{"func", From([]int{1, 2, 3}), CollectorFunc(func(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
			v, _, err := it.Next(ctx)
			return v, err
		}), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.c.Force(context.Background(), tc.into)
			if err != nil {
				t.Fatalf("Force: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectorErrors(t *testing.T) {
	tests := []struct {
		name string
		c    *Chain
		into Collector
	}{
		{"dict needs pairs", From([]int{1}), Dict},
		{"dict needs two items", From([][]any{{1, 2, 3}}), Dict},
		{"dict key not comparable", From([]string{"a"}).Map(lambda.Tuple(lambda.Tuple(X), X)), Dict},
		{"join needs strings", From([]any{[]int{1}}), Join(",")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.c.Force(context.Background(), tc.into)
			if !errors.HasCode(err, errors.ErrCodeTypeMismatch) {
				t.Errorf("expected TYPE_MISMATCH, got %v", err)
			}
		})
	}
}

func TestCollectorByName(t *testing.T) {
	for _, name := range []string{"", "list", "set", "dict"} {
		if _, err := CollectorByName(name); err != nil {
			t.Errorf("%q: unexpected error %v", name, err)
		}
	}
	if _, err := CollectorByName("bag"); !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestSumFold(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		run  func() (any, error)
		want any
	}{
		{"sum ints", func() (any, error) { return From([]int{1, 2, 3}).Sum(ctx) }, 6},
		{"sum floats", func() (any, error) { return From([]any{1.5, 2}).Sum(ctx) }, 3.5},
		{"sum empty", func() (any, error) { return From(nil).Sum(ctx) }, 0},
		{"fold operator", func() (any, error) { return From([]int{1, 2, 3, 4}).Fold(ctx, "*", 1) }, 24},
		{"fold from zero", func() (any, error) { return From([]int{3, 8, -2, 6}).Fold(ctx, "*", 0) }, 0},
		{"fold func", func() (any, error) {
			return From([]string{"a", "b"}).Fold(ctx, func(acc, x any) any { return acc.(string) + x.(string) }, ">")
		}, ">ab"},
		{"fold typed func", func() (any, error) {
			return From([]int{1, 2, 3}).Fold(ctx, func(acc, n int) int { return acc*10 + n }, 0)
		}, 123},
		{"fold curried", func() (any, error) {
			add := func(acc any) func(any) any {
				return func(x any) any { return acc.(int) + x.(int) }
			}
			return From([]int{0, 1, 2, 3, 4}).Fold(ctx, add, 0)
		}, 10},
		{"foldc", func() (any, error) { return From([]int{0, 1, 2, 3, 4}).FoldC("+")(ctx, 0) }, 10},
		{"foldc other init", func() (any, error) { return From([]int{1, 2}).FoldC("+")(ctx, 10) }, 13},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.run()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("sum unsupported", func(t *testing.T) {
		_, err := From([]any{1, "a"}).Sum(ctx)
		if !errors.HasCode(err, errors.ErrCodeUnsupportedOperation) {
			t.Errorf("expected UNSUPPORTED_OPERATION, got %v", err)
		}
	})

	t.Run("fold not callable", func(t *testing.T) {
		_, err := From([]int{1}).Fold(ctx, 42, 0)
		if !errors.HasCode(err, errors.ErrCodeNotCallable) {
			t.Errorf("expected NOT_CALLABLE, got %v", err)
		}
	})
}

func TestEach(t *testing.T) {
	var seen []any
	err := From([]int{1, 2, 3}).Map(X.Mul(2)).Each(context.Background(), func(x any) {
		seen = append(seen, x)
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{2, 4, 6}, seen); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	errBoom := fmt.Errorf("boom")
	seen = nil
	err = From([]int{1, 2, 3}).Each(context.Background(), func(x any) error {
		seen = append(seen, x)
		if x == 2 {
			return errBoom
		}
		return nil
	})
	if err != errBoom {
		t.Errorf("expected boom unchanged, got %v", err)
	}
	if diff := cmp.Diff([]any{1, 2}, seen); diff != "" {
		t.Errorf("later elements observed (-want +got):\n%s", diff)
	}

	if err := From([]int{1}).Each(context.Background(), 5); !errors.HasCode(err, errors.ErrCodeNotCallable) {
		t.Errorf("expected NOT_CALLABLE, got %v", err)
	}
}

func TestPersist(t *testing.T) {
	ch := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		ch <- i
	}
	close(ch)

	p, err := From(ch).Map(X.Mul(2)).Persist(context.Background())
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	for range 2 {
		if diff := cmp.Diff([]any{2, 4, 6}, force(t, p)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	}
	if len(p.Stages()) != 0 {
		t.Errorf("expected persisted chain without stages, got %v", p.Stages())
	}

	t.Run("error", func(t *testing.T) {
		_, err := From([]int{0}).Map(X.RDiv(1)).Persist(context.Background())
		if !errors.HasCode(err, errors.ErrCodeDivisionByZero) {
			t.Errorf("expected DIVISION_BY_ZERO, got %v", err)
		}
	})
}

func TestToSliceToMap(t *testing.T) {
	ctx := context.Background()

	ints, err := ToSlice[int](ctx, From([]int{1, 2, 3}).Map(X.Mul(2)))
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if diff := cmp.Diff([]int{2, 4, 6}, ints); diff != "" {
		t.Errorf("ToSlice mismatch (-want +got):\n%s", diff)
	}

	if _, err := ToSlice[string](ctx, From([]int{1})); !errors.HasCode(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("expected TYPE_MISMATCH, got %v", err)
	}

	lengths, err := ToMap[string, int](ctx, From([]string{"apple", "fig"}).Map(lambda.Tuple(X, lambda.Len(X))))
	if err != nil {
		t.Fatalf("ToMap: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"apple": 5, "fig": 3}, lengths); diff != "" {
		t.Errorf("ToMap mismatch (-want +got):\n%s", diff)
	}

	if _, err := ToMap[int, int](ctx, From([]string{"a"}).Enumerate(0, 1)); !errors.HasCode(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("expected TYPE_MISMATCH for value, got %v", err)
	}
}

func TestNewRuntime(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		rt, err := NewRuntime(nil, WithLogger(logger.Nop()))
		if err != nil {
			t.Fatalf("NewRuntime: %v", err)
		}
		if diff := cmp.Diff([]any{1, 2}, force(t, rt.From([]int{1, 2}))); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("default collector from config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Chain.DefaultCollector = "set"
		rt, err := NewRuntime(cfg, WithLogger(logger.Nop()))
		if err != nil {
			t.Fatalf("NewRuntime: %v", err)
		}
		got, err := rt.From([]int{1, 1, 2}).Map(X.Add(0)).Force(context.Background())
		if err != nil {
			t.Fatalf("Force: %v", err)
		}
		if diff := cmp.Diff([]any{1, 2}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("collector option", func(t *testing.T) {
		rt, err := NewRuntime(nil, WithLogger(logger.Nop()), WithCollector(Count))
		if err != nil {
			t.Fatalf("NewRuntime: %v", err)
		}
		got, _ := rt.From([]int{1, 2, 3}).Force(context.Background())
		if got != 3 {
			t.Errorf("expected 3, got %v", got)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Chain.DefaultCollector = "bag"
		if _, err := NewRuntime(cfg); !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("expected INVALID_CONFIG, got %v", err)
		}
	})

	t.Run("metrics and tracing from config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Observability.Tracing = true
		cfg.Observability.Metrics = true
		rt, err := NewRuntime(cfg, WithLogger(logger.Nop()))
		if err != nil {
			t.Fatalf("NewRuntime: %v", err)
		}
		if rt.tracer == nil || rt.metrics == nil {
			t.Error("expected tracer and metrics to be set")
		}
	})
}

func decodeLogs(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestForceLogging(t *testing.T) {
	tests := []struct {
		name     string
		logForce bool
		level    string
		c        func(rt *Runtime) *Chain
		wantMsgs []string
		wantLvl  string
	}{
		{"debug", false, "debug", func(rt *Runtime) *Chain { return rt.From([]int{1, 2, 3}).Filter(X.Gt(1)).Map(X) },
			[]string{"force started", "force finished"}, "debug"},
		{"info when log force", true, "info", func(rt *Runtime) *Chain { return rt.From([]int{1, 2, 3}).Filter(X.Gt(1)).Map(X) },
			[]string{"force started", "force finished"}, "info"},
		{"silent at info", false, "info", func(rt *Runtime) *Chain { return rt.From([]int{1, 2, 3}).Filter(X.Gt(1)).Map(X) },
			nil, ""},
		{"failure", false, "debug", func(rt *Runtime) *Chain { return rt.From([]int{1, 0}).Filter(X.Ge(0)).Map(X.Item(0)) },
			[]string{"force started", "force failed"}, "debug"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := logger.NewWithWriter(&logger.Config{Level: tc.level, Format: "json"}, "test", &buf)
			cfg := config.Default()
			cfg.Chain.LogForce = tc.logForce
			rt, err := NewRuntime(cfg, WithLogger(l))
			if err != nil {
				t.Fatalf("NewRuntime: %v", err)
			}
			_, _ = tc.c(rt).Force(context.Background())

			lines := decodeLogs(t, &buf)
			if len(lines) != len(tc.wantMsgs) {
				t.Fatalf("expected %d log lines, got %d: %s", len(tc.wantMsgs), len(lines), buf.String())
			}
			for i, line := range lines {
				if line["message"] != tc.wantMsgs[i] {
					t.Errorf("line %d: expected %q, got %v", i, tc.wantMsgs[i], line["message"])
				}
				if line["component"] != "lambdachain" {
					t.Errorf("line %d: expected component lambdachain, got %v", i, line["component"])
				}
				if id, _ := line[logger.FieldRunID].(string); id == "" {
					t.Errorf("line %d: expected run id", i)
				}
				if tc.wantMsgs[i] != "force failed" && line["level"] != tc.wantLvl {
					t.Errorf("line %d: expected level %s, got %v", i, tc.wantLvl, line["level"])
				}
			}
			if len(lines) == 0 {
				return
			}
			if lines[0][logger.FieldStages] != float64(2) {
				t.Errorf("expected stages=2, got %v", lines[0][logger.FieldStages])
			}
			if lines[0][logger.FieldRunID] != lines[1][logger.FieldRunID] {
				t.Error("expected one run id per force")
			}
			last := lines[len(lines)-1]
			if tc.wantMsgs[1] == "force failed" {
				if last[logger.FieldErrorCode] != string(errors.ErrCodeUnsupportedOperation) {
					t.Errorf("expected error code, got %v", last[logger.FieldErrorCode])
				}
			} else if last[logger.FieldElements] != float64(2) {
				t.Errorf("expected elements=2, got %v", last[logger.FieldElements])
			}
		})
	}
}

func TestForceTracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	rt, err := NewRuntime(nil, WithLogger(logger.Nop()), WithTracer(tp.Tracer("test")))
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	if _, err := rt.From([]int{1, 2, 3, 4}).Filter(X.Gt(1)).Map(X.Mul(2)).Force(context.Background()); err != nil {
		t.Fatalf("Force: %v", err)
	}
	_, forceErr := rt.From([]int{1}).Map(X.Div(0)).Sum(context.Background())

	ended := sr.Ended()
	if len(ended) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(ended))
	}

	attrs := func(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
		m := make(map[attribute.Key]attribute.Value)
		for _, kv := range s.Attributes() {
			m[kv.Key] = kv.Value
		}
		return m
	}

	ok := attrs(ended[0])
	if ended[0].Name() != observability.SpanForce {
		t.Errorf("expected span %s, got %s", observability.SpanForce, ended[0].Name())
	}
	if ok[observability.AttrStages].AsInt64() != 2 || ok[observability.AttrElements].AsInt64() != 3 {
		t.Errorf("expected stages=2 elements=3, got %v", ended[0].Attributes())
	}
	if ok[observability.AttrOperation].AsString() != "force" {
		t.Errorf("expected operation force, got %v", ok[observability.AttrOperation].Emit())
	}

	failed := attrs(ended[1])
	if ended[1].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", ended[1].Status())
	}
	if failed[observability.AttrErrorCode].AsString() != string(errors.CodeOf(forceErr)) {
		t.Errorf("expected error code %s, got %v", errors.CodeOf(forceErr), failed[observability.AttrErrorCode].Emit())
	}
	if failed[observability.AttrOperation].AsString() != "sum" {
		t.Errorf("expected operation sum, got %v", failed[observability.AttrOperation].Emit())
	}
}

func ExampleChain_Force() {
	out, _ := From([]int{1, 2, 3, 4, 5}).
		Filter(lambda.X.Mod(2).Eq(0)).
		Map(lambda.X.Mul(3)).
		Force(context.Background())
	fmt.Println(out)
	// Output: [6 12]
}
