package lambda

import (
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/lambdachain/errors"
)

var errBoom = stderrors.New("boom")

type person struct {
	Name   string
	Age    int
	secret string
}

func (p person) Greeting(prefix string) string { return prefix + " " + p.Name }
func (p person) Split() (string, int)           { return p.Name, p.Age }
func (p person) Fail() (string, error)          { return "", errBoom }
func (p person) Older(years int64) int64        { return int64(p.Age) + years }
func (p person) Join(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}
func (p *person) Title() string { return strings.ToUpper(p.Name) }

type record map[string]any

func (r record) Member(name string) (any, bool) {
	v, ok := r[strings.ToLower(name)]
	return v, ok
}

type grid [][]int

func (g grid) At(key any) (any, error) {
	pos, ok := key.([2]int)
	if !ok {
		return nil, errors.TypeMismatch("[2]int", key)
	}
	return g[pos[0]][pos[1]], nil
}

func TestAttr(t *testing.T) {
	amy := person{Name: "amy", Age: 30, secret: "s"}
	tests := []struct {
		name  string
		expr  *Expr
		input any
		want  any
	}{
		{"struct field", X.Attr("Name"), amy, "amy"},
		{"field through pointer", X.Attr("Age"), &amy, 30},
		{"map key", X.Attr("k"), map[string]int{"k": 1}, 1},
		{"accessor", X.Attr("Name"), record{"name": "bob"}, "bob"},
		{"method call", X.Attr("Greeting").Call("hi"), amy, "hi amy"},
		{"method shorthand", X.Method("Greeting", "hey"), amy, "hey amy"},
		{"pointer method", X.Method("Title"), &amy, "AMY"},
		{"converted argument", X.Method("Older", 2), amy, int64(32)},
		{"variadic", X.Method("Join", "-", "a", "b"), amy, "a-b"},
		{"variadic empty", X.Method("Join", "-"), amy, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.expr.Eval(tc.input)
			if err != nil {
				t.Fatalf("%s: %v", tc.expr, err)
			}
			if got != tc.want {
				t.Errorf("%s = %v (%T), want %v", tc.expr, got, got, tc.want)
			}
		})
	}
}

func TestAttr_MethodValue(t *testing.T) {
	got, err := X.Attr("Greeting").Eval(person{Name: "amy"})
	if err != nil {
		t.Fatal(err)
	}
	if reflect.TypeOf(got).Kind() != reflect.Func {
		t.Fatalf("expected a bound method, got %T", got)
	}
	fn := got.(func(string) string)
	if fn("yo") != "yo amy" {
		t.Errorf("bound method lost its receiver")
	}
}

func TestAttr_MultipleResults(t *testing.T) {
	got, err := X.Method("Split").Eval(person{Name: "amy", Age: 3})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{"amy", 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAttr_ErrorResultPassesThrough(t *testing.T) {
	_, err := X.Method("Fail").Eval(person{})
	if err != errBoom {
		t.Errorf("expected the method's own error, got %v", err)
	}
}

func TestAttr_Errors(t *testing.T) {
	tests := []struct {
		name  string
		expr  *Expr
		input any
		code  errors.ErrorCode
	}{
		{"unexported field", X.Attr("secret"), person{}, errors.ErrCodeAttributeNotFound},
		{"missing member", X.Attr("Missing"), person{}, errors.ErrCodeAttributeNotFound},
		{"member of int", X.Attr("Name"), 3, errors.ErrCodeAttributeNotFound},
		{"member of nil", X.Attr("Name"), nil, errors.ErrCodeAttributeNotFound},
		{"nil pointer", X.Attr("Name"), (*person)(nil), errors.ErrCodeAttributeNotFound},
		{"pointer method on value", X.Method("Title"), person{}, errors.ErrCodeAttributeNotFound},
		{"accessor miss", X.Attr("Age"), record{}, errors.ErrCodeAttributeNotFound},
		{"missing map key", X.Attr("z"), map[string]int{}, errors.ErrCodeAttributeNotFound},
		{"too few arguments", X.Method("Greeting"), person{}, errors.ErrCodeTypeMismatch},
		{"wrong argument type", X.Method("Greeting", 5), person{}, errors.ErrCodeTypeMismatch},
		{"invoke non-func", X.Call(), 3, errors.ErrCodeNotCallable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.expr.Eval(tc.input)
			if !errors.HasCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestItem(t *testing.T) {
	tests := []struct {
		name  string
		expr  *Expr
		input any
		want  any
	}{
		{"first", X.Item(0), []int{1, 2, 3}, 1},
		{"negative", X.Item(-1), []int{1, 2, 3}, 3},
		{"array", X.Item(1), [2]string{"a", "b"}, "b"},
		{"string rune", X.Item(1), "héllo", "é"},
		{"map", X.Item("k"), map[string]int{"k": 7}, 7},
		{"int map key", X.Item(2), map[int]string{2: "two"}, "two"},
		{"indexer", X.Item([2]int{1, 0}), grid{{1, 2}, {3, 4}}, 3},
		{"pair element", X.Item(0), []any{"a", 1}, "a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.expr.Eval(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("%s = %v, want %v", tc.expr, got, tc.want)
			}
		})
	}
}

func TestItem_Errors(t *testing.T) {
	tests := []struct {
		name  string
		expr  *Expr
		input any
		code  errors.ErrorCode
	}{
		{"out of range", X.Item(5), []int{1}, errors.ErrCodeIndexOutOfRange},
		{"negative out of range", X.Item(-3), []int{1, 2}, errors.ErrCodeIndexOutOfRange},
		{"empty string", X.Item(0), "", errors.ErrCodeIndexOutOfRange},
		{"non-integer index", X.Item("a"), []int{1}, errors.ErrCodeTypeMismatch},
		{"missing key", X.Item("z"), map[string]int{}, errors.ErrCodeKeyNotFound},
		{"wrong key type", X.Item("z"), map[int]int{}, errors.ErrCodeTypeMismatch},
		{"unhashable key", X.Item([]int{1}), map[any]any{1: "a"}, errors.ErrCodeTypeMismatch},
		{"not indexable", X.Item(0), 3, errors.ErrCodeUnsupportedOperation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.expr.Eval(tc.input)
			if !errors.HasCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	tests := []struct {
		name  string
		expr  *Expr
		input any
		want  any
	}{
		{"tail of string", X.Slice(1, nil), "hello", "ello"},
		{"drop last", X.Slice(nil, -1), []int{1, 2, 3}, []int{1, 2}},
		{"middle", X.Slice(1, 3), []string{"a", "b", "c", "d"}, []string{"b", "c"}},
		{"clamped", X.Slice(-10, 10), []int{1, 2}, []int{1, 2}},
		{"array copy", X.Slice(0, 1), [3]int{7, 8, 9}, []int{7}},
		{"runes", X.Slice(0, 2), "héllo", "hé"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.expr.Eval(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tc.expr, diff)
			}
		})
	}
}

func TestSlice_Empty(t *testing.T) {
	got, err := X.Slice(5, 10).Eval([]int{1})
	if err != nil {
		t.Fatal(err)
	}
	if s := got.([]int); len(s) != 0 {
		t.Errorf("expected empty slice, got %v", s)
	}
	got, err = X.Slice(3, 1).Eval("abcd")
	if err != nil || got != "" {
		t.Errorf("inverted bounds should yield empty string, got %q, %v", got, err)
	}
	if _, err := X.Slice(0, 1).Eval(3); !errors.HasCode(err, errors.ErrCodeUnsupportedOperation) {
		t.Errorf("expected UNSUPPORTED_OPERATION, got %v", err)
	}
	if _, err := X.Slice("a", nil).Eval("abc"); !errors.HasCode(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("expected TYPE_MISMATCH, got %v", err)
	}
}

func TestInvoke(t *testing.T) {
	fns := map[string]any{
		"double": func(n int) int { return n * 2 },
		"fail":   func() error { return errBoom },
		"noop":   func() {},
	}
	got, err := X.Item("double").Call(2).Eval(fns)
	if err != nil || got != 4 {
		t.Errorf("double(2) = %v, %v", got, err)
	}
	if _, err := X.Item("fail").Call().Eval(fns); err != errBoom {
		t.Errorf("expected errBoom, got %v", err)
	}
	got, err = X.Item("noop").Call().Eval(fns)
	if err != nil || got != nil {
		t.Errorf("noop() = %v, %v", got, err)
	}
}

func TestTuple(t *testing.T) {
	got, err := Tuple(X.Item(0), Len(X), "lit").Eval("ab")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{"a", 2, "lit"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
