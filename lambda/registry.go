package lambda

import "sync"

// Func is an expression-aware function callable from an OpFunc node.
type Func func(args ...any) (any, error)

// registry is the process-wide function table consulted by the evaluator.
var registry = &funcRegistry{
	funcs: make(map[string]Func),
}

type funcRegistry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// Register adds or replaces the function called name.
func Register(name string, fn Func) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.funcs[name] = fn
}

// Lookup returns the function registered under name.
func Lookup(name string) (Func, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	fn, ok := registry.funcs[name]
	return fn, ok
}

// Registered returns the names of all registered functions.
func Registered() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.funcs))
	for name := range registry.funcs {
		names = append(names, name)
	}
	return names
}

// Fn records a call of the registered function name. Arguments may be
// expressions or literals; the lookup happens at evaluation time.
func Fn(name string, args ...any) *Expr { return newNode(OpFunc, name, args...) }

func Len(x any) *Expr { return Fn("len", x) }
func Str(x any) *Expr { return Fn("str", x) }
func Int(x any) *Expr { return Fn("int", x) }
func Float(x any) *Expr { return Fn("float", x) }
func Bool(x any) *Expr { return Fn("bool", x) }
func TypeOf(x any) *Expr { return Fn("type", x) }
func Abs(x any) *Expr { return Fn("abs", x) }
func Sorted(x any) *Expr { return Fn("sorted", x) }
func SumOf(x any) *Expr { return Fn("sum", x) }
func Lower(x any) *Expr { return Fn("lower", x) }
func Upper(x any) *Expr { return Fn("upper", x) }

// IsInstance records a type test of x against a type or kind name ("int", "[]string").
func IsInstance(x any, typeName string) *Expr { return Fn("isinstance", x, typeName) }
