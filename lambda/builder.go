package lambda

// Add records e + other. Strings and same-typed slices concatenate.
func (e *Expr) Add(other any) *Expr { return newNode(OpBinary, "+", e, other) }

// Sub records e - other.
func (e *Expr) Sub(other any) *Expr { return newNode(OpBinary, "-", e, other) }

// Mul records e * other. A string or slice times an integer repeats it.
func (e *Expr) Mul(other any) *Expr { return newNode(OpBinary, "*", e, other) }

// Div records e / other. Integer division truncates.
func (e *Expr) Div(other any) *Expr { return newNode(OpBinary, "/", e, other) }

// Mod records e % other with the sign of e for integers.
func (e *Expr) Mod(other any) *Expr { return newNode(OpBinary, "%", e, other) }

// RAdd records other + e.
func (e *Expr) RAdd(other any) *Expr { return newNode(OpBinary, "+", other, e) }

// RSub records other - e, so 1 - X is X.RSub(1).
func (e *Expr) RSub(other any) *Expr { return newNode(OpBinary, "-", other, e) }

// RMul records other * e.
func (e *Expr) RMul(other any) *Expr { return newNode(OpBinary, "*", other, e) }

// RDiv records other / e.
func (e *Expr) RDiv(other any) *Expr { return newNode(OpBinary, "/", other, e) }

// RMod records other % e.
func (e *Expr) RMod(other any) *Expr { return newNode(OpBinary, "%", other, e) }

// Neg records arithmetic negation.
func (e *Expr) Neg() *Expr { return newNode(OpUnary, "-", e) }

// Eq records e == other. Numbers compare by value across kinds.
func (e *Expr) Eq(other any) *Expr { return newNode(OpCompare, "==", e, other) }

// Ne records e != other.
func (e *Expr) Ne(other any) *Expr { return newNode(OpCompare, "!=", e, other) }

// Lt records e < other.
func (e *Expr) Lt(other any) *Expr { return newNode(OpCompare, "<", e, other) }

// Le records e <= other.
func (e *Expr) Le(other any) *Expr { return newNode(OpCompare, "<=", e, other) }

// Gt records e > other.
func (e *Expr) Gt(other any) *Expr { return newNode(OpCompare, ">", e, other) }

// Ge records e >= other.
func (e *Expr) Ge(other any) *Expr { return newNode(OpCompare, ">=", e, other) }

// And records a short-circuit conjunction of the truthiness of both sides.
func (e *Expr) And(other any) *Expr { return newNode(OpLogic, "and", e, other) }

// Or records a short-circuit disjunction of the truthiness of both sides.
func (e *Expr) Or(other any) *Expr { return newNode(OpLogic, "or", e, other) }

// Not records logical negation of the truthiness of e.
func (e *Expr) Not() *Expr { return newNode(OpUnary, "not", e) }

// Attr records reading the member name of the input: an exported struct
// field, a method value, or a string key of a map.
func (e *Expr) Attr(name string) *Expr { return newNode(OpAttr, name, e) }

// Item records indexing with key. Sequences accept negative indices.
func (e *Expr) Item(key any) *Expr { return newNode(OpItem, "[]", e, key) }

// Slice records slicing between start and stop; nil leaves a bound open.
func (e *Expr) Slice(start, stop any) *Expr { return newNode(OpSlice, "[:]", e, start, stop) }

// Call marks an invocation. On an attribute node it composes the member read
// and the call into a single step (X.Attr("Trim").Call(" ")); on any other node
// it invokes the resolved value.
func (e *Expr) Call(args ...any) *Expr {
	if e.op == OpAttr {
		return newNode(OpCall, e.sym, append([]any{e.operands[0]}, args...)...)
	}
	return newNode(OpInvoke, "()", append([]any{e}, args...)...)
}

// Method is shorthand for e.Attr(name).Call(args...).
func (e *Expr) Method(name string, args ...any) *Expr {
	return newNode(OpCall, name, append([]any{e}, args...)...)
}

// Binary records an arbitrary binary operator. Symbols without an evaluation
// rule fail when the expression is evaluated.
func Binary(sym string, left, right any) *Expr {
	switch sym {
	case "==", "!=", "<", "<=", ">", ">=":
		return newNode(OpCompare, sym, left, right)
	case "and", "or":
		return newNode(OpLogic, sym, left, right)
	}
	return newNode(OpBinary, sym, left, right)
}

// Unary records an arbitrary unary operator.
func Unary(sym string, operand any) *Expr { return newNode(OpUnary, sym, operand) }

// Lit lifts a literal into a constant expression.
func Lit(v any) *Expr { return newNode(OpConst, "", v) }

// Tuple records a sequence literal; it evaluates to a []any of its items.
func Tuple(items ...any) *Expr { return newNode(OpTuple, "", items...) }
