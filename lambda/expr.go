package lambda

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Op identifies the operation recorded by an expression node.
type Op uint8

const (
	// OpHole is the placeholder: it evaluates to the input itself.
	OpHole Op = iota
	OpConst
	OpUnary
	OpBinary
	OpCompare
	OpLogic
	OpAttr
	OpItem
	OpSlice
	// OpCall reads a member and invokes it in one step.
	OpCall
	// OpInvoke invokes the value produced by its first operand.
	OpInvoke
	// OpFunc applies a registered function.
	OpFunc
	OpTuple
)

var opNames = [...]string{
	OpHole:    "hole",
	OpConst:   "const",
	OpUnary:   "unary",
	OpBinary:  "binary",
	OpCompare: "compare",
	OpLogic:   "logic",
	OpAttr:    "attr",
	OpItem:    "item",
	OpSlice:   "slice",
	OpCall:    "call",
	OpInvoke:  "invoke",
	OpFunc:    "func",
	OpTuple:   "tuple",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Expr is an immutable node of a deferred expression tree. Operands are either
// nested *Expr subtrees or literals captured when the node was built.
type Expr struct {
	op       Op
	sym      string
	operands []any
}

// X is the shared placeholder every expression starts from.
var X = &Expr{op: OpHole}

// Hole returns the shared placeholder.
func Hole() *Expr { return X }

func newNode(op Op, sym string, operands ...any) *Expr {
	return &Expr{op: op, sym: sym, operands: slices.Clone(operands)}
}

// Op returns the recorded operation.
func (e *Expr) Op() Op { return e.op }

// Symbol returns the operator symbol, member name or function name of the node.
func (e *Expr) Symbol() string { return e.sym }

// Operands returns a copy of the node's operands.
func (e *Expr) Operands() []any { return slices.Clone(e.operands) }

// IsHole reports whether e is the placeholder itself.
func (e *Expr) IsHole() bool { return e != nil && e.op == OpHole }

// Eval replays the expression against x.
func (e *Expr) Eval(x any) (any, error) { return e.eval(x) }

// Fn returns the expression as a unary function.
func (e *Expr) Fn() func(any) (any, error) { return e.eval }

// Pred returns the expression as a predicate using truthiness.
func (e *Expr) Pred() func(any) (bool, error) {
	return func(x any) (bool, error) {
		v, err := e.eval(x)
		if err != nil {
			return false, err
		}
		return Truthy(v), nil
	}
}

// String renders the expression in infix form, e.g. "((X % 2) == 0)".
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.op {
	case OpHole:
		return "X"
	case OpConst:
		return formatOperand(e.operands[0])
	case OpUnary:
		if e.sym == "not" {
			return "not " + formatOperand(e.operands[0])
		}
		return e.sym + formatOperand(e.operands[0])
	case OpBinary, OpCompare, OpLogic:
		return "(" + formatOperand(e.operands[0]) + " " + e.sym + " " + formatOperand(e.operands[1]) + ")"
	case OpAttr:
		return formatOperand(e.operands[0]) + "." + e.sym
	case OpItem:
		return formatOperand(e.operands[0]) + "[" + formatOperand(e.operands[1]) + "]"
	case OpSlice:
		return formatOperand(e.operands[0]) + "[" + formatBound(e.operands[1]) + ":" + formatBound(e.operands[2]) + "]"
	case OpCall:
		return formatOperand(e.operands[0]) + "." + e.sym + "(" + formatList(e.operands[1:]) + ")"
	case OpInvoke:
		return formatOperand(e.operands[0]) + "(" + formatList(e.operands[1:]) + ")"
	case OpFunc:
		return e.sym + "(" + formatList(e.operands) + ")"
	case OpTuple:
		return "(" + formatList(e.operands) + ")"
	}
	return e.op.String()
}

func formatOperand(v any) string {
	switch o := v.(type) {
	case *Expr:
		return o.String()
	case string:
		return strconv.Quote(o)
	}
	return fmt.Sprint(v)
}

func formatBound(v any) string {
	if v == nil {
		return ""
	}
	return formatOperand(v)
}

func formatList(vs []any) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatOperand(v)
	}
	return strings.Join(parts, ", ")
}
