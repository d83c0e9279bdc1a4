package lambda

import (
	"github.com/kbukum/lambdachain/errors"
)

// Eval replays node against input. A node that is not an *Expr is a literal
// and evaluates to itself.
func Eval(node, input any) (any, error) {
	if e, ok := node.(*Expr); ok {
		return e.eval(input)
	}
	return node, nil
}

func (e *Expr) eval(x any) (any, error) {
	if e == nil {
		return nil, errors.NotCallable(e)
	}
	switch e.op {
	case OpHole:
		return x, nil
	case OpConst:
		return e.operands[0], nil
	case OpUnary:
		v, err := Eval(e.operands[0], x)
		if err != nil {
			return nil, err
		}
		return unary(e.sym, v)
	case OpBinary:
		l, r, err := e.pair(x)
		if err != nil {
			return nil, err
		}
		return Compute(e.sym, l, r)
	case OpCompare:
		l, r, err := e.pair(x)
		if err != nil {
			return nil, err
		}
		return compare(e.sym, l, r)
	case OpLogic:
		return e.logic(x)
	case OpAttr:
		v, err := Eval(e.operands[0], x)
		if err != nil {
			return nil, err
		}
		return getAttr(v, e.sym)
	case OpItem:
		v, k, err := e.pair(x)
		if err != nil {
			return nil, err
		}
		return getItem(v, k)
	case OpSlice:
		vs, err := e.resolve(x, e.operands)
		if err != nil {
			return nil, err
		}
		return sliceOf(vs[0], vs[1], vs[2])
	case OpCall:
		vs, err := e.resolve(x, e.operands)
		if err != nil {
			return nil, err
		}
		return callMethod(vs[0], e.sym, vs[1:])
	case OpInvoke:
		vs, err := e.resolve(x, e.operands)
		if err != nil {
			return nil, err
		}
		return invoke(vs[0], vs[1:])
	case OpFunc:
		fn, ok := Lookup(e.sym)
		if !ok {
			return nil, errors.UnsupportedOperation(e.sym)
		}
		args, err := e.resolve(x, e.operands)
		if err != nil {
			return nil, err
		}
		return fn(args...)
	case OpTuple:
		return e.resolve(x, e.operands)
	}
	return nil, errors.UnsupportedOperation(e.op.String())
}

func (e *Expr) pair(x any) (l, r any, err error) {
	if l, err = Eval(e.operands[0], x); err != nil {
		return nil, nil, err
	}
	if r, err = Eval(e.operands[1], x); err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (e *Expr) resolve(x any, operands []any) ([]any, error) {
	out := make([]any, len(operands))
	for i, o := range operands {
		v, err := Eval(o, x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Expr) logic(x any) (any, error) {
	l, err := Eval(e.operands[0], x)
	if err != nil {
		return nil, err
	}
	switch e.sym {
	case "and":
		if !Truthy(l) {
			return false, nil
		}
	case "or":
		if Truthy(l) {
			return true, nil
		}
	default:
		return nil, errors.UnsupportedOperation(e.sym, l)
	}
	r, err := Eval(e.operands[1], x)
	if err != nil {
		return nil, err
	}
	return Truthy(r), nil
}
