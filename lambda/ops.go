package lambda

import (
	"cmp"
	"math"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kbukum/lambdachain/errors"
)

type numKind uint8

const (
	notNumeric numKind = iota
	intKind
	uintKind
	floatKind
	decimalKind
)

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	intType     = reflect.TypeOf(0)
)

var arithSyms = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}

func kindOf(v any) (numKind, reflect.Value) {
	if v == nil {
		return notNumeric, reflect.Value{}
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == decimalType {
		return decimalKind, rv
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intKind, rv
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintKind, rv
	case reflect.Float32, reflect.Float64:
		return floatKind, rv
	}
	return notNumeric, rv
}

// toInt saturates uints above math.MaxInt64.
func toInt(k numKind, v reflect.Value) int64 {
	if k == uintKind {
		return int64(min(v.Uint(), math.MaxInt64))
	}
	return v.Int()
}

// exceedsInt reports a uint operand with no int64 form.
func exceedsInt(k numKind, v reflect.Value) bool {
	return k == uintKind && v.Uint() > math.MaxInt64
}

// nonFinite reports a NaN or infinite float operand, which has no decimal form.
func nonFinite(k numKind, v reflect.Value) bool {
	if k != floatKind {
		return false
	}
	f := v.Float()
	return math.IsNaN(f) || math.IsInf(f, 0)
}

func toFloat(k numKind, v reflect.Value) float64 {
	switch k {
	case intKind:
		return float64(v.Int())
	case uintKind:
		return float64(v.Uint())
	case decimalKind:
		return v.Interface().(decimal.Decimal).InexactFloat64()
	}
	return v.Float()
}

func toDecimal(k numKind, v reflect.Value) decimal.Decimal {
	switch k {
	case decimalKind:
		return v.Interface().(decimal.Decimal)
	case intKind:
		return decimal.NewFromInt(v.Int())
	case uintKind:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v.Uint()), 0)
	}
	return decimal.NewFromFloat(v.Float())
}

// Compute applies the binary operator sym to two evaluated operands using the
// same rules as expression evaluation.
func Compute(sym string, l, r any) (any, error) {
	lk, lv := kindOf(l)
	rk, rv := kindOf(r)
	if lk != notNumeric && rk != notNumeric {
		if !arithSyms[sym] {
			return nil, errors.UnsupportedOperation(sym, l, r)
		}
		return arith(sym, lk, rk, lv, rv)
	}
	switch sym {
	case "+":
		if v, ok := concat(l, r); ok {
			return v, nil
		}
	case "*":
		if v, ok := repeat(l, r); ok {
			return v, nil
		}
	}
	return nil, errors.UnsupportedOperation(sym, l, r)
}

func arith(sym string, lk, rk numKind, lv, rv reflect.Value) (any, error) {
	finite := !nonFinite(lk, lv) && !nonFinite(rk, rv)
	switch {
	case (lk == decimalKind || rk == decimalKind) && finite:
		return decimalArith(sym, toDecimal(lk, lv), toDecimal(rk, rv))
	case lk == decimalKind || rk == decimalKind || lk == floatKind || rk == floatKind:
		return floatArith(sym, toFloat(lk, lv), toFloat(rk, rv))
	case lk == uintKind && rk == uintKind:
		res, err := uintArith(sym, lv.Uint(), rv.Uint())
		if err != nil {
			return nil, err
		}
		return intResult(reflect.ValueOf(res), lv.Type(), rv.Type()), nil
	case exceedsInt(lk, lv) || exceedsInt(rk, rv):
		return decimalArith(sym, toDecimal(lk, lv), toDecimal(rk, rv))
	}
	res, err := intArith(sym, toInt(lk, lv), toInt(rk, rv))
	if err != nil {
		return nil, err
	}
	return intResult(reflect.ValueOf(res), lv.Type(), rv.Type()), nil
}

func intArith(sym string, a, b int64) (int64, error) {
	switch sym {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, errors.DivisionByZero("division")
		}
		return a / b, nil
	}
	if b == 0 {
		return 0, errors.DivisionByZero("modulo")
	}
	return a % b, nil
}

func uintArith(sym string, a, b uint64) (uint64, error) {
	switch sym {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, errors.DivisionByZero("division")
		}
		return a / b, nil
	}
	if b == 0 {
		return 0, errors.DivisionByZero("modulo")
	}
	return a % b, nil
}

func floatArith(sym string, a, b float64) (any, error) {
	switch sym {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return nil, errors.DivisionByZero("division")
		}
		return a / b, nil
	}
	if b == 0 {
		return nil, errors.DivisionByZero("modulo")
	}
	return math.Mod(a, b), nil
}

func decimalArith(sym string, a, b decimal.Decimal) (any, error) {
	switch sym {
	case "+":
		return a.Add(b), nil
	case "-":
		return a.Sub(b), nil
	case "*":
		return a.Mul(b), nil
	case "/":
		if b.IsZero() {
			return nil, errors.DivisionByZero("division")
		}
		return a.Div(b), nil
	}
	if b.IsZero() {
		return nil, errors.DivisionByZero("modulo")
	}
	return a.Mod(b), nil
}

// intResult keeps the operands' integer type when they agree. A plain int is
// treated as an untyped literal and takes the other operand's type.
func intResult(res reflect.Value, lt, rt reflect.Type) any {
	t := lt
	switch {
	case lt == rt:
	case lt == intType:
		t = rt
	case rt == intType:
	default:
		return res.Interface()
	}
	return res.Convert(t).Interface()
}

func concat(l, r any) (any, bool) {
	lv, rv := reflect.ValueOf(l), reflect.ValueOf(r)
	if !lv.IsValid() || !rv.IsValid() {
		return nil, false
	}
	if lv.Kind() == reflect.String && rv.Kind() == reflect.String {
		s := reflect.ValueOf(lv.String() + rv.String())
		if lv.Type() == rv.Type() {
			s = s.Convert(lv.Type())
		}
		return s.Interface(), true
	}
	if lv.Kind() == reflect.Slice && lv.Type() == rv.Type() {
		out := reflect.MakeSlice(lv.Type(), 0, lv.Len()+rv.Len())
		out = reflect.AppendSlice(out, lv)
		out = reflect.AppendSlice(out, rv)
		return out.Interface(), true
	}
	return nil, false
}

func repeat(l, r any) (any, bool) {
	seq, count := reflect.ValueOf(l), r
	if k, _ := kindOf(l); k == intKind || k == uintKind {
		seq, count = reflect.ValueOf(r), l
	}
	ck, cv := kindOf(count)
	if !seq.IsValid() || (ck != intKind && ck != uintKind) {
		return nil, false
	}
	n := max(int(toInt(ck, cv)), 0)
	switch seq.Kind() {
	case reflect.String:
		return reflect.ValueOf(strings.Repeat(seq.String(), n)).Convert(seq.Type()).Interface(), true
	case reflect.Slice:
		out := reflect.MakeSlice(seq.Type(), 0, seq.Len()*n)
		for range n {
			out = reflect.AppendSlice(out, seq)
		}
		return out.Interface(), true
	}
	return nil, false
}

func unary(sym string, v any) (any, error) {
	if sym == "not" {
		return !Truthy(v), nil
	}
	k, rv := kindOf(v)
	switch {
	case sym == "+" && k != notNumeric:
		return v, nil
	case sym != "-":
	case k == intKind:
		out := reflect.New(rv.Type()).Elem()
		out.SetInt(-rv.Int())
		return out.Interface(), nil
	case k == floatKind:
		out := reflect.New(rv.Type()).Elem()
		out.SetFloat(-rv.Float())
		return out.Interface(), nil
	case k == decimalKind:
		return v.(decimal.Decimal).Neg(), nil
	}
	return nil, errors.UnsupportedOperation(sym, v)
}

func compare(sym string, l, r any) (any, error) {
	switch sym {
	case "==":
		return Equal(l, r), nil
	case "!=":
		return !Equal(l, r), nil
	}
	c, err := Compare(l, r)
	if err != nil {
		return nil, errors.UnsupportedOperation(sym, l, r)
	}
	switch sym {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	}
	return nil, errors.UnsupportedOperation(sym, l, r)
}

// Compare orders two values: numbers of any kind, strings, and time.Time.
func Compare(l, r any) (int, error) {
	lk, lv := kindOf(l)
	rk, rv := kindOf(r)
	if lk != notNumeric && rk != notNumeric {
		finite := !nonFinite(lk, lv) && !nonFinite(rk, rv)
		switch {
		case (lk == decimalKind || rk == decimalKind) && finite:
			return toDecimal(lk, lv).Cmp(toDecimal(rk, rv)), nil
		case lk == decimalKind || rk == decimalKind || lk == floatKind || rk == floatKind:
			return cmp.Compare(toFloat(lk, lv), toFloat(rk, rv)), nil
		case lk == uintKind && rk == uintKind:
			return cmp.Compare(lv.Uint(), rv.Uint()), nil
		case lk == uintKind:
			return compareUintInt(lv.Uint(), rv.Int()), nil
		case rk == uintKind:
			return -compareUintInt(rv.Uint(), lv.Int()), nil
		}
		return cmp.Compare(lv.Int(), rv.Int()), nil
	}
	if lv.IsValid() && rv.IsValid() && lv.Kind() == reflect.String && rv.Kind() == reflect.String {
		return strings.Compare(lv.String(), rv.String()), nil
	}
	if lt, ok := l.(time.Time); ok {
		if rt, ok := r.(time.Time); ok {
			return lt.Compare(rt), nil
		}
	}
	return 0, errors.UnsupportedOperation("compare", l, r)
}

// compareUintInt orders an unsigned against a signed integer without
// wrapping: every negative int is below every uint.
func compareUintInt(u uint64, i int64) int {
	if i < 0 {
		return 1
	}
	return cmp.Compare(u, uint64(i))
}

// Equal reports whether two values are equal. Numbers compare by value across
// kinds (1 == 1.0); everything else uses reflect.DeepEqual.
func Equal(l, r any) bool {
	lk, _ := kindOf(l)
	rk, _ := kindOf(r)
	if lk != notNumeric && rk != notNumeric {
		c, err := Compare(l, r)
		return err == nil && c == 0
	}
	return reflect.DeepEqual(l, r)
}

// Truthy reports the truth value of v: nil, false, numeric zero and empty
// strings, slices, maps and arrays are false; everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case decimal.Decimal:
		return !t.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	}
	return true
}
