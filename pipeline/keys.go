package pipeline

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/shopspring/decimal"
)

// keySet remembers keys of any dynamic type. Numbers are equal by value
// across kinds (1, int64(1), 1.0). Other comparable keys use Go
// equality. Slices, maps and structs holding them are bucketed by a
// fingerprint of their printed form and compared with reflect.DeepEqual.
type keySet struct {
	exact   *hashset.Set
	buckets map[uint64][]any
}

func newKeySet() *keySet {
	return &keySet{exact: hashset.New(), buckets: make(map[uint64][]any)}
}

// add records k and reports whether it was not seen before.
func (s *keySet) add(k any) bool {
	k = canonical(k)
	if isComparable(k) {
		if s.exact.Contains(k) {
			return false
		}
		s.exact.Add(k)
		return true
	}
	h := fingerprint(k)
	for _, seen := range s.buckets[h] {
		if reflect.DeepEqual(seen, k) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], k)
	return true
}

// keyIndex maps keys of any dynamic type to a position, with the same
// equality rules as keySet.
type keyIndex struct {
	exact   map[any]int
	buckets map[uint64][]indexedKey
}

type indexedKey struct {
	key any
	pos int
}

func newKeyIndex() *keyIndex {
	return &keyIndex{exact: make(map[any]int), buckets: make(map[uint64][]indexedKey)}
}

func (x *keyIndex) lookup(k any) (int, bool) {
	k = canonical(k)
	if isComparable(k) {
		pos, ok := x.exact[k]
		return pos, ok
	}
	for _, e := range x.buckets[fingerprint(k)] {
		if reflect.DeepEqual(e.key, k) {
			return e.pos, true
		}
	}
	return 0, false
}

func (x *keyIndex) insert(k any, pos int) {
	k = canonical(k)
	if isComparable(k) {
		x.exact[k] = pos
		return
	}
	h := fingerprint(k)
	x.buckets[h] = append(x.buckets[h], indexedKey{key: k, pos: pos})
}

func isComparable(k any) bool {
	return k == nil || reflect.ValueOf(k).Comparable()
}

func fingerprint(k any) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%#v", k))
}

// decimalKey is the canonical form of a decimal that no float64 round-trips to.
type decimalKey string

// canonical maps a numeric key to one representative per value: int64 for
// integral values that fit, uint64 above that, float64 for other floats.
// Non-numeric keys are returned unchanged.
func canonical(k any) any {
	if d, ok := k.(decimal.Decimal); ok {
		if f := d.InexactFloat64(); !math.IsInf(f, 0) && decimal.NewFromFloat(f).Equal(d) {
			return canonicalFloat(f)
		}
		return decimalKey(d.String())
	}
	rv := reflect.ValueOf(k)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u > math.MaxInt64 {
			return u
		}
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return canonicalFloat(rv.Float())
	}
	return k
}

func canonicalFloat(f float64) any {
	switch {
	case f != math.Trunc(f):
		return f
	case f >= math.MinInt64 && f < math.MaxInt64:
		return int64(f)
	case f >= math.MaxInt64 && f < math.MaxUint64:
		return uint64(f)
	}
	return f
}
