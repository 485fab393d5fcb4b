package memstore

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"go-pos/internal/store"

	"github.com/shopspring/decimal"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

func test(field reflect.Value, c store.Cond) (bool, error) {
	isNil := field.Kind() == reflect.Pointer && field.IsNil()

	switch c.Op {
	case store.OpIsNull:
		return isNil, nil
	case store.OpEq:
		if c.Value == nil {
			return isNil, nil
		}
		return !isNil && equal(field, reflect.ValueOf(c.Value)), nil
	case store.OpNe:
		if c.Value == nil {
			return !isNil, nil
		}
		return isNil || !equal(field, reflect.ValueOf(c.Value)), nil
	case store.OpContains:
		if isNil {
			return false, nil
		}
		s := fmt.Sprint(indirect(field).Interface())
		return strings.Contains(strings.ToLower(s), strings.ToLower(fmt.Sprint(c.Value))), nil
	case store.OpIn:
		if isNil {
			return false, nil
		}
		vals := reflect.ValueOf(c.Value)
		if vals.Kind() != reflect.Slice && vals.Kind() != reflect.Array {
			return equal(field, vals), nil
		}
		for i := 0; i < vals.Len(); i++ {
			if equal(field, vals.Index(i)) {
				return true, nil
			}
		}
		return false, nil
	case store.OpGte:
		return !isNil && compare(field, reflect.ValueOf(c.Value)) >= 0, nil
	case store.OpLt:
		return !isNil && compare(field, reflect.ValueOf(c.Value)) < 0, nil
	}
	return false, fmt.Errorf("memstore: unsupported operator %q", c.Op)
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

func equal(a, b reflect.Value) bool {
	a, b = indirect(a), indirect(b)
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	return compare(a, b) == 0
}

// compare orders two scalar values. Mismatched kinds fall back to their
// string forms.
func compare(a, b reflect.Value) int {
	a, b = indirect(a), indirect(b)

	// nil sorts first
	aNil := !a.IsValid() || (a.Kind() == reflect.Pointer && a.IsNil())
	bNil := !b.IsValid() || (b.Kind() == reflect.Pointer && b.IsNil())
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return 1
	}

	if a.Type() == timeType && b.Type() == timeType {
		return a.Interface().(time.Time).Compare(b.Interface().(time.Time))
	}
	if a.Type() == decimalType || b.Type() == decimalType {
		da, okA := toDecimal(a)
		db, okB := toDecimal(b)
		if okA && okB {
			return da.Cmp(db)
		}
	}

	switch {
	case isInt(a) && isInt(b):
		return cmp3(a.Int(), b.Int())
	case isNumber(a) && isNumber(b):
		return cmp3(toFloat(a), toFloat(b))
	case a.Kind() == reflect.Bool && b.Kind() == reflect.Bool:
		return cmp3(boolInt(a.Bool()), boolInt(b.Bool()))
	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return strings.Compare(a.String(), b.String())
	}
	return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return isInt(v)
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64:
		return v.Float()
	}
	return float64(v.Uint())
}

func toDecimal(v reflect.Value) (decimal.Decimal, bool) {
	if v.Type() == decimalType {
		return v.Interface().(decimal.Decimal), true
	}
	if isNumber(v) {
		return decimal.NewFromFloat(toFloat(v)), true
	}
	if v.Kind() == reflect.String {
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func cmp3[N int | int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
