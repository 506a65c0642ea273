package pnad

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// *********** Conversions ***********

// ToFloat converts x to float64. Strings are trimmed before parsing; the empty string is not a number.
func ToFloat(x any) (any, bool) {
	if f, ok := x.(float64); ok {
		return f, true
	}

	if s, ok := x.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false
		}

		f, e := strconv.ParseFloat(s, 64)
		if e != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}

		return f, true
	}

	xv := reflect.ValueOf(x)
	if !xv.IsValid() {
		return nil, false
	}

	if xv.CanFloat() {
		return xv.Float(), true
	}

	if xv.CanInt() {
		return float64(xv.Int()), true
	}

	if xv.CanUint() {
		return float64(xv.Uint()), true
	}

	return nil, false
}

// ToInt converts x to int. Floats and float strings convert only if they are integral.
func ToInt(x any) (any, bool) {
	if i, ok := x.(int); ok {
		return i, true
	}

	if s, ok := x.(string); ok {
		s = strings.TrimSpace(s)
		if i, e := strconv.ParseInt(s, 10, 64); e == nil {
			return int(i), true
		}

		f, ok := ToFloat(s)
		if !ok {
			return nil, false
		}

		return ToInt(f)
	}

	xv := reflect.ValueOf(x)
	if !xv.IsValid() {
		return nil, false
	}

	if xv.CanInt() {
		return int(xv.Int()), true
	}

	if xv.CanUint() {
		return int(xv.Uint()), true
	}

	if xv.CanFloat() {
		f := xv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
			return nil, false
		}

		return int(f), true
	}

	return nil, false
}

func ToString(x any) (any, bool) {
	switch xv := x.(type) {
	case string:
		return xv, true
	case float64:
		return FormatFloat(xv), true
	case int:
		return strconv.Itoa(xv), true
	}

	return nil, false
}

// FormatFloat gives the shortest decimal that round-trips x. Integral values keep a ".0" so the
// text still reads back as a float.
func FormatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(x, 0) && !math.IsNaN(x) {
		s += ".0"
	}

	return s
}

func toDataType(x any, dt DataTypes) (any, bool) {
	switch dt {
	case DTfloat:
		return ToFloat(x)
	case DTint:
		return ToInt(x)
	case DTstring:
		return ToString(x)
	}

	return nil, false
}

// inferType returns the narrowest type that holds every non-empty value in xs:
// DTint, then DTfloat, then DTstring. A column with no values is DTstring.
func inferType(xs []string) DataTypes {
	dt := DTint
	seen := false
	for _, x := range xs {
		if x == "" {
			continue
		}

		seen = true
		if dt == DTint {
			if _, e := strconv.ParseInt(x, 10, 64); e == nil {
				continue
			}

			dt = DTfloat
		}

		if _, ok := ToFloat(x); !ok {
			return DTstring
		}
	}

	if !seen {
		return DTstring
	}

	return dt
}

func toSlc(xIn any, target DataTypes) (any, bool) {
	typSlc := map[DataTypes]reflect.Type{
		DTfloat:  reflect.TypeOf([]float64{}),
		DTint:    reflect.TypeOf([]int{}),
		DTstring: reflect.TypeOf([]string{}),
	}

	outType, ok := typSlc[target]
	if !ok || xIn == nil {
		return nil, false
	}

	x := reflect.ValueOf(xIn)

	// nothing to do
	if x.Type() == outType {
		return xIn, true
	}

	if x.Kind() == reflect.Slice {
		xOut := reflect.MakeSlice(outType, x.Len(), x.Len())
		for ind := 0; ind < x.Len(); ind++ {
			var (
				val any
				ok  bool
			)

			if val, ok = toDataType(x.Index(ind).Interface(), target); !ok {
				return nil, false
			}

			xOut.Index(ind).Set(reflect.ValueOf(val))
		}

		return xOut.Interface(), true
	}

	// input is not a slice:
	if val, ok := toDataType(xIn, target); ok {
		xOut := reflect.MakeSlice(outType, 1, 1)
		xOut.Index(0).Set(reflect.ValueOf(val))
		return xOut.Interface(), true
	}

	return nil, false
}
