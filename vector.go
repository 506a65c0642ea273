package pnad

import (
	"fmt"
)

// Vector holds the data of a column along with a null mask.
type Vector struct {
	dt DataTypes

	data any
	null []bool
}

// NewVector makes a Vector of type dt from data, which may be a slice or a single value.
func NewVector(data any, dt DataTypes) (*Vector, error) {
	var (
		v  any
		ok bool
	)
	if v, ok = toSlc(data, dt); !ok {
		return nil, fmt.Errorf("cannot make vector of type %s", dt)
	}

	vec := &Vector{dt: dt, data: v}
	vec.null = make([]bool, vec.Len())

	return vec, nil
}

// MakeVector returns a Vector of length n with zero values.
func MakeVector(dt DataTypes, n int) *Vector {
	switch dt {
	case DTfloat:
		return &Vector{dt: dt, data: make([]float64, n), null: make([]bool, n)}
	case DTint:
		return &Vector{dt: dt, data: make([]int, n), null: make([]bool, n)}
	case DTstring:
		return &Vector{dt: dt, data: make([]string, n), null: make([]bool, n)}
	default:
		panic(fmt.Errorf("cannot make Vector with data type %s", dt))
	}
}

// *********** Setters ***********

func (v *Vector) SetFloat(val float64, indx int) {
	if v.VectorType() != DTfloat {
		panic(fmt.Errorf("vector isn't DTfloat"))
	}

	v.check(indx)
	v.data.([]float64)[indx] = val
	v.null[indx] = false
}

func (v *Vector) SetInt(val, indx int) {
	if v.VectorType() != DTint {
		panic(fmt.Errorf("vector isn't DTint"))
	}

	v.check(indx)
	v.data.([]int)[indx] = val
	v.null[indx] = false
}

func (v *Vector) SetString(val string, indx int) {
	if v.VectorType() != DTstring {
		panic(fmt.Errorf("vector isn't DTstring"))
	}

	v.check(indx)
	v.data.([]string)[indx] = val
	v.null[indx] = false
}

// SetNull marks element indx as missing. The underlying value is reset to its zero value.
func (v *Vector) SetNull(indx int) {
	v.check(indx)

	switch v.dt {
	case DTfloat:
		v.data.([]float64)[indx] = 0
	case DTint:
		v.data.([]int)[indx] = 0
	case DTstring:
		v.data.([]string)[indx] = ""
	}

	v.null[indx] = true
}

// *********** Getters ***********

func (v *Vector) VectorType() DataTypes {
	return v.dt
}

func (v *Vector) Len() int {
	switch v.dt {
	case DTfloat:
		return len(v.data.([]float64))
	case DTint:
		return len(v.data.([]int))
	case DTstring:
		return len(v.data.([]string))
	default:
		panic(fmt.Errorf("unexpected error in Vector.Len"))
	}
}

func (v *Vector) IsNull(indx int) bool {
	v.check(indx)
	return v.null[indx]
}

func (v *Vector) NullCount() int {
	n := 0
	for _, isNull := range v.null {
		if isNull {
			n++
		}
	}

	return n
}

// AsAny returns the underlying slice. Null positions hold zero values.
func (v *Vector) AsAny() any {
	return v.data
}

func (v *Vector) AsFloat() []float64 {
	if v.VectorType() == DTfloat {
		return v.data.([]float64)
	}

	if v.VectorType() == DTint {
		xOut := make([]float64, v.Len())
		for ind, xx := range v.data.([]int) {
			xOut[ind] = float64(xx)
		}

		return xOut
	}

	panic(fmt.Errorf("cannot convert to Vector.AsFloat"))
}

func (v *Vector) AsInt() []int {
	if v.VectorType() == DTint {
		return v.data.([]int)
	}

	panic(fmt.Errorf("cannot convert to Vector.AsInt"))
}

func (v *Vector) AsString() []string {
	if v.VectorType() == DTstring {
		return v.data.([]string)
	}

	xOut := make([]string, v.Len())
	for ind := 0; ind < v.Len(); ind++ {
		xOut[ind] = v.ElementString(ind)
	}

	return xOut
}

// Element returns the value at indx, or nil if it is null.
func (v *Vector) Element(indx int) any {
	v.check(indx)

	if v.null[indx] {
		return nil
	}

	switch v.dt {
	case DTfloat:
		return v.data.([]float64)[indx]
	case DTint:
		return v.data.([]int)[indx]
	case DTstring:
		return v.data.([]string)[indx]
	default:
		panic(fmt.Errorf("error in Element"))
	}
}

// ElementString returns the text form of the value at indx. Nulls are the empty string.
func (v *Vector) ElementString(indx int) string {
	x := v.Element(indx)
	if x == nil {
		return ""
	}

	s, _ := ToString(x)

	return s.(string)
}

// *********** Operations ***********

func (v *Vector) Copy() *Vector {
	vCopy := &Vector{dt: v.dt, null: make([]bool, len(v.null))}
	copy(vCopy.null, v.null)

	switch v.dt {
	case DTfloat:
		x := make([]float64, v.Len())
		copy(x, v.data.([]float64))
		vCopy.data = x
	case DTint:
		x := make([]int, v.Len())
		copy(x, v.data.([]int))
		vCopy.data = x
	case DTstring:
		x := make([]string, v.Len())
		copy(x, v.data.([]string))
		vCopy.data = x
	default:
		panic(fmt.Errorf("unexpected error in Vector.Copy"))
	}

	return vCopy
}

// Where returns the elements for which keep is true.
func (v *Vector) Where(keep []bool) *Vector {
	if len(keep) != v.Len() {
		panic(fmt.Errorf("Where: indicator length %d, vector length %d", len(keep), v.Len()))
	}

	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}

	outVec := MakeVector(v.VectorType(), n)
	row := 0
	for ind := 0; ind < v.Len(); ind++ {
		if !keep[ind] {
			continue
		}

		outVec.set(v.Element(ind), row)
		row++
	}

	return outVec
}

// Coerce converts v to type to. Elements that cannot be converted become null.
func (v *Vector) Coerce(to DataTypes) *Vector {
	xOut := MakeVector(to, v.Len())
	for ind := 0; ind < v.Len(); ind++ {
		vIn := v.Element(ind)
		if vIn == nil {
			xOut.SetNull(ind)
			continue
		}

		vOut, ok := toDataType(vIn, to)
		if !ok {
			xOut.SetNull(ind)
			continue
		}

		xOut.set(vOut, ind)
	}

	return xOut
}

// Map applies fn to each non-null element of an int Vector, producing a string Vector.
// If fn returns false the output element is null.
func (v *Vector) Map(fn func(code int) (string, bool)) *Vector {
	if v.VectorType() != DTint {
		panic(fmt.Errorf("Map requires DTint vector, got %s", v.VectorType()))
	}

	xOut := MakeVector(DTstring, v.Len())
	for ind, code := range v.data.([]int) {
		if v.null[ind] {
			xOut.SetNull(ind)
			continue
		}

		label, ok := fn(code)
		if !ok {
			xOut.SetNull(ind)
			continue
		}

		xOut.SetString(label, ind)
	}

	return xOut
}

// *********** Helpers ***********

func (v *Vector) check(indx int) {
	if indx < 0 || indx >= len(v.null) {
		panic(fmt.Errorf("index out of range"))
	}
}

// set assigns an already-typed value, or null if val is nil.
func (v *Vector) set(val any, indx int) {
	if val == nil {
		v.SetNull(indx)
		return
	}

	switch v.dt {
	case DTfloat:
		v.SetFloat(val.(float64), indx)
	case DTint:
		v.SetInt(val.(int), indx)
	case DTstring:
		v.SetString(val.(string), indx)
	}
}
