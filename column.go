package pnad

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Col is a named Vector.
type Col struct {
	*Vector

	name string
}

// ColOpt sets a property of a Col.
type ColOpt func(c *Col) error

func NewCol(v *Vector, opts ...ColOpt) (*Col, error) {
	if v == nil {
		return nil, fmt.Errorf("nil vector to NewCol")
	}

	col := &Col{Vector: v}
	for _, opt := range opts {
		if e := opt(col); e != nil {
			return nil, e
		}
	}

	if col.name == "" {
		return nil, fmt.Errorf("column must be named")
	}

	return col, nil
}

// *********** Setters ***********

func ColName(name string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if c.name != "" {
			return fmt.Errorf("column already named -- use Rename method")
		}

		if !validName(name) {
			return fmt.Errorf("invalid column name: %q", name)
		}

		c.name = name

		return nil
	}
}

// *********** Methods ***********

func (c *Col) Name() string {
	return c.name
}

func (c *Col) DataType() DataTypes {
	return c.VectorType()
}

func (c *Col) Rename(newName string) error {
	if !validName(newName) {
		return fmt.Errorf("invalid column name: %q", newName)
	}

	c.name = newName

	return nil
}

func (c *Col) Copy() *Col {
	return &Col{Vector: c.Vector.Copy(), name: c.name}
}

// String summarizes the column: quantiles for numeric columns, value counts for strings.
func (c *Col) String() string {
	t := fmt.Sprintf("column: %s\ntype: %s\nnulls: %d\n", c.Name(), c.DataType(), c.NullCount())

	if c.DataType() == DTstring {
		counts := make(map[string]int)
		for ind := 0; ind < c.Len(); ind++ {
			if c.IsNull(ind) {
				continue
			}

			counts[c.ElementString(ind)]++
		}

		var keys []string
		for k := range counts {
			keys = append(keys, k)
		}

		sort.Slice(keys, func(i, j int) bool {
			if counts[keys[i]] != counts[keys[j]] {
				return counts[keys[i]] > counts[keys[j]]
			}

			return keys[i] < keys[j]
		})

		vals := make([]int, len(keys))
		for ind, k := range keys {
			vals[ind] = counts[k]
		}

		lv, _ := NewVector(keys, DTstring)
		cv, _ := NewVector(vals, DTint)

		return t + prettyPrint([]string{c.Name(), "count"}, lv, cv)
	}

	x := c.nonNull()
	if len(x) == 0 {
		return t
	}

	sort.Float64s(x)
	cats := []string{"min", "lq", "median", "mean", "uq", "max", "n"}
	vals := []float64{x[0],
		stat.Quantile(0.25, stat.Empirical, x, nil),
		stat.Quantile(0.5, stat.Empirical, x, nil),
		stat.Mean(x, nil),
		stat.Quantile(0.75, stat.Empirical, x, nil),
		x[len(x)-1],
		float64(len(x))}

	cv, _ := NewVector(cats, DTstring)
	vv, _ := NewVector(vals, DTfloat)

	return t + prettyPrint([]string{"metric", "value"}, cv, vv)
}

// nonNull returns the non-null values of a numeric column as float64.
func (c *Col) nonNull() []float64 {
	all := c.AsFloat()
	x := make([]float64, 0, len(all))
	for ind, xv := range all {
		if !c.IsNull(ind) {
			x = append(x, xv)
		}
	}

	return x
}

func validName(name string) bool {
	const illegal = "!@#$%^&*()=+-;:'`/.,>< ~" + `"`

	return name != "" && !strings.ContainsAny(name, illegal)
}
