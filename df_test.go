package pnad

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDF(t *testing.T) *DF {
	x, e := NewVector([]float64{1, 2, 3}, DTfloat)
	require.Nil(t, e)
	y, e := NewVector([]int{4, 5, 6}, DTint)
	require.Nil(t, e)
	z, e := NewVector([]string{"a", "b", "c"}, DTstring)
	require.Nil(t, e)
	z.SetNull(1)

	xCol, _ := NewCol(x, ColName("x"))
	yCol, _ := NewCol(y, ColName("y"))
	zCol, _ := NewCol(z, ColName("z"))

	df, e := NewDF(xCol, yCol, zCol)
	require.Nil(t, e)

	return df
}

func TestDF_Column(t *testing.T) {
	df := makeDF(t)

	assert.Equal(t, 3, df.RowCount())
	assert.Equal(t, 3, df.ColumnCount())
	assert.Equal(t, []string{"x", "y", "z"}, df.ColumnNames())

	y := df.Column("y")
	require.NotNil(t, y)
	assert.Equal(t, []int{4, 5, 6}, y.AsAny())
	assert.Nil(t, df.Column("nope"))

	ct, e := df.ColumnTypes()
	assert.Nil(t, e)
	assert.Equal(t, []DataTypes{DTfloat, DTint, DTstring}, ct)

	_, e = df.ColumnTypes("x", "nope")
	assert.NotNil(t, e)

	assert.True(t, df.HasColumns("x", "z"))
	assert.False(t, df.HasColumns("x", "w"))
}

func TestDF_AppendColumn(t *testing.T) {
	df := makeDF(t)

	v, _ := NewVector([]int{1, 2}, DTint)
	short, _ := NewCol(v, ColName("short"))
	assert.NotNil(t, df.AppendColumn(short))

	v, _ = NewVector([]int{1, 2, 3}, DTint)
	dup, _ := NewCol(v, ColName("x"))
	assert.NotNil(t, df.AppendColumn(dup))

	ok, _ := NewCol(v, ColName("w"))
	assert.Nil(t, df.AppendColumn(ok))
	assert.Equal(t, []string{"x", "y", "z", "w"}, df.ColumnNames())
}

func TestDF_KeepColumns(t *testing.T) {
	df := makeDF(t)

	out, e := df.KeepColumns("z", "x")
	assert.Nil(t, e)
	assert.Equal(t, []string{"z", "x"}, out.ColumnNames())

	// df is untouched
	assert.Equal(t, []string{"x", "y", "z"}, df.ColumnNames())

	_, e = df.KeepColumns("x", "nope")
	assert.NotNil(t, e)

	_, e = df.KeepColumns()
	assert.NotNil(t, e)
}

func TestDF_DropColumns(t *testing.T) {
	df := makeDF(t)

	assert.Nil(t, df.DropColumns("x"))
	assert.Equal(t, []string{"y", "z"}, df.ColumnNames())

	assert.Nil(t, df.DropColumns("z"))
	assert.Equal(t, []string{"y"}, df.ColumnNames())

	assert.NotNil(t, df.DropColumns("y"))
	assert.NotNil(t, df.DropColumns("nope"))
}

func TestDF_Rename(t *testing.T) {
	df := makeDF(t)

	assert.Nil(t, df.Rename("x", "xx"))
	assert.Equal(t, []string{"xx", "y", "z"}, df.ColumnNames())

	assert.NotNil(t, df.Rename("xx", "y"))
	assert.NotNil(t, df.Rename("nope", "a"))
	assert.NotNil(t, df.Rename("y", "bad name"))
}

func TestDF_ReplaceColumn(t *testing.T) {
	df := makeDF(t)

	v, _ := NewVector([]string{"p", "q", "r"}, DTstring)
	col, _ := NewCol(v, ColName("y"))
	assert.Nil(t, df.ReplaceColumn(col))
	assert.Equal(t, []string{"x", "y", "z"}, df.ColumnNames())
	assert.Equal(t, DTstring, df.Column("y").DataType())

	v, _ = NewVector([]string{"p"}, DTstring)
	col, _ = NewCol(v, ColName("y"))
	assert.NotNil(t, df.ReplaceColumn(col))
}

func TestDF_Where(t *testing.T) {
	df := makeDF(t)

	out, e := df.Where([]bool{true, true, false})
	assert.Nil(t, e)
	assert.Equal(t, 2, out.RowCount())
	assert.Equal(t, []float64{1, 2}, out.Column("x").AsAny())
	assert.True(t, out.Column("z").IsNull(1))
	assert.Equal(t, 3, df.RowCount())

	_, e = df.Where([]bool{true})
	assert.NotNil(t, e)

	assert.Equal(t, 2, df.Head(2).RowCount())
	assert.Equal(t, 3, df.Head(10).RowCount())
	assert.Equal(t, 0, df.Head(0).RowCount())
}

func TestDF_Row(t *testing.T) {
	df := makeDF(t)

	assert.Equal(t, []any{1.0, 4, "a"}, df.Row(0))
	assert.Equal(t, []any{2.0, 5, nil}, df.Row(1))
}

func TestDF_Copy(t *testing.T) {
	df := makeDF(t)
	cp := df.Copy()
	cp.Column("x").SetFloat(100, 0)
	assert.Nil(t, cp.Rename("y", "yy"))

	assert.Equal(t, 1.0, df.Column("x").Element(0))
	assert.NotNil(t, df.Column("y"))
}

func TestDF_String(t *testing.T) {
	df := makeDF(t)

	s := df.String()
	assert.Contains(t, s, "x")
	assert.Contains(t, s, "NaN")

	assert.Equal(t, "x   DTfloat\ny   DTint\nz   DTstring\n", df.Types())
}

func TestDTFromString(t *testing.T) {
	for dt := DataTypes(0); dt <= MaxDT; dt++ {
		assert.Equal(t, dt, DTFromString(dt.String()))
	}

	assert.Equal(t, DTunknown, DTFromString("DTdate"))
}

func ExampleDF_Types() {
	v, _ := NewVector([]string{"Sao Paulo", "Acre"}, DTstring)
	name, _ := NewCol(v, ColName("State_Name"))
	v, _ = NewVector([]int{35, 12}, DTint)
	code, _ := NewCol(v, ColName("State_Code"))

	df, _ := NewDF(name, code)
	fmt.Print(df.Types())
	// Output:
	// State_Name   DTstring
	// State_Code   DTint
}
