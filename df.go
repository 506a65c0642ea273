package pnad

import (
	"fmt"
	"strings"
)

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
	DTint
)

// max value of DataTypes type
const MaxDT = DTint

func (dt DataTypes) String() string {
	switch dt {
	case DTstring:
		return "DTstring"
	case DTfloat:
		return "DTfloat"
	case DTint:
		return "DTint"
	default:
		return "DTunknown"
	}
}

func DTFromString(nm string) DataTypes {
	for dt := DataTypes(0); dt <= MaxDT; dt++ {
		if dt.String() == nm {
			return dt
		}
	}

	return DTunknown
}

// DF is an ordered set of named columns of equal length.
type DF struct {
	head *columnList
}

type columnList struct {
	col *Col

	prior *columnList
	next  *columnList
}

func NewDF(cols ...*Col) (*DF, error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewDF")
	}

	df := &DF{}
	for _, col := range cols {
		if e := df.AppendColumn(col); e != nil {
			return nil, e
		}
	}

	return df, nil
}

// *********** Methods ***********

func (df *DF) RowCount() int {
	if df.head == nil {
		return 0
	}

	return df.head.col.Len()
}

func (df *DF) ColumnCount() int {
	cols := 0
	for c := df.head; c != nil; c = c.next {
		cols++
	}

	return cols
}

func (df *DF) ColumnNames() []string {
	var names []string

	for h := df.head; h != nil; h = h.next {
		names = append(names, h.col.Name())
	}

	return names
}

// ColumnTypes returns the types of colNames, or of all columns if none are given.
func (df *DF) ColumnTypes(colNames ...string) ([]DataTypes, error) {
	if colNames == nil {
		colNames = df.ColumnNames()
	}

	var dts []DataTypes
	for _, cn := range colNames {
		col := df.Column(cn)
		if col == nil {
			return nil, fmt.Errorf("column %s not found", cn)
		}

		dts = append(dts, col.DataType())
	}

	return dts, nil
}

// Column returns the column colName, or nil if there isn't one.
func (df *DF) Column(colName string) *Col {
	if node := df.node(colName); node != nil {
		return node.col
	}

	return nil
}

func (df *DF) HasColumns(colNames ...string) bool {
	for _, cn := range colNames {
		if df.node(cn) == nil {
			return false
		}
	}

	return true
}

func (df *DF) AppendColumn(col *Col) error {
	if col == nil {
		return fmt.Errorf("nil column in AppendColumn")
	}

	if df.node(col.Name()) != nil {
		return fmt.Errorf("duplicate column name: %s", col.Name())
	}

	if df.head == nil {
		df.head = &columnList{col: col}
		return nil
	}

	if col.Len() != df.RowCount() {
		return fmt.Errorf("length mismatch: df - %d, append col - %d", df.RowCount(), col.Len())
	}

	var tail *columnList
	for tail = df.head; tail.next != nil; tail = tail.next {
	}

	tail.next = &columnList{col: col, prior: tail}

	return nil
}

// ReplaceColumn swaps the column with the same name as col for col, keeping its position.
func (df *DF) ReplaceColumn(col *Col) error {
	node := df.node(col.Name())
	if node == nil {
		return fmt.Errorf("column %s not found", col.Name())
	}

	if col.Len() != df.RowCount() {
		return fmt.Errorf("length mismatch: df - %d, replacement col - %d", df.RowCount(), col.Len())
	}

	node.col = col

	return nil
}

func (df *DF) DropColumns(colNames ...string) error {
	for _, cName := range colNames {
		node := df.node(cName)
		if node == nil {
			return fmt.Errorf("column %s not found", cName)
		}

		if node == df.head {
			if df.head.next == nil {
				return fmt.Errorf("no columns left")
			}

			df.head = df.head.next
			df.head.prior = nil
			continue
		}

		node.prior.next = node.next
		if node.next != nil {
			node.next.prior = node.prior
		}
	}

	return nil
}

// KeepColumns returns a new DF with colNames in the order given. The columns are shared, not copied.
func (df *DF) KeepColumns(colNames ...string) (*DF, error) {
	if len(colNames) == 0 {
		return nil, fmt.Errorf("no columns in KeepColumns")
	}

	var cols []*Col
	for _, cn := range colNames {
		col := df.Column(cn)
		if col == nil {
			return nil, fmt.Errorf("column %s not found", cn)
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

func (df *DF) Rename(oldName, newName string) error {
	col := df.Column(oldName)
	if col == nil {
		return fmt.Errorf("column %s not found", oldName)
	}

	if oldName == newName {
		return nil
	}

	if df.node(newName) != nil {
		return fmt.Errorf("column %s already exists, cannot Rename", newName)
	}

	return col.Rename(newName)
}

// Copy returns a deep copy of df.
func (df *DF) Copy() *DF {
	out := &DF{}
	for h := df.head; h != nil; h = h.next {
		_ = out.AppendColumn(h.col.Copy())
	}

	return out
}

// Where returns a new DF with the rows for which keep is true.
func (df *DF) Where(keep []bool) (*DF, error) {
	if len(keep) != df.RowCount() {
		return nil, fmt.Errorf("Where: indicator length %d, df rows %d", len(keep), df.RowCount())
	}

	out := &DF{}
	for h := df.head; h != nil; h = h.next {
		col, e := NewCol(h.col.Where(keep), ColName(h.col.Name()))
		if e != nil {
			return nil, e
		}

		if e := out.AppendColumn(col); e != nil {
			return nil, e
		}
	}

	return out, nil
}

// Head returns a DF with the first n rows (or all of them if there are fewer).
func (df *DF) Head(n int) *DF {
	keep := make([]bool, df.RowCount())
	for ind := 0; ind < n && ind < len(keep); ind++ {
		keep[ind] = true
	}

	out, _ := df.Where(keep)

	return out
}

// Row returns the values of row indx in column order; nulls are nil.
func (df *DF) Row(indx int) []any {
	var row []any
	for h := df.head; h != nil; h = h.next {
		row = append(row, h.col.Element(indx))
	}

	return row
}

// Columns returns the columns of df in order.
func (df *DF) Columns() []*Col {
	var cols []*Col
	for h := df.head; h != nil; h = h.next {
		cols = append(cols, h.col)
	}

	return cols
}

// String prints every row of df. Use Head first for a preview.
func (df *DF) String() string {
	var (
		header []string
		cols   []*Vector
	)
	for h := df.head; h != nil; h = h.next {
		header = append(header, h.col.Name())
		cols = append(cols, h.col.Vector)
	}

	if cols == nil {
		return "empty DF\n"
	}

	return prettyPrint(header, cols...)
}

// Types lists each column with its type, one per line.
func (df *DF) Types() string {
	maxLen := 0
	for _, cn := range df.ColumnNames() {
		if len(cn) > maxLen {
			maxLen = len(cn)
		}
	}

	var sb strings.Builder
	for h := df.head; h != nil; h = h.next {
		sb.WriteString(fmt.Sprintf("%-*s   %s\n", maxLen, h.col.Name(), h.col.DataType()))
	}

	return sb.String()
}

func (df *DF) node(colName string) *columnList {
	for h := df.head; h != nil; h = h.next {
		if h.col.Name() == colName {
			return h
		}
	}

	return nil
}
