// Package labels turns the coded PNAD survey extract into the labeled, fixed-order table
// written for BI tools.
package labels

import (
	"fmt"

	"github.com/invertedv/pnad"
)

// field describes one source variable: its PNAD name, its working name after the first rename
// and the numeric type it is coerced to.
type field struct {
	source string
	name   string
	dt     pnad.DataTypes
}

var fields = []field{
	{"UF", "State_Code", pnad.DTint},
	{"V1028", "Weight_Person", pnad.DTfloat},
	{"V2007", "Gender", pnad.DTint},
	{"V2009", "Age", pnad.DTint},
	{"VD3004", "Education_Level", pnad.DTint},
	{"VD4020", "Effective_Income", pnad.DTfloat},
	{"VD4001", "Labor_Force_Status", pnad.DTint},
	{"VD4002", "Employment_Type", pnad.DTint},
	{"VD4035", "Weekly_Hours", pnad.DTfloat},
	{"VD4008", "Economic_Sector", pnad.DTint},
}

// coded columns replaced in place by their labels
var coded = []struct {
	name   string
	lookup Lookup
}{
	{"Gender", gender},
	{"Labor_Force_Status", laborForce},
	{"Employment_Type", employmentType},
	{"Education_Level", education},
	{"Economic_Sector", sector},
}

var finalNames = map[string]string{
	"Effective_Income": "Monthly_Income",
	"Weekly_Hours":     "Weekly_Hours_Worked",
	"Weight_Person":    "Sampling_Weight",
}

var outputColumns = []string{
	"State_Name", "State_Code", "Gender", "Age",
	"Labor_Force_Status", "Employment_Type", "Economic_Sector",
	"Education_Level", "Weekly_Hours_Worked", "Monthly_Income",
	"Sampling_Weight",
}

var outputTypes = []pnad.DataTypes{
	pnad.DTstring, pnad.DTint, pnad.DTstring, pnad.DTint,
	pnad.DTstring, pnad.DTstring, pnad.DTstring,
	pnad.DTstring, pnad.DTfloat, pnad.DTfloat,
	pnad.DTfloat,
}

// SourceColumns are the PNAD variables Normalize needs.
func SourceColumns() []string {
	cols := make([]string, len(fields))
	for ind, f := range fields {
		cols[ind] = f.source
	}

	return cols
}

// OutputColumns is the column order of the normalized table.
func OutputColumns() []string {
	return append([]string(nil), outputColumns...)
}

// OutputTypes are the types of OutputColumns, in the same order.
func OutputTypes() []pnad.DataTypes {
	return append([]pnad.DataTypes(nil), outputTypes...)
}

// Normalize coerces, filters and labels the raw extract. raw is not modified.
//   - the SourceColumns are coerced to numbers; values that don't parse become null
//   - rows with a null income (VD4020) or weight (V1028) are dropped
//   - codes are replaced by labels; unknown states are "Unknown", other unknown codes are null
//   - the result has exactly OutputColumns, in that order
func Normalize(raw *pnad.DF) (*pnad.DF, error) {
	var (
		df *pnad.DF
		e  error
	)

	if df, e = coerce(raw); e != nil {
		return nil, e
	}

	income, weight := df.Column("Effective_Income"), df.Column("Weight_Person")
	keep := make([]bool, df.RowCount())
	for ind := range keep {
		keep[ind] = !income.IsNull(ind) && !weight.IsNull(ind)
	}

	if df, e = df.Where(keep); e != nil {
		return nil, e
	}

	if e = label(df); e != nil {
		return nil, e
	}

	for from, to := range finalNames {
		if e = df.Rename(from, to); e != nil {
			return nil, e
		}
	}

	return df.KeepColumns(outputColumns...)
}

// coerce builds a new DF of the source fields under their working names and types.
func coerce(raw *pnad.DF) (*pnad.DF, error) {
	var cols []*pnad.Col
	for _, f := range fields {
		src := raw.Column(f.source)
		if src == nil {
			return nil, fmt.Errorf("source column %s missing", f.source)
		}

		col, e := pnad.NewCol(src.Coerce(f.dt), pnad.ColName(f.name))
		if e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return pnad.NewDF(cols...)
}

func label(df *pnad.DF) error {
	stateNames := df.Column("State_Code").Map(states.Label)
	fallback, _ := states.Fallback()
	for ind := 0; ind < stateNames.Len(); ind++ {
		// a missing code has no lookup at all
		if stateNames.IsNull(ind) {
			stateNames.SetString(fallback, ind)
		}
	}

	var (
		col *pnad.Col
		e   error
	)
	if col, e = pnad.NewCol(stateNames, pnad.ColName("State_Name")); e != nil {
		return e
	}

	if e = df.AppendColumn(col); e != nil {
		return e
	}

	for _, c := range coded {
		if col, e = pnad.NewCol(df.Column(c.name).Map(c.lookup.Label), pnad.ColName(c.name)); e != nil {
			return e
		}

		if e = df.ReplaceColumn(col); e != nil {
			return e
		}
	}

	return nil
}
