package labels

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invertedv/pnad"
)

// rawDF builds a provider-shaped table: every column is a string, "" is null.
func rawDF(t *testing.T, rows ...map[string]string) *pnad.DF {
	var cols []*pnad.Col
	for _, cn := range SourceColumns() {
		v := pnad.MakeVector(pnad.DTstring, len(rows))
		for ind, row := range rows {
			if x, ok := row[cn]; ok && x != "" {
				v.SetString(x, ind)
				continue
			}

			v.SetNull(ind)
		}

		col, e := pnad.NewCol(v, pnad.ColName(cn))
		require.Nil(t, e)
		cols = append(cols, col)
	}

	df, e := pnad.NewDF(cols...)
	require.Nil(t, e)

	return df
}

func spRow() map[string]string {
	return map[string]string{
		"UF": "35", "V2007": "1", "V2009": "40", "VD4020": "2500", "V1028": "1.3",
		"VD4001": "1", "VD4002": "5", "VD4008": "2", "VD3004": "3", "VD4035": "44",
	}
}

func TestNormalize_scenario(t *testing.T) {
	df, e := Normalize(rawDF(t, spRow()))
	require.Nil(t, e)
	require.Equal(t, 1, df.RowCount())
	assert.Equal(t, OutputColumns(), df.ColumnNames())

	want := []any{"Sao Paulo", 35, "Male", 40, "Employed", "Self-employed", "Industry",
		"Complete High School/Incomplete College", 44.0, 2500.0, 1.3}
	assert.Equal(t, want, df.Row(0))

	ct, _ := df.ColumnTypes()
	assert.Equal(t, []pnad.DataTypes{pnad.DTstring, pnad.DTint, pnad.DTstring, pnad.DTint,
		pnad.DTstring, pnad.DTstring, pnad.DTstring, pnad.DTstring,
		pnad.DTfloat, pnad.DTfloat, pnad.DTfloat}, ct)
	assert.Equal(t, OutputTypes(), ct)
}

func TestNormalize_dropsMissingIncomeOrWeight(t *testing.T) {
	blankIncome := spRow()
	blankIncome["VD4020"] = ""

	textIncome := spRow()
	textIncome["VD4020"] = "n/a"

	noWeight := spRow()
	noWeight["V1028"] = "."

	// everything else broken but income and weight present: kept
	sparse := map[string]string{"VD4020": "100", "V1028": "2", "UF": "x", "V2009": "old"}

	raw := rawDF(t, spRow(), blankIncome, textIncome, noWeight, sparse)
	df, e := Normalize(raw)
	require.Nil(t, e)
	require.Equal(t, 2, df.RowCount())

	assert.Equal(t, 2500.0, df.Column("Monthly_Income").Element(0))
	assert.Equal(t, 100.0, df.Column("Monthly_Income").Element(1))

	// the sparse row keeps its nulls; only the state gets a fallback
	assert.Equal(t, Unknown, df.Column("State_Name").Element(1))
	for _, cn := range []string{"State_Code", "Gender", "Age", "Labor_Force_Status", "Employment_Type",
		"Economic_Sector", "Education_Level", "Weekly_Hours_Worked"} {
		assert.True(t, df.Column(cn).IsNull(1), cn)
	}

	// raw is untouched
	assert.Equal(t, 5, raw.RowCount())
	assert.Equal(t, SourceColumns(), raw.ColumnNames())
	assert.Equal(t, pnad.DTstring, raw.Column("UF").DataType())
}

func TestNormalize_stateName(t *testing.T) {
	var rows []map[string]string
	for code := 0; code <= 60; code++ {
		r := spRow()
		r["UF"] = strconv.Itoa(code)
		rows = append(rows, r)
	}

	df, e := Normalize(rawDF(t, rows...))
	require.Nil(t, e)
	require.Equal(t, 61, df.RowCount())

	codes, names := df.Column("State_Code"), df.Column("State_Name")
	for ind := 0; ind < df.RowCount(); ind++ {
		code := codes.Element(ind).(int)
		lbl, _ := States().Label(code)
		assert.Equal(t, lbl, names.Element(ind))
		assert.Equal(t, !States().Known(code), names.Element(ind) == Unknown, code)
	}
}

func TestNormalize_unknownCodes(t *testing.T) {
	r := spRow()
	r["V2007"], r["VD4001"], r["VD4002"], r["VD3004"], r["VD4008"] = "9", "0", "12", "7", "99"

	df, e := Normalize(rawDF(t, r))
	require.Nil(t, e)

	for _, cn := range []string{"Gender", "Labor_Force_Status", "Employment_Type", "Education_Level", "Economic_Sector"} {
		assert.True(t, df.Column(cn).IsNull(0), cn)
		assert.Equal(t, "", df.Column(cn).ElementString(0), cn)
	}
}

func TestNormalize_missingColumn(t *testing.T) {
	raw := rawDF(t, spRow())
	require.Nil(t, raw.DropColumns("VD4035"))

	_, e := Normalize(raw)
	assert.NotNil(t, e)
}

func TestNormalize_extraColumnsIgnored(t *testing.T) {
	raw := rawDF(t, spRow())
	v, _ := pnad.NewVector([]string{"2025"}, pnad.DTstring)
	col, _ := pnad.NewCol(v, pnad.ColName("Ano"))
	require.Nil(t, raw.AppendColumn(col))

	df, e := Normalize(raw)
	require.Nil(t, e)
	assert.Equal(t, OutputColumns(), df.ColumnNames())
}

func TestNormalize_noRows(t *testing.T) {
	df, e := Normalize(rawDF(t))
	require.Nil(t, e)
	assert.Equal(t, 0, df.RowCount())
	assert.Equal(t, OutputColumns(), df.ColumnNames())
}
