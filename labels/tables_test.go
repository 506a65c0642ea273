package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTables(t *testing.T) {
	assert.Equal(t, 27, States().Len())
	assert.Equal(t, 2, Gender().Len())
	assert.Equal(t, 3, LaborForce().Len())
	assert.Equal(t, 8, EmploymentType().Len())
	assert.Equal(t, 4, Education().Len())
	assert.Equal(t, 10, Sector().Len())

	for _, code := range States().Codes() {
		assert.True(t, code >= 11 && code <= 53, code)
	}

	assert.Equal(t, []int{1, 2, 3, 4}, Education().Codes())
	assert.Equal(t, "UF", States().Name())
}

func TestLookup_Label(t *testing.T) {
	lbl, ok := States().Label(35)
	assert.True(t, ok)
	assert.Equal(t, "Sao Paulo", lbl)

	lbl, ok = States().Label(34)
	assert.True(t, ok)
	assert.Equal(t, Unknown, lbl)
	assert.False(t, States().Known(34))

	lbl, ok = Gender().Label(2)
	assert.True(t, ok)
	assert.Equal(t, "Female", lbl)

	lbl, ok = Gender().Label(3)
	assert.False(t, ok)
	assert.Equal(t, "", lbl)

	_, total := Sector().Fallback()
	assert.False(t, total)
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"UF", "V1028", "V2007", "V2009", "VD3004", "VD4020", "VD4001", "VD4002", "VD4035", "VD4008"},
		SourceColumns())

	cols := OutputColumns()
	assert.Len(t, cols, 11)
	cols[0] = "changed"
	assert.Equal(t, "State_Name", OutputColumns()[0])
}
