package pnad

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesSave(t *testing.T) {
	dfx := makeDF(t)
	fileName := filepath.Join(t.TempDir(), "test.csv")

	fs, e := NewFiles()
	require.Nil(t, e)
	require.Nil(t, fs.Save(fileName, dfx))

	info, e := os.Stat(fileName)
	require.Nil(t, e)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	raw, e := os.ReadFile(fileName)
	require.Nil(t, e)
	assert.Equal(t, "x,y,z\n1.0,4,a\n2.0,5,\n3.0,6,c\n", string(raw))

	f, _ := NewFiles()
	require.Nil(t, f.Open(fileName))
	dfy, e := FileLoad(f)
	require.Nil(t, e)

	assert.Equal(t, dfx.ColumnNames(), dfy.ColumnNames())
	for _, cn := range dfx.ColumnNames() {
		cx, cy := dfx.Column(cn), dfy.Column(cn)
		assert.Equal(t, cx.DataType(), cy.DataType(), cn)
		assert.Equal(t, cx.AsAny(), cy.AsAny(), cn)
		for ind := 0; ind < cx.Len(); ind++ {
			assert.Equal(t, cx.IsNull(ind), cy.IsNull(ind))
		}
	}

	// no temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(fileName))
	assert.Len(t, entries, 1)
}

func TestFilesSave_quoting(t *testing.T) {
	v, _ := NewVector([]string{"Trade, Repair", `say "hi"`}, DTstring)
	col, _ := NewCol(v, ColName("label"))
	dfx, _ := NewDF(col)

	fileName := filepath.Join(t.TempDir(), "q.csv")
	fs, _ := NewFiles()
	require.Nil(t, fs.Save(fileName, dfx))

	f, _ := NewFiles()
	require.Nil(t, f.Open(fileName))
	dfy, e := FileLoad(f)
	require.Nil(t, e)
	assert.Equal(t, []string{"Trade, Repair", `say "hi"`}, dfy.Column("label").AsAny())
}

func TestFileLoad_headerOnly(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "empty.csv")
	require.Nil(t, os.WriteFile(fileName, []byte("a,b,c\n"), 0o644))

	f, _ := NewFiles()
	require.Nil(t, f.Open(fileName))
	df, e := FileLoad(f)
	require.Nil(t, e)
	assert.Equal(t, 0, df.RowCount())
	assert.Equal(t, []string{"a", "b", "c"}, df.ColumnNames())
}

func TestFileLoad_errors(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"blank.csv":   "",
		"ragged.csv":  "a,b\n1,2\n3\n",
		"quote.csv":   "a,b\n\"1,2\n",
		"latin1.csv":  "a\n\xe3o\n",
		"badname.csv": "a b\n1\n",
	}

	for name, body := range tests {
		fileName := filepath.Join(dir, name)
		require.Nil(t, os.WriteFile(fileName, []byte(body), 0o644))

		f, _ := NewFiles()
		require.Nil(t, f.Open(fileName))
		_, e := FileLoad(f)
		assert.NotNil(t, e, name)
	}
}

func TestFileLoad_types(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "typed.csv")
	require.Nil(t, os.WriteFile(fileName, []byte("k,x\n1,a\n2,3\n"), 0o644))

	f, _ := NewFiles(FileFieldTypes([]DataTypes{DTint, DTint}))
	require.Nil(t, f.Open(fileName))
	df, e := FileLoad(f)
	require.Nil(t, e)
	assert.True(t, df.Column("x").IsNull(0))
	assert.Equal(t, 3, df.Column("x").Element(1))

	f, _ = NewFiles(FileFieldTypes([]DataTypes{DTint, DTint}), FileStrict(true))
	require.Nil(t, f.Open(fileName))
	_, e = FileLoad(f)
	assert.NotNil(t, e)

	f, _ = NewFiles(FileHeader(false), FileFieldNames([]string{"c1", "c2"}))
	require.Nil(t, f.Open(fileName))
	df, e = FileLoad(f)
	require.Nil(t, e)
	assert.Equal(t, 3, df.RowCount())
	assert.Equal(t, DTstring, df.Column("c1").DataType())
}

func TestFileSep(t *testing.T) {
	_, e := NewFiles(FileSep('"'))
	assert.NotNil(t, e)

	f, e := NewFiles(FileSep(';'))
	assert.Nil(t, e)
	assert.Equal(t, ';', f.Sep)
}
