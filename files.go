package pnad

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// All code interacting with delimited files is here

const (
	Sep      = ','
	Header   = true
	FileMode = 0o644
)

type Files struct {
	FieldNames []string
	FieldTypes []DataTypes
	Sep        rune
	Header     bool
	Strict     bool

	file     *os.File
	fileName string
}

// FileOpt sets a property of Files.
type FileOpt func(f *Files) error

func NewFiles(opts ...FileOpt) (*Files, error) {
	f := &Files{
		Sep:    Sep,
		Header: Header,
	}

	for _, opt := range opts {
		if e := opt(f); e != nil {
			return nil, e
		}
	}

	return f, nil
}

// *********** Setters ***********

func FileSep(sep rune) FileOpt {
	return func(f *Files) error {
		if sep == '"' || sep == '\r' || sep == '\n' || !utf8.ValidRune(sep) {
			return fmt.Errorf("invalid separator %q", sep)
		}

		f.Sep = sep
		return nil
	}
}

func FileHeader(header bool) FileOpt {
	return func(f *Files) error {
		f.Header = header
		return nil
	}
}

// FileStrict makes FileLoad fail on values that don't match FieldTypes rather than nulling them.
func FileStrict(strict bool) FileOpt {
	return func(f *Files) error {
		f.Strict = strict
		return nil
	}
}

func FileFieldNames(names []string) FileOpt {
	return func(f *Files) error {
		f.FieldNames = names
		return nil
	}
}

func FileFieldTypes(types []DataTypes) FileOpt {
	return func(f *Files) error {
		f.FieldTypes = types
		return nil
	}
}

// *********** Methods ***********

func (f *Files) Open(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Open(fileName)

	return e
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Close() error {
	if f.file != nil {
		e := f.file.Close()
		f.file = nil
		return e
	}

	return fmt.Errorf("no open files")
}

// Save writes df to fileName. The whole file is rendered in memory, written next to fileName
// and renamed over it, so fileName is never left half-written.
func (f *Files) Save(fileName string, df *DF) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = f.Sep

	if f.Header {
		if e := w.Write(df.ColumnNames()); e != nil {
			return e
		}
	}

	cols := df.Columns()
	line := make([]string, len(cols))
	for row := 0; row < df.RowCount(); row++ {
		for ind, col := range cols {
			line[ind] = col.ElementString(row)
		}

		if e := w.Write(line); e != nil {
			return e
		}
	}

	w.Flush()
	if e := w.Error(); e != nil {
		return e
	}

	tmp, e := os.CreateTemp(filepath.Dir(fileName), filepath.Base(fileName)+".*.tmp")
	if e != nil {
		return e
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, e := tmp.Write(buf.Bytes()); e != nil {
		_ = tmp.Close()
		return e
	}

	// CreateTemp makes the file owner-only
	if e := tmp.Chmod(FileMode); e != nil {
		_ = tmp.Close()
		return e
	}

	if e := tmp.Close(); e != nil {
		return e
	}

	f.fileName = fileName

	return os.Rename(tmpName, fileName)
}

// FileLoad reads the file opened by f. Empty fields are nulls. Column types come from
// f.FieldTypes if set, otherwise they are inferred from the data.
func FileLoad(f *Files) (*DF, error) {
	if f.file == nil {
		return nil, fmt.Errorf("no open file in FileLoad")
	}

	defer func() { _ = f.Close() }()

	return readDelimited(f, f.file)
}

func readDelimited(f *Files, rdr io.Reader) (*DF, error) {
	r := csv.NewReader(rdr)
	r.Comma = f.Sep

	var (
		records [][]string
		e       error
	)
	if records, e = r.ReadAll(); e != nil {
		return nil, e
	}

	for ind, rec := range records {
		for _, field := range rec {
			if !utf8.ValidString(field) {
				return nil, fmt.Errorf("line %d: invalid UTF-8", ind+1)
			}
		}
	}

	names := f.FieldNames
	if f.Header {
		if len(records) == 0 {
			return nil, fmt.Errorf("%s: missing header", f.fileName)
		}

		if names == nil {
			names = records[0]
		}

		records = records[1:]
	}

	if names == nil {
		return nil, fmt.Errorf("no field names: file has no header and FieldNames not set")
	}

	if f.FieldTypes != nil && len(f.FieldTypes) != len(names) {
		return nil, fmt.Errorf("have %d field types for %d fields", len(f.FieldTypes), len(names))
	}

	// csv.Reader already insists every record has the same number of fields
	if len(records) > 0 && len(records[0]) != len(names) {
		return nil, fmt.Errorf("have %d field names for %d fields", len(names), len(records[0]))
	}

	var cols []*Col
	for c, name := range names {
		raw := make([]string, len(records))
		for row, rec := range records {
			raw[row] = rec[c]
		}

		dt := inferType(raw)
		if f.FieldTypes != nil {
			dt = f.FieldTypes[c]
		}

		v := MakeVector(dt, len(raw))
		for row, x := range raw {
			if x == "" {
				v.SetNull(row)
				continue
			}

			val, ok := toDataType(x, dt)
			if !ok {
				if f.Strict {
					return nil, fmt.Errorf("field %s, row %d: cannot convert %q to %s", name, row+1, x, dt)
				}

				v.SetNull(row)
				continue
			}

			v.set(val, row)
		}

		col, e := NewCol(v, ColName(name))
		if e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}
