// Package sql saves tables to ClickHouse or Postgres.
package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/invertedv/pnad"
)

// All code interacting with a database is here

var (
	//go:embed skeletons/clickhouse/create.txt
	chCreate string
	//go:embed skeletons/postgres/create.txt
	pgCreate string

	//go:embed skeletons/clickhouse/types.txt
	chTypes string
	//go:embed skeletons/postgres/types.txt
	pgTypes string

	//go:embed skeletons/clickhouse/fields.txt
	chFields string
	//go:embed skeletons/postgres/fields.txt
	pgFields string

	//go:embed skeletons/clickhouse/dropIf.txt
	chDropIf string
	//go:embed skeletons/postgres/dropIf.txt
	pgDropIf string
)

const (
	ch = "clickhouse"
	pg = "postgres"
)

type Dialect struct {
	db      *sql.DB
	dialect string

	dtTypes []string
	dbTypes []string

	create string
	dropIf string
	fields string

	bufSize int // in MB
}

func NewDialect(dialect string, db *sql.DB) (*Dialect, error) {
	dialect = strings.ToLower(dialect)

	d := &Dialect{db: db, dialect: dialect, bufSize: 16}

	var types string
	switch d.dialect {
	case ch:
		d.create, d.fields, d.dropIf = chCreate, chFields, chDropIf
		types = chTypes
	case pg:
		d.create, d.fields, d.dropIf = pgCreate, pgFields, pgDropIf
		types = pgTypes
	default:
		return nil, fmt.Errorf("no skeletons for database %s", dialect)
	}

	for _, lm := range strings.Split(types, "\n") {
		if strings.TrimSpace(lm) == "" {
			continue
		}

		t := strings.Split(lm, ",")
		if len(t) != 2 {
			return nil, fmt.Errorf("bad type line in NewDialect: %s", lm)
		}

		if pnad.DTFromString(t[0]) == pnad.DTunknown {
			return nil, fmt.Errorf("unknown data type in NewDialect")
		}

		d.dtTypes = append(d.dtTypes, t[0])
		d.dbTypes = append(d.dbTypes, strings.TrimSpace(t[1]))
	}

	return d, nil
}

// ***************** Methods *****************

func (d *Dialect) BufSize() int {
	return d.bufSize
}

func (d *Dialect) SetBufSize(mb int) {
	d.bufSize = mb
}

func (d *Dialect) Close() error {
	return d.db.Close()
}

func (d *Dialect) DB() *sql.DB {
	return d.db
}

func (d *Dialect) DialectName() string {
	return d.dialect
}

// Create makes tableName with the columns of df. orderBy is only used by ClickHouse; it defaults
// to the first column.
func (d *Dialect) Create(tableName, orderBy string, df *pnad.DF) error {
	create, e := d.createSQL(tableName, orderBy, df)
	if e != nil {
		return e
	}

	_, e = d.db.Exec(create)

	return e
}

func (d *Dialect) DropTable(tableName string) error {
	_, e := d.db.Exec(strings.ReplaceAll(d.dropIf, "?TableName", tableName))

	return e
}

func (d *Dialect) Exists(tableName string) (bool, error) {
	if d.DialectName() == ch {
		var exist uint8
		if e := d.db.QueryRow(fmt.Sprintf("EXISTS TABLE %s", tableName)).Scan(&exist); e != nil {
			return false, e
		}

		return exist == 1, nil
	}

	var exist any
	if e := d.db.QueryRow(fmt.Sprintf("SELECT to_regclass('%s')", tableName)).Scan(&exist); e != nil {
		return false, e
	}

	return exist != nil, nil
}

// Save replaces tableName with the contents of df.
func (d *Dialect) Save(tableName string, df *pnad.DF) error {
	exists, e := d.Exists(tableName)
	if e != nil {
		return e
	}

	if exists {
		if e := d.DropTable(tableName); e != nil {
			return e
		}
	}

	if e := d.Create(tableName, "", df); e != nil {
		return e
	}

	return d.IterSave(tableName, df)
}

// IterSave inserts the rows of df in batches of about BufSize MB.
func (d *Dialect) IterSave(tableName string, df *pnad.DF) error {
	for _, qry := range d.insertSQL(tableName, df) {
		if _, e := d.db.Exec(qry); e != nil {
			return e
		}
	}

	return nil
}

// ToString returns a string version of val that can be placed into SQL
func (d *Dialect) ToString(val any) string {
	if val == nil {
		return "NULL"
	}

	switch x := val.(type) {
	case string:
		if d.DialectName() == ch {
			x = strings.ReplaceAll(x, `\`, `\\`)
		}

		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case float64:
		return pnad.FormatFloat(x)
	case int:
		return fmt.Sprintf("%d", x)
	}

	panic(fmt.Errorf("can't make SQL string from %T", val))
}

// ***************** Helpers *****************

func (d *Dialect) createSQL(tableName, orderBy string, df *pnad.DF) (string, error) {
	cols := df.Columns()
	if cols == nil {
		return "", fmt.Errorf("no columns to create %s", tableName)
	}

	if orderBy == "" {
		orderBy = d.quoteIdent(cols[0].Name())
	}

	create := strings.ReplaceAll(d.create, "?TableName", tableName)
	create = strings.Replace(create, "?OrderBy", orderBy, 1)

	var flds []string
	for _, col := range cols {
		var (
			dbType string
			e      error
		)
		if dbType, e = d.dbtype(col.DataType(), col.NullCount() > 0); e != nil {
			return "", e
		}

		field := strings.ReplaceAll(d.fields, "?Field", col.Name())
		field = strings.ReplaceAll(field, "?Type", dbType)
		flds = append(flds, field)
	}

	create = strings.Replace(create, "?fields", strings.Join(flds, ",\n"), 1)

	return create, nil
}

func (d *Dialect) insertSQL(tableName string, df *pnad.DF) []string {
	const (
		bSep   = ','
		bOpen  = '('
		bClose = ')'
	)

	var names []string
	for _, cn := range df.ColumnNames() {
		names = append(names, d.quoteIdent(cn))
	}

	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", tableName, strings.Join(names, ","))
	bsize := d.bufSize * 1024 * 1024

	var (
		out    []string
		buffer []byte
	)
	for row := 0; row < df.RowCount(); row++ {
		if buffer != nil {
			buffer = append(buffer, bSep)
		}

		buffer = append(buffer, bOpen)
		for ind, val := range df.Row(row) {
			if ind > 0 {
				buffer = append(buffer, bSep)
			}

			buffer = append(buffer, d.ToString(val)...)
		}

		buffer = append(buffer, bClose)

		if bsize > 0 && len(buffer) >= bsize {
			out = append(out, prefix+string(buffer))
			buffer = nil
		}
	}

	if buffer != nil {
		out = append(out, prefix+string(buffer))
	}

	return out
}

func (d *Dialect) dbtype(dt pnad.DataTypes, nullable bool) (string, error) {
	pos := pnad.Position(dt.String(), d.dtTypes)
	if pos < 0 {
		return "", fmt.Errorf("cannot find type %s to map to DB type", dt.String())
	}

	if nullable && d.DialectName() == ch {
		return fmt.Sprintf("Nullable(%s)", d.dbTypes[pos]), nil
	}

	return d.dbTypes[pos], nil
}

func (d *Dialect) quoteIdent(name string) string {
	if d.DialectName() == ch {
		return "`" + name + "`"
	}

	return `"` + name + `"`
}
