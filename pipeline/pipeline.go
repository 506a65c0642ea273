// Package pipeline runs the download-or-load, label and report steps for one survey quarter.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/invertedv/pnad"
	"github.com/invertedv/pnad/labels"
)

const DefaultPreview = 5

// Source supplies the raw extract for a quarter.
type Source interface {
	Fetch(ctx context.Context, year, quarter int, columns []string) (*pnad.DF, error)
}

// Sink receives the final table in addition to the CSV.
type Sink interface {
	Save(tableName string, df *pnad.DF) error
}

type Config struct {
	Year    int
	Quarter int
	Dir     string // directory of the CSV; "" is the working directory
	Preview int    // rows printed by the report
}

// FileName is the CSV name for a quarter.
func FileName(year, quarter int) string {
	return fmt.Sprintf("PNAD_Dados_Tableau_Ready_COMMA_%dT%d.csv", year, quarter)
}

// Path is where the CSV for cfg lives.
func (cfg Config) Path() string {
	return filepath.Join(cfg.Dir, FileName(cfg.Year, cfg.Quarter))
}

type Pipeline struct {
	cfg    Config
	src    Source
	sink   Sink
	table  string
	out    io.Writer
	logger *slog.Logger
}

// Opt sets a property of a Pipeline.
type Opt func(p *Pipeline) error

func New(cfg Config, src Source, opts ...Opt) (*Pipeline, error) {
	if src == nil {
		return nil, fmt.Errorf("nil source")
	}

	if cfg.Preview <= 0 {
		cfg.Preview = DefaultPreview
	}

	p := &Pipeline{
		cfg:    cfg,
		src:    src,
		out:    os.Stdout,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if e := opt(p); e != nil {
			return nil, e
		}
	}

	return p, nil
}

// *********** Setters ***********

func WithOutput(w io.Writer) Opt {
	return func(p *Pipeline) error {
		if w == nil {
			return fmt.Errorf("nil writer")
		}

		p.out = w
		return nil
	}
}

func WithLogger(l *slog.Logger) Opt {
	return func(p *Pipeline) error {
		if l == nil {
			return fmt.Errorf("nil logger")
		}

		p.logger = l
		return nil
	}
}

// WithSink also saves the final table to tableName through sink.
func WithSink(sink Sink, tableName string) Opt {
	return func(p *Pipeline) error {
		if sink == nil || tableName == "" {
			return fmt.Errorf("sink needs a table name")
		}

		p.sink, p.table = sink, tableName
		return nil
	}
}

// *********** Run ***********

// Run builds the CSV if it isn't there yet, otherwise loads it, then prints the report.
func (p *Pipeline) Run(ctx context.Context) (*pnad.DF, error) {
	path := p.cfg.Path()

	var (
		df *pnad.DF
		e  error
	)

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if df, e = p.load(path); e != nil {
			return nil, e
		}
	case errors.Is(statErr, fs.ErrNotExist):
		if df, e = p.build(ctx, path); e != nil {
			return nil, e
		}
	default:
		return nil, fmt.Errorf("%w: %w", ErrParse, statErr)
	}

	if p.sink != nil {
		p.logger.Info("exporting", "table", p.table, "rows", df.RowCount())
		if e = p.sink.Save(p.table, df); e != nil {
			return nil, fmt.Errorf("%w: %w", ErrExport, e)
		}
	}

	if e = Report(p.out, df, p.cfg.Preview); e != nil {
		return nil, e
	}

	return df, nil
}

func (p *Pipeline) build(ctx context.Context, path string) (*pnad.DF, error) {
	p.logger.Info("file not found, downloading and processing PNAD data",
		"file", path, "year", p.cfg.Year, "quarter", p.cfg.Quarter)

	var (
		raw, df *pnad.DF
		e       error
	)
	if raw, e = p.src.Fetch(ctx, p.cfg.Year, p.cfg.Quarter, labels.SourceColumns()); e != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, e)
	}

	p.logger.Info("applying labels", "rows", raw.RowCount())
	if df, e = labels.Normalize(raw); e != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, e)
	}

	var f *pnad.Files
	if f, e = pnad.NewFiles(); e != nil {
		return nil, e
	}

	if e = f.Save(path, df); e != nil {
		return nil, e
	}

	p.logger.Info("processing complete", "file", path, "observations", df.RowCount())

	return df, nil
}

func (p *Pipeline) load(path string) (*pnad.DF, error) {
	var (
		f  *pnad.Files
		df *pnad.DF
		e  error
	)
	if f, e = pnad.NewFiles(); e != nil {
		return nil, e
	}

	if e = f.Open(path); e != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, e)
	}

	if df, e = pnad.FileLoad(f); e != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, e)
	}

	if df.RowCount() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	if !slices.Equal(df.ColumnNames(), labels.OutputColumns()) {
		p.logger.Warn("column layout differs from the current one", "file", path, "columns", df.ColumnNames())
	} else if df, e = p.conform(df); e != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, e)
	}

	p.logger.Info("clean and Tableau-ready data loaded", "file", path, "rows", df.RowCount())

	return df, nil
}

// conform gives df the types Normalize produces. Inference alone can't recover them: a column
// with no values reads back as DTstring.
func (p *Pipeline) conform(df *pnad.DF) (*pnad.DF, error) {
	types := labels.OutputTypes()
	for ind, col := range df.Columns() {
		if col.DataType() == types[ind] {
			continue
		}

		p.logger.Debug("coercing column", "column", col.Name(), "from", col.DataType(), "to", types[ind])
		fixed, e := pnad.NewCol(col.Coerce(types[ind]), pnad.ColName(col.Name()))
		if e != nil {
			return nil, e
		}

		if e := df.ReplaceColumn(fixed); e != nil {
			return nil, e
		}
	}

	return df, nil
}
