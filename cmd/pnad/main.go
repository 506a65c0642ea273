package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/invertedv/pnad/ibge"
	"github.com/invertedv/pnad/pipeline"
	s "github.com/invertedv/pnad/sql"
)

func main() {
	if e := rootCmd().ExecuteContext(context.Background()); e != nil {
		newLogger(false).Error("CRITICAL ERROR", "err", e)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		year, quarter, preview int
		dir, db, table         string
		verbose                bool
	)

	cmd := &cobra.Command{
		Use:   "pnad",
		Short: "Build a Tableau-ready CSV from the quarterly PNAD Contínua microdata",
		Long: `Downloads one quarter of PNAD Contínua microdata from IBGE, replaces the survey codes
with English labels and writes PNAD_Dados_Tableau_Ready_COMMA_{year}T{quarter}.csv.
If the CSV already exists it is loaded instead. Database credentials for --db are read from the
environment variables host, user, password and db.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)

			opts := []pipeline.Opt{pipeline.WithLogger(logger), pipeline.WithOutput(cmd.OutOrStdout())}
			if db != "" {
				dlct, e := s.Connect(db, os.Getenv("host"), os.Getenv("user"), os.Getenv("password"), os.Getenv("db"))
				if e != nil {
					return fmt.Errorf("connect to %s: %w", db, e)
				}
				defer func() { _ = dlct.Close() }()

				if table == "" {
					table = fmt.Sprintf("pnad_%dt%d", year, quarter)
				}

				opts = append(opts, pipeline.WithSink(dlct, table))
			}

			client, e := ibge.NewClient(ibge.WithLogger(logger))
			if e != nil {
				return e
			}

			p, e := pipeline.New(pipeline.Config{Year: year, Quarter: quarter, Dir: dir, Preview: preview}, client, opts...)
			if e != nil {
				return e
			}

			if _, e := p.Run(cmd.Context()); e != nil {
				return e
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nThe file %s is ready. In Tableau, use comma (,) as the field delimiter.\n",
				pipeline.FileName(year, quarter))

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 2025, "survey year")
	cmd.Flags().IntVar(&quarter, "quarter", 2, "survey quarter (1-4)")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory of the output CSV")
	cmd.Flags().IntVar(&preview, "preview", pipeline.DefaultPreview, "rows shown in the preview")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().StringVar(&db, "db", "", "also save the table to clickhouse or postgres")
	cmd.Flags().StringVar(&table, "table", "", "table name for --db (default pnad_{year}t{quarter})")

	return cmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
