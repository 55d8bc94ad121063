package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TFMV/AddressKey/internal/keys"
	"github.com/TFMV/AddressKey/pkg/db"
	"github.com/TFMV/AddressKey/pkg/utils"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate keys for a file or table of addresses",
	Long: `Reads addresses from a CSV file (--csv, columns id and address) or from the
configured source table (--db), expands ranges and writes one key per address number.
Keys go to CSV (--out, default stdout) or, with --db, to a new run in the keys table.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		csvPath, _ := cmd.Flags().GetString("csv")
		outPath, _ := cmd.Flags().GetString("out")
		useDB, _ := cmd.Flags().GetBool("db")
		report, _ := cmd.Flags().GetBool("report")
		description, _ := cmd.Flags().GetString("description")
		workers, _ := cmd.Flags().GetInt("workers")
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		if csvPath == "" && !useDB {
			return eris.New("batch: one of --csv or --db is required")
		}
		if report && !useDB {
			return eris.New("batch: --report requires --db")
		}

		opts := keys.Options{Workers: cfg.Batch.Workers, BatchSize: cfg.Batch.BatchSize}
		if workers > 0 {
			opts.Workers = workers
		}
		if batchSize > 0 {
			opts.BatchSize = batchSize
		}

		var (
			src  keys.Source
			sink keys.Sink
		)

		if csvPath != "" {
			f, err := os.Open(csvPath)
			if err != nil {
				return eris.Wrap(err, "batch: open csv")
			}
			defer f.Close() //nolint:errcheck

			csvSrc, err := utils.NewCsvSource(f)
			if err != nil {
				return err
			}
			src = csvSrc
		}

		var (
			store *db.KeyStore
			runID int
		)
		if useDB {
			pool, err := db.NewConnection(ctx, cfg.DBCreds)
			if err != nil {
				return err
			}
			defer pool.Close()

			store = db.NewKeyStore(pool, db.Tables{
				Source: cfg.DBCreds.SourceTable,
				Keys:   cfg.DBCreds.KeysTable,
				Runs:   cfg.DBCreds.RunsTable,
			})
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			runID, err = store.CreateRun(ctx, description)
			if err != nil {
				return err
			}
			if src == nil {
				src = store
			}
			sink = store.Writer(runID)
		} else {
			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return eris.Wrap(err, "batch: create output")
				}
				defer f.Close() //nolint:errcheck
				out = f
			}
			csvSink, err := utils.NewCsvSink(out)
			if err != nil {
				return err
			}
			sink = csvSink
		}

		start := time.Now()
		stats, err := keys.NewProcessor(std, opts, zap.L()).Run(ctx, src, sink)
		if err != nil {
			if store != nil {
				if clearErr := store.ClearRun(context.Background(), runID); clearErr != nil {
					zap.L().Error("unable to clear failed run", zap.Int("run_id", runID), zap.Error(clearErr))
				}
			}
			return err
		}

		zap.L().Info("batch complete",
			zap.Int("run_id", runID),
			zap.Int64("addresses", stats.Addresses),
			zap.Int64("keys", stats.Keys),
			zap.Int64("failed", stats.Failed),
			zap.Duration("elapsed", time.Since(start)))

		if report {
			groups, err := store.Duplicates(ctx, runID)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), runID, groups)
		}
		return nil
	},
}

func writeReport(out io.Writer, runID int, groups []db.DuplicateGroup) error {
	if len(groups) == 0 {
		fmt.Fprintf(out, "Run %d: no duplicate keys.\n", runID)
		return nil
	}

	fmt.Fprintf(out, "Run %d: %d duplicate keys\n", runID, len(groups))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tADDRESSES\tIDS")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%d\t%s\n", g.Key, len(g.AddressIDs), strings.Join(g.AddressIDs, ","))
	}
	return w.Flush()
}

func init() {
	batchCmd.Flags().String("csv", "", "input CSV file with id and address columns")
	batchCmd.Flags().String("out", "", "output CSV file (default stdout)")
	batchCmd.Flags().Bool("db", false, "use Postgres: read the source table when --csv is not set and write keys to a new run")
	batchCmd.Flags().Bool("report", false, "print duplicate keys after a database run")
	batchCmd.Flags().String("description", "address key batch", "run description stored with --db")
	batchCmd.Flags().Int("workers", 0, "number of workers (default from config)")
	batchCmd.Flags().Int("batch-size", 0, "records per write (default from config)")

	rootCmd.AddCommand(batchCmd)
}
