package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmartlab/martgen/internal/db"
	"github.com/dmartlab/martgen/internal/load"
	"github.com/dmartlab/martgen/internal/logging"
	"github.com/dmartlab/martgen/internal/model"
	"github.com/dmartlab/martgen/internal/stage"
)

var (
	loadBatchSize  int
	loadWorkers    int
	loadMaxRetries int
	loadTruncate   bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the staged dataset into the warehouse",
	Long: `Load the staged CSV files into the warehouse. Dimension tables load
first (concurrently), then sales transactions load through a bounded worker
pool. Each batch commits atomically; transient failures are retried with
backoff, constraint violations abort the run with the offending batch and
record identified.

The loader never deduplicates: it refuses non-empty target tables unless
--truncate is given.

Example:
  martgen load --connection "postgres://..." --batch-size 5000 --workers 4`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().IntVar(&loadBatchSize, "batch-size", 0,
		"rows per transaction")
	loadCmd.Flags().IntVar(&loadWorkers, "workers", 0,
		"concurrent fact-loading workers")
	loadCmd.Flags().IntVar(&loadMaxRetries, "max-retries", -1,
		"retries per batch on transient failures")
	loadCmd.Flags().BoolVar(&loadTruncate, "truncate", false,
		"truncate warehouse tables before loading")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadBatchSize > 0 {
		cfg.Load.BatchSize = loadBatchSize
	}
	if loadWorkers > 0 {
		cfg.Load.Workers = loadWorkers
	}
	if loadMaxRetries >= 0 {
		cfg.Load.MaxRetries = loadMaxRetries
	}
	if loadTruncate {
		cfg.Load.Truncate = true
	}

	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ds, err := stage.ReadDataset(cfg.DataDir)
	if err != nil {
		return err
	}

	logging.Info().
		Str("data_dir", cfg.DataDir).
		Int("dates", len(ds.Dates)).
		Int("customers", len(ds.Customers)).
		Int("products", len(ds.Products)).
		Int("transactions", len(ds.Transactions)).
		Int("batch_size", cfg.Load.BatchSize).
		Int("workers", cfg.Load.Workers).
		Msg("Loading staged dataset")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A shutdown signal stops submission of further batches; batches
	// already committed stay committed.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	// One extra connection over the worker pool for dimension loads and
	// bookkeeping statements.
	pool, err := db.Connect(ctx, cfg.Connection, int32(cfg.Load.Workers)+1)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	// Surface a previous load before the rerun policy kicks in, so the
	// operator knows what populated the warehouse.
	if loadedAt, err := db.GetMetadataValue(ctx, pool, "loaded_at"); err == nil {
		logging.Warn().
			Str("loaded_at", loadedAt).
			Msg("Warehouse carries a previous load")
	}

	loader := load.New(pool, load.Config{
		BatchSize:  cfg.Load.BatchSize,
		Workers:    cfg.Load.Workers,
		MaxRetries: cfg.Load.MaxRetries,
		Truncate:   cfg.Load.Truncate,
	})

	if err := loader.Run(ctx, ds); err != nil {
		return err
	}

	counts := map[string]int64{
		model.TableDates:        int64(len(ds.Dates)),
		model.TableCustomers:    int64(len(ds.Customers)),
		model.TableProducts:     int64(len(ds.Products)),
		model.TableTransactions: int64(len(ds.Transactions)),
	}
	if err := db.SaveLoadMetadata(ctx, pool, counts); err != nil {
		return fmt.Errorf("failed to save load metadata: %w", err)
	}

	logging.Info().Msg("Load complete")
	return nil
}
