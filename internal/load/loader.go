//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package load transfers a staged dataset into the warehouse. Loading is a
// strict protocol: all three dimension tables commit before any fact batch
// begins, enforced by the loader itself rather than assumed from caller
// discipline. Within a table, records load in bounded batches, each wrapped
// in one transaction; a failed batch commits nothing. Transient failures are
// retried with exponential backoff, constraint violations abort the run with
// the offending batch and record identified. Already-committed batches stay
// committed on abort.
package load

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"

	"github.com/dmartlab/martgen/internal/datagen"
	"github.com/dmartlab/martgen/internal/logging"
	"github.com/dmartlab/martgen/internal/model"
	"github.com/dmartlab/martgen/internal/stage"
)

// DB is the warehouse surface the loader needs. *pgxpool.Pool satisfies it;
// tests substitute a fake.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config holds loader configuration.
type Config struct {
	// BatchSize is the number of rows per transaction.
	BatchSize int

	// Workers bounds concurrent fact batch submission.
	Workers int

	// MaxRetries is the number of retries per batch after a transient
	// failure. Zero disables retrying.
	MaxRetries int

	// RetryBackoff is the first retry delay; it doubles per attempt.
	RetryBackoff time.Duration

	// Truncate empties the target tables before loading. Without it the
	// loader refuses non-empty targets: it never deduplicates, so loading
	// into a populated warehouse would silently double the data.
	Truncate bool
}

// Loader loads staged datasets into the warehouse.
type Loader struct {
	db  DB
	cfg Config

	mu         sync.Mutex
	dimsLoaded bool
}

// New creates a Loader, applying defaults for unset config fields.
func New(db DB, cfg Config) *Loader {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 5000
	}
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	return &Loader{db: db, cfg: cfg}
}

// Run loads the full dataset: target checks, dimensions, barrier, facts,
// then identity sequence reset so ad hoc inserts don't collide with loaded
// keys.
func (l *Loader) Run(ctx context.Context, ds *stage.Dataset) error {
	if err := l.prepareTables(ctx); err != nil {
		return err
	}
	if err := l.LoadDimensions(ctx, ds); err != nil {
		return err
	}
	if err := l.LoadFacts(ctx, ds.Transactions); err != nil {
		return err
	}
	return l.resetIdentities(ctx)
}

// LoadDimensions loads the three dimension tables concurrently and releases
// the fact barrier once all of them are committed.
func (l *Loader) LoadDimensions(ctx context.Context, ds *stage.Dataset) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return l.loadTable(ctx, model.TableDates, model.DateColumns, dateTuples(ds.Dates))
	})
	g.Go(func() error {
		return l.loadTable(ctx, model.TableCustomers, model.CustomerColumns, customerTuples(ds.Customers))
	})
	g.Go(func() error {
		return l.loadTable(ctx, model.TableProducts, model.ProductColumns, productTuples(ds.Products))
	})

	if err := g.Wait(); err != nil {
		return err
	}

	l.mu.Lock()
	l.dimsLoaded = true
	l.mu.Unlock()

	logging.Info().Msg("All dimension tables committed; fact loading unblocked")
	return nil
}

// LoadFacts loads the fact table through a bounded worker pool. Batch
// completion order does not matter; facts carry no ordering dependency among
// themselves. Calling LoadFacts before LoadDimensions has committed is
// ErrProtocol.
func (l *Loader) LoadFacts(ctx context.Context, transactions []model.Transaction) error {
	l.mu.Lock()
	ready := l.dimsLoaded
	l.mu.Unlock()
	if !ready {
		return ErrProtocol
	}

	tuples := transactionTuples(transactions)
	batches := chunk(tuples, l.cfg.BatchSize)
	progress := datagen.NewProgressReporter(model.TableTransactions,
		int64(len(tuples)), int64(l.cfg.BatchSize*4))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Workers)

	for i, batch := range batches {
		g.Go(func() error {
			if err := l.loadBatch(ctx, model.TableTransactions, model.TransactionColumns, batch, i); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	progress.Done()
	return nil
}

// loadTable loads one table's records sequentially in bounded batches.
func (l *Loader) loadTable(ctx context.Context, table string, columns []string, tuples []string) error {
	progress := datagen.NewProgressReporter(table, int64(len(tuples)), int64(l.cfg.BatchSize*4))
	for i, batch := range chunk(tuples, l.cfg.BatchSize) {
		if err := l.loadBatch(ctx, table, columns, batch, i); err != nil {
			return err
		}
		progress.Update(int64(len(batch)))
	}
	progress.Done()
	return nil
}

// loadBatch commits one batch in a single transaction, retrying transient
// failures with exponential backoff. Integrity violations abort immediately.
func (l *Loader) loadBatch(ctx context.Context, table string, columns []string, tuples []string, batchIdx int) error {
	if len(tuples) == 0 {
		return nil
	}
	sql := insertSQL(table, columns, tuples)

	for attempt := 0; ; attempt++ {
		err := l.execBatch(ctx, sql)
		if err == nil {
			return nil
		}

		if pgErr, ok := integrityViolation(err); ok {
			return &IntegrityError{
				Table:  table,
				Batch:  batchIdx,
				Record: l.locateOffender(ctx, table, columns, tuples),
				Code:   pgErr.Code,
				Err:    err,
			}
		}

		if !isTransient(err) || attempt >= l.cfg.MaxRetries {
			return fmt.Errorf("load stage: table %s batch %d failed after %d attempt(s): %w",
				table, batchIdx, attempt+1, err)
		}

		backoff := l.cfg.RetryBackoff << attempt
		logging.Warn().
			Str("table", table).
			Int("batch", batchIdx).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(err).
			Msg("Transient load failure, retrying batch")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func (l *Loader) execBatch(ctx context.Context, sql string) error {
	tx, err := l.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// locateOffender replays a failed batch row by row inside a transaction that
// is always rolled back, to report which record tripped the constraint.
// Returns -1 if the batch unexpectedly replays clean.
func (l *Loader) locateOffender(ctx context.Context, table string, columns []string, tuples []string) int {
	tx, err := l.db.Begin(ctx)
	if err != nil {
		return -1
	}
	defer tx.Rollback(ctx)

	for i, tuple := range tuples {
		if _, err := tx.Exec(ctx, insertSQL(table, columns, []string{tuple})); err != nil {
			return i
		}
	}
	return -1
}

// prepareTables enforces the rerun policy: truncate on request, otherwise
// refuse non-empty targets.
func (l *Loader) prepareTables(ctx context.Context) error {
	tables := []string{model.TableTransactions, model.TableCustomers, model.TableProducts, model.TableDates}

	if l.cfg.Truncate {
		logging.Info().Msg("Truncating warehouse tables")
		_, err := l.db.Exec(ctx, fmt.Sprintf(
			"TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", ")))
		if err != nil {
			return fmt.Errorf("failed to truncate warehouse tables: %w", err)
		}
		return nil
	}

	for _, table := range tables {
		var populated bool
		err := l.db.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", table)).Scan(&populated)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if populated {
			return fmt.Errorf("table %s is not empty; the loader never deduplicates, re-run with --truncate or clear the warehouse first", table)
		}
	}
	return nil
}

func (l *Loader) resetIdentities(ctx context.Context) error {
	keys := map[string]string{
		model.TableCustomers:    "customer_id",
		model.TableProducts:     "product_id",
		model.TableDates:        "date_id",
		model.TableTransactions: "transaction_id",
	}
	for table, column := range keys {
		_, err := l.db.Exec(ctx, fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', '%s'), (SELECT COALESCE(MAX(%s), 1) FROM %s))",
			table, column, column, table))
		if err != nil {
			return fmt.Errorf("failed to reset identity for %s: %w", table, err)
		}
	}
	return nil
}

func insertSQL(table string, columns []string, tuples []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ", "), strings.Join(tuples, ", "))
}

func chunk(tuples []string, size int) [][]string {
	var batches [][]string
	for len(tuples) > size {
		batches = append(batches, tuples[:size])
		tuples = tuples[size:]
	}
	if len(tuples) > 0 {
		batches = append(batches, tuples)
	}
	return batches
}
