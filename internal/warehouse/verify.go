//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmartlab/martgen/internal/model"
)

// DB is satisfied by *pgxpool.Pool and *pgx.Conn.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Report is the outcome of post-load verification.
type Report struct {
	// Counts holds the row count per table.
	Counts map[string]int64

	// DanglingFacts is the number of fact rows whose customer, product or
	// date key does not resolve to a dimension row.
	DanglingFacts int64

	// AmountViolations is the number of fact rows where total_amount
	// disagrees with quantity*unit_price - discount_amount.
	AmountViolations int64

	// Samples holds a few joined transactions for eyeballing.
	Samples []Sample
}

// Sample is one joined fact row.
type Sample struct {
	Customer  string
	Product   string
	DateValue string
	Total     float64
}

// Ok reports whether verification found no integrity problems.
func (r *Report) Ok() bool {
	return r.DanglingFacts == 0 && r.AmountViolations == 0
}

// Verify runs the post-load integrity checks: row counts, a join-based
// dangling-reference check over all three foreign keys, and a SQL-side check
// of the total_amount invariant.
func Verify(ctx context.Context, db DB) (*Report, error) {
	report := &Report{Counts: make(map[string]int64)}

	tables := []string{model.TableCustomers, model.TableProducts, model.TableDates, model.TableTransactions}
	for _, table := range tables {
		var count int64
		if err := db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		report.Counts[table] = count
	}

	err := db.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM sales_transactions st
        LEFT JOIN customers c ON st.customer_id = c.customer_id
        LEFT JOIN products p ON st.product_id = p.product_id
        LEFT JOIN date_dimension d ON st.date_id = d.date_id
        WHERE c.customer_id IS NULL
           OR p.product_id IS NULL
           OR d.date_id IS NULL
    `).Scan(&report.DanglingFacts)
	if err != nil {
		return nil, fmt.Errorf("dangling reference check failed: %w", err)
	}

	err = db.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM sales_transactions
        WHERE total_amount <> round(quantity * unit_price - discount_amount, 2)
           OR total_amount < 0
           OR discount_amount > round(quantity * unit_price, 2)
    `).Scan(&report.AmountViolations)
	if err != nil {
		return nil, fmt.Errorf("amount invariant check failed: %w", err)
	}

	rows, err := db.Query(ctx, `
        SELECT c.first_name || ' ' || c.last_name, p.product_name, d.date_value::text, st.total_amount
        FROM sales_transactions st
        JOIN customers c ON st.customer_id = c.customer_id
        JOIN products p ON st.product_id = p.product_id
        JOIN date_dimension d ON st.date_id = d.date_id
        ORDER BY st.transaction_id
        LIMIT 5
    `)
	if err != nil {
		return nil, fmt.Errorf("sample query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.Customer, &s.Product, &s.DateValue, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}
		report.Samples = append(report.Samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
