//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package stage reads and writes the staged dataset: one CSV file per entity
// with a header row, column order matching the warehouse schema. Staged
// files are the contract between the generate and load commands, so a
// dataset generated with a fixed seed and config writes byte-identical
// files on every run.
package stage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmartlab/martgen/internal/logging"
	"github.com/dmartlab/martgen/internal/model"
)

// Staged file names, one per entity type.
const (
	DatesFile        = "date_dimension.csv"
	CustomersFile    = "customers.csv"
	ProductsFile     = "products.csv"
	TransactionsFile = "sales_transactions.csv"
)

// Dataset is a complete staged dataset.
type Dataset struct {
	Dates        []model.DateRecord
	Customers    []model.Customer
	Products     []model.Product
	Transactions []model.Transaction
}

// WriteDataset stages the dataset under dir, creating it if needed.
func WriteDataset(dir string, ds *Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	if err := writeFile(filepath.Join(dir, DatesFile), model.DateColumns,
		len(ds.Dates), func(i int) []string { return dateFields(ds.Dates[i]) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, CustomersFile), model.CustomerColumns,
		len(ds.Customers), func(i int) []string { return customerFields(ds.Customers[i]) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, ProductsFile), model.ProductColumns,
		len(ds.Products), func(i int) []string { return productFields(ds.Products[i]) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, TransactionsFile), model.TransactionColumns,
		len(ds.Transactions), func(i int) []string { return transactionFields(ds.Transactions[i]) }); err != nil {
		return err
	}

	logging.Info().
		Str("dir", dir).
		Int("dates", len(ds.Dates)).
		Int("customers", len(ds.Customers)).
		Int("products", len(ds.Products)).
		Int("transactions", len(ds.Transactions)).
		Msg("Staged dataset written")

	return nil
}

// ReadDataset reads a complete staged dataset from dir.
func ReadDataset(dir string) (*Dataset, error) {
	ds := &Dataset{}
	var err error

	ds.Dates, err = readFile(filepath.Join(dir, DatesFile), model.DateColumns, parseDate)
	if err != nil {
		return nil, err
	}
	ds.Customers, err = readFile(filepath.Join(dir, CustomersFile), model.CustomerColumns, parseCustomer)
	if err != nil {
		return nil, err
	}
	ds.Products, err = readFile(filepath.Join(dir, ProductsFile), model.ProductColumns, parseProduct)
	if err != nil {
		return nil, err
	}
	ds.Transactions, err = readFile(filepath.Join(dir, TransactionsFile), model.TransactionColumns, parseTransaction)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func writeFile(path string, columns []string, n int, fields func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("%s: failed to write header: %w", path, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(fields(i)); err != nil {
			return fmt.Errorf("%s: failed to write record %d: %w", path, i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%s: flush failed: %w", path, err)
	}
	return f.Close()
}

func readFile[T any](path string, columns []string, parse func([]string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staged file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(columns)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", path, err)
	}
	for i, col := range columns {
		if header[i] != col {
			return nil, fmt.Errorf("%s: unexpected header column %d: got %q, want %q",
				path, i+1, header[i], col)
		}
	}

	var records []T
	for row := 2; ; row++ {
		fields, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: row %d: %w", path, row, err)
		}
		rec, err := parse(fields)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, row, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
