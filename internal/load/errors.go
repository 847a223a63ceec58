//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package load

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrProtocol reports a violation of the loading protocol: every dimension
// table must be fully committed before any fact batch begins.
var ErrProtocol = errors.New("load protocol violation: dimension tables must be committed before facts")

// IntegrityError reports a constraint violation (duplicate key, dangling
// foreign key, failed check). It is never retried; the run aborts with the
// offending batch and record identified so an operator can resume from a
// known point.
type IntegrityError struct {
	// Table is the target table.
	Table string

	// Batch is the zero-based batch index within the table.
	Batch int

	// Record is the zero-based record index within the batch, or -1 when
	// the offender could not be located.
	Record int

	// Code is the SQLSTATE reported by the warehouse.
	Code string

	// Err is the underlying driver error.
	Err error
}

func (e *IntegrityError) Error() string {
	record := "unknown"
	if e.Record >= 0 {
		record = strconv.Itoa(e.Record)
	}
	return fmt.Sprintf("load stage: integrity violation in table %s, batch %d, record %s (SQLSTATE %s): %v",
		e.Table, e.Batch, record, e.Code, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
