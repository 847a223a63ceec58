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
	"fmt"
	"strings"

	"github.com/dmartlab/martgen/internal/model"
)

// Each entity is rendered as SQL VALUES tuples matching its model column
// order, so a batch becomes one multi-row INSERT.

func dateTuples(records []model.DateRecord) []string {
	tuples := make([]string, len(records))
	for i, d := range records {
		tuples[i] = fmt.Sprintf("(%d, '%s', %d, %d, %d, %d, %d, %d, %t)",
			d.ID,
			d.Value.Format(model.DateLayout),
			d.Year, d.Quarter, d.Month, d.Day,
			d.DayOfWeek, d.WeekOfYear,
			d.IsWeekend,
		)
	}
	return tuples
}

func customerTuples(records []model.Customer) []string {
	tuples := make([]string, len(records))
	for i, c := range records {
		tuples[i] = fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s')",
			c.ID,
			escapeSingleQuote(c.FirstName),
			escapeSingleQuote(c.LastName),
			escapeSingleQuote(c.Email),
			escapeSingleQuote(c.Phone),
			escapeSingleQuote(c.City),
			escapeSingleQuote(c.State),
			escapeSingleQuote(c.Country),
			escapeSingleQuote(c.Segment),
			c.RegistrationDate.Format(model.DateLayout),
		)
	}
	return tuples
}

func productTuples(records []model.Product) []string {
	tuples := make([]string, len(records))
	for i, p := range records {
		tuples[i] = fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', %.2f, %.2f)",
			p.ID,
			escapeSingleQuote(p.Name),
			escapeSingleQuote(p.Category),
			escapeSingleQuote(p.Subcategory),
			escapeSingleQuote(p.Brand),
			p.Price, p.Cost,
		)
	}
	return tuples
}

func transactionTuples(records []model.Transaction) []string {
	tuples := make([]string, len(records))
	for i, t := range records {
		tuples[i] = fmt.Sprintf("(%d, %d, %d, %d, %d, %.2f, %.2f, %.2f)",
			t.ID, t.CustomerID, t.ProductID, t.DateID,
			t.Quantity, t.UnitPrice, t.DiscountAmount, t.TotalAmount,
		)
	}
	return tuples
}

func escapeSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
