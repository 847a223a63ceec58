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
	"testing"
	"time"

	"github.com/dmartlab/martgen/internal/model"
)

func TestCustomerTuplesEscapesQuotes(t *testing.T) {
	reg := time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)
	tuples := customerTuples([]model.Customer{
		{
			ID: 1, FirstName: "Pat", LastName: "O'Brien", Email: "pat@example.com",
			Phone: "555-0100", City: "Coeur d'Alene", State: "ID", Country: "USA",
			Segment: "Standard", RegistrationDate: reg,
		},
	})
	if len(tuples) != 1 {
		t.Fatalf("Expected 1 tuple, got %d", len(tuples))
	}
	want := "(1, 'Pat', 'O''Brien', 'pat@example.com', '555-0100', 'Coeur d''Alene', 'ID', 'USA', 'Standard', '2022-03-15')"
	if tuples[0] != want {
		t.Errorf("Tuple mismatch:\ngot  %s\nwant %s", tuples[0], want)
	}
}

func TestDateTuples(t *testing.T) {
	tuples := dateTuples([]model.DateRecord{
		{ID: 1, Value: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Year: 2023, Quarter: 1, Month: 1, Day: 1, DayOfWeek: 7, WeekOfYear: 52, IsWeekend: true},
	})
	want := "(1, '2023-01-01', 2023, 1, 1, 1, 7, 52, true)"
	if tuples[0] != want {
		t.Errorf("Tuple mismatch:\ngot  %s\nwant %s", tuples[0], want)
	}
}

func TestProductTuplesMoneyFormatting(t *testing.T) {
	tuples := productTuples([]model.Product{
		{ID: 3, Name: "BrandB Shoes 3", Category: "Clothing", Subcategory: "Shoes",
			Brand: "BrandB", Price: 49.9, Cost: 20},
	})
	want := "(3, 'BrandB Shoes 3', 'Clothing', 'Shoes', 'BrandB', 49.90, 20.00)"
	if tuples[0] != want {
		t.Errorf("Tuple mismatch:\ngot  %s\nwant %s", tuples[0], want)
	}
}

func TestTransactionTuples(t *testing.T) {
	tuples := transactionTuples([]model.Transaction{
		{ID: 7, CustomerID: 42, ProductID: 3, DateID: 100,
			Quantity: 2, UnitPrice: 49.9, DiscountAmount: 4.99, TotalAmount: 94.81},
	})
	want := "(7, 42, 3, 100, 2, 49.90, 4.99, 94.81)"
	if tuples[0] != want {
		t.Errorf("Tuple mismatch:\ngot  %s\nwant %s", tuples[0], want)
	}
}

func TestInsertSQL(t *testing.T) {
	sql := insertSQL("customers", []string{"a", "b"}, []string{"(1, 'x')", "(2, 'y')"})
	want := "INSERT INTO customers (a, b) VALUES (1, 'x'), (2, 'y')"
	if sql != want {
		t.Errorf("insertSQL mismatch:\ngot  %s\nwant %s", sql, want)
	}
}

func TestEscapeSingleQuote(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"O'Brien", "O''Brien"},
		{"''", "''''"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := escapeSingleQuote(tt.in); got != tt.want {
			t.Errorf("escapeSingleQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
