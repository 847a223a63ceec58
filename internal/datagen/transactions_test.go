//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"math"
	"testing"

	"github.com/dmartlab/martgen/internal/model"
)

func testDimensions(t *testing.T) ([]model.Customer, []model.Product, []model.DateRecord) {
	t.Helper()

	customers, err := GenerateCustomers(100, date(2023, 1, 1), NewFaker(1))
	if err != nil {
		t.Fatalf("GenerateCustomers failed: %v", err)
	}
	products, err := GenerateProducts(50, NewFaker(2))
	if err != nil {
		t.Fatalf("GenerateProducts failed: %v", err)
	}
	dates, err := BuildDateDimension(date(2023, 1, 1), date(2023, 3, 31))
	if err != nil {
		t.Fatalf("BuildDateDimension failed: %v", err)
	}
	return customers, products, dates
}

func TestGenerateTransactions(t *testing.T) {
	customers, products, dates := testDimensions(t)
	productByID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	txs, err := GenerateTransactions(5000, SkewConfig{}, customers, products, dates, NewFaker(3))
	if err != nil {
		t.Fatalf("GenerateTransactions failed: %v", err)
	}
	if len(txs) != 5000 {
		t.Fatalf("Expected 5000 transactions, got %d", len(txs))
	}

	for i, tx := range txs {
		if tx.ID != int64(i+1) {
			t.Errorf("Transaction %d: keys must be monotonic from 1, got %d", i, tx.ID)
		}
		if tx.CustomerID < 1 || tx.CustomerID > int64(len(customers)) {
			t.Errorf("Transaction %d: customer key %d out of range", i, tx.CustomerID)
		}
		if tx.DateID < 1 || tx.DateID > int64(len(dates)) {
			t.Errorf("Transaction %d: date key %d out of range", i, tx.DateID)
		}
		product, ok := productByID[tx.ProductID]
		if !ok {
			t.Errorf("Transaction %d: product key %d does not exist", i, tx.ProductID)
			continue
		}
		if tx.UnitPrice != product.Price {
			t.Errorf("Transaction %d: unit price %.2f differs from catalog price %.2f",
				i, tx.UnitPrice, product.Price)
		}
		if tx.Quantity < 1 || tx.Quantity > 5 {
			t.Errorf("Transaction %d: quantity %d out of range", i, tx.Quantity)
		}

		gross := float64(tx.Quantity) * tx.UnitPrice
		if tx.DiscountAmount < 0 || tx.DiscountAmount > gross+1e-9 {
			t.Errorf("Transaction %d: discount %.2f out of [0, %.2f]", i, tx.DiscountAmount, gross)
		}
		if tx.TotalAmount < 0 {
			t.Errorf("Transaction %d: negative total %.2f", i, tx.TotalAmount)
		}
		want := gross - tx.DiscountAmount
		if math.Abs(tx.TotalAmount-want) > 1e-9 {
			t.Errorf("Transaction %d: total %.10f does not equal quantity*unit_price - discount = %.10f",
				i, tx.TotalAmount, want)
		}
	}
}

func TestGenerateTransactionsDeterministic(t *testing.T) {
	customers, products, dates := testDimensions(t)

	a, err := GenerateTransactions(500, SkewConfig{}, customers, products, dates, NewFaker(9))
	if err != nil {
		t.Fatalf("GenerateTransactions failed: %v", err)
	}
	b, err := GenerateTransactions(500, SkewConfig{}, customers, products, dates, NewFaker(9))
	if err != nil {
		t.Fatalf("GenerateTransactions failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Transaction %d differs between identically seeded runs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestGenerateTransactionsRequiresDimensions(t *testing.T) {
	customers, products, dates := testDimensions(t)

	tests := []struct {
		name      string
		customers []model.Customer
		products  []model.Product
		dates     []model.DateRecord
	}{
		{"no customers", nil, products, dates},
		{"no products", customers, nil, dates},
		{"no dates", customers, products, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateTransactions(10, SkewConfig{}, tt.customers, tt.products, tt.dates, NewFaker(1))
			if err == nil {
				t.Fatal("Expected error for empty dimension key set")
			}
		})
	}

	if _, err := GenerateTransactions(0, SkewConfig{}, customers, products, dates, NewFaker(1)); err == nil {
		t.Fatal("Expected error for zero count")
	}
}

func TestGenerateTransactionsWeekendBoost(t *testing.T) {
	customers, products, dates := testDimensions(t)

	weekend := make(map[int64]bool)
	var weekendDays int
	for _, d := range dates {
		if d.IsWeekend {
			weekend[d.ID] = true
			weekendDays++
		}
	}
	uniformFrac := float64(weekendDays) / float64(len(dates))

	txs, err := GenerateTransactions(20000, SkewConfig{WeekendBoost: 10},
		customers, products, dates, NewFaker(4))
	if err != nil {
		t.Fatalf("GenerateTransactions failed: %v", err)
	}

	var onWeekend int
	for _, tx := range txs {
		if weekend[tx.DateID] {
			onWeekend++
		}
	}
	frac := float64(onWeekend) / float64(len(txs))
	// With a 10x boost the weekend share must rise well above uniform.
	if frac < 2*uniformFrac {
		t.Errorf("Weekend fraction %.3f not boosted above uniform %.3f", frac, uniformFrac)
	}
}

func TestGenerateTransactionsPremiumBoost(t *testing.T) {
	customers, products, dates := testDimensions(t)

	premium := make(map[int64]bool)
	var premiumCount int
	for _, c := range customers {
		if c.Segment == SegmentPremium {
			premium[c.ID] = true
			premiumCount++
		}
	}
	if premiumCount == 0 {
		t.Skip("No premium customers in this sample")
	}
	uniformFrac := float64(premiumCount) / float64(len(customers))

	txs, err := GenerateTransactions(20000, SkewConfig{PremiumBoost: 10},
		customers, products, dates, NewFaker(4))
	if err != nil {
		t.Fatalf("GenerateTransactions failed: %v", err)
	}

	var byPremium int
	for _, tx := range txs {
		if premium[tx.CustomerID] {
			byPremium++
		}
	}
	frac := float64(byPremium) / float64(len(txs))
	if frac < 2*uniformFrac {
		t.Errorf("Premium fraction %.3f not boosted above uniform %.3f", frac, uniformFrac)
	}
}

func TestGenerateTransactionsDiscountDistribution(t *testing.T) {
	customers, products, dates := testDimensions(t)

	txs, err := GenerateTransactions(20000, SkewConfig{}, customers, products, dates, NewFaker(5))
	if err != nil {
		t.Fatalf("GenerateTransactions failed: %v", err)
	}

	var undiscounted int
	for _, tx := range txs {
		if tx.DiscountAmount == 0 {
			undiscounted++
		}
	}
	frac := float64(undiscounted) / float64(len(txs))
	if frac < 0.65 || frac > 0.75 {
		t.Errorf("Expected ~70%% of transactions undiscounted, got %.3f", frac)
	}
}
