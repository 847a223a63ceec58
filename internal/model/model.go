//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package model defines the star schema entities produced by generation and
// consumed by staging and loading. Surrogate keys are assigned at generation
// time, starting at 1 per entity, and records are immutable once staged.
package model

import (
	"math"
	"time"
)

// DateLayout is the wire format for calendar dates in staged files.
const DateLayout = "2006-01-02"

// Warehouse table names.
const (
	TableCustomers    = "customers"
	TableProducts     = "products"
	TableDates        = "date_dimension"
	TableTransactions = "sales_transactions"
)

// Column orders shared by the staged CSV files and the warehouse schema.
var (
	CustomerColumns = []string{
		"customer_id", "first_name", "last_name", "email", "phone",
		"city", "state", "country", "customer_segment", "registration_date",
	}
	ProductColumns = []string{
		"product_id", "product_name", "category", "subcategory", "brand",
		"price", "cost",
	}
	DateColumns = []string{
		"date_id", "date_value", "year", "quarter", "month", "day",
		"day_of_week", "week_of_year", "is_weekend",
	}
	TransactionColumns = []string{
		"transaction_id", "customer_id", "product_id", "date_id",
		"quantity", "unit_price", "discount_amount", "total_amount",
	}
)

// Customer is a row of the customers dimension.
type Customer struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	City             string
	State            string
	Country          string
	Segment          string
	RegistrationDate time.Time
}

// Product is a row of the products dimension.
type Product struct {
	ID          int64
	Name        string
	Category    string
	Subcategory string
	Brand       string
	Price       float64
	Cost        float64
}

// DateRecord is a row of the date dimension. All derived fields are pure
// functions of Value using ISO calendar rules.
type DateRecord struct {
	ID         int64
	Value      time.Time
	Year       int
	Quarter    int
	Month      int
	Day        int
	DayOfWeek  int // ISO: Monday=1 .. Sunday=7
	WeekOfYear int // ISO week number
	IsWeekend  bool
}

// Transaction is a row of the sales fact table. TotalAmount is always
// derived as Quantity*UnitPrice - DiscountAmount, never sampled.
type Transaction struct {
	ID             int64
	CustomerID     int64
	ProductID      int64
	DateID         int64
	Quantity       int
	UnitPrice      float64
	DiscountAmount float64
	TotalAmount    float64
}

// RoundCents rounds a monetary amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
