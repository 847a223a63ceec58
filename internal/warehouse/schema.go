//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse owns the star schema DDL and the post-load verification
// queries. One central fact table (sales_transactions) references three
// denormalized dimensions (customers, products, date_dimension).
package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Identity columns are GENERATED BY DEFAULT so the loader can insert the
// surrogate keys assigned at generation time while ad hoc inserts still get
// auto-incremented keys.
const createSchemaSQL = `
-- Customers: who bought
CREATE TABLE IF NOT EXISTS customers (
    customer_id       INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    first_name        VARCHAR(50) NOT NULL,
    last_name         VARCHAR(50) NOT NULL,
    email             VARCHAR(100) NOT NULL,
    phone             VARCHAR(20),
    city              VARCHAR(50),
    state             CHAR(2),
    country           VARCHAR(50) NOT NULL,
    customer_segment  VARCHAR(20) NOT NULL,
    registration_date DATE NOT NULL
);

-- Products: what was bought
CREATE TABLE IF NOT EXISTS products (
    product_id   INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    product_name VARCHAR(100) NOT NULL,
    category     VARCHAR(50) NOT NULL,
    subcategory  VARCHAR(50) NOT NULL,
    brand        VARCHAR(50) NOT NULL,
    price        NUMERIC(10,2) NOT NULL,
    cost         NUMERIC(10,2) NOT NULL,
    CONSTRAINT products_margin_check CHECK (cost < price)
);

-- Date dimension: when it was bought, one row per calendar day
CREATE TABLE IF NOT EXISTS date_dimension (
    date_id      INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    date_value   DATE NOT NULL UNIQUE,
    year         INTEGER NOT NULL,
    quarter      INTEGER NOT NULL,
    month        INTEGER NOT NULL,
    day          INTEGER NOT NULL,
    day_of_week  INTEGER NOT NULL,
    week_of_year INTEGER NOT NULL,
    is_weekend   BOOLEAN NOT NULL
);

-- Sales transactions: the fact table
CREATE TABLE IF NOT EXISTS sales_transactions (
    transaction_id  BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    customer_id     INTEGER NOT NULL REFERENCES customers(customer_id),
    product_id      INTEGER NOT NULL REFERENCES products(product_id),
    date_id         INTEGER NOT NULL REFERENCES date_dimension(date_id),
    quantity        INTEGER NOT NULL CHECK (quantity > 0),
    unit_price      NUMERIC(10,2) NOT NULL,
    discount_amount NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (discount_amount >= 0),
    total_amount    NUMERIC(12,2) NOT NULL CHECK (total_amount >= 0)
);

-- Indexes supporting the analytics layer's aggregations
CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales_transactions(customer_id);
CREATE INDEX IF NOT EXISTS idx_sales_product ON sales_transactions(product_id);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales_transactions(date_id);
CREATE INDEX IF NOT EXISTS idx_sales_total_amount ON sales_transactions(total_amount);
CREATE INDEX IF NOT EXISTS idx_date_year_month ON date_dimension(year, month);
CREATE INDEX IF NOT EXISTS idx_customers_segment ON customers(customer_segment);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS sales_transactions CASCADE;
DROP TABLE IF EXISTS customers CASCADE;
DROP TABLE IF EXISTS products CASCADE;
DROP TABLE IF EXISTS date_dimension CASCADE;
`

// CreateSchema creates the warehouse star schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the warehouse star schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
