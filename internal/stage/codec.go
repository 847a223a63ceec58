//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package stage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmartlab/martgen/internal/model"
)

// Field encoding is fixed: integers in base 10, money with two decimals,
// dates as YYYY-MM-DD, booleans as true/false. Encoding and parsing live
// side by side so the staged representation cannot drift.

func dateFields(d model.DateRecord) []string {
	return []string{
		strconv.FormatInt(d.ID, 10),
		d.Value.Format(model.DateLayout),
		strconv.Itoa(d.Year),
		strconv.Itoa(d.Quarter),
		strconv.Itoa(d.Month),
		strconv.Itoa(d.Day),
		strconv.Itoa(d.DayOfWeek),
		strconv.Itoa(d.WeekOfYear),
		strconv.FormatBool(d.IsWeekend),
	}
}

func parseDate(fields []string) (model.DateRecord, error) {
	var (
		d   model.DateRecord
		err error
	)
	if d.ID, err = parseKey(fields[0], "date_id"); err != nil {
		return d, err
	}
	if d.Value, err = time.Parse(model.DateLayout, fields[1]); err != nil {
		return d, fmt.Errorf("invalid date_value %q: %w", fields[1], err)
	}
	ints := []struct {
		dst  *int
		name string
		src  string
	}{
		{&d.Year, "year", fields[2]},
		{&d.Quarter, "quarter", fields[3]},
		{&d.Month, "month", fields[4]},
		{&d.Day, "day", fields[5]},
		{&d.DayOfWeek, "day_of_week", fields[6]},
		{&d.WeekOfYear, "week_of_year", fields[7]},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(f.src); err != nil {
			return d, fmt.Errorf("invalid %s %q: %w", f.name, f.src, err)
		}
	}
	if d.IsWeekend, err = strconv.ParseBool(fields[8]); err != nil {
		return d, fmt.Errorf("invalid is_weekend %q: %w", fields[8], err)
	}
	return d, nil
}

func customerFields(c model.Customer) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.City,
		c.State,
		c.Country,
		c.Segment,
		c.RegistrationDate.Format(model.DateLayout),
	}
}

func parseCustomer(fields []string) (model.Customer, error) {
	var (
		c   model.Customer
		err error
	)
	if c.ID, err = parseKey(fields[0], "customer_id"); err != nil {
		return c, err
	}
	c.FirstName = fields[1]
	c.LastName = fields[2]
	c.Email = fields[3]
	c.Phone = fields[4]
	c.City = fields[5]
	c.State = fields[6]
	c.Country = fields[7]
	c.Segment = fields[8]
	if c.RegistrationDate, err = time.Parse(model.DateLayout, fields[9]); err != nil {
		return c, fmt.Errorf("invalid registration_date %q: %w", fields[9], err)
	}
	return c, nil
}

func productFields(p model.Product) []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Category,
		p.Subcategory,
		p.Brand,
		formatMoney(p.Price),
		formatMoney(p.Cost),
	}
}

func parseProduct(fields []string) (model.Product, error) {
	var (
		p   model.Product
		err error
	)
	if p.ID, err = parseKey(fields[0], "product_id"); err != nil {
		return p, err
	}
	p.Name = fields[1]
	p.Category = fields[2]
	p.Subcategory = fields[3]
	p.Brand = fields[4]
	if p.Price, err = parseMoney(fields[5], "price"); err != nil {
		return p, err
	}
	if p.Cost, err = parseMoney(fields[6], "cost"); err != nil {
		return p, err
	}
	return p, nil
}

func transactionFields(t model.Transaction) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		strconv.FormatInt(t.CustomerID, 10),
		strconv.FormatInt(t.ProductID, 10),
		strconv.FormatInt(t.DateID, 10),
		strconv.Itoa(t.Quantity),
		formatMoney(t.UnitPrice),
		formatMoney(t.DiscountAmount),
		formatMoney(t.TotalAmount),
	}
}

func parseTransaction(fields []string) (model.Transaction, error) {
	var (
		t   model.Transaction
		err error
	)
	if t.ID, err = parseKey(fields[0], "transaction_id"); err != nil {
		return t, err
	}
	if t.CustomerID, err = parseKey(fields[1], "customer_id"); err != nil {
		return t, err
	}
	if t.ProductID, err = parseKey(fields[2], "product_id"); err != nil {
		return t, err
	}
	if t.DateID, err = parseKey(fields[3], "date_id"); err != nil {
		return t, err
	}
	if t.Quantity, err = strconv.Atoi(fields[4]); err != nil {
		return t, fmt.Errorf("invalid quantity %q: %w", fields[4], err)
	}
	if t.UnitPrice, err = parseMoney(fields[5], "unit_price"); err != nil {
		return t, err
	}
	if t.DiscountAmount, err = parseMoney(fields[6], "discount_amount"); err != nil {
		return t, err
	}
	if t.TotalAmount, err = parseMoney(fields[7], "total_amount"); err != nil {
		return t, err
	}
	return t, nil
}

func parseKey(s, name string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid %s %q: surrogate keys start at 1", name, s)
	}
	return v, nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func parseMoney(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}
