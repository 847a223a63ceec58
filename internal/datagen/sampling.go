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
	"fmt"
)

// WeightedItem pairs a candidate value with its sampling weight.
type WeightedItem[T any] struct {
	Item   T
	Weight float64
}

// WeightedTable is a declared distribution over a fixed set of values. All
// generators draw categorical values through it, so distribution logic lives
// in one place and is testable on its own. Zero-weight entries are never
// sampled.
type WeightedTable[T any] struct {
	items []WeightedItem[T]
	total float64
}

// NewWeightedTable validates the entries and builds a table.
func NewWeightedTable[T any](items []WeightedItem[T]) (*WeightedTable[T], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("weighted table needs at least one entry")
	}
	var total float64
	for i, it := range items {
		if it.Weight < 0 {
			return nil, fmt.Errorf("weighted table entry %d has negative weight %g", i, it.Weight)
		}
		total += it.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("weighted table weights must sum to a positive total")
	}
	return &WeightedTable[T]{items: items, total: total}, nil
}

// mustWeightedTable builds a table from static entries; invalid static
// distributions are programming errors.
func mustWeightedTable[T any](items []WeightedItem[T]) *WeightedTable[T] {
	t, err := NewWeightedTable(items)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of entries in the table.
func (t *WeightedTable[T]) Len() int {
	return len(t.items)
}

// Sample draws one value according to the declared weights.
func (t *WeightedTable[T]) Sample(f *Faker) T {
	r := f.Float64(0, t.total)
	var cum float64
	for _, it := range t.items {
		cum += it.Weight
		if r < cum {
			return it.Item
		}
	}
	return t.items[len(t.items)-1].Item
}
