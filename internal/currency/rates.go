package currency

import (
	"sync"

	"github.com/shopspring/decimal"
)

// StaticRates is a RateProvider over a table loaded at startup and
// replaceable at runtime, standing in for an external rate feed.
type StaticRates struct {
	mu    sync.RWMutex
	table RateTable
}

// NewStaticRates builds a provider from float rates relative to the
// reference currency. The reference itself is pinned to rate 1.
func NewStaticRates(reference string, rates map[string]float64) *StaticRates {
	table := make(RateTable, len(rates)+1)
	for code, rate := range rates {
		table[code] = decimal.NewFromFloat(rate)
	}
	table[reference] = decimal.NewFromInt(1)
	return &StaticRates{table: table}
}

// Rates returns the current table.
func (s *StaticRates) Rates() RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Replace swaps in a fresh table, e.g. from a rate feed refresh.
func (s *StaticRates) Replace(table RateTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}
