package company

import "math"

// Columns names the fields a source table must provide for merging.
type Columns struct {
	Name         string
	NameFallback string
	Revenue      string
	Country      string
	IPO          string
}

// DefaultColumns matches the CDC source schema.
func DefaultColumns() Columns {
	return Columns{
		Name:         "brand_name",
		NameFallback: "hq_office",
		Revenue:      "last_Y",
		Country:      "country",
		IPO:          "IPO",
	}
}

// DisplayName returns the row's primary name field, falling back to the
// secondary one when the primary is blank.
func (c Columns) DisplayName(row Row) string {
	if row[c.Name] != "" {
		return row[c.Name]
	}
	return row[c.NameFallback]
}

// Record is one deduplicated company held by an Accumulator.
type Record struct {
	Key     string
	Row     Row
	Revenue float64
}

// Accumulator folds rows from successive sources into at most one Record
// per normalized key. Records keep the order their keys were first seen,
// replacements overwrite in place.
type Accumulator struct {
	index map[string]int
	recs  []Record
}

func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[string]int)}
}

// Add folds one row into the accumulator. Rows whose name normalizes to
// the empty string are dropped. An existing record is replaced only when
// the incoming revenue is strictly greater, or when the existing revenue
// is NaN and the incoming one is a real number; equal revenues and two
// NaNs keep the earlier record.
func (a *Accumulator) Add(row Row, cols Columns) {
	key := NormalizeKey(cols.DisplayName(row))
	if key == "" {
		return
	}
	rev := ParseRevenue(row[cols.Revenue])
	idx, ok := a.index[key]
	if !ok {
		a.index[key] = len(a.recs)
		a.recs = append(a.recs, Record{Key: key, Row: row, Revenue: rev})
		return
	}
	cur := a.recs[idx]
	if rev > cur.Revenue || (math.IsNaN(cur.Revenue) && !math.IsNaN(rev)) {
		a.recs[idx] = Record{Key: key, Row: row, Revenue: rev}
	}
}

// Merge folds every row of the table into acc.
func Merge(acc *Accumulator, t *Table, cols Columns) {
	for _, row := range t.Rows {
		acc.Add(row, cols)
	}
}

// Records returns the accumulated records in first-insertion order.
func (a *Accumulator) Records() []Record {
	return a.recs
}

// Len reports the number of distinct keys accumulated so far.
func (a *Accumulator) Len() int {
	return len(a.recs)
}
