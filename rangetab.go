package chunktable

import "sort"

// Row is a single run-length range. Value covers every logical index from
// the previous row's Bound (exclusive) up to Bound (inclusive).
type Row struct {
	Value uint64 // opaque per-range value
	Bound int64  // inclusive last logical index
}

// Strategy customises how a RangeTable validates and derives its rows.
// The chunk-id behaviour in this package is one instantiation, other
// run-length encodings can plug in their own.
type Strategy interface {
	// Validate vets an incoming registration before the table is mutated.
	Validate(t *RangeTable, value uint64, count int64) error

	// Combine reports whether a registration should extend the last row
	// in place rather than append a new one.
	Combine(value uint64) bool

	// NextBound derives the new inclusive bound of the last row.
	NextBound(bound, count int64) (int64, error)

	// Value extracts the lookup result from a row.
	Value(row Row) uint64
}

// RangeTable is an ordered, append-only, binary-searchable run-length
// table. Rows are strictly increasing by Bound; rows are never removed
// or reordered, the table only grows.
type RangeTable struct {
	rows  []Row
	strat Strategy
}

// NewRangeTable inits a table with a strategy.
func NewRangeTable(s Strategy) *RangeTable {
	return &RangeTable{strat: s}
}

// NumRows returns the number of rows.
func (t *RangeTable) NumRows() int { return len(t.rows) }

// NumCovered returns the total number of logical units covered.
func (t *RangeTable) NumCovered() int64 {
	if len(t.rows) == 0 {
		return 0
	}
	return t.rows[len(t.rows)-1].Bound + 1
}

// Row returns the row at position pos.
func (t *RangeTable) Row(pos int) Row { return t.rows[pos] }

// Rows returns a copy of the rows.
func (t *RangeTable) Rows() []Row {
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Lookup finds the row covering the logical index and returns its value
// and row position. It may return an ErrIndexOutOfRange error.
func (t *RangeTable) Lookup(index int64) (uint64, int, error) {
	if index < 0 || index >= t.NumCovered() {
		return 0, 0, ErrIndexOutOfRange
	}
	if len(t.rows) == 1 {
		return t.strat.Value(t.rows[0]), 0, nil
	}

	pos := sort.Search(len(t.rows), func(i int) bool {
		return t.rows[i].Bound >= index
	})
	return t.strat.Value(t.rows[pos]), pos, nil
}

// Append adds a fresh row covering no logical units yet. The previous row,
// if any, must not itself be unregistered.
func (t *RangeTable) Append(value uint64) {
	bound := unregisteredBound
	if n := len(t.rows); n != 0 {
		bound = t.rows[n-1].Bound
	}
	t.rows = append(t.rows, Row{Value: value, Bound: bound})
}

// Extend registers count more logical units. Depending on the strategy the
// registration either extends the last row in place or appends a new row.
// On failure the table is left unmodified.
func (t *RangeTable) Extend(value uint64, count int64) error {
	if err := t.strat.Validate(t, value, count); err != nil {
		return err
	}

	bound := unregisteredBound
	if n := len(t.rows); n != 0 {
		bound = t.rows[n-1].Bound
	}
	next, err := t.strat.NextBound(bound, count)
	if err != nil {
		return err
	}

	if t.strat.Combine(value) && len(t.rows) != 0 {
		t.rows[len(t.rows)-1].Bound = next
	} else {
		t.rows = append(t.rows, Row{Value: value, Bound: next})
	}
	return nil
}

// setRows replaces the table contents wholesale.
func (t *RangeTable) setRows(rows []Row) { t.rows = rows }
