package chunktable

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Encoder maps a growing sequence of sample positions to the 64-bit ids of
// the chunks holding them. It is not safe for concurrent mutation; the
// owning layer must serialize writers.
type Encoder struct {
	table *RangeTable
}

// NewEncoder inits an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{table: NewRangeTable(chunkStrategy{})}
}

// NumSamples returns the total number of registered samples.
func (e *Encoder) NumSamples() int64 { return e.table.NumCovered() }

// NumChunks returns the number of chunks, 0 while no samples are registered.
func (e *Encoder) NumChunks() int {
	if e.table.NumCovered() == 0 {
		return 0
	}
	return e.table.NumRows()
}

// GenerateChunkID draws a random chunk id and starts a new range for it.
// Call it exactly once per physical chunk, before registering that chunk's
// samples. The returned id names the chunk, see NameFromID.
func (e *Encoder) GenerateChunkID() uint64 {
	u := uuid.New()
	id := binary.BigEndian.Uint64(u[:8]) // top 64 of 128 random bits
	e.table.Append(id)
	return id
}

// RegisterSamples extends the most recently generated chunk's range by
// count samples. A count of zero records a sample that started in a
// previous chunk and spills into the current one, and is therefore only
// valid once at least two chunks exist.
func (e *Encoder) RegisterSamples(count int64) error {
	return e.table.Extend(0, count)
}

// ChunkID returns the id of the chunk holding the sample at the global
// index. It may return an ErrIndexOutOfRange error.
func (e *Encoder) ChunkID(sample int64) (uint64, error) {
	id, _, err := e.table.Lookup(sample)
	return id, err
}

// LocalIndex translates a global sample index into an index relative to
// the start of its containing chunk.
func (e *Encoder) LocalIndex(sample int64) (int64, error) {
	_, pos, err := e.table.Lookup(sample)
	if err != nil {
		return 0, err
	}
	if pos == 0 {
		return sample, nil
	}
	return sample - (e.table.Row(pos-1).Bound + 1), nil
}

// ChunkName returns the storage name of the chunk at row position pos.
func (e *Encoder) ChunkName(pos int) (string, error) {
	if pos < 0 || pos >= e.table.NumRows() {
		return "", ErrIndexOutOfRange
	}
	return NameFromID(e.table.Row(pos).Value), nil
}

// Ranges returns a forward iterator over the encoder's chunk ranges.
func (e *Encoder) Ranges() *RangeIterator {
	return &RangeIterator{table: e.table}
}

// NameFromID renders a chunk id as its storage name, the plain lowercase
// hexadecimal of the id without a prefix. The inverse of IDFromName.
func NameFromID(id uint64) string {
	return strconv.FormatUint(id, 16)
}

// IDFromName parses a storage name produced by NameFromID back into a
// chunk id. It may return an ErrBadName error.
func IDFromName(name string) (uint64, error) {
	id, err := strconv.ParseUint(name, 16, 64)
	if err != nil {
		return 0, ErrBadName
	}
	return id, nil
}

// --------------------------------------------------------------------

// chunkStrategy specializes the run-length table to chunk ids: every
// registration extends the current last row in place, new rows are only
// ever created by GenerateChunkID.
type chunkStrategy struct{}

func (chunkStrategy) Validate(t *RangeTable, _ uint64, count int64) error {
	if count < 0 {
		return ErrInvalidRegistration
	}
	if t.NumRows() == 0 {
		return ErrInvalidRegistration
	}
	if count == 0 && (t.NumCovered() == 0 || t.NumRows() < 2) {
		return ErrInvalidRegistration
	}
	return nil
}

func (chunkStrategy) Combine(_ uint64) bool { return true }

func (chunkStrategy) NextBound(bound, count int64) (int64, error) {
	// the unregistered sentinel transition (-1 + n) can never overflow;
	// the bound is capped one short of the maximum so that the covered
	// count stays representable
	if bound > math.MaxInt64-1-count {
		return 0, ErrBoundOverflow
	}
	return bound + count, nil
}

func (chunkStrategy) Value(row Row) uint64 { return row.Value }

// --------------------------------------------------------------------

// RangeIterator walks the chunk ranges of an encoder in row order.
type RangeIterator struct {
	table *RangeTable

	pos   int
	cur   Row
	start int64
}

// More returns true if more ranges can be read.
func (i *RangeIterator) More() bool { return i.pos < i.table.NumRows() }

// Next advances the cursor to the next range and returns true if successful.
func (i *RangeIterator) Next() bool {
	if i.pos >= i.table.NumRows() {
		return false
	}
	if i.pos != 0 {
		i.start = i.table.Row(i.pos-1).Bound + 1
	}
	i.cur = i.table.Row(i.pos)
	i.pos++
	return true
}

// ChunkID returns the id of the current range's chunk.
func (i *RangeIterator) ChunkID() uint64 { return i.cur.Value }

// Start returns the first global sample index of the current range.
func (i *RangeIterator) Start() int64 { return i.start }

// End returns the last global sample index of the current range.
func (i *RangeIterator) End() int64 { return i.cur.Bound }
