package chunktable

import "errors"

// Version is the semantic version tag written into serialized buffers.
const Version = "0.1.1"

// unregisteredBound is the last-index of a table's first row before any
// samples are registered. It serializes as 0xFFFFFFFFFFFFFFFF.
const unregisteredBound int64 = -1

// rowStride is the serialized size of a single row.
const rowStride = 16

// envelope codec indicators, stored as the trailing byte of every value
// persisted through a Store.
const (
	envelopePlain  = 0
	envelopeSnappy = 1
)

var (
	// ErrIndexOutOfRange is returned by lookups outside [0, NumSamples).
	ErrIndexOutOfRange = errors.New("chunktable: index out of range")

	// ErrInvalidRegistration is returned when a sample registration violates
	// its preconditions. The table is left unmodified.
	ErrInvalidRegistration = errors.New("chunktable: invalid sample registration")

	// ErrBoundOverflow is returned when a registration would push a range
	// bound past the representable range.
	ErrBoundOverflow = errors.New("chunktable: range bound overflow")

	// ErrBadBuffer is returned when a serialized buffer cannot be parsed.
	ErrBadBuffer = errors.New("chunktable: bad buffer")

	// ErrBadName is returned when a chunk name is not valid hexadecimal.
	ErrBadName = errors.New("chunktable: bad chunk name")

	// ErrKeyNotFound is returned by stores when a key is absent.
	ErrKeyNotFound = errors.New("chunktable: key not found")
)
