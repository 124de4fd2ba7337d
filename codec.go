package chunktable

import "encoding/binary"

// Bytes serializes the encoder into a versioned buffer. An empty encoder
// yields an empty buffer.
func (e *Encoder) Bytes() []byte {
	rows := e.table.Rows()
	if len(rows) == 0 {
		return nil
	}

	buf := make([]byte, 0, 1+len(Version)+len(rows)*rowStride)
	buf = append(buf, byte(len(Version)))
	buf = append(buf, Version...)

	tmp := make([]byte, rowStride)
	for _, row := range rows {
		binary.LittleEndian.PutUint64(tmp[0:], row.Value)
		binary.LittleEndian.PutUint64(tmp[8:], uint64(row.Bound))
		buf = append(buf, tmp...)
	}
	return buf
}

// FromBuffer reconstructs an encoder from a buffer produced by Bytes. An
// empty buffer yields an empty encoder. It may return an ErrBadBuffer
// error.
func FromBuffer(buf []byte) (*Encoder, error) {
	enc := NewEncoder()
	if len(buf) == 0 {
		return enc, nil
	}

	_, rows, err := parseBuffer(buf)
	if err != nil {
		return nil, err
	}
	enc.table.setRows(rows)
	return enc, nil
}

// parseBuffer splits a non-empty buffer into the producer version tag and
// the row array.
func parseBuffer(buf []byte) (string, []Row, error) {
	vlen := int(buf[0])
	if len(buf) < 1+vlen {
		return "", nil, ErrBadBuffer
	}
	version := string(buf[1 : 1+vlen])

	body := buf[1+vlen:]
	if len(body)%rowStride != 0 {
		return "", nil, ErrBadBuffer
	}

	rows := make([]Row, len(body)/rowStride)
	for i := range rows {
		off := i * rowStride
		rows[i] = Row{
			Value: binary.LittleEndian.Uint64(body[off:]),
			Bound: int64(binary.LittleEndian.Uint64(body[off+8:])),
		}
	}
	return version, rows, nil
}
