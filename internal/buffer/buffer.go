// Package buffer implements little-endian typed reads and writes over a
// byte slice with a cursor, the foundation the binary module codec and the
// instruction argument parser are both built on.
package buffer

import "encoding/binary"

// Reader reads little-endian typed values from a byte slice, advancing a
// cursor. Short reads return ok=false and leave the cursor at the position
// of the failed read.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential little-endian reads.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current read cursor.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, bool) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, false
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, true
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (uint8, bool) {
	b, ok := r.ReadBytes(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, bool) {
	b, ok := r.ReadBytes(2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, bool) {
	b, ok := r.ReadBytes(4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, bool) {
	b, ok := r.ReadBytes(8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

// Writer appends little-endian typed values to a growing byte slice.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteU8 appends one byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteU16 appends a little-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU32 appends a little-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU64 appends a little-endian uint64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}
