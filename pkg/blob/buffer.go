// Package blob holds the byte-level storage of query results: a
// bounds-checked view over blob bytes and the container that owns a batch
// of equally shaped blobs.
package blob

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds is returned for any access that would cross the end of a
// buffer.
var ErrOutOfBounds = errors.New("blob access out of bounds")

// Buffer is a view over blob bytes. All multi-byte values are little-endian.
type Buffer struct {
	b []byte
}

// Wrap returns a Buffer over b without copying.
func Wrap(b []byte) Buffer { return Buffer{b: b} }

// NewBuffer allocates a zeroed buffer of size bytes.
func NewBuffer(size int) Buffer { return Buffer{b: make([]byte, size)} }

func (b Buffer) Len() int { return len(b.b) }

// Bytes returns the underlying bytes.
func (b Buffer) Bytes() []byte { return b.b }

func (b Buffer) check(off uint64, n uint64) error {
	if off > uint64(len(b.b)) || n > uint64(len(b.b))-off {
		return fmt.Errorf("%w: %d bytes at offset %d, buffer length %d", ErrOutOfBounds, n, off, len(b.b))
	}
	return nil
}

// Slice returns the n bytes at off.
func (b Buffer) Slice(off, n uint64) ([]byte, error) {
	if err := b.check(off, n); err != nil {
		return nil, err
	}
	return b.b[off : off+n], nil
}

func (b Buffer) Float64At(off uint64) (float64, error) {
	if err := b.check(off, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b.b[off:])), nil
}

func (b Buffer) Int32At(off uint64) (int32, error) {
	if err := b.check(off, 4); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b.b[off:])), nil
}

func (b Buffer) Uint32At(off uint64) (uint32, error) {
	if err := b.check(off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b.b[off:]), nil
}

func (b Buffer) Uint64At(off uint64) (uint64, error) {
	if err := b.check(off, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b.b[off:]), nil
}

func (b Buffer) BoolAt(off uint64) (bool, error) {
	if err := b.check(off, 1); err != nil {
		return false, err
	}
	return b.b[off] != 0, nil
}

// StringAt reads a NUL-terminated string from a field of capacity bytes. A
// field without a terminator yields all capacity bytes.
func (b Buffer) StringAt(off, capacity uint64) ([]byte, error) {
	raw, err := b.Slice(off, capacity)
	if err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return raw, nil
}

func (b Buffer) PutFloat64(off uint64, v float64) error {
	if err := b.check(off, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b.b[off:], math.Float64bits(v))
	return nil
}

func (b Buffer) PutInt32(off uint64, v int32) error {
	return b.PutUint32(off, uint32(v))
}

func (b Buffer) PutUint32(off uint64, v uint32) error {
	if err := b.check(off, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b.b[off:], v)
	return nil
}

func (b Buffer) PutUint64(off uint64, v uint64) error {
	if err := b.check(off, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b.b[off:], v)
	return nil
}

func (b Buffer) PutBool(off uint64, v bool) error {
	if err := b.check(off, 1); err != nil {
		return err
	}
	if v {
		b.b[off] = 1
	} else {
		b.b[off] = 0
	}
	return nil
}

// PutString writes s into a field of capacity bytes, truncating so that a
// terminating NUL always fits, and zeroing the rest of the field.
func (b Buffer) PutString(off, capacity uint64, s string) error {
	field, err := b.Slice(off, capacity)
	if err != nil {
		return err
	}
	if capacity == 0 {
		return nil
	}
	n := copy(field[:capacity-1], s)
	clear(field[n:])
	return nil
}

// Padding returns the number of bytes needed to advance pos to a multiple
// of align.
func Padding(pos, align uint64) uint64 {
	if align <= 1 {
		return 0
	}
	if rem := pos % align; rem != 0 {
		return align - rem
	}
	return 0
}
