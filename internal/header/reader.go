// Package header provides bounded reads of fixed-size file header regions and
// field-by-field decoding of those regions with explicit byte order.
package header

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ShortReadError is returned when a file ends before a header region does.
type ShortReadError struct {
	Path   string
	Offset int64
	Want   int
	Got    int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("%s: short read at offset %d: got %d bytes, expected %d",
		e.Path, e.Offset, e.Got, e.Want)
}

// Read returns exactly size bytes starting at offset. The file handle is
// closed before returning on every path.
func Read(path string, offset int64, size int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, size)
	n, err := io.ReadFull(io.NewSectionReader(file, offset, int64(size)), buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &ShortReadError{Path: path, Offset: offset, Want: size, Got: n}
		}
		return nil, fmt.Errorf("%s: failed to read header at offset %d: %w", path, offset, err)
	}

	return buf, nil
}

// ReadPrefix returns up to max leading bytes of the file. A file shorter
// than max yields the bytes that exist.
func ReadPrefix(path string, max int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, max)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	return buf[:n], nil
}

// Fields decodes consecutive fields from a header buffer. The first failed
// read is remembered and every later read returns a zero value, so callers
// check Err once after decoding the whole record.
type Fields struct {
	buf []byte
	off int
	err error
}

// NewFields creates a decoder positioned at the start of buf
func NewFields(buf []byte) *Fields {
	return &Fields{buf: buf}
}

// Err returns the first error encountered
func (f *Fields) Err() error {
	return f.err
}

// Offset returns the current position in the buffer
func (f *Fields) Offset() int {
	return f.off
}

func (f *Fields) take(n int, what string) []byte {
	if f.err != nil {
		return nil
	}
	if n < 0 || f.off+n > len(f.buf) {
		f.err = fmt.Errorf("reading %s: need %d bytes at offset %d, header has %d",
			what, n, f.off, len(f.buf))
		return nil
	}
	b := f.buf[f.off : f.off+n]
	f.off += n
	return b
}

// Skip advances past n bytes
func (f *Fields) Skip(n int, what string) {
	f.take(n, what)
}

// Bytes returns a copy of the next n bytes
func (f *Fields) Bytes(n int, what string) []byte {
	b := f.take(n, what)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// String returns the next n bytes as raw characters
func (f *Fields) String(n int, what string) string {
	return string(f.take(n, what))
}

// U8 reads one byte
func (f *Fields) U8(what string) uint8 {
	b := f.take(1, what)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 reads a 16-bit unsigned integer in the given byte order
func (f *Fields) U16(order binary.ByteOrder, what string) uint16 {
	b := f.take(2, what)
	if b == nil {
		return 0
	}
	return order.Uint16(b)
}

// U32 reads a 32-bit unsigned integer in the given byte order
func (f *Fields) U32(order binary.ByteOrder, what string) uint32 {
	b := f.take(4, what)
	if b == nil {
		return 0
	}
	return order.Uint32(b)
}

// I32 reads a 32-bit two's complement integer in the given byte order
func (f *Fields) I32(order binary.ByteOrder, what string) int32 {
	return int32(f.U32(order, what))
}
