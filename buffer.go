// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"io"
	"unicode/utf8"
)

// Buffer accumulates rendered output in arena-backed memory. It is
// append-oriented: writers build up a table (cell text, border runs,
// padding) and flush the whole thing once with WriteTo. With a nil
// arena it degrades to ordinary heap-backed appends.
type Buffer struct {
	arena Arena
	buf   []byte
}

// NewBuffer creates a Buffer whose memory comes from the given arena.
func NewBuffer(a Arena) *Buffer {
	return &Buffer{arena: a}
}

// Write appends p to the buffer. It never returns an error; the
// signature satisfies io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.buf = SliceAppend(b.arena, b.buf, p...)
	return len(p), nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b.buf = SliceAppend(b.arena, b.buf, []byte(s)...)
	return len(s), nil
}

// WriteByte appends a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	b.buf = SliceAppend(b.arena, b.buf, c)
	return nil
}

// WriteRune appends the UTF-8 encoding of r to the buffer. Border
// glyphs are usually multi-byte, so this goes through a small stack
// scratch rather than a one-rune string conversion.
func (b *Buffer) WriteRune(r rune) (int, error) {
	var scratch [utf8.UTFMax]byte
	n := utf8.EncodeRune(scratch[:], r)
	b.buf = SliceAppend(b.arena, b.buf, scratch[:n]...)
	return n, nil
}

// WriteTo writes the buffered bytes to w and empties the buffer.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if len(b.buf) == 0 {
		return 0, nil
	}
	n, err := w.Write(b.buf)
	b.buf = b.buf[n:]
	return int64(n), err
}

// Bytes returns the buffered bytes. The slice is valid until the next
// modification of the buffer or a reset of the backing arena.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// String returns the buffered bytes as a string.
func (b *Buffer) String() string {
	return string(b.buf)
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the underlying byte slice.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Truncate discards all but the first n buffered bytes. It panics if
// n is out of range.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.buf) {
		panic("arena: buffer truncation out of range")
	}
	b.buf = b.buf[:n]
}

// Reset empties the buffer, keeping its arena-backed capacity.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// Grow ensures the buffer can take n more bytes without relocating.
func (b *Buffer) Grow(n int) {
	if n < 0 {
		panic("arena: negative buffer grow")
	}
	b.buf = growSlice(b.arena, b.buf, n)
}
