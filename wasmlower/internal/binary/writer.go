// Package binary writes the primitive encodings of the WebAssembly binary format.
package binary

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer accumulates a WebAssembly byte stream.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU32 writes an unsigned LEB128 value.
func (w *Writer) WriteU32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// WriteS32 writes a signed LEB128 value, the immediate of i32.const.
func (w *Writer) WriteS32(v int32) {
	w.WriteS64(int64(v))
}

// WriteS64 writes a signed LEB128 value, the immediate of i64.const.
func (w *Writer) WriteS64(v int64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			w.buf.WriteByte(b)
			return
		}
		w.buf.WriteByte(b | 0x80)
	}
}

// WriteF32 writes the little-endian bits of v, the immediate of f32.const.
func (w *Writer) WriteF32(v float32) {
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, math.Float32bits(v)))
}

// WriteF64 writes the little-endian bits of v, the immediate of f64.const.
func (w *Writer) WriteF64(v float64) {
	w.buf.Write(binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)))
}

// WriteU32LE writes a fixed four byte little-endian value.
func (w *Writer) WriteU32LE(v uint32) {
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}

// WriteName writes a length-prefixed UTF-8 name.
func (w *Writer) WriteName(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf.WriteString(s)
}

// WriteSection writes a section id followed by the size-prefixed payload.
func (w *Writer) WriteSection(id byte, payload *Writer) {
	w.Byte(id)
	w.WriteU32(uint32(payload.Len()))
	w.WriteBytes(payload.Bytes())
}
