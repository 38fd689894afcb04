package binary

import (
	"bytes"
	"math"
	"testing"
)

func TestWriteU32(t *testing.T) {
	tests := []struct {
		want []byte
		v    uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, math.MaxUint32},
	}
	for _, tt := range tests {
		w := NewWriter()
		w.WriteU32(tt.v)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("WriteU32(%d) = % x, want % x", tt.v, w.Bytes(), tt.want)
		}
	}
}

func TestWriteS64(t *testing.T) {
	tests := []struct {
		want []byte
		v    int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, -1},
		{[]byte{0x3f}, 63},
		{[]byte{0xc0, 0x00}, 64},
		{[]byte{0x40}, -64},
		{[]byte{0xbf, 0x7f}, -65},
		{[]byte{0xc0, 0xbb, 0x78}, -123456},
	}
	for _, tt := range tests {
		w := NewWriter()
		w.WriteS64(tt.v)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("WriteS64(%d) = % x, want % x", tt.v, w.Bytes(), tt.want)
		}
	}
}

func TestWriteS32MatchesS64(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 100, -100, math.MaxInt32, math.MinInt32} {
		a, b := NewWriter(), NewWriter()
		a.WriteS32(v)
		b.WriteS64(int64(v))
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("WriteS32(%d) = % x, WriteS64 = % x", v, a.Bytes(), b.Bytes())
		}
	}
}

func TestWriteFloats(t *testing.T) {
	w := NewWriter()
	w.WriteF32(1.0)
	w.WriteF64(2.5)
	want := []byte{
		0x00, 0x00, 0x80, 0x3f,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x40,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("floats = % x, want % x", w.Bytes(), want)
	}
}

func TestWriteSection(t *testing.T) {
	payload := NewWriter()
	payload.WriteName("run")
	w := NewWriter()
	w.WriteSection(7, payload)
	want := []byte{0x07, 0x04, 0x03, 'r', 'u', 'n'}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("section = % x, want % x", w.Bytes(), want)
	}
}
