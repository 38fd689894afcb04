package codebuf

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/wippyai/stackgen/errors"
	"go.uber.org/zap"
)

// Tag identifies a constant pool entry kind.
type Tag uint8

// Pool entry tags as they appear in a class file.
const (
	TagUtf8    Tag = 1
	TagInteger Tag = 3
	TagFloat   Tag = 4
	TagLong    Tag = 5
	TagDouble  Tag = 6
	TagString  Tag = 8
)

func (t Tag) String() string {
	switch t {
	case TagUtf8:
		return "utf8"
	case TagInteger:
		return "int"
	case TagFloat:
		return "float"
	case TagLong:
		return "long"
	case TagDouble:
		return "double"
	case TagString:
		return "string"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// Wide reports whether the entry occupies two pool indexes.
func (t Tag) Wide() bool {
	return t == TagLong || t == TagDouble
}

// Entry is a single constant pool item.
//
// Bits holds the raw value for numeric tags and the Utf8 index for TagString.
// Text holds the contents of TagUtf8 entries.
type Entry struct {
	Text string
	Bits uint64
	Tag  Tag
}

// value decodes the entry into int32, float32, int64, float64 or string.
// String entries resolve to their Utf8 contents through p.
func (e Entry) value(p *Pool) any {
	switch e.Tag {
	case TagInteger:
		return int32(uint32(e.Bits))
	case TagFloat:
		return math.Float32frombits(uint32(e.Bits))
	case TagLong:
		return int64(e.Bits)
	case TagDouble:
		return math.Float64frombits(e.Bits)
	case TagString:
		if utf, ok := p.Entry(uint16(e.Bits)); ok {
			return utf.Text
		}
		return ""
	default:
		return e.Text
	}
}

type poolKey struct {
	text string
	bits uint64
	tag  Tag
}

// Pool is a deduplicating constant pool following class-file index rules:
// index 0 is unused and long/double entries take two indexes.
type Pool struct {
	index   map[poolKey]uint16
	entries []Entry // entries[0] and the slot after each wide entry are placeholders
	limit   int
}

// NewPool creates an empty pool whose constant_pool_count may not exceed limit.
func NewPool(limit int) *Pool {
	if limit <= 0 || limit > MaxPoolCount {
		limit = MaxPoolCount
	}
	return &Pool{
		index:   make(map[poolKey]uint16),
		entries: make([]Entry, 1),
		limit:   limit,
	}
}

// Count returns constant_pool_count: one more than the highest index in use.
func (p *Pool) Count() int {
	return len(p.entries)
}

// Entry returns the entry at index i. Placeholder indexes report ok == false.
func (p *Pool) Entry(i uint16) (Entry, bool) {
	if i == 0 || int(i) >= len(p.entries) {
		return Entry{}, false
	}
	e := p.entries[i]
	return e, e.Tag != 0
}

// Value returns the decoded literal stored at index i.
func (p *Pool) Value(i uint16) (any, bool) {
	e, ok := p.Entry(i)
	if !ok {
		return nil, false
	}
	return e.value(p), true
}

// Add interns a literal and returns its index. Accepted literals are int32,
// float32, int64, float64 and string. Floating point values are keyed by bit
// pattern, so 0.0 and -0.0 get distinct entries.
func (p *Pool) Add(v any) (uint16, error) {
	switch x := v.(type) {
	case int32:
		return p.intern(poolKey{tag: TagInteger, bits: uint64(uint32(x))})
	case float32:
		return p.intern(poolKey{tag: TagFloat, bits: uint64(math.Float32bits(x))})
	case int64:
		return p.intern(poolKey{tag: TagLong, bits: uint64(x)})
	case float64:
		return p.intern(poolKey{tag: TagDouble, bits: math.Float64bits(x)})
	case string:
		if n := utf8Len(x); n > math.MaxUint16 {
			return 0, errors.OutOfRange(errors.PhaseEncode, "ldc", n, "[0, 65535] bytes")
		}
		utf, err := p.intern(poolKey{tag: TagUtf8, text: x})
		if err != nil {
			return 0, err
		}
		return p.intern(poolKey{tag: TagString, bits: uint64(utf)})
	default:
		return 0, errors.InvalidOperand(errors.PhaseEncode, "ldc", v)
	}
}

func (p *Pool) intern(k poolKey) (uint16, error) {
	if idx, ok := p.index[k]; ok {
		return idx, nil
	}
	need := 1
	if k.tag.Wide() {
		need = 2
	}
	if len(p.entries)+need > p.limit {
		return 0, errors.PoolOverflow(len(p.entries)+need, p.limit)
	}
	idx := uint16(len(p.entries))
	p.entries = append(p.entries, Entry{Tag: k.tag, Bits: k.bits, Text: k.text})
	if need == 2 {
		p.entries = append(p.entries, Entry{})
	}
	p.index[k] = idx
	Logger().Debug("constant pool entry",
		zap.Uint16("index", idx),
		zap.Stringer("tag", k.tag),
	)
	return idx, nil
}

// Bytes encodes the pool as it appears in a class file: a u2 count followed
// by each entry.
func (p *Pool) Bytes() []byte {
	buf := make([]byte, 0, 2+len(p.entries)*5)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(p.entries)))
	for _, e := range p.entries[1:] {
		if e.Tag == 0 {
			continue
		}
		buf = append(buf, byte(e.Tag))
		switch e.Tag {
		case TagUtf8:
			buf = binary.BigEndian.AppendUint16(buf, uint16(utf8Len(e.Text)))
			buf = appendUTF8(buf, e.Text)
		case TagInteger, TagFloat:
			buf = binary.BigEndian.AppendUint32(buf, uint32(e.Bits))
		case TagLong, TagDouble:
			buf = binary.BigEndian.AppendUint64(buf, e.Bits)
		case TagString:
			buf = binary.BigEndian.AppendUint16(buf, uint16(e.Bits))
		}
	}
	return buf
}

// Describe renders the entry at index i the way the listing shows it,
// e.g. "double 2.5" or `string "hi"`.
func (p *Pool) Describe(i uint16) string {
	e, ok := p.Entry(i)
	if !ok {
		return "<invalid>"
	}
	switch v := e.value(p).(type) {
	case string:
		if e.Tag == TagUtf8 {
			return "utf8 " + v
		}
		return fmt.Sprintf("string %q", v)
	default:
		return fmt.Sprintf("%s %v", e.Tag, v)
	}
}

// appendUTF8 writes s in the class-file string encoding: NUL takes two bytes
// and characters above U+FFFF are written as a surrogate pair of three-byte
// sequences. Invalid bytes in s encode as U+FFFD.
func appendUTF8(buf []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == 0:
			buf = append(buf, 0xC0, 0x80)
		case r < 0x80:
			buf = append(buf, byte(r))
		case r < 0x800:
			buf = append(buf, 0xC0|byte(r>>6), 0x80|byte(r)&0x3F)
		case r <= 0xFFFF:
			buf = appendUTF8Unit(buf, r)
		default:
			hi, lo := utf16.EncodeRune(r)
			buf = appendUTF8Unit(appendUTF8Unit(buf, hi), lo)
		}
	}
	return buf
}

func appendUTF8Unit(buf []byte, r rune) []byte {
	return append(buf, 0xE0|byte(r>>12), 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F)
}

// utf8Len returns the encoded length of s as appendUTF8 writes it.
func utf8Len(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0:
			n += 2
		case r < 0x80:
			n++
		case r < 0x800:
			n += 2
		case r <= 0xFFFF:
			n += 3
		default:
			n += 6
		}
	}
	return n
}
