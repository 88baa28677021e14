package scratch

import (
	"strconv"
	"unicode/utf8"
)

// Builder appends text into a reusable byte buffer. The HUD rebuilds its
// lines every frame, so Reset keeps the capacity instead of freeing it.
// A Builder is not safe for concurrent use.
type Builder struct {
	buf []byte
}

// New returns a Builder with the given initial capacity.
func New(capacity int) *Builder {
	if capacity <= 0 {
		capacity = 256
	}
	return &Builder{buf: make([]byte, 0, capacity)}
}

func (b *Builder) Reset()   { b.buf = b.buf[:0] }
func (b *Builder) Len() int { return len(b.buf) }
func (b *Builder) Cap() int { return cap(b.buf) }

// String copies the buffer.
func (b *Builder) String() string { return string(b.buf) }

// Mark returns a bookmark for StringFrom.
func (b *Builder) Mark() int { return len(b.buf) }

// StringFrom copies what was appended since mark.
func (b *Builder) StringFrom(mark int) string { return string(b.buf[mark:]) }

// ----- Append primitives (chainable) -----

func (b *Builder) S(s string) *Builder {
	b.buf = append(b.buf, s...)
	return b
}

func (b *Builder) C(c byte) *Builder {
	b.buf = append(b.buf, c)
	return b
}

func (b *Builder) R(r rune) *Builder {
	b.buf = utf8.AppendRune(b.buf, r)
	return b
}

// I appends a base-10 integer.
func (b *Builder) I(v int) *Builder {
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
	return b
}

// U appends an unsigned base-10 integer.
func (b *Builder) U(v uint64) *Builder {
	b.buf = strconv.AppendUint(b.buf, v, 10)
	return b
}

// F64 appends a float with prec digits after the decimal point.
func (b *Builder) F64(v float64, prec int) *Builder {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

// G appends a float in the shortest form that keeps sig significant digits,
// switching to exponent form for very small or large values (plane scales).
func (b *Builder) G(v float64, sig int) *Builder {
	b.buf = strconv.AppendFloat(b.buf, v, 'g', sig, 64)
	return b
}

// Size appends a byte count with a binary unit: "512 B", "3.2 MiB".
func (b *Builder) Size(n uint64) *Builder {
	const unit = 1024
	if n < unit {
		return b.U(n).S(" B")
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit && exp < 5; m /= unit {
		div *= unit
		exp++
	}
	return b.F64(float64(n)/float64(div), 1).C(' ').C("KMGTPE"[exp]).S("iB")
}

// Pad appends n copies of c.
func (b *Builder) Pad(n int, c byte) *Builder {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, c)
	}
	return b
}

// PadTo pads with c until the text since mark is at least width bytes.
func (b *Builder) PadTo(mark, width int, c byte) *Builder {
	return b.Pad(width-(len(b.buf)-mark), c)
}
