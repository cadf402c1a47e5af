package wire

// Buffer is the customization point Writer appends through. Any
// byte-vector-like target — an in-memory slice, a pooled scratch
// buffer, a memory-mapped region — can back a Writer by implementing
// the methods below, mirroring protozero's use of a plain std::string
// as its growable buffer: append (zeros or bytes), grow, erase a
// range, and address a single byte for in-place patching, plus length
// and contents accessors.
type Buffer interface {
	// AppendZeros appends n zero bytes and returns the buffer's new
	// length.
	AppendZeros(n int) int

	// Reserve hints that at least extra more bytes will be appended
	// soon, so an implementation backed by a growable slice can
	// avoid repeated reallocation. Implementations may treat this as
	// a no-op.
	Reserve(extra int)

	// Erase removes the half-open byte range [from, to) and shifts
	// everything after it down to close the gap.
	Erase(from, to int)

	// Set overwrites the byte at offset i.
	Set(i int, b byte)

	// At returns the byte at offset i.
	At(i int) byte

	// Len returns the buffer's current length.
	Len() int

	// Bytes returns the buffer's current contents. The returned
	// slice aliases the buffer's storage and is invalidated by the
	// next mutating call.
	Bytes() []byte

	// Append appends p and returns the buffer's new length.
	Append(p []byte) int
}

// ByteBuffer is the built-in Buffer implementation backed by a plain
// growable []byte, the same role protozero's callers usually hand it
// a std::string for.
type ByteBuffer struct {
	buf []byte
}

// NewByteBuffer returns an empty ByteBuffer.
func NewByteBuffer() *ByteBuffer {
	return &ByteBuffer{buf: []byte{}}
}

// NewByteBufferFrom wraps an existing slice, growing from its current
// contents rather than starting empty.
func NewByteBufferFrom(buf []byte) *ByteBuffer {
	return &ByteBuffer{buf: buf}
}

func (b *ByteBuffer) AppendZeros(n int) int {
	b.buf = append(b.buf, make([]byte, n)...)
	return len(b.buf)
}

func (b *ByteBuffer) Reserve(extra int) {
	if cap(b.buf)-len(b.buf) >= extra {
		return
	}
	grown := make([]byte, len(b.buf), len(b.buf)+extra)
	copy(grown, b.buf)
	b.buf = grown
}

func (b *ByteBuffer) Erase(from, to int) {
	precondition(from >= 0 && to <= len(b.buf) && from <= to, "erase range out of bounds")
	b.buf = append(b.buf[:from], b.buf[to:]...)
}

func (b *ByteBuffer) Set(i int, v byte) {
	b.buf[i] = v
}

func (b *ByteBuffer) At(i int) byte {
	return b.buf[i]
}

func (b *ByteBuffer) Len() int {
	return len(b.buf)
}

func (b *ByteBuffer) Bytes() []byte {
	return b.buf
}

func (b *ByteBuffer) Append(p []byte) int {
	b.buf = append(b.buf, p...)
	return len(b.buf)
}
