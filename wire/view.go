package wire

// ByteView is a non-owning view into a byte slice: a borrowed window
// into a buffer someone else owns. It never copies; it is the
// zero-copy return type of every length-delimited accessor on Reader.
// It stays valid exactly as long as the underlying buffer the Reader
// was constructed from stays unmodified and alive — callers who need
// the bytes to outlive that buffer must call Bytes() into a copy
// themselves (ByteView.String() does this implicitly via a string
// conversion).
type ByteView []byte

// String copies the view's bytes into a new Go string. String and
// Bytes are the only places a length-delimited accessor allocates; the
// "Raw" forms (GetBytesRaw, GetStringRaw) return the view itself and
// allocate nothing.
func (v ByteView) String() string {
	return string(v)
}

// Bytes copies the view's bytes into a freshly allocated slice.
func (v ByteView) Bytes() []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// Len reports the number of bytes in the view.
func (v ByteView) Len() int {
	return len(v)
}

// decodeLengthDelimited reads a varint length prefix at buf[pos] and
// returns a ByteView over the payload that follows it, plus the
// position immediately after the payload. Zero-copy: the returned
// view aliases buf.
func decodeLengthDelimited(buf []byte, pos int) (view ByteView, next int, err error) {
	length, width, err := decodeVarint(buf, pos)
	if err != nil {
		return nil, 0, err
	}
	start := pos + width
	end := start + int(length)
	if length > uint64(len(buf)) || end > len(buf) || end < start {
		return nil, 0, newDecodeError(ErrEndOfBuffer, len(buf))
	}
	return ByteView(buf[start:end]), end, nil
}

// appendLengthDelimited appends v preceded by its varint length
// prefix.
func appendLengthDelimited(buf []byte, v []byte) []byte {
	buf = appendVarint(buf, uint64(len(v)))
	return append(buf, v...)
}
