package wire

// Reader walks a byte buffer one field at a time. It never copies the
// buffer and never allocates on the decode-and-skip path; the only
// allocating accessors are the "owned" convenience forms (GetBytes,
// GetString) that copy out of the buffer explicitly.
//
// A Reader is a small value type — four fields, no pointers into
// itself — and is trivially copyable. Clone makes that an explicit,
// documented operation for callers who want an independent
// look-ahead cursor over the same buffer.
type Reader struct {
	buf      []byte
	pos      int
	tag      FieldNumber
	wireType WireType
}

// NewReader returns a Reader over buf. buf is not copied; it must
// outlive the Reader and every ByteView and sub-Reader it returns.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf, wireType: WireUnknown}
}

// More reports whether any bytes remain unread.
func (r *Reader) More() bool {
	return r.pos < len(r.buf)
}

// Tag returns the field number of the current field. It is only
// meaningful immediately after a Step call that returned (true, nil).
func (r *Reader) Tag() FieldNumber {
	return r.tag
}

// WireType returns the wire type of the current field.
func (r *Reader) WireType() WireType {
	return r.wireType
}

// HasWireType reports whether the current field's wire type is wt.
// It never mutates reader state.
func (r *Reader) HasWireType(wt WireType) bool {
	return r.wireType == wt
}

// Remaining returns a zero-copy view of the bytes not yet consumed.
func (r *Reader) Remaining() ByteView {
	return ByteView(r.buf[r.pos:])
}

// Bytes returns the full buffer the Reader was constructed over,
// including whatever has already been consumed — unlike Remaining,
// which returns only the unread tail. Useful for a caller that wants
// to hand the original message bytes to another consumer after
// having walked some of it.
func (r *Reader) Bytes() ByteView {
	return ByteView(r.buf)
}

// Clone returns an independent copy of the reader sharing the same
// underlying buffer. Advancing the clone does not affect r.
func (r *Reader) Clone() *Reader {
	clone := *r
	return &clone
}

// Step advances to the next field's tag. It returns (false, nil) when
// the buffer is exhausted, (false, err) when the tag itself is
// malformed (a truncated varint or an unrecognized wire type — the
// reader's cursor is left exactly where it was before the call), or
// (true, nil) when Tag/WireType now describe a field ready to be read
// or skipped.
//
// Field numbers in the reserved range [19000,19999] are accepted: a
// Reader has no way to distinguish "reserved by convention" from
// "emitted by a future version of this format" and treats both as an
// ordinary skippable field.
func (r *Reader) Step() (bool, error) {
	if r.pos >= len(r.buf) {
		r.tag = 0
		r.wireType = WireUnknown
		return false, nil
	}
	start := r.pos
	value, width, err := decodeVarint(r.buf, start)
	if err != nil {
		return false, err
	}
	wt := WireType(value & 0x7)
	if !isKnownWireType(wt) {
		return false, newDecodeError(ErrUnknownWireType, start)
	}
	r.pos = start + width
	r.tag = FieldNumber(value >> 3)
	r.wireType = wt
	return true, nil
}

// StepTo advances past fields until one tagged fieldNum is found,
// skipping every other field along the way. It returns (false, nil)
// once the buffer is exhausted without finding fieldNum, and
// (false, err) if any tag or skipped value along the way is
// malformed.
func (r *Reader) StepTo(fieldNum FieldNumber) (bool, error) {
	for {
		ok, err := r.Step()
		if err != nil || !ok {
			return false, err
		}
		if r.tag == fieldNum {
			return true, nil
		}
		if err := r.Skip(); err != nil {
			return false, err
		}
	}
}

// Skip discards the current field's value without decoding it,
// advancing past it according to its wire type.
func (r *Reader) Skip() error {
	switch r.wireType {
	case WireVarint:
		_, width, err := decodeVarint(r.buf, r.pos)
		if err != nil {
			return err
		}
		r.pos += width
	case WireFixed64:
		if r.pos+8 > len(r.buf) {
			return newDecodeError(ErrEndOfBuffer, len(r.buf))
		}
		r.pos += 8
	case WireBytes:
		_, next, err := decodeLengthDelimited(r.buf, r.pos)
		if err != nil {
			return err
		}
		r.pos = next
	case WireFixed32:
		if r.pos+4 > len(r.buf) {
			return newDecodeError(ErrEndOfBuffer, len(r.buf))
		}
		r.pos += 4
	default:
		precondition(false, "Skip called with no current field")
	}
	return nil
}

// ---- varint-wire-type scalar accessors ----

func (r *Reader) GetUint64() (uint64, error) {
	precondition(r.wireType == WireVarint, "field is not varint-encoded")
	v, width, err := decodeVarint(r.buf, r.pos)
	if err != nil {
		return 0, err
	}
	r.pos += width
	return v, nil
}

func (r *Reader) GetUint32() (uint32, error) {
	v, err := r.GetUint64()
	return uint32(v), err
}

func (r *Reader) GetInt64() (int64, error) {
	v, err := r.GetUint64()
	return int64(v), err
}

func (r *Reader) GetInt32() (int32, error) {
	v, err := r.GetUint64()
	return int32(uint32(v)), err
}

func (r *Reader) GetSint64() (int64, error) {
	v, err := r.GetUint64()
	return DecodeZigZag64(v), err
}

func (r *Reader) GetSint32() (int32, error) {
	v, err := r.GetUint64()
	return DecodeZigZag32(uint32(v)), err
}

// GetBool reads a canonical single-byte bool varint. A bool field is
// always encoded in exactly one byte; a continuation bit on that byte
// means the encoder emitted a non-canonical multi-byte varint for a
// bool, which is a precondition violation, not a value to decode —
// protozero's get_scalar<bool_tag> enforces the same (*m_data & 0x80)
// == 0 assertion instead of falling through to the general varint
// loop.
func (r *Reader) GetBool() (bool, error) {
	precondition(r.wireType == WireVarint, "field is not varint-encoded")
	if r.pos >= len(r.buf) {
		return false, newDecodeError(ErrEndOfBuffer, len(r.buf))
	}
	b := r.buf[r.pos]
	precondition(b&0x80 == 0, "bool field is not a canonical single-byte varint")
	r.pos++
	return b != 0, nil
}

func (r *Reader) GetEnum() (int32, error) {
	v, err := r.GetUint64()
	return int32(v), err
}

// ---- fixed-wire-type scalar accessors ----

func (r *Reader) GetFixed64() (uint64, error) {
	precondition(r.wireType == WireFixed64, "field is not fixed64-encoded")
	v, err := decodeFixed64(r.buf, r.pos)
	if err != nil {
		return 0, err
	}
	r.pos += 8
	return v, nil
}

func (r *Reader) GetSfixed64() (int64, error) {
	v, err := r.GetFixed64()
	return int64(v), err
}

func (r *Reader) GetDouble() (float64, error) {
	v, err := r.GetFixed64()
	return bitsToFloat64(v), err
}

func (r *Reader) GetFixed32() (uint32, error) {
	precondition(r.wireType == WireFixed32, "field is not fixed32-encoded")
	v, err := decodeFixed32(r.buf, r.pos)
	if err != nil {
		return 0, err
	}
	r.pos += 4
	return v, nil
}

func (r *Reader) GetSfixed32() (int32, error) {
	v, err := r.GetFixed32()
	return int32(v), err
}

func (r *Reader) GetFloat() (float32, error) {
	v, err := r.GetFixed32()
	return bitsToFloat32(v), err
}

// ---- length-delimited accessors ----

// GetBytesRaw returns a zero-copy view of the field's payload. The
// view aliases the buffer the Reader was constructed from.
func (r *Reader) GetBytesRaw() (ByteView, error) {
	precondition(r.wireType == WireBytes, "field is not length-delimited")
	view, next, err := decodeLengthDelimited(r.buf, r.pos)
	if err != nil {
		return nil, err
	}
	r.pos = next
	return view, nil
}

// GetStringRaw is GetBytesRaw with a name suited to text payloads; it
// still returns a zero-copy ByteView, not a string.
func (r *Reader) GetStringRaw() (ByteView, error) {
	return r.GetBytesRaw()
}

// GetBytes copies the field's payload into a freshly allocated slice.
func (r *Reader) GetBytes() ([]byte, error) {
	view, err := r.GetBytesRaw()
	if err != nil {
		return nil, err
	}
	return view.Bytes(), nil
}

// GetString copies the field's payload into a new Go string.
func (r *Reader) GetString() (string, error) {
	view, err := r.GetStringRaw()
	if err != nil {
		return "", err
	}
	return view.String(), nil
}

// GetMessage returns a zero-copy sub-Reader over the field's payload,
// for walking a nested message without copying it out first.
func (r *Reader) GetMessage() (*Reader, error) {
	view, err := r.GetBytesRaw()
	if err != nil {
		return nil, err
	}
	return NewReader(view), nil
}
