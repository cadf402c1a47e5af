package wire

import "golang.org/x/exp/constraints"

// decodeFunc decodes one element starting at data[pos] and reports
// how many bytes it consumed. Every Sequence is just this function
// closed over a captured byte range — restarting a Sequence is free
// because nothing but the captured (data, decodeFunc) pair is shared
// state.
type decodeFunc[T any] func(data []byte, pos int) (T, int, error)

// Sequence is a lazy, restartable view over a packed repeated
// field's payload. It decodes nothing until Iterator().Next() is
// called, and a Sequence value can be iterated any number of times
// independently.
type Sequence[T any] struct {
	data   ByteView
	decode decodeFunc[T]
}

// Iterator walks a Sequence's elements one at a time.
func (s Sequence[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{data: s.data, decode: s.decode}
}

// Len reports the number of payload bytes backing the sequence; it
// does not change as iterators advance. It is not the element count
// unless every element has the same width.
func (s Sequence[T]) Len() int {
	return len(s.data)
}

// Iterator is a single-use cursor produced by Sequence.Iterator.
type Iterator[T any] struct {
	data   ByteView
	pos    int
	decode decodeFunc[T]
}

// HasNext reports whether any undecoded bytes remain.
func (it *Iterator[T]) HasNext() bool {
	return it.pos < len(it.data)
}

// Next decodes and returns the next element.
func (it *Iterator[T]) Next() (T, error) {
	v, width, err := it.decode(it.data, it.pos)
	if err != nil {
		var zero T
		return zero, err
	}
	it.pos += width
	return v, nil
}

func newSequence[T any](data ByteView, decode decodeFunc[T]) Sequence[T] {
	return Sequence[T]{data: data, decode: decode}
}

func varintDecodeFunc[T constraints.Integer](convert func(uint64) T) decodeFunc[T] {
	return func(data []byte, pos int) (T, int, error) {
		v, width, err := decodeVarint(data, pos)
		if err != nil {
			var zero T
			return zero, 0, err
		}
		return convert(v), width, nil
	}
}

func fixed32DecodeFunc[T any](convert func(uint32) T) decodeFunc[T] {
	return func(data []byte, pos int) (T, int, error) {
		v, err := decodeFixed32(data, pos)
		if err != nil {
			var zero T
			return zero, 0, err
		}
		return convert(v), 4, nil
	}
}

func fixed64DecodeFunc[T any](convert func(uint64) T) decodeFunc[T] {
	return func(data []byte, pos int) (T, int, error) {
		v, err := decodeFixed64(data, pos)
		if err != nil {
			var zero T
			return zero, 0, err
		}
		return convert(v), 8, nil
	}
}

// boolDecodeFunc is the "bool squeeze" optimization: a packed bool
// element is always a canonical single-byte varint, so this reads one
// byte directly instead of running the general varint loop. A byte
// with its continuation bit set is a non-canonical encoding, the same
// precondition violation GetBool rejects.
func boolDecodeFunc(data []byte, pos int) (bool, int, error) {
	if pos >= len(data) {
		return false, 0, newDecodeError(ErrEndOfBuffer, pos)
	}
	b := data[pos]
	precondition(b&0x80 == 0, "packed bool element is not a canonical single-byte varint")
	return b != 0, 1, nil
}

func (r *Reader) getPackedPayload() (ByteView, error) {
	return r.GetBytesRaw()
}

// GetPackedUint64 returns a lazy sequence over a packed uint64 field.
func (r *Reader) GetPackedUint64() (Sequence[uint64], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[uint64]{}, err
	}
	return newSequence(data, varintDecodeFunc(func(v uint64) uint64 { return v })), nil
}

// GetPackedUint32 returns a lazy sequence over a packed uint32 field.
func (r *Reader) GetPackedUint32() (Sequence[uint32], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[uint32]{}, err
	}
	return newSequence(data, varintDecodeFunc(func(v uint64) uint32 { return uint32(v) })), nil
}

// GetPackedInt64 returns a lazy sequence over a packed int64 field.
func (r *Reader) GetPackedInt64() (Sequence[int64], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[int64]{}, err
	}
	return newSequence(data, varintDecodeFunc(func(v uint64) int64 { return int64(v) })), nil
}

// GetPackedInt32 returns a lazy sequence over a packed int32 field.
func (r *Reader) GetPackedInt32() (Sequence[int32], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[int32]{}, err
	}
	return newSequence(data, varintDecodeFunc(func(v uint64) int32 { return int32(uint32(v)) })), nil
}

// GetPackedSint64 returns a lazy sequence over a packed sint64
// (zigzag-encoded) field.
func (r *Reader) GetPackedSint64() (Sequence[int64], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[int64]{}, err
	}
	return newSequence(data, varintDecodeFunc(func(v uint64) int64 { return DecodeZigZag64(v) })), nil
}

// GetPackedSint32 returns a lazy sequence over a packed sint32
// (zigzag-encoded) field.
func (r *Reader) GetPackedSint32() (Sequence[int32], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[int32]{}, err
	}
	return newSequence(data, varintDecodeFunc(func(v uint64) int32 { return DecodeZigZag32(uint32(v)) })), nil
}

// GetPackedBool returns a lazy sequence over a packed bool field.
func (r *Reader) GetPackedBool() (Sequence[bool], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[bool]{}, err
	}
	return newSequence(data, decodeFunc[bool](boolDecodeFunc)), nil
}

// GetPackedEnum returns a lazy sequence over a packed enum field.
func (r *Reader) GetPackedEnum() (Sequence[int32], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[int32]{}, err
	}
	return newSequence(data, varintDecodeFunc(func(v uint64) int32 { return int32(v) })), nil
}

// GetPackedFixed32 returns a lazy sequence over a packed fixed32
// field.
func (r *Reader) GetPackedFixed32() (Sequence[uint32], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[uint32]{}, err
	}
	return newSequence(data, fixed32DecodeFunc(func(v uint32) uint32 { return v })), nil
}

// GetPackedSfixed32 returns a lazy sequence over a packed sfixed32
// field.
func (r *Reader) GetPackedSfixed32() (Sequence[int32], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[int32]{}, err
	}
	return newSequence(data, fixed32DecodeFunc(func(v uint32) int32 { return int32(v) })), nil
}

// GetPackedFloat returns a lazy sequence over a packed float field.
func (r *Reader) GetPackedFloat() (Sequence[float32], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[float32]{}, err
	}
	return newSequence(data, fixed32DecodeFunc(bitsToFloat32)), nil
}

// GetPackedFixed64 returns a lazy sequence over a packed fixed64
// field.
func (r *Reader) GetPackedFixed64() (Sequence[uint64], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[uint64]{}, err
	}
	return newSequence(data, fixed64DecodeFunc(func(v uint64) uint64 { return v })), nil
}

// GetPackedSfixed64 returns a lazy sequence over a packed sfixed64
// field.
func (r *Reader) GetPackedSfixed64() (Sequence[int64], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[int64]{}, err
	}
	return newSequence(data, fixed64DecodeFunc(func(v uint64) int64 { return int64(v) })), nil
}

// GetPackedDouble returns a lazy sequence over a packed double field.
func (r *Reader) GetPackedDouble() (Sequence[float64], error) {
	data, err := r.getPackedPayload()
	if err != nil {
		return Sequence[float64]{}, err
	}
	return newSequence(data, fixed64DecodeFunc(bitsToFloat64)), nil
}
