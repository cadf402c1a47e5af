package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterScalarRoundTrip(t *testing.T) {
	w := NewByteWriter()
	w.AddUint64(1, 150)
	r := NewReader(w.Bytes())
	ok, err := r.Step()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, FieldNumber(1), r.Tag())
	require.Equal(t, WireVarint, r.WireType())
	v, err := r.GetUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(150), v)
	require.False(t, r.More())
}

func TestWriterEncodesVarint150ExactBytes(t *testing.T) {
	w := NewByteWriter()
	w.AddUint64(1, 150)
	require.Equal(t, []byte{0x08, 0x96, 0x01}, w.Bytes())
}

func TestWriterEncodesStringTesting(t *testing.T) {
	w := NewByteWriter()
	w.AddString(1, "testing")
	require.Equal(t, []byte{0x0A, 0x07, 0x74, 0x65, 0x73, 0x74, 0x69, 0x6E, 0x67}, w.Bytes())
}

func TestNestedSubmessageBackPatch(t *testing.T) {
	outer := NewByteWriter()
	inner := outer.OpenMessage(2)
	inner.AddUint64(1, 5)
	inner.Close()

	r := NewReader(outer.Bytes())
	ok, err := r.Step()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, FieldNumber(2), r.Tag())
	sub, err := r.GetMessage()
	require.NoError(t, err)
	ok, err = sub.Step()
	require.NoError(t, err)
	require.True(t, ok)
	v, err := sub.GetUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)
	require.False(t, sub.More())
	require.False(t, r.More())
}

func TestEmptyNestedSubmessageRollsBack(t *testing.T) {
	w := NewByteWriter()
	before := append([]byte{}, w.Bytes()...)
	child := w.OpenMessage(3)
	child.Close()
	require.Equal(t, before, w.Bytes())
}

func TestWriterInterlockPanicsOnSiblingWriteWhileChildOpen(t *testing.T) {
	w := NewByteWriter()
	w.OpenMessage(2) // intentionally left open
	require.Panics(t, func() { w.AddUint64(3, 9) })
}

func TestWriterInterlockPanicsOnOpeningSecondChild(t *testing.T) {
	w := NewByteWriter()
	w.OpenMessage(1) // intentionally left open
	require.Panics(t, func() { w.OpenMessage(2) })
}

func TestWriterInterlockClearsAfterClose(t *testing.T) {
	w := NewByteWriter()
	child := w.OpenMessage(2)
	child.AddUint64(1, 1)
	child.Close()
	require.NotPanics(t, func() { w.AddUint64(3, 9) })
}

func TestWriterInterlockClearsAfterRollback(t *testing.T) {
	w := NewByteWriter()
	child := w.OpenMessage(2)
	child.AddUint64(1, 1)
	child.Rollback()
	require.NotPanics(t, func() { w.AddUint64(3, 9) })
}

func TestNestedSubmessageSiblingFields(t *testing.T) {
	w := NewByteWriter()
	w.AddUint64(1, 1)
	child := w.OpenMessage(2)
	child.AddString(1, "hi")
	child.Close()
	w.AddUint64(3, 9)

	r := NewReader(w.Bytes())
	ok, err := r.StepTo(3)
	require.NoError(t, err)
	require.True(t, ok)
	v, err := r.GetUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(9), v)
}

func TestClosePanicsOnRootWriter(t *testing.T) {
	w := NewByteWriter()
	require.Panics(t, func() { w.Close() })
}

func TestCloseTwicePanics(t *testing.T) {
	w := NewByteWriter()
	child := w.OpenMessage(1)
	child.Close()
	require.Panics(t, func() { child.Close() })
}

func TestRollbackDiscardsNestedContent(t *testing.T) {
	w := NewByteWriter()
	before := append([]byte{}, w.Bytes()...)
	child := w.OpenMessage(4)
	child.AddUint64(1, 12345)
	child.Rollback()
	require.Equal(t, before, w.Bytes())
}

func TestRollbackOnKnownSizeWriterPanics(t *testing.T) {
	w := NewByteWriter()
	payload := []byte("fixed")
	child := w.OpenMessageSized(1, len(payload))
	child.buf.Append(payload)
	require.Panics(t, func() { child.Rollback() })
	child.Close()
}

func TestOpenMessageSizedWrongLengthPanics(t *testing.T) {
	w := NewByteWriter()
	child := w.OpenMessageSized(1, 4)
	child.buf.Append([]byte{1, 2})
	require.Panics(t, func() { child.Close() })
}

func TestAddEmittingReservedFieldNumberPanics(t *testing.T) {
	w := NewByteWriter()
	require.Panics(t, func() { w.AddUint64(19500, 1) })
}

func TestPackedFixed32RoundTrip(t *testing.T) {
	w := NewByteWriter()
	w.AddPackedFixed32(5, []uint32{1, 2, 3})
	r := NewReader(w.Bytes())
	ok, err := r.Step()
	require.NoError(t, err)
	require.True(t, ok)
	seq, err := r.GetPackedFixed32()
	require.NoError(t, err)
	it := seq.Iterator()
	var got []uint32
	for it.HasNext() {
		v, err := it.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Equal(t, []uint32{1, 2, 3}, got)
}

func TestPackedSint32SumsToFive(t *testing.T) {
	// spec scenario: packed sint32 [-17, 22] sums to 5
	w := NewByteWriter()
	w.AddPackedSint32(7, []int32{-17, 22})
	r := NewReader(w.Bytes())
	ok, err := r.Step()
	require.NoError(t, err)
	require.True(t, ok)
	seq, err := r.GetPackedSint32()
	require.NoError(t, err)
	it := seq.Iterator()
	var sum int32
	for it.HasNext() {
		v, err := it.Next()
		require.NoError(t, err)
		sum += v
	}
	require.Equal(t, int32(5), sum)
}

func TestPackedVarintEmptySliceRollsBack(t *testing.T) {
	w := NewByteWriter()
	before := append([]byte{}, w.Bytes()...)
	w.AddPackedUint64(8, nil)
	require.Equal(t, before, w.Bytes())
}

func TestPackedFixed32EmptySliceWritesNothing(t *testing.T) {
	w := NewByteWriter()
	before := append([]byte{}, w.Bytes()...)
	w.AddPackedFixed32(8, nil)
	require.Equal(t, before, w.Bytes())
}

func TestPackedDoubleEmptySliceWritesNothing(t *testing.T) {
	w := NewByteWriter()
	before := append([]byte{}, w.Bytes()...)
	w.AddPackedDouble(8, []float64{})
	require.Equal(t, before, w.Bytes())
}

func TestWriteAfterCloseOnChildPanics(t *testing.T) {
	w := NewByteWriter()
	child := w.OpenMessage(2)
	child.AddUint64(1, 1)
	child.Close()
	require.Panics(t, func() { child.AddUint64(2, 2) })
}

func TestWriteAfterRollbackOnChildPanics(t *testing.T) {
	w := NewByteWriter()
	child := w.OpenMessage(2)
	child.AddUint64(1, 1)
	child.Rollback()
	require.Panics(t, func() { child.AddUint64(2, 2) })
}

func TestOpenMessageAfterCloseOnChildPanics(t *testing.T) {
	w := NewByteWriter()
	child := w.OpenMessage(2)
	child.Close()
	require.Panics(t, func() { child.OpenMessage(3) })
}

func TestSequenceIsRestartable(t *testing.T) {
	w := NewByteWriter()
	w.AddPackedUint32(9, []uint32{1, 2, 3})
	r := NewReader(w.Bytes())
	_, err := r.Step()
	require.NoError(t, err)
	seq, err := r.GetPackedUint32()
	require.NoError(t, err)

	first := collectUint32(t, seq.Iterator())
	second := collectUint32(t, seq.Iterator())
	require.Equal(t, first, second)
}

func collectUint32(t *testing.T, it *Iterator[uint32]) []uint32 {
	var out []uint32
	for it.HasNext() {
		v, err := it.Next()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}
