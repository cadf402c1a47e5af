package wire

// reserveBytes is the number of zero bytes reserved after a tag when
// a nested submessage's encoded length isn't known up front. It must
// be large enough to hold a varint-encoded length for any message
// this codec would plausibly emit — protozero reserves
// sizeof(uint32)*8/7+1 bytes for the same reason, which works out to
// 5.
const reserveBytes = 5

// noRollback marks a Writer whose size was known at open time: there
// is nothing to patch or erase when it closes, mirroring protozero's
// size_is_known sentinel.
const noRollback = -1

// Writer appends protobuf wire-format fields to a Buffer. The root
// Writer returned by NewWriter has no parent and writes directly into
// the buffer; OpenMessage and OpenMessageSized return child Writers
// scoped to a nested submessage, which MUST be closed (via Close or
// Rollback) before any sibling field is written to the same parent.
//
// A Writer is not safe for concurrent use, and at most one child
// Writer may be open on a given parent at a time — opening a second
// child before the first is closed corrupts the buffer, since both
// would be writing into what the first child still considers its own
// reserved region. A Writer is inert once Close or Rollback has run on
// it: any further Add*/OpenMessage* call on it panics rather than
// appending stray bytes into the shared buffer.
type Writer struct {
	buf          Buffer
	parent       *Writer
	rollbackPos  int
	pos          int
	declaredSize int
	closed       bool
	openChild    *Writer
}

// NewWriter returns a root Writer appending into buf.
func NewWriter(buf Buffer) *Writer {
	return &Writer{buf: buf}
}

// NewByteWriter returns a root Writer backed by a fresh ByteBuffer.
func NewByteWriter() *Writer {
	return NewWriter(NewByteBuffer())
}

// Len returns the current length of the underlying buffer.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reserve hints that extra more bytes will be appended soon.
func (w *Writer) Reserve(extra int) {
	w.buf.Reserve(extra)
}

// Bytes returns the buffer's current contents. The slice aliases the
// buffer's storage.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) appendTag(tag FieldNumber, wt WireType) {
	precondition(!w.closed, "writer is closed")
	precondition(ValidFieldNumber(tag), "field number out of range or reserved")
	precondition(w.openChild == nil, "cannot write a field while a nested writer is still open")
	t := MakeTag(tag, wt)
	w.buf.Append(appendVarint(nil, uint64(t)))
}

// ---- scalar field emission ----

func (w *Writer) AddUint64(tag FieldNumber, v uint64) {
	w.appendTag(tag, WireVarint)
	w.buf.Append(appendVarint(nil, v))
}

func (w *Writer) AddUint32(tag FieldNumber, v uint32) { w.AddUint64(tag, uint64(v)) }

func (w *Writer) AddInt64(tag FieldNumber, v int64) { w.AddUint64(tag, uint64(v)) }

func (w *Writer) AddInt32(tag FieldNumber, v int32) { w.AddUint64(tag, uint64(uint32(v))) }

func (w *Writer) AddSint64(tag FieldNumber, v int64) { w.AddUint64(tag, EncodeZigZag64(v)) }

func (w *Writer) AddSint32(tag FieldNumber, v int32) { w.AddUint64(tag, uint64(EncodeZigZag32(v))) }

func (w *Writer) AddBool(tag FieldNumber, v bool) {
	if v {
		w.AddUint64(tag, 1)
	} else {
		w.AddUint64(tag, 0)
	}
}

func (w *Writer) AddEnum(tag FieldNumber, v int32) { w.AddUint64(tag, uint64(uint32(v))) }

func (w *Writer) AddFixed64(tag FieldNumber, v uint64) {
	w.appendTag(tag, WireFixed64)
	w.buf.Append(appendFixed64(nil, v))
}

func (w *Writer) AddSfixed64(tag FieldNumber, v int64) { w.AddFixed64(tag, uint64(v)) }

func (w *Writer) AddDouble(tag FieldNumber, v float64) { w.AddFixed64(tag, float64ToBits(v)) }

func (w *Writer) AddFixed32(tag FieldNumber, v uint32) {
	w.appendTag(tag, WireFixed32)
	w.buf.Append(appendFixed32(nil, v))
}

func (w *Writer) AddSfixed32(tag FieldNumber, v int32) { w.AddFixed32(tag, uint32(v)) }

func (w *Writer) AddFloat(tag FieldNumber, v float32) { w.AddFixed32(tag, float32ToBits(v)) }

// ---- length-delimited field emission ----

func (w *Writer) AddBytes(tag FieldNumber, v []byte) {
	w.appendTag(tag, WireBytes)
	w.buf.Append(appendVarint(nil, uint64(len(v))))
	w.buf.Append(v)
}

func (w *Writer) AddString(tag FieldNumber, v string) {
	w.AddBytes(tag, []byte(v))
}

// AddMessage appends a nested message whose encoded bytes are already
// fully known, without going through the back-patching open/close
// protocol — there is nothing to back-patch when the length is known
// up front.
func (w *Writer) AddMessage(tag FieldNumber, payload []byte) {
	w.AddBytes(tag, payload)
}

// ---- nested submessage protocol ----

// OpenMessage begins a nested submessage of unknown encoded size. The
// returned Writer must be closed with Close (or discarded with
// Rollback) before w is used again. If nothing is written to the
// child before it closes, the tag is rolled back entirely — the
// parent buffer ends up exactly as if OpenMessage had never been
// called.
func (w *Writer) OpenMessage(tag FieldNumber) *Writer {
	precondition(!w.closed, "writer is closed")
	rollbackPos := w.buf.Len()
	w.appendTag(tag, WireBytes)
	w.buf.AppendZeros(reserveBytes)
	child := &Writer{
		buf:         w.buf,
		parent:      w,
		rollbackPos: rollbackPos,
		pos:         w.buf.Len(),
	}
	w.openChild = child
	return child
}

// OpenMessageSized begins a nested submessage whose encoded size the
// caller already knows. No back-patching is needed — the length
// varint is written immediately — but the caller must write exactly
// size bytes into the child before calling Close; writing a different
// number is a precondition violation.
func (w *Writer) OpenMessageSized(tag FieldNumber, size int) *Writer {
	precondition(!w.closed, "writer is closed")
	w.appendTag(tag, WireBytes)
	w.buf.Append(appendVarint(nil, uint64(size)))
	w.buf.Reserve(size)
	child := &Writer{
		buf:          w.buf,
		parent:       w,
		rollbackPos:  noRollback,
		pos:          w.buf.Len(),
		declaredSize: size,
	}
	w.openChild = child
	return child
}

// Close finishes a nested Writer opened with OpenMessage or
// OpenMessageSized, patching its length prefix (or verifying it, for
// the known-size path) and returning control to the parent.
func (w *Writer) Close() {
	precondition(w.parent != nil, "Close called on a root writer")
	precondition(!w.closed, "Close called twice on the same nested writer")
	precondition(w.openChild == nil, "Close called while this writer's own nested writer is still open")
	w.closed = true
	w.parent.openChild = nil

	if w.rollbackPos == noRollback {
		precondition(w.buf.Len()-w.pos == w.declaredSize, "submessage wrote a different number of bytes than its declared size")
		return
	}

	length := w.buf.Len() - w.pos
	if length == 0 {
		w.buf.Erase(w.rollbackPos, w.buf.Len())
		return
	}
	w.commit(length)
}

func (w *Writer) commit(length int) {
	tmp := appendVarint(nil, uint64(length))
	precondition(len(tmp) <= reserveBytes, "submessage length varint exceeds reserved space")
	base := w.pos - reserveBytes
	for i, b := range tmp {
		w.buf.Set(base+i, b)
	}
	w.buf.Erase(base+len(tmp), w.pos)
}

// Rollback discards everything written to a nested Writer opened with
// OpenMessage, erasing the tag and reservation along with it — the
// only cancellation mechanism this codec offers, per its synchronous,
// single-pass design.
func (w *Writer) Rollback() {
	precondition(w.parent != nil, "Rollback called on a root writer")
	precondition(!w.closed, "Rollback called after Close")
	precondition(w.rollbackPos != noRollback, "Rollback called on a known-size submessage")
	precondition(w.openChild == nil, "Rollback called while this writer's own nested writer is still open")
	w.closed = true
	w.parent.openChild = nil
	w.buf.Erase(w.rollbackPos, w.buf.Len())
}

// ---- packed repeated field emission ----
//
// Fixed-width element kinds (fixed32, sfixed32, float, fixed64,
// sfixed64, double) always know their total encoded length ahead of
// time — element count times element width — so they go through
// OpenMessageSized directly. Variable-width kinds (every varint and
// zigzag kind, including bool) don't: what's unknown isn't the
// element count, which the caller's slice already fixes, but the
// total number of encoded bytes those elements will occupy, so they
// go through the generic back-patching OpenMessage path instead.

func (w *Writer) AddPackedUint64(tag FieldNumber, values []uint64) {
	child := w.OpenMessage(tag)
	for _, v := range values {
		child.buf.Append(appendVarint(nil, v))
	}
	child.Close()
}

func (w *Writer) AddPackedUint32(tag FieldNumber, values []uint32) {
	child := w.OpenMessage(tag)
	for _, v := range values {
		child.buf.Append(appendVarint(nil, uint64(v)))
	}
	child.Close()
}

func (w *Writer) AddPackedInt64(tag FieldNumber, values []int64) {
	child := w.OpenMessage(tag)
	for _, v := range values {
		child.buf.Append(appendVarint(nil, uint64(v)))
	}
	child.Close()
}

func (w *Writer) AddPackedInt32(tag FieldNumber, values []int32) {
	child := w.OpenMessage(tag)
	for _, v := range values {
		child.buf.Append(appendVarint(nil, uint64(uint32(v))))
	}
	child.Close()
}

func (w *Writer) AddPackedSint64(tag FieldNumber, values []int64) {
	child := w.OpenMessage(tag)
	for _, v := range values {
		child.buf.Append(appendVarint(nil, EncodeZigZag64(v)))
	}
	child.Close()
}

func (w *Writer) AddPackedSint32(tag FieldNumber, values []int32) {
	child := w.OpenMessage(tag)
	for _, v := range values {
		child.buf.Append(appendVarint(nil, uint64(EncodeZigZag32(v))))
	}
	child.Close()
}

func (w *Writer) AddPackedBool(tag FieldNumber, values []bool) {
	child := w.OpenMessage(tag)
	for _, v := range values {
		if v {
			child.buf.Append([]byte{1})
		} else {
			child.buf.Append([]byte{0})
		}
	}
	child.Close()
}

func (w *Writer) AddPackedEnum(tag FieldNumber, values []int32) {
	w.AddPackedInt32(tag, values)
}

func (w *Writer) AddPackedFixed32(tag FieldNumber, values []uint32) {
	if len(values) == 0 {
		return
	}
	payload := make([]byte, 0, len(values)*4)
	for _, v := range values {
		payload = appendFixed32(payload, v)
	}
	w.OpenMessageSized(tag, len(payload)).writeSizedPayload(payload)
}

func (w *Writer) AddPackedSfixed32(tag FieldNumber, values []int32) {
	if len(values) == 0 {
		return
	}
	payload := make([]byte, 0, len(values)*4)
	for _, v := range values {
		payload = appendFixed32(payload, uint32(v))
	}
	w.OpenMessageSized(tag, len(payload)).writeSizedPayload(payload)
}

func (w *Writer) AddPackedFloat(tag FieldNumber, values []float32) {
	if len(values) == 0 {
		return
	}
	payload := make([]byte, 0, len(values)*4)
	for _, v := range values {
		payload = appendFixed32(payload, float32ToBits(v))
	}
	w.OpenMessageSized(tag, len(payload)).writeSizedPayload(payload)
}

func (w *Writer) AddPackedFixed64(tag FieldNumber, values []uint64) {
	if len(values) == 0 {
		return
	}
	payload := make([]byte, 0, len(values)*8)
	for _, v := range values {
		payload = appendFixed64(payload, v)
	}
	w.OpenMessageSized(tag, len(payload)).writeSizedPayload(payload)
}

func (w *Writer) AddPackedSfixed64(tag FieldNumber, values []int64) {
	if len(values) == 0 {
		return
	}
	payload := make([]byte, 0, len(values)*8)
	for _, v := range values {
		payload = appendFixed64(payload, uint64(v))
	}
	w.OpenMessageSized(tag, len(payload)).writeSizedPayload(payload)
}

func (w *Writer) AddPackedDouble(tag FieldNumber, values []float64) {
	if len(values) == 0 {
		return
	}
	payload := make([]byte, 0, len(values)*8)
	for _, v := range values {
		payload = appendFixed64(payload, float64ToBits(v))
	}
	w.OpenMessageSized(tag, len(payload)).writeSizedPayload(payload)
}

func (w *Writer) writeSizedPayload(payload []byte) {
	w.buf.Append(payload)
	w.Close()
}
