package codec

// Span is one decoded record of an inner layer: its fixed-size header and the
// payload of declared length. Both are views into the parent buffer.
type Span struct {
	Header  []byte
	Payload []byte
}

// SpanIterator lazily decodes length-prefixed records in a fixed layout from
// a byte span. It is shared by layers 2 through 4, which differ only in
// header size and length-field position.
type SpanIterator struct {
	layout SpanLayout
	buf    []byte
	off    int
	span   Span
}

// NewSpanIterator returns an iterator over the records in buf framed by
// layout.
func NewSpanIterator(layout SpanLayout, buf []byte) *SpanIterator {
	return &SpanIterator{layout: layout, buf: buf}
}

// Next advances to the next record. It returns false when the remaining bytes
// cannot hold a full header plus its declared payload; a record with a short
// payload is never produced.
func (it *SpanIterator) Next() bool {
	h := it.layout.HeaderSize
	if it.off+h > len(it.buf) {
		return false
	}

	header := it.buf[it.off : it.off+h]
	n := it.layout.payloadLength(header)
	if it.off+h+n > len(it.buf) {
		return false
	}

	it.span = Span{
		Header:  header,
		Payload: it.buf[it.off+h : it.off+h+n],
	}
	it.off += h + n
	return true
}

// Span returns the record decoded by the last successful Next.
func (it *SpanIterator) Span() Span {
	return it.span
}
