package codec

// Frame is the terminal unit extracted from a container file, passed opaquely
// to the frame decoder.
type Frame struct {
	SourceID string
	Bytes    []byte
}

// FrameExtractor composes the four layer iterators into one lazy sequence of
// frames for a whole mapped buffer. It is single-consumer and cannot be
// restarted or shared across goroutines.
type FrameExtractor struct {
	segments  *SegmentIterator
	blocks    *SpanIterator
	sequences *SpanIterator
	frames    *SpanIterator
	sourceID  string
	frame     Frame
}

// NewFrameExtractor returns an extractor over a whole container buffer.
func NewFrameExtractor(buf []byte) *FrameExtractor {
	return &FrameExtractor{segments: NewSegmentIterator(buf)}
}

// Next advances to the next frame, descending into deeper layers as each one
// drains. It returns false at end of input or when a segment fails to
// decompress; check Err to distinguish.
func (e *FrameExtractor) Next() bool {
	for {
		if e.frames != nil && e.frames.Next() {
			e.frame = Frame{SourceID: e.sourceID, Bytes: e.frames.Span().Payload}
			return true
		}
		if e.sequences != nil && e.sequences.Next() {
			e.frames = NewSpanIterator(FrameLayout, e.sequences.Span().Payload)
			continue
		}
		if e.blocks != nil && e.blocks.Next() {
			e.sequences = NewSpanIterator(SequenceLayout, e.blocks.Span().Payload)
			continue
		}
		if e.segments.Next() {
			seg := e.segments.Segment()
			e.sourceID = seg.SourceID
			e.blocks = NewSpanIterator(BlockLayout, seg.Payload)
			continue
		}
		return false
	}
}

// Frame returns the frame produced by the last successful Next.
func (e *FrameExtractor) Frame() Frame {
	return e.frame
}

// Err returns the error that ended extraction, if any.
func (e *FrameExtractor) Err() error {
	return e.segments.Err()
}
