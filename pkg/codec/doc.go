// Package codec decodes the nested binary container format produced by the
// vehicle data logger.
//
// A logger file is a sequence of four length-prefixed layers. All multi-byte
// length fields are big-endian unsigned integers.
//
// # Layer 1 — segment (outermost, compressed)
//
//	[SourceID(18, ASCII)][Reserved(13)][PayloadLen(4)][gzip payload...]
//
// The 35-byte header carries the originating bus identifier in its first 18
// bytes and the compressed payload length at offset 31. The payload is a gzip
// stream; its decompressed size is not declared up front.
//
// # Layer 2 — block
//
//	[Header(16) with PayloadLen(2) at offset 14][payload...]
//
// # Layer 3 — sequence
//
//	[Header(8) with PayloadLen(4) at offset 4][payload...]
//
// # Layer 4 — frame (innermost)
//
//	[Header(4) with PayloadLen(2) at offset 2][frame bytes...]
//
// Each decompressed segment payload is a run of blocks, each block payload a
// run of sequences, each sequence payload a run of frames. The frame bytes are
// the terminal unit handed to the frame decoder.
//
// # Iteration
//
// Each layer is exposed as a lazy iterator over a byte span:
//
//	it := codec.NewSegmentIterator(buf)
//	for it.Next() {
//	    seg := it.Segment()
//	    // seg.SourceID, seg.Payload (decompressed)
//	}
//	if err := it.Err(); err != nil {
//	    return err // decompression failed; offset and source id attached
//	}
//
// FrameExtractor composes all four layers into a single iterator of
// (source id, frame bytes) pairs for a whole file.
//
// # Truncation
//
// Loggers may be cut off mid-record, so trailing partial data is not an
// error: when fewer bytes remain than a header requires, or a declared
// payload length overruns the remaining span, the sequence simply ends.
// An iterator never produces a record with a short payload.
//
// # Thread safety
//
// Iterators are single-consumer and non-restartable. They hold read-only
// views into their parent's buffer and never copy payload bytes, except for
// layer-1 decompression output.
package codec
