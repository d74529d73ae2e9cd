// Package mmap provides read-only memory-mapped access to logger input files.
//
// A Buffer exposes a file's bytes as a single slice without copying the file
// into process memory. Callers acquire a Buffer with Open and must release it
// with Close on every exit path; the conversion pipeline maps many files
// concurrently and an unreleased mapping leaks both address space and a file
// descriptor.
package mmap

import (
	"os"
)

// Buffer is an immutable view over a file's bytes, valid until Close.
type Buffer struct {
	data   []byte
	file   *os.File
	closed bool
}

// Bytes returns the mapped byte slice. The slice is only valid until Close.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the length of the mapped region.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Close releases the mapping and the underlying descriptor. It is idempotent;
// only the first call has any effect.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.release()
	if b.file != nil {
		if cerr := b.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
