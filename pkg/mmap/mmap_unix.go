//go:build unix

package mmap

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps the file at path read-only. A zero-length file yields an empty
// Buffer rather than an error, since mmap(2) rejects zero-length mappings.
func Open(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	size := info.Size()
	if size == 0 {
		return &Buffer{file: f}, nil
	}
	if size > math.MaxInt {
		f.Close()
		return nil, fmt.Errorf("map %s: file too large (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("map %s: %w", path, err)
	}

	return &Buffer{data: data, file: f}, nil
}

func (b *Buffer) release() error {
	if b.data == nil {
		return nil
	}
	data := b.data
	b.data = nil
	return unix.Munmap(data)
}
