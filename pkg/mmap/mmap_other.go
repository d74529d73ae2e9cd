//go:build !unix

package mmap

import (
	"os"
)

// Open reads the whole file on platforms without a usable mmap. The Buffer
// contract is unchanged; only the acquisition strategy differs.
func Open(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		data = nil
	}
	return &Buffer{data: data}, nil
}

func (b *Buffer) release() error {
	b.data = nil
	return nil
}
