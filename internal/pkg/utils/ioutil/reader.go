package ioutil

import (
	"bytes"
)

// Reader is a simple buffer reader for testing, it simulates stdin.
type Reader struct {
	*bytes.Buffer
}

func NewBufferedReader() *Reader {
	return &Reader{Buffer: &bytes.Buffer{}}
}

func (*Reader) Close() error { return nil }
