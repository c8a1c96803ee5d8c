// Copyright 2022 Satoshi Toyosawa
// SPDX-License-Identifier: MIT

package jpegmeta

import (
	"encoding/binary"
	"io"
)

// segmentReader wraps the JPEG stream for the segment scan. JPEG
// structure is big-endian throughout. Not safe for concurrent use.
type segmentReader struct {
	r   io.Reader
	buf [2]byte

	// isEOF is set when the stream ends cleanly on a word boundary.
	isEOF bool
}

func newSegmentReader(r io.Reader) *segmentReader {
	return &segmentReader{r: r}
}

// read2 returns the next big-endian 16 bit word. A clean end of stream
// sets isEOF and returns 0; a stream ending inside the word returns
// io.ErrUnexpectedEOF.
func (s *segmentReader) read2() (uint16, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		if err == io.EOF {
			s.isEOF = true
			return 0, nil
		}
		return 0, err
	}
	return binary.BigEndian.Uint16(s.buf[:]), nil
}

// readBytes returns the next n bytes in a fresh slice.
func (s *segmentReader) readBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, err
	}
	return b, nil
}
