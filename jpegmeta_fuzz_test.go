// Copyright 2022 Satoshi Toyosawa
// SPDX-License-Identifier: MIT

package jpegmeta_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stoyosawa/jpegmeta"
)

func FuzzDecodeExif(f *testing.F) {
	seeds := [][]byte{
		buildExifPayload(binary.BigEndian, nil, nil),
		buildExifPayload(binary.LittleEndian, []wireEntry{
			{tag: 0x0112, typ: 3, count: 1, raw: [4]byte{0x06, 0x00, 0x00, 0x00}},
		}, nil),
		buildExifPayload(binary.BigEndian, []wireEntry{
			{tag: 0x010f, typ: 2, count: 6, raw: rawU32(binary.BigEndian, tailOffset(1, 0))},
		}, []byte("Canon\x00")),
		[]byte("Exif\x00\x00MM\x00"),
		[]byte("x"),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		x, err := jpegmeta.DecodeExif(data)
		if err != nil {
			if !knownDecodeError(err) {
				t.Fatalf("unknown error in DecodeExif: %v %T", err, err)
			}
			return
		}
		if len(x.Entries) != int(x.EntryCount) {
			t.Fatalf("decoded %d entries, header declares %d", len(x.Entries), x.EntryCount)
		}
	})
}

func FuzzDecodeSegments(f *testing.F) {
	seeds := [][]byte{
		metaJPEG(),
		jpegStream(segment(jpegmeta.MarkerCOM, []byte("hello")), []byte{0xff, 0xd9}),
		jpegStream([]byte{0xff, 0xdb}),
		{0xff, 0xd8},
		{0x00},
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		segs, err := jpegmeta.DecodeSegments(bytes.NewReader(data))
		if err != nil {
			if !knownDecodeError(err) {
				t.Fatalf("unknown error in DecodeSegments: %v %T", err, err)
			}
			return
		}
		for _, s := range segs {
			if name, _ := jpegmeta.MarkerName(s.Marker); s.Name != name {
				t.Fatalf("segment 0x%04x named %q, marker table says %q", s.Marker, s.Name, name)
			}
		}
	})
}

// knownDecodeError reports whether err is one of the errors a
// malformed input may legitimately produce.
func knownDecodeError(err error) bool {
	for _, known := range []error{
		jpegmeta.ErrIdentifier,
		jpegmeta.ErrByteOrder,
		jpegmeta.ErrMagic,
		jpegmeta.ErrTruncated,
		jpegmeta.ErrUnknownType,
		jpegmeta.ErrUnsupportedType,
		jpegmeta.ErrZeroDenominator,
		jpegmeta.ErrNotJPEG,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
