// Copyright 2022 Satoshi Toyosawa
// SPDX-License-Identifier: MIT

// Package jpegmeta decodes the metadata carried in JPEG marker
// segments: the Exif block in APP1 and the JFIF record in APP0.
package jpegmeta

import (
	"errors"
	"io"
)

var (
	// ErrIdentifier is returned when a metadata payload does not start
	// with its identifier (Exif in APP1, JFIF in APP0).
	ErrIdentifier = errors.New("jpegmeta: invalid identifier")

	// ErrByteOrder is returned when the TIFF byte order marker is
	// neither big nor little endian.
	ErrByteOrder = errors.New("jpegmeta: unknown byte order marker")

	// ErrMagic is returned when the TIFF header constant is not 0x002a.
	ErrMagic = errors.New("jpegmeta: bad TIFF header constant")

	// ErrTruncated is returned when a read would run past the end of
	// the available bytes.
	ErrTruncated = errors.New("jpegmeta: data out of range")

	// ErrUnknownType is returned when an IFD entry declares a data
	// type missing from the type table.
	ErrUnknownType = errors.New("jpegmeta: unknown IFD data type")

	// ErrUnsupportedType is returned when a value cannot be
	// represented by any of the conversion kinds.
	ErrUnsupportedType = errors.New("jpegmeta: unsupported conversion")

	// ErrZeroDenominator is returned for rational values stored with a
	// zero denominator.
	ErrZeroDenominator = errors.New("jpegmeta: rational with zero denominator")

	// ErrNotJPEG is returned when a stream does not start with the SOI
	// marker.
	ErrNotJPEG = errors.New("jpegmeta: missing SOI marker")

	// ErrSegmentNotFound is returned when a requested segment is
	// absent from the stream.
	ErrSegmentNotFound = errors.New("jpegmeta: segment not found")
)

// ExifFromJPEG scans the JPEG stream r and decodes its Exif block.
func ExifFromJPEG(r io.Reader) (*Exif, error) {
	segs, err := DecodeSegments(r)
	if err != nil {
		return nil, err
	}
	return segs.Exif()
}

// JFIFFromJPEG scans the JPEG stream r and decodes its JFIF record.
func JFIFFromJPEG(r io.Reader) (*JFIF, error) {
	segs, err := DecodeSegments(r)
	if err != nil {
		return nil, err
	}
	return segs.JFIF()
}
