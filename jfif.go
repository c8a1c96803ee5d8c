// Copyright 2022 Satoshi Toyosawa
// SPDX-License-Identifier: MIT

package jpegmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var jfifIdentifier = []byte("JFIF\x00")

const jfifRecordSize = 14

// Unit is the unit of the JFIF pixel density fields.
type Unit uint8

const (
	UnitNone Unit = iota // densities give the aspect ratio only
	UnitInch
	UnitCM
)

func (u Unit) String() string {
	switch u {
	case UnitNone:
		return "no units"
	case UnitInch:
		return "dots per inch"
	case UnitCM:
		return "dots per cm"
	default:
		return fmt.Sprintf("unit(%d)", uint8(u))
	}
}

// JFIF is a decoded APP0 JFIF record.
type JFIF struct {
	Major      uint8
	Minor      uint8
	Units      Unit
	XDensity   uint16
	YDensity   uint16
	XThumbnail uint8
	YThumbnail uint8

	// Thumbnail holds the raw thumbnail pixels, nil when the
	// thumbnail dimensions are zero.
	Thumbnail []byte
}

// Version returns the JFIF version as major.minor.
func (j *JFIF) Version() string {
	return fmt.Sprintf("%d.%d", j.Major, j.Minor)
}

// DecodeJFIF decodes the JFIF record in data, the payload of a JPEG
// APP0 segment. The density fields are big-endian regardless of any
// Exif byte order elsewhere in the file.
func DecodeJFIF(data []byte) (*JFIF, error) {
	if !bytes.HasPrefix(data, jfifIdentifier) {
		return nil, fmt.Errorf("%w: want %q", ErrIdentifier, jfifIdentifier)
	}
	if len(data) < jfifRecordSize {
		return nil, fmt.Errorf("%w: JFIF record needs %d bytes, got %d", ErrTruncated, jfifRecordSize, len(data))
	}

	j := &JFIF{
		Major:      data[5],
		Minor:      data[6],
		Units:      Unit(data[7]),
		XDensity:   binary.BigEndian.Uint16(data[8:10]),
		YDensity:   binary.BigEndian.Uint16(data[10:12]),
		XThumbnail: data[12],
		YThumbnail: data[13],
	}
	if int(j.XThumbnail)*int(j.YThumbnail) > 0 {
		j.Thumbnail = make([]byte, len(data)-jfifRecordSize)
		copy(j.Thumbnail, data[jfifRecordSize:])
	}
	return j, nil
}
