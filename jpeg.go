package jpegmeta

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// JPEG markers. SOI and EOI are standalone; the rest introduce a
// segment with a 16 bit length that counts itself.
const (
	MarkerSOI  = 0xffd8
	MarkerEOI  = 0xffd9
	MarkerSOS  = 0xffda
	MarkerDQT  = 0xffdb
	MarkerDHT  = 0xffc4
	MarkerDRI  = 0xffdd
	MarkerCOM  = 0xfffe
	MarkerAPP0 = 0xffe0
	MarkerAPP1 = 0xffe1
)

var markerNames = map[uint16]string{
	MarkerSOI: "SOI",
	MarkerEOI: "EOI",
	MarkerSOS: "SOS",
	MarkerDQT: "DQT",
	MarkerDHT: "DHT",
	MarkerDRI: "DRI",
	MarkerCOM: "COM",
	0xffc0:    "SOF0",
	0xffc1:    "SOF1",
	0xffc2:    "SOF2",
	0xffc3:    "SOF3",
	0xffc5:    "SOF5",
	0xffc6:    "SOF6",
	0xffc7:    "SOF7",
	0xffc9:    "SOF9",
	0xffca:    "SOF10",
	0xffcb:    "SOF11",
	0xffcd:    "SOF13",
	0xffce:    "SOF14",
	0xffcf:    "SOF15",
	0xffe0:    "APP0",
	0xffe1:    "APP1",
	0xffe2:    "APP2",
	0xffe3:    "APP3",
	0xffe4:    "APP4",
	0xffe5:    "APP5",
	0xffe6:    "APP6",
	0xffe7:    "APP7",
	0xffe8:    "APP8",
	0xffe9:    "APP9",
	0xffea:    "APP10",
	0xffeb:    "APP11",
	0xffec:    "APP12",
	0xffed:    "APP13",
	0xffee:    "APP14",
	0xffef:    "APP15",
}

// MarkerName returns the display name of a JPEG marker.
func MarkerName(marker uint16) (string, bool) {
	name, ok := markerNames[marker]
	return name, ok
}

// markerLabel formats a marker for error messages, with its name when
// known.
func markerLabel(marker uint16) string {
	if name, ok := MarkerName(marker); ok {
		return fmt.Sprintf("%s (0x%04x)", name, marker)
	}
	return fmt.Sprintf("0x%04x", marker)
}

// Segment is one marker segment of a JPEG stream. Data is the segment
// body, without the marker and length words.
type Segment struct {
	Marker uint16
	Name   string
	Data   []byte
}

// Segments holds the marker segments of a stream, in file order.
type Segments []Segment

// Find returns the first segment with the given marker.
func (ss Segments) Find(marker uint16) (Segment, bool) {
	for _, s := range ss {
		if s.Marker == marker {
			return s, true
		}
	}
	return Segment{}, false
}

// Exif decodes the Exif block of the first APP1 segment that carries
// one.
func (ss Segments) Exif() (*Exif, error) {
	for _, s := range ss {
		if s.Marker == MarkerAPP1 && bytes.HasPrefix(s.Data, exifIdentifier) {
			return DecodeExif(s.Data)
		}
	}
	return nil, fmt.Errorf("%w: APP1 Exif", ErrSegmentNotFound)
}

// JFIF decodes the JFIF record of the first APP0 segment that carries
// one.
func (ss Segments) JFIF() (*JFIF, error) {
	for _, s := range ss {
		if s.Marker == MarkerAPP0 && bytes.HasPrefix(s.Data, jfifIdentifier) {
			return DecodeJFIF(s.Data)
		}
	}
	return nil, fmt.Errorf("%w: APP0 JFIF", ErrSegmentNotFound)
}

// DecodeSegments scans the marker segments of the JPEG stream r. The
// scan materializes each segment body and stops at the EOI marker, at
// the entropy coded data following SOS, or at a clean end of stream.
func DecodeSegments(r io.Reader) (Segments, error) {
	sr := newSegmentReader(r)

	soi, err := sr.read2()
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	if soi != MarkerSOI {
		return nil, fmt.Errorf("%w: first word 0x%04x", ErrNotJPEG, soi)
	}

	var segs Segments
	for {
		marker, err := sr.read2()
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				// A trailing odd byte is not a marker.
				return segs, nil
			}
			return nil, err
		}
		if sr.isEOF || marker == MarkerEOI {
			return segs, nil
		}
		if marker <= 0xff00 {
			// Not a marker; the entropy coded data has been reached.
			return segs, nil
		}

		length, err := sr.read2()
		if err != nil || sr.isEOF {
			return nil, fmt.Errorf("%w: segment %s has no length", ErrTruncated, markerLabel(marker))
		}
		if length < 2 {
			return nil, fmt.Errorf("%w: segment %s declares length %d", ErrTruncated, markerLabel(marker), length)
		}

		data, err := sr.readBytes(int(length) - 2)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %s body: %v", ErrTruncated, markerLabel(marker), err)
		}

		name, _ := MarkerName(marker)
		segs = append(segs, Segment{Marker: marker, Name: name, Data: data})

		if marker == MarkerSOS {
			// Entropy coded data follows; no more marker structure.
			return segs, nil
		}
	}
}
