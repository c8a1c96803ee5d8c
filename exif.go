package jpegmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var exifIdentifier = []byte("Exif\x00\x00")

const (
	byteOrderBigEndian    = 0x4d4d
	byteOrderLittleEndian = 0x4949
	tiffMagic             = 0x002a

	// The TIFF header sits at payload offset 6, after the identifier.
	// Offsets stored in the payload are relative to it and are
	// re-based by this amount.
	offsetAdjust = 6

	exifHeaderSize = 16
	entriesOffset  = 16
	entrySize      = 12
)

// Exif is a decoded APP1 Exif block.
type Exif struct {
	// ByteOrder of every multi-byte field in the block.
	ByteOrder binary.ByteOrder

	// FirstIFDOffset is the payload-relative offset of the first IFD.
	FirstIFDOffset uint32

	// EntryCount is the declared number of entries in the first IFD.
	EntryCount uint16

	// Entries of the first IFD, in directory order. Complete on
	// success: len(Entries) == int(EntryCount).
	Entries []Entry
}

// Entry is one 12-byte IFD directory entry together with its decoded
// value.
type Entry struct {
	TagID uint16

	// TagName is empty when the tag table has no entry for TagID.
	TagName string

	TypeID uint16
	Type   TypeDesc

	// Count is the declared number of values, not bytes.
	Count uint32

	// RawOffset is the verbatim value/offset field of the entry.
	RawOffset [4]byte

	// Value is the decoded value: []byte, string, uint64, int64 or
	// Rat[uint32] depending on the type descriptor. It never aliases
	// the decoded payload.
	Value any
}

// DecodeExif decodes the Exif block in data, the payload of a JPEG
// APP1 segment starting with the Exif identifier. It decodes the first
// IFD only; the IFD is assumed to follow the header directly, as
// written by practically all cameras. Decoding is all or nothing: any
// entry failure fails the block.
func DecodeExif(data []byte) (*Exif, error) {
	if !bytes.HasPrefix(data, exifIdentifier) {
		return nil, fmt.Errorf("%w: want %q", ErrIdentifier, exifIdentifier)
	}
	if len(data) < exifHeaderSize {
		return nil, fmt.Errorf("%w: Exif header needs %d bytes, got %d", ErrTruncated, exifHeaderSize, len(data))
	}

	x := &Exif{}
	switch marker := binary.BigEndian.Uint16(data[6:8]); marker {
	case byteOrderBigEndian:
		x.ByteOrder = binary.BigEndian
	case byteOrderLittleEndian:
		x.ByteOrder = binary.LittleEndian
	default:
		return nil, fmt.Errorf("%w: 0x%04x", ErrByteOrder, marker)
	}

	if magic := x.ByteOrder.Uint16(data[8:10]); magic != tiffMagic {
		return nil, fmt.Errorf("%w: 0x%04x", ErrMagic, magic)
	}

	x.FirstIFDOffset = x.ByteOrder.Uint32(data[10:14]) + offsetAdjust
	x.EntryCount = x.ByteOrder.Uint16(data[14:16])

	x.Entries = make([]Entry, 0, x.EntryCount)
	for i := 0; i < int(x.EntryCount); i++ {
		entry, err := decodeEntry(data, i, x.ByteOrder)
		if err != nil {
			return nil, err
		}
		x.Entries = append(x.Entries, entry)
	}
	return x, nil
}

// Tag returns the first entry with the given tag ID.
func (x *Exif) Tag(id uint16) (Entry, bool) {
	for _, e := range x.Entries {
		if e.TagID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// decodeEntry decodes the i-th 12-byte entry record:
//   - 2 bytes tag ID
//   - 2 bytes data type
//   - 4 bytes value count
//   - 4 bytes for the value itself if it fits, otherwise for the
//     offset where the value is stored.
func decodeEntry(data []byte, i int, byteOrder binary.ByteOrder) (Entry, error) {
	pos := entriesOffset + entrySize*i
	if pos+entrySize > len(data) {
		return Entry{}, fmt.Errorf("%w: entry %d at offset %d, payload is %d bytes", ErrTruncated, i, pos, len(data))
	}
	rec := data[pos : pos+entrySize]

	e := Entry{
		TagID:  byteOrder.Uint16(rec[0:2]),
		TypeID: byteOrder.Uint16(rec[2:4]),
		Count:  byteOrder.Uint32(rec[4:8]),
	}
	// An unknown tag keeps an empty name; only unknown types are
	// fatal.
	e.TagName, _ = TagName(e.TagID)
	copy(e.RawOffset[:], rec[8:12])

	desc, ok := TypeByID(e.TypeID)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %d (tag 0x%04x)", ErrUnknownType, e.TypeID, e.TagID)
	}
	e.Type = desc

	b, err := valueBytes(data, e, byteOrder)
	if err != nil {
		return Entry{}, err
	}
	v, err := decodeValue(desc, b, byteOrder)
	if err != nil {
		return Entry{}, err
	}
	e.Value = v
	return e, nil
}

// valueBytes locates the raw bytes of the entry value. Values of up to
// four bytes live in the offset field itself; larger ones at the
// payload-relative offset the field points to.
func valueBytes(data []byte, e Entry, byteOrder binary.ByteOrder) ([]byte, error) {
	size := uint64(e.Count) * uint64(e.Type.Size)
	if size <= 4 {
		return e.RawOffset[:size], nil
	}
	off := uint64(byteOrder.Uint32(e.RawOffset[:])) + offsetAdjust
	end := off + size
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: value of tag 0x%04x at [%d,%d), payload is %d bytes",
			ErrTruncated, e.TagID, off, end, len(data))
	}
	return data[off:end], nil
}

// String formats the entry as "Name (TYPE, count): value", with the
// hex tag ID standing in for unknown names.
func (e Entry) String() string {
	name := e.TagName
	if name == "" {
		name = fmt.Sprintf("0x%04x", e.TagID)
	}
	switch v := e.Value.(type) {
	case string:
		return fmt.Sprintf("%s (%s, %d): %q", name, e.Type.Name, e.Count, v)
	case []byte:
		return fmt.Sprintf("%s (%s, %d): % x", name, e.Type.Name, e.Count, v)
	default:
		return fmt.Sprintf("%s (%s, %d): %v", name, e.Type.Name, e.Count, v)
	}
}
