package jpegmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// TagUserComment is the IFD tag holding a user comment with an eight
// byte character set prefix.
const TagUserComment = 0x9286

var (
	charsetASCII     = []byte("ASCII\x00\x00\x00")
	charsetJIS       = []byte("JIS\x00\x00\x00\x00\x00")
	charsetUnicode   = []byte("UNICODE\x00")
	charsetUndefined = []byte("\x00\x00\x00\x00\x00\x00\x00\x00")
)

// UserComment returns the decoded text of the UserComment entry. The
// second result reports whether the entry is present; absence is not
// an error.
func (x *Exif) UserComment() (string, bool, error) {
	e, ok := x.Tag(TagUserComment)
	if !ok {
		return "", false, nil
	}
	b, ok := e.Value.([]byte)
	if !ok {
		return "", true, fmt.Errorf("%w: user comment stored as %s", ErrUnsupportedType, e.Type.Name)
	}
	s, err := DecodeUserComment(b, x.ByteOrder)
	return s, true, err
}

// DecodeUserComment decodes a UserComment value: an eight byte
// character set prefix followed by the comment text. UNICODE comments
// are UTF-16 in the byte order of the enclosing block.
func DecodeUserComment(b []byte, byteOrder binary.ByteOrder) (string, error) {
	if len(b) < 8 {
		return "", fmt.Errorf("%w: user comment needs an 8 byte charset prefix, got %d bytes", ErrTruncated, len(b))
	}
	prefix, text := b[:8], b[8:]
	switch {
	case bytes.Equal(prefix, charsetASCII):
		return strings.TrimSpace(string(trimBytesNulls(text))), nil
	case bytes.Equal(prefix, charsetUnicode):
		endianness := unicode.BigEndian
		if byteOrder == binary.LittleEndian {
			endianness = unicode.LittleEndian
		}
		return decodeText(unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder(), text)
	case bytes.Equal(prefix, charsetJIS):
		return decodeText(japanese.ISO2022JP.NewDecoder(), text)
	case bytes.Equal(prefix, charsetUndefined):
		// The writer left the character set undefined.
		return decodeText(charmap.ISO8859_1.NewDecoder(), trimBytesNulls(text))
	default:
		return "", fmt.Errorf("%w: user comment charset % x", ErrUnsupportedType, prefix)
	}
}

func decodeText(dec *encoding.Decoder, b []byte) (string, error) {
	out, err := dec.Bytes(b)
	if err != nil {
		return "", err
	}
	s := strings.Trim(string(out), "\x00")
	return strings.TrimSpace(s), nil
}
