package jpegmeta_test

import (
	"encoding/binary"
	"testing"

	"github.com/stoyosawa/jpegmeta"

	qt "github.com/frankban/quicktest"
)

func TestDecodeUserComment(t *testing.T) {
	c := qt.New(t)

	c.Run("ascii", func(c *qt.C) {
		b := append([]byte("ASCII\x00\x00\x00"), []byte("  Hello!  \x00\x00")...)
		s, err := jpegmeta.DecodeUserComment(b, binary.BigEndian)
		c.Assert(err, qt.IsNil)
		c.Assert(s, qt.Equals, "Hello!")
	})

	c.Run("unicode big endian", func(c *qt.C) {
		b := append([]byte("UNICODE\x00"), 0x00, 0x48, 0x00, 0x65, 0x00, 0x6c, 0x00, 0x6c, 0x00, 0x6f)
		s, err := jpegmeta.DecodeUserComment(b, binary.BigEndian)
		c.Assert(err, qt.IsNil)
		c.Assert(s, qt.Equals, "Hello")
	})

	c.Run("unicode little endian", func(c *qt.C) {
		b := append([]byte("UNICODE\x00"), 0x48, 0x00, 0x65, 0x00, 0x6c, 0x00, 0x6c, 0x00, 0x6f, 0x00)
		s, err := jpegmeta.DecodeUserComment(b, binary.LittleEndian)
		c.Assert(err, qt.IsNil)
		c.Assert(s, qt.Equals, "Hello")
	})

	c.Run("jis", func(c *qt.C) {
		b := append([]byte("JIS\x00\x00\x00\x00\x00"), 0x1b, 0x24, 0x42, 0x24, 0x22, 0x1b, 0x28, 0x42)
		s, err := jpegmeta.DecodeUserComment(b, binary.BigEndian)
		c.Assert(err, qt.IsNil)
		c.Assert(s, qt.Equals, "あ")
	})

	c.Run("undefined charset", func(c *qt.C) {
		b := append(make([]byte, 8), []byte("caf\xe9\x00")...)
		s, err := jpegmeta.DecodeUserComment(b, binary.BigEndian)
		c.Assert(err, qt.IsNil)
		c.Assert(s, qt.Equals, "café")
	})

	c.Run("unknown charset", func(c *qt.C) {
		b := append([]byte("KOI8-R\x00\x00"), []byte("text")...)
		_, err := jpegmeta.DecodeUserComment(b, binary.BigEndian)
		c.Assert(err, qt.ErrorIs, jpegmeta.ErrUnsupportedType)
	})

	c.Run("missing prefix", func(c *qt.C) {
		_, err := jpegmeta.DecodeUserComment([]byte("ASCII"), binary.BigEndian)
		c.Assert(err, qt.ErrorIs, jpegmeta.ErrTruncated)
	})
}

func TestExifUserComment(t *testing.T) {
	c := qt.New(t)

	c.Run("present", func(c *qt.C) {
		comment := append([]byte("UNICODE\x00"), 0x48, 0x00, 0x69, 0x00)
		entries := []wireEntry{
			{tag: jpegmeta.TagUserComment, typ: 7, count: uint32(len(comment)),
				raw: rawU32(binary.LittleEndian, tailOffset(1, 0))},
		}
		x, err := jpegmeta.DecodeExif(buildExifPayload(binary.LittleEndian, entries, comment))
		c.Assert(err, qt.IsNil)

		s, ok, err := x.UserComment()
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsTrue)
		c.Assert(s, qt.Equals, "Hi")
	})

	c.Run("absent", func(c *qt.C) {
		x, err := jpegmeta.DecodeExif(buildExifPayload(binary.BigEndian, nil, nil))
		c.Assert(err, qt.IsNil)

		s, ok, err := x.UserComment()
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsFalse)
		c.Assert(s, qt.Equals, "")
	})

	c.Run("stored under the wrong type", func(c *qt.C) {
		entries := []wireEntry{
			{tag: jpegmeta.TagUserComment, typ: 3, count: 1, raw: [4]byte{0x00, 0x01, 0x00, 0x00}},
		}
		x, err := jpegmeta.DecodeExif(buildExifPayload(binary.BigEndian, entries, nil))
		c.Assert(err, qt.IsNil)

		_, ok, err := x.UserComment()
		c.Assert(ok, qt.IsTrue)
		c.Assert(err, qt.ErrorIs, jpegmeta.ErrUnsupportedType)
	})
}
