package jpegmeta

import (
	"encoding/binary"
	"fmt"
)

// Kind is the conversion applied to a value once its bytes are
// located. The set is closed; every descriptor in the type table maps
// to exactly one of these.
type Kind uint8

const (
	KindBytes Kind = iota + 1
	KindString
	KindInt
	KindRational
)

func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindRational:
		return "rational"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// decodeValue converts the located value bytes according to the
// descriptor. The returned value owns its memory.
func decodeValue(desc TypeDesc, b []byte, byteOrder binary.ByteOrder) (any, error) {
	switch desc.Kind {
	case KindBytes:
		v := make([]byte, len(b))
		copy(v, b)
		return v, nil
	case KindString:
		// The final byte holds the NUL terminator and is dropped,
		// terminator or not.
		if len(b) == 0 {
			return "", nil
		}
		return string(b[:len(b)-1]), nil
	case KindInt:
		return decodeInt(b, byteOrder, desc.Signed)
	case KindRational:
		return decodeRational(b, byteOrder)
	default:
		return nil, fmt.Errorf("%w: kind %s", ErrUnsupportedType, desc.Kind)
	}
}

// decodeInt interprets the whole of b as a single integer in the given
// byte order. Multi-value integer entries concatenate into one number.
func decodeInt(b []byte, byteOrder binary.ByteOrder, signed bool) (any, error) {
	if len(b) > 8 {
		return nil, fmt.Errorf("%w: %d byte integer", ErrUnsupportedType, len(b))
	}
	v := uintN(b, byteOrder)
	if !signed {
		return v, nil
	}
	shift := 64 - 8*uint(len(b))
	return int64(v<<shift) >> shift, nil
}

func uintN(b []byte, byteOrder binary.ByteOrder) uint64 {
	var v uint64
	if byteOrder == binary.LittleEndian {
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
		return v
	}
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// decodeRational splits the first eight bytes of b into the numerator
// and denominator, both unsigned regardless of the descriptor's signed
// flag. Values past the first rational are not decoded.
func decodeRational(b []byte, byteOrder binary.ByteOrder) (Rat[uint32], error) {
	if len(b) < 8 {
		return nil, fmt.Errorf("%w: rational needs 8 bytes, got %d", ErrTruncated, len(b))
	}
	num := byteOrder.Uint32(b[0:4])
	den := byteOrder.Uint32(b[4:8])
	r, err := NewRat[uint32](num, den)
	if err != nil {
		return nil, fmt.Errorf("%w: %d/0", ErrZeroDenominator, num)
	}
	return r, nil
}
