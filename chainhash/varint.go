// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"encoding/binary"
	"fmt"

	"github.com/txforge/txcore/er"
)

// VarInt is the canonical compact-size length-prefix encoding used
// throughout the wire format. The type itself carries only String;
// encoding and decoding are done by the package functions WriteVarInt and
// ReadVarInt, which work on plain uint64 values and take the strict-mode
// rule as a parameter.
type VarInt uint64

// VarIntSerializeSize returns the number of bytes it would take to encode
// v using the canonical compact encoding.
func VarIntSerializeSize(v uint64) int {
	if v < 0xfd {
		return 1
	}
	if v <= 0xffff {
		return 3
	}
	if v <= 0xffffffff {
		return 5
	}
	return 9
}

// WriteVarInt appends the canonical compact encoding of v to buf and
// returns the result.
func WriteVarInt(buf []byte, v uint64) []byte {
	switch {
	case v < 0xfd:
		return append(buf, byte(v))
	case v <= 0xffff:
		b := make([]byte, 3)
		b[0] = 0xfd
		binary.LittleEndian.PutUint16(b[1:], uint16(v))
		return append(buf, b...)
	case v <= 0xffffffff:
		b := make([]byte, 5)
		b[0] = 0xfe
		binary.LittleEndian.PutUint32(b[1:], uint32(v))
		return append(buf, b...)
	default:
		b := make([]byte, 9)
		b[0] = 0xff
		binary.LittleEndian.PutUint64(b[1:], v)
		return append(buf, b...)
	}
}

// ReadVarInt decodes a VarInt from the head of buf, returning the value,
// the number of bytes consumed, and any error. When strict is true, a
// non-minimal encoding is rejected with KindNonCompactVarInt.
func ReadVarInt(buf []byte, strict bool) (uint64, int, er.R) {
	if len(buf) < 1 {
		return 0, 0, er.New(er.KindTruncated, "VarInt: empty buffer")
	}

	discriminant := buf[0]
	switch discriminant {
	case 0xff:
		if len(buf) < 9 {
			return 0, 0, er.Errorf(er.KindMalformedVarInt,
				"malformed VarInt: got %x, need 9 bytes", buf)
		}
		v := binary.LittleEndian.Uint64(buf[1:9])
		if strict && v <= 0xffffffff {
			return 0, 0, er.Errorf(er.KindNonCompactVarInt,
				"VarInt must be compact: got %x", buf[:9])
		}
		return v, 9, nil
	case 0xfe:
		if len(buf) < 5 {
			return 0, 0, er.Errorf(er.KindMalformedVarInt,
				"malformed VarInt: got %x, need 5 bytes", buf)
		}
		v := uint64(binary.LittleEndian.Uint32(buf[1:5]))
		if strict && v <= 0xffff {
			return 0, 0, er.Errorf(er.KindNonCompactVarInt,
				"VarInt must be compact: got %x", buf[:5])
		}
		return v, 5, nil
	case 0xfd:
		if len(buf) < 3 {
			return 0, 0, er.Errorf(er.KindMalformedVarInt,
				"malformed VarInt: got %x, need 3 bytes", buf)
		}
		v := uint64(binary.LittleEndian.Uint16(buf[1:3]))
		if strict && v < 0xfd {
			return 0, 0, er.Errorf(er.KindNonCompactVarInt,
				"VarInt must be compact: got %x", buf[:3])
		}
		return v, 3, nil
	default:
		return uint64(discriminant), 1, nil
	}
}

// String renders the VarInt's underlying value for debugging.
func (v VarInt) String() string {
	return fmt.Sprintf("%d", uint64(v))
}
