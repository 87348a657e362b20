// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"encoding/binary"

	"github.com/txforge/txcore/er"
)

// PutUint32LE appends x to buf as 4 little-endian bytes.
func PutUint32LE(buf []byte, x uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], x)
	return append(buf, b[:]...)
}

// PutUint64LE appends x to buf as 8 little-endian bytes.
func PutUint64LE(buf []byte, x uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return append(buf, b[:]...)
}

// PutUint16LE appends x to buf as 2 little-endian bytes.
func PutUint16LE(buf []byte, x uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], x)
	return append(buf, b[:]...)
}

// Uint32LE reads a 4-byte little-endian uint32 from the head of buf.
func Uint32LE(buf []byte) (uint32, er.R) {
	if len(buf) < 4 {
		return 0, er.New(er.KindTruncated, "need 4 bytes for uint32")
	}
	return binary.LittleEndian.Uint32(buf[:4]), nil
}

// Uint64LE reads an 8-byte little-endian uint64 from the head of buf.
func Uint64LE(buf []byte) (uint64, er.R) {
	if len(buf) < 8 {
		return 0, er.New(er.KindTruncated, "need 8 bytes for uint64")
	}
	return binary.LittleEndian.Uint64(buf[:8]), nil
}

// Uint16LE reads a 2-byte little-endian uint16 from the head of buf.
func Uint16LE(buf []byte) (uint16, er.R) {
	if len(buf) < 2 {
		return 0, er.New(er.KindTruncated, "need 2 bytes for uint16")
	}
	return binary.LittleEndian.Uint16(buf[:2]), nil
}
