// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the byte primitives and hash adapters shared
// by every transaction family: fixed/variable width little-endian codecs,
// double-SHA256, double-BLAKE-256, and the two HASH160 variants selected
// by the active network.
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/dchest/blake256"
	"golang.org/x/crypto/ripemd160"

	"github.com/txforge/txcore/er"
)

// HashSize is the size, in bytes, of the hash types used throughout txcore.
const HashSize = 32

// Hash is a 32-byte double-hash digest, stored internally in the same
// byte order it was produced in by the hash function; String renders it
// reversed (the "display" order conventional for txids).
type Hash [HashSize]byte

// NewHash returns a new Hash from a byte slice, which must be exactly
// HashSize bytes long.
func NewHash(b []byte) (*Hash, er.R) {
	if len(b) != HashSize {
		return nil, er.Errorf(er.KindLengthMismatch,
			"invalid hash length of %v, want %v", len(b), HashSize)
	}
	var h Hash
	copy(h[:], b)
	return &h, nil
}

// CloneBytes returns an independent copy of the hash bytes.
func (h Hash) CloneBytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// String returns the Hash as the reversed ("display") hex string.
func (h Hash) String() string {
	rev := ReverseBytes(h[:])
	return hex.EncodeToString(rev)
}

// ReverseBytes returns a new slice with b's bytes in reverse order.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// DoubleHashB calculates double SHA256(SHA256(b)).
func DoubleHashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates double SHA256(SHA256(b)) and returns it as a Hash.
func DoubleHashH(b []byte) Hash {
	var h Hash
	copy(h[:], DoubleHashB(b))
	return h
}

// Blake256B calculates a single BLAKE-256(b).
func Blake256B(b []byte) []byte {
	sum := blake256.Sum256(b)
	return sum[:]
}

// DoubleBlake256B calculates double BLAKE-256(BLAKE-256(b)).
func DoubleBlake256B(b []byte) []byte {
	first := blake256.Sum256(b)
	second := blake256.Sum256(first[:])
	return second[:]
}

// DoubleBlake256H calculates double BLAKE-256(BLAKE-256(b)) and returns it
// as a Hash.
func DoubleBlake256H(b []byte) Hash {
	var h Hash
	copy(h[:], DoubleBlake256B(b))
	return h
}

// Ripemd160 calculates RIPEMD-160(b).
func Ripemd160(b []byte) []byte {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)
}

// Hash160 calculates RIPEMD160(SHA256(b)), the HASH160 used by the
// legacy/witness/ForkID families.
func Hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	return Ripemd160(sum[:])
}

// Hash160Blake calculates RIPEMD160(BLAKE256(b)), the HASH160 substitute
// used when the active network is the Blake family.
func Hash160Blake(b []byte) []byte {
	return Ripemd160(Blake256B(b))
}
