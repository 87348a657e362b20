// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the transaction data model: length-prefixed
// records that compose into the legacy/witness family MsgTx and the
// Blake family DcrMsgTx, plus their canonical (de)serialization.
package wire

import (
	"github.com/txforge/txcore/chainhash"
	"github.com/txforge/txcore/er"
)

// OutPointSize is the serialized size, in bytes, of a legacy-family
// OutPoint (tx id + 4-byte index).
const OutPointSize = chainhash.HashSize + 4

// OutPoint is the pair (previous tx id, output index) identifying a prior
// UTXO being spent, for the legacy/witness family.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new OutPoint for the given previous tx hash and
// output index.
func NewOutPoint(hash chainhash.Hash, index uint32) OutPoint {
	return OutPoint{Hash: hash, Index: index}
}

// Bytes returns the canonical 36-byte serialization: tx_id || index.
func (o OutPoint) Bytes() []byte {
	buf := make([]byte, 0, OutPointSize)
	buf = append(buf, o.Hash[:]...)
	buf = chainhash.PutUint32LE(buf, o.Index)
	return buf
}

// OutPointFromBytes parses an OutPoint from the head of buf, returning the
// value and the number of bytes consumed.
func OutPointFromBytes(buf []byte) (OutPoint, int, er.R) {
	if len(buf) < OutPointSize {
		return OutPoint{}, 0, er.Errorf(er.KindTruncated,
			"OutPoint: need %d bytes, got %d", OutPointSize, len(buf))
	}
	var h chainhash.Hash
	copy(h[:], buf[:chainhash.HashSize])
	index, err := chainhash.Uint32LE(buf[chainhash.HashSize:])
	if err != nil {
		return OutPoint{}, 0, err
	}
	return OutPoint{Hash: h, Index: index}, OutPointSize, nil
}
