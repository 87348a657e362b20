// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/txforge/txcore/chainhash"
	"github.com/txforge/txcore/er"
)

// DustLimit is the minimum TxOut value, in satoshis, accepted by
// NewTxOut.
const DustLimit = 546

// maxPkScriptLen is the length the decoder rejects an output_script at
// or above. No support for abnormally long pk_scripts.
const maxPkScriptLen = 0xfd

// TxOut is a legacy/witness-family transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// NewTxOut constructs a TxOut, enforcing the dust-limit invariant.
func NewTxOut(value int64, pkScript []byte) (*TxOut, er.R) {
	if value < DustLimit {
		return nil, er.Errorf(er.KindDustValue,
			"expected at least %d sat, got %d sat", DustLimit, value)
	}
	return &TxOut{Value: value, PkScript: cloneBytes(pkScript)}, nil
}

// SerializeSize returns the number of bytes it would take to serialize
// this output.
func (t *TxOut) SerializeSize() int {
	return 8 + chainhash.VarIntSerializeSize(uint64(len(t.PkScript))) + len(t.PkScript)
}

// Bytes returns the canonical serialization:
// value || varint(len(output_script)) || output_script.
func (t *TxOut) Bytes() []byte {
	buf := make([]byte, 0, t.SerializeSize())
	buf = chainhash.PutUint64LE(buf, uint64(t.Value))
	buf = chainhash.WriteVarInt(buf, uint64(len(t.PkScript)))
	buf = append(buf, t.PkScript...)
	return buf
}

// Copy returns a deep, independent clone of t.
func (t *TxOut) Copy() *TxOut {
	return &TxOut{Value: t.Value, PkScript: cloneBytes(t.PkScript)}
}

// TxOutFromBytes parses a TxOut from the head of buf, returning the value
// and the number of bytes consumed. A declared output_script length at or
// above maxPkScriptLen is rejected.
func TxOutFromBytes(buf []byte, strict bool) (*TxOut, int, er.R) {
	if len(buf) < 8 {
		return nil, 0, er.New(er.KindTruncated, "TxOut: truncated value")
	}
	value, err := chainhash.Uint64LE(buf)
	if err != nil {
		return nil, 0, err
	}
	off := 8

	scriptLen, n, err := chainhash.ReadVarInt(buf[off:], strict)
	if err != nil {
		return nil, 0, err
	}
	off += n

	if scriptLen >= maxPkScriptLen {
		return nil, 0, er.Errorf(er.KindUnsupportedScriptLength,
			"no support for abnormally long pk_scripts: declared %d bytes", scriptLen)
	}
	if uint64(len(buf[off:])) < scriptLen {
		return nil, 0, er.Errorf(er.KindTruncated,
			"TxOut: output_script declares %d bytes, only %d available",
			scriptLen, len(buf[off:]))
	}
	pkScript := cloneBytes(buf[off : off+int(scriptLen)])
	off += int(scriptLen)

	return &TxOut{Value: int64(value), PkScript: pkScript}, off, nil
}
