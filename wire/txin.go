// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/txforge/txcore/chainhash"
	"github.com/txforge/txcore/er"
)

// MaxTxInScriptSize is the maximum combined length of a TxIn's
// StackScript and RedeemScript.
const MaxTxInScriptSize = 1650

// TxIn is a legacy/witness-family transaction input. StackScript and
// RedeemScript are opaque byte blobs (script parsing is out of scope,
// consumed only by external collaborators); they are concatenated,
// stack-then-redeem, to form the on-wire script_sig. Both are left empty
// by the caller for a native-segwit input whose spend authorization lives
// entirely in the witness.
type TxIn struct {
	PreviousOutPoint OutPoint
	StackScript      []byte
	RedeemScript     []byte
	Sequence         uint32
}

// NewTxIn constructs a TxIn, validating the combined script-length
// invariant.
func NewTxIn(prevOut OutPoint, stackScript, redeemScript []byte, sequence uint32) (*TxIn, er.R) {
	if len(stackScript)+len(redeemScript) > MaxTxInScriptSize {
		return nil, er.Errorf(er.KindScriptTooLong,
			"TxIn script is too long: expected <= %d bytes, got %d",
			MaxTxInScriptSize, len(stackScript)+len(redeemScript))
	}
	return &TxIn{
		PreviousOutPoint: prevOut,
		StackScript:      cloneBytes(stackScript),
		RedeemScript:     cloneBytes(redeemScript),
		Sequence:         sequence,
	}, nil
}

// SignatureScript returns the concatenated stack_script || redeem_script
// that is emitted on the wire in place of this input's script_sig.
func (t *TxIn) SignatureScript() []byte {
	out := make([]byte, 0, len(t.StackScript)+len(t.RedeemScript))
	out = append(out, t.StackScript...)
	out = append(out, t.RedeemScript...)
	return out
}

// SerializeSize returns the number of bytes it would take to serialize
// this input (without any accompanying witness).
func (t *TxIn) SerializeSize() int {
	scriptSig := t.SignatureScript()
	return OutPointSize + chainhash.VarIntSerializeSize(uint64(len(scriptSig))) +
		len(scriptSig) + 4
}

// Bytes returns the canonical serialization:
// outpoint || varint(len(script_sig)) || script_sig || sequence.
func (t *TxIn) Bytes() []byte {
	scriptSig := t.SignatureScript()
	buf := make([]byte, 0, t.SerializeSize())
	buf = append(buf, t.PreviousOutPoint.Bytes()...)
	buf = chainhash.WriteVarInt(buf, uint64(len(scriptSig)))
	buf = append(buf, scriptSig...)
	buf = chainhash.PutUint32LE(buf, t.Sequence)
	return buf
}

// Copy returns a deep, independent clone of t.
func (t *TxIn) Copy() *TxIn {
	return &TxIn{
		PreviousOutPoint: t.PreviousOutPoint,
		StackScript:      cloneBytes(t.StackScript),
		RedeemScript:     cloneBytes(t.RedeemScript),
		Sequence:         t.Sequence,
	}
}

// TxInFromBytes parses a TxIn from the head of buf, returning the value
// and the number of bytes consumed. The whole script_sig is parsed into
// RedeemScript, leaving StackScript empty; splitting it back into the
// stack/redeem halves requires script knowledge this package does not
// have.
func TxInFromBytes(buf []byte, strict bool) (*TxIn, int, er.R) {
	off := 0
	prevOut, n, err := OutPointFromBytes(buf)
	if err != nil {
		return nil, 0, err
	}
	off += n

	scriptLen, n, err := chainhash.ReadVarInt(buf[off:], strict)
	if err != nil {
		return nil, 0, err
	}
	off += n

	if uint64(len(buf[off:])) < scriptLen {
		return nil, 0, er.Errorf(er.KindTruncated,
			"TxIn: script_sig declares %d bytes, only %d available",
			scriptLen, len(buf[off:]))
	}
	scriptSig := cloneBytes(buf[off : off+int(scriptLen)])
	off += int(scriptLen)

	if len(buf[off:]) < 4 {
		return nil, 0, er.New(er.KindTruncated, "TxIn: truncated sequence")
	}
	sequence, err := chainhash.Uint32LE(buf[off:])
	if err != nil {
		return nil, 0, err
	}
	off += 4

	if len(scriptSig) > MaxTxInScriptSize {
		return nil, 0, er.Errorf(er.KindScriptTooLong,
			"TxIn script is too long: expected <= %d bytes, got %d",
			MaxTxInScriptSize, len(scriptSig))
	}

	return &TxIn{
		PreviousOutPoint: prevOut,
		RedeemScript:     scriptSig,
		Sequence:         sequence,
	}, off, nil
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
