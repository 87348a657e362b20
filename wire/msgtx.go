// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/txforge/txcore/chainhash"
	"github.com/txforge/txcore/er"
)

const (
	// MinIOCount and MaxIOCount bound a MsgTx's input and output counts.
	MinIOCount = 1
	MaxIOCount = 255

	// MaxTxSize is the encoded-size ceiling a MsgTx must stay under.
	MaxTxSize = 100000
)

// segwitMarker and segwitFlag are the two bytes that mark a witness
// transaction: an always-zero marker byte followed by the flag, which
// today must be exactly 0x01. BIP-141 reserves other flag values for the
// future; until one is assigned a meaning, any other value is an error.
const (
	segwitMarker = 0x00
	segwitFlag   = 0x01
)

// MsgTx is a legacy/witness-family transaction.
type MsgTx struct {
	Version       int32
	HasSegwitFlag bool
	TxIn          []*TxIn
	TxOut         []*TxOut
	Witnesses     []TxWitness
	LockTime      uint32
}

// NewMsgTx constructs a MsgTx. Validation is atomic: either every
// invariant holds and a MsgTx is returned, or no MsgTx is produced.
func NewMsgTx(
	version int32,
	hasSegwitFlag bool,
	txIn []*TxIn,
	txOut []*TxOut,
	witnesses []TxWitness,
	lockTime uint32,
) (*MsgTx, er.R) {
	if len(txIn) < MinIOCount || len(txOut) < MinIOCount {
		return nil, er.Errorf(er.KindTooFewIO,
			"transaction must have at least %d input(s) and output(s)", MinIOCount)
	}
	if len(txIn) > MaxIOCount || len(txOut) > MaxIOCount {
		return nil, er.Errorf(er.KindTooManyIO,
			"transaction may have at most %d inputs/outputs", MaxIOCount)
	}

	hasWitnesses := len(witnesses) > 0
	if hasSegwitFlag != hasWitnesses {
		return nil, er.New(er.KindSegwitFlagMismatch,
			"segwit flag present iff witnesses are present and non-empty")
	}
	if hasSegwitFlag && len(witnesses) != len(txIn) {
		return nil, er.Errorf(er.KindWitnessLengthMismatch,
			"expected %d witnesses, got %d", len(txIn), len(witnesses))
	}

	tx := &MsgTx{
		Version:       version,
		HasSegwitFlag: hasSegwitFlag,
		TxIn:          make([]*TxIn, len(txIn)),
		TxOut:         make([]*TxOut, len(txOut)),
		LockTime:      lockTime,
	}
	for i, in := range txIn {
		if in == nil {
			return nil, er.New(er.KindInvalidTxIn, "nil TxIn")
		}
		tx.TxIn[i] = in.Copy()
	}
	for i, out := range txOut {
		if out == nil {
			return nil, er.New(er.KindInvalidTxOut, "nil TxOut")
		}
		tx.TxOut[i] = out.Copy()
	}
	if hasWitnesses {
		tx.Witnesses = make([]TxWitness, len(witnesses))
		for i, w := range witnesses {
			tx.Witnesses[i] = w.Copy()
		}
	}

	if tx.SerializeSize() >= MaxTxSize {
		return nil, er.Errorf(er.KindTxTooLarge,
			"transaction is %d bytes, must be < %d", tx.SerializeSize(), MaxTxSize)
	}

	return tx, nil
}

// HasWitness reports whether the transaction carries segwit witness data.
func (msg *MsgTx) HasWitness() bool {
	return msg.HasSegwitFlag
}

// baseSize returns the serialized size excluding the marker/flag and
// witness stacks.
func (msg *MsgTx) baseSize() int {
	n := 4 + chainhash.VarIntSerializeSize(uint64(len(msg.TxIn))) +
		chainhash.VarIntSerializeSize(uint64(len(msg.TxOut))) + 4
	for _, in := range msg.TxIn {
		n += in.SerializeSize()
	}
	for _, out := range msg.TxOut {
		n += out.SerializeSize()
	}
	return n
}

// SerializeSizeStripped returns the number of bytes it would take to
// serialize the transaction with the flag and witnesses omitted.
func (msg *MsgTx) SerializeSizeStripped() int {
	return msg.baseSize()
}

// SerializeSize returns the number of bytes it would take to serialize
// the transaction in full, including the marker/flag and witness data
// when present.
func (msg *MsgTx) SerializeSize() int {
	n := msg.baseSize()
	if msg.HasSegwitFlag {
		n += 2
		for _, w := range msg.Witnesses {
			n += w.SerializeSize()
		}
	}
	return n
}

// serialize appends the canonical encoding to buf. When stripWitness is
// true, the marker/flag and witness stacks are omitted regardless of
// HasSegwitFlag, producing the witness-stripped form the tx-id is
// computed from.
func (msg *MsgTx) serialize(buf []byte, stripWitness bool) []byte {
	buf = chainhash.PutUint32LE(buf, uint32(msg.Version))

	doWitness := msg.HasSegwitFlag && !stripWitness
	if doWitness {
		buf = append(buf, segwitMarker, segwitFlag)
	}

	buf = chainhash.WriteVarInt(buf, uint64(len(msg.TxIn)))
	for _, in := range msg.TxIn {
		buf = append(buf, in.Bytes()...)
	}

	buf = chainhash.WriteVarInt(buf, uint64(len(msg.TxOut)))
	for _, out := range msg.TxOut {
		buf = append(buf, out.Bytes()...)
	}

	if doWitness {
		for _, w := range msg.Witnesses {
			buf = append(buf, w.Bytes()...)
		}
	}

	buf = chainhash.PutUint32LE(buf, msg.LockTime)
	return buf
}

// Serialize returns the full canonical serialization, including the
// segwit marker/flag and witness data when present.
func (msg *MsgTx) Serialize() []byte {
	return msg.serialize(make([]byte, 0, msg.SerializeSize()), false)
}

// SerializeNoWitness returns the canonical serialization with the segwit
// marker/flag and witness data always omitted, the form the tx-id is
// computed over.
func (msg *MsgTx) SerializeNoWitness() []byte {
	return msg.serialize(make([]byte, 0, msg.SerializeSizeStripped()), true)
}

// TxHash returns the transaction identifier: the double hash of the
// witness-stripped serialization. Its String() form is the conventional
// big-endian display txid.
func (msg *MsgTx) TxHash() chainhash.Hash {
	return chainhash.DoubleHashH(msg.SerializeNoWitness())
}

// TxHashLE returns the tx-id's raw bytes in little-endian wire order, the
// form stored inside an OutPoint referencing this transaction.
func (msg *MsgTx) TxHashLE() []byte {
	h := msg.TxHash()
	return h.CloneBytes()
}

// WitnessHash returns the double hash of the full serialization
// (including witness data), or TxHash if the transaction carries no
// witnesses.
func (msg *MsgTx) WitnessHash() chainhash.Hash {
	if !msg.HasSegwitFlag {
		return msg.TxHash()
	}
	return chainhash.DoubleHashH(msg.Serialize())
}

// Copy returns a deep, independent clone of msg.
func (msg *MsgTx) Copy() *MsgTx {
	out := &MsgTx{
		Version:       msg.Version,
		HasSegwitFlag: msg.HasSegwitFlag,
		TxIn:          make([]*TxIn, len(msg.TxIn)),
		TxOut:         make([]*TxOut, len(msg.TxOut)),
		LockTime:      msg.LockTime,
	}
	for i, in := range msg.TxIn {
		out.TxIn[i] = in.Copy()
	}
	for i, o := range msg.TxOut {
		out.TxOut[i] = o.Copy()
	}
	if msg.HasSegwitFlag {
		out.Witnesses = make([]TxWitness, len(msg.Witnesses))
		for i, w := range msg.Witnesses {
			out.Witnesses[i] = w.Copy()
		}
	}
	return out
}

// Fee returns sum(prevoutValues) - sum(output values). prevoutValues must
// have one entry per input, in input order.
func (msg *MsgTx) Fee(prevoutValues []int64) (int64, er.R) {
	if len(prevoutValues) != len(msg.TxIn) {
		return 0, er.Errorf(er.KindLengthMismatch,
			"expected %d prevout values, got %d", len(msg.TxIn), len(prevoutValues))
	}
	var in, out int64
	for _, v := range prevoutValues {
		in += v
	}
	for _, o := range msg.TxOut {
		out += o.Value
	}
	return in - out, nil
}

// ScriptCode returns the script that stands in for input i's prevout
// output script within a sighash preimage: input i's RedeemScript if
// non-empty, else the witness-supplied redeem script (the witness's last
// stack item) if any, else input i's StackScript.
func (msg *MsgTx) ScriptCode(index int) ([]byte, er.R) {
	if index < 0 || index >= len(msg.TxIn) {
		return nil, er.Errorf(er.KindBadIndex, "input index %d out of range", index)
	}
	in := msg.TxIn[index]
	if len(in.RedeemScript) > 0 {
		return in.RedeemScript, nil
	}
	if msg.HasSegwitFlag && index < len(msg.Witnesses) {
		w := msg.Witnesses[index]
		if len(w) > 0 {
			return w[len(w)-1], nil
		}
	}
	return in.StackScript, nil
}

// AdjustedScriptCode returns ScriptCode(index) with the length-prefix the
// BIP-143 preimage requires: varint(len(script)) || script.
func (msg *MsgTx) AdjustedScriptCode(index int) ([]byte, er.R) {
	script, err := msg.ScriptCode(index)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, chainhash.VarIntSerializeSize(uint64(len(script)))+len(script))
	buf = chainhash.WriteVarInt(buf, uint64(len(script)))
	buf = append(buf, script...)
	return buf, nil
}

// MsgTxFromBytes parses a MsgTx from the head of buf, returning the value
// and the number of bytes consumed. strict enables the canonical-VarInt
// rule of the active network profile.
func MsgTxFromBytes(buf []byte, strict bool) (*MsgTx, int, er.R) {
	if len(buf) < 4 {
		return nil, 0, er.New(er.KindTruncated, "MsgTx: truncated version")
	}
	versionU, err := chainhash.Uint32LE(buf)
	if err != nil {
		return nil, 0, err
	}
	version := int32(versionU)
	off := 4

	count, n, err := chainhash.ReadVarInt(buf[off:], strict)
	if err != nil {
		return nil, 0, err
	}
	off += n

	hasSegwitFlag := false
	if count == 0 {
		if len(buf[off:]) < 1 {
			return nil, 0, er.New(er.KindTruncated, "MsgTx: truncated segwit flag")
		}
		flag := buf[off]
		off++
		if flag != segwitFlag {
			return nil, 0, er.Errorf(er.KindSegwitFlagMismatch,
				"witness tx but flag byte is %#x", flag)
		}
		hasSegwitFlag = true

		count, n, err = chainhash.ReadVarInt(buf[off:], strict)
		if err != nil {
			return nil, 0, err
		}
		off += n
	}

	if count > MaxIOCount {
		return nil, 0, er.Errorf(er.KindTooManyIO,
			"too many inputs: %d, max %d", count, MaxIOCount)
	}
	if count < MinIOCount {
		return nil, 0, er.Errorf(er.KindTooFewIO,
			"transaction must have at least %d input(s)", MinIOCount)
	}

	txIn := make([]*TxIn, count)
	for i := uint64(0); i < count; i++ {
		in, n, err := TxInFromBytes(buf[off:], strict)
		if err != nil {
			return nil, 0, err
		}
		txIn[i] = in
		off += n
	}

	outCount, n, err := chainhash.ReadVarInt(buf[off:], strict)
	if err != nil {
		return nil, 0, err
	}
	off += n
	if outCount > MaxIOCount {
		return nil, 0, er.Errorf(er.KindTooManyIO,
			"too many outputs: %d, max %d", outCount, MaxIOCount)
	}
	if outCount < MinIOCount {
		return nil, 0, er.Errorf(er.KindTooFewIO,
			"transaction must have at least %d output(s)", MinIOCount)
	}

	txOut := make([]*TxOut, outCount)
	for i := uint64(0); i < outCount; i++ {
		out, n, err := TxOutFromBytes(buf[off:], strict)
		if err != nil {
			return nil, 0, err
		}
		txOut[i] = out
		off += n
	}

	var witnesses []TxWitness
	if hasSegwitFlag {
		witnesses = make([]TxWitness, count)
		for i := uint64(0); i < count; i++ {
			w, n, err := TxWitnessFromBytes(buf[off:], strict)
			if err != nil {
				return nil, 0, err
			}
			witnesses[i] = w
			off += n
		}
	}

	if len(buf[off:]) < 4 {
		return nil, 0, er.New(er.KindTruncated, "MsgTx: truncated locktime")
	}
	lockTime, err := chainhash.Uint32LE(buf[off:])
	if err != nil {
		return nil, 0, err
	}
	off += 4

	tx, err := NewMsgTx(version, hasSegwitFlag, txIn, txOut, witnesses, lockTime)
	if err != nil {
		return nil, 0, err
	}
	return tx, off, nil
}
