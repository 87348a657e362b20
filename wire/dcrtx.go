// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Blake-family (Decred-style) transaction types: a separate tree of
// OutPoint/TxIn/TxOut/Witness/MsgTx types whose wire format splits a
// transaction into a prefix stream and a witness stream, hashed with
// BLAKE-256 instead of SHA-256.
package wire

import (
	"github.com/txforge/txcore/chaincfg"
	"github.com/txforge/txcore/chainhash"
	"github.com/txforge/txcore/er"
)

// Serialization-type discriminants. The 2-byte version field is followed
// on the wire by a 2-byte little-endian discriminant identifying which
// stream is being emitted, so the prefix and witness streams of one
// transaction can never collide under the hash.
const (
	dcrSerTypePrefix         uint16 = 1
	dcrSerTypeWitness        uint16 = 2
	dcrSerTypeWitnessSigning uint16 = 3
)

// DcrOutPointSize is the serialized size, in bytes, of a Blake-family
// outpoint: tx id, output index, and the tree the output belongs to.
const DcrOutPointSize = chainhash.HashSize + 4 + 1

// DcrOutPoint is the pair (previous tx id, output index, tree) identifying
// a prior Decred-style UTXO being spent.
type DcrOutPoint struct {
	Hash  chainhash.Hash
	Index uint32
	Tree  int8
}

// NewDcrOutPoint returns a new DcrOutPoint.
func NewDcrOutPoint(hash chainhash.Hash, index uint32, tree int8) DcrOutPoint {
	return DcrOutPoint{Hash: hash, Index: index, Tree: tree}
}

// Bytes returns the canonical serialization: tx_id || index || tree.
func (o DcrOutPoint) Bytes() []byte {
	buf := make([]byte, 0, DcrOutPointSize)
	buf = append(buf, o.Hash[:]...)
	buf = chainhash.PutUint32LE(buf, o.Index)
	buf = append(buf, byte(o.Tree))
	return buf
}

// DcrOutPointFromBytes parses a DcrOutPoint from the head of buf.
func DcrOutPointFromBytes(buf []byte) (DcrOutPoint, int, er.R) {
	if len(buf) < DcrOutPointSize {
		return DcrOutPoint{}, 0, er.Errorf(er.KindTruncated,
			"DcrOutPoint: need %d bytes, got %d", DcrOutPointSize, len(buf))
	}
	var h chainhash.Hash
	copy(h[:], buf[:chainhash.HashSize])
	index, err := chainhash.Uint32LE(buf[chainhash.HashSize:])
	if err != nil {
		return DcrOutPoint{}, 0, err
	}
	tree := int8(buf[chainhash.HashSize+4])
	return DcrOutPoint{Hash: h, Index: index, Tree: tree}, DcrOutPointSize, nil
}

// DcrTxIn is a Blake-family prefix-stream input: the prevout and sequence
// only. Spend authorization is carried entirely in the parallel witness
// stream (DcrInputWitness), never inline.
type DcrTxIn struct {
	PreviousOutPoint DcrOutPoint
	Sequence         uint32
}

// NewDcrTxIn returns a new DcrTxIn.
func NewDcrTxIn(prevOut DcrOutPoint, sequence uint32) *DcrTxIn {
	return &DcrTxIn{PreviousOutPoint: prevOut, Sequence: sequence}
}

// SerializeSize returns the number of bytes it would take to serialize
// this prefix-stream input.
func (t *DcrTxIn) SerializeSize() int {
	return DcrOutPointSize + 4
}

// Bytes returns the canonical serialization: outpoint || sequence.
func (t *DcrTxIn) Bytes() []byte {
	buf := make([]byte, 0, t.SerializeSize())
	buf = append(buf, t.PreviousOutPoint.Bytes()...)
	buf = chainhash.PutUint32LE(buf, t.Sequence)
	return buf
}

// Copy returns a deep, independent clone of t.
func (t *DcrTxIn) Copy() *DcrTxIn {
	return &DcrTxIn{PreviousOutPoint: t.PreviousOutPoint, Sequence: t.Sequence}
}

// DcrTxOut is a Blake-family output: value, script version, and output
// script.
type DcrTxOut struct {
	Value    int64
	Version  uint16
	PkScript []byte
}

// NewDcrTxOut constructs a DcrTxOut, enforcing the dust-limit invariant
// shared with the legacy/witness family.
func NewDcrTxOut(value int64, version uint16, pkScript []byte) (*DcrTxOut, er.R) {
	if value < DustLimit {
		return nil, er.Errorf(er.KindDustValue,
			"expected at least %d sat, got %d sat", DustLimit, value)
	}
	return &DcrTxOut{Value: value, Version: version, PkScript: cloneBytes(pkScript)}, nil
}

// SerializeSize returns the number of bytes it would take to serialize
// this output.
func (t *DcrTxOut) SerializeSize() int {
	return 8 + 2 + chainhash.VarIntSerializeSize(uint64(len(t.PkScript))) + len(t.PkScript)
}

// Bytes returns the canonical serialization:
// value || script_version || varint(len(output_script)) || output_script.
func (t *DcrTxOut) Bytes() []byte {
	buf := make([]byte, 0, t.SerializeSize())
	buf = chainhash.PutUint64LE(buf, uint64(t.Value))
	buf = chainhash.PutUint16LE(buf, t.Version)
	buf = chainhash.WriteVarInt(buf, uint64(len(t.PkScript)))
	buf = append(buf, t.PkScript...)
	return buf
}

// Copy returns a deep, independent clone of t.
func (t *DcrTxOut) Copy() *DcrTxOut {
	return &DcrTxOut{Value: t.Value, Version: t.Version, PkScript: cloneBytes(t.PkScript)}
}

// DcrTxOutFromBytes parses a DcrTxOut from the head of buf.
func DcrTxOutFromBytes(buf []byte, strict bool) (*DcrTxOut, int, er.R) {
	if len(buf) < 10 {
		return nil, 0, er.New(er.KindTruncated, "DcrTxOut: truncated value/version")
	}
	value, err := chainhash.Uint64LE(buf)
	if err != nil {
		return nil, 0, err
	}
	version, err := chainhash.Uint16LE(buf[8:])
	if err != nil {
		return nil, 0, err
	}
	off := 10

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
			"DcrTxOut: output_script declares %d bytes, only %d available",
			scriptLen, len(buf[off:]))
	}
	pkScript := cloneBytes(buf[off : off+int(scriptLen)])
	off += int(scriptLen)

	return &DcrTxOut{Value: int64(value), Version: version, PkScript: pkScript}, off, nil
}

// DcrInputWitness is the witness-stream record paired with one DcrTxIn by
// index: the spent output's value and block height/index (so a verifier
// can recompute the outpoint's identity without a UTXO set lookup) plus
// the stack/redeem script pair that authorizes the spend.
type DcrInputWitness struct {
	ValueIn      int64
	BlockHeight  uint32
	BlockIndex   uint32
	StackScript  []byte
	RedeemScript []byte
}

// NewDcrInputWitness constructs a DcrInputWitness, enforcing the same
// combined script-length invariant as the legacy/witness family's TxIn.
func NewDcrInputWitness(
	valueIn int64,
	blockHeight, blockIndex uint32,
	stackScript, redeemScript []byte,
) (*DcrInputWitness, er.R) {
	if len(stackScript)+len(redeemScript) > MaxTxInScriptSize {
		return nil, er.Errorf(er.KindScriptTooLong,
			"witness script is too long: expected <= %d bytes, got %d",
			MaxTxInScriptSize, len(stackScript)+len(redeemScript))
	}
	return &DcrInputWitness{
		ValueIn:      valueIn,
		BlockHeight:  blockHeight,
		BlockIndex:   blockIndex,
		StackScript:  cloneBytes(stackScript),
		RedeemScript: cloneBytes(redeemScript),
	}, nil
}

// ScriptSig returns the concatenated stack_script || redeem_script carried
// by this witness. This is a convenience accessor only; the wire
// serialization below carries the two scripts as independently
// length-prefixed fields, never as this concatenation.
func (w *DcrInputWitness) ScriptSig() []byte {
	out := make([]byte, 0, len(w.StackScript)+len(w.RedeemScript))
	out = append(out, w.StackScript...)
	out = append(out, w.RedeemScript...)
	return out
}

// SerializeSize returns the number of bytes it would take to serialize
// this witness record.
func (w *DcrInputWitness) SerializeSize() int {
	return 8 + 4 + 4 +
		chainhash.VarIntSerializeSize(uint64(len(w.StackScript))) + len(w.StackScript) +
		chainhash.VarIntSerializeSize(uint64(len(w.RedeemScript))) + len(w.RedeemScript)
}

// Bytes returns the canonical serialization:
// value_in || block_height || block_index ||
// varint(len(stack_script)) || stack_script ||
// varint(len(redeem_script)) || redeem_script.
func (w *DcrInputWitness) Bytes() []byte {
	buf := make([]byte, 0, w.SerializeSize())
	buf = chainhash.PutUint64LE(buf, uint64(w.ValueIn))
	buf = chainhash.PutUint32LE(buf, w.BlockHeight)
	buf = chainhash.PutUint32LE(buf, w.BlockIndex)
	buf = chainhash.WriteVarInt(buf, uint64(len(w.StackScript)))
	buf = append(buf, w.StackScript...)
	buf = chainhash.WriteVarInt(buf, uint64(len(w.RedeemScript)))
	buf = append(buf, w.RedeemScript...)
	return buf
}

// Copy returns a deep, independent clone of w.
func (w *DcrInputWitness) Copy() *DcrInputWitness {
	return &DcrInputWitness{
		ValueIn:      w.ValueIn,
		BlockHeight:  w.BlockHeight,
		BlockIndex:   w.BlockIndex,
		StackScript:  cloneBytes(w.StackScript),
		RedeemScript: cloneBytes(w.RedeemScript),
	}
}

// DcrMsgTx is a Blake-family (Decred-style) transaction: a prefix stream
// (inputs' outpoints/sequences, outputs, locktime, expiry) and a parallel
// witness stream (one DcrInputWitness per input), each independently
// serializable and hashed. Unlike the legacy/witness family there is no
// optional marker/flag: every input carries exactly one witness record.
type DcrMsgTx struct {
	Version  uint16
	TxIn     []*DcrTxIn
	TxOut    []*DcrTxOut
	LockTime uint32
	Expiry   uint32
	Witness  []*DcrInputWitness
}

// NewDcrMsgTx constructs a DcrMsgTx. Validation is atomic: either every
// invariant holds and a DcrMsgTx is returned, or nothing is produced.
// The active network profile must be a Blake-family profile.
func NewDcrMsgTx(
	version uint16,
	txIn []*DcrTxIn,
	txOut []*DcrTxOut,
	lockTime, expiry uint32,
	witness []*DcrInputWitness,
) (*DcrMsgTx, er.R) {
	if err := chaincfg.RequireFamily(chaincfg.Current(), chaincfg.FamilyBlake); err != nil {
		return nil, err
	}
	if len(txIn) < MinIOCount || len(txOut) < MinIOCount {
		return nil, er.Errorf(er.KindTooFewIO,
			"transaction must have at least %d input(s) and output(s)", MinIOCount)
	}
	if len(txIn) > MaxIOCount || len(txOut) > MaxIOCount {
		return nil, er.Errorf(er.KindTooManyIO,
			"transaction may have at most %d inputs/outputs", MaxIOCount)
	}
	if len(witness) != len(txIn) {
		return nil, er.Errorf(er.KindWitnessLengthMismatch,
			"expected exactly %d witness record(s), got %d", len(txIn), len(witness))
	}

	tx := &DcrMsgTx{
		Version:  version,
		TxIn:     make([]*DcrTxIn, len(txIn)),
		TxOut:    make([]*DcrTxOut, len(txOut)),
		LockTime: lockTime,
		Expiry:   expiry,
		Witness:  make([]*DcrInputWitness, len(witness)),
	}
	for i, in := range txIn {
		if in == nil {
			return nil, er.New(er.KindInvalidTxIn, "nil DcrTxIn")
		}
		tx.TxIn[i] = in.Copy()
	}
	for i, out := range txOut {
		if out == nil {
			return nil, er.New(er.KindInvalidTxOut, "nil DcrTxOut")
		}
		tx.TxOut[i] = out.Copy()
	}
	for i, w := range witness {
		if w == nil {
			return nil, er.New(er.KindInvalidTxIn, "nil DcrInputWitness")
		}
		tx.Witness[i] = w.Copy()
	}

	if tx.PrefixSerializeSize()+tx.WitnessSerializeSize() >= MaxTxSize {
		return nil, er.Errorf(er.KindTxTooLarge,
			"transaction is too large, must be < %d bytes", MaxTxSize)
	}

	return tx, nil
}

// PrefixSerializeSize returns the size of the prefix stream.
func (tx *DcrMsgTx) PrefixSerializeSize() int {
	n := 4 + chainhash.VarIntSerializeSize(uint64(len(tx.TxIn)))
	for _, in := range tx.TxIn {
		n += in.SerializeSize()
	}
	n += chainhash.VarIntSerializeSize(uint64(len(tx.TxOut)))
	for _, out := range tx.TxOut {
		n += out.SerializeSize()
	}
	n += 4 + 4
	return n
}

// WitnessSerializeSize returns the size of the witness stream.
func (tx *DcrMsgTx) WitnessSerializeSize() int {
	n := 4 + chainhash.VarIntSerializeSize(uint64(len(tx.Witness)))
	for _, w := range tx.Witness {
		n += w.SerializeSize()
	}
	return n
}

// PrefixBytes returns the canonical prefix-stream serialization:
// version || ser_type || inputs || outputs || locktime || expiry.
func (tx *DcrMsgTx) PrefixBytes() []byte {
	buf := make([]byte, 0, tx.PrefixSerializeSize())
	buf = chainhash.PutUint16LE(buf, tx.Version)
	buf = chainhash.PutUint16LE(buf, dcrSerTypePrefix)
	buf = chainhash.WriteVarInt(buf, uint64(len(tx.TxIn)))
	for _, in := range tx.TxIn {
		buf = append(buf, in.Bytes()...)
	}
	buf = chainhash.WriteVarInt(buf, uint64(len(tx.TxOut)))
	for _, out := range tx.TxOut {
		buf = append(buf, out.Bytes()...)
	}
	buf = chainhash.PutUint32LE(buf, tx.LockTime)
	buf = chainhash.PutUint32LE(buf, tx.Expiry)
	return buf
}

// WitnessBytes returns the canonical witness-stream serialization:
// version || ser_type || varint(count) || witness records, in input order.
func (tx *DcrMsgTx) WitnessBytes() []byte {
	buf := make([]byte, 0, tx.WitnessSerializeSize())
	buf = chainhash.PutUint16LE(buf, tx.Version)
	buf = chainhash.PutUint16LE(buf, dcrSerTypeWitness)
	buf = chainhash.WriteVarInt(buf, uint64(len(tx.Witness)))
	for _, w := range tx.Witness {
		buf = append(buf, w.Bytes()...)
	}
	return buf
}

// TxHash returns the transaction identifier: the double BLAKE-256 hash of
// the prefix stream alone. The witness stream never participates in a
// Blake-family tx-id.
func (tx *DcrMsgTx) TxHash() chainhash.Hash {
	return chainhash.DoubleBlake256H(tx.PrefixBytes())
}

// TxHashLE returns the tx-id's raw bytes in little-endian wire order.
func (tx *DcrMsgTx) TxHashLE() []byte {
	h := tx.TxHash()
	return h.CloneBytes()
}

// WitnessHash returns the double BLAKE-256 hash of the witness stream
// alone.
func (tx *DcrMsgTx) WitnessHash() chainhash.Hash {
	return chainhash.DoubleBlake256H(tx.WitnessBytes())
}

// WitnessSigningBytes re-emits the witness stream with every input's
// stack_script blanked except index's, which is replaced by prevScript.
// This is the buffer the signing hash for one input is taken over.
func (tx *DcrMsgTx) WitnessSigningBytes(index int, prevScript []byte) ([]byte, er.R) {
	if index < 0 || index >= len(tx.TxIn) {
		return nil, er.Errorf(er.KindBadIndex, "input index %d out of range", index)
	}

	buf := make([]byte, 0, tx.WitnessSerializeSize())
	buf = chainhash.PutUint16LE(buf, tx.Version)
	buf = chainhash.PutUint16LE(buf, dcrSerTypeWitnessSigning)
	buf = chainhash.WriteVarInt(buf, uint64(len(tx.Witness)))
	for i, w := range tx.Witness {
		blanked := w.Copy()
		if i == index {
			blanked.StackScript = cloneBytes(prevScript)
		} else {
			blanked.StackScript = nil
		}
		buf = append(buf, blanked.Bytes()...)
	}

	return buf, nil
}

// WitnessSigningHash returns the single (not double) BLAKE-256 hash of
// WitnessSigningBytes. The signing serialization is the one place the
// Blake family hashes once rather than twice.
func (tx *DcrMsgTx) WitnessSigningHash(index int, prevScript []byte) (chainhash.Hash, er.R) {
	preimage, err := tx.WitnessSigningBytes(index, prevScript)
	if err != nil {
		return chainhash.Hash{}, err
	}
	var h chainhash.Hash
	copy(h[:], chainhash.Blake256B(preimage))
	return h, nil
}

// Copy returns a deep, independent clone of tx.
func (tx *DcrMsgTx) Copy() *DcrMsgTx {
	out := &DcrMsgTx{
		Version:  tx.Version,
		TxIn:     make([]*DcrTxIn, len(tx.TxIn)),
		TxOut:    make([]*DcrTxOut, len(tx.TxOut)),
		LockTime: tx.LockTime,
		Expiry:   tx.Expiry,
		Witness:  make([]*DcrInputWitness, len(tx.Witness)),
	}
	for i, in := range tx.TxIn {
		out.TxIn[i] = in.Copy()
	}
	for i, o := range tx.TxOut {
		out.TxOut[i] = o.Copy()
	}
	for i, w := range tx.Witness {
		out.Witness[i] = w.Copy()
	}
	return out
}

// DcrMsgTxFromBytes is not implemented. This library builds and signs
// Blake-family transactions; it does not decode them.
func DcrMsgTxFromBytes(buf []byte, strict bool) (*DcrMsgTx, int, er.R) {
	return nil, 0, er.New(er.KindNotImplemented,
		"decoding a Blake-family transaction from bytes is not implemented")
}

// DcrInputWitnessFromBytes is not implemented, same as DcrMsgTxFromBytes.
func DcrInputWitnessFromBytes(buf []byte, strict bool) (*DcrInputWitness, int, er.R) {
	return nil, 0, er.New(er.KindNotImplemented,
		"decoding a DcrInputWitness from bytes is not implemented")
}
