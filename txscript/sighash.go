// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txscript computes the signature-hash preimages and digests
// that every family of transaction in this module signs against: the
// legacy pre-witness algorithm, the BIP-143 witness preimage and its
// replay-protected ForkID variant, and the Blake family's own
// witness-signing formula. The historical SIGHASH_SINGLE out-of-range
// bug is refused outright rather than reproduced.
package txscript

import (
	"github.com/txforge/txcore/chaincfg"
	"github.com/txforge/txcore/chainhash"
	"github.com/txforge/txcore/er"
	"github.com/txforge/txcore/wire"
)

// SigHashType identifies which parts of a transaction a signature
// commits to.
type SigHashType uint32

const (
	SigHashAll          SigHashType = 0x01
	SigHashNone         SigHashType = 0x02
	SigHashSingle       SigHashType = 0x03
	SigHashAnyOneCanPay SigHashType = 0x80
)

const sigHashMask = 0x1f

// CalcSignatureHash is the single dispatch entry point for the
// legacy/witness/ForkID families: it picks the legacy, BIP-143, or
// ForkID preimage formula based on the resolved network profile and
// whether prevoutValue was supplied, then returns its double-SHA256
// digest.
func CalcSignatureHash(
	tx *wire.MsgTx,
	params *chaincfg.Params,
	idx int,
	prevScript []byte,
	prevoutValue *int64,
	hashType SigHashType,
) ([]byte, er.R) {
	params = chaincfg.Resolve(params)
	if err := chaincfg.RequireFamily(params, chaincfg.FamilyLegacy); err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, er.Errorf(er.KindBadIndex, "input index %d out of range", idx)
	}

	base := hashType & sigHashMask
	if base == SigHashNone {
		return nil, er.New(er.KindDisallowedSighashNone, "SIGHASH_NONE is disallowed")
	}
	if base == SigHashSingle && idx >= len(tx.TxOut) {
		return nil, er.Errorf(er.KindRefusedSighashSingleBug,
			"refusing to reproduce the SIGHASH_SINGLE out-of-range bug: index %d, %d outputs",
			idx, len(tx.TxOut))
	}

	if prevoutValue != nil {
		return calcWitnessSignatureHash(tx, params, idx, prevScript, *prevoutValue, hashType)
	}
	return calcLegacySignatureHash(tx, idx, prevScript, hashType)
}

// SighashAll computes the SIGHASH_ALL digest for input idx, optionally
// combined with ANYONECANPAY.
func SighashAll(
	tx *wire.MsgTx,
	params *chaincfg.Params,
	idx int,
	prevScript []byte,
	prevoutValue *int64,
	anyoneCanPay bool,
) ([]byte, er.R) {
	hashType := SigHashAll
	if anyoneCanPay {
		hashType |= SigHashAnyOneCanPay
	}
	return CalcSignatureHash(tx, params, idx, prevScript, prevoutValue, hashType)
}

// SighashSingle computes the SIGHASH_SINGLE digest for input idx,
// optionally combined with ANYONECANPAY. An out-of-range idx is refused
// rather than reproducing the historical bug.
func SighashSingle(
	tx *wire.MsgTx,
	params *chaincfg.Params,
	idx int,
	prevScript []byte,
	prevoutValue *int64,
	anyoneCanPay bool,
) ([]byte, er.R) {
	hashType := SigHashSingle
	if anyoneCanPay {
		hashType |= SigHashAnyOneCanPay
	}
	return CalcSignatureHash(tx, params, idx, prevScript, prevoutValue, hashType)
}

// SighashNone always fails: this library never produces a SIGHASH_NONE
// digest.
func SighashNone(
	tx *wire.MsgTx,
	params *chaincfg.Params,
	idx int,
	prevScript []byte,
	prevoutValue *int64,
	anyoneCanPay bool,
) ([]byte, er.R) {
	return nil, er.New(er.KindDisallowedSighashNone, "SIGHASH_NONE is a bad idea")
}

// calcLegacySignatureHash implements the pre-witness preimage: every
// input's script blanked except idx's (replaced by prevScript), with
// SINGLE output truncation/blanking and ANYONECANPAY input dropping,
// followed by the 4-byte little-endian hash type and a double-SHA256.
// NONE has no branch here: CalcSignatureHash refuses it before calling.
func calcLegacySignatureHash(tx *wire.MsgTx, idx int, prevScript []byte, hashType SigHashType) ([]byte, er.R) {
	base := hashType & sigHashMask
	anyone := hashType&SigHashAnyOneCanPay != 0

	txCopy := tx.Copy()

	for i, in := range txCopy.TxIn {
		if i == idx {
			in.StackScript = nil
			in.RedeemScript = append([]byte(nil), prevScript...)
			continue
		}
		in.StackScript = nil
		in.RedeemScript = nil
		if base == SigHashSingle {
			in.Sequence = 0
		}
	}

	if anyone {
		txCopy.TxIn = []*wire.TxIn{txCopy.TxIn[idx]}
	}

	if base == SigHashSingle {
		txCopy.TxOut = txCopy.TxOut[:idx+1]
		for i := 0; i < idx; i++ {
			txCopy.TxOut[i] = &wire.TxOut{Value: -1, PkScript: nil}
		}
	}

	txCopy.HasSegwitFlag = false
	txCopy.Witnesses = nil

	buf := txCopy.SerializeNoWitness()
	buf = chainhash.PutUint32LE(buf, uint32(hashType))
	return chainhash.DoubleHashB(buf), nil
}

// calcWitnessSignatureHash implements the BIP-143 preimage. When the
// active profile carries a ForkID it also covers the replay-protected
// variant: identical buffer, with the network's fork-id byte folded into
// the sighash-type trailer before hashing.
func calcWitnessSignatureHash(
	tx *wire.MsgTx,
	params *chaincfg.Params,
	idx int,
	prevScript []byte,
	prevoutValue int64,
	hashType SigHashType,
) ([]byte, er.R) {
	base := hashType & sigHashMask
	anyone := hashType&SigHashAnyOneCanPay != 0

	var hashPrevOuts, hashSequence, hashOutputs chainhash.Hash

	if !anyone {
		var buf []byte
		for _, in := range tx.TxIn {
			buf = append(buf, in.PreviousOutPoint.Bytes()...)
		}
		hashPrevOuts = chainhash.DoubleHashH(buf)
	}

	if !anyone && base != SigHashSingle && base != SigHashNone {
		var buf []byte
		for _, in := range tx.TxIn {
			buf = chainhash.PutUint32LE(buf, in.Sequence)
		}
		hashSequence = chainhash.DoubleHashH(buf)
	}

	switch {
	case base != SigHashSingle && base != SigHashNone:
		var buf []byte
		for _, out := range tx.TxOut {
			buf = append(buf, out.Bytes()...)
		}
		hashOutputs = chainhash.DoubleHashH(buf)
	case base == SigHashSingle && idx < len(tx.TxOut):
		hashOutputs = chainhash.DoubleHashH(tx.TxOut[idx].Bytes())
	}

	scriptCode := make([]byte, 0, chainhash.VarIntSerializeSize(uint64(len(prevScript)))+len(prevScript))
	scriptCode = chainhash.WriteVarInt(scriptCode, uint64(len(prevScript)))
	scriptCode = append(scriptCode, prevScript...)

	buf := make([]byte, 0, 4+32+32+36+len(scriptCode)+8+4+32+4+4)
	buf = chainhash.PutUint32LE(buf, uint32(tx.Version))
	buf = append(buf, hashPrevOuts[:]...)
	buf = append(buf, hashSequence[:]...)
	buf = append(buf, tx.TxIn[idx].PreviousOutPoint.Bytes()...)
	buf = append(buf, scriptCode...)
	buf = chainhash.PutUint64LE(buf, uint64(prevoutValue))
	buf = chainhash.PutUint32LE(buf, tx.TxIn[idx].Sequence)
	buf = append(buf, hashOutputs[:]...)
	buf = chainhash.PutUint32LE(buf, tx.LockTime)

	sigHashTypeFull := uint32(hashType)
	if params.HasForkID {
		sigHashTypeFull |= uint32(params.ForkID)
	}
	buf = chainhash.PutUint32LE(buf, sigHashTypeFull)

	return chainhash.DoubleHashB(buf), nil
}

// CalcBlakeSignatureHash computes the Blake family's sighash digest
// for input idx: sighash_type_bytes ||
// double_blake(prefix_with_sighash_rules_applied) ||
// witness_signing_hash_for_input_i, itself hashed once with BLAKE-256.
// The Blake family never double-hashes its outer signature digest.
// SINGLE/ANYONECANPAY modifications are applied to the prefix the same
// way the legacy family blanks its inputs/outputs.
func CalcBlakeSignatureHash(tx *wire.DcrMsgTx, idx int, prevScript []byte, hashType SigHashType) ([]byte, er.R) {
	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, er.Errorf(er.KindBadIndex, "input index %d out of range", idx)
	}

	base := hashType & sigHashMask
	if base == SigHashNone {
		return nil, er.New(er.KindDisallowedSighashNone, "SIGHASH_NONE is disallowed")
	}
	if base == SigHashSingle && idx >= len(tx.TxOut) {
		return nil, er.Errorf(er.KindRefusedSighashSingleBug,
			"refusing to reproduce the SIGHASH_SINGLE out-of-range bug: index %d, %d outputs",
			idx, len(tx.TxOut))
	}

	anyone := hashType&SigHashAnyOneCanPay != 0

	txCopy := tx.Copy()
	signIdx := idx
	if anyone {
		txCopy.TxIn = []*wire.DcrTxIn{txCopy.TxIn[idx]}
		txCopy.Witness = []*wire.DcrInputWitness{txCopy.Witness[idx]}
		signIdx = 0
	}

	if base == SigHashSingle {
		outs := make([]*wire.DcrTxOut, idx+1)
		for i := 0; i < idx; i++ {
			outs[i] = &wire.DcrTxOut{Value: -1}
		}
		outs[idx] = txCopy.TxOut[idx]
		txCopy.TxOut = outs
	}

	prefixHash := chainhash.DoubleBlake256B(txCopy.PrefixBytes())

	witnessSigningHash, err := txCopy.WitnessSigningHash(signIdx, prevScript)
	if err != nil {
		return nil, err
	}

	preimage := make([]byte, 0, 4+chainhash.HashSize+chainhash.HashSize)
	preimage = chainhash.PutUint32LE(preimage, uint32(hashType))
	preimage = append(preimage, prefixHash...)
	preimage = append(preimage, witnessSigningHash[:]...)

	return chainhash.Blake256B(preimage), nil
}
