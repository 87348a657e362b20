// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/txforge/txcore/chainhash"
	"github.com/txforge/txcore/er"
)

// MaxWitnessItemSize is the maximum length of a single witness stack
// item.
const MaxWitnessItemSize = 520

// WitnessStackItem is one element of an input's witness stack.
type WitnessStackItem []byte

// NewWitnessStackItem constructs a WitnessStackItem, enforcing the
// maximum item size.
func NewWitnessStackItem(item []byte) (WitnessStackItem, er.R) {
	if len(item) > MaxWitnessItemSize {
		return nil, er.Errorf(er.KindWitnessItemTooLarge,
			"item is too large: expected <= %d bytes, got %d",
			MaxWitnessItemSize, len(item))
	}
	return WitnessStackItem(cloneBytes(item)), nil
}

// SerializeSize returns the number of bytes it would take to serialize
// this item.
func (w WitnessStackItem) SerializeSize() int {
	return chainhash.VarIntSerializeSize(uint64(len(w))) + len(w)
}

// Bytes returns the canonical serialization: varint(len) || item.
func (w WitnessStackItem) Bytes() []byte {
	buf := make([]byte, 0, w.SerializeSize())
	buf = chainhash.WriteVarInt(buf, uint64(len(w)))
	buf = append(buf, w...)
	return buf
}

// TxWitness is the ordered list of witness stack items carrying one
// input's segregated spend authorization.
type TxWitness []WitnessStackItem

// SerializeSize returns the number of bytes it would take to serialize
// this witness.
func (w TxWitness) SerializeSize() int {
	n := chainhash.VarIntSerializeSize(uint64(len(w)))
	for _, item := range w {
		n += item.SerializeSize()
	}
	return n
}

// Bytes returns the canonical serialization: varint(n) || items.
func (w TxWitness) Bytes() []byte {
	buf := make([]byte, 0, w.SerializeSize())
	buf = chainhash.WriteVarInt(buf, uint64(len(w)))
	for _, item := range w {
		buf = append(buf, item.Bytes()...)
	}
	return buf
}

// Copy returns a deep, independent clone of w.
func (w TxWitness) Copy() TxWitness {
	out := make(TxWitness, len(w))
	for i, item := range w {
		out[i] = WitnessStackItem(cloneBytes(item))
	}
	return out
}

// TxWitnessFromBytes parses a TxWitness from the head of buf, returning
// the value and the number of bytes consumed.
func TxWitnessFromBytes(buf []byte, strict bool) (TxWitness, int, er.R) {
	count, off, err := chainhash.ReadVarInt(buf, strict)
	if err != nil {
		return nil, 0, err
	}
	// Every item occupies at least its one-byte length prefix.
	if count > uint64(len(buf[off:])) {
		return nil, 0, er.Errorf(er.KindTruncated,
			"witness declares %d items, only %d bytes available",
			count, len(buf[off:]))
	}

	items := make(TxWitness, 0, count)
	for i := uint64(0); i < count; i++ {
		itemLen, n, err := chainhash.ReadVarInt(buf[off:], strict)
		if err != nil {
			return nil, 0, err
		}
		off += n

		if uint64(len(buf[off:])) < itemLen {
			return nil, 0, er.Errorf(er.KindTruncated,
				"witness item declares %d bytes, only %d available",
				itemLen, len(buf[off:]))
		}
		item, err := NewWitnessStackItem(buf[off : off+int(itemLen)])
		if err != nil {
			return nil, 0, err
		}
		off += int(itemLen)
		items = append(items, item)
	}
	return items, off, nil
}
