package txscript

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/txforge/txcore/chaincfg"
	"github.com/txforge/txcore/chainhash"
	"github.com/txforge/txcore/er"
	"github.com/txforge/txcore/wire"
)

// p2pkhSpendHex is the same on-chain transaction the wire tests round-trip
// (txid 452c629d67e41baec3ac6f04fe744b4b9617f8f859c63b3002f8684e7a4fee03);
// prevPkScriptHex is the P2PKH output script it spends.
const p2pkhSpendHex = "0100000001813f79011acb80925dfe69b3def355fe914bd1d96a3f5f71bf8303c6a989c7d1000000006b483045022100ed81ff192e75a3fd2304004dcadb746fa5e24c5031ccfcf21320b0277457c98f02207a986d955c6e0cb35d446a89d3f56100f4d7f67801c31967743a9c8e10615bed01210349fc4e631e3624a545de3f89f5d8684c7b8138bd94bdd531d2e213bf016b278afeffffff02a135ef01000000001976a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada88ac99c39800000000001976a9141c4bc762dd5423e332166702cb75f40df79fea1288ac19430600"

const prevPkScriptHex = "76a914a802fc56c704ce87c42d7c92eb75e7896bdc41ae88ac"

func parseFixtureTx(t *testing.T) (*wire.MsgTx, []byte) {
	t.Helper()
	raw, err := hex.DecodeString(p2pkhSpendHex)
	require.NoError(t, err)
	tx, _, rerr := wire.MsgTxFromBytes(raw, false)
	require.Nil(t, rerr)
	prevScript, err := hex.DecodeString(prevPkScriptHex)
	require.NoError(t, err)
	return tx, prevScript
}

func TestSighashLegacyVectors(t *testing.T) {
	tx, prevScript := parseFixtureTx(t)

	cases := []struct {
		name         string
		single       bool
		anyoneCanPay bool
		want         string
	}{
		{"all", false, false,
			"27e0c5994dec7824e56dec6b2fcb342eb7cdb0d0957c2fce9882f715e85d81a6"},
		{"all anyonecanpay", false, true,
			"d598d6849114bb8573a0f51184fa46fb3ff7516ef4ba7a27356d691ff579c20d"},
		{"single", true, false,
			"7b6ffdc173494eb86fa8a89893cee9cdb6e4611622220dd2eac3a1571a507e92"},
		{"single anyonecanpay", true, true,
			"26a64b6eeaec01c8ce05b905cf5fe9479b5311d1893cf28d13bf6d265cfb119a"},
	}
	for _, c := range cases {
		var digest []byte
		var err er.R
		if c.single {
			digest, err = SighashSingle(tx, chaincfg.MainNet, 0, prevScript, nil, c.anyoneCanPay)
		} else {
			digest, err = SighashAll(tx, chaincfg.MainNet, 0, prevScript, nil, c.anyoneCanPay)
		}
		require.Nil(t, err, c.name)
		require.Equal(t, c.want, hex.EncodeToString(digest), c.name)
	}
}

func TestSighashForkIDVectors(t *testing.T) {
	tx, prevScript := parseFixtureTx(t)
	value := int64(100000000)

	cases := []struct {
		name         string
		single       bool
		anyoneCanPay bool
		want         string
	}{
		{"all", false, false,
			"8e1407edf5f809d6e5f19cc193ffd5c6dac6bcb68950498d49288d7a55842d8e"},
		{"all anyonecanpay", false, true,
			"975457325a512f0f24629082bf207e31de119a3c44fc9c7189d71c362059ebc7"},
		{"single", true, false,
			"b05e4ded6806215569e0137bcd7b0537b24d971e692b61083836a7c16cd605cb"},
		{"single anyonecanpay", true, true,
			"f0d515c36eb996900d2ad6b7c82df8692189fdba488cec205bfcd2850cf45c4d"},
	}
	for _, c := range cases {
		var digest []byte
		var err er.R
		if c.single {
			digest, err = SighashSingle(tx, chaincfg.ForkIDNet, 0, prevScript, &value, c.anyoneCanPay)
		} else {
			digest, err = SighashAll(tx, chaincfg.ForkIDNet, 0, prevScript, &value, c.anyoneCanPay)
		}
		require.Nil(t, err, c.name)
		require.Equal(t, c.want, hex.EncodeToString(digest), c.name)
	}
}

func TestSighashWitnessPreimageWithoutForkID(t *testing.T) {
	tx, prevScript := parseFixtureTx(t)
	value := int64(100000000)

	digest, err := SighashAll(tx, chaincfg.MainNet, 0, prevScript, &value, false)
	require.Nil(t, err)
	require.Equal(t,
		"8b3f41e39f91c7daab2ad6194ec37883eadb42ef981e1ac46ffbc4190368bf4b",
		hex.EncodeToString(digest))
}

func buildTestTx(t *testing.T, nIn, nOut int) *wire.MsgTx {
	t.Helper()
	ins := make([]*wire.TxIn, nIn)
	for i := range ins {
		var h chainhash.Hash
		h[0] = byte(i + 1)
		in, err := wire.NewTxIn(wire.NewOutPoint(h, uint32(i)), nil, nil, 0xffffffff)
		require.Nil(t, err)
		ins[i] = in
	}
	outs := make([]*wire.TxOut, nOut)
	for i := range outs {
		out, err := wire.NewTxOut(100000+int64(i), []byte{0x76, 0xa9, 0x14})
		require.Nil(t, err)
		outs[i] = out
	}
	tx, err := wire.NewMsgTx(1, false, ins, outs, nil, 0)
	require.Nil(t, err)
	return tx
}

func TestSighashNoneAlwaysDisallowed(t *testing.T) {
	tx := buildTestTx(t, 1, 1)
	_, err := SighashNone(tx, nil, 0, []byte{0x01}, nil, false)
	require.NotNil(t, err)
	require.Equal(t, er.KindDisallowedSighashNone, err.Kind())
}

func TestSighashSingleRefusesOutOfRangeBug(t *testing.T) {
	tx := buildTestTx(t, 3, 2)
	_, err := SighashSingle(tx, nil, 2, []byte{0x01}, nil, false)
	require.NotNil(t, err)
	require.Equal(t, er.KindRefusedSighashSingleBug, err.Kind())
}

func TestSighashAllLegacyDeterministic(t *testing.T) {
	tx := buildTestTx(t, 1, 1)
	prevScript := []byte{0x76, 0xa9, 0x14}

	d1, err := SighashAll(tx, nil, 0, prevScript, nil, false)
	require.Nil(t, err)
	require.Len(t, d1, chainhash.HashSize)

	d2, err := SighashAll(tx, nil, 0, prevScript, nil, false)
	require.Nil(t, err)
	require.Equal(t, d1, d2)

	d3, err := SighashAll(tx, nil, 0, []byte{0x51}, nil, false)
	require.Nil(t, err)
	require.NotEqual(t, d1, d3)
}

func TestSighashAllWitnessVsForkIDDiffer(t *testing.T) {
	tx := buildTestTx(t, 1, 1)
	prevScript := []byte{0x76, 0xa9, 0x14}
	value := int64(100000000)

	legacyProfile := chaincfg.MainNet
	forkIDProfile := chaincfg.ForkIDNet

	d1, err := SighashAll(tx, legacyProfile, 0, prevScript, &value, false)
	require.Nil(t, err)

	d2, err := SighashAll(tx, forkIDProfile, 0, prevScript, &value, false)
	require.Nil(t, err)

	require.NotEqual(t, d1, d2)
}

func TestCalcSignatureHashRejectsBlakeProfile(t *testing.T) {
	tx := buildTestTx(t, 1, 1)
	_, err := CalcSignatureHash(tx, chaincfg.BlakeNet, 0, []byte{0x01}, nil, SigHashAll)
	require.NotNil(t, err)
	require.Equal(t, er.KindProfileMisuse, err.Kind())
}

func TestCalcSignatureHashBadIndex(t *testing.T) {
	tx := buildTestTx(t, 1, 1)
	_, err := CalcSignatureHash(tx, nil, 5, []byte{0x01}, nil, SigHashAll)
	require.NotNil(t, err)
	require.Equal(t, er.KindBadIndex, err.Kind())
}

func buildDcrTestTx(t *testing.T, nIn, nOut int) *wire.DcrMsgTx {
	t.Helper()
	require.Nil(t, chaincfg.Select(chaincfg.BlakeNet.Name))
	t.Cleanup(func() { require.Nil(t, chaincfg.Select(chaincfg.MainNet.Name)) })
	ins := make([]*wire.DcrTxIn, nIn)
	for i := range ins {
		var h chainhash.Hash
		h[0] = byte(i + 1)
		ins[i] = wire.NewDcrTxIn(wire.NewDcrOutPoint(h, uint32(i), 0), 0xffffffff)
	}
	outs := make([]*wire.DcrTxOut, nOut)
	wits := make([]*wire.DcrInputWitness, nIn)
	for i := range outs {
		out, err := wire.NewDcrTxOut(100000+int64(i), 0, []byte{0x76, 0xa9, 0x14})
		require.Nil(t, err)
		outs[i] = out
	}
	for i := range wits {
		w, err := wire.NewDcrInputWitness(200000, 0, 0, nil, []byte{0x51})
		require.Nil(t, err)
		wits[i] = w
	}
	tx, err := wire.NewDcrMsgTx(1, ins, outs, 0, 0, wits)
	require.Nil(t, err)
	return tx
}

func TestCalcBlakeSignatureHashDeterministic(t *testing.T) {
	tx := buildDcrTestTx(t, 1, 1)
	d1, err := CalcBlakeSignatureHash(tx, 0, []byte{0x51}, SigHashAll)
	require.Nil(t, err)
	require.Len(t, d1, chainhash.HashSize)

	d2, err := CalcBlakeSignatureHash(tx, 0, []byte{0x51}, SigHashAll)
	require.Nil(t, err)
	require.Equal(t, d1, d2)

	d3, err := CalcBlakeSignatureHash(tx, 0, []byte{0x52}, SigHashAll)
	require.Nil(t, err)
	require.NotEqual(t, d1, d3)
}

func TestCalcBlakeSignatureHashNoneDisallowed(t *testing.T) {
	tx := buildDcrTestTx(t, 1, 1)
	_, err := CalcBlakeSignatureHash(tx, 0, []byte{0x51}, SigHashNone)
	require.NotNil(t, err)
	require.Equal(t, er.KindDisallowedSighashNone, err.Kind())
}

func TestCalcBlakeSignatureHashSingleBugRefused(t *testing.T) {
	tx := buildDcrTestTx(t, 2, 1)
	_, err := CalcBlakeSignatureHash(tx, 1, []byte{0x51}, SigHashSingle)
	require.NotNil(t, err)
	require.Equal(t, er.KindRefusedSighashSingleBug, err.Kind())
}
