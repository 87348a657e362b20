package chainhash

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/txforge/txcore/er"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 0xfc, 0xfd, 0xfe, 0xff,
		0xffff, 0x10000, 0xffffffff, 0x100000000,
		0x0123456789abcdef, 0xffffffffffffffff,
	}
	for _, v := range values {
		buf := WriteVarInt(nil, v)
		require.Equal(t, VarIntSerializeSize(v), len(buf))

		got, n, err := ReadVarInt(buf, true)
		require.Nil(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), n)
	}
}

func TestVarIntStrictRejectsNonMinimal(t *testing.T) {
	// 0xfd followed by 0x00 0x00 encodes zero, which fits in one byte:
	// non-minimal under the 0xfd discriminant.
	nonMinimal := []byte{0xfd, 0x00, 0x00}

	_, _, err := ReadVarInt(nonMinimal, true)
	require.NotNil(t, err)
	require.Equal(t, er.KindNonCompactVarInt, err.Kind())

	v, n, err := ReadVarInt(nonMinimal, false)
	require.Nil(t, err)
	require.Equal(t, uint64(0), v)
	require.Equal(t, 3, n)
}

func TestVarIntTruncated(t *testing.T) {
	_, _, err := ReadVarInt(nil, false)
	require.NotNil(t, err)

	_, _, err = ReadVarInt([]byte{0xff, 0x01, 0x02}, false)
	require.NotNil(t, err)
}
