package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testData = []byte("name,age\nann,31\n")

func TestAlgorithms(t *testing.T) {
	t.Parallel()

	sizes := map[Algorithm]int{
		SHA2_256:    32,
		SHA2_512:    64,
		SHA3_256:    32,
		SHA3_512:    64,
		BLAKE2S_256: 32,
		BLAKE2B_256: 32,
		BLAKE2B_512: 64,
	}
	for alg, size := range sizes {
		h, err := Sum(alg, testData)
		require.NoError(t, err, alg.String())
		assert.Len(t, h.Sum, size, alg.String())
		assert.True(t, h.Matches(testData), alg.String())
		assert.False(t, h.Matches([]byte("other")), alg.String())
	}

	_, err := Sum(Algorithm(0), testData)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Equal(t, "unknown", Algorithm(200).String())
}

func TestKnownSum(t *testing.T) {
	t.Parallel()

	h, err := Sum(SHA2_256, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "01ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", h.Hex())
}

func TestEncodings(t *testing.T) {
	t.Parallel()

	h, err := Sum(BLAKE2B_256, testData)
	require.NoError(t, err)

	fromHex, err := FromHex(h.Hex())
	require.NoError(t, err)
	assert.True(t, h.Equal(fromHex))

	fromSafe64, err := FromSafe64(h.Safe64())
	require.NoError(t, err)
	assert.True(t, h.Equal(fromSafe64))

	_, err = FromBytes(h.Bytes()[:10])
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = FromBytes([]byte{99, 1, 2})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	_, err = FromHex("zz")
	assert.Error(t, err)
}
