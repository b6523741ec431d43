package builtin

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

func testSeed() []byte {
	seed := make([]byte, entities.SeedSize)
	for i := range seed {
		seed[i] = byte(i * 7)
	}
	return seed
}

func rootKey(t *testing.T) []byte {
	t.Helper()
	xprv, err := XPrvFromSeed(testSeed())
	require.NoError(t, err)
	return xprv
}

func TestXPrvFromEnhancedEntropy(t *testing.T) {
	entropy := bytes.Repeat([]byte{0x5a}, 16)

	xprv, err := XPrvFromEnhancedEntropy(entropy, []byte("spending"))
	require.NoError(t, err)
	require.Len(t, xprv, entities.XPrvSize)
	assert.Zero(t, xprv[0]&0x07)
	assert.Equal(t, byte(0x40), xprv[31]&0xe0)

	again, err := XPrvFromEnhancedEntropy(entropy, []byte("spending"))
	require.NoError(t, err)
	assert.Equal(t, xprv, again)

	other, err := XPrvFromEnhancedEntropy(entropy, nil)
	require.NoError(t, err)
	assert.NotEqual(t, xprv, other)

	for _, n := range []int{0, 15, 17, 33} {
		_, err := XPrvFromEnhancedEntropy(make([]byte, n), nil)
		assert.ErrorIs(t, err, errInvalidEntropy, "entropy of %d bytes", n)
	}
}

func TestXPrvFromSeed(t *testing.T) {
	xprv := rootKey(t)
	require.Len(t, xprv, entities.XPrvSize)
	assert.Zero(t, xprv[0]&0x07)
	assert.Equal(t, byte(0x40), xprv[31]&0xe0)

	again, err := XPrvFromSeed(testSeed())
	require.NoError(t, err)
	assert.Equal(t, xprv, again)

	_, err = XPrvFromSeed(make([]byte, 31))
	require.Error(t, err)
	assert.Equal(t, "Wrong seed len 31 should be 32", err.Error())
}

func TestDerivation_PublicMatchesPrivate(t *testing.T) {
	root := rootKey(t)
	rootPub, err := ToPublic(root)
	require.NoError(t, err)

	for _, index := range []uint32{0, 1, 42, 0x7fffffff} {
		child, err := DerivePrivate(root, index)
		require.NoError(t, err)
		fromPrivate, err := ToPublic(child)
		require.NoError(t, err)

		fromPublic, err := DerivePublic(rootPub, index)
		require.NoError(t, err)

		assert.Equal(t, fromPrivate, fromPublic, "index %d", index)
	}
}

func TestDerivation_Chain(t *testing.T) {
	root := rootKey(t)
	account, err := DerivePrivate(root, entities.HardenedIndex)
	require.NoError(t, err)
	leaf, err := DerivePrivate(account, 5)
	require.NoError(t, err)

	accountPub, err := ToPublic(account)
	require.NoError(t, err)
	leafPub, err := DerivePublic(accountPub, 5)
	require.NoError(t, err)

	want, err := ToPublic(leaf)
	require.NoError(t, err)
	assert.Equal(t, want, leafPub)
}

func TestDerivation_HardenedDiffersFromSoft(t *testing.T) {
	root := rootKey(t)
	soft, err := DerivePrivate(root, 1)
	require.NoError(t, err)
	hard, err := DerivePrivate(root, entities.HardenedIndex|1)
	require.NoError(t, err)
	assert.NotEqual(t, soft, hard)

	pub, err := ToPublic(root)
	require.NoError(t, err)
	_, err = DerivePublic(pub, entities.HardenedIndex)
	assert.ErrorIs(t, err, errHardenedPublic)
}

func TestDerivePublic_InvalidPoint(t *testing.T) {
	var bad []byte
	for b := byte(2); b < 200 && bad == nil; b++ {
		pk := make([]byte, 32)
		pk[0] = b
		if _, err := edwards25519.NewIdentityPoint().SetBytes(pk); err != nil {
			bad = pk
		}
	}
	require.NotNil(t, bad, "no invalid encoding found")

	xpub := append(bad, make([]byte, 32)...)
	_, err := DerivePublic(xpub, 0)
	assert.ErrorIs(t, err, errInvalidPoint)
}

func TestSign_VerifiesWithEd25519(t *testing.T) {
	root := rootKey(t)
	child, err := DerivePrivate(root, 3)
	require.NoError(t, err)
	xpub, err := ToPublic(child)
	require.NoError(t, err)

	msg := []byte("transaction body hash")
	sig, err := Sign(child, msg)
	require.NoError(t, err)
	require.Len(t, sig, entities.SignatureSize)

	assert.True(t, ed25519.Verify(ed25519.PublicKey(xpub[:32]), msg, sig))
	assert.False(t, ed25519.Verify(ed25519.PublicKey(xpub[:32]), []byte("other"), sig))

	again, err := Sign(child, msg)
	require.NoError(t, err)
	assert.Equal(t, sig, again, "signatures are deterministic")
}

func TestArithmetic(t *testing.T) {
	x := make([]byte, 32)
	y := make([]byte, 32)
	x[0], y[0] = 0xff, 0x01
	assert.Equal(t, byte(0x07), add28Mul8(x, y)[0])
	assert.Equal(t, byte(0x01), add28Mul8(x, y)[1])

	// bytes past 28 of y are ignored
	y[28] = 0xff
	assert.Equal(t, add28Mul8(x, make([]byte, 32))[28], add28Mul8(x, y)[28])

	ones := bytes.Repeat([]byte{0xff}, 32)
	one := make([]byte, 32)
	one[0] = 1
	assert.Equal(t, make([]byte, 32), add256(ones, one), "wraps modulo 2^256")
}
