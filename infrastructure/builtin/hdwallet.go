package builtin

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

const enhancedEntropyIterations = 4096

var (
	errInvalidEntropy = errors.New("invalid BIP39 entropy")
	errInvalidPoint   = errors.New("invalid curve point")
	errHardenedPublic = errors.New("cannot do public derivation with hard index")
)

// XPrvFromEnhancedEntropy derives a root key from BIP39 entropy and a
// spending password (PBKDF2-HMAC-SHA512, 4096 rounds, 96 bytes).
func XPrvFromEnhancedEntropy(entropy, password []byte) ([]byte, error) {
	if _, err := bip39.NewMnemonic(entropy); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidEntropy, err)
	}
	xprv := pbkdf2.Key(password, entropy, enhancedEntropyIterations, entities.XPrvSize, sha512.New)
	xprv[0] &= 0xf8
	xprv[31] &= 0x1f
	xprv[31] |= 0x40
	return xprv, nil
}

// XPrvFromSeed derives a root key from a legacy 32-byte seed.
func XPrvFromSeed(seed []byte) ([]byte, error) {
	if len(seed) != entities.SeedSize {
		return nil, fmt.Errorf("Wrong seed len %d should be %d", len(seed), entities.SeedSize)
	}
	mac := hmac.New(sha512.New, seed)
	for i := 1; ; i++ {
		mac.Reset()
		fmt.Fprintf(mac, "Root Seed Chain %d", i)
		block := mac.Sum(nil)

		ext := sha512.Sum512(block[:32])
		ext[0] &= 248
		ext[31] &= 63
		ext[31] |= 64
		if ext[31]&0x20 != 0 {
			continue
		}

		xprv := make([]byte, 0, entities.XPrvSize)
		xprv = append(xprv, ext[:]...)
		return append(xprv, block[32:]...), nil
	}
}

// ToPublic returns A ‖ chain code for an extended private key.
func ToPublic(xprv []byte) ([]byte, error) {
	if len(xprv) != entities.XPrvSize {
		return nil, fmt.Errorf("Wrong XPrv len %d should be %d", len(xprv), entities.XPrvSize)
	}
	xpub := make([]byte, 0, entities.XPubSize)
	xpub = append(xpub, publicKey(xprv[:32])...)
	return append(xpub, xprv[64:]...), nil
}

// DerivePrivate derives the child key at index. Indices at or above
// 0x80000000 are hardened.
func DerivePrivate(xprv []byte, index uint32) ([]byte, error) {
	if len(xprv) != entities.XPrvSize {
		return nil, fmt.Errorf("Wrong XPrv len %d should be %d", len(xprv), entities.XPrvSize)
	}
	kl, kr, cc := xprv[:32], xprv[32:64], xprv[64:]

	zmac := hmac.New(sha512.New, cc)
	imac := hmac.New(sha512.New, cc)
	idx := le32(index)
	if index >= entities.HardenedIndex {
		writeAll(zmac, []byte{0x00}, kl, kr, idx)
		writeAll(imac, []byte{0x01}, kl, kr, idx)
	} else {
		pk := publicKey(kl)
		writeAll(zmac, []byte{0x02}, pk, idx)
		writeAll(imac, []byte{0x03}, pk, idx)
	}
	z := zmac.Sum(nil)
	i := imac.Sum(nil)

	child := make([]byte, 0, entities.XPrvSize)
	child = append(child, add28Mul8(kl, z[:32])...)
	child = append(child, add256(kr, z[32:])...)
	return append(child, i[32:]...), nil
}

// DerivePublic derives the child public key at a soft index.
func DerivePublic(xpub []byte, index uint32) ([]byte, error) {
	if len(xpub) != entities.XPubSize {
		return nil, fmt.Errorf("Wrong XPub len %d should be %d", len(xpub), entities.XPubSize)
	}
	if index >= entities.HardenedIndex {
		return nil, errHardenedPublic
	}
	pk, cc := xpub[:32], xpub[32:]

	zmac := hmac.New(sha512.New, cc)
	imac := hmac.New(sha512.New, cc)
	idx := le32(index)
	writeAll(zmac, []byte{0x02}, pk, idx)
	writeAll(imac, []byte{0x03}, pk, idx)
	z := zmac.Sum(nil)
	i := imac.Sum(nil)

	a, err := edwards25519.NewIdentityPoint().SetBytes(pk)
	if err != nil {
		return nil, errInvalidPoint
	}
	tweak, err := edwards25519.NewScalar().SetCanonicalBytes(add28Mul8(make([]byte, 32), z[:32]))
	if err != nil {
		return nil, errInvalidPoint
	}
	child := edwards25519.NewIdentityPoint().Add(a, edwards25519.NewIdentityPoint().ScalarBaseMult(tweak))

	out := make([]byte, 0, entities.XPubSize)
	out = append(out, child.Bytes()...)
	return append(out, i[32:]...), nil
}

// Sign produces an Ed25519 signature of message with an extended private key.
// The signature verifies with crypto/ed25519 against the key's public half.
func Sign(xprv, message []byte) ([]byte, error) {
	if len(xprv) != entities.XPrvSize {
		return nil, fmt.Errorf("Wrong XPrv len %d should be %d", len(xprv), entities.XPrvSize)
	}
	kl, kr := xprv[:32], xprv[32:64]
	s := scalarOf(kl)
	pk := edwards25519.NewIdentityPoint().ScalarBaseMult(s).Bytes()

	h := sha512.New()
	writeAll(h, kr, message)
	r, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, err
	}
	rb := edwards25519.NewIdentityPoint().ScalarBaseMult(r).Bytes()

	h.Reset()
	writeAll(h, rb, pk, message)
	k, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, err
	}
	sig := make([]byte, 0, entities.SignatureSize)
	sig = append(sig, rb...)
	return append(sig, edwards25519.NewScalar().MultiplyAdd(k, s, r).Bytes()...), nil
}

// publicKey computes kL·B.
func publicKey(kl []byte) []byte {
	return edwards25519.NewIdentityPoint().ScalarBaseMult(scalarOf(kl)).Bytes()
}

// scalarOf reduces a 32-byte little-endian integer modulo the group order.
func scalarOf(k []byte) *edwards25519.Scalar {
	wide := make([]byte, 64)
	copy(wide, k)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		panic(err) // unreachable: wide is always 64 bytes
	}
	return s
}

// add28Mul8 returns x + 8*y[:28] over 256-bit little-endian integers.
func add28Mul8(x, y []byte) []byte {
	out := make([]byte, 32)
	var carry uint16
	for i := 0; i < 28; i++ {
		r := uint16(x[i]) + uint16(y[i])<<3 + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	for i := 28; i < 32; i++ {
		r := uint16(x[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	return out
}

// add256 returns x + y modulo 2^256.
func add256(x, y []byte) []byte {
	out := make([]byte, 32)
	var carry uint16
	for i := 0; i < 32; i++ {
		r := uint16(x[i]) + uint16(y[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	return out
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func writeAll(w io.Writer, parts ...[]byte) {
	for _, p := range parts {
		_, _ = w.Write(p)
	}
}
