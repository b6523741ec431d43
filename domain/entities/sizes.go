package entities

// Key material and envelope sizes of the wallet engine.
const (
	// SeedSize is the length of a legacy wallet seed.
	SeedSize = 32
	// XPrvSize is the length of an extended private key (kL ‖ kR ‖ chain code).
	XPrvSize = 96
	// XPubSize is the length of an extended public key (A ‖ chain code).
	XPubSize = 64
	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = 64

	// SaltSize, NonceSize and TagSize describe the password envelope
	// salt ‖ nonce ‖ tag ‖ ciphertext.
	SaltSize  = 32
	NonceSize = 12
	TagSize   = 16

	// PasswordOverhead is the number of envelope bytes added to a plaintext.
	PasswordOverhead = SaltSize + NonceSize + TagSize

	// MaxOutputSize bounds every text result without a count hint.
	MaxOutputSize = 4096

	// HardenedIndex is the first hardened derivation index.
	HardenedIndex uint32 = 0x80000000
)
