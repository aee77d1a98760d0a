package wallet

// bip39Iterations is the PBKDF2 round count mandated by BIP39.
const bip39Iterations = 2048

// seedLen is the length in bytes of a BIP39 seed.
const seedLen = 64

// Seed is the 64-byte value derived from a mnemonic phrase and optional
// passphrase. It is never persisted; callers should derive a Seed, obtain
// its MasterKey, and discard the Seed.
type Seed struct {
	bytes [seedLen]byte
}

// NewSeed derives a Seed from a space-joined mnemonic phrase and an optional
// passphrase, following BIP39: PBKDF2-HMAC-SHA512(mnemonic, "mnemonic"+
// passphrase, 2048 rounds). The core does not validate mnemonic words against
// a wordlist; it consumes an already-validated phrase.
func NewSeed(mnemonic, passphrase string) Seed {
	salt := "mnemonic" + passphrase
	derived := pbkdf2HMACSHA512([]byte(mnemonic), []byte(salt), bip39Iterations, seedLen)

	var s Seed
	copy(s.bytes[:], derived)
	return s
}

// Bytes returns the raw 64-byte seed.
func (s Seed) Bytes() [seedLen]byte {
	return s.bytes
}

// MasterKey derives the master extended private key from the seed via
// HMAC-SHA512(key="Bitcoin seed", msg=seed): the left 32 bytes become the
// master scalar, the right 32 bytes become the master chain code.
func (s Seed) MasterKey() (*XPrv, error) {
	i := hmacSHA512([]byte("Bitcoin seed"), s.bytes[:])

	var key, chainCode [32]byte
	copy(key[:], i[:32])
	copy(chainCode[:], i[32:])

	if !scalarInRange(key[:]) {
		return nil, ErrInvalidScalar
	}

	return &XPrv{
		depth:             0,
		childNumber:       0,
		parentFingerprint: [4]byte{},
		key:               key,
		chainCode:         chainCode,
	}, nil
}
