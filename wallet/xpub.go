package wallet

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
)

// XPub is a BIP32 extended public key: a 33-byte compressed secp256k1 point
// plus the chain code and provenance metadata needed to derive further
// non-hardened children and to serialize to the standard extended-key
// format. Unlike XPrv, it cannot derive hardened children.
type XPub struct {
	depth             uint8
	childNumber       uint32
	parentFingerprint [4]byte
	key               [33]byte
	chainCode         [32]byte
}

// pubKey parses this XPub's stored bytes into a btcec public key.
func (x *XPub) pubKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(x.key[:])
}

// PubKeyCompressed returns the 33-byte compressed secp256k1 public key.
func (x *XPub) PubKeyCompressed() []byte {
	out := make([]byte, 33)
	copy(out, x.key[:])
	return out
}

// Fingerprint returns the first 4 bytes of hash160(compressed pubkey).
func (x *XPub) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], hash160(x.PubKeyCompressed()))
	return fp
}

// Derive computes the non-hardened child XPub at the given index. Hardened
// indices (>= 2^31) fail with ErrPublicHardenedDerivation, since deriving a
// hardened child requires the parent's private scalar.
func (x *XPub) Derive(index uint32) (*XPub, error) {
	if index >= hardenedOffset {
		return nil, ErrPublicHardenedDerivation
	}

	data := make([]byte, 0, 33+4)
	data = append(data, x.PubKeyCompressed()...)
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], index)
	data = append(data, idxBytes[:]...)

	i := hmacSHA512(x.chainCode[:], data)
	il, ir := i[:32], i[32:]

	if !scalarInRange(il) {
		return nil, ErrInvalidScalar
	}

	parentPub, err := x.pubKey()
	if err != nil {
		return nil, err
	}
	parentECDSA := parentPub.ToECDSA()

	tweakX, tweakY := curve.ScalarBaseMult(il)
	childX, childY := curve.Add(parentECDSA.X, parentECDSA.Y, tweakX, tweakY)

	childPub, err := btcec.ParsePubKey(marshalCompressedPoint(childX, childY))
	if err != nil {
		return nil, ErrInvalidPoint
	}

	var childKey [33]byte
	copy(childKey[:], childPub.SerializeCompressed())
	var childChainCode [32]byte
	copy(childChainCode[:], ir)

	return &XPub{
		depth:             x.depth + 1,
		childNumber:       index,
		parentFingerprint: x.Fingerprint(),
		key:               childKey,
		chainCode:         childChainCode,
	}, nil
}

// DerivePath derives through every component of a parsed BIP32 path in
// order. Any hardened component fails with ErrPublicHardenedDerivation.
func (x *XPub) DerivePath(path string) (*XPub, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	current := x
	for _, index := range indices {
		next, err := current.Derive(index)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Address returns the mainnet P2PKH Base58Check address for this public key.
func (x *XPub) Address() (string, error) {
	return hash160ToAddress(hash160(x.PubKeyCompressed()))
}

// Serialize encodes this extended public key as the standard 82-byte
// Base58Check string with version 0x0488B21E.
func (x *XPub) Serialize() string {
	payload := make([]byte, 0, 78)
	payload = append(payload, chaincfg.MainNetParams.HDPublicKeyID[:]...)
	payload = append(payload, x.depth)
	payload = append(payload, x.parentFingerprint[:]...)
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], x.childNumber)
	payload = append(payload, childNumBytes[:]...)
	payload = append(payload, x.chainCode[:]...)
	payload = append(payload, x.key[:]...)

	return Base58CheckEncode(payload)
}

// ParseXPub decodes a Base58Check-encoded extended public key string,
// validating its checksum and version bytes.
func ParseXPub(s string) (*XPub, error) {
	payload, err := Base58CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(payload) != 78 {
		return nil, ErrTruncatedInput
	}
	var version [4]byte
	copy(version[:], payload[:4])
	if version != chaincfg.MainNetParams.HDPublicKeyID {
		return nil, ErrInvalidAddress
	}

	x := &XPub{depth: payload[4]}
	copy(x.parentFingerprint[:], payload[5:9])
	x.childNumber = binary.BigEndian.Uint32(payload[9:13])
	copy(x.chainCode[:], payload[13:45])
	copy(x.key[:], payload[45:78])

	return x, nil
}
