package wallet

import (
	"crypto/elliptic"
	"encoding/binary"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
)

// curve is the shared secp256k1 curve used throughout key derivation.
var curve = btcec.S256()

// curveOrder is the secp256k1 group order n.
var curveOrder = curve.N

// scalarInRange reports whether b, interpreted as a big-endian integer, is a
// valid non-zero scalar modulo the secp256k1 group order.
func scalarInRange(b []byte) bool {
	n := new(big.Int).SetBytes(b)
	return n.Sign() != 0 && n.Cmp(curveOrder) < 0
}

// XPrv is a BIP32 extended private key: a 32-byte scalar plus the chain
// code and provenance metadata needed to derive further children and to
// serialize to the standard 82-byte extended-key format.
type XPrv struct {
	depth             uint8
	childNumber       uint32
	parentFingerprint [4]byte
	key               [32]byte
	chainCode         [32]byte
}

// privKey returns the btcec private key wrapping this XPrv's scalar.
func (x *XPrv) privKey() *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(x.key[:])
	return priv
}

// PubKeyCompressed returns the 33-byte compressed secp256k1 public key
// corresponding to this private key.
func (x *XPrv) PubKeyCompressed() []byte {
	return x.privKey().PubKey().SerializeCompressed()
}

// Fingerprint returns the first 4 bytes of hash160(compressed pubkey),
// used to label this key's children, never for lookup.
func (x *XPrv) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], hash160(x.PubKeyCompressed()))
	return fp
}

// Derive computes the child XPrv at the given index. Indices >= 2^31 select
// hardened derivation (HMAC over 0x00||parent_key); smaller indices select
// non-hardened derivation (HMAC over the parent's compressed pubkey).
func (x *XPrv) Derive(index uint32) (*XPrv, error) {
	var data []byte
	if index >= hardenedOffset {
		data = make([]byte, 0, 1+32+4)
		data = append(data, 0x00)
		data = append(data, x.key[:]...)
	} else {
		data = make([]byte, 0, 33+4)
		data = append(data, x.PubKeyCompressed()...)
	}
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], index)
	data = append(data, idxBytes[:]...)

	i := hmacSHA512(x.chainCode[:], data)
	il, ir := i[:32], i[32:]

	parent := new(big.Int).SetBytes(x.key[:])
	tweak := new(big.Int).SetBytes(il)
	child := new(big.Int).Add(parent, tweak)
	child.Mod(child, curveOrder)
	if child.Sign() == 0 {
		return nil, ErrInvalidScalar
	}

	var childKey, childChainCode [32]byte
	childBytes := child.Bytes()
	copy(childKey[32-len(childBytes):], childBytes)
	copy(childChainCode[:], ir)

	return &XPrv{
		depth:             x.depth + 1,
		childNumber:       index,
		parentFingerprint: x.Fingerprint(),
		key:               childKey,
		chainCode:         childChainCode,
	}, nil
}

// DerivePath derives through every component of a parsed BIP32 path in
// order, starting from this key.
func (x *XPrv) DerivePath(path string) (*XPrv, error) {
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

// Neuter returns the extended public key corresponding to this private key,
// retaining depth, child number, and parent fingerprint.
func (x *XPrv) Neuter() *XPub {
	var pub [33]byte
	copy(pub[:], x.PubKeyCompressed())
	return &XPub{
		depth:             x.depth,
		childNumber:       x.childNumber,
		parentFingerprint: x.parentFingerprint,
		key:               pub,
		chainCode:         x.chainCode,
	}
}

// Address returns the mainnet P2PKH Base58Check address for this key's
// public key.
func (x *XPrv) Address() (string, error) {
	return hash160ToAddress(hash160(x.PubKeyCompressed()))
}

// Serialize encodes this extended private key as the standard 82-byte
// Base58Check string with version 0x0488ADE4.
func (x *XPrv) Serialize() string {
	payload := make([]byte, 0, 78)
	payload = append(payload, chaincfg.MainNetParams.HDPrivateKeyID[:]...)
	payload = append(payload, x.depth)
	payload = append(payload, x.parentFingerprint[:]...)
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], x.childNumber)
	payload = append(payload, childNumBytes[:]...)
	payload = append(payload, x.chainCode[:]...)
	payload = append(payload, 0x00)
	payload = append(payload, x.key[:]...)

	return Base58CheckEncode(payload)
}

// ParseXPrv decodes a Base58Check-encoded extended private key string,
// validating its checksum and version bytes.
func ParseXPrv(s string) (*XPrv, error) {
	payload, err := Base58CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(payload) != 78 {
		return nil, ErrTruncatedInput
	}
	var version [4]byte
	copy(version[:], payload[:4])
	if version != chaincfg.MainNetParams.HDPrivateKeyID {
		return nil, ErrInvalidAddress
	}

	x := &XPrv{depth: payload[4]}
	copy(x.parentFingerprint[:], payload[5:9])
	x.childNumber = binary.BigEndian.Uint32(payload[9:13])
	copy(x.chainCode[:], payload[13:45])
	copy(x.key[:], payload[46:78])

	return x, nil
}

// hash160ToAddress encodes a 20-byte pubkey hash as a mainnet P2PKH address.
func hash160ToAddress(hash []byte) (string, error) {
	if len(hash) != 20 {
		return "", ErrInvalidAddress
	}
	payload := make([]byte, 0, 21)
	payload = append(payload, chaincfg.MainNetParams.PubKeyHashAddrID)
	payload = append(payload, hash...)
	return Base58CheckEncode(payload), nil
}

// addressToHash160 decodes a mainnet P2PKH address back to its 20-byte hash.
func addressToHash160(address string) ([]byte, error) {
	payload, err := Base58CheckDecode(address)
	if err != nil {
		return nil, err
	}
	if len(payload) != 21 || payload[0] != chaincfg.MainNetParams.PubKeyHashAddrID {
		return nil, ErrInvalidAddress
	}
	return payload[1:], nil
}

// marshalCompressedPoint re-derives the compressed SEC1 encoding of a point
// from its affine coordinates, bridging crypto/elliptic arithmetic back to
// a btcec public key.
func marshalCompressedPoint(x, y *big.Int) []byte {
	return elliptic.MarshalCompressed(curve, x, y)
}
