// Package wallet implements a hierarchical-deterministic wallet core for
// Bitcoin SV: BIP32/BIP39 key derivation, P2PKH address encoding, a raw
// transaction codec, a SIGHASH_FORKID-aware signing engine, and gap-limit
// address scanning against an external read API.
package wallet

import (
	"crypto/hmac"
	"crypto/sha512"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/ripemd160"
)

// sha256Sum returns the single SHA-256 digest of data.
func sha256Sum(data []byte) []byte {
	h := chainhash.HashB(data)
	return h[:]
}

// doubleSHA256 returns SHA-256(SHA-256(data)).
func doubleSHA256(data []byte) []byte {
	h := chainhash.DoubleHashB(data)
	return h[:]
}

// hash160 returns RIPEMD160(SHA256(data)), the hash used for P2PKH pubkey
// hashes and extended-key fingerprints.
func hash160(data []byte) []byte {
	sum := chainhash.HashB(data)
	r := ripemd160.New()
	r.Write(sum[:])
	return r.Sum(nil)
}

// hmacSHA512 computes HMAC-SHA512(key, msg).
func hmacSHA512(key, msg []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// pbkdf2HMACSHA512 derives a key of the given length from pwd and salt using
// PBKDF2-HMAC-SHA512 with the given iteration count.
func pbkdf2HMACSHA512(pwd, salt []byte, iter, keyLen int) []byte {
	return pbkdf2.Key(pwd, salt, iter, keyLen, sha512.New)
}
