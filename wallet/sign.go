package wallet

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// compressedPubKeyLen is the 0x21 push-length every P2PKH script_sig ends
// with, ahead of the 33-byte compressed public key itself.
const compressedPubKeyLen = 0x21

// AddressKeys maps a 20-byte P2PKH public key hash to the private key that
// spends it, as required by SignInputs to locate the signing key for each
// input's previous output.
type AddressKeys map[[20]byte]*XPrv

// SignInputs signs every input of t in place with the default SIGHASH
// (ALL|FORKID). For each input it looks up the previous output in
// prevOutputs, extracts the owning 20-byte hash from that output's P2PKH
// script, finds the matching key in addressKeys, and assembles a canonical
// script_sig. On failure, any inputs already signed are left as-is and the
// error is returned.
func SignInputs(t *Transaction, prevOutputs PrevOutputs, addressKeys AddressKeys) error {
	for i, in := range t.Inputs {
		op := OutPoint{TxHash: in.TxHash, Index: in.Index}
		prevOut, ok := prevOutputs[op]
		if !ok {
			return ErrMissingInput
		}

		hash, err := parseP2PKHScript(prevOut.Script)
		if err != nil {
			return err
		}
		var hashKey [20]byte
		copy(hashKey[:], hash)

		priv, ok := addressKeys[hashKey]
		if !ok {
			return ErrMissingKey
		}

		sigHash, err := ComputeSigHash(t, i, prevOut, DefaultSigHash)
		if err != nil {
			return err
		}

		sig := ecdsa.Sign(priv.privKey(), sigHash)
		der := sig.Serialize()

		var scriptSig bytes.Buffer
		scriptSig.Write(EncodeVarInt(uint64(len(der) + 1)))
		scriptSig.Write(der)
		scriptSig.WriteByte(byte(DefaultSigHash))
		scriptSig.WriteByte(compressedPubKeyLen)
		scriptSig.Write(priv.PubKeyCompressed())

		t.Inputs[i].ScriptSig = scriptSig.Bytes()
	}
	return nil
}
