package wallet

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// parseScriptSig splits a canonical P2PKH script_sig into its DER signature
// (with the trailing sighash byte already separated out) and compressed
// public key.
func parseScriptSig(scriptSig []byte) (der []byte, sighash SigHash, pubkey []byte, err error) {
	r := bytes.NewReader(scriptSig)

	sigLen, err := DecodeVarInt(r)
	if err != nil {
		return nil, 0, nil, err
	}
	if sigLen == 0 {
		return nil, 0, nil, ErrInvalidScript
	}
	sigAndHash, err := readVarBytes(r, sigLen)
	if err != nil {
		return nil, 0, nil, err
	}
	der = sigAndHash[:len(sigAndHash)-1]
	sighash = SigHash(sigAndHash[len(sigAndHash)-1])

	pushLen, err := r.ReadByte()
	if err != nil {
		return nil, 0, nil, ErrTruncatedInput
	}
	if pushLen != compressedPubKeyLen {
		return nil, 0, nil, ErrInvalidScript
	}
	pubkey = make([]byte, compressedPubKeyLen)
	if _, err := readFull(r, pubkey); err != nil {
		return nil, 0, nil, err
	}

	if r.Len() > 0 {
		return nil, 0, nil, ErrLeftoverData
	}
	return der, sighash, pubkey, nil
}

// VerifyInputs checks every input's script_sig against its previous output,
// selecting the FORKID or legacy preimage per that input's own sighash
// byte. The first failing input fails the whole transaction.
func VerifyInputs(t *Transaction, prevOutputs PrevOutputs) error {
	for i, in := range t.Inputs {
		op := OutPoint{TxHash: in.TxHash, Index: in.Index}
		prevOut, ok := prevOutputs[op]
		if !ok {
			return ErrMissingInput
		}

		der, sighash, pubkeyBytes, err := parseScriptSig(in.ScriptSig)
		if err != nil {
			return err
		}

		sig, err := ecdsa.ParseDERSignature(der)
		if err != nil {
			return err
		}
		pubkey, err := btcec.ParsePubKey(pubkeyBytes)
		if err != nil {
			return err
		}

		msg, err := ComputeSigHash(t, i, prevOut, sighash)
		if err != nil {
			return err
		}

		if !sig.Verify(msg, pubkey) {
			return &InputVerificationError{Index: i}
		}
	}
	return nil
}
