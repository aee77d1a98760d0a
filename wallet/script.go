package wallet

const (
	opDup            = 0x76
	opHash160        = 0xA9
	opPushData20     = 0x14
	opEqualVerify    = 0x88
	opCheckSig       = 0xAC
	opCodeSeparator  = 0xAB
	p2pkhScriptLen   = 25
	hash160Len       = 20
)

// p2pkhScript builds the canonical 25-byte P2PKH locking script for the
// given 20-byte public key hash: OP_DUP OP_HASH160 <20 bytes>
// OP_EQUALVERIFY OP_CHECKSIG.
func p2pkhScript(hash []byte) ([]byte, error) {
	if len(hash) != hash160Len {
		return nil, ErrInvalidScript
	}
	script := make([]byte, 0, p2pkhScriptLen)
	script = append(script, opDup, opHash160, opPushData20)
	script = append(script, hash...)
	script = append(script, opEqualVerify, opCheckSig)
	return script, nil
}

// parseP2PKHScript extracts the 20-byte public key hash from a locking
// script, failing with ErrInvalidScript on any deviation from the canonical
// template.
func parseP2PKHScript(script []byte) ([]byte, error) {
	if len(script) != p2pkhScriptLen {
		return nil, ErrInvalidScript
	}
	if script[0] != opDup || script[1] != opHash160 || script[2] != opPushData20 {
		return nil, ErrInvalidScript
	}
	if script[23] != opEqualVerify || script[24] != opCheckSig {
		return nil, ErrInvalidScript
	}
	hash := make([]byte, hash160Len)
	copy(hash, script[3:23])
	return hash, nil
}

// stripCodeSeparators removes every OP_CODESEPARATOR byte from script, as
// required when substituting the previous output's script into a legacy
// (pre-FORKID) signature preimage.
func stripCodeSeparators(script []byte) []byte {
	out := make([]byte, 0, len(script))
	for _, b := range script {
		if b != opCodeSeparator {
			out = append(out, b)
		}
	}
	return out
}
