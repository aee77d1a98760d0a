package wallet

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// SigHash is the 32-bit signature-hash flag: a base type in the low 5 bits
// plus the FORKID and ANYONECANPAY bits. It is a bit field, not a tagged
// variant; callers branch on its predicate accessors rather than on a type
// switch.
type SigHash uint32

// Base signature-hash types and flag bits.
const (
	SigHashAll    SigHash = 1
	SigHashNone   SigHash = 2
	SigHashSingle SigHash = 3

	SigHashForkID       SigHash = 0x40
	SigHashAnyoneCanPay SigHash = 0x80

	// DefaultSigHash is ALL|FORKID, the flag SignInputs always uses.
	DefaultSigHash SigHash = SigHashAll | SigHashForkID
)

const sigHashBaseMask = 0x1f

// Base returns the low-5-bit base type (ALL, NONE, or SINGLE).
func (s SigHash) Base() SigHash { return s & sigHashBaseMask }

// HasForkID reports whether bit 0x40 is set, selecting the BIP143-style
// FORKID preimage over the legacy pre-fork one.
func (s SigHash) HasForkID() bool { return s&SigHashForkID != 0 }

// HasAnyoneCanPay reports whether bit 0x80 is set.
func (s SigHash) HasAnyoneCanPay() bool { return s&SigHashAnyoneCanPay != 0 }

// OutPoint identifies a previous output being spent: the transaction that
// created it and its output index within that transaction.
type OutPoint struct {
	TxHash chainhash.Hash
	Index  uint32
}

// PrevOutputs maps every OutPoint an unsigned transaction spends to the
// output it references, as needed to compute FORKID preimages (which bind
// the spent amount) and to extract owning addresses during signing.
type PrevOutputs map[OutPoint]Output

func le32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func le64(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

// hashPrevouts computes dsha256 over every input's tx_hash||index, or
// returns 32 zero bytes under ANYONECANPAY.
func hashPrevouts(t *Transaction, sh SigHash) []byte {
	if sh.HasAnyoneCanPay() {
		return make([]byte, 32)
	}
	var buf bytes.Buffer
	for _, in := range t.Inputs {
		buf.Write(in.TxHash[:])
		buf.Write(le32(in.Index))
	}
	return doubleSHA256(buf.Bytes())
}

// hashSequence computes dsha256 over every input's sequence number, or
// returns 32 zero bytes under ANYONECANPAY or base SINGLE/NONE.
func hashSequence(t *Transaction, sh SigHash) []byte {
	base := sh.Base()
	if sh.HasAnyoneCanPay() || base == SigHashSingle || base == SigHashNone {
		return make([]byte, 32)
	}
	var buf bytes.Buffer
	for _, in := range t.Inputs {
		buf.Write(le32(in.Sequence))
	}
	return doubleSHA256(buf.Bytes())
}

// hashOutputs computes dsha256 over the outputs bound into the preimage:
// all of them for base ALL, only output i for base SINGLE (when it
// exists), or 32 zero bytes for base NONE or an out-of-range SINGLE index.
func hashOutputs(t *Transaction, sh SigHash, index int) []byte {
	base := sh.Base()
	if base == SigHashSingle {
		if index >= len(t.Outputs) {
			return make([]byte, 32)
		}
		var buf bytes.Buffer
		t.Outputs[index].serialize(&buf)
		return doubleSHA256(buf.Bytes())
	}
	if base == SigHashNone {
		return make([]byte, 32)
	}
	var buf bytes.Buffer
	for i := range t.Outputs {
		t.Outputs[i].serialize(&buf)
	}
	return doubleSHA256(buf.Bytes())
}

// ForkIDPreimage builds the BIP143-style FORKID signature preimage for
// input index, per spec, binding the spent amount from prevOut.
func ForkIDPreimage(t *Transaction, index int, prevOut Output, sh SigHash) ([]byte, error) {
	if index < 0 || index >= len(t.Inputs) {
		return nil, &InputOutOfBoundsError{Index: index, NumInputs: len(t.Inputs)}
	}
	if sh.Base() == SigHashSingle && index >= len(t.Outputs) {
		return nil, &InputOutOfBoundsError{Index: index, NumInputs: len(t.Outputs)}
	}

	in := t.Inputs[index]

	var buf bytes.Buffer
	buf.Write(le32(t.Version))
	buf.Write(hashPrevouts(t, sh))
	buf.Write(hashSequence(t, sh))
	buf.Write(in.TxHash[:])
	buf.Write(le32(in.Index))
	buf.Write(EncodeVarInt(uint64(len(prevOut.Script))))
	buf.Write(prevOut.Script)
	buf.Write(le64(prevOut.Amount))
	buf.Write(le32(in.Sequence))
	buf.Write(hashOutputs(t, sh, index))
	buf.Write(le32(t.Locktime))
	buf.Write(le32(uint32(sh)))

	return buf.Bytes(), nil
}

// cloneTransaction deep-copies a transaction for legacy-preimage mutation.
func cloneTransaction(t *Transaction) *Transaction {
	clone := &Transaction{
		Version:  t.Version,
		Locktime: t.Locktime,
		Inputs:   make([]Input, len(t.Inputs)),
		Outputs:  make([]Output, len(t.Outputs)),
	}
	for i, in := range t.Inputs {
		clone.Inputs[i] = Input{
			TxHash:   in.TxHash,
			Index:    in.Index,
			Sequence: in.Sequence,
		}
	}
	copy(clone.Outputs, t.Outputs)
	return clone
}

// LegacyPreimage builds the pre-fork signature preimage for input index,
// per spec: script_sigs are cleared, input i's script_sig becomes the
// previous output's script with OP_CODESEPARATOR stripped, and inputs and
// outputs are pruned per the base type and ANYONECANPAY.
func LegacyPreimage(t *Transaction, index int, prevOut Output, sh SigHash) ([]byte, error) {
	if index < 0 || index >= len(t.Inputs) {
		return nil, &InputOutOfBoundsError{Index: index, NumInputs: len(t.Inputs)}
	}
	base := sh.Base()
	if base == SigHashSingle && index >= len(t.Outputs) {
		return nil, &InputOutOfBoundsError{Index: index, NumInputs: len(t.Outputs)}
	}

	clone := cloneTransaction(t)
	for i := range clone.Inputs {
		clone.Inputs[i].ScriptSig = nil
	}
	clone.Inputs[index].ScriptSig = stripCodeSeparators(prevOut.Script)

	if base == SigHashSingle || base == SigHashNone {
		for i := range clone.Inputs {
			if i != index {
				clone.Inputs[i].Sequence = 0
			}
		}
	}

	if sh.HasAnyoneCanPay() {
		clone.Inputs = []Input{clone.Inputs[index]}
	}

	switch base {
	case SigHashNone:
		clone.Outputs = nil
	case SigHashSingle:
		clone.Outputs = clone.Outputs[:index+1]
		for i := 0; i < index; i++ {
			clone.Outputs[i] = Output{Amount: ^uint64(0)}
		}
	}

	serialized := clone.Serialize()
	serialized = append(serialized, le32(uint32(sh))...)
	return serialized, nil
}

// SigHashPreimage builds the raw signature preimage for input index,
// dispatching to the FORKID or legacy construction by the FORKID bit.
// Callers that need the signed message hash should use ComputeSigHash.
func SigHashPreimage(t *Transaction, index int, prevOut Output, sh SigHash) ([]byte, error) {
	if sh.HasForkID() {
		return ForkIDPreimage(t, index, prevOut, sh)
	}
	return LegacyPreimage(t, index, prevOut, sh)
}

// ComputeSigHash returns dsha256(preimage), the 32-byte message that is
// actually signed and verified for input index.
func ComputeSigHash(t *Transaction, index int, prevOut Output, sh SigHash) ([]byte, error) {
	preimage, err := SigHashPreimage(t, index, prevOut, sh)
	if err != nil {
		return nil, err
	}
	return doubleSHA256(preimage), nil
}
