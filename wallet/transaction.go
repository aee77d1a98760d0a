package wallet

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// defaultSequence is the sequence number used for freshly constructed
// inputs that do not opt into relative-locktime semantics.
const defaultSequence = 0xFFFFFFFF

// Input is one spent outpoint within a Transaction. TxHash is stored in
// wire/internal byte order (the same order chainhash.Hash always uses
// internally); it appears on the wire exactly as stored, which is the
// byte-reversal of its conventional display hex.
type Input struct {
	TxHash    chainhash.Hash
	Index     uint32
	ScriptSig []byte
	Sequence  uint32
}

// NewInput builds an Input spending output Index of the transaction
// identified by txHash, with the default sequence number and an empty
// (not yet signed) script_sig.
func NewInput(txHash chainhash.Hash, index uint32) Input {
	return Input{
		TxHash:   txHash,
		Index:    index,
		Sequence: defaultSequence,
	}
}

func (in *Input) serialize(buf *bytes.Buffer) {
	buf.Write(in.TxHash[:])
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], in.Index)
	buf.Write(idx[:])
	buf.Write(EncodeVarInt(uint64(len(in.ScriptSig))))
	buf.Write(in.ScriptSig)
	var seq [4]byte
	binary.LittleEndian.PutUint32(seq[:], in.Sequence)
	buf.Write(seq[:])
}

// Output is a single payment destination: an amount in satoshis and its
// locking script.
type Output struct {
	Amount uint64
	Script []byte
}

// NewP2PKHOutput builds an Output paying amount satoshis to the canonical
// P2PKH locking script for the given 20-byte public key hash.
func NewP2PKHOutput(amount uint64, pubKeyHash []byte) (Output, error) {
	script, err := p2pkhScript(pubKeyHash)
	if err != nil {
		return Output{}, err
	}
	return Output{Amount: amount, Script: script}, nil
}

func (o *Output) serialize(buf *bytes.Buffer) {
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], o.Amount)
	buf.Write(amt[:])
	buf.Write(EncodeVarInt(uint64(len(o.Script))))
	buf.Write(o.Script)
}

// Transaction is an ordered set of inputs and outputs. Serialization is a
// pure function of Version, Inputs, Outputs, and Locktime; insertion order
// is preserved.
type Transaction struct {
	Version  uint32
	Inputs   []Input
	Outputs  []Output
	Locktime uint32
}

// NewTransaction returns an empty transaction with version 1 and locktime 0,
// matching the defaults every consensus-compatible spender uses.
func NewTransaction() *Transaction {
	return &Transaction{Version: 1}
}

// AddInput appends an input, preserving insertion order.
func (t *Transaction) AddInput(in Input) {
	t.Inputs = append(t.Inputs, in)
}

// AddOutput appends an output, preserving insertion order.
func (t *Transaction) AddOutput(out Output) {
	t.Outputs = append(t.Outputs, out)
}

// Serialize encodes the transaction in the consensus wire format:
// LE version || varint(#inputs) || inputs || varint(#outputs) || outputs ||
// LE locktime.
func (t *Transaction) Serialize() []byte {
	var buf bytes.Buffer

	var version [4]byte
	binary.LittleEndian.PutUint32(version[:], t.Version)
	buf.Write(version[:])

	buf.Write(EncodeVarInt(uint64(len(t.Inputs))))
	for i := range t.Inputs {
		t.Inputs[i].serialize(&buf)
	}

	buf.Write(EncodeVarInt(uint64(len(t.Outputs))))
	for i := range t.Outputs {
		t.Outputs[i].serialize(&buf)
	}

	var locktime [4]byte
	binary.LittleEndian.PutUint32(locktime[:], t.Locktime)
	buf.Write(locktime[:])

	return buf.Bytes()
}

// ParseTransaction is the exact inverse of Serialize. Residual bytes after
// the locktime field fail with ErrLeftoverData.
func ParseTransaction(data []byte) (*Transaction, error) {
	r := bytes.NewReader(data)

	var versionBytes [4]byte
	if _, err := readFull(r, versionBytes[:]); err != nil {
		return nil, err
	}
	t := &Transaction{Version: binary.LittleEndian.Uint32(versionBytes[:])}

	numInputs, err := DecodeVarInt(r)
	if err != nil {
		return nil, err
	}
	t.Inputs = make([]Input, numInputs)
	for i := range t.Inputs {
		var hashBytes [32]byte
		if _, err := readFull(r, hashBytes[:]); err != nil {
			return nil, err
		}
		hash, err := chainhash.NewHash(hashBytes[:])
		if err != nil {
			return nil, ErrTruncatedInput
		}
		t.Inputs[i].TxHash = *hash

		var idxBytes [4]byte
		if _, err := readFull(r, idxBytes[:]); err != nil {
			return nil, err
		}
		t.Inputs[i].Index = binary.LittleEndian.Uint32(idxBytes[:])

		scriptLen, err := DecodeVarInt(r)
		if err != nil {
			return nil, err
		}
		scriptSig, err := readVarBytes(r, scriptLen)
		if err != nil {
			return nil, err
		}
		t.Inputs[i].ScriptSig = scriptSig

		var seqBytes [4]byte
		if _, err := readFull(r, seqBytes[:]); err != nil {
			return nil, err
		}
		t.Inputs[i].Sequence = binary.LittleEndian.Uint32(seqBytes[:])
	}

	numOutputs, err := DecodeVarInt(r)
	if err != nil {
		return nil, err
	}
	t.Outputs = make([]Output, numOutputs)
	for i := range t.Outputs {
		var amtBytes [8]byte
		if _, err := readFull(r, amtBytes[:]); err != nil {
			return nil, err
		}
		t.Outputs[i].Amount = binary.LittleEndian.Uint64(amtBytes[:])

		scriptLen, err := DecodeVarInt(r)
		if err != nil {
			return nil, err
		}
		script, err := readVarBytes(r, scriptLen)
		if err != nil {
			return nil, err
		}
		t.Outputs[i].Script = script
	}

	var locktimeBytes [4]byte
	if _, err := readFull(r, locktimeBytes[:]); err != nil {
		return nil, err
	}
	t.Locktime = binary.LittleEndian.Uint32(locktimeBytes[:])

	if r.Len() > 0 {
		return nil, ErrLeftoverData
	}

	return t, nil
}

// readFull reads len(buf) bytes from r, mapping any short read to
// ErrTruncatedInput.
func readFull(r *bytes.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if err != nil || n != len(buf) {
		return n, ErrTruncatedInput
	}
	return n, nil
}

// readVarBytes reads the n bytes following a decoded varint length prefix,
// failing with VarintOverflowError before allocating if n claims more data
// than r has remaining, rather than letting a merely-truncated read mask
// an oversized length prefix.
func readVarBytes(r *bytes.Reader, n uint64) ([]byte, error) {
	if n > uint64(r.Len()) {
		return nil, &VarintOverflowError{Want: int(n), Have: r.Len()}
	}
	buf := make([]byte, n)
	if _, err := readFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// changeOutputOverhead and perInputSigOverhead are the constants spec.md
// §4.C5 uses to estimate the fee of a transaction that has not yet been
// fully signed: 34 bytes for the change output this spend will add, and
// 107 bytes for each input's expected signed P2PKH script_sig.
const (
	changeOutputOverhead = 34
	perInputSigOverhead  = 107
)

// SuggestedFee estimates, in satoshis at an implicit 1 sat/byte rate, the
// fee a not-yet-fully-signed transaction will require once a change output
// and every input's script_sig are in place.
func SuggestedFee(t *Transaction) uint64 {
	size := len(t.Serialize())
	return uint64(size) + changeOutputOverhead + perInputSigOverhead*uint64(len(t.Inputs))
}
