package wallet

import (
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func newTestXPrv(t *testing.T) *XPrv {
	t.Helper()
	var scalar [32]byte
	for {
		if _, err := rand.Read(scalar[:]); err != nil {
			t.Fatalf("rand.Read() error = %v", err)
		}
		if scalarInRange(scalar[:]) {
			break
		}
	}
	return &XPrv{key: scalar}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	key := newTestXPrv(t)
	addr, err := key.Address()
	if err != nil {
		t.Fatalf("Address() error = %v", err)
	}
	hash, err := addressToHash160(addr)
	if err != nil {
		t.Fatalf("addressToHash160() error = %v", err)
	}
	script, err := p2pkhScript(hash)
	if err != nil {
		t.Fatalf("p2pkhScript() error = %v", err)
	}

	const amount = uint64(5274723)
	var prevTxHash chainhash.Hash
	if _, err := rand.Read(prevTxHash[:]); err != nil {
		t.Fatalf("rand.Read() error = %v", err)
	}

	tx := NewTransaction()
	tx.AddInput(NewInput(prevTxHash, 1))
	destOutput, err := NewP2PKHOutput(amount, hash)
	if err != nil {
		t.Fatalf("NewP2PKHOutput() error = %v", err)
	}
	tx.AddOutput(destOutput)

	prevOut := Output{Amount: amount, Script: script}
	prevOutputs := PrevOutputs{
		{TxHash: prevTxHash, Index: 1}: prevOut,
	}
	var hashKey [20]byte
	copy(hashKey[:], hash)
	addressKeys := AddressKeys{hashKey: key}

	if err := SignInputs(tx, prevOutputs, addressKeys); err != nil {
		t.Fatalf("SignInputs() error = %v", err)
	}
	if err := VerifyInputs(tx, prevOutputs); err != nil {
		t.Fatalf("VerifyInputs() error = %v, want success", err)
	}
}

func TestSignInputsMissingInput(t *testing.T) {
	tx := NewTransaction()
	var txHash chainhash.Hash
	tx.AddInput(NewInput(txHash, 0))

	if err := SignInputs(tx, PrevOutputs{}, AddressKeys{}); err != ErrMissingInput {
		t.Errorf("SignInputs() error = %v, want ErrMissingInput", err)
	}
}

func TestSignInputsMissingKey(t *testing.T) {
	var txHash chainhash.Hash
	tx := NewTransaction()
	tx.AddInput(NewInput(txHash, 0))

	key := newTestXPrv(t)
	addr, _ := key.Address()
	hash, _ := addressToHash160(addr)
	script, _ := p2pkhScript(hash)

	prevOutputs := PrevOutputs{
		{TxHash: txHash, Index: 0}: {Amount: 1000, Script: script},
	}

	if err := SignInputs(tx, prevOutputs, AddressKeys{}); err != ErrMissingKey {
		t.Errorf("SignInputs() error = %v, want ErrMissingKey", err)
	}
}

func TestVerifyInputsRejectsTamperedAmount(t *testing.T) {
	key := newTestXPrv(t)
	addr, _ := key.Address()
	hash, _ := addressToHash160(addr)
	script, _ := p2pkhScript(hash)

	var txHash chainhash.Hash
	tx := NewTransaction()
	tx.AddInput(NewInput(txHash, 0))
	destOutput, _ := NewP2PKHOutput(1000, hash)
	tx.AddOutput(destOutput)

	var hashKey [20]byte
	copy(hashKey[:], hash)
	prevOutputs := PrevOutputs{
		{TxHash: txHash, Index: 0}: {Amount: 1000, Script: script},
	}
	if err := SignInputs(tx, prevOutputs, AddressKeys{hashKey: key}); err != nil {
		t.Fatalf("SignInputs() error = %v", err)
	}

	tampered := PrevOutputs{
		{TxHash: txHash, Index: 0}: {Amount: 999, Script: script},
	}
	if err := VerifyInputs(tx, tampered); err == nil {
		t.Error("VerifyInputs() expected failure on tampered amount, got nil")
	}
}
