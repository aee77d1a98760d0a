package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	selectorDestAddress   = "1BvgsfsZQVtkLS69NvGF8rw6NZW2ShJQHr"
	selectorChangeAddress = "1BvgsfsZQVtkLS69NvGF8rw6NZW2ShJQHr"
)

func makeUTXO(t *testing.T, index uint32, amount uint64) RichOutput {
	t.Helper()
	hash, err := addressToHash160(selectorDestAddress)
	if err != nil {
		t.Fatalf("addressToHash160() error = %v", err)
	}
	var hashKey [20]byte
	copy(hashKey[:], hash)

	var txHash chainhash.Hash
	txHash[0] = byte(index) + 1

	return RichOutput{TxHash: txHash, TxPos: index, Amount: amount, AddressHash160: hashKey}
}

func TestBuildTransactionSelectsEnoughForAmountAndFee(t *testing.T) {
	state := &WalletState{
		Change: ChainScan{NextUnusedAddress: selectorChangeAddress},
		UnspentOutputs: []RichOutput{
			makeUTXO(t, 0, 1000),
			makeUTXO(t, 1, 1000000),
		},
	}

	tx, prevOutputs, err := BuildTransaction(state, 500, selectorDestAddress)
	if err != nil {
		t.Fatalf("BuildTransaction() error = %v", err)
	}

	if len(tx.Outputs) != 2 {
		t.Fatalf("len(Outputs) = %d, want 2 (destination + change)", len(tx.Outputs))
	}
	if tx.Outputs[0].Amount != 500 {
		t.Errorf("destination amount = %d, want 500", tx.Outputs[0].Amount)
	}

	var inputSum uint64
	for _, in := range tx.Inputs {
		op := OutPoint{TxHash: in.TxHash, Index: in.Index}
		inputSum += prevOutputs[op].Amount
	}
	fee := SuggestedFee(tx)
	wantChange := inputSum - 500 - fee
	if tx.Outputs[1].Amount != wantChange {
		t.Errorf("change amount = %d, want %d", tx.Outputs[1].Amount, wantChange)
	}
}

func TestBuildTransactionInsufficientBalance(t *testing.T) {
	state := &WalletState{
		Change:         ChainScan{NextUnusedAddress: selectorChangeAddress},
		UnspentOutputs: []RichOutput{makeUTXO(t, 0, 100)},
	}

	_, _, err := BuildTransaction(state, 1000, selectorDestAddress)
	insufficient, ok := err.(*InsufficientBalanceError)
	if !ok {
		t.Fatalf("BuildTransaction() error = %v, want *InsufficientBalanceError", err)
	}
	if insufficient.Shortfall != 900 {
		t.Errorf("Shortfall = %d, want 900", insufficient.Shortfall)
	}
}

func TestBuildTransactionInsufficientForFee(t *testing.T) {
	state := &WalletState{
		Change:         ChainScan{NextUnusedAddress: selectorChangeAddress},
		UnspentOutputs: []RichOutput{makeUTXO(t, 0, 500)},
	}

	_, _, err := BuildTransaction(state, 500, selectorDestAddress)
	if _, ok := err.(*InsufficientForFeeError); !ok {
		t.Fatalf("BuildTransaction() error = %v, want *InsufficientForFeeError", err)
	}
}
