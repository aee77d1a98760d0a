package wallet

// BuildTransaction implements the greedy coin selector of 4.C9: it pays
// amount satoshis to destinationAddress, accumulates unspent outputs from
// state in their scan order until the target and the transaction's own
// dynamically recomputed fee are both covered, and appends a change
// output to the wallet's next unused change address. The returned
// transaction is unsigned; pair it with the returned PrevOutputs and
// state.AllKeys() to call SignInputs.
func BuildTransaction(state *WalletState, amount uint64, destinationAddress string) (*Transaction, PrevOutputs, error) {
	destHash, err := addressToHash160(destinationAddress)
	if err != nil {
		return nil, nil, err
	}
	destOutput, err := NewP2PKHOutput(amount, destHash)
	if err != nil {
		return nil, nil, err
	}

	tx := NewTransaction()
	tx.AddOutput(destOutput)

	prevOutputs := PrevOutputs{}
	var outputSum uint64

	for _, utxo := range state.UnspentOutputs {
		if outputSum >= amount {
			fee := SuggestedFee(tx)
			if outputSum-amount >= fee {
				break
			}
		}

		script, err := p2pkhScript(utxo.AddressHash160[:])
		if err != nil {
			return nil, nil, err
		}
		prevOut := Output{Amount: utxo.Amount, Script: script}
		op := OutPoint{TxHash: utxo.TxHash, Index: utxo.TxPos}

		tx.AddInput(NewInput(utxo.TxHash, utxo.TxPos))
		prevOutputs[op] = prevOut
		outputSum += utxo.Amount
	}

	if outputSum < amount {
		return nil, nil, &InsufficientBalanceError{Shortfall: amount - outputSum}
	}

	fee := SuggestedFee(tx)
	if outputSum-amount < fee {
		return nil, nil, &InsufficientForFeeError{Required: amount + fee}
	}

	change := outputSum - amount - fee
	changeHash, err := addressToHash160(state.Change.NextUnusedAddress)
	if err != nil {
		return nil, nil, ErrInvalidChangeAddress
	}
	changeOutput, err := NewP2PKHOutput(change, changeHash)
	if err != nil {
		return nil, nil, ErrInvalidChangeAddress
	}
	tx.AddOutput(changeOutput)

	return tx, prevOutputs, nil
}
