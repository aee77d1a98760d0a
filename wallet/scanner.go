package wallet

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// mainChainPath and changeChainPath are the two BIP44-style account
// branches the scanner discovers addresses on.
const (
	mainChainPath   = "m/0'/0"
	changeChainPath = "m/0'/1"
)

// ChainScan is the result of gap-limit discovery on one chain (main or
// change): every used address's signing key, keyed by its 20-byte pubkey
// hash, plus the index and address immediately following the used run.
// UsedOrder lists the same keys' hashes in ascending derivation-index
// order, since Keys (a map) cannot be relied on to preserve it.
type ChainScan struct {
	LastUsedIndex     uint32
	Keys              AddressKeys
	UsedOrder         [][20]byte
	NextUnusedAddress string
}

// deriveBatch derives OracleBatchSize consecutive non-hardened children of
// chainRoot starting at startIndex, returning their addresses, keys, and
// pubkey hashes in index order.
func deriveBatch(chainRoot *XPrv, startIndex uint32) (addrs []string, keys []*XPrv, hashes [][20]byte, err error) {
	addrs = make([]string, OracleBatchSize)
	keys = make([]*XPrv, OracleBatchSize)
	hashes = make([][20]byte, OracleBatchSize)

	for i := 0; i < OracleBatchSize; i++ {
		child, derr := chainRoot.Derive(startIndex + uint32(i))
		if derr != nil {
			return nil, nil, nil, derr
		}
		addr, derr := child.Address()
		if derr != nil {
			return nil, nil, nil, derr
		}
		hash, derr := addressToHash160(addr)
		if derr != nil {
			return nil, nil, nil, derr
		}
		addrs[i] = addr
		keys[i] = child
		copy(hashes[i][:], hash)
	}
	return addrs, keys, hashes, nil
}

// scanChain implements the gap-limit discovery loop of 4.C8: batches of
// OracleBatchSize addresses are queried for history in ascending index
// order; a batch that is not used in full stops the scan at the first gap
// within that batch, since sequential wallets never reuse an address past
// a gap.
func scanChain(ctx context.Context, oracle Oracle, chainRoot *XPrv) (*ChainScan, error) {
	keys := AddressKeys{}
	var order [][20]byte
	lastIndex := uint32(0)

	for {
		addrs, batchKeys, hashes, err := deriveBatch(chainRoot, lastIndex)
		if err != nil {
			return nil, err
		}

		histories, err := oracle.FetchHistory(ctx, addrs)
		if err != nil {
			return nil, err
		}
		used := make(map[string]bool, len(histories))
		for _, h := range histories {
			if len(h.History) > 0 {
				used[h.Address] = true
			}
		}

		k := 0
		for k < OracleBatchSize && used[addrs[k]] {
			keys[hashes[k]] = batchKeys[k]
			order = append(order, hashes[k])
			k++
		}
		lastIndex += uint32(k)

		if k < OracleBatchSize {
			return &ChainScan{
				LastUsedIndex:     lastIndex,
				Keys:              keys,
				UsedOrder:         order,
				NextUnusedAddress: addrs[k],
			}, nil
		}
	}
}

// RichOutput is an unspent output discovered during scanning, annotated
// with the 20-byte hash of the address that owns it.
type RichOutput struct {
	TxHash         chainhash.Hash
	TxPos          uint32
	Amount         uint64
	AddressHash160 [20]byte
}

// orderedKeyEntry pairs a used address's pubkey hash with its signing key,
// in the fixed discovery order scanChain found it in.
type orderedKeyEntry struct {
	hash [20]byte
	key  *XPrv
}

// orderedKeyEntries lists every used key from both chains in a fixed,
// deterministic order (main chain first, then change, each in ascending
// derivation-index order), so that the address batches handed to the
// oracle — and therefore the aggregated UnspentOutputs — do not depend on
// Go's randomized map iteration order.
func (w *WalletState) orderedKeyEntries() []orderedKeyEntry {
	entries := make([]orderedKeyEntry, 0, len(w.Main.UsedOrder)+len(w.Change.UsedOrder))
	for _, h := range w.Main.UsedOrder {
		entries = append(entries, orderedKeyEntry{hash: h, key: w.Main.Keys[h]})
	}
	for _, h := range w.Change.UsedOrder {
		entries = append(entries, orderedKeyEntry{hash: h, key: w.Change.Keys[h]})
	}
	return entries
}

// fetchUnspentForKeys queries the unspent-outputs endpoint for every entry
// in keys, in batches of OracleBatchSize, preserving keys' order in both
// the addresses sent to the oracle and the aggregated result so that
// downstream coin selection is deterministic given identical oracle replies.
func fetchUnspentForKeys(ctx context.Context, oracle Oracle, keys []orderedKeyEntry) ([]RichOutput, uint64, error) {
	addrHash := make(map[string][20]byte, len(keys))
	addrs := make([]string, 0, len(keys))
	for _, entry := range keys {
		addr, err := entry.key.Address()
		if err != nil {
			return nil, 0, err
		}
		addrHash[addr] = entry.hash
		addrs = append(addrs, addr)
	}

	var outputs []RichOutput
	var balance uint64

	for start := 0; start < len(addrs); start += OracleBatchSize {
		end := start + OracleBatchSize
		if end > len(addrs) {
			end = len(addrs)
		}
		batch := addrs[start:end]

		results, err := oracle.FetchUnspent(ctx, batch)
		if err != nil {
			return nil, 0, err
		}

		for _, r := range results {
			hash := addrHash[r.Address]
			for _, u := range r.Unspent {
				txHash, err := chainhash.NewHashFromStr(u.TxHash)
				if err != nil {
					return nil, 0, err
				}
				outputs = append(outputs, RichOutput{
					TxHash:         *txHash,
					TxPos:          u.TxPos,
					Amount:         u.Value,
					AddressHash160: hash,
				})
				balance += u.Value
			}
		}
	}

	return outputs, balance, nil
}

// WalletState is the full result of a wallet recovery scan: both chains'
// discovery state, the aggregated balance, and every unspent output found.
type WalletState struct {
	Main            ChainScan
	Change          ChainScan
	Balance         uint64
	UnspentOutputs []RichOutput
}

// AllKeys unions the main and change chains' address-key maps, as needed
// to sign spends from either chain.
func (w *WalletState) AllKeys() AddressKeys {
	all := make(AddressKeys, len(w.Main.Keys)+len(w.Change.Keys))
	for h, k := range w.Main.Keys {
		all[h] = k
	}
	for h, k := range w.Change.Keys {
		all[h] = k
	}
	return all
}

// ScanWallet drives C3 to discover the main and change chains under
// master, gap-limit-scans both for used addresses, then aggregates the
// unspent outputs and balance of every address found.
func ScanWallet(ctx context.Context, oracle Oracle, master *XPrv) (*WalletState, error) {
	mainRoot, err := master.DerivePath(mainChainPath)
	if err != nil {
		return nil, err
	}
	changeRoot, err := master.DerivePath(changeChainPath)
	if err != nil {
		return nil, err
	}

	mainScan, err := scanChain(ctx, oracle, mainRoot)
	if err != nil {
		return nil, err
	}
	changeScan, err := scanChain(ctx, oracle, changeRoot)
	if err != nil {
		return nil, err
	}

	state := &WalletState{Main: *mainScan, Change: *changeScan}

	outputs, balance, err := fetchUnspentForKeys(ctx, oracle, state.orderedKeyEntries())
	if err != nil {
		return nil, err
	}
	state.UnspentOutputs = outputs
	state.Balance = balance

	return state, nil
}
