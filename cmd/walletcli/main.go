// Command walletcli is a thin demonstration wrapper around the wallet
// package: generate a new master key, scan an existing one against an
// oracle, or build and broadcast a spend.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/opd-ai/bsv-hdwallet/wallet"
)

var (
	cmd        = flag.String("cmd", "scan", "action to perform: generate, address, scan, send")
	dataDir    = flag.String("data-dir", "./walletdata", "directory holding the encrypted wallet store")
	keyFile    = flag.String("key-file", "./walletdata/store.key", "path to the store's AES-256 encryption key")
	oracleURL  = flag.String("oracle-url", "https://api.example.com", "base URL of the chain oracle")
	mnemonic   = flag.String("mnemonic", "", "space-joined mnemonic phrase (generate only)")
	passphrase = flag.String("passphrase", "", "optional BIP39 passphrase")
	toAddress  = flag.String("to", "", "destination address (send only)")
	amountSats = flag.Uint64("amount", 0, "amount to send, in satoshis (send only)")
)

// loadOrCreateKey returns the encryption key at path, generating and
// writing a fresh one if it does not yet exist. The key must stay fixed
// across runs, since the store re-encrypts its contents under it on every
// Save.
func loadOrCreateKey(path string) ([]byte, error) {
	existing, err := os.ReadFile(path)
	if err == nil {
		if len(existing) != 32 {
			return nil, fmt.Errorf("walletcli: key file %s is not 32 bytes", path)
		}
		return existing, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	key, err := wallet.GenerateEncryptionKey()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

func openStore() (*wallet.FileStore, error) {
	key, err := loadOrCreateKey(*keyFile)
	if err != nil {
		return nil, err
	}
	return wallet.NewFileStore(*dataDir, key)
}

func loadMaster(store wallet.Store) (*wallet.XPrv, error) {
	serialized, ok, err := store.Load(wallet.XPrvStoreKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("walletcli: no wallet found in %s; run -cmd=generate first", *dataDir)
	}
	return wallet.ParseXPrv(serialized)
}

func runGenerate() error {
	if *mnemonic == "" {
		return fmt.Errorf("walletcli: -mnemonic is required for generate")
	}
	seed := wallet.NewSeed(*mnemonic, *passphrase)
	master, err := seed.MasterKey()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Save(wallet.XPrvStoreKey, master.Serialize()); err != nil {
		return err
	}

	addr, err := master.Address()
	if err != nil {
		return err
	}
	fmt.Printf("master xprv saved to %s\nroot address: %s\n", *dataDir, addr)
	return nil
}

func runAddress() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	master, err := loadMaster(store)
	if err != nil {
		return err
	}
	addr, err := master.Address()
	if err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}

func runScan(ctx context.Context) (*wallet.WalletState, *wallet.XPrv, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	master, err := loadMaster(store)
	if err != nil {
		return nil, nil, err
	}

	oracle := wallet.NewHTTPOracle(*oracleURL)
	state, err := wallet.ScanWallet(ctx, oracle, master)
	if err != nil {
		return nil, nil, err
	}
	return state, master, nil
}

func runSend(ctx context.Context) error {
	if *toAddress == "" || *amountSats == 0 {
		return fmt.Errorf("walletcli: -to and -amount are required for send")
	}

	state, _, err := runScan(ctx)
	if err != nil {
		return err
	}

	tx, prevOutputs, err := wallet.BuildTransaction(state, *amountSats, *toAddress)
	if err != nil {
		return err
	}
	if err := wallet.SignInputs(tx, prevOutputs, state.AllKeys()); err != nil {
		return err
	}
	if err := wallet.VerifyInputs(tx, prevOutputs); err != nil {
		return err
	}

	oracle := wallet.NewHTTPOracle(*oracleURL)
	rawHex := hex.EncodeToString(tx.Serialize())
	if err := oracle.Publish(ctx, rawHex); err != nil {
		return err
	}

	fmt.Printf("broadcast %s\n", rawHex)
	return nil
}

func main() {
	flag.Parse()
	ctx := context.Background()

	var err error
	switch *cmd {
	case "generate":
		err = runGenerate()
	case "address":
		err = runAddress()
	case "scan":
		var state *wallet.WalletState
		state, _, err = runScan(ctx)
		if err == nil {
			fmt.Printf("balance: %d satoshis across %d outputs\n", state.Balance, len(state.UnspentOutputs))
		}
	case "send":
		err = runSend(ctx)
	default:
		log.Fatalf("walletcli: unknown -cmd %q", *cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}
