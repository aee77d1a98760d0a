package wallet

import "testing"

func TestSeedMasterKeySerialize(t *testing.T) {
	tests := []struct {
		name       string
		mnemonic   string
		passphrase string
		wantXPrv   string
	}{
		{
			name:       "spec vector",
			mnemonic:   "initial devote cake drill toy hidden foam gasp film palace flip clump",
			passphrase: "",
			wantXPrv:   "xprv9s21ZrQH143K43iibmycYZ1GRBnkoqG14kHwrGAAkjQTbT3DG5xgizWtvzz49AeozJjUSKf36iWNkRsuFN7PLWo7Kz4AzJqCB1kSHqRhwGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := NewSeed(tt.mnemonic, tt.passphrase)
			master, err := seed.MasterKey()
			if err != nil {
				t.Fatalf("MasterKey() error = %v", err)
			}
			if got := master.Serialize(); got != tt.wantXPrv {
				t.Errorf("Serialize() = %s, want %s", got, tt.wantXPrv)
			}
		})
	}
}

func TestNewSeedDeterministic(t *testing.T) {
	a := NewSeed("abandon abandon abandon", "pass")
	b := NewSeed("abandon abandon abandon", "pass")
	if a.Bytes() != b.Bytes() {
		t.Error("NewSeed() is not deterministic for identical inputs")
	}

	c := NewSeed("abandon abandon abandon", "other")
	if a.Bytes() == c.Bytes() {
		t.Error("NewSeed() produced identical seeds for different passphrases")
	}
}
