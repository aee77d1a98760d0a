package wallet

import "testing"

func TestXPrvDerivePathBIP32Vector(t *testing.T) {
	const masterXPrv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	const wantXPrv = "xprvA41z7zogVVwxVSgdKUHDy1SKmdb533PjDz7J6N6mV6uS3ze1ai8FHa8kmHScGpWmj4WggLyQjgPie1rFSruoUihUZREPSL39UNdE3BBDu76"
	const wantXPub = "xpub6H1LXWLaKsWFhvm6RVpEL9P4KfRZSW7abD2ttkWP3SSQvnyA8FSVqNTEcYFgJS2UaFcxupHiYkro49S8yGasTvXEYBVPamhGW6cFJodrTHy"

	master, err := ParseXPrv(masterXPrv)
	if err != nil {
		t.Fatalf("ParseXPrv() error = %v", err)
	}

	child, err := master.DerivePath("m/0'/1/2'/2/1000000000")
	if err != nil {
		t.Fatalf("DerivePath() error = %v", err)
	}

	if got := child.Serialize(); got != wantXPrv {
		t.Errorf("Serialize() = %s, want %s", got, wantXPrv)
	}
	if got := child.Neuter().Serialize(); got != wantXPub {
		t.Errorf("Neuter().Serialize() = %s, want %s", got, wantXPub)
	}
}

func TestXPrvAddressDerivation(t *testing.T) {
	const masterXPrv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	const wantAddress = "1BvgsfsZQVtkLS69NvGF8rw6NZW2ShJQHr"

	master, err := ParseXPrv(masterXPrv)
	if err != nil {
		t.Fatalf("ParseXPrv() error = %v", err)
	}

	child, err := master.DerivePath("m/0'/0/0")
	if err != nil {
		t.Fatalf("DerivePath() error = %v", err)
	}

	addr, err := child.Address()
	if err != nil {
		t.Fatalf("Address() error = %v", err)
	}
	if addr != wantAddress {
		t.Errorf("Address() = %s, want %s", addr, wantAddress)
	}
}

func TestXPrvSerializeRoundTrip(t *testing.T) {
	const masterXPrv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"

	master, err := ParseXPrv(masterXPrv)
	if err != nil {
		t.Fatalf("ParseXPrv() error = %v", err)
	}

	roundTripped, err := ParseXPrv(master.Serialize())
	if err != nil {
		t.Fatalf("ParseXPrv(Serialize()) error = %v", err)
	}
	if *roundTripped != *master {
		t.Error("ParseXPrv(Serialize(k)) != k")
	}
}

func TestXPrvDeriveRejectsChecksumMismatch(t *testing.T) {
	const masterXPrv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	corrupted := masterXPrv[:len(masterXPrv)-1] + "x"

	if _, err := ParseXPrv(corrupted); err != ErrChecksumMismatch {
		t.Errorf("ParseXPrv(corrupted) error = %v, want ErrChecksumMismatch", err)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    []uint32
		wantErr bool
	}{
		{name: "single hardened", path: "m/0'", want: []uint32{hardenedOffset}},
		{name: "mixed", path: "m/0'/1/2'", want: []uint32{hardenedOffset, 1, hardenedOffset + 2}},
		{name: "empty", path: "m", wantErr: true},
		{name: "malformed no m prefix", path: "0/1", wantErr: true},
		{name: "malformed segment", path: "m/abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePath(%q) expected error, got none", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.path, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParsePath(%q)[%d] = %d, want %d", tt.path, i, got[i], tt.want[i])
				}
			}
		})
	}
}
