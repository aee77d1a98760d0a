package wallet

import (
	"bytes"
	"testing"
)

func TestEncodeVarInt(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want []byte
	}{
		{name: "single byte", n: 123, want: []byte{0x7B}},
		{name: "u16 form", n: 0xABCD, want: []byte{0xFD, 0xCD, 0xAB}},
		{name: "u32 form", n: 0xABCDEF01, want: []byte{0xFE, 0x01, 0xEF, 0xCD, 0xAB}},
		{name: "u64 form", n: 0xABCDEF0123456789, want: []byte{0xFF, 0x89, 0x67, 0x45, 0x23, 0x01, 0xEF, 0xCD, 0xAB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeVarInt(tt.n)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeVarInt(%#x) = % x, want % x", tt.n, got, tt.want)
			}
		})
	}
}

func TestDecodeVarIntRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 252, 253, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000, 0xFFFFFFFFFFFFFFFF}

	for _, n := range values {
		encoded := EncodeVarInt(n)
		got, err := DecodeVarInt(bytes.NewReader(encoded))
		if err != nil {
			t.Fatalf("DecodeVarInt(EncodeVarInt(%d)) error = %v", n, err)
		}
		if got != n {
			t.Errorf("DecodeVarInt(EncodeVarInt(%d)) = %d", n, got)
		}
	}
}

func TestDecodeVarIntTruncated(t *testing.T) {
	if _, err := DecodeVarInt(bytes.NewReader([]byte{0xFD, 0x01})); err == nil {
		t.Error("DecodeVarInt() expected error on truncated input, got nil")
	}
}
