package wallet

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/wire"
)

// wireProtocolVersion is passed to wire.WriteVarInt; compact-size encoding
// is protocol-version-independent, so any value works.
const wireProtocolVersion = 0

// EncodeVarInt encodes n as a Bitcoin compact-size integer: a single byte
// for n <= 252, otherwise a 0xFD/0xFE/0xFF marker followed by a
// little-endian u16/u32/u64.
func EncodeVarInt(n uint64) []byte {
	var buf bytes.Buffer
	// wire.WriteVarInt never errors against a bytes.Buffer.
	_ = wire.WriteVarInt(&buf, wireProtocolVersion, n)
	return buf.Bytes()
}

// DecodeVarInt reads a compact-size integer from r, returning the decoded
// value. It decodes the marker and its little-endian payload directly
// rather than through wire.ReadVarInt, since that helper rejects over-long
// encodings (e.g. 0xFD 0x01 0x00 for the value 1); consensus decoding
// accepts them even though EncodeVarInt never emits them.
func DecodeVarInt(r io.Reader) (uint64, error) {
	var marker [1]byte
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		return 0, ErrTruncatedInput
	}

	switch marker[0] {
	case 0xFF:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, ErrTruncatedInput
		}
		return binary.LittleEndian.Uint64(b[:]), nil
	case 0xFE:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, ErrTruncatedInput
		}
		return uint64(binary.LittleEndian.Uint32(b[:])), nil
	case 0xFD:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, ErrTruncatedInput
		}
		return uint64(binary.LittleEndian.Uint16(b[:])), nil
	default:
		return uint64(marker[0]), nil
	}
}
