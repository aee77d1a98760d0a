package wallet

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra payload.
var (
	// ErrInvalidDerivationPath is returned when a BIP32 path string does not
	// match the m(/<u32>'?)+ grammar.
	ErrInvalidDerivationPath = errors.New("wallet: invalid derivation path")
	// ErrPublicHardenedDerivation is returned when a hardened child is
	// requested from an XPub, which holds no private key to derive with.
	ErrPublicHardenedDerivation = errors.New("wallet: cannot derive hardened child from a public key")
	// ErrInvalidScalar is returned when a derived child scalar is zero or
	// exceeds the secp256k1 group order.
	ErrInvalidScalar = errors.New("wallet: derived key is not a valid scalar")
	// ErrInvalidPoint is returned when public-key point arithmetic produces
	// a value that cannot be re-parsed as a valid compressed point.
	ErrInvalidPoint = errors.New("wallet: derived point is invalid")
	// ErrChecksumMismatch is returned by Base58Check/extended-key decoding
	// when the trailing 4 checksum bytes don't match.
	ErrChecksumMismatch = errors.New("wallet: base58check checksum mismatch")
	// ErrInvalidAddress is returned when a P2PKH address string fails to
	// decode to a 20-byte hash with the expected version byte.
	ErrInvalidAddress = errors.New("wallet: invalid address")
	// ErrInvalidScript is returned when a locking script deviates from the
	// canonical P2PKH template.
	ErrInvalidScript = errors.New("wallet: script is not canonical P2PKH")
	// ErrLeftoverData is returned by transaction deserialization when bytes
	// remain after the locktime field.
	ErrLeftoverData = errors.New("wallet: leftover data after deserializing transaction")
	// ErrTruncatedInput is returned when a buffer ends before a fixed-size
	// or length-prefixed field can be fully read.
	ErrTruncatedInput = errors.New("wallet: truncated input")
	// ErrMissingInput is returned by SignInputs when an input's previous
	// output was not supplied.
	ErrMissingInput = errors.New("wallet: missing previous output for input")
	// ErrMissingKey is returned by SignInputs when no private key is known
	// for an input's owning address.
	ErrMissingKey = errors.New("wallet: missing private key for input")
	// ErrInvalidChangeAddress is returned when the scanner's next unused
	// change address fails to encode.
	ErrInvalidChangeAddress = errors.New("wallet: invalid change address")
)

// InputOutOfBoundsError is returned when a sighash/preimage is requested for
// an input index that doesn't exist, or (under SIGHASH_SINGLE) for an index
// with no matching output.
type InputOutOfBoundsError struct {
	Index, NumInputs int
}

func (e *InputOutOfBoundsError) Error() string {
	return fmt.Sprintf("wallet: input index %d out of bounds (have %d inputs)", e.Index, e.NumInputs)
}

// InsufficientBalanceError is returned by coin selection when the available
// UTXO set cannot cover the requested send amount.
type InsufficientBalanceError struct {
	Shortfall uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("wallet: insufficient balance, short by %d satoshis", e.Shortfall)
}

// InsufficientForFeeError is returned by coin selection when the selected
// inputs cover the send amount but not amount+fee.
type InsufficientForFeeError struct {
	Required uint64
}

func (e *InsufficientForFeeError) Error() string {
	return fmt.Sprintf("wallet: insufficient balance for fee, need %d satoshis total", e.Required)
}

// VarintOverflowError is returned when a compact-size prefix claims a length
// longer than the remaining buffer can supply.
type VarintOverflowError struct {
	Want, Have int
}

func (e *VarintOverflowError) Error() string {
	return fmt.Sprintf("wallet: varint length %d exceeds remaining %d bytes", e.Want, e.Have)
}

// InputVerificationError is returned by VerifyInputs when an input's
// signature fails to verify against its claimed public key and preimage.
type InputVerificationError struct {
	Index int
}

func (e *InputVerificationError) Error() string {
	return fmt.Sprintf("wallet: signature verification failed for input %d", e.Index)
}
