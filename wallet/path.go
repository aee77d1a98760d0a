package wallet

import (
	"strconv"
	"strings"
)

// hardenedOffset is added to a path component's numeric index when it
// carries a trailing apostrophe.
const hardenedOffset = uint32(1) << 31

// ParsePath parses a BIP32 derivation path of the grammar
// m(/<u32>'?)+ into its ordered list of child indices, with hardened
// components already offset by 2^31. The empty path ("m" with no
// components) is rejected.
func ParsePath(path string) ([]uint32, error) {
	if !strings.HasPrefix(path, "m") {
		return nil, ErrInvalidDerivationPath
	}
	rest := strings.TrimPrefix(path, "m")
	if rest == "" {
		return nil, ErrInvalidDerivationPath
	}
	if !strings.HasPrefix(rest, "/") {
		return nil, ErrInvalidDerivationPath
	}

	segments := strings.Split(rest, "/")[1:]
	if len(segments) == 0 {
		return nil, ErrInvalidDerivationPath
	}

	indices := make([]uint32, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			return nil, ErrInvalidDerivationPath
		}
		hardened := strings.HasSuffix(segment, "'")
		numeric := strings.TrimSuffix(segment, "'")

		n, err := strconv.ParseUint(numeric, 10, 32)
		if err != nil {
			return nil, ErrInvalidDerivationPath
		}
		index := uint32(n)
		if hardened {
			if index >= hardenedOffset {
				return nil, ErrInvalidDerivationPath
			}
			index += hardenedOffset
		}
		indices = append(indices, index)
	}

	return indices, nil
}
