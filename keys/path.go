package keys

import (
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is a sequence of BIP32 child indices. Hardened indices carry
// hdkeychain.HardenedKeyStart. The empty path addresses the root itself.
type DerivationPath []uint32

// ParsePath parses paths such as "m/84'/0'/0'", "84h/1h/0h/0/5" or "m".
// Hardened steps may be marked with ', h or H.
func ParsePath(s string) (DerivationPath, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "m" || s == "M" {
		return DerivationPath{}, nil
	}

	parts := strings.Split(s, "/")
	if parts[0] == "m" || parts[0] == "M" {
		parts = parts[1:]
	}

	return parseIndices(parts)
}

func parseIndices(parts []string) (DerivationPath, error) {
	path := make(DerivationPath, 0, len(parts))
	for _, part := range parts {
		idx, err := parseIndex(part)
		if err != nil {
			return nil, err
		}
		path = append(path, idx)
	}
	return path, nil
}

func parseIndex(part string) (uint32, error) {
	hardened := false
	if trimmed := strings.TrimRight(part, "'hH"); trimmed != part {
		if len(part)-len(trimmed) != 1 {
			return 0, errorsmod.Wrapf(ErrInvalidPath, "bad step %q", part)
		}
		hardened = true
		part = trimmed
	}

	if part == "" {
		return 0, errorsmod.Wrap(ErrInvalidPath, "empty step")
	}

	idx, err := strconv.ParseUint(part, 10, 32)
	if err != nil {
		return 0, errorsmod.Wrapf(ErrInvalidPath, "bad step %q", part)
	}
	if idx >= hdkeychain.HardenedKeyStart {
		return 0, errorsmod.Wrapf(ErrInvalidPath, "step %d out of range", idx)
	}

	if hardened {
		idx += hdkeychain.HardenedKeyStart
	}
	return uint32(idx), nil
}

// String renders the path with a leading "m", using ' for hardened steps.
func (p DerivationPath) String() string {
	if len(p) == 0 {
		return "m"
	}
	return "m/" + p.relative()
}

// relative renders the path without the leading "m".
func (p DerivationPath) relative() string {
	steps := make([]string, len(p))
	for i, idx := range p {
		if idx >= hdkeychain.HardenedKeyStart {
			steps[i] = strconv.FormatUint(uint64(idx-hdkeychain.HardenedKeyStart), 10) + "'"
		} else {
			steps[i] = strconv.FormatUint(uint64(idx), 10)
		}
	}
	return strings.Join(steps, "/")
}

// HasPrefix reports whether p starts with prefix.
func (p DerivationPath) HasPrefix(prefix DerivationPath) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// KeySource records how a key was reached: the fingerprint of the root it
// was derived from and the path taken.
type KeySource struct {
	Fingerprint Fingerprint
	Path        DerivationPath
}

// String renders the origin as used inside descriptor brackets, e.g.
// "73c5da0a/84'/0'/0'", or just the fingerprint when the path is empty.
func (ks KeySource) String() string {
	if len(ks.Path) == 0 {
		return ks.Fingerprint.String()
	}
	return ks.Fingerprint.String() + "/" + ks.Path.relative()
}
