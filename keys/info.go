package keys

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// KeyInfo is the format independent identity of an extended key.
type KeyInfo struct {
	Format            Format
	Fingerprint       Fingerprint
	ParentFingerprint Fingerprint
	Depth             uint8
	ChildIndex        uint32
}

// ParseExtendedKey normalizes key to its canonical BIP32 form and parses it.
// The detected SLIP-132 format of the input is returned alongside.
func ParseExtendedKey(key string) (*hdkeychain.ExtendedKey, Format, error) {
	f, err := DetectFormat(key)
	if err != nil {
		return nil, 0, err
	}

	canonical, err := Convert(key, f.Canonical())
	if err != nil {
		return nil, 0, err
	}

	ek, err := hdkeychain.NewKeyFromString(canonical)
	if err != nil {
		return nil, 0, errorsmod.Wrap(ErrInvalidKey, err.Error())
	}

	// The key data, not the prefix, decides what hdkeychain parsed.
	if ek.IsPrivate() != (f.Kind() == Private) {
		return nil, 0, errorsmod.Wrapf(ErrInvalidKey,
			"%s prefix on %s key data", f, kindOf(ek))
	}

	return ek, f, nil
}

// ExtractInfo reports fingerprint, parent fingerprint and depth of key. The
// result is the same for every format the key can be converted to.
func ExtractInfo(key string) (*KeyInfo, error) {
	ek, f, err := ParseExtendedKey(key)
	if err != nil {
		return nil, err
	}

	fp, err := KeyFingerprint(ek)
	if err != nil {
		return nil, err
	}

	return &KeyInfo{
		Format:            f,
		Fingerprint:       fp,
		ParentFingerprint: FingerprintFromUint32(ek.ParentFingerprint()),
		Depth:             ek.Depth(),
		ChildIndex:        ek.ChildIndex(),
	}, nil
}

func kindOf(ek *hdkeychain.ExtendedKey) Kind {
	if ek.IsPrivate() {
		return Private
	}
	return Public
}
