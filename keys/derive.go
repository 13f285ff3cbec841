package keys

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// DerivedKeyPair is a derived private key and its public counterpart, both
// annotated with the origin they were derived from.
type DerivedKeyPair struct {
	Xprv *DescriptorKey
	Xpub *DescriptorKey
}

// DerivePath walks path from k one BIP32 step at a time.
func DerivePath(k *hdkeychain.ExtendedKey, path DerivationPath) (*hdkeychain.ExtendedKey, error) {
	child := k
	for _, idx := range path {
		var err error
		child, err = child.Derive(idx)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrKeyDerivation, "step %d: %v", idx, err)
		}
	}
	return child, nil
}

// ParsePrivateKeyForNet parses a private extended key in any SLIP-132 format
// and checks that it belongs to net.
func ParsePrivateKeyForNet(key string, net *chaincfg.Params) (*hdkeychain.ExtendedKey, error) {
	root, f, err := ParseExtendedKey(key)
	if err != nil {
		return nil, err
	}
	if f.Kind() != Private {
		return nil, errorsmod.Wrapf(ErrInvalidKey,
			"%s is a public key format, a private key such as %s is required", f, f.Counterpart())
	}
	// Canonical prefixes match the HD key IDs btcd registers for each network.
	if !root.IsForNet(net) {
		return nil, errorsmod.Wrapf(ErrNetworkMismatch,
			"%s key cannot be used on %s", f.Network(), net.Name)
	}
	return root, nil
}

// Derive applies path to the private extended key rootKey on net and returns
// the derived pair annotated with [root fingerprint/path] and a trailing
// wildcard. Output keys use the canonical xprv/xpub or tprv/tpub prefixes.
func Derive(rootKey string, path DerivationPath, net *chaincfg.Params) (*DerivedKeyPair, error) {
	root, err := ParsePrivateKeyForNet(rootKey, net)
	if err != nil {
		return nil, err
	}

	rootFP, err := KeyFingerprint(root)
	if err != nil {
		return nil, err
	}

	child, err := DerivePath(root, path)
	if err != nil {
		return nil, err
	}
	if !child.IsPrivate() {
		return nil, errorsmod.Wrap(ErrInvalidKeyVariant, "derived key is not private")
	}

	pub, err := child.Neuter()
	if err != nil {
		return nil, errorsmod.Wrap(ErrKeyDerivation, err.Error())
	}

	origin := &KeySource{Fingerprint: rootFP, Path: path}
	return &DerivedKeyPair{
		Xprv: &DescriptorKey{Origin: origin, Key: child.String(), Wildcard: true},
		Xpub: &DescriptorKey{Origin: origin, Key: pub.String(), Wildcard: true},
	}, nil
}
