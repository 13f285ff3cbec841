package keys

import (
	"encoding/binary"
	"encoding/hex"

	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// Fingerprint is the first four bytes of HASH160 of a compressed public key.
type Fingerprint [4]byte

func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

func (fp Fingerprint) MarshalText() ([]byte, error) {
	return []byte(fp.String()), nil
}

// FingerprintFromUint32 reads v the way hdkeychain reports parent
// fingerprints, as a big-endian integer.
func FingerprintFromUint32(v uint32) Fingerprint {
	var fp Fingerprint
	binary.BigEndian.PutUint32(fp[:], v)
	return fp
}

// FingerprintFromPsbt reads v the way PSBT BIP32 derivations carry master key
// fingerprints, as a little-endian integer.
func FingerprintFromPsbt(v uint32) Fingerprint {
	var fp Fingerprint
	binary.LittleEndian.PutUint32(fp[:], v)
	return fp
}

// ParseFingerprint parses eight hex characters.
func ParseFingerprint(s string) (Fingerprint, error) {
	var fp Fingerprint
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(fp) {
		return fp, errorsmod.Wrapf(ErrInvalidDescriptor, "bad fingerprint %q", s)
	}
	copy(fp[:], b)
	return fp, nil
}

// KeyFingerprint computes the fingerprint of an extended key. Private keys are
// fingerprinted through their public key.
func KeyFingerprint(k *hdkeychain.ExtendedKey) (Fingerprint, error) {
	var fp Fingerprint
	pub, err := k.ECPubKey()
	if err != nil {
		return fp, errorsmod.Wrap(ErrInvalidKey, err.Error())
	}
	copy(fp[:], btcutil.Hash160(pub.SerializeCompressed()))
	return fp, nil
}
