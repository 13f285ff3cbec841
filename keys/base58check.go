package keys

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Layout of a serialized extended key:
//
//	version (4) || depth (1) || parent fingerprint (4) ||
//	child number (4) || chain code (32) || key data (33)
const (
	VersionLen       = 4
	SerializedKeyLen = 78
	checksumLen      = 4
)

// DecodeExtendedKey decodes a base58check string and returns the 78-byte
// payload with the checksum stripped.
func DecodeExtendedKey(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return nil, errorsmod.Wrap(ErrInvalidEncoding, "not a base58 string")
	}
	if len(decoded) <= checksumLen {
		return nil, errorsmod.Wrapf(ErrInvalidEncoding, "decoded length %d too short", len(decoded))
	}

	payload := decoded[:len(decoded)-checksumLen]
	checksum := decoded[len(decoded)-checksumLen:]
	if !bytes.Equal(checksum, chainhash.DoubleHashB(payload)[:checksumLen]) {
		return nil, errorsmod.Wrap(ErrInvalidEncoding, "checksum mismatch")
	}

	if len(payload) != SerializedKeyLen {
		return nil, errorsmod.Wrapf(ErrInvalidEncoding,
			"payload is %d bytes, want %d", len(payload), SerializedKeyLen)
	}

	return payload, nil
}

// EncodeExtendedKey appends a fresh checksum to payload and base58 encodes it.
func EncodeExtendedKey(payload []byte) (string, error) {
	if len(payload) != SerializedKeyLen {
		return "", errorsmod.Wrapf(ErrInvalidEncoding,
			"payload is %d bytes, want %d", len(payload), SerializedKeyLen)
	}

	buf := make([]byte, 0, SerializedKeyLen+checksumLen)
	buf = append(buf, payload...)
	buf = append(buf, chainhash.DoubleHashB(payload)[:checksumLen]...)

	return base58.Encode(buf), nil
}
