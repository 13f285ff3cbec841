package mnemonic

import (
	"crypto/rand"
	"math/big"

	errorsmod "cosmossdk.io/errors"

	"github.com/coldbox/coldbox/keys"
)

// MaxRoll is the exclusive upper bound of a single roll.
const MaxRoll = 65535

// EntropySource produces the rolls that are hashed into mnemonic entropy.
type EntropySource interface {
	// Roll returns a uniform value in [0, MaxRoll).
	Roll() (uint16, error)
}

// CryptoEntropySource draws rolls from the operating system CSPRNG.
type CryptoEntropySource struct{}

var rollBound = big.NewInt(MaxRoll)

func (CryptoEntropySource) Roll() (uint16, error) {
	n, err := rand.Int(rand.Reader, rollBound)
	if err != nil {
		return 0, errorsmod.Wrap(keys.ErrEntropySource, err.Error())
	}
	return uint16(n.Uint64()), nil
}
