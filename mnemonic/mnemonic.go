package mnemonic

import (
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cosmos/go-bip39"
	"golang.org/x/text/unicode/norm"

	"github.com/coldbox/coldbox/keys"
)

const (
	DefaultDiceRolls = 99
	DefaultWordCount = 12
)

// Result is a master key together with the phrase it was built from.
type Result struct {
	Mnemonic    string
	Fingerprint keys.Fingerprint
	Xprv        string
}

// entropyLen maps a phrase length to the number of entropy bytes it encodes.
func entropyLen(words int) (int, error) {
	switch words {
	case 12:
		return 16, nil
	case 24:
		return 32, nil
	default:
		return 0, errorsmod.Wrapf(keys.ErrInvalidWordCount, "%d words, want 12 or 24", words)
	}
}

// EntropyFromRolls draws rolls values from src, concatenates their decimal
// forms and hashes the string with SHA-256. The first 16 bytes of the digest
// back a 12 word phrase, all 32 a 24 word phrase.
func EntropyFromRolls(src EntropySource, rolls uint32, words int) ([]byte, error) {
	n, err := entropyLen(words)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, int(rolls)*5)
	for i := uint32(0); i < rolls; i++ {
		roll, err := src.Roll()
		if err != nil {
			return nil, errorsmod.Wrapf(keys.ErrEntropySource, "roll %d: %v", i, err)
		}
		buf = strconv.AppendUint(buf, uint64(roll), 10)
	}

	return chainhash.HashB(buf)[:n], nil
}

// Generate builds a fresh phrase from src and the master key it restores to.
func Generate(src EntropySource, rolls uint32, words int, passphrase string, net *chaincfg.Params) (*Result, error) {
	entropy, err := EntropyFromRolls(src, rolls, words)
	if err != nil {
		return nil, err
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, errorsmod.Wrap(keys.ErrInvalidMnemonic, err.Error())
	}

	return Restore(phrase, passphrase, net)
}

// Restore validates phrase against the BIP39 word list and checksum and
// returns the master key for net. Runs of whitespace between words are
// accepted.
func Restore(phrase, passphrase string, net *chaincfg.Params) (*Result, error) {
	phrase = normalize(phrase)

	seed, err := bip39.NewSeedWithErrorChecking(phrase, norm.NFKD.String(passphrase))
	if err != nil {
		return nil, errorsmod.Wrap(keys.ErrInvalidMnemonic, err.Error())
	}

	master, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, errorsmod.Wrap(keys.ErrKeyDerivation, err.Error())
	}

	fp, err := keys.KeyFingerprint(master)
	if err != nil {
		return nil, err
	}

	return &Result{
		Mnemonic:    phrase,
		Fingerprint: fp,
		Xprv:        master.String(),
	}, nil
}

func normalize(phrase string) string {
	return strings.Join(strings.Fields(norm.NFKD.String(phrase)), " ")
}
