package mnemonic_test

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cosmos/go-bip39"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/coldbox/coldbox/keys"
	"github.com/coldbox/coldbox/mnemonic"
	"github.com/coldbox/coldbox/testutil"
	"github.com/coldbox/coldbox/testutil/mocks"
)

var abandonAbout = strings.Repeat("abandon ", 11) + "about"

func TestRestoreKnownVectors(t *testing.T) {
	tests := []struct {
		passphrase string
		net        *chaincfg.Params
		fp         string
		xprv       string
	}{
		{
			"", &chaincfg.MainNetParams, "73c5da0a",
			"xprv9s21ZrQH143K3GJpoapnV8SFfukcVBSfeCficPSGfubmSFDxo1kuHnLisriDvSnRRuL2Qrg5ggqHKNVpxR86QEC8w35uxmGoggxtQTPvfUu",
		},
		{
			"demo", &chaincfg.TestNet3Params, "03393bdd",
			"tprv8ZgxMBicQKsPeE6XnhCjJ5WHgod5tWXv3W3jujmxAGsgjTr8ewZan8YvomaGTDmQyYkUJuGx4XUq5czx7nytjAGSHEv1XgYqj41X3NCT3xU",
		},
	}

	for _, tc := range tests {
		res, err := mnemonic.Restore(abandonAbout, tc.passphrase, tc.net)
		require.NoError(t, err)
		require.Equal(t, tc.fp, res.Fingerprint.String())
		require.Equal(t, tc.xprv, res.Xprv)
		require.Equal(t, abandonAbout, res.Mnemonic)
	}
}

func TestRestoreNormalizesWhitespace(t *testing.T) {
	messy := "  " + strings.ReplaceAll(abandonAbout, " ", " \t ") + "\n"
	res, err := mnemonic.Restore(messy, "", &chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, "73c5da0a", res.Fingerprint.String())
}

func TestRestoreInvalid(t *testing.T) {
	for _, phrase := range []string{
		"",
		strings.Repeat("abandon ", 11) + "abandon",
		strings.Repeat("abandon ", 11) + "bitcoins",
		strings.Repeat("abandon ", 10) + "about",
		"ABANDON " + strings.Repeat("abandon ", 10) + "about",
	} {
		_, err := mnemonic.Restore(phrase, "", &chaincfg.MainNetParams)
		require.True(t, errors.Is(err, keys.ErrInvalidMnemonic), phrase)
	}
}

func TestEntropyFromRolls(t *testing.T) {
	rolls := []uint16{1, 23, 456, 65534, 0}
	digest := sha256.Sum256([]byte("123456655340"))

	entropy, err := mnemonic.EntropyFromRolls(testutil.PrepareMockedEntropySource(t, rolls), uint32(len(rolls)), 12)
	require.NoError(t, err)
	require.Equal(t, digest[:16], entropy)

	entropy, err = mnemonic.EntropyFromRolls(testutil.PrepareMockedEntropySource(t, rolls), uint32(len(rolls)), 24)
	require.NoError(t, err)
	require.Equal(t, digest[:], entropy)

	// zero rolls hash the empty string
	empty := sha256.Sum256(nil)
	entropy, err = mnemonic.EntropyFromRolls(testutil.PrepareMockedEntropySource(t, nil), 0, 12)
	require.NoError(t, err)
	require.Equal(t, empty[:16], entropy)
}

func TestEntropyFromRollsInvalidWordCount(t *testing.T) {
	for _, words := range []int{0, 11, 15, 18, 21, 25} {
		_, err := mnemonic.EntropyFromRolls(mnemonic.CryptoEntropySource{}, 3, words)
		require.True(t, errors.Is(err, keys.ErrInvalidWordCount), words)
	}
}

func TestGenerateEntropySourceFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	src := mocks.NewMockEntropySource(ctl)
	gomock.InOrder(
		src.EXPECT().Roll().Return(uint16(7), nil),
		src.EXPECT().Roll().Return(uint16(0), fmt.Errorf("device unplugged")),
	)

	_, err := mnemonic.Generate(src, 5, 12, "", &chaincfg.MainNetParams)
	require.True(t, errors.Is(err, keys.ErrEntropySource))
}

func TestCryptoEntropySourceRange(t *testing.T) {
	src := mnemonic.CryptoEntropySource{}
	for i := 0; i < 1000; i++ {
		roll, err := src.Roll()
		require.NoError(t, err)
		require.Less(t, roll, uint16(mnemonic.MaxRoll))
	}
}

func FuzzGenerateRestoreInverse(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))

		rolls := testutil.GenRandomRolls(r, r.Intn(120))
		words := 12
		if r.Intn(2) == 0 {
			words = 24
		}
		passphrase := testutil.GenRandomHexStr(r, uint64(r.Intn(8)))
		net := &chaincfg.SigNetParams

		src := testutil.PrepareMockedEntropySource(t, rolls)
		generated, err := mnemonic.Generate(src, uint32(len(rolls)), words, passphrase, net)
		require.NoError(t, err)
		require.Len(t, strings.Fields(generated.Mnemonic), words)
		require.True(t, bip39.IsMnemonicValid(generated.Mnemonic))
		require.True(t, strings.HasPrefix(generated.Xprv, "tprv"))

		restored, err := mnemonic.Restore(generated.Mnemonic, passphrase, net)
		require.NoError(t, err)
		require.Equal(t, generated.Fingerprint, restored.Fingerprint)
		require.Equal(t, generated.Xprv, restored.Xprv)

		// same rolls, same phrase
		again, err := mnemonic.Generate(testutil.PrepareMockedEntropySource(t, rolls),
			uint32(len(rolls)), words, passphrase, net)
		require.NoError(t, err)
		require.Equal(t, generated.Mnemonic, again.Mnemonic)
	})
}
