package coldbox_test

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coldbox/coldbox/coldbox"
	"github.com/coldbox/coldbox/config"
	"github.com/coldbox/coldbox/keys"
	"github.com/coldbox/coldbox/mnemonic"
	"github.com/coldbox/coldbox/signer"
	"github.com/coldbox/coldbox/testutil"
	"github.com/coldbox/coldbox/types"
)

const (
	rootXprv  = "xprv9s21ZrQH143K3GJpoapnV8SFfukcVBSfeCficPSGfubmSFDxo1kuHnLisriDvSnRRuL2Qrg5ggqHKNVpxR86QEC8w35uxmGoggxtQTPvfUu"
	bip84Xpub = "xpub6CatWdiZiodmUeTDp8LT5or8nmbKNcuyvz7WyksVFkKB4RHwCD3XyuvPEbvqAQY3rAPshWcMLoP2fMFMKHPJ4ZeZXYVUhLv1VMrjPC7PW6V"
	bip84Zpub = "zpub6rFR7y4Q2AijBEqTUquhVz398htDFrtymD9xYYfG1m4wAcvPhXNfE3EfH1r1ADqtfSdVCToUG868RvUUkgDKf31mGDtKsAYz2oz2AGutZYs"
	bip84Xprv = "xprv9ybY78BftS5UGANki6oSifuQEjkpyAC8ZmBvBNTshQnCBcxnefjHS7buPMkkqhcRzmoGZ5bokx7GuyDAiktd5HemohAU4wV1ZPMDRmLpBMm"

	testDescriptor = "wpkh([73c5da0a/84'/1'/0']tprv8fSjiqEQ8YG7Ro7gw2ScwcvweYuuWi1ZzGUtrPz918HvDtBzL5s2voFTrN4y3yUwj5cYD54pLhxk6NKCzHUjcka3zbKjbTEcsuAnkzbjhkL/0/*)"
	unsignedPsbt   = "cHNidP8BAFICAAAAAQ3TM54hf/xyGNQ3RwZ9zykQsbogN20RNgReU5yir1+IAQAAAAD9////ARAnAAAAAAAAFgAUGFotGcPnrJnJg8Mz1Htu+ejz1V8JwiMATwEENYfPAw70sa+AAAAAPIwgN+5MFiHaDTSNtRFjcJpiLQ0oON3m2EGcUfYwHGIDuI4Pvj9kYzftk7wMDzuEP899JYnl7IhHVOZAICeokLQQc8XaClQAAIABAACAAAAAgAABAHECAAAAAYDXHmXP+m71ecUGq9jRgehhR8fuWtYc89I8qZQE2zemAQAAAAD9////AlKoYwAAAAAAFgAUQsjMYy/RsZmttmBmh8tm3sjDdRudJwAAAAAAABYAFPfWsQ9R/oRyjJCODiuUa9dl46c/A8IjAAEBH50nAAAAAAAAFgAU99axD1H+hHKMkI4OK5Rr12Xjpz8BAwQBAAAAIgYC/0PHIY//lNUR6ikHqAV5i0XvloIezNiePTxpkR+h7SEYc8XaClQAAIABAACAAAAAgAAAAAASAAAAAAA="
)

var abandonAbout = strings.Repeat("abandon ", 11) + "about"

func newColdBox(t *testing.T, network string, src mnemonic.EntropySource) *coldbox.ColdBox {
	cfg := config.DefaultConfig()
	cfg.Network = network
	cb, err := coldbox.NewColdBox(&cfg, src, zap.NewNop())
	require.NoError(t, err)
	return cb
}

func TestChangeFormat(t *testing.T) {
	cb := newColdBox(t, "bitcoin", mnemonic.CryptoEntropySource{})

	res, err := cb.ChangeFormat(&types.ChangeFormatRequest{Key: bip84Xpub, Format: "zpub"})
	require.NoError(t, err)
	require.Equal(t, "fd13aac9", res.Fingerprint)
	require.Equal(t, "7ef32bdb", res.ParentFingerprint)
	require.Equal(t, uint8(3), res.Depth)
	require.Equal(t, bip84Zpub, res.Key)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	require.JSONEq(t, `{"depth":3,"fingerprint":"fd13aac9","parent_fingerprint":"7ef32bdb","zpub":"`+bip84Zpub+`"}`, string(out))

	_, err = cb.ChangeFormat(&types.ChangeFormatRequest{Key: bip84Xpub, Format: "zprv"})
	require.True(t, errors.Is(err, keys.ErrIncompatibleFormat))
	_, err = cb.ChangeFormat(&types.ChangeFormatRequest{Key: bip84Xpub, Format: "wpub"})
	require.True(t, errors.Is(err, keys.ErrUnknownFormat))
}

func TestDeriveKeyUsesConfiguredPath(t *testing.T) {
	cb := newColdBox(t, "bitcoin", mnemonic.CryptoEntropySource{})

	res, err := cb.DeriveKey(&types.DeriveKeyRequest{Xprv: rootXprv})
	require.NoError(t, err)
	require.Equal(t, "[73c5da0a/84'/0'/0']"+bip84Xprv+"/*", res.Xprv)
	require.Equal(t, "[73c5da0a/84'/0'/0']"+bip84Xpub+"/*", res.Xpub)

	explicit, err := cb.DeriveKey(&types.DeriveKeyRequest{Xprv: rootXprv, Path: "m/84h/0h/0h"})
	require.NoError(t, err)
	require.Equal(t, res, explicit)

	testnet := newColdBox(t, "testnet", mnemonic.CryptoEntropySource{})
	_, err = testnet.DeriveKey(&types.DeriveKeyRequest{Xprv: rootXprv})
	require.True(t, errors.Is(err, keys.ErrNetworkMismatch))
}

func TestGenerateMnemonicWithMockedEntropy(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	rolls := testutil.GenRandomRolls(r, 10)
	cb := newColdBox(t, "signet", testutil.PrepareMockedEntropySource(t, rolls))

	res, err := cb.GenerateMnemonic(&types.GenerateMnemonicRequest{
		DiceRolls:  uint32(len(rolls)),
		WordCount:  24,
		Passphrase: "correct horse",
	})
	require.NoError(t, err)
	require.Len(t, strings.Fields(res.Mnemonic), 24)
	require.True(t, strings.HasPrefix(res.Xprv, "tprv"))

	restored, err := cb.RestoreMnemonic(&types.RestoreMnemonicRequest{
		Mnemonic:   res.Mnemonic,
		Passphrase: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, res.Fingerprint, restored.Fingerprint)
	require.Equal(t, res.Xprv, restored.Xprv)
}

func TestGenerateMnemonicDefaultsWordCount(t *testing.T) {
	cb := newColdBox(t, "testnet", testutil.PrepareMockedEntropySource(t, nil))

	res, err := cb.GenerateMnemonic(&types.GenerateMnemonicRequest{})
	require.NoError(t, err)
	require.Len(t, strings.Fields(res.Mnemonic), config.DefaultConfig().WordCount)
}

func TestRestoreMnemonic(t *testing.T) {
	cb := newColdBox(t, "bitcoin", mnemonic.CryptoEntropySource{})

	res, err := cb.RestoreMnemonic(&types.RestoreMnemonicRequest{Mnemonic: abandonAbout})
	require.NoError(t, err)
	require.Equal(t, "73c5da0a", res.Fingerprint)
	require.Equal(t, rootXprv, res.Xprv)

	_, err = cb.RestoreMnemonic(&types.RestoreMnemonicRequest{Mnemonic: strings.Repeat("abandon ", 12)})
	require.True(t, errors.Is(err, keys.ErrInvalidMnemonic))
}

func TestSignPsbtVerbose(t *testing.T) {
	cb := newColdBox(t, "testnet", mnemonic.CryptoEntropySource{})

	res, err := cb.SignPsbt(&types.SignPsbtRequest{
		Descriptor: testDescriptor,
		Psbt:       unsignedPsbt,
		Verbose:    true,
	})
	require.NoError(t, err)
	require.True(t, res.IsFinalized)
	require.NotEqual(t, unsignedPsbt, res.Psbt)

	summary := res.Deserialized
	require.NotNil(t, summary)
	require.Len(t, summary.Txid, 64)
	require.Equal(t, int64(141), summary.Fee)
	require.Len(t, summary.Inputs, 1)
	require.Equal(t, int64(10141), summary.Inputs[0].Value)
	require.Len(t, summary.Inputs[0].Witness, 2)
	require.Len(t, summary.Outputs, 1)
	require.Equal(t, int64(10000), summary.Outputs[0].Value)
	require.True(t, strings.HasPrefix(summary.Outputs[0].Address, "tb1q"))

	quiet, err := cb.SignPsbt(&types.SignPsbtRequest{Descriptor: testDescriptor, Psbt: unsignedPsbt})
	require.NoError(t, err)
	require.Nil(t, quiet.Deserialized)
	require.Equal(t, res.Psbt, quiet.Psbt)

	_, err = cb.SignPsbt(&types.SignPsbtRequest{Descriptor: testDescriptor, Psbt: "AAAA"})
	require.True(t, errors.Is(err, signer.ErrInvalidPsbt))
}

func TestWriteMetrics(t *testing.T) {
	cb := newColdBox(t, "bitcoin", mnemonic.CryptoEntropySource{})
	_, err := cb.ChangeFormat(&types.ChangeFormatRequest{Key: bip84Xpub, Format: "zprv"})
	require.Error(t, err)
	_, err = cb.RestoreMnemonic(&types.RestoreMnemonicRequest{Mnemonic: abandonAbout})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "coldbox.prom")
	require.NoError(t, coldbox.WriteMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	require.Contains(t, text, `coldbox_operations_total{op="restore_mnemonic"}`)
	require.Contains(t, text, `coldbox_operation_failures_total{kind="coldbox: incompatible key format",op="change_format"}`)
	require.Contains(t, text, "coldbox_operation_duration_seconds")
}

func TestErrorKind(t *testing.T) {
	require.Equal(t, "internal", coldbox.ErrorKind(errors.New("boom")))
	require.Equal(t, "signer: invalid psbt", coldbox.ErrorKind(signer.ErrInvalidPsbt))
}
