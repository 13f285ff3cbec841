package e2etest

import (
	"encoding/hex"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coldbox/coldbox/coldbox"
	"github.com/coldbox/coldbox/config"
	"github.com/coldbox/coldbox/keys"
	"github.com/coldbox/coldbox/log"
	"github.com/coldbox/coldbox/mnemonic"
	"github.com/coldbox/coldbox/testutil"
	"github.com/coldbox/coldbox/types"
	"github.com/coldbox/coldbox/util"
)

var (
	passphrase  = "testpass"
	accountPath = "m/84'/1'/0'"
)

type TestManager struct {
	ColdBox *coldbox.ColdBox
	Config  *config.Config
	Logger  *zap.Logger
	homeDir string
}

// StartManager initializes a home directory for network the same way
// `coldbox init` does and loads the app from it.
func StartManager(t *testing.T, network string) *TestManager {
	homeDir := filepath.Join(t.TempDir(), "coldbox-home")
	require.NoError(t, util.MakeDirectory(config.LogDir(homeDir)))

	cfg := config.DefaultConfig()
	cfg.Network = network
	cfg.LogLevel = "debug"
	cfg.LogFormat = "logfmt"
	cfg.Metrics.TextFile = filepath.Join(homeDir, "coldbox.prom")
	fileParser := flags.NewParser(&cfg, flags.Default)
	err := flags.NewIniParser(fileParser).WriteFile(config.ConfigFile(homeDir), flags.IniIncludeComments|flags.IniIncludeDefaults)
	require.NoError(t, err)

	loaded, err := config.LoadConfig(homeDir)
	require.NoError(t, err)

	logger, err := log.NewRootLoggerWithFile(config.LogFile(homeDir), loaded.LogFormat, loaded.LogLevel)
	require.NoError(t, err)

	cb, err := coldbox.NewColdBox(loaded, mnemonic.CryptoEntropySource{}, logger)
	require.NoError(t, err)

	return &TestManager{
		ColdBox: cb,
		Config:  loaded,
		Logger:  logger,
		homeDir: homeDir,
	}
}

func (tm *TestManager) Stop(t *testing.T) {
	_ = tm.Logger.Sync()
}

// NewWallet generates a mnemonic, checks it restores to the same master key
// and derives the BIP84 account below it.
func (tm *TestManager) NewWallet(t *testing.T, words int) (*types.GenerateMnemonicResult, *types.DeriveKeyResult) {
	generated, err := tm.ColdBox.GenerateMnemonic(&types.GenerateMnemonicRequest{
		DiceRolls:  tm.Config.DiceRolls,
		WordCount:  words,
		Passphrase: passphrase,
	})
	require.NoError(t, err)
	require.Len(t, strings.Fields(generated.Mnemonic), words)

	restored, err := tm.ColdBox.RestoreMnemonic(&types.RestoreMnemonicRequest{
		Mnemonic:   generated.Mnemonic,
		Passphrase: passphrase,
	})
	require.NoError(t, err)
	require.Equal(t, generated.Fingerprint, restored.Fingerprint)
	require.Equal(t, generated.Xprv, restored.Xprv)

	derived, err := tm.ColdBox.DeriveKey(&types.DeriveKeyRequest{
		Xprv: restored.Xprv,
		Path: accountPath,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(derived.Xpub, "["+generated.Fingerprint+"/84'/1'/0']"))

	return generated, derived
}

// GenPacket builds an unsigned packet spending outputs of the derived
// account and returns it base64 encoded.
func (tm *TestManager) GenPacket(t *testing.T, r *rand.Rand, derived *types.DeriveKeyResult, numInputs int) (string, []testutil.SigningInput) {
	dk, err := keys.ParseDescriptorKey(derived.Xprv)
	require.NoError(t, err)
	account, err := hdkeychain.NewKeyFromString(dk.Key)
	require.NoError(t, err)

	packet, inputs := testutil.GenSigningPacket(r, t, tm.ColdBox.Network(), account, *dk.Origin, numInputs)
	b64, err := packet.B64Encode()
	require.NoError(t, err)

	return b64, inputs
}

// VerifySigned decodes a signed packet and runs the script engine over it.
func (tm *TestManager) VerifySigned(t *testing.T, res *types.SignPsbtResult, inputs []testutil.SigningInput) {
	require.True(t, res.IsFinalized)

	packet, err := psbt.NewFromRawBytes(strings.NewReader(res.Psbt), true)
	require.NoError(t, err)
	tx, err := psbt.Extract(packet)
	require.NoError(t, err)
	testutil.VerifySignedTx(t, tx, inputs)

	require.NotNil(t, res.Deserialized)
	require.Equal(t, tx.TxHash().String(), res.Deserialized.Txid)
	for i, in := range res.Deserialized.Inputs {
		require.Equal(t, hex.EncodeToString(tx.TxIn[i].Witness[1]), in.Witness[1])
	}
}
