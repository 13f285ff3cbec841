package config_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"

	"github.com/coldbox/coldbox/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, chaincfg.TestNet3Params.Name, cfg.BTCNetParams.Name)
	require.Equal(t, "m/84'/0'/0'", cfg.DerivationPath)
	require.Equal(t, uint32(99), cfg.DiceRolls)
	require.Equal(t, 12, cfg.WordCount)
	require.False(t, cfg.Metrics.Enabled())
}

func TestLoadConfigRoundTrip(t *testing.T) {
	home := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Network = "bitcoin"
	cfg.WordCount = 24
	cfg.Metrics.TextFile = home + "/coldbox.prom"
	fileParser := flags.NewParser(&cfg, flags.Default)
	err := flags.NewIniParser(fileParser).WriteFile(config.ConfigFile(home), flags.IniIncludeComments|flags.IniIncludeDefaults)
	require.NoError(t, err)

	loaded, err := config.LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, chaincfg.MainNetParams.Name, loaded.BTCNetParams.Name)
	require.Equal(t, 24, loaded.WordCount)
	require.True(t, loaded.Metrics.Enabled())
}

func TestLoadConfigMissingFile(t *testing.T) {
	home := t.TempDir()
	_, err := config.LoadConfig(home)
	require.Error(t, err)

	cfg, err := config.LoadConfigOrDefault(home)
	require.NoError(t, err)
	require.Equal(t, "testnet", cfg.Network)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []func(*config.Config){
		func(c *config.Config) { c.Network = "litecoin" },
		func(c *config.Config) { c.DerivationPath = "m/x" },
		func(c *config.Config) { c.WordCount = 18 },
		func(c *config.Config) { c.Metrics.TextFile = "/tmp/metrics.txt" },
		func(c *config.Config) { c.Metrics = nil },
	}
	for i, mutate := range tests {
		cfg := config.DefaultConfig()
		mutate(&cfg)
		require.Error(t, cfg.Validate(), "case %d", i)
	}
}

func TestParseNetwork(t *testing.T) {
	for name, want := range map[string]*chaincfg.Params{
		"bitcoin": &chaincfg.MainNetParams,
		"mainnet": &chaincfg.MainNetParams,
		"testnet": &chaincfg.TestNet3Params,
		"signet":  &chaincfg.SigNetParams,
		"regtest": &chaincfg.RegressionNetParams,
	} {
		got, err := config.ParseNetwork(name)
		require.NoError(t, err)
		require.Equal(t, want.Name, got.Name)
	}

	_, err := config.ParseNetwork("simnet")
	require.Error(t, err)
}
