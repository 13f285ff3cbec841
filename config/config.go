package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/jessevdk/go-flags"

	"github.com/coldbox/coldbox/keys"
	"github.com/coldbox/coldbox/util"
)

const (
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultLogFilename    = "coldbox.log"
	defaultConfigFileName = "coldbox.conf"
	defaultBitcoinNetwork = "testnet"
	defaultDerivationPath = "m/84'/0'/0'"
	defaultDiceRolls      = 99
	defaultWordCount      = 12
	defaultLogDirname     = "logs"
)

var (
	// DefaultColdBoxDir specifies the default home directory:
	//   C:\Users\<username>\AppData\Local\Coldbox on Windows
	//   ~/.coldbox on Linux
	//   ~/Library/Application Support/Coldbox on MacOS
	DefaultColdBoxDir = btcutil.AppDataDir("coldbox", false)

	defaultBTCNetParams = chaincfg.TestNet3Params
)

type Config struct {
	LogLevel       string `long:"loglevel" description:"Logging level for all subsystems" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal" choice:"panic"`
	LogFormat      string `long:"logformat" description:"Encoding of log lines written to stderr" choice:"console" choice:"auto" choice:"json" choice:"logfmt"`
	Network        string `long:"network" description:"Bitcoin network keys are generated and derived for" choice:"bitcoin" choice:"mainnet" choice:"testnet" choice:"signet" choice:"regtest"`
	DerivationPath string `long:"derivationpath" description:"Path used by key derive when none is given"`
	DiceRolls      uint32 `long:"dicerolls" description:"Number of random draws hashed into a new mnemonic"`
	WordCount      int    `long:"wordcount" description:"Length of generated mnemonics, 12 or 24 words"`

	BTCNetParams chaincfg.Params

	Metrics *MetricsConfig `group:"metrics" namespace:"metrics"`
}

// LoadConfig parses the configuration file under homePath and validates it.
func LoadConfig(homePath string) (*Config, error) {
	// The home directory is required to have a configuration file with a specific name
	// under it.
	cfgFile := ConfigFile(homePath)
	if !util.FileExists(cfgFile) {
		return nil, fmt.Errorf("specified config file does "+
			"not exist in %s", cfgFile)
	}

	// Start from defaults so keys missing in older files keep sane values.
	cfg := DefaultConfig()
	fileParser := flags.NewParser(&cfg, flags.Default)
	err := flags.NewIniParser(fileParser).ParseFile(cfgFile)
	if err != nil {
		return nil, err
	}

	// Make sure everything we just loaded makes sense.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigOrDefault is LoadConfig for an initialized home directory and the
// default configuration otherwise. Key commands work without running init.
func LoadConfigOrDefault(homePath string) (*Config, error) {
	if util.FileExists(ConfigFile(homePath)) {
		return LoadConfig(homePath)
	}
	cfg := DefaultConfig()
	return &cfg, nil
}

// Validate check the given configuration to be sane. This makes sure no
// illegal values or combination of values are set.
func (cfg *Config) Validate() error {
	if cfg.Metrics == nil {
		return fmt.Errorf("empty metrics config")
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	params, err := ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}
	cfg.BTCNetParams = *params

	if _, err := keys.ParsePath(cfg.DerivationPath); err != nil {
		return fmt.Errorf("invalid derivation path %q: %w", cfg.DerivationPath, err)
	}

	if cfg.WordCount != 12 && cfg.WordCount != 24 {
		return fmt.Errorf("unsupported word count %d, want 12 or 24", cfg.WordCount)
	}

	return nil
}

// ParseNetwork maps a network name to its chain parameters. "bitcoin" and
// "mainnet" are synonyms.
func ParseNetwork(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(name) {
	case "bitcoin", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported Bitcoin network: %s", name)
	}
}

func ConfigFile(homePath string) string {
	return filepath.Join(homePath, defaultConfigFileName)
}

func LogFile(homePath string) string {
	return filepath.Join(LogDir(homePath), defaultLogFilename)
}

func LogDir(homePath string) string {
	return filepath.Join(homePath, defaultLogDirname)
}

func DefaultConfig() Config {
	metricsCfg := DefaultMetricsConfig()
	cfg := Config{
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		Network:        defaultBitcoinNetwork,
		DerivationPath: defaultDerivationPath,
		DiceRolls:      defaultDiceRolls,
		WordCount:      defaultWordCount,
		BTCNetParams:   defaultBTCNetParams,
		Metrics:        &metricsCfg,
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	return cfg
}
