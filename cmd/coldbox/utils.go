package main

import (
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/urfave/cli"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/coldbox/coldbox/coldbox"
	"github.com/coldbox/coldbox/config"
	"github.com/coldbox/coldbox/log"
	"github.com/coldbox/coldbox/mnemonic"
	"github.com/coldbox/coldbox/util"
)

// loadColdBox builds the app from the home directory config, or the defaults
// when the home was never initialized, with global flags applied on top.
func loadColdBox(ctx *cli.Context) (*coldbox.ColdBox, *zap.Logger, error) {
	homePath, err := util.ResolveHomeDir(ctx.GlobalString(homeFlag))
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadConfigOrDefault(homePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config at %s: %w", homePath, err)
	}
	if ctx.GlobalIsSet(networkFlag) {
		cfg.Network = ctx.GlobalString(networkFlag)
	}
	if ctx.GlobalIsSet(logLevelFlag) {
		cfg.LogLevel = ctx.GlobalString(logLevelFlag)
	}
	if ctx.GlobalIsSet(logFormatFlag) {
		cfg.LogFormat = ctx.GlobalString(logFormatFlag)
	}

	var logger *zap.Logger
	if util.FileExists(config.ConfigFile(homePath)) {
		logger, err = log.NewRootLoggerWithFile(config.LogFile(homePath), cfg.LogFormat, cfg.LogLevel)
	} else {
		logger, err = log.NewRootLogger(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load the logger: %w", err)
	}

	cb, err := coldbox.NewColdBox(cfg, mnemonic.CryptoEntropySource{}, logger)
	if err != nil {
		return nil, nil, err
	}

	return cb, logger, nil
}

// runAndPrint runs op, prints its result as JSON and exports metrics if a
// text file is configured.
func runAndPrint(ctx *cli.Context, op func(cb *coldbox.ColdBox) (interface{}, error)) error {
	cb, logger, err := loadColdBox(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	resp, opErr := op(cb)
	if opErr != nil {
		logger.Error("operation failed",
			zap.String("command", ctx.Command.FullName()),
			zap.String("kind", coldbox.ErrorKind(opErr)),
			zap.Error(opErr))
	} else {
		printRespJSON(resp)
	}

	if metricsCfg := cb.Config().Metrics; metricsCfg.Enabled() {
		if err := coldbox.WriteMetrics(metricsCfg.TextFile); err != nil {
			logger.Warn("failed to write metrics",
				zap.String("file", metricsCfg.TextFile),
				zap.Error(err))
		}
	}

	return opErr
}

// readPassphrase returns the --password value, or reads one from the terminal
// without echo when --password-prompt is set.
func readPassphrase(ctx *cli.Context) (string, error) {
	if !ctx.Bool(passwordPromptFlag) {
		return ctx.String(passwordFlag), nil
	}
	if ctx.IsSet(passwordFlag) {
		return "", fmt.Errorf("--%s and --%s are mutually exclusive", passwordFlag, passwordPromptFlag)
	}

	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}

	return string(pass), nil
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Printf("%s\n", jsonBytes)
}
