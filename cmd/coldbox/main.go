package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/coldbox/coldbox/config"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[coldbox] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "coldbox"
	app.Usage = "Offline Bitcoin key utility: SLIP-132 conversion, BIP32 derivation, BIP39 mnemonics and PSBT signing."
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  networkFlag,
			Usage: "Bitcoin network (bitcoin, testnet, signet, regtest); overrides the config file",
		},
		cli.StringFlag{
			Name:  homeFlag,
			Usage: "The path to the coldbox home directory",
			Value: config.DefaultColdBoxDir,
		},
		cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "Logging level (debug, info, warn, error); overrides the config file",
		},
		cli.StringFlag{
			Name:  logFormatFlag,
			Usage: "Log encoding (console, json, logfmt); overrides the config file",
		},
	}
	app.Commands = append(app.Commands, initCommand, keyCommand, walletCommand)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
