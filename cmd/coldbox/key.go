package main

import (
	"github.com/urfave/cli"

	"github.com/coldbox/coldbox/coldbox"
	"github.com/coldbox/coldbox/mnemonic"
	"github.com/coldbox/coldbox/types"
)

var passwordFlags = []cli.Flag{
	cli.StringFlag{
		Name:  passwordFlag + ", p",
		Usage: "Optional BIP39 passphrase",
	},
	cli.BoolFlag{
		Name:  passwordPromptFlag,
		Usage: "Read the BIP39 passphrase from the terminal without echo",
	},
}

var keyCommand = cli.Command{
	Name:  "key",
	Usage: "Convert, derive, generate and restore extended keys.",
	Subcommands: []cli.Command{
		changeFormatCommand,
		deriveKeyCommand,
		generateMnemonicCommand,
		restoreMnemonicCommand,
	},
}

var changeFormatCommand = cli.Command{
	Name:  "change",
	Usage: "Re-encode an extended key under another SLIP-132 prefix.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:     formatFlag + ", f",
			Usage:    "Target format tag, e.g. zpub or vprv",
			Required: true,
		},
		cli.StringFlag{
			Name:     keyFlag + ", k",
			Usage:    "The extended key to convert",
			Required: true,
		},
	},
	Action: changeFormat,
}

func changeFormat(ctx *cli.Context) error {
	return runAndPrint(ctx, func(cb *coldbox.ColdBox) (interface{}, error) {
		return cb.ChangeFormat(&types.ChangeFormatRequest{
			Key:    ctx.String(keyFlag),
			Format: ctx.String(formatFlag),
		})
	})
}

var deriveKeyCommand = cli.Command{
	Name:  "derive",
	Usage: "Derive an account key pair from a private extended key.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  pathFlag + ", p",
			Usage: "BIP32 derivation path, defaults to the configured path (m/84'/0'/0')",
		},
		cli.StringFlag{
			Name:     xprvFlag + ", x",
			Usage:    "The private extended key to derive from",
			Required: true,
		},
	},
	Action: deriveKey,
}

func deriveKey(ctx *cli.Context) error {
	return runAndPrint(ctx, func(cb *coldbox.ColdBox) (interface{}, error) {
		return cb.DeriveKey(&types.DeriveKeyRequest{
			Xprv: ctx.String(xprvFlag),
			Path: ctx.String(pathFlag),
		})
	})
}

var generateMnemonicCommand = cli.Command{
	Name:  "generate",
	Usage: "Generate a new BIP39 mnemonic and its master key.",
	Flags: append([]cli.Flag{
		cli.UintFlag{
			Name:  diceRollsFlag + ", d",
			Usage: "Number of random draws hashed into the entropy",
			Value: mnemonic.DefaultDiceRolls,
		},
		cli.IntFlag{
			Name:  entropyFlag + ", e",
			Usage: "Mnemonic length in words, 12 or 24; defaults to the configured word count",
		},
	}, passwordFlags...),
	Action: generateMnemonic,
}

func generateMnemonic(ctx *cli.Context) error {
	passphrase, err := readPassphrase(ctx)
	if err != nil {
		return err
	}

	return runAndPrint(ctx, func(cb *coldbox.ColdBox) (interface{}, error) {
		rolls := uint32(ctx.Uint(diceRollsFlag))
		if !ctx.IsSet(diceRollsFlag) {
			rolls = cb.Config().DiceRolls
		}
		return cb.GenerateMnemonic(&types.GenerateMnemonicRequest{
			DiceRolls:  rolls,
			WordCount:  ctx.Int(entropyFlag),
			Passphrase: passphrase,
		})
	})
}

var restoreMnemonicCommand = cli.Command{
	Name:  "restore",
	Usage: "Restore the master key of a BIP39 mnemonic.",
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name:     mnemonicFlag + ", m",
			Usage:    "The space separated mnemonic words",
			Required: true,
		},
	}, passwordFlags...),
	Action: restoreMnemonic,
}

func restoreMnemonic(ctx *cli.Context) error {
	passphrase, err := readPassphrase(ctx)
	if err != nil {
		return err
	}

	return runAndPrint(ctx, func(cb *coldbox.ColdBox) (interface{}, error) {
		return cb.RestoreMnemonic(&types.RestoreMnemonicRequest{
			Mnemonic:   ctx.String(mnemonicFlag),
			Passphrase: passphrase,
		})
	})
}
