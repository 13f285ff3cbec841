package main

import (
	"github.com/urfave/cli"

	"github.com/coldbox/coldbox/coldbox"
	"github.com/coldbox/coldbox/types"
)

var walletCommand = cli.Command{
	Name:  "wallet",
	Usage: "Operate on a wpkh descriptor wallet.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:     descriptorFlag + ", d",
			Usage:    "wpkh descriptor holding the private extended key, e.g. wpkh([fp/84'/1'/0']tprv.../0/*)",
			Required: true,
		},
	},
	Subcommands: []cli.Command{
		signPsbtCommand,
	},
}

var signPsbtCommand = cli.Command{
	Name:  "sign",
	Usage: "Sign the inputs of a PSBT owned by the descriptor and finalize it.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:     psbtFlag + ", p",
			Usage:    "Base64 encoded PSBT",
			Required: true,
		},
		cli.BoolFlag{
			Name:  verboseFlag + ", v",
			Usage: "Include the decoded transaction in the output",
		},
	},
	Action: signPsbt,
}

func signPsbt(ctx *cli.Context) error {
	return runAndPrint(ctx, func(cb *coldbox.ColdBox) (interface{}, error) {
		return cb.SignPsbt(&types.SignPsbtRequest{
			Descriptor: ctx.GlobalString(descriptorFlag),
			Psbt:       ctx.String(psbtFlag),
			Verbose:    ctx.Bool(verboseFlag),
		})
	})
}
