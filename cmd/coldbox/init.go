package main

import (
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/urfave/cli"

	"github.com/coldbox/coldbox/config"
	"github.com/coldbox/coldbox/util"
)

var initCommand = cli.Command{
	Name:  "init",
	Usage: "Initialize a coldbox home directory with a default config file.",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:     forceFlag,
			Usage:    "Override existing configuration",
			Required: false,
		},
	},
	Action: initHome,
}

func initHome(c *cli.Context) error {
	homePath, err := util.ResolveHomeDir(c.GlobalString(homeFlag))
	if err != nil {
		return err
	}
	force := c.Bool(forceFlag)

	if util.FileExists(config.ConfigFile(homePath)) && !force {
		return fmt.Errorf("config file %s already exists", config.ConfigFile(homePath))
	}

	if err := util.MakeDirectory(homePath); err != nil {
		return err
	}
	// Create log directory
	logDir := config.LogDir(homePath)
	if err := util.MakeDirectory(logDir); err != nil {
		return err
	}

	defaultConfig := config.DefaultConfig()
	if c.GlobalIsSet(networkFlag) {
		defaultConfig.Network = c.GlobalString(networkFlag)
		if err := defaultConfig.Validate(); err != nil {
			return err
		}
	}
	fileParser := flags.NewParser(&defaultConfig, flags.Default)

	return flags.NewIniParser(fileParser).WriteFile(config.ConfigFile(homePath), flags.IniIncludeComments|flags.IniIncludeDefaults)
}
