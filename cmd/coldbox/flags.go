package main

const (
	homeFlag      = "home"
	forceFlag     = "force"
	networkFlag   = "network"
	logLevelFlag  = "loglevel"
	logFormatFlag = "logformat"

	formatFlag         = "format"
	keyFlag            = "key"
	pathFlag           = "path"
	xprvFlag           = "xprv"
	diceRollsFlag      = "dicerolls"
	entropyFlag        = "entropy"
	passwordFlag       = "password"
	passwordPromptFlag = "password-prompt"
	mnemonicFlag       = "mnemonic"
	descriptorFlag     = "descriptor"
	psbtFlag           = "psbt"
	verboseFlag        = "verbose"
)
