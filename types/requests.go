package types

type ChangeFormatRequest struct {
	Key    string
	Format string
}

type DeriveKeyRequest struct {
	Xprv string
	// Path defaults to the configured derivation path when empty
	Path string
}

type GenerateMnemonicRequest struct {
	DiceRolls  uint32
	WordCount  int
	Passphrase string
}

type RestoreMnemonicRequest struct {
	Mnemonic   string
	Passphrase string
}

type SignPsbtRequest struct {
	Descriptor string
	Psbt       string
	Verbose    bool
}
