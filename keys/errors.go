package keys

import (
	errorsmod "cosmossdk.io/errors"
)

// CodeSpace is the error codespace of key handling failures.
const CodeSpace = "coldbox"

var (
	ErrUnknownFormat      = errorsmod.Register(CodeSpace, 2, "unknown key format")
	ErrIncompatibleFormat = errorsmod.Register(CodeSpace, 3, "incompatible key format")
	ErrInvalidEncoding    = errorsmod.Register(CodeSpace, 4, "invalid base58check encoding")
	ErrInvalidKey         = errorsmod.Register(CodeSpace, 5, "invalid extended key")
	ErrNetworkMismatch    = errorsmod.Register(CodeSpace, 6, "network mismatch")
	ErrInvalidMnemonic    = errorsmod.Register(CodeSpace, 7, "invalid mnemonic")
	ErrKeyDerivation      = errorsmod.Register(CodeSpace, 8, "key derivation failure")
	ErrInvalidKeyVariant  = errorsmod.Register(CodeSpace, 9, "invalid key variant")
	ErrInvalidPath        = errorsmod.Register(CodeSpace, 10, "invalid derivation path")
	ErrInvalidWordCount   = errorsmod.Register(CodeSpace, 11, "invalid mnemonic word count")
	ErrEntropySource      = errorsmod.Register(CodeSpace, 12, "entropy source failure")
	ErrInvalidDescriptor  = errorsmod.Register(CodeSpace, 13, "invalid descriptor")
)
