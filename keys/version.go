package keys

import (
	"bytes"
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// Kind distinguishes extended private keys from extended public keys.
type Kind uint8

const (
	Private Kind = iota
	Public
)

func (k Kind) String() string {
	if k == Private {
		return "private"
	}
	return "public"
}

// NetworkClass is the network family a version prefix belongs to. Testnet,
// signet and regtest all share the testnet prefixes.
type NetworkClass uint8

const (
	Mainnet NetworkClass = iota
	Testnet
)

func (n NetworkClass) String() string {
	if n == Mainnet {
		return "mainnet"
	}
	return "testnet"
}

// ScriptType is the output script family a SLIP-132 prefix signals.
type ScriptType uint8

const (
	Legacy ScriptType = iota
	NestedSegwit
	NativeSegwit
	NestedSegwitMultisig
	NativeSegwitMultisig
)

func (s ScriptType) String() string {
	switch s {
	case Legacy:
		return "p2pkh"
	case NestedSegwit:
		return "p2wpkh-p2sh"
	case NativeSegwit:
		return "p2wpkh"
	case NestedSegwitMultisig:
		return "p2wsh-p2sh"
	case NativeSegwitMultisig:
		return "p2wsh"
	default:
		return fmt.Sprintf("ScriptType(%d)", uint8(s))
	}
}

// Format is one of the twenty SLIP-132 extended key formats.
type Format uint8

const (
	FormatXprv Format = iota
	FormatYprv
	FormatZprv
	FormatYprvMultisig
	FormatZprvMultisig
	FormatTprv
	FormatUprv
	FormatVprv
	FormatUprvMultisig
	FormatVprvMultisig
	FormatXpub
	FormatYpub
	FormatZpub
	FormatYpubMultisig
	FormatZpubMultisig
	FormatTpub
	FormatUpub
	FormatVpub
	FormatUpubMultisig
	FormatVpubMultisig

	numFormats
)

type formatSpec struct {
	tag     string
	version [VersionLen]byte
	kind    Kind
	net     NetworkClass
	script  ScriptType
}

// formatTable is indexed by Format and never mutated.
var formatTable = [numFormats]formatSpec{
	FormatXprv:         {"xprv", [4]byte{0x04, 0x88, 0xad, 0xe4}, Private, Mainnet, Legacy},
	FormatYprv:         {"yprv", [4]byte{0x04, 0x9d, 0x78, 0x78}, Private, Mainnet, NestedSegwit},
	FormatZprv:         {"zprv", [4]byte{0x04, 0xb2, 0x43, 0x0c}, Private, Mainnet, NativeSegwit},
	FormatYprvMultisig: {"Yprv", [4]byte{0x02, 0x95, 0xb0, 0x05}, Private, Mainnet, NestedSegwitMultisig},
	FormatZprvMultisig: {"Zprv", [4]byte{0x02, 0xaa, 0x7a, 0x99}, Private, Mainnet, NativeSegwitMultisig},
	FormatTprv:         {"tprv", [4]byte{0x04, 0x35, 0x83, 0x94}, Private, Testnet, Legacy},
	FormatUprv:         {"uprv", [4]byte{0x04, 0x4a, 0x4e, 0x28}, Private, Testnet, NestedSegwit},
	FormatVprv:         {"vprv", [4]byte{0x04, 0x5f, 0x18, 0xbc}, Private, Testnet, NativeSegwit},
	FormatUprvMultisig: {"Uprv", [4]byte{0x02, 0x42, 0x85, 0xb5}, Private, Testnet, NestedSegwitMultisig},
	FormatVprvMultisig: {"Vprv", [4]byte{0x02, 0x57, 0x50, 0x48}, Private, Testnet, NativeSegwitMultisig},
	FormatXpub:         {"xpub", [4]byte{0x04, 0x88, 0xb2, 0x1e}, Public, Mainnet, Legacy},
	FormatYpub:         {"ypub", [4]byte{0x04, 0x9d, 0x7c, 0xb2}, Public, Mainnet, NestedSegwit},
	FormatZpub:         {"zpub", [4]byte{0x04, 0xb2, 0x47, 0x46}, Public, Mainnet, NativeSegwit},
	FormatYpubMultisig: {"Ypub", [4]byte{0x02, 0x95, 0xb4, 0x3f}, Public, Mainnet, NestedSegwitMultisig},
	FormatZpubMultisig: {"Zpub", [4]byte{0x02, 0xaa, 0x7e, 0xd3}, Public, Mainnet, NativeSegwitMultisig},
	FormatTpub:         {"tpub", [4]byte{0x04, 0x35, 0x87, 0xcf}, Public, Testnet, Legacy},
	FormatUpub:         {"upub", [4]byte{0x04, 0x4a, 0x52, 0x62}, Public, Testnet, NestedSegwit},
	FormatVpub:         {"vpub", [4]byte{0x04, 0x5f, 0x1c, 0xf6}, Public, Testnet, NativeSegwit},
	FormatUpubMultisig: {"Upub", [4]byte{0x02, 0x42, 0x89, 0xef}, Public, Testnet, NestedSegwitMultisig},
	FormatVpubMultisig: {"Vpub", [4]byte{0x02, 0x57, 0x54, 0x83}, Public, Testnet, NativeSegwitMultisig},
}

// AllFormats lists every known format in table order.
func AllFormats() []Format {
	formats := make([]Format, 0, numFormats)
	for f := Format(0); f < numFormats; f++ {
		formats = append(formats, f)
	}
	return formats
}

// ParseFormat looks up a format by its four character tag. Tags are case
// sensitive: "zpub" and "Zpub" are different formats.
func ParseFormat(tag string) (Format, error) {
	for f := Format(0); f < numFormats; f++ {
		if formatTable[f].tag == tag {
			return f, nil
		}
	}
	return 0, errorsmod.Wrapf(ErrUnknownFormat, "%q", tag)
}

// FormatFromVersion returns the format whose prefix equals version.
func FormatFromVersion(version []byte) (Format, bool) {
	for f := Format(0); f < numFormats; f++ {
		if bytes.Equal(formatTable[f].version[:], version) {
			return f, true
		}
	}
	return 0, false
}

func (f Format) valid() bool {
	return f < numFormats
}

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formatTable[f].tag
}

// Version returns the 4-byte version prefix of f.
func (f Format) Version() [VersionLen]byte {
	return formatTable[f].version
}

func (f Format) Kind() Kind {
	return formatTable[f].kind
}

func (f Format) Network() NetworkClass {
	return formatTable[f].net
}

func (f Format) ScriptType() ScriptType {
	return formatTable[f].script
}

// Canonical maps f to the plain BIP32 format (xprv, xpub, tprv or tpub) of
// the same kind and network class.
func (f Format) Canonical() Format {
	return lookup(f.Kind(), f.Network(), Legacy)
}

// Counterpart maps a private format to its public twin and vice versa.
func (f Format) Counterpart() Format {
	kind := Public
	if f.Kind() == Public {
		kind = Private
	}
	return lookup(kind, f.Network(), f.ScriptType())
}

func lookup(kind Kind, net NetworkClass, script ScriptType) Format {
	for f := Format(0); f < numFormats; f++ {
		spec := formatTable[f]
		if spec.kind == kind && spec.net == net && spec.script == script {
			return f
		}
	}
	panic(fmt.Sprintf("no format for %s/%s/%s", kind, net, script))
}

// IsCompatible reports whether a key in format src may be relabelled as dst.
// Only the key kind matters: private converts to private, public to public.
func IsCompatible(src, dst Format) bool {
	return src.Kind() == dst.Kind()
}
