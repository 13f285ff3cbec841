package keys_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldbox/coldbox/keys"
)

func TestVersionTable(t *testing.T) {
	tests := []struct {
		tag     string
		version [4]byte
		kind    keys.Kind
		net     keys.NetworkClass
	}{
		{"xprv", [4]byte{0x04, 0x88, 0xad, 0xe4}, keys.Private, keys.Mainnet},
		{"yprv", [4]byte{0x04, 0x9d, 0x78, 0x78}, keys.Private, keys.Mainnet},
		{"zprv", [4]byte{0x04, 0xb2, 0x43, 0x0c}, keys.Private, keys.Mainnet},
		{"Yprv", [4]byte{0x02, 0x95, 0xb0, 0x05}, keys.Private, keys.Mainnet},
		{"Zprv", [4]byte{0x02, 0xaa, 0x7a, 0x99}, keys.Private, keys.Mainnet},
		{"tprv", [4]byte{0x04, 0x35, 0x83, 0x94}, keys.Private, keys.Testnet},
		{"uprv", [4]byte{0x04, 0x4a, 0x4e, 0x28}, keys.Private, keys.Testnet},
		{"vprv", [4]byte{0x04, 0x5f, 0x18, 0xbc}, keys.Private, keys.Testnet},
		{"Uprv", [4]byte{0x02, 0x42, 0x85, 0xb5}, keys.Private, keys.Testnet},
		{"Vprv", [4]byte{0x02, 0x57, 0x50, 0x48}, keys.Private, keys.Testnet},
		{"xpub", [4]byte{0x04, 0x88, 0xb2, 0x1e}, keys.Public, keys.Mainnet},
		{"ypub", [4]byte{0x04, 0x9d, 0x7c, 0xb2}, keys.Public, keys.Mainnet},
		{"zpub", [4]byte{0x04, 0xb2, 0x47, 0x46}, keys.Public, keys.Mainnet},
		{"Ypub", [4]byte{0x02, 0x95, 0xb4, 0x3f}, keys.Public, keys.Mainnet},
		{"Zpub", [4]byte{0x02, 0xaa, 0x7e, 0xd3}, keys.Public, keys.Mainnet},
		{"tpub", [4]byte{0x04, 0x35, 0x87, 0xcf}, keys.Public, keys.Testnet},
		{"upub", [4]byte{0x04, 0x4a, 0x52, 0x62}, keys.Public, keys.Testnet},
		{"vpub", [4]byte{0x04, 0x5f, 0x1c, 0xf6}, keys.Public, keys.Testnet},
		{"Upub", [4]byte{0x02, 0x42, 0x89, 0xef}, keys.Public, keys.Testnet},
		{"Vpub", [4]byte{0x02, 0x57, 0x54, 0x83}, keys.Public, keys.Testnet},
	}
	require.Len(t, keys.AllFormats(), len(tests))

	for _, tc := range tests {
		f, err := keys.ParseFormat(tc.tag)
		require.NoError(t, err, tc.tag)
		require.Equal(t, tc.tag, f.String())
		require.Equal(t, tc.version, f.Version(), tc.tag)
		require.Equal(t, tc.kind, f.Kind(), tc.tag)
		require.Equal(t, tc.net, f.Network(), tc.tag)

		back, ok := keys.FormatFromVersion(tc.version[:])
		require.True(t, ok)
		require.Equal(t, f, back)
	}
}

func TestParseFormatUnknown(t *testing.T) {
	for _, tag := range []string{"", "xprv ", "XPRV", "zpriv", "wpub", "Xpub"} {
		_, err := keys.ParseFormat(tag)
		require.True(t, errors.Is(err, keys.ErrUnknownFormat), tag)
	}

	_, ok := keys.FormatFromVersion([]byte{0xde, 0xad, 0xbe, 0xef})
	require.False(t, ok)
}

func TestCanonicalAndCounterpart(t *testing.T) {
	for _, f := range keys.AllFormats() {
		c := f.Canonical()
		require.Equal(t, keys.Legacy, c.ScriptType())
		require.Equal(t, f.Kind(), c.Kind())
		require.Equal(t, f.Network(), c.Network())

		cp := f.Counterpart()
		require.NotEqual(t, f.Kind(), cp.Kind())
		require.Equal(t, f.ScriptType(), cp.ScriptType())
		require.Equal(t, f, cp.Counterpart())
	}

	require.Equal(t, keys.FormatXpub, keys.FormatZpub.Canonical())
	require.Equal(t, keys.FormatTprv, keys.FormatVprvMultisig.Canonical())
	require.Equal(t, keys.FormatZpub, keys.FormatZprv.Counterpart())
}

func TestIsCompatibleByKind(t *testing.T) {
	for _, src := range keys.AllFormats() {
		for _, dst := range keys.AllFormats() {
			require.Equal(t, src.Kind() == dst.Kind(), keys.IsCompatible(src, dst),
				"%s -> %s", src, dst)
		}
	}
}
