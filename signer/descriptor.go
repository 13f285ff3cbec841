package signer

import (
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/coldbox/coldbox/keys"
)

const (
	checksumInputCharset = "0123456789()[],'/*abcdefgh@:$%{}" +
		"IJKLMNOPQRSTUVWXYZ&+-.;<=>?!^_|~" +
		"ijklmnopqrstuvwxyzABCDEFGH`#\"\\ "
	checksumCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	checksumLen     = 8
)

// Descriptor is a single key native segwit output descriptor, wpkh(KEY).
type Descriptor struct {
	Key *keys.DescriptorKey
}

// ParseDescriptor parses "wpkh(KEY)" with an optional "#checksum" suffix. A
// present checksum must match.
func ParseDescriptor(s string) (*Descriptor, error) {
	s = strings.TrimSpace(s)

	if i := strings.LastIndex(s, "#"); i >= 0 {
		body, sum := s[:i], s[i+1:]
		want, err := DescriptorChecksum(body)
		if err != nil {
			return nil, err
		}
		if sum != want {
			return nil, errorsmod.Wrapf(keys.ErrInvalidDescriptor,
				"checksum %q does not match %q", sum, want)
		}
		s = body
	}

	if !strings.HasPrefix(s, "wpkh(") || !strings.HasSuffix(s, ")") {
		return nil, errorsmod.Wrap(keys.ErrInvalidDescriptor, "only wpkh(KEY) descriptors are supported")
	}

	key, err := keys.ParseDescriptorKey(s[len("wpkh(") : len(s)-1])
	if err != nil {
		return nil, err
	}
	return &Descriptor{Key: key}, nil
}

// String renders the descriptor with its checksum. A key holding characters
// outside the checksum charset, which ParseDescriptor never produces, is
// rendered without one.
func (d *Descriptor) String() string {
	body := "wpkh(" + d.Key.String() + ")"
	sum, err := DescriptorChecksum(body)
	if err != nil {
		return body
	}
	return body + "#" + sum
}

func polymod(c uint64, val int) uint64 {
	c0 := c >> 35
	c = ((c & 0x7ffffffff) << 5) ^ uint64(val)
	if c0&1 != 0 {
		c ^= 0xf5dee51989
	}
	if c0&2 != 0 {
		c ^= 0xa9fdca3312
	}
	if c0&4 != 0 {
		c ^= 0x1bab10e32d
	}
	if c0&8 != 0 {
		c ^= 0x3706b1677a
	}
	if c0&16 != 0 {
		c ^= 0x644d626ffd
	}
	return c
}

// DescriptorChecksum computes the eight character BIP380 checksum of desc.
func DescriptorChecksum(desc string) (string, error) {
	c := uint64(1)
	cls, clsCount := 0, 0
	for _, ch := range desc {
		pos := strings.IndexRune(checksumInputCharset, ch)
		if pos < 0 {
			return "", errorsmod.Wrapf(keys.ErrInvalidDescriptor, "invalid character %q", ch)
		}
		c = polymod(c, pos&31)
		cls = cls*3 + pos>>5
		clsCount++
		if clsCount == 3 {
			c = polymod(c, cls)
			cls, clsCount = 0, 0
		}
	}
	if clsCount > 0 {
		c = polymod(c, cls)
	}
	for i := 0; i < checksumLen; i++ {
		c = polymod(c, 0)
	}
	c ^= 1

	sum := make([]byte, checksumLen)
	for j := range sum {
		sum[j] = checksumCharset[(c>>(5*(7-j)))&31]
	}
	return string(sum), nil
}
