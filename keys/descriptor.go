package keys

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// DescriptorKey is an extended key annotated with its origin, as written in
// output descriptors: [origin]key/path/*
type DescriptorKey struct {
	Origin *KeySource
	Key    string
	// Path is derived from Key before the wildcard step.
	Path     DerivationPath
	Wildcard bool
}

func (d *DescriptorKey) String() string {
	var sb strings.Builder
	if d.Origin != nil {
		sb.WriteString("[")
		sb.WriteString(d.Origin.String())
		sb.WriteString("]")
	}
	sb.WriteString(d.Key)
	if len(d.Path) > 0 {
		sb.WriteString("/")
		sb.WriteString(d.Path.relative())
	}
	if d.Wildcard {
		sb.WriteString("/*")
	}
	return sb.String()
}

func (d *DescriptorKey) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// FullPath is the path from the origin root down to, but excluding, the
// wildcard step.
func (d *DescriptorKey) FullPath() DerivationPath {
	var full DerivationPath
	if d.Origin != nil {
		full = append(full, d.Origin.Path...)
	}
	return append(full, d.Path...)
}

// ParseDescriptorKey parses a key expression such as
// "[73c5da0a/84'/1'/0']tprv8.../0/*". Hardened wildcards are rejected.
func ParseDescriptorKey(s string) (*DescriptorKey, error) {
	s = strings.TrimSpace(s)
	d := &DescriptorKey{}

	if strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]")
		if end < 0 {
			return nil, errorsmod.Wrap(ErrInvalidDescriptor, "unterminated key origin")
		}
		origin, err := parseKeySource(s[1:end])
		if err != nil {
			return nil, err
		}
		d.Origin = origin
		s = s[end+1:]
	}

	parts := strings.Split(s, "/")
	d.Key = parts[0]
	if d.Key == "" {
		return nil, errorsmod.Wrap(ErrInvalidDescriptor, "missing key")
	}
	steps := parts[1:]

	if n := len(steps); n > 0 {
		switch steps[n-1] {
		case "*":
			d.Wildcard = true
			steps = steps[:n-1]
		case "*'", "*h", "*H":
			return nil, errorsmod.Wrap(ErrInvalidDescriptor, "hardened wildcard is not supported")
		}
	}

	path, err := parseIndices(steps)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidDescriptor, err.Error())
	}
	d.Path = path

	return d, nil
}

func parseKeySource(s string) (*KeySource, error) {
	parts := strings.Split(s, "/")
	fp, err := ParseFingerprint(parts[0])
	if err != nil {
		return nil, err
	}

	path, err := parseIndices(parts[1:])
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidDescriptor, err.Error())
	}

	return &KeySource{Fingerprint: fp, Path: path}, nil
}
