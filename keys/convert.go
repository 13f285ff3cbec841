package keys

import (
	errorsmod "cosmossdk.io/errors"
)

// DetectFormat decodes key and identifies its format from the version prefix.
func DetectFormat(key string) (Format, error) {
	payload, err := DecodeExtendedKey(key)
	if err != nil {
		return 0, err
	}

	return formatOf(payload)
}

func formatOf(payload []byte) (Format, error) {
	f, ok := FormatFromVersion(payload[:VersionLen])
	if !ok {
		return 0, errorsmod.Wrapf(ErrUnknownFormat, "version prefix %x", payload[:VersionLen])
	}
	return f, nil
}

// Convert relabels key with the version prefix of target. Only the first four
// bytes of the payload change; depth, parent fingerprint, child number, chain
// code and key data are carried over untouched.
func Convert(key string, target Format) (string, error) {
	if !target.valid() {
		return "", errorsmod.Wrapf(ErrUnknownFormat, "%s", target)
	}

	payload, err := DecodeExtendedKey(key)
	if err != nil {
		return "", err
	}

	src, err := formatOf(payload)
	if err != nil {
		return "", err
	}

	if !IsCompatible(src, target) {
		return "", errorsmod.Wrapf(ErrIncompatibleFormat,
			"cannot convert %s key %s to %s key %s", src.Kind(), src, target.Kind(), target)
	}

	version := target.Version()
	relabelled := make([]byte, SerializedKeyLen)
	copy(relabelled, payload)
	copy(relabelled[:VersionLen], version[:])

	return EncodeExtendedKey(relabelled)
}

// ConvertTo is Convert with the target given by its tag.
func ConvertTo(key, tag string) (string, error) {
	target, err := ParseFormat(tag)
	if err != nil {
		return "", err
	}

	return Convert(key, target)
}
