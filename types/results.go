package types

import (
	"encoding/json"
)

// ChangeFormatResult is rendered with the target format tag as the key of
// the converted key, e.g. {"depth": 3, ..., "zpub": "zpub6r..."}.
type ChangeFormatResult struct {
	Fingerprint       string
	ParentFingerprint string
	Depth             uint8
	Format            string
	Key               string
}

func (r *ChangeFormatResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"fingerprint":        r.Fingerprint,
		"parent_fingerprint": r.ParentFingerprint,
		"depth":              r.Depth,
		r.Format:             r.Key,
	})
}

type DeriveKeyResult struct {
	Xprv string `json:"xprv"`
	Xpub string `json:"xpub"`
}

type GenerateMnemonicResult struct {
	Fingerprint string `json:"fingerprint"`
	Mnemonic    string `json:"mnemonic"`
	Xprv        string `json:"xprv"`
}

type RestoreMnemonicResult struct {
	Fingerprint string `json:"fingerprint"`
	Xprv        string `json:"xprv"`
}

type SignPsbtResult struct {
	IsFinalized  bool         `json:"is_finalized"`
	Psbt         string       `json:"psbt"`
	Deserialized *PsbtSummary `json:"deserialized_psbt,omitempty"`
}
