package types

type PsbtSummary struct {
	Txid     string          `json:"txid"`
	Version  int32           `json:"version"`
	LockTime uint32          `json:"lock_time"`
	Fee      int64           `json:"fee,omitempty"`
	Inputs   []InputSummary  `json:"inputs"`
	Outputs  []OutputSummary `json:"outputs"`
}

type InputSummary struct {
	PreviousOutput string   `json:"previous_output"`
	Sequence       uint32   `json:"sequence"`
	Value          int64    `json:"value,omitempty"`
	Witness        []string `json:"witness,omitempty"`
}

type OutputSummary struct {
	Value        int64  `json:"value"`
	ScriptPubKey string `json:"script_pubkey"`
	Address      string `json:"address,omitempty"`
}
