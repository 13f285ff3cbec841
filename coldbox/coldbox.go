package coldbox

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"

	"github.com/coldbox/coldbox/config"
	"github.com/coldbox/coldbox/keys"
	"github.com/coldbox/coldbox/mnemonic"
	"github.com/coldbox/coldbox/signer"
	"github.com/coldbox/coldbox/types"
)

// ColdBox runs the offline key and wallet operations for one network.
type ColdBox struct {
	config  *config.Config
	net     *chaincfg.Params
	entropy mnemonic.EntropySource
	logger  *zap.Logger
}

func NewColdBox(cfg *config.Config, entropy mnemonic.EntropySource, logger *zap.Logger) (*ColdBox, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ColdBox{
		config:  cfg,
		net:     &cfg.BTCNetParams,
		entropy: entropy,
		logger:  logger,
	}, nil
}

func (cb *ColdBox) Config() *config.Config {
	return cb.config
}

func (cb *ColdBox) Network() *chaincfg.Params {
	return cb.net
}

// ChangeFormat re-encodes an extended key under another SLIP-132 prefix and
// reports the identity of the key, which no conversion changes.
func (cb *ColdBox) ChangeFormat(req *types.ChangeFormatRequest) (*types.ChangeFormatResult, error) {
	var res *types.ChangeFormatResult
	err := observe(OpChangeFormat, func() error {
		converted, err := keys.ConvertTo(req.Key, req.Format)
		if err != nil {
			return err
		}

		info, err := keys.ExtractInfo(converted)
		if err != nil {
			return err
		}

		cb.logger.Debug("changed key format",
			zap.String("format", info.Format.String()),
			zap.String("fingerprint", info.Fingerprint.String()),
			zap.Uint8("depth", info.Depth))

		res = &types.ChangeFormatResult{
			Fingerprint:       info.Fingerprint.String(),
			ParentFingerprint: info.ParentFingerprint.String(),
			Depth:             info.Depth,
			Format:            info.Format.String(),
			Key:               converted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeriveKey derives the account key at req.Path, or at the configured
// derivation path if none is given.
func (cb *ColdBox) DeriveKey(req *types.DeriveKeyRequest) (*types.DeriveKeyResult, error) {
	var res *types.DeriveKeyResult
	err := observe(OpDeriveKey, func() error {
		pathStr := req.Path
		if pathStr == "" {
			pathStr = cb.config.DerivationPath
		}
		path, err := keys.ParsePath(pathStr)
		if err != nil {
			return err
		}

		pair, err := keys.Derive(req.Xprv, path, cb.net)
		if err != nil {
			return err
		}

		cb.logger.Debug("derived key",
			zap.String("network", cb.net.Name),
			zap.String("origin", pair.Xpub.Origin.String()))

		res = &types.DeriveKeyResult{
			Xprv: pair.Xprv.String(),
			Xpub: pair.Xpub.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GenerateMnemonic creates a new phrase from the entropy source. A zero word
// count falls back to the configured one.
func (cb *ColdBox) GenerateMnemonic(req *types.GenerateMnemonicRequest) (*types.GenerateMnemonicResult, error) {
	var res *types.GenerateMnemonicResult
	err := observe(OpGenerateMnemonic, func() error {
		words := req.WordCount
		if words == 0 {
			words = cb.config.WordCount
		}
		if req.DiceRolls == 0 {
			cb.logger.Warn("no dice rolls requested, the mnemonic is derived from a constant")
		}

		out, err := mnemonic.Generate(cb.entropy, req.DiceRolls, words, req.Passphrase, cb.net)
		if err != nil {
			return err
		}

		cb.logger.Debug("generated mnemonic",
			zap.String("network", cb.net.Name),
			zap.Int("words", words),
			zap.Uint32("dice_rolls", req.DiceRolls),
			zap.String("fingerprint", out.Fingerprint.String()))

		res = &types.GenerateMnemonicResult{
			Fingerprint: out.Fingerprint.String(),
			Mnemonic:    out.Mnemonic,
			Xprv:        out.Xprv,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (cb *ColdBox) RestoreMnemonic(req *types.RestoreMnemonicRequest) (*types.RestoreMnemonicResult, error) {
	var res *types.RestoreMnemonicResult
	err := observe(OpRestoreMnemonic, func() error {
		out, err := mnemonic.Restore(req.Mnemonic, req.Passphrase, cb.net)
		if err != nil {
			return err
		}

		cb.logger.Debug("restored mnemonic",
			zap.String("network", cb.net.Name),
			zap.String("fingerprint", out.Fingerprint.String()))

		res = &types.RestoreMnemonicResult{
			Fingerprint: out.Fingerprint.String(),
			Xprv:        out.Xprv,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SignPsbt signs the inputs of req.Psbt owned by req.Descriptor.
func (cb *ColdBox) SignPsbt(req *types.SignPsbtRequest) (*types.SignPsbtResult, error) {
	var res *types.SignPsbtResult
	err := observe(OpSignPsbt, func() error {
		s, err := signer.New(req.Descriptor, cb.net, cb.logger)
		if err != nil {
			return err
		}

		signed, err := s.SignPsbt(req.Psbt)
		if err != nil {
			return err
		}

		b64, err := signed.Packet.B64Encode()
		if err != nil {
			return err
		}

		cb.logger.Debug("signed psbt",
			zap.Int("signed_inputs", signed.SignedCount),
			zap.Int("inputs", len(signed.Packet.Inputs)),
			zap.Bool("finalized", signed.Finalized))

		res = &types.SignPsbtResult{
			IsFinalized: signed.Finalized,
			Psbt:        b64,
		}
		if req.Verbose {
			res.Deserialized = summarizePacket(signed.Packet, signed.Finalized, cb.net)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// summarizePacket describes the transaction of packet. Finalized packets are
// shown with their witnesses.
func summarizePacket(packet *psbt.Packet, finalized bool, net *chaincfg.Params) *types.PsbtSummary {
	tx := packet.UnsignedTx
	if finalized {
		if extracted, err := psbt.Extract(packet); err == nil {
			tx = extracted
		}
	}

	summary := &types.PsbtSummary{
		Txid:     tx.TxHash().String(),
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Inputs:   make([]types.InputSummary, 0, len(tx.TxIn)),
		Outputs:  make([]types.OutputSummary, 0, len(tx.TxOut)),
	}
	if fee, err := packet.GetTxFee(); err == nil {
		summary.Fee = int64(fee)
	}

	for i, txIn := range tx.TxIn {
		in := types.InputSummary{
			PreviousOutput: txIn.PreviousOutPoint.String(),
			Sequence:       txIn.Sequence,
			Value:          inputValue(packet, i),
		}
		for _, item := range txIn.Witness {
			in.Witness = append(in.Witness, hex.EncodeToString(item))
		}
		summary.Inputs = append(summary.Inputs, in)
	}

	for _, txOut := range tx.TxOut {
		summary.Outputs = append(summary.Outputs, summarizeOutput(txOut, net))
	}

	return summary
}

func inputValue(packet *psbt.Packet, idx int) int64 {
	pInput := packet.Inputs[idx]
	if pInput.WitnessUtxo != nil {
		return pInput.WitnessUtxo.Value
	}
	if pInput.NonWitnessUtxo != nil {
		prevIdx := packet.UnsignedTx.TxIn[idx].PreviousOutPoint.Index
		if int(prevIdx) < len(pInput.NonWitnessUtxo.TxOut) {
			return pInput.NonWitnessUtxo.TxOut[prevIdx].Value
		}
	}
	return 0
}

func summarizeOutput(txOut *wire.TxOut, net *chaincfg.Params) types.OutputSummary {
	out := types.OutputSummary{
		Value:        txOut.Value,
		ScriptPubKey: hex.EncodeToString(txOut.PkScript),
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(txOut.PkScript, net)
	if err == nil && len(addrs) == 1 {
		out.Address = addrs[0].EncodeAddress()
	}
	return out
}
