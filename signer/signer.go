package signer

import (
	"bytes"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"

	"github.com/coldbox/coldbox/keys"
)

const CodeSpace = "signer"

var (
	ErrInvalidPsbt     = errorsmod.Register(CodeSpace, 2, "invalid psbt")
	ErrNoSignableInput = errorsmod.Register(CodeSpace, 3, "no input can be signed by the descriptor")
	ErrSigning         = errorsmod.Register(CodeSpace, 4, "signing failure")
)

// Signer signs PSBT inputs that pay to keys of a wpkh descriptor.
type Signer struct {
	desc *Descriptor
	key  *hdkeychain.ExtendedKey
	// origin of key; its own fingerprint and an empty path when the
	// descriptor does not annotate one
	origin keys.KeySource
	logger *zap.Logger
}

// Result of a signing run.
type Result struct {
	Packet      *psbt.Packet
	SignedCount int
	Finalized   bool
}

func New(descriptor string, net *chaincfg.Params, logger *zap.Logger) (*Signer, error) {
	desc, err := ParseDescriptor(descriptor)
	if err != nil {
		return nil, err
	}

	key, err := keys.ParsePrivateKeyForNet(desc.Key.Key, net)
	if err != nil {
		return nil, err
	}

	var origin keys.KeySource
	if desc.Key.Origin != nil {
		origin = *desc.Key.Origin
	} else {
		fp, err := keys.KeyFingerprint(key)
		if err != nil {
			return nil, err
		}
		origin = keys.KeySource{Fingerprint: fp}
	}

	return &Signer{
		desc:   desc,
		key:    key,
		origin: origin,
		logger: logger,
	}, nil
}

// ParsePacket decodes a base64 PSBT.
func ParsePacket(b64 string) (*psbt.Packet, error) {
	packet, err := psbt.NewFromRawBytes(strings.NewReader(strings.TrimSpace(b64)), true)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidPsbt, err.Error())
	}
	return packet, nil
}

// SignPsbt signs every input of the base64 encoded packet that the descriptor
// owns and then tries to finalize the whole packet.
func (s *Signer) SignPsbt(b64 string) (*Result, error) {
	packet, err := ParsePacket(b64)
	if err != nil {
		return nil, err
	}
	return s.Sign(packet)
}

// Sign works on packet in place.
func (s *Signer) Sign(packet *psbt.Packet) (*Result, error) {
	if err := psbt.InputsReadyToSign(packet); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidPsbt, err.Error())
	}

	fetcher, err := prevOutputFetcher(packet)
	if err != nil {
		return nil, err
	}
	sigHashes := txscript.NewTxSigHashes(packet.UnsignedTx, fetcher)

	updater, err := psbt.NewUpdater(packet)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidPsbt, err.Error())
	}

	signed := 0
	for i := range packet.Inputs {
		ok, err := s.signInput(updater, sigHashes, fetcher, i)
		if err != nil {
			return nil, err
		}
		if ok {
			signed++
		}
	}
	if signed == 0 {
		return nil, ErrNoSignableInput
	}

	s.finalize(packet)

	return &Result{
		Packet:      packet,
		SignedCount: signed,
		Finalized:   packet.IsComplete(),
	}, nil
}

// finalize tries every input on its own. Inputs waiting for other signers
// stay open without blocking the ones that are complete.
func (s *Signer) finalize(packet *psbt.Packet) {
	for i := range packet.Inputs {
		if _, err := psbt.MaybeFinalize(packet, i); err != nil {
			s.logger.Debug("input not finalized",
				zap.Int("input", i),
				zap.Error(err))
		}
	}
}

func (s *Signer) signInput(u *psbt.Updater, sigHashes *txscript.TxSigHashes,
	fetcher txscript.PrevOutputFetcher, idx int) (bool, error) {

	pInput := &u.Upsbt.Inputs[idx]
	if pInput.FinalScriptWitness != nil || pInput.FinalScriptSig != nil {
		s.logger.Debug("input already finalized", zap.Int("input", idx))
		return false, nil
	}

	utxo := fetcher.FetchPrevOutput(u.Upsbt.UnsignedTx.TxIn[idx].PreviousOutPoint)
	if !txscript.IsPayToWitnessPubKeyHash(utxo.PkScript) {
		s.logger.Debug("input is not p2wpkh", zap.Int("input", idx))
		return false, nil
	}

	for _, derivation := range pInput.Bip32Derivation {
		priv, ok, err := s.keyFor(derivation)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		pub := priv.PubKey().SerializeCompressed()
		if !bytes.Equal(utxo.PkScript[2:], btcutil.Hash160(pub)) {
			s.logger.Debug("derived key does not own the output", zap.Int("input", idx))
			continue
		}
		if hasPartialSig(pInput, pub) {
			continue
		}

		hashType := txscript.SigHashAll
		if pInput.SighashType != 0 {
			hashType = pInput.SighashType
		}

		sig, err := txscript.RawTxInWitnessSignature(u.Upsbt.UnsignedTx, sigHashes,
			idx, utxo.Value, utxo.PkScript, hashType, priv)
		if err != nil {
			return false, errorsmod.Wrapf(ErrSigning, "input %d: %v", idx, err)
		}

		if _, err := u.Sign(idx, sig, pub, nil, nil); err != nil {
			return false, errorsmod.Wrapf(ErrSigning, "input %d: %v", idx, err)
		}

		s.logger.Debug("signed input",
			zap.Int("input", idx),
			zap.String("path", keys.DerivationPath(derivation.Bip32Path).String()))

		return true, nil
	}

	return false, nil
}

// keyFor derives the private key behind derivation if it lies below the
// descriptor key. ok is false for derivations belonging to someone else.
func (s *Signer) keyFor(derivation *psbt.Bip32Derivation) (*btcec.PrivateKey, bool, error) {
	if keys.FingerprintFromPsbt(derivation.MasterKeyFingerprint) != s.origin.Fingerprint {
		return nil, false, nil
	}

	// FullPath starts at the origin root; without an annotated origin the
	// root is the descriptor key itself and the origin path is empty.
	path := keys.DerivationPath(derivation.Bip32Path)
	full := s.desc.Key.FullPath()
	if !path.HasPrefix(full) {
		return nil, false, nil
	}

	tail := path[len(full):]
	if s.desc.Key.Wildcard {
		if len(tail) != 1 || tail[0] >= hdkeychain.HardenedKeyStart {
			return nil, false, nil
		}
	} else if len(tail) != 0 {
		return nil, false, nil
	}

	rel := path[len(full)-len(s.desc.Key.Path):]
	child, err := keys.DerivePath(s.key, rel)
	if err != nil {
		return nil, false, err
	}

	pub, err := child.ECPubKey()
	if err != nil {
		return nil, false, errorsmod.Wrap(keys.ErrKeyDerivation, err.Error())
	}
	if !bytes.Equal(pub.SerializeCompressed(), derivation.PubKey) {
		s.logger.Debug("derivation pubkey mismatch",
			zap.String("path", path.String()))
		return nil, false, nil
	}

	priv, err := child.ECPrivKey()
	if err != nil {
		return nil, false, errorsmod.Wrap(keys.ErrInvalidKeyVariant, err.Error())
	}
	return priv, true, nil
}

func hasPartialSig(pInput *psbt.PInput, pub []byte) bool {
	for _, ps := range pInput.PartialSigs {
		if bytes.Equal(ps.PubKey, pub) {
			return true
		}
	}
	return false
}

// prevOutputFetcher collects the spent outputs of every input. Witness UTXOs
// are preferred, the full previous transaction is the fallback.
func prevOutputFetcher(packet *psbt.Packet) (*txscript.MultiPrevOutFetcher, error) {
	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for idx, txIn := range packet.UnsignedTx.TxIn {
		utxo, err := spentOutput(packet, idx, txIn)
		if err != nil {
			return nil, err
		}
		fetcher.AddPrevOut(txIn.PreviousOutPoint, utxo)
	}
	return fetcher, nil
}

func spentOutput(packet *psbt.Packet, idx int, txIn *wire.TxIn) (*wire.TxOut, error) {
	pInput := packet.Inputs[idx]
	if pInput.WitnessUtxo != nil {
		return pInput.WitnessUtxo, nil
	}

	prevTx := pInput.NonWitnessUtxo
	if prevTx.TxHash() != txIn.PreviousOutPoint.Hash {
		return nil, errorsmod.Wrapf(ErrInvalidPsbt, "input %d: previous transaction does not match outpoint", idx)
	}
	if int(txIn.PreviousOutPoint.Index) >= len(prevTx.TxOut) {
		return nil, errorsmod.Wrapf(ErrInvalidPsbt, "input %d: outpoint index out of range", idx)
	}
	return prevTx.TxOut[txIn.PreviousOutPoint.Index], nil
}
