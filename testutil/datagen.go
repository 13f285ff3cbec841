package testutil

import (
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/coldbox/coldbox/keys"
)

// SigningInput describes one wallet-owned output spent by a generated packet.
type SigningInput struct {
	Path     keys.DerivationPath
	PkScript []byte
	Amount   int64
}

func AddRandomSeedsToFuzzer(f *testing.F, num uint) {
	// Seed based on the current time
	r := rand.New(rand.NewSource(time.Now().Unix()))
	var idx uint
	for idx = 0; idx < num; idx++ {
		f.Add(r.Int63())
	}
}

func GenRandomByteArray(r *rand.Rand, length uint64) []byte {
	newHeaderBytes := make([]byte, length)
	r.Read(newHeaderBytes)
	return newHeaderBytes
}

func GenRandomHexStr(r *rand.Rand, length uint64) string {
	randBytes := GenRandomByteArray(r, length)
	return hex.EncodeToString(randBytes)
}

func GenRandomMasterKey(r *rand.Rand, t testing.TB, net *chaincfg.Params) *hdkeychain.ExtendedKey {
	master, err := hdkeychain.NewMaster(GenRandomByteArray(r, hdkeychain.RecommendedSeedLen), net)
	require.NoError(t, err)
	return master
}

// GenRandomDerivationPath returns a path of the given depth mixing hardened
// and normal steps.
func GenRandomDerivationPath(r *rand.Rand, depth int) keys.DerivationPath {
	path := make(keys.DerivationPath, depth)
	for i := range path {
		path[i] = uint32(r.Int31n(1 << 20))
		if r.Intn(2) == 0 {
			path[i] += hdkeychain.HardenedKeyStart
		}
	}
	return path
}

// GenRandomExtendedKey returns a private key a few levels below a random
// master so that depth and parent fingerprint are populated.
func GenRandomExtendedKey(r *rand.Rand, t testing.TB, net *chaincfg.Params) *hdkeychain.ExtendedKey {
	master := GenRandomMasterKey(r, t, net)
	child, err := keys.DerivePath(master, GenRandomDerivationPath(r, r.Intn(4)+1))
	require.NoError(t, err)
	return child
}

// GenRandomFormat picks a format of the requested kind.
func GenRandomFormat(r *rand.Rand, kind keys.Kind) keys.Format {
	var candidates []keys.Format
	for _, f := range keys.AllFormats() {
		if f.Kind() == kind {
			candidates = append(candidates, f)
		}
	}
	return candidates[r.Intn(len(candidates))]
}

func GenRandomRolls(r *rand.Rand, num int) []uint16 {
	rolls := make([]uint16, num)
	for i := range rolls {
		rolls[i] = uint16(r.Intn(65535))
	}
	return rolls
}

func randOutPoint(r *rand.Rand) wire.OutPoint {
	hash, _ := chainhash.NewHash(GenRandomByteArray(r, chainhash.HashSize))
	return wire.OutPoint{
		Hash:  *hash,
		Index: r.Uint32() % 16,
	}
}

// P2WPKHScript returns the native segwit output script paying to pub.
func P2WPKHScript(t testing.TB, pub []byte, net *chaincfg.Params) []byte {
	addr, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub), net)
	require.NoError(t, err)
	script, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)
	return script
}

// GenSigningPacket builds an unsigned packet spending numInputs P2WPKH outputs
// owned by account, a key sitting at origin below its root. Input i is paid
// to account/0/<random index> and carries its BIP32 derivation.
func GenSigningPacket(
	r *rand.Rand,
	t testing.TB,
	net *chaincfg.Params,
	account *hdkeychain.ExtendedKey,
	origin keys.KeySource,
	numInputs int,
) (*psbt.Packet, []SigningInput) {
	tx := wire.NewMsgTx(2)
	inputs := make([]SigningInput, 0, numInputs)

	var total int64
	for i := 0; i < numInputs; i++ {
		rel := keys.DerivationPath{0, uint32(r.Int31n(1000))}
		child, err := keys.DerivePath(account, rel)
		require.NoError(t, err)
		pub, err := child.ECPubKey()
		require.NoError(t, err)

		outPoint := randOutPoint(r)
		tx.AddTxIn(wire.NewTxIn(&outPoint, nil, nil))

		amount := r.Int63n(1_000_000) + 10_000
		total += amount
		inputs = append(inputs, SigningInput{
			Path:     append(append(keys.DerivationPath{}, origin.Path...), rel...),
			PkScript: P2WPKHScript(t, pub.SerializeCompressed(), net),
			Amount:   amount,
		})
	}

	destKey := GenRandomMasterKey(r, t, net)
	destPub, err := destKey.ECPubKey()
	require.NoError(t, err)
	tx.AddTxOut(wire.NewTxOut(total-1000, P2WPKHScript(t, destPub.SerializeCompressed(), net)))

	packet, err := psbt.NewFromUnsignedTx(tx)
	require.NoError(t, err)
	updater, err := psbt.NewUpdater(packet)
	require.NoError(t, err)

	fpLE := binary.LittleEndian.Uint32(origin.Fingerprint[:])
	for i, in := range inputs {
		child, err := keys.DerivePath(account, in.Path[len(origin.Path):])
		require.NoError(t, err)
		pub, err := child.ECPubKey()
		require.NoError(t, err)

		require.NoError(t, updater.AddInWitnessUtxo(wire.NewTxOut(in.Amount, in.PkScript), i))
		require.NoError(t, updater.AddInBip32Derivation(fpLE, in.Path, pub.SerializeCompressed(), i))
	}

	return packet, inputs
}

// VerifySignedTx runs the script engine over every input of tx.
func VerifySignedTx(t testing.TB, tx *wire.MsgTx, inputs []SigningInput) {
	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, in := range inputs {
		fetcher.AddPrevOut(tx.TxIn[i].PreviousOutPoint, wire.NewTxOut(in.Amount, in.PkScript))
	}
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)

	for i, in := range inputs {
		vm, err := txscript.NewEngine(in.PkScript, tx, i, txscript.StandardVerifyFlags,
			nil, sigHashes, in.Amount, fetcher)
		require.NoError(t, err)
		require.NoError(t, vm.Execute(), "input %d", i)
	}
}
