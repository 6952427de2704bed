package ordtx

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/libsv/go-bk/bec"
	"github.com/libsv/go-bt/v2"
	"github.com/libsv/go-bt/v2/bscript"
	"github.com/libsv/go-bt/v2/bscript/interpreter"
	"github.com/libsv/go-bt/v2/sighash"
	"github.com/stretchr/testify/require"
)

const (
	fundTxid = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	ordTxid  = "0e3e2357e806b6cdb1f70b54c3a3a17b6714ee1f0e68bebb44a74b1efd512098"
)

type testKey struct {
	priv    *bec.PrivateKey
	pub     *bec.PublicKey
	address string
	lock    *bscript.Script
}

func newTestKey(t *testing.T, seed byte) testKey {
	t.Helper()

	priv, pub := bec.PrivKeyFromBytes(bec.S256(), bytes.Repeat([]byte{seed}, 32))
	addr, err := bscript.NewAddressFromPublicKey(pub, true)
	require.NoError(t, err)
	lock, err := bscript.NewP2PKHFromAddress(addr.AddressString)
	require.NoError(t, err)

	return testKey{priv: priv, pub: pub, address: addr.AddressString, lock: lock}
}

func (k testKey) utxo(txid string, vout uint32, sats uint64) *Utxo {
	return &Utxo{Satoshis: sats, Txid: txid, Vout: vout, Script: k.lock.String()}
}

// verifyInput runs the unlocking script of input idx against the input's
// previous script and satoshis, and checks it carries pub.
func verifyInput(t *testing.T, tx *bt.Tx, idx uint32, pub *bec.PublicKey) {
	t.Helper()

	in := tx.Inputs[idx]
	require.NotNil(t, in.UnlockingScript)
	parts, err := bscript.DecodeParts(*in.UnlockingScript)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	sigBytes := parts[0]
	require.Equal(t, byte(sighash.AllForkID), sigBytes[len(sigBytes)-1])
	require.Equal(t, pub.SerialiseCompressed(), parts[1])

	prevOut := &bt.Output{
		Satoshis:      in.PreviousTxSatoshis,
		LockingScript: in.PreviousTxScript,
	}
	err = interpreter.NewEngine().Execute(
		interpreter.WithTx(tx, int(idx), prevOut),
		interpreter.WithForkID(),
		interpreter.WithAfterGenesis(),
	)
	require.NoError(t, err, "input %d", idx)
}

func hexOf(s string) string {
	return hex.EncodeToString([]byte(s))
}
