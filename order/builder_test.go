package order

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/ordbook/libordbook-go/listing"
	"github.com/ordbook/libordbook-go/network"
	"github.com/ordbook/libordbook-go/wallet"
)

const (
	testAddr      = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	testScriptHex = "0014751e76e8199196d454941c45d1b3a323f1433bd6"
	testPubKeyHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func testScript(t *testing.T) []byte {
	t.Helper()
	script, err := hex.DecodeString(testScriptHex)
	require.NoError(t, err)
	return script
}

func testPubKey(t *testing.T) []byte {
	t.Helper()
	key, err := hex.DecodeString(testPubKeyHex)
	require.NoError(t, err)
	return key
}

func testUTXO(txid string, vout uint32, value uint64) *network.UTXO {
	return &network.UTXO{
		TxID:          txid,
		Vout:          vout,
		Value:         value,
		ScriptPubKey:  testScriptHex,
		Address:       testAddr,
		Confirmations: 1,
	}
}

func testTokenUTXO(txid string, tick, amount string) *network.TokenUTXO {
	return &network.TokenUTXO{
		UTXO:          *testUTXO(txid, 0, 546),
		InscriptionID: txid + "i0",
		Tick:          tick,
		Amount:        amount,
		Payload:       []byte(`{"p":"brc-20","op":"transfer","tick":"` + tick + `","amt":"` + amount + `"}`),
	}
}

// testBuilder wires a builder to a mock coin source, a fresh reservation
// store, and a segwit session.
func testBuilder(t *testing.T, svc *network.MockService, feeRate uint64) (*Builder, *listing.Store) {
	t.Helper()

	session, err := wallet.NewSession(testAddr, testPubKey(t), &chaincfg.MainNetParams)
	require.NoError(t, err)

	store, err := listing.OpenStore(filepath.Join(t.TempDir(), "listings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	if svc.ListUnspentFn == nil {
		svc.ListUnspentFn = func(context.Context, string) ([]*network.UTXO, error) {
			return nil, nil
		}
	}
	if svc.ListLockedFn == nil {
		svc.ListLockedFn = func(context.Context, string) ([]*network.UTXO, error) {
			return nil, nil
		}
	}

	return NewBuilder(svc, session, store, feeRate), store
}
