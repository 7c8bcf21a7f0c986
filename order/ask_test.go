package order

import (
	"context"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordbook/libordbook-go/network"
)

func TestBuildAsk(t *testing.T) {
	svc := &network.MockService{
		ListTokenCoinsFn: func(_ context.Context, address, tick string) ([]*network.TokenUTXO, error) {
			return []*network.TokenUTXO{
				testTokenUTXO("aa", "ordi", "50"),
				testTokenUTXO("bb", "ordi", "100"),
			}, nil
		},
	}
	b, store := testBuilder(t, svc, 2)

	res, err := b.BuildAsk(context.Background(), AskParams{
		OrderID: "ask-1",
		Tick:    "ordi",
		Amount:  "100",
		Price:   100_000,
	})
	require.NoError(t, err)

	packet := res.Packet
	require.Len(t, packet.UnsignedTx.TxIn, 1)
	require.Len(t, packet.UnsignedTx.TxOut, 1)

	// The matching coin is bb, not the smaller-quantity aa.
	wantHash, err := chainhash.NewHashFromStr("bb")
	require.NoError(t, err)
	assert.Equal(t, *wantHash, packet.UnsignedTx.TxIn[0].PreviousOutPoint.Hash)

	// Offer input allows a taker to combine it with their own funding.
	assert.Equal(t, txscript.SigHashSingle|txscript.SigHashAnyOneCanPay,
		packet.Inputs[0].SighashType)

	assert.Equal(t, int64(100_000), packet.UnsignedTx.TxOut[0].Value)
	assert.Equal(t, testScript(t), packet.UnsignedTx.TxOut[0].PkScript)

	// The offer itself commits no fee.
	assert.Zero(t, res.Fee)
	assert.Equal(t, uint64(546), res.PaymentValue)

	// The token coin is reserved against the order.
	ok, err := store.IsReserved("bb:0")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildAskDustPrice(t *testing.T) {
	b, _ := testBuilder(t, &network.MockService{}, 2)

	_, err := b.BuildAsk(context.Background(), AskParams{
		Tick:   "ordi",
		Amount: "100",
		Price:  999,
	})
	assert.ErrorIs(t, err, ErrDustOutput)
}

func TestBuildAskNoTokenCoin(t *testing.T) {
	svc := &network.MockService{
		ListTokenCoinsFn: func(context.Context, string, string) ([]*network.TokenUTXO, error) {
			return []*network.TokenUTXO{testTokenUTXO("aa", "ordi", "50")}, nil
		},
	}
	b, _ := testBuilder(t, svc, 2)

	_, err := b.BuildAsk(context.Background(), AskParams{
		Tick:   "ordi",
		Amount: "100",
		Price:  50_000,
	})
	assert.ErrorIs(t, err, ErrNoTokenCoin)
}
