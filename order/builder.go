// Package order builds the partially signed transactions behind the four
// marketplace operations: listing an ask, funding a bid escrow, taking a
// standing order, and claiming an inscribed coin.
//
// Builders are pure orchestration: they fetch a fresh coin snapshot, build
// a packet, and hand it back unsigned. Signing and broadcasting belong to
// the wallet provider.
package order

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/ordbook/libordbook-go/listing"
	"github.com/ordbook/libordbook-go/network"
	"github.com/ordbook/libordbook-go/tx"
	"github.com/ordbook/libordbook-go/wallet"
)

// MaxTakeInputs bounds the input count of a take transaction so its size
// stays predictable.
const MaxTakeInputs = 16

// Builder orchestrates order construction over a coin source, a wallet
// session, and the listing reservation store.
type Builder struct {
	svc      network.Service
	session  *wallet.Session
	listings *listing.Store
	feeRate  uint64
}

// NewBuilder creates a builder. The listing store may be nil, in which case
// no coins are excluded from funding selection. A zero feeRate falls back
// to the default floor rate.
func NewBuilder(svc network.Service, session *wallet.Session, listings *listing.Store, feeRate uint64) *Builder {
	return &Builder{
		svc:      svc,
		session:  session,
		listings: listings,
		feeRate:  feeRate,
	}
}

// BuildResult is a built packet plus its realized cost breakdown.
type BuildResult struct {
	Packet *psbt.Packet

	// Fee is the miner fee committed by the packet, including folded dust.
	Fee uint64

	// PaymentValue is the value of the attached funding input.
	PaymentValue uint64

	// ChangeValue is the appended change output value, zero when the
	// remainder was folded into the fee.
	ChangeValue uint64
}

// fundingCandidates returns the spendable coins for the session address
// with listing-reserved outpoints removed.
func (b *Builder) fundingCandidates(ctx context.Context) ([]*tx.Coin, error) {
	address, err := b.session.FundingAddress()
	if err != nil {
		return nil, err
	}
	utxos, err := b.svc.ListUnspent(ctx, address)
	if err != nil {
		return nil, err
	}
	coins, err := network.ToCoins(utxos)
	if err != nil {
		return nil, err
	}
	if b.listings == nil {
		return coins, nil
	}
	reserved, err := b.listings.Reserved()
	if err != nil {
		return nil, err
	}
	return listing.FilterAvailable(coins, reserved), nil
}

// allocOptions assembles the allocator options for the session's funding
// address.
func (b *Builder) allocOptions(sighash txscript.SigHashType, estimateOnly bool) (tx.AllocateOptions, error) {
	opts := tx.AllocateOptions{
		FeeRate:      b.feeRate,
		SighashType:  sighash,
		EstimateOnly: estimateOnly,
	}
	if b.session.IsTaproot() {
		key, err := b.session.TaprootInternalKey()
		if err != nil {
			return opts, err
		}
		opts.TaprootInternalKey = key
	}
	return opts, nil
}

// newPacket builds an empty unsigned packet.
func newPacket() (*psbt.Packet, error) {
	unsigned := wire.NewMsgTx(wire.TxVersion)
	packet, err := psbt.NewFromUnsignedTx(unsigned)
	if err != nil {
		return nil, fmt.Errorf("order: new packet: %w", err)
	}
	return packet, nil
}

// appendOutput adds an output to the packet.
func appendOutput(packet *psbt.Packet, value uint64, pkScript []byte) {
	packet.UnsignedTx.TxOut = append(packet.UnsignedTx.TxOut, &wire.TxOut{
		Value:    int64(value),
		PkScript: pkScript,
	})
	packet.Outputs = append(packet.Outputs, psbt.POutput{})
}

// appendInput adds a coin to the packet as a signable input with the given
// sighash type and optional taproot internal key hint.
func appendInput(packet *psbt.Packet, coin *tx.Coin, sighash txscript.SigHashType, taprootKey []byte) error {
	hash, err := chainhash.NewHashFromStr(coin.TxID)
	if err != nil {
		return fmt.Errorf("order: txid %q: %w", coin.TxID, err)
	}
	packet.UnsignedTx.TxIn = append(packet.UnsignedTx.TxIn, &wire.TxIn{
		PreviousOutPoint: *wire.NewOutPoint(hash, coin.Vout),
		Sequence:         wire.MaxTxInSequenceNum,
	})
	packet.Inputs = append(packet.Inputs, psbt.PInput{
		WitnessUtxo: &wire.TxOut{
			Value:    int64(coin.Value),
			PkScript: coin.PkScript,
		},
		SighashType:        sighash,
		TaprootInternalKey: taprootKey,
	})
	return nil
}

// reserve records the coin against the order in the listing store.
func (b *Builder) reserve(coin *tx.Coin, orderID string) error {
	if b.listings == nil || orderID == "" {
		return nil
	}
	return b.listings.Reserve(coin.OutPoint(), orderID)
}
