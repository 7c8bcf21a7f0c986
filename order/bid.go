package order

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/ordbook/libordbook-go/network"
	"github.com/ordbook/libordbook-go/tx"
)

// BidParams describes a bid: lock Total satoshis in a 2-of-2 escrow shared
// with the platform until the order settles.
type BidParams struct {
	OrderID string

	// BuyerPubKey and PlatformPubKey are the 33-byte compressed keys of
	// the escrow parties.
	BuyerPubKey    []byte
	PlatformPubKey []byte

	// Total is the escrow value in satoshis.
	Total uint64
}

// BuildBid builds the buyer's escrow funding transaction.
//
// The escrow output is a P2WSH wrapping a 2-of-2 multisig of the buyer and
// platform keys. Before funding through the change allocator, the builder
// looks for a previously locked coin whose value falls inside the exact
// reuse window above the required total; such a coin is spent directly,
// avoiding a second on-chain funding transaction. The funding coin is
// reserved under OrderID either way.
func (b *Builder) BuildBid(ctx context.Context, p BidParams) (*BuildResult, error) {
	if p.Total < tx.MinOutputValue {
		return nil, fmt.Errorf("%w: total %d below %d", ErrDustOutput, p.Total, tx.MinOutputValue)
	}
	address, err := b.session.FundingAddress()
	if err != nil {
		return nil, err
	}

	escrowScript, err := EscrowScript(p.BuyerPubKey, p.PlatformPubKey, b.session.Params())
	if err != nil {
		return nil, err
	}

	packet, err := newPacket()
	if err != nil {
		return nil, err
	}
	appendOutput(packet, p.Total, escrowScript)

	opts, err := b.allocOptions(txscript.SigHashAll, false)
	if err != nil {
		return nil, err
	}

	// Exact reuse path: a coin already locked for this user whose value
	// covers total+fee within the reuse window is spent as-is, with the
	// surplus going to the miner.
	kind := tx.InputWitness
	if len(opts.TaprootInternalKey) > 0 {
		kind = tx.InputTaproot
	}
	vbytes := tx.EstimateVBytes(packet, 0) + tx.InputVBytes(kind)
	required := p.Total + tx.EstimateFee(vbytes, b.feeRate)

	if exact, err := b.exactLockedCoin(ctx, address, required); err != nil {
		return nil, err
	} else if exact != nil {
		if err := appendInput(packet, exact, opts.SighashType, opts.TaprootInternalKey); err != nil {
			return nil, err
		}
		if err := b.reserve(exact, p.OrderID); err != nil {
			return nil, err
		}
		return &BuildResult{
			Packet:       packet,
			Fee:          exact.Value - p.Total,
			PaymentValue: exact.Value,
		}, nil
	}

	candidates, err := b.fundingCandidates(ctx)
	if err != nil {
		return nil, err
	}
	changeScript, err := b.session.ChangeScript()
	if err != nil {
		return nil, err
	}
	// The allocator picks the largest candidate; reserve that same coin.
	funding := tx.SelectLargest(candidates)

	alloc, err := tx.AllocateChange(packet, candidates, changeScript, opts)
	if err != nil {
		return nil, err
	}

	if err := b.reserve(funding, p.OrderID); err != nil {
		return nil, err
	}

	return &BuildResult{
		Packet:       packet,
		Fee:          alloc.Fee,
		PaymentValue: alloc.PaymentValue,
		ChangeValue:  alloc.ChangeValue,
	}, nil
}

// exactLockedCoin scans the wallet's locked coins for one inside the reuse
// window above required.
func (b *Builder) exactLockedCoin(ctx context.Context, address string, required uint64) (*tx.Coin, error) {
	locked, err := b.svc.ListLocked(ctx, address)
	if err != nil {
		return nil, err
	}
	coins, err := network.ToCoins(locked)
	if err != nil {
		return nil, err
	}
	return tx.ExactCoin(coins, required), nil
}

// EscrowScript returns the P2WSH locking script for a 2-of-2 multisig of
// the given compressed public keys.
func EscrowScript(buyerPubKey, platformPubKey []byte, params *chaincfg.Params) ([]byte, error) {
	var addrs []*btcutil.AddressPubKey
	for _, key := range [][]byte{buyerPubKey, platformPubKey} {
		addr, err := btcutil.NewAddressPubKey(key, params)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEscrowKey, err)
		}
		addrs = append(addrs, addr)
	}

	redeem, err := txscript.MultiSigScript(addrs, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEscrowKey, err)
	}

	program := sha256.Sum256(redeem)
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(program[:]).
		Script()
}
