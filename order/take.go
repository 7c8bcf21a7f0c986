package order

import (
	"bytes"
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"

	"github.com/ordbook/libordbook-go/tx"
)

// TakeParams describes taking a standing order from a server-provided
// partial transaction.
type TakeParams struct {
	// RawPacket is the server's serialized partial transaction, already
	// carrying the counterparty's signed inputs and outputs.
	RawPacket []byte

	// ExpectedTotal is the locally computed trade total in satoshis. The
	// counterparty payment output must match it exactly.
	ExpectedTotal uint64

	// PaymentOutputIndex is the index of the counterparty payment output
	// within the server packet.
	PaymentOutputIndex int
}

// SellTakeParams extends TakeParams with the token quantity the seller
// delivers when taking a bid.
type SellTakeParams struct {
	TakeParams

	Tick   string
	Amount string
}

// BuildBuyTake completes a buy against a standing ask.
//
// The server packet carries the seller's SINGLE|ANYONECANPAY-signed token
// input and the seller payment output. The builder verifies the payment
// output equals the agreed total, then attaches the buyer's funding input
// and change through the allocator.
func (b *Builder) BuildBuyTake(ctx context.Context, p TakeParams) (*BuildResult, error) {
	packet, err := b.decodeTakePacket(p)
	if err != nil {
		return nil, err
	}

	candidates, err := b.fundingCandidates(ctx)
	if err != nil {
		return nil, err
	}
	changeScript, err := b.session.ChangeScript()
	if err != nil {
		return nil, err
	}
	opts, err := b.allocOptions(txscript.SigHashAll, false)
	if err != nil {
		return nil, err
	}

	alloc, err := tx.AllocateChange(packet, candidates, changeScript, opts)
	if err != nil {
		return nil, err
	}

	return &BuildResult{
		Packet:       packet,
		Fee:          alloc.Fee,
		PaymentValue: alloc.PaymentValue,
		ChangeValue:  alloc.ChangeValue,
	}, nil
}

// BuildSellTake completes a sale against a standing bid.
//
// The server packet carries the bid escrow input and the token delivery
// output. The builder verifies the seller payment output equals the agreed
// total, attaches the seller's inscribed token coin, then funds the miner
// fee through the allocator.
func (b *Builder) BuildSellTake(ctx context.Context, p SellTakeParams) (*BuildResult, error) {
	packet, err := b.decodeTakePacket(p.TakeParams)
	if err != nil {
		return nil, err
	}
	address, err := b.session.FundingAddress()
	if err != nil {
		return nil, err
	}

	coin, err := b.findTokenCoin(ctx, address, p.Tick, p.Amount)
	if err != nil {
		return nil, err
	}
	opts, err := b.allocOptions(txscript.SigHashAll, false)
	if err != nil {
		return nil, err
	}
	if err := appendInput(packet, coin, opts.SighashType, opts.TaprootInternalKey); err != nil {
		return nil, err
	}

	candidates, err := b.fundingCandidates(ctx)
	if err != nil {
		return nil, err
	}
	changeScript, err := b.session.ChangeScript()
	if err != nil {
		return nil, err
	}

	alloc, err := tx.AllocateChange(packet, candidates, changeScript, opts)
	if err != nil {
		return nil, err
	}

	return &BuildResult{
		Packet:       packet,
		Fee:          alloc.Fee,
		PaymentValue: alloc.PaymentValue,
		ChangeValue:  alloc.ChangeValue,
	}, nil
}

// decodeTakePacket parses and validates a server partial transaction. The
// payment output must equal the expected total exactly; the packet is
// rejected rather than silently corrected on mismatch. The input count is
// bounded so the final transaction size stays predictable.
func (b *Builder) decodeTakePacket(p TakeParams) (*psbt.Packet, error) {
	packet, err := psbt.NewFromRawBytes(bytes.NewReader(p.RawPacket), false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPacket, err)
	}

	if len(packet.UnsignedTx.TxIn) >= MaxTakeInputs {
		return nil, fmt.Errorf("%w: %d inputs, cap %d",
			ErrTooManyInputs, len(packet.UnsignedTx.TxIn), MaxTakeInputs)
	}

	if p.PaymentOutputIndex < 0 || p.PaymentOutputIndex >= len(packet.UnsignedTx.TxOut) {
		return nil, fmt.Errorf("%w: payment output index %d out of range",
			ErrAmountMismatch, p.PaymentOutputIndex)
	}
	got := uint64(packet.UnsignedTx.TxOut[p.PaymentOutputIndex].Value)
	if got != p.ExpectedTotal {
		return nil, fmt.Errorf("%w: payment output %d sat, expected %d",
			ErrAmountMismatch, got, p.ExpectedTotal)
	}

	return packet, nil
}
