package order

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/txscript"

	"github.com/ordbook/libordbook-go/brc20"
	"github.com/ordbook/libordbook-go/tx"
)

// AskParams describes a limit ask: sell Amount of Tick for Price satoshis.
type AskParams struct {
	OrderID string
	Tick    string
	Amount  string
	Price   uint64
}

// BuildAsk builds the seller's half of a limit ask.
//
// The packet has exactly one input, the inscribed token coin matching the
// requested quantity, signed later with SINGLE|ANYONECANPAY so a taker can
// combine it with their own funding, and one output paying Price back to
// the seller. No change allocation is performed and the builder commits no
// fee; the taker pays for the combined transaction.
//
// The token coin is reserved in the listing store under OrderID so it is
// not picked up as funding for other orders.
func (b *Builder) BuildAsk(ctx context.Context, p AskParams) (*BuildResult, error) {
	if p.Price < tx.MinOutputValue {
		return nil, fmt.Errorf("%w: price %d below %d", ErrDustOutput, p.Price, tx.MinOutputValue)
	}
	address, err := b.session.FundingAddress()
	if err != nil {
		return nil, err
	}

	coin, err := b.findTokenCoin(ctx, address, p.Tick, p.Amount)
	if err != nil {
		return nil, err
	}

	sellerScript, err := b.session.ChangeScript()
	if err != nil {
		return nil, err
	}

	packet, err := newPacket()
	if err != nil {
		return nil, err
	}
	opts, err := b.allocOptions(txscript.SigHashSingle|txscript.SigHashAnyOneCanPay, false)
	if err != nil {
		return nil, err
	}
	if err := appendInput(packet, coin, opts.SighashType, opts.TaprootInternalKey); err != nil {
		return nil, err
	}
	appendOutput(packet, p.Price, sellerScript)

	if err := b.reserve(coin, p.OrderID); err != nil {
		return nil, err
	}

	return &BuildResult{
		Packet:       packet,
		PaymentValue: coin.Value,
	}, nil
}

// findTokenCoin locates an inscribed transfer coin for the exact requested
// quantity. Candidate payloads are parsed and matched rather than trusting
// the indexer's summary fields.
func (b *Builder) findTokenCoin(ctx context.Context, address, tick, amount string) (*tx.Coin, error) {
	tokens, err := b.svc.ListTokenCoins(ctx, address, tick)
	if err != nil {
		return nil, err
	}
	for _, tc := range tokens {
		ins, err := brc20.Parse(tc.Payload)
		if err != nil {
			continue
		}
		if !ins.MatchesTransfer(tick, amount) {
			continue
		}
		coin, err := tc.ToCoin()
		if err != nil {
			return nil, err
		}
		return coin, nil
	}
	return nil, fmt.Errorf("%w: %s %s for %s", ErrNoTokenCoin, amount, tick, address)
}
