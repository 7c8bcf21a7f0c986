package order

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/txscript"

	"github.com/ordbook/libordbook-go/tx"
)

// ClaimParams describes a claim: two fixed-purpose fee payments, one for
// inscribing the transfer and one for delivering it.
type ClaimParams struct {
	// InscribeFee and InscribeScript pay the inscription service.
	InscribeFee    uint64
	InscribeScript []byte

	// SendFee and SendScript pay the delivery fee.
	SendFee    uint64
	SendScript []byte
}

// BuildClaim builds the claim payment transaction: both fee outputs funded
// through the change allocator.
func (b *Builder) BuildClaim(ctx context.Context, p ClaimParams) (*BuildResult, error) {
	if p.InscribeFee < tx.MinOutputValue {
		return nil, fmt.Errorf("%w: inscribe fee %d below %d", ErrDustOutput, p.InscribeFee, tx.MinOutputValue)
	}
	if p.SendFee < tx.MinOutputValue {
		return nil, fmt.Errorf("%w: send fee %d below %d", ErrDustOutput, p.SendFee, tx.MinOutputValue)
	}

	packet, err := newPacket()
	if err != nil {
		return nil, err
	}
	appendOutput(packet, p.InscribeFee, p.InscribeScript)
	appendOutput(packet, p.SendFee, p.SendScript)

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
