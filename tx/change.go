package tx

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// AllocateOptions controls a change allocation.
type AllocateOptions struct {
	// FeeRate is the fee rate in sat/vB. Zero selects DefaultFeeRate.
	FeeRate uint64

	// ExtraVBytes budgets additional virtual size beyond the attached
	// inputs and present outputs. Negative disables the budget; zero
	// selects ChangeOutputVBytes for the change output to be added.
	ExtraVBytes int

	// ExtraInputValue is added to the computed change. Builders use it
	// when value enters the transaction through an input the allocator
	// did not attach.
	ExtraInputValue uint64

	// SighashType tags the attached funding input.
	SighashType txscript.SigHashType

	// TaprootInternalKey is the 32-byte x-only key hint attached to the
	// funding input when the funding address is taproot. Required for
	// later witness construction by the wallet.
	TaprootInternalKey []byte

	// EstimateOnly reports the net cost of funding without mutating the
	// partial transaction.
	EstimateOnly bool
}

// Allocation is the realized cost breakdown of a change allocation.
type Allocation struct {
	// Fee is the miner fee in satoshis, including any dust remainder
	// folded into it.
	Fee uint64

	// PaymentValue is the value of the coin attached as the funding
	// input. In estimate mode it is the net cost instead: coin value
	// minus the change that would come back.
	PaymentValue uint64

	// ChangeValue is the value of the appended change output, or zero if
	// the remainder was folded into the fee or estimate mode was used.
	ChangeValue uint64
}

// TotalInput sums the values of all PSBT inputs that carry UTXO information.
func TotalInput(packet *psbt.Packet) uint64 {
	var sum uint64
	for i := range packet.Inputs {
		in := &packet.Inputs[i]
		switch {
		case in.WitnessUtxo != nil:
			sum += uint64(in.WitnessUtxo.Value)
		case in.NonWitnessUtxo != nil:
			idx := packet.UnsignedTx.TxIn[i].PreviousOutPoint.Index
			if int(idx) < len(in.NonWitnessUtxo.TxOut) {
				sum += uint64(in.NonWitnessUtxo.TxOut[idx].Value)
			}
		}
	}
	return sum
}

// TotalOutput sums the values of all outputs of the partial transaction.
func TotalOutput(packet *psbt.Packet) uint64 {
	var sum uint64
	for _, out := range packet.UnsignedTx.TxOut {
		sum += uint64(out.Value)
	}
	return sum
}

// AllocateChange funds a partially built transaction from the candidate coin
// set and settles its fee and change.
//
// The single largest-value candidate is attached as the payment input with
// the requested sighash type. The fee is estimated over all inputs and
// outputs plus the extra vbyte budget, and the remainder is either appended
// as a change output paying changeScript (remainder >= DustThreshold) or
// folded into the fee.
//
// In estimate mode the packet is left untouched and the returned
// PaymentValue is the net cost of funding, so callers can preview total cost
// before committing to a coin.
//
// Candidates must already exclude coins reserved by open listings; the
// caller assembles that set. The computation is local and synchronous.
func AllocateChange(packet *psbt.Packet, candidates []*Coin, changeScript []byte, opts AllocateOptions) (*Allocation, error) {
	if packet == nil || packet.UnsignedTx == nil {
		return nil, ErrNilPacket
	}
	coin := SelectLargest(candidates)
	if coin == nil {
		return nil, ErrInsufficientFunds
	}

	extra := opts.ExtraVBytes
	switch {
	case extra == 0:
		extra = ChangeOutputVBytes
	case extra < 0:
		extra = 0
	}

	kind := ClassifyCoin(coin)
	if len(opts.TaprootInternalKey) > 0 {
		kind = InputTaproot
	}
	vbytes := EstimateVBytes(packet, extra) + InputVBytes(kind)
	fee := EstimateFee(vbytes, opts.FeeRate)

	totalIn := TotalInput(packet) + coin.Value
	totalOut := TotalOutput(packet)

	change := int64(totalIn) - int64(totalOut) - int64(fee) + int64(opts.ExtraInputValue)
	if change < 0 {
		return nil, fmt.Errorf("%w: short %d sat", ErrInsufficientBalance, -change)
	}

	if opts.EstimateOnly {
		return &Allocation{
			Fee:          fee,
			PaymentValue: coin.Value - uint64(change),
			ChangeValue:  0,
		}, nil
	}

	if err := attachInput(packet, coin, opts); err != nil {
		return nil, err
	}

	if uint64(change) >= DustThreshold {
		if len(changeScript) == 0 {
			return nil, ErrMissingChangeScript
		}
		packet.UnsignedTx.TxOut = append(packet.UnsignedTx.TxOut, &wire.TxOut{
			Value:    change,
			PkScript: changeScript,
		})
		packet.Outputs = append(packet.Outputs, psbt.POutput{})
	} else {
		// Dust remainder is paid to miners instead of creating an
		// uneconomical output.
		fee += uint64(change)
		change = 0
	}

	return &Allocation{
		Fee:          fee,
		PaymentValue: coin.Value,
		ChangeValue:  uint64(change),
	}, nil
}

// attachInput appends the coin to the packet as a signable input.
func attachInput(packet *psbt.Packet, coin *Coin, opts AllocateOptions) error {
	hash, err := chainhash.NewHashFromStr(coin.TxID)
	if err != nil {
		return fmt.Errorf("%w: txid %q: %w", ErrInvalidCoin, coin.TxID, err)
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
		SighashType:        opts.SighashType,
		TaprootInternalKey: opts.TaprootInternalKey,
	})
	return nil
}
