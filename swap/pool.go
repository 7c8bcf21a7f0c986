package swap

import "math/big"

// FeeFactor is the basis-point denominator for pool fee rates.
const FeeFactor = 10000

// Reserves is a read-only snapshot of a swap pool. Quote functions never
// mutate it; they return predicted deltas for the caller to preview before
// invoking the remote build endpoint.
type Reserves struct {
	Token1     *big.Int // base-side reserve
	Token2     *big.Int // quote-side reserve
	LPSupply   *big.Int // total LP tokens outstanding
	FeeRateBps int64    // swap fee in basis points, taken from the input side
}

// Clone returns a deep copy of the snapshot.
func (r Reserves) Clone() Reserves {
	return Reserves{
		Token1:     new(big.Int).Set(r.Token1),
		Token2:     new(big.Int).Set(r.Token2),
		LPSupply:   new(big.Int).Set(r.LPSupply),
		FeeRateBps: r.FeeRateBps,
	}
}

// Empty reports whether the pool has no liquidity yet.
func (r Reserves) Empty() bool {
	return r.LPSupply == nil || r.LPSupply.Sign() == 0
}

// validate checks the snapshot fields shared by all quote functions.
func (r Reserves) validate() error {
	if r.Token1 == nil || r.Token2 == nil || r.LPSupply == nil {
		return ErrNilReserves
	}
	if r.Token1.Sign() < 0 || r.Token2.Sign() < 0 || r.LPSupply.Sign() < 0 {
		return ErrNegativeReserves
	}
	if r.FeeRateBps < 0 || r.FeeRateBps >= FeeFactor {
		return ErrInvalidFeeRate
	}
	return nil
}
