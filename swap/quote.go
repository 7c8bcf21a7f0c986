package swap

import "math/big"

// Direction identifies which side of the pool a swap consumes.
type Direction int

const (
	// Forward swaps token1 for token2.
	Forward Direction = iota
	// Backward swaps token2 for token1.
	Backward
)

var (
	feeFactor = big.NewInt(FeeFactor)
	one       = big.NewInt(1)
	hundred   = big.NewInt(100)
)

// QuoteAddLiquidity quotes a proportional deposit driven by the token1 side.
//
// For a non-empty pool, lpMinted = amount1 * lpSupply / reserve1 and
// token2Required = amount1 * reserve2 / reserve1. For an empty pool the
// deposit bootstraps the pool: lpMinted = amount1 and no token2 is required
// beyond what the caller chooses to seed.
func QuoteAddLiquidity(amount1 *big.Int, r Reserves) (lpMinted, token2Required *big.Int, err error) {
	if err := r.validate(); err != nil {
		return nil, nil, err
	}
	if amount1 == nil || amount1.Sign() <= 0 {
		return nil, nil, ErrNonPositiveAmount
	}

	if r.Empty() {
		return new(big.Int).Set(amount1), big.NewInt(0), nil
	}
	if r.Token1.Sign() == 0 {
		return nil, nil, ErrInsufficientLiquidity
	}

	lpMinted = new(big.Int).Mul(amount1, r.LPSupply)
	lpMinted.Div(lpMinted, r.Token1)

	token2Required = new(big.Int).Mul(amount1, r.Token2)
	token2Required.Div(token2Required, r.Token1)

	return lpMinted, token2Required, nil
}

// QuoteAddLiquidityByToken2 is the symmetric inverse of QuoteAddLiquidity,
// driven by the token2 side.
func QuoteAddLiquidityByToken2(amount2 *big.Int, r Reserves) (lpMinted, token1Required *big.Int, err error) {
	if err := r.validate(); err != nil {
		return nil, nil, err
	}
	if amount2 == nil || amount2.Sign() <= 0 {
		return nil, nil, ErrNonPositiveAmount
	}

	if r.Empty() {
		return new(big.Int).Set(amount2), big.NewInt(0), nil
	}
	if r.Token2.Sign() == 0 {
		return nil, nil, ErrInsufficientLiquidity
	}

	lpMinted = new(big.Int).Mul(amount2, r.LPSupply)
	lpMinted.Div(lpMinted, r.Token2)

	token1Required = new(big.Int).Mul(amount2, r.Token1)
	token1Required.Div(token1Required, r.Token2)

	return lpMinted, token1Required, nil
}

// QuoteRemoveLiquidity quotes a proportional withdrawal for burning lpAmount
// LP tokens: tokenNOut = lpAmount * reserveN / lpSupply.
func QuoteRemoveLiquidity(lpAmount *big.Int, r Reserves) (token1Out, token2Out *big.Int, err error) {
	if err := r.validate(); err != nil {
		return nil, nil, err
	}
	if lpAmount == nil || lpAmount.Sign() <= 0 {
		return nil, nil, ErrNonPositiveAmount
	}
	if r.Empty() {
		return nil, nil, ErrEmptyPool
	}
	if lpAmount.Cmp(r.LPSupply) > 0 {
		return nil, nil, ErrInsufficientLiquidity
	}

	token1Out = new(big.Int).Mul(lpAmount, r.Token1)
	token1Out.Div(token1Out, r.LPSupply)

	token2Out = new(big.Int).Mul(lpAmount, r.Token2)
	token2Out.Div(token2Out, r.LPSupply)

	return token1Out, token2Out, nil
}

// QuoteSwapForward quotes swapping amountIn of token1 for token2. The fee is
// deducted from the input before the constant-product division:
//
//	amountOut = amountIn*(feeFactor-feeBps)*reserve2 / ((reserve1+amountIn)*feeFactor)
func QuoteSwapForward(amountIn *big.Int, r Reserves) (*big.Int, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	return amountOut(amountIn, r.Token1, r.Token2, r.FeeRateBps)
}

// QuoteSwapForwardByOutput is the algebraic inverse of QuoteSwapForward: the
// token1 input required to receive amountOut of token2.
func QuoteSwapForwardByOutput(out *big.Int, r Reserves) (*big.Int, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	return amountIn(out, r.Token1, r.Token2, r.FeeRateBps)
}

// QuoteSwapBackward quotes swapping amountIn of token2 for token1.
func QuoteSwapBackward(in *big.Int, r Reserves) (*big.Int, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	return amountOut(in, r.Token2, r.Token1, r.FeeRateBps)
}

// QuoteSwapBackwardByOutput is the inverse of QuoteSwapBackward: the token2
// input required to receive out of token1.
func QuoteSwapBackwardByOutput(out *big.Int, r Reserves) (*big.Int, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	return amountIn(out, r.Token2, r.Token1, r.FeeRateBps)
}

// amountOut applies the fee-on-input constant-product formula. Rounds down,
// in the pool's favor.
func amountOut(in, reserveIn, reserveOut *big.Int, feeBps int64) (*big.Int, error) {
	if in == nil || in.Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, ErrEmptyPool
	}

	inWithFee := new(big.Int).Mul(in, big.NewInt(FeeFactor-feeBps))
	num := new(big.Int).Mul(inWithFee, reserveOut)
	den := new(big.Int).Add(reserveIn, in)
	den.Mul(den, feeFactor)
	return num.Div(num, den), nil
}

// amountIn solves the fee-on-input formula for the input:
//
//	amountIn = reserveIn*out*feeFactor / (reserveOut*(feeFactor-feeBps) - out*feeFactor)
//
// Rounds up so the quoted input always buys at least the requested output.
func amountIn(out, reserveIn, reserveOut *big.Int, feeBps int64) (*big.Int, error) {
	if out == nil || out.Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, ErrEmptyPool
	}

	num := new(big.Int).Mul(reserveIn, out)
	num.Mul(num, feeFactor)
	den := new(big.Int).Mul(reserveOut, big.NewInt(FeeFactor-feeBps))
	den.Sub(den, new(big.Int).Mul(out, feeFactor))
	// No finite input reaches outputs at or beyond reserveOut*(1-fee).
	if den.Sign() <= 0 {
		return nil, ErrInsufficientLiquidity
	}
	num.Div(num, den)
	return num.Add(num, one), nil
}

// PriceImpact compares the pre-trade and post-trade marginal prices for a
// proposed trade of originAmount in for aimAmount out, and returns the
// percentage slippage of both price directions: token2-per-token1 first,
// token1-per-token2 second.
func PriceImpact(originAmount, aimAmount *big.Int, r Reserves, dir Direction) (*big.Rat, *big.Rat, error) {
	if err := r.validate(); err != nil {
		return nil, nil, err
	}
	if originAmount == nil || originAmount.Sign() <= 0 || aimAmount == nil || aimAmount.Sign() <= 0 {
		return nil, nil, ErrNonPositiveAmount
	}
	if r.Token1.Sign() == 0 || r.Token2.Sign() == 0 {
		return nil, nil, ErrEmptyPool
	}

	post := r.Clone()
	switch dir {
	case Forward:
		if aimAmount.Cmp(r.Token2) >= 0 {
			return nil, nil, ErrInsufficientLiquidity
		}
		post.Token1.Add(post.Token1, originAmount)
		post.Token2.Sub(post.Token2, aimAmount)
	default:
		if aimAmount.Cmp(r.Token1) >= 0 {
			return nil, nil, ErrInsufficientLiquidity
		}
		post.Token2.Add(post.Token2, originAmount)
		post.Token1.Sub(post.Token1, aimAmount)
	}

	// Marginal price of token1 in token2 units, before and after.
	pre21 := new(big.Rat).SetFrac(r.Token2, r.Token1)
	post21 := new(big.Rat).SetFrac(post.Token2, post.Token1)
	impact21 := relativeChangePct(pre21, post21)

	pre12 := new(big.Rat).SetFrac(r.Token1, r.Token2)
	post12 := new(big.Rat).SetFrac(post.Token1, post.Token2)
	impact12 := relativeChangePct(pre12, post12)

	return impact21, impact12, nil
}

// relativeChangePct returns |post-pre| / pre * 100.
func relativeChangePct(pre, post *big.Rat) *big.Rat {
	diff := new(big.Rat).Sub(post, pre)
	diff.Abs(diff)
	diff.Quo(diff, pre)
	return diff.Mul(diff, new(big.Rat).SetInt(hundred))
}
