package swap

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReserves() Reserves {
	return Reserves{
		Token1:     big.NewInt(1_000_000),
		Token2:     big.NewInt(50_000_000),
		LPSupply:   big.NewInt(7_000_000),
		FeeRateBps: 30,
	}
}

func TestQuoteSwapForward_ReferenceScenario(t *testing.T) {
	// floor(10_000 * 9970 * 50_000_000 / (1_010_000 * 10_000))
	out, err := QuoteSwapForward(big.NewInt(10_000), testReserves())
	require.NoError(t, err)
	assert.Equal(t, int64(493_564), out.Int64())
}

func TestQuoteSwapForward_RoundTrip(t *testing.T) {
	r := testReserves()
	for _, in := range []int64{100, 10_000, 123_457, 999_999} {
		out, err := QuoteSwapForward(big.NewInt(in), r)
		require.NoError(t, err)

		back, err := QuoteSwapForwardByOutput(out, r)
		require.NoError(t, err)

		diff := new(big.Int).Sub(back, big.NewInt(in))
		diff.Abs(diff)
		assert.LessOrEqual(t, diff.Int64(), int64(1), "round trip for input %d", in)

		// The quoted input must buy at least the requested output.
		out2, err := QuoteSwapForward(back, r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, out2.Int64(), out.Int64())
	}
}

func TestQuoteSwap_ConstantProductInvariant(t *testing.T) {
	r := testReserves()
	k := new(big.Int).Mul(r.Token1, r.Token2)

	for _, in := range []int64{1, 537, 10_000, 500_000, 5_000_000} {
		out, err := QuoteSwapForward(big.NewInt(in), r)
		require.NoError(t, err)

		newIn := new(big.Int).Add(r.Token1, big.NewInt(in))
		newOut := new(big.Int).Sub(r.Token2, out)
		newK := new(big.Int).Mul(newIn, newOut)

		// Fee accrual means the product never shrinks.
		assert.GreaterOrEqual(t, newK.Cmp(k), 0, "input %d", in)
	}
}

func TestQuoteSwapBackward(t *testing.T) {
	r := testReserves()

	// Backward is forward with the reserves swapped.
	swapped := Reserves{
		Token1:     r.Token2,
		Token2:     r.Token1,
		LPSupply:   r.LPSupply,
		FeeRateBps: r.FeeRateBps,
	}

	in := big.NewInt(250_000)
	got, err := QuoteSwapBackward(in, r)
	require.NoError(t, err)
	want, err := QuoteSwapForward(in, swapped)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	back, err := QuoteSwapBackwardByOutput(got, r)
	require.NoError(t, err)
	diff := new(big.Int).Sub(back, in)
	diff.Abs(diff)
	assert.LessOrEqual(t, diff.Int64(), int64(1))
}

func TestQuoteAddLiquidity(t *testing.T) {
	r := testReserves()

	lp, token2, err := QuoteAddLiquidity(big.NewInt(100_000), r)
	require.NoError(t, err)
	// 100_000 * 7_000_000 / 1_000_000
	assert.Equal(t, int64(700_000), lp.Int64())
	// 100_000 * 50_000_000 / 1_000_000
	assert.Equal(t, int64(5_000_000), token2.Int64())
}

func TestQuoteAddLiquidity_Bootstrap(t *testing.T) {
	r := Reserves{
		Token1:     big.NewInt(0),
		Token2:     big.NewInt(0),
		LPSupply:   big.NewInt(0),
		FeeRateBps: 30,
	}

	lp, token2, err := QuoteAddLiquidity(big.NewInt(42_000), r)
	require.NoError(t, err)
	assert.Equal(t, int64(42_000), lp.Int64(), "bootstrap mints LP equal to the deposit")
	assert.Zero(t, token2.Sign())
}

func TestQuoteAddLiquidityByToken2(t *testing.T) {
	r := testReserves()

	lp, token1, err := QuoteAddLiquidityByToken2(big.NewInt(5_000_000), r)
	require.NoError(t, err)
	assert.Equal(t, int64(700_000), lp.Int64())
	assert.Equal(t, int64(100_000), token1.Int64())
}

func TestQuoteRemoveLiquidity(t *testing.T) {
	r := testReserves()

	out1, out2, err := QuoteRemoveLiquidity(big.NewInt(700_000), r)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), out1.Int64())
	assert.Equal(t, int64(5_000_000), out2.Int64())

	_, _, err = QuoteRemoveLiquidity(big.NewInt(8_000_000), r)
	assert.ErrorIs(t, err, ErrInsufficientLiquidity)

	empty := Reserves{Token1: big.NewInt(0), Token2: big.NewInt(0), LPSupply: big.NewInt(0)}
	_, _, err = QuoteRemoveLiquidity(big.NewInt(1), empty)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestAddRemoveLiquidity_RoundTrip(t *testing.T) {
	r := testReserves()

	amount1 := big.NewInt(250_000)
	lp, token2, err := QuoteAddLiquidity(amount1, r)
	require.NoError(t, err)

	// Apply the deposit, then quote removing the minted LP.
	post := r.Clone()
	post.Token1.Add(post.Token1, amount1)
	post.Token2.Add(post.Token2, token2)
	post.LPSupply.Add(post.LPSupply, lp)

	out1, out2, err := QuoteRemoveLiquidity(lp, post)
	require.NoError(t, err)

	// Withdrawal never exceeds the deposit; rounding always favors the pool.
	assert.LessOrEqual(t, out1.Cmp(amount1), 0)
	assert.LessOrEqual(t, out2.Cmp(token2), 0)
}

func TestPriceImpact(t *testing.T) {
	r := testReserves()

	in := big.NewInt(10_000)
	out, err := QuoteSwapForward(in, r)
	require.NoError(t, err)

	impact21, impact12, err := PriceImpact(in, out, r, Forward)
	require.NoError(t, err)

	// Buying token2 moves both marginal prices against the buyer.
	assert.Positive(t, impact21.Sign())
	assert.Positive(t, impact12.Sign())

	// A ~1% trade against the pool moves the price by roughly 2%.
	lo := new(big.Rat).SetFrac64(1, 1)
	hi := new(big.Rat).SetFrac64(3, 1)
	assert.Positive(t, impact21.Cmp(lo))
	assert.Negative(t, impact21.Cmp(hi))
}

func TestQuotes_InputValidation(t *testing.T) {
	r := testReserves()

	_, err := QuoteSwapForward(big.NewInt(0), r)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = QuoteSwapForwardByOutput(big.NewInt(50_000_000), r)
	assert.ErrorIs(t, err, ErrInsufficientLiquidity)

	_, _, err = QuoteAddLiquidity(big.NewInt(-5), r)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	bad := r
	bad.FeeRateBps = FeeFactor
	_, err = QuoteSwapForward(big.NewInt(1), bad)
	assert.ErrorIs(t, err, ErrInvalidFeeRate)

	_, err = QuoteSwapForward(big.NewInt(1), Reserves{})
	assert.ErrorIs(t, err, ErrNilReserves)
}
