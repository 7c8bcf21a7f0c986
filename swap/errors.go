package swap

import "errors"

var (
	// ErrNilReserves indicates a reserve snapshot field is nil.
	ErrNilReserves = errors.New("swap: nil reserve snapshot field")

	// ErrNegativeReserves indicates a reserve or LP supply is negative.
	ErrNegativeReserves = errors.New("swap: negative reserve")

	// ErrInvalidFeeRate indicates the fee rate is outside [0, 10000).
	ErrInvalidFeeRate = errors.New("swap: invalid fee rate")

	// ErrNonPositiveAmount indicates a quote amount is zero or negative.
	ErrNonPositiveAmount = errors.New("swap: amount must be positive")

	// ErrEmptyPool indicates the operation requires existing liquidity.
	ErrEmptyPool = errors.New("swap: pool has no liquidity")

	// ErrInsufficientLiquidity indicates the pool cannot satisfy the
	// requested output or LP burn.
	ErrInsufficientLiquidity = errors.New("swap: insufficient liquidity")
)
