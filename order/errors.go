package order

import "errors"

var (
	// ErrDustOutput indicates a requested output value below the minimum
	// output floor.
	ErrDustOutput = errors.New("order: output below minimum value")

	// ErrAmountMismatch indicates a server-supplied partial transaction
	// disagrees with the locally expected total.
	ErrAmountMismatch = errors.New("order: amount mismatch")

	// ErrTooManyInputs indicates the partial transaction exceeds the
	// input count bound.
	ErrTooManyInputs = errors.New("order: too many inputs")

	// ErrNoTokenCoin indicates no inscribed token coin matches the
	// requested quantity.
	ErrNoTokenCoin = errors.New("order: no matching token coin")

	// ErrInvalidEscrowKey indicates a malformed escrow public key.
	ErrInvalidEscrowKey = errors.New("order: invalid escrow public key")

	// ErrInvalidPacket indicates the server partial transaction failed to
	// decode.
	ErrInvalidPacket = errors.New("order: invalid partial transaction")
)
