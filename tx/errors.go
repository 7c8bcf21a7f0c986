package tx

import "errors"

var (
	// ErrInsufficientFunds indicates no eligible coin was found to fund
	// the transaction.
	ErrInsufficientFunds = errors.New("tx: insufficient funds")

	// ErrInsufficientBalance indicates the computed change would be
	// negative after the fee.
	ErrInsufficientBalance = errors.New("tx: insufficient balance to cover outputs and fee")

	// ErrNilPacket indicates a required partial transaction is nil.
	ErrNilPacket = errors.New("tx: partial transaction is nil")

	// ErrInvalidCoin indicates a coin carries a malformed transaction ID
	// or locking script.
	ErrInvalidCoin = errors.New("tx: invalid coin")

	// ErrMissingChangeScript indicates no change script was supplied for
	// a non-estimate allocation.
	ErrMissingChangeScript = errors.New("tx: missing change script")
)
