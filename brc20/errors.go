package brc20

import "errors"

var (
	// ErrEmptyPayload indicates the inscription payload is empty.
	ErrEmptyPayload = errors.New("brc20: empty payload")

	// ErrInvalidPayload indicates the payload is not valid JSON.
	ErrInvalidPayload = errors.New("brc20: invalid payload")

	// ErrNotBRC20 indicates the payload does not carry the brc-20
	// protocol tag.
	ErrNotBRC20 = errors.New("brc20: not a BRC20 inscription")

	// ErrUnknownOperation indicates an unrecognized operation name.
	ErrUnknownOperation = errors.New("brc20: unknown operation")

	// ErrInvalidTicker indicates the ticker length is out of range.
	ErrInvalidTicker = errors.New("brc20: invalid ticker")

	// ErrInvalidAmount indicates the amount string is malformed.
	ErrInvalidAmount = errors.New("brc20: invalid amount")
)
