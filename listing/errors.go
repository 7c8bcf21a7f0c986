package listing

import "errors"

var (
	// ErrEmptyOutpoint indicates an empty outpoint key.
	ErrEmptyOutpoint = errors.New("listing: empty outpoint")

	// ErrAlreadyReserved indicates the outpoint is locked by another order.
	ErrAlreadyReserved = errors.New("listing: outpoint already reserved")
)
