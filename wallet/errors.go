package wallet

import "errors"

var (
	// ErrNoWalletConnected indicates no funding address is available.
	ErrNoWalletConnected = errors.New("wallet: no wallet connected")

	// ErrNoProvider indicates a nil wallet provider.
	ErrNoProvider = errors.New("wallet: no provider")

	// ErrInvalidAddress indicates the address failed to decode for the
	// configured network.
	ErrInvalidAddress = errors.New("wallet: invalid address")

	// ErrInvalidPubKey indicates a malformed compressed public key.
	ErrInvalidPubKey = errors.New("wallet: invalid public key")

	// ErrUnsupportedVendor indicates an unrecognized wallet vendor name.
	ErrUnsupportedVendor = errors.New("wallet: unsupported vendor")
)
