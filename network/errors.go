package network

import "errors"

var (
	// ErrConnectionFailed indicates the client could not reach the indexer.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrTxNotFound indicates the requested transaction does not exist.
	ErrTxNotFound = errors.New("network: transaction not found")

	// ErrBroadcastRejected indicates the node rejected the broadcast transaction.
	ErrBroadcastRejected = errors.New("network: broadcast rejected")

	// ErrInvalidResponse indicates a malformed or unexpected indexer response.
	ErrInvalidResponse = errors.New("network: invalid response")
)
