package network

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/ordbook/libordbook-go/tx"
)

// Service is the coin source behind the order builders. It is backed by
// an indexer node that tracks plain UTXOs, wallet-locked outputs, and
// inscription-bearing token outputs per address.
type Service interface {
	// ListUnspent returns the spendable plain outputs for the address.
	ListUnspent(ctx context.Context, address string) ([]*UTXO, error)

	// ListLocked returns the outputs the wallet has locked for pending
	// orders. Locked outputs are excluded from funding selection but may
	// be reattached to the order that locked them.
	ListLocked(ctx context.Context, address string) ([]*UTXO, error)

	// ListTokenCoins returns the outputs carrying transfer inscriptions
	// of the given ticker for the address.
	ListTokenCoins(ctx context.Context, address, tick string) ([]*TokenUTXO, error)

	// GetRawTx returns the raw transaction bytes for the given txid.
	GetRawTx(ctx context.Context, txid string) ([]byte, error)

	// BroadcastTx submits a raw transaction hex and returns the txid.
	BroadcastTx(ctx context.Context, rawTxHex string) (string, error)

	// FeeRate returns the recommended fee rate in sat/vB for the given
	// confirmation target.
	FeeRate(ctx context.Context, confTarget int) (uint64, error)
}

// UTXO represents an unspent transaction output as reported by the indexer.
type UTXO struct {
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Value         uint64 `json:"value"`
	ScriptPubKey  string `json:"script_pubkey"`
	Address       string `json:"address"`
	Confirmations int64  `json:"confirmations"`
}

// TokenUTXO is an output carrying a token transfer inscription.
type TokenUTXO struct {
	UTXO
	InscriptionID string `json:"inscription_id"`
	Tick          string `json:"tick"`
	Amount        string `json:"amount"`
	Payload       []byte `json:"payload"`
}

// OutPoint returns the canonical "txid:vout" key for the output.
func (u *UTXO) OutPoint() string {
	return fmt.Sprintf("%s:%d", u.TxID, u.Vout)
}

// ToCoin converts the output into a selectable coin.
func (u *UTXO) ToCoin() (*tx.Coin, error) {
	script, err := hex.DecodeString(u.ScriptPubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: script for %s: %w", ErrInvalidResponse, u.OutPoint(), err)
	}
	return &tx.Coin{
		TxID:      u.TxID,
		Vout:      u.Vout,
		Value:     u.Value,
		PkScript:  script,
		Address:   u.Address,
		Confirmed: u.Confirmations > 0,
	}, nil
}

// ToCoins converts a batch of outputs, dropping none. A single bad script
// fails the whole batch.
func ToCoins(utxos []*UTXO) ([]*tx.Coin, error) {
	coins := make([]*tx.Coin, len(utxos))
	for i, u := range utxos {
		c, err := u.ToCoin()
		if err != nil {
			return nil, err
		}
		coins[i] = c
	}
	return coins, nil
}
