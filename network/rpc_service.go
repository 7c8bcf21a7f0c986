package network

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/ordbook/libordbook-go/tx"
)

// Compile-time interface check.
var _ Service = (*RPCClient)(nil)

// btcToSat converts a BTC float64 amount (as returned by the node) to
// satoshis. math.Round avoids floating-point truncation.
func btcToSat(btc float64) uint64 {
	return uint64(math.Round(btc * 1e8))
}

// listUnspentResult maps the JSON fields returned by listunspent.
type listUnspentResult struct {
	TxID          string  `json:"txid"`
	Vout          uint32  `json:"vout"`
	Amount        float64 `json:"amount"`
	ScriptPubKey  string  `json:"scriptPubKey"`
	Address       string  `json:"address"`
	Confirmations int64   `json:"confirmations"`
}

// ListUnspent returns all unspent outputs for the given address. It calls
// `listunspent 0 9999999 ["address"]` and converts BTC amounts to satoshis.
func (c *RPCClient) ListUnspent(ctx context.Context, address string) ([]*UTXO, error) {
	params := []interface{}{0, 9999999, []string{address}}
	var results []listUnspentResult
	if err := c.Call(ctx, "listunspent", params, &results); err != nil {
		return nil, err
	}

	utxos := make([]*UTXO, len(results))
	for i, r := range results {
		utxos[i] = &UTXO{
			TxID:          r.TxID,
			Vout:          r.Vout,
			Value:         btcToSat(r.Amount),
			ScriptPubKey:  r.ScriptPubKey,
			Address:       r.Address,
			Confirmations: r.Confirmations,
		}
	}
	return utxos, nil
}

// lockedOutpoint maps the JSON fields returned by listlockunspent.
type lockedOutpoint struct {
	TxID string `json:"txid"`
	Vout uint32 `json:"vout"`
}

// gettxoutResult maps the JSON fields returned by gettxout. The pointer
// type at the call site distinguishes JSON null (spent) from a result.
type gettxoutResult struct {
	Value         float64 `json:"value"`
	Confirmations int64   `json:"confirmations"`
	ScriptPubKey  struct {
		Hex     string `json:"hex"`
		Address string `json:"address"`
	} `json:"scriptPubKey"`
}

// ListLocked returns the wallet-locked outputs belonging to the address.
// It calls `listlockunspent` and resolves each outpoint with
// `gettxout "txid" vout true` so locked outputs stay visible.
func (c *RPCClient) ListLocked(ctx context.Context, address string) ([]*UTXO, error) {
	var locked []lockedOutpoint
	if err := c.Call(ctx, "listlockunspent", nil, &locked); err != nil {
		return nil, err
	}

	utxos := make([]*UTXO, 0, len(locked))
	for _, lo := range locked {
		var result *gettxoutResult
		if err := c.Call(ctx, "gettxout", []interface{}{lo.TxID, lo.Vout, true}, &result); err != nil {
			return nil, err
		}
		if result == nil {
			// Already spent, the lock is stale.
			continue
		}
		if result.ScriptPubKey.Address != address {
			continue
		}
		utxos = append(utxos, &UTXO{
			TxID:          lo.TxID,
			Vout:          lo.Vout,
			Value:         btcToSat(result.Value),
			ScriptPubKey:  result.ScriptPubKey.Hex,
			Address:       result.ScriptPubKey.Address,
			Confirmations: result.Confirmations,
		})
	}
	return utxos, nil
}

// tokenCoinResult maps the JSON fields returned by the indexer's
// brc20_transferablelist method. Values are already in satoshis.
type tokenCoinResult struct {
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Satoshi       uint64 `json:"satoshi"`
	ScriptPubKey  string `json:"script_pubkey"`
	Address       string `json:"address"`
	Confirmations int64  `json:"confirmations"`
	InscriptionID string `json:"inscription_id"`
	Tick          string `json:"tick"`
	Amount        string `json:"amount"`
	Body          string `json:"body"`
}

// ListTokenCoins returns the outputs carrying transfer inscriptions of the
// given ticker. It calls `brc20_transferablelist "address" "tick"`.
func (c *RPCClient) ListTokenCoins(ctx context.Context, address, tick string) ([]*TokenUTXO, error) {
	params := []interface{}{address, strings.ToLower(tick)}
	var results []tokenCoinResult
	if err := c.Call(ctx, "brc20_transferablelist", params, &results); err != nil {
		return nil, err
	}

	coins := make([]*TokenUTXO, len(results))
	for i, r := range results {
		coins[i] = &TokenUTXO{
			UTXO: UTXO{
				TxID:          r.TxID,
				Vout:          r.Vout,
				Value:         r.Satoshi,
				ScriptPubKey:  r.ScriptPubKey,
				Address:       r.Address,
				Confirmations: r.Confirmations,
			},
			InscriptionID: r.InscriptionID,
			Tick:          r.Tick,
			Amount:        r.Amount,
			Payload:       []byte(r.Body),
		}
	}
	return coins, nil
}

// GetRawTx returns the raw transaction bytes for the given txid. It calls
// `getrawtransaction "txid" false` and decodes the hex result.
func (c *RPCClient) GetRawTx(ctx context.Context, txid string) ([]byte, error) {
	params := []interface{}{txid, false}
	var rawHex string
	if err := c.Call(ctx, "getrawtransaction", params, &rawHex); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTxNotFound, txid, err)
	}
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("%w: decode raw tx: %w", ErrInvalidResponse, err)
	}
	return raw, nil
}

// BroadcastTx submits a raw transaction hex and returns the txid. RPC
// errors are wrapped with ErrBroadcastRejected.
func (c *RPCClient) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	params := []interface{}{rawTxHex}
	var txid string
	if err := c.Call(ctx, "sendrawtransaction", params, &txid); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBroadcastRejected, err)
	}
	return txid, nil
}

// estimateSmartFeeResult maps the JSON fields returned by estimatesmartfee.
type estimateSmartFeeResult struct {
	FeeRate float64  `json:"feerate"`
	Errors  []string `json:"errors"`
	Blocks  int64    `json:"blocks"`
}

// FeeRate returns the recommended fee rate in sat/vB for the confirmation
// target. It calls `estimatesmartfee target` and converts BTC/kvB to
// sat/vB, rounding up. When the node has no estimate the default floor
// rate is returned.
func (c *RPCClient) FeeRate(ctx context.Context, confTarget int) (uint64, error) {
	if confTarget <= 0 {
		confTarget = 1
	}
	var result estimateSmartFeeResult
	if err := c.Call(ctx, "estimatesmartfee", []interface{}{confTarget}, &result); err != nil {
		return 0, err
	}
	if result.FeeRate <= 0 {
		return tx.DefaultFeeRate, nil
	}
	satPerVB := uint64(math.Ceil(result.FeeRate * 1e8 / 1000))
	if satPerVB < tx.DefaultFeeRate {
		satPerVB = tx.DefaultFeeRate
	}
	return satPerVB, nil
}
