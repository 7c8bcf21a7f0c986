package tx

import "fmt"

// Coin represents a spendable transaction output observed on chain.
// Coins are immutable once observed; a builder that attaches a coin as an
// input owns it for the remainder of that build attempt.
type Coin struct {
	TxID      string `json:"txid"`
	Vout      uint32 `json:"vout"`
	Value     uint64 `json:"value"` // satoshis
	PkScript  []byte `json:"pk_script"`
	Address   string `json:"address"`
	Confirmed bool   `json:"confirmed"`
}

// OutPoint returns the "txid:vout" key identifying this coin.
func (c *Coin) OutPoint() string {
	return fmt.Sprintf("%s:%d", c.TxID, c.Vout)
}

// SumCoins returns the total value of the given coins in satoshis.
func SumCoins(coins []*Coin) uint64 {
	var sum uint64
	for _, c := range coins {
		sum += c.Value
	}
	return sum
}

// SelectLargest returns the single largest-value coin, or nil if coins is
// empty. Selection is greedy on value, not least-waste: the server-side
// counterpart assumes this exact behavior, so it must not be "improved".
func SelectLargest(coins []*Coin) *Coin {
	var best *Coin
	for _, c := range coins {
		if best == nil || c.Value > best.Value {
			best = c
		}
	}
	return best
}

// ExactReuseWindow is the value tolerance, in satoshis, within which an
// already-locked coin may be reused directly as an exact-value input instead
// of spawning a secondary funding transaction.
const ExactReuseWindow = uint64(1000)

// ExactCoin returns the first coin whose value falls within
// [required, required+ExactReuseWindow], or nil if none qualifies.
func ExactCoin(coins []*Coin, required uint64) *Coin {
	for _, c := range coins {
		if c.Value >= required && c.Value <= required+ExactReuseWindow {
			return c
		}
	}
	return nil
}
