// Package brc20 parses and validates BRC20 inscription payloads.
//
// A BRC20 operation is a JSON object inscribed on a satoshi, e.g.
//
//	{"p":"brc-20","op":"transfer","tick":"ordi","amt":"100"}
//
// Order builders use this package to locate transferable token coins whose
// inscribed amount matches a requested quantity.
package brc20

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Protocol is the protocol tag every BRC20 inscription carries.
const Protocol = "brc-20"

// MaxDecimals is the maximum fractional precision of a BRC20 amount.
const MaxDecimals = 18

// Operation names.
const (
	OpDeploy   = "deploy"
	OpMint     = "mint"
	OpTransfer = "transfer"
)

// Inscription is a decoded BRC20 operation payload.
type Inscription struct {
	Protocol  string `json:"p"`
	Operation string `json:"op"`
	Ticker    string `json:"tick"`
	Amount    string `json:"amt,omitempty"`
	Max       string `json:"max,omitempty"`
	Limit     string `json:"lim,omitempty"`
}

// Parse decodes and validates a BRC20 inscription payload.
func Parse(data []byte) (*Inscription, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	var ins Inscription
	if err := json.Unmarshal(data, &ins); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if !strings.EqualFold(ins.Protocol, Protocol) {
		return nil, fmt.Errorf("%w: protocol %q", ErrNotBRC20, ins.Protocol)
	}

	switch ins.Operation {
	case OpTransfer, OpMint:
		if _, err := ParseAmount(ins.Amount, MaxDecimals); err != nil {
			return nil, err
		}
	case OpDeploy:
		if _, err := ParseAmount(ins.Max, MaxDecimals); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, ins.Operation)
	}

	if err := validateTicker(ins.Ticker); err != nil {
		return nil, err
	}

	return &ins, nil
}

// IsTransfer reports whether the inscription is a transfer operation.
func (i *Inscription) IsTransfer() bool {
	return i.Operation == OpTransfer
}

// Units returns the inscribed amount scaled to base units at the given
// precision.
func (i *Inscription) Units(decimals int) (*big.Int, error) {
	return ParseAmount(i.Amount, decimals)
}

// MatchesTransfer reports whether the inscription is a transfer of tick
// whose amount equals the requested quantity. Ticker comparison is
// case-insensitive; amounts compare numerically, so "100" matches "100.0".
func (i *Inscription) MatchesTransfer(tick, amount string) bool {
	if !i.IsTransfer() || !strings.EqualFold(i.Ticker, tick) {
		return false
	}
	want, err := ParseAmount(amount, MaxDecimals)
	if err != nil {
		return false
	}
	have, err := i.Units(MaxDecimals)
	if err != nil {
		return false
	}
	return want.Cmp(have) == 0
}

// ParseAmount converts a decimal amount string to base units, e.g. "1.5"
// with 8 decimals becomes 150000000. Negative amounts and excess precision
// are rejected.
func ParseAmount(amount string, decimals int) (*big.Int, error) {
	if amount == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	if strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, amount)
	}

	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("%w: %q exceeds %d decimals", ErrInvalidAmount, amount, decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	combined := strings.TrimLeft(whole+frac, "0")
	if combined == "" {
		combined = "0"
	}

	units, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return units, nil
}

// validateTicker checks the 4-5 byte ticker constraint.
func validateTicker(tick string) error {
	if n := len(tick); n < 4 || n > 5 {
		return fmt.Errorf("%w: %q", ErrInvalidTicker, tick)
	}
	return nil
}
