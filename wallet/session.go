package wallet

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Session is the connected-wallet state passed explicitly into builder
// calls. A zero-value Session represents no wallet connected.
type Session struct {
	address string
	pubKey  []byte
	params  *chaincfg.Params
}

// NewSession creates a session for an already-known funding address and
// compressed public key.
func NewSession(address string, pubKey []byte, params *chaincfg.Params) (*Session, error) {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	if address != "" {
		if _, err := btcutil.DecodeAddress(address, params); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, address, err)
		}
	}
	if len(pubKey) > 0 && len(pubKey) != 33 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidPubKey, len(pubKey))
	}
	return &Session{address: address, pubKey: pubKey, params: params}, nil
}

// Connect establishes a session through a wallet provider.
func Connect(ctx context.Context, p Provider, params *chaincfg.Params) (*Session, error) {
	if p == nil {
		return nil, ErrNoProvider
	}
	address, err := p.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet: connect %s: %w", p.Vendor(), err)
	}
	pubKey, err := p.PublicKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet: public key %s: %w", p.Vendor(), err)
	}
	return NewSession(address, pubKey, params)
}

// FundingAddress returns the active funding address, or ErrNoWalletConnected
// when no wallet is connected.
func (s *Session) FundingAddress() (string, error) {
	if s == nil || s.address == "" {
		return "", ErrNoWalletConnected
	}
	return s.address, nil
}

// Params returns the network parameters the session was created with.
func (s *Session) Params() *chaincfg.Params {
	if s == nil || s.params == nil {
		return &chaincfg.MainNetParams
	}
	return s.params
}

// IsTaproot reports whether the funding address is a taproot address.
func (s *Session) IsTaproot() bool {
	addr, err := s.decodeAddress()
	if err != nil {
		return false
	}
	_, ok := addr.(*btcutil.AddressTaproot)
	return ok
}

// TaprootInternalKey returns the 32-byte x-only internal key hint for
// taproot funding inputs, or nil for non-taproot addresses. The hint is
// required by wallets for later witness construction.
func (s *Session) TaprootInternalKey() ([]byte, error) {
	if !s.IsTaproot() {
		return nil, nil
	}
	if len(s.pubKey) != 33 {
		return nil, fmt.Errorf("%w: no public key for taproot session", ErrInvalidPubKey)
	}
	pk, err := btcec.ParsePubKey(s.pubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPubKey, err)
	}
	return schnorr.SerializePubKey(pk), nil
}

// ChangeScript returns the locking script paying back to the funding
// address.
func (s *Session) ChangeScript() ([]byte, error) {
	addr, err := s.decodeAddress()
	if err != nil {
		return nil, err
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return script, nil
}

func (s *Session) decodeAddress() (btcutil.Address, error) {
	address, err := s.FundingAddress()
	if err != nil {
		return nil, err
	}
	addr, err := btcutil.DecodeAddress(address, s.Params())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, address, err)
	}
	return addr, nil
}
