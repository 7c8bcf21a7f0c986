package wallet

import "context"

// MockProvider implements Provider with overridable function fields.
type MockProvider struct {
	VendorValue   Vendor
	ConnectFunc   func(ctx context.Context) (string, error)
	PublicKeyFunc func(ctx context.Context) ([]byte, error)
	SignPSBTFunc  func(ctx context.Context, packet []byte, opts *SignOptions) ([]byte, error)
	PushFunc      func(ctx context.Context, rawTx []byte) (string, error)
}

func (m *MockProvider) Vendor() Vendor {
	return m.VendorValue
}

func (m *MockProvider) Connect(ctx context.Context) (string, error) {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	return "", ErrNoWalletConnected
}

func (m *MockProvider) PublicKey(ctx context.Context) ([]byte, error) {
	if m.PublicKeyFunc != nil {
		return m.PublicKeyFunc(ctx)
	}
	return nil, ErrNoWalletConnected
}

func (m *MockProvider) SignPSBT(ctx context.Context, packet []byte, opts *SignOptions) ([]byte, error) {
	if m.SignPSBTFunc != nil {
		return m.SignPSBTFunc(ctx, packet, opts)
	}
	return packet, nil
}

func (m *MockProvider) Push(ctx context.Context, rawTx []byte) (string, error) {
	if m.PushFunc != nil {
		return m.PushFunc(ctx, rawTx)
	}
	return "", ErrNoWalletConnected
}
