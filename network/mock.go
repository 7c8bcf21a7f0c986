package network

import "context"

// MockService is a test double for Service. Function fields must be set
// before the corresponding method is called.
type MockService struct {
	ListUnspentFn    func(ctx context.Context, address string) ([]*UTXO, error)
	ListLockedFn     func(ctx context.Context, address string) ([]*UTXO, error)
	ListTokenCoinsFn func(ctx context.Context, address, tick string) ([]*TokenUTXO, error)
	GetRawTxFn       func(ctx context.Context, txid string) ([]byte, error)
	BroadcastTxFn    func(ctx context.Context, rawTxHex string) (string, error)
	FeeRateFn        func(ctx context.Context, confTarget int) (uint64, error)
}

func (m *MockService) ListUnspent(ctx context.Context, address string) ([]*UTXO, error) {
	return m.ListUnspentFn(ctx, address)
}
func (m *MockService) ListLocked(ctx context.Context, address string) ([]*UTXO, error) {
	return m.ListLockedFn(ctx, address)
}
func (m *MockService) ListTokenCoins(ctx context.Context, address, tick string) ([]*TokenUTXO, error) {
	return m.ListTokenCoinsFn(ctx, address, tick)
}
func (m *MockService) GetRawTx(ctx context.Context, txid string) ([]byte, error) {
	return m.GetRawTxFn(ctx, txid)
}
func (m *MockService) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	return m.BroadcastTxFn(ctx, rawTxHex)
}
func (m *MockService) FeeRate(ctx context.Context, confTarget int) (uint64, error) {
	return m.FeeRateFn(ctx, confTarget)
}
