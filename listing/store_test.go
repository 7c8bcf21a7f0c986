package listing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordbook/libordbook-go/tx"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "listings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_ReserveRelease(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Reserve("aa:0", "order-1"))
	require.NoError(t, s.Reserve("aa:1", "order-1"))
	require.NoError(t, s.Reserve("bb:0", "order-2"))

	ok, err := s.IsReserved("aa:0")
	require.NoError(t, err)
	assert.True(t, ok)

	// Re-reserving for the same order is idempotent.
	require.NoError(t, s.Reserve("aa:0", "order-1"))

	// A different order cannot steal the reservation.
	err = s.Reserve("aa:0", "order-3")
	assert.ErrorIs(t, err, ErrAlreadyReserved)

	require.NoError(t, s.Release("aa:0"))
	ok, err = s.IsReserved("aa:0")
	require.NoError(t, err)
	assert.False(t, ok)

	// Releasing an unknown outpoint is a no-op.
	require.NoError(t, s.Release("cc:7"))
}

func TestStore_ReleaseOrder(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Reserve("aa:0", "order-1"))
	require.NoError(t, s.Reserve("aa:1", "order-1"))
	require.NoError(t, s.Reserve("bb:0", "order-2"))

	require.NoError(t, s.ReleaseOrder("order-1"))

	reserved, err := s.Reserved()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bb:0": "order-2"}, reserved)
}

func TestStore_EmptyOutpoint(t *testing.T) {
	s := openTestStore(t)
	assert.ErrorIs(t, s.Reserve("", "order-1"), ErrEmptyOutpoint)
}

func TestFilterAvailable(t *testing.T) {
	coins := []*tx.Coin{
		{TxID: "aa", Vout: 0, Value: 1000},
		{TxID: "aa", Vout: 1, Value: 2000},
		{TxID: "bb", Vout: 0, Value: 3000},
	}
	reserved := map[string]string{"aa:1": "order-1"}

	got := FilterAvailable(coins, reserved)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1000), got[0].Value)
	assert.Equal(t, uint64(3000), got[1].Value)

	assert.Len(t, FilterAvailable(coins, nil), 3)
}
