package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/token"
)

func TestTokenSweeperEvictsExpired(t *testing.T) {
	store := token.NewStore(10 * time.Millisecond)

	_, err := store.Create("user-1")
	require.NoError(t, err)
	_, err = store.Create("user-2")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartTokenSweeper(ctx, store, 20*time.Millisecond, zap.NewNop())

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond, "sweeper should evict expired tokens")
}

func TestTokenSweeperStopsOnCancel(t *testing.T) {
	// negative lifetime: every entry is expired the moment it is created
	store := token.NewStore(-time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	StartTokenSweeper(ctx, store, 10*time.Millisecond, zap.NewNop())
	cancel()

	// after cancellation new expired tokens are no longer evicted
	time.Sleep(30 * time.Millisecond)
	_, err := store.Create("user-1")
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, store.Len())
}
