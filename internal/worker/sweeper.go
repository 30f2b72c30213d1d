package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/token"
)

// StartTokenSweeper periodically evicts expired tokens from the store
// until the context is cancelled. The sweep only bounds memory growth;
// redemption correctness never relies on it having run.
func StartTokenSweeper(ctx context.Context, store *token.Store, interval time.Duration, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := store.Sweep(now); removed > 0 {
					logger.Debug("swept expired tokens",
						zap.Int("removed", removed),
						zap.Int("remaining", store.Len()))
				}
			}
		}
	}()
}
