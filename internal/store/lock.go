package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const ingestLockTTL = 10 * time.Minute

// releaseLock deletes the lock only if it still holds our token, so an
// expired lock re-acquired by another run is never released by us.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireIngestLock takes the per-user advisory lock that serializes
// concurrent ingestion runs for the same user. Returns ok=false when another
// run already holds it. The returned release func is safe to call once.
func AcquireIngestLock(ctx context.Context, rdb *redis.Client, userID string) (release func(), ok bool, err error) {
	key := "ingest:lock:" + userID
	token := uuid.NewString()

	ok, err = rdb.SetNX(ctx, key, token, ingestLockTTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("setnx %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release = func() {
		if err := releaseLock.Run(ctx, rdb, []string{key}, token).Err(); err != nil {
			slog.Warn("ingest lock release failed", "user", userID, "err", err)
		}
	}
	return release, true, nil
}
