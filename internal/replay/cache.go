package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/slpstats/replayd/internal/blobstore"
)

const cacheContentType = "application/json"

// Reconstructor produces a snapshot for a match and frame range.
type Reconstructor interface {
	Reconstruct(ctx context.Context, matchID string, frameStart, frameEnd int) (*Snapshot, error)
}

// CachedService memoizes reconstructed snapshots in a blob store. Entries
// are immutable once written: identical keys always hold identical content,
// so redundant concurrent computations are harmless.
type CachedService struct {
	store blobstore.Store
	inner Reconstructor
	log   *logrus.Logger
}

// NewCachedService wraps a reconstructor with blob-store memoization.
func NewCachedService(store blobstore.Store, inner Reconstructor, log *logrus.Logger) *CachedService {
	return &CachedService{store: store, inner: inner, log: log}
}

// CacheKey is the content address for one reconstruction request.
func CacheKey(matchID string, frameStart, frameEnd int) string {
	return fmt.Sprintf("replays/%s-%d-%d.json", matchID, frameStart, frameEnd)
}

// Reconstruct returns the cached snapshot when present, otherwise computes,
// stores, and returns it. Reads fail open: any read error other than
// not-found is logged and treated as a miss. Writes fail closed: a store
// failure fails the request, so persistent cache unavailability cannot hide
// behind successful-looking responses.
func (c *CachedService) Reconstruct(ctx context.Context, matchID string, frameStart, frameEnd int) (*Snapshot, error) {
	key := CacheKey(matchID, frameStart, frameEnd)

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var snapshot Snapshot
		if uerr := json.Unmarshal(data, &snapshot); uerr == nil {
			return &snapshot, nil
		}
		c.log.WithField("key", key).Warn("discarding undecodable cache entry")
	case errors.Is(err, blobstore.ErrNotFound):
		// miss, compute below
	default:
		c.log.WithField("key", key).WithError(err).Warn("cache read failed, treating as miss")
	}

	snapshot, err := c.inner.Reconstruct(ctx, matchID, frameStart, frameEnd)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := c.store.Put(ctx, key, data, cacheContentType); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return snapshot, nil
}
