package catalogcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/yuzvak/pos-service/internal/application/ports"
	"github.com/yuzvak/pos-service/internal/domain/catalog"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/pos-service/internal/pkg/clock"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

// Cache holds the latest known item list. Readers always see a complete
// snapshot; a failed refresh keeps the previous one.
type Cache struct {
	source ports.ItemSource
	mirror ports.CatalogMirror
	clock  clock.Clock
	log    *logger.Logger

	refreshMu sync.Mutex
	snapshot  atomic.Pointer[catalog.Snapshot]
	lastErr   atomic.Pointer[refreshError]
}

type refreshError struct {
	err error
}

// NewCache builds an empty cache. mirror may be nil.
func NewCache(source ports.ItemSource, mirror ports.CatalogMirror, clk clock.Clock, log *logger.Logger) *Cache {
	c := &Cache{
		source: source,
		mirror: mirror,
		clock:  clk,
		log:    log,
	}
	c.snapshot.Store(catalog.NewSnapshot(nil, clk.Now()))
	return c
}

func (c *Cache) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	items, err := c.source.ListItems(ctx)
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", domainErrors.ErrFetchFailed, err)
		c.lastErr.Store(&refreshError{err: wrapped})
		monitoring.RecordCatalogRefresh("failure", 0, c.clock.Now())
		c.log.Warn("Catalog refresh failed, keeping previous snapshot",
			"error", err.Error(),
			"items", c.Snapshot().Len(),
		)
		return wrapped
	}

	snapshot := catalog.NewSnapshot(items, c.clock.Now())
	c.snapshot.Store(snapshot)
	c.lastErr.Store(nil)
	monitoring.RecordCatalogRefresh("success", snapshot.Len(), snapshot.FetchedAt())
	c.log.Debug("Catalog refreshed", "items", snapshot.Len())

	if c.mirror != nil {
		if err := c.mirror.SaveSnapshot(ctx, snapshot); err != nil {
			c.log.Warn("Failed to mirror catalog snapshot", "error", err)
		}
	}

	return nil
}

// Warm performs the initial refresh. When the inventory service cannot be
// reached it falls back to the mirrored snapshot, if any, and still reports
// the fetch error.
func (c *Cache) Warm(ctx context.Context) error {
	err := c.Refresh(ctx)
	if err == nil || c.mirror == nil {
		return err
	}

	snapshot, mirrorErr := c.mirror.LoadSnapshot(ctx)
	if mirrorErr != nil {
		if !errors.Is(mirrorErr, domainErrors.ErrSnapshotNotFound) {
			c.log.Warn("Failed to load mirrored catalog snapshot", "error", mirrorErr)
		}
		return err
	}

	c.refreshMu.Lock()
	if c.Snapshot().Len() == 0 {
		c.snapshot.Store(snapshot)
		monitoring.RecordCatalogRefresh("mirror", snapshot.Len(), snapshot.FetchedAt())
		c.log.Info("Serving mirrored catalog snapshot",
			"items", snapshot.Len(),
			"fetched_at", snapshot.FetchedAt(),
		)
	}
	c.refreshMu.Unlock()

	return err
}

func (c *Cache) Get(id int64) (catalog.Item, error) {
	item, ok := c.Snapshot().Get(id)
	if !ok {
		return catalog.Item{}, fmt.Errorf("%w: id %d", domainErrors.ErrItemNotFound, id)
	}
	return item, nil
}

func (c *Cache) Snapshot() *catalog.Snapshot {
	return c.snapshot.Load()
}

// LastError is the error of the most recent refresh, nil after a success.
func (c *Cache) LastError() error {
	if e := c.lastErr.Load(); e != nil {
		return e.err
	}
	return nil
}
