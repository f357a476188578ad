package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type Refresher interface {
	Refresh(ctx context.Context) error
}

// CatalogRefresher reloads the catalog on a fixed interval so stock changes
// made by other tills show up without an explicit refresh.
type CatalogRefresher struct {
	catalog  Refresher
	interval time.Duration
	logger   *logger.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewCatalogRefresher(catalog Refresher, interval time.Duration, logger *logger.Logger) *CatalogRefresher {
	return &CatalogRefresher{
		catalog:  catalog,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start blocks until ctx is done or Stop is called. A non-positive interval
// disables periodic refresh.
func (s *CatalogRefresher) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Catalog refresher disabled")
		return
	}

	s.logger.Info("Starting catalog refresher", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Catalog refresher stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Catalog refresher stopped")
			return
		case <-ticker.C:
			if err := s.catalog.Refresh(ctx); err != nil {
				s.logger.Warn("Scheduled catalog refresh failed", "error", err)
			}
		}
	}
}

func (s *CatalogRefresher) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}
