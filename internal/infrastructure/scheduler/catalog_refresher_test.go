package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestCatalogRefresher_RefreshesOnInterval(t *testing.T) {
	source := &countingRefresher{err: errors.New("inventory down")}
	refresher := NewCatalogRefresher(source, 10*time.Millisecond, logger.NewNop())

	done := make(chan struct{})
	go func() {
		refresher.Start(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool { return source.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	refresher.Stop()
	refresher.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}

func TestCatalogRefresher_StopsWithContext(t *testing.T) {
	refresher := NewCatalogRefresher(&countingRefresher{}, time.Hour, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		refresher.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher ignored cancelled context")
	}
}

func TestCatalogRefresher_DisabledInterval(t *testing.T) {
	source := &countingRefresher{}
	refresher := NewCatalogRefresher(source, 0, logger.NewNop())

	refresher.Start(context.Background())

	assert.Zero(t, source.calls.Load())
}
