package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type snapshotRecord struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Items     []catalog.Item `json:"items"`
}

// CatalogMirror stores the last good catalog snapshot under a single key.
type CatalogMirror struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *logger.Logger
}

func NewCatalogMirror(conn *Connection, key string, ttl time.Duration, log *logger.Logger) *CatalogMirror {
	return &CatalogMirror{
		client: conn.GetClient(),
		key:    key,
		ttl:    ttl,
		logger: log,
	}
}

func (m *CatalogMirror) SaveSnapshot(ctx context.Context, snapshot *catalog.Snapshot) error {
	payload, err := json.Marshal(snapshotRecord{
		FetchedAt: snapshot.FetchedAt(),
		Items:     snapshot.Items(),
	})
	if err != nil {
		return fmt.Errorf("encode catalog snapshot: %w", err)
	}

	if err := m.client.Set(ctx, m.key, payload, m.ttl).Err(); err != nil {
		return err
	}

	m.logger.Debug("Catalog snapshot mirrored", "key", m.key, "items", snapshot.Len())
	return nil
}

func (m *CatalogMirror) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	payload, err := m.client.Get(ctx, m.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrSnapshotNotFound
		}
		return nil, err
	}

	var record snapshotRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}

	return catalog.NewSnapshot(record.Items, record.FetchedAt), nil
}
