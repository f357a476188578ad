package ports

import (
	"context"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
)

// CatalogMirror keeps a copy of the last good catalog snapshot outside the
// process so a restart during an inventory outage still has stock to show.
type CatalogMirror interface {
	SaveSnapshot(ctx context.Context, snapshot *catalog.Snapshot) error
	LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error)
}
