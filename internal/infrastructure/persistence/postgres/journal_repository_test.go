package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/domain/journal"
)

func TestJournalRepository_UnreachableDatabase(t *testing.T) {
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=pos dbname=pos sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	conn := NewConnectionFromDB(db)
	t.Cleanup(func() { _ = conn.Close() })

	repo := NewJournalRepository(conn)
	ctx := context.Background()

	err = repo.FinishCheckout(ctx, "CHK-1", journal.StatusCompleted, time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainErrors.ErrCheckoutNotFound)

	_, err = repo.GetCheckout(ctx, "CHK-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainErrors.ErrCheckoutNotFound)
}
