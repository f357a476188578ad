package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/domain/journal"
	"github.com/yuzvak/pos-service/internal/infrastructure/monitoring"
)

type JournalRepository struct {
	db *sql.DB
}

func NewJournalRepository(conn *Connection) *JournalRepository {
	return &JournalRepository{
		db: conn.GetDB(),
	}
}

func (r *JournalRepository) StartCheckout(ctx context.Context, checkout *journal.Checkout) error {
	query := `
		INSERT INTO checkout_journal (id, status, total, tendered, line_count, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "checkout_journal", query,
		checkout.ID, string(checkout.Status), checkout.Total, checkout.Tendered,
		checkout.LineCount, checkout.StartedAt,
	)
	return err
}

func (r *JournalRepository) RecordLine(ctx context.Context, checkoutID string, line journal.LineOutcome) error {
	query := `
		INSERT INTO checkout_journal_lines (
			checkout_id, line_index, item_id, quantity, unit_price, discount,
			idempotency_key, status, error, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "checkout_journal_lines", query,
		checkoutID, line.Index, line.ItemID, line.Quantity, line.UnitPrice, line.Discount,
		line.IdempotencyKey, string(line.Status), line.Error, line.RecordedAt,
	)
	return err
}

func (r *JournalRepository) FinishCheckout(ctx context.Context, checkoutID string, status journal.Status, finishedAt time.Time) error {
	query := `
		UPDATE checkout_journal
		SET status = $2, finished_at = $3
		WHERE id = $1
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "checkout_journal", query,
		checkoutID, string(status), finishedAt,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrCheckoutNotFound
	}
	return nil
}

func (r *JournalRepository) GetCheckout(ctx context.Context, checkoutID string) (*journal.Checkout, error) {
	query := `
		SELECT id, status, total, tendered, line_count, started_at, finished_at
		FROM checkout_journal
		WHERE id = $1
	`

	var (
		checkout   journal.Checkout
		status     string
		finishedAt sql.NullTime
	)
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "checkout_journal", query, checkoutID)
	err := row.Scan(
		&checkout.ID, &status, &checkout.Total, &checkout.Tendered,
		&checkout.LineCount, &checkout.StartedAt, &finishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrCheckoutNotFound
		}
		return nil, err
	}

	checkout.Status = journal.Status(status)
	if finishedAt.Valid {
		t := finishedAt.Time
		checkout.FinishedAt = &t
	}

	lines, err := r.getLines(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	checkout.Lines = lines

	return &checkout, nil
}

func (r *JournalRepository) getLines(ctx context.Context, checkoutID string) ([]journal.LineOutcome, error) {
	query := `
		SELECT line_index, item_id, quantity, unit_price, discount,
			idempotency_key, status, COALESCE(error, ''), recorded_at
		FROM checkout_journal_lines
		WHERE checkout_id = $1
		ORDER BY line_index
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "checkout_journal_lines", query, checkoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]journal.LineOutcome, 0)
	for rows.Next() {
		var (
			line   journal.LineOutcome
			status string
		)
		if err := rows.Scan(
			&line.Index, &line.ItemID, &line.Quantity, &line.UnitPrice, &line.Discount,
			&line.IdempotencyKey, &status, &line.Error, &line.RecordedAt,
		); err != nil {
			return nil, err
		}
		line.Status = journal.LineStatus(status)
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
