package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/forexflex/internal/core/domain"
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
	"github.com/SscSPs/forexflex/internal/models"
	"github.com/SscSPs/forexflex/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxHistoryRepository keeps session histories in PostgreSQL.
type PgxHistoryRepository struct {
	BaseRepository
	ttl time.Duration
	now func() time.Time
}

// NewHistoryRepository creates a history repository whose sessions expire ttl after their last append.
// A ttl of zero keeps histories forever.
func NewHistoryRepository(pool *pgxpool.Pool, ttl time.Duration) *PgxHistoryRepository {
	return &PgxHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ttl:            ttl,
		now:            time.Now,
	}
}

// Ensure implementation matches interface
var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

// AppendRecord inserts a record, extends the session's expiry and purges expired sessions in one transaction.
func (r *PgxHistoryRepository) AppendRecord(ctx context.Context, sessionID string, record domain.ConversionRecord) error {
	now := r.now().UTC()
	session := models.ConversionSession{SessionID: sessionID}
	if r.ttl > 0 {
		expiresAt := now.Add(r.ttl)
		session.ExpiresAt = &expiresAt
	}
	row := mapping.ToModelConversion(sessionID, record)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM conversion_sessions WHERE expires_at <= $1;`, now); err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	upsert := `
		INSERT INTO conversion_sessions (session_id, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (session_id) DO UPDATE SET
			expires_at = EXCLUDED.expires_at;
	`
	if _, err := tx.Exec(ctx, upsert, session.SessionID, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to save conversion session: %w", err)
	}

	insert := `
		INSERT INTO conversions (conversion_id, session_id, from_code, to_code, from_name, to_name, amount, converted_amount, rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insert,
		row.ConversionID,
		row.SessionID,
		row.FromCode,
		row.ToCode,
		row.FromName,
		row.ToName,
		row.Amount,
		row.ConvertedAmount,
		row.Rate,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversion %s: %w", row.ConversionID, err)
	}

	return r.Commit(ctx, tx)
}

// ListRecords returns the live session's records in insertion order.
func (r *PgxHistoryRepository) ListRecords(ctx context.Context, sessionID string) ([]domain.ConversionRecord, error) {
	query := `
		SELECT c.seq, c.conversion_id, c.session_id, c.from_code, c.to_code, c.from_name, c.to_name,
		       c.amount, c.converted_amount, c.rate, c.created_at
		FROM conversions c
		JOIN conversion_sessions s ON s.session_id = c.session_id
		WHERE c.session_id = $1 AND (s.expires_at IS NULL OR s.expires_at > $2)
		ORDER BY c.seq;
	`
	rows, err := r.Pool.Query(ctx, query, sessionID, r.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query conversion history: %w", err)
	}
	defer rows.Close()

	var records []models.ConversionRecord
	for rows.Next() {
		var m models.ConversionRecord
		if err := rows.Scan(
			&m.Seq,
			&m.ConversionID,
			&m.SessionID,
			&m.FromCode,
			&m.ToCode,
			&m.FromName,
			&m.ToName,
			&m.Amount,
			&m.ConvertedAmount,
			&m.Rate,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion row: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversion rows: %w", err)
	}

	return mapping.ToDomainConversions(records), nil
}
