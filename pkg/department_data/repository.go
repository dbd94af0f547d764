package department_data

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// DeleteStale removes the rows of a case year whose department is not in keep.
	DeleteStale(ctx context.Context, caseId string, year int, keep []string) (int, error)
	// Upsert inserts or overwrites records keyed by (case, department, year); position follows slice order.
	Upsert(ctx context.Context, caseId string, year int, records []Record) error
	GetYear(ctx context.Context, caseId string, year int) ([]Record, error)
	ListYears(ctx context.Context, caseId string) ([]int, error)
}

type queryer interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type RepositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) getQueryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(&RepositoryImpl{db: r.db, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) DeleteStale(ctx context.Context, caseId string, year int, keep []string) (int, error) {
	query := `DELETE FROM case_data WHERE case_id = $1 AND year = $2 AND NOT (department = ANY($3))`

	if keep == nil {
		keep = []string{}
	}
	tag, err := r.getQueryer().Exec(ctx, query, caseId, year, keep)
	if err != nil {
		err := fmt.Errorf("could not delete stale department data: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *RepositoryImpl) Upsert(ctx context.Context, caseId string, year int, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	query := `INSERT INTO case_data (case_id, department, year, fully_met, fully_met_pct, partially_met,
                       partially_met_pct, not_met, not_met_pct, not_applicable, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				ON CONFLICT (case_id, department, year) DO UPDATE SET
					fully_met = EXCLUDED.fully_met,
					fully_met_pct = EXCLUDED.fully_met_pct,
					partially_met = EXCLUDED.partially_met,
					partially_met_pct = EXCLUDED.partially_met_pct,
					not_met = EXCLUDED.not_met,
					not_met_pct = EXCLUDED.not_met_pct,
					not_applicable = EXCLUDED.not_applicable,
					position = EXCLUDED.position,
					uploaded_at = CURRENT_TIMESTAMP`

	batch := &pgx.Batch{}
	for i, rec := range records {
		batch.Queue(query, caseId, rec.Department, year, rec.FullyMet, rec.FullyMetPct, rec.PartiallyMet,
			rec.PartiallyMetPct, rec.NotMet, rec.NotMetPct, rec.NotApplicable, i)
	}

	results := r.getQueryer().SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			err := fmt.Errorf("could not upsert department data: %w", err)
			log.Error(err)
			return err
		}
	}
	if err := results.Close(); err != nil {
		err := fmt.Errorf("could not upsert department data: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetYear(ctx context.Context, caseId string, year int) ([]Record, error) {
	query := `SELECT department, fully_met, fully_met_pct, partially_met, partially_met_pct, not_met, not_met_pct, not_applicable
				FROM case_data
				WHERE case_id = $1 AND year = $2
				ORDER BY position, department`

	rows, err := r.getQueryer().Query(ctx, query, caseId, year)
	if err != nil {
		err := fmt.Errorf("could not query department data: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		err := rows.Scan(&rec.Department, &rec.FullyMet, &rec.FullyMetPct, &rec.PartiallyMet,
			&rec.PartiallyMetPct, &rec.NotMet, &rec.NotMetPct, &rec.NotApplicable)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return records, nil
}

func (r *RepositoryImpl) ListYears(ctx context.Context, caseId string) ([]int, error) {
	query := `SELECT DISTINCT year FROM case_data WHERE case_id = $1 ORDER BY year`

	rows, err := r.getQueryer().Query(ctx, query, caseId)
	if err != nil {
		err := fmt.Errorf("could not query years: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	years := make([]int, 0)
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return years, nil
}
