package cases

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrCaseNotFound = errors.New("case not found")
var ErrCaseAlreadyExists = errors.New("case id already exists")

const uniqueViolation = "23505"

type Repository interface {
	CreateCase(ctx context.Context, c Case) (Case, error)
	GetCase(ctx context.Context, caseId string) (Case, error)
	ListCases(ctx context.Context) ([]Case, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) CreateCase(ctx context.Context, c Case) (Case, error) {
	query := `INSERT INTO cases (case_id, description, case_date, manager, notes) 
				VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	err := r.db.QueryRow(ctx, query, c.Id, c.Description, c.Date, c.Manager, c.Notes).Scan(&c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Debugf("case %s already exists", c.Id)
			return Case{}, ErrCaseAlreadyExists
		}
		err := fmt.Errorf("could not insert case: %w", err)
		log.Error(err)
		return Case{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) GetCase(ctx context.Context, caseId string) (Case, error) {
	query := `SELECT case_id, description, case_date, manager, notes, created_at FROM cases WHERE case_id = $1`

	var c Case
	err := r.db.QueryRow(ctx, query, caseId).Scan(&c.Id, &c.Description, &c.Date, &c.Manager, &c.Notes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Case{}, ErrCaseNotFound
		}
		err := fmt.Errorf("could not get case: %w", err)
		log.Error(err)
		return Case{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) ListCases(ctx context.Context) ([]Case, error) {
	query := `SELECT case_id, description, case_date, manager, notes, created_at 
				FROM cases ORDER BY case_date DESC, case_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query cases: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	cases := make([]Case, 0)
	for rows.Next() {
		var c Case
		if err := rows.Scan(&c.Id, &c.Description, &c.Date, &c.Manager, &c.Notes, &c.CreatedAt); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return cases, nil
}
