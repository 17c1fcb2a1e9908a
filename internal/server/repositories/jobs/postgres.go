package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository keeps the job body in a JSONB column; id, owner and
// timestamps are regular columns.
type PostgresRepository struct {
	db dbx.Conn
}

func NewPostgresRepository(db dbx.Conn) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidJobID
	}
	return nil
}

// encodeBody marshals the job without the columns stored separately.
func encodeBody(j *models.Job) ([]byte, error) {
	body := *j
	body.ID = ""
	body.OwnerID = ""
	body.CreatedAt = time.Time{}
	body.UpdatedAt = time.Time{}
	return json.Marshal(body)
}

func scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	var (
		id, owner        string
		body             []byte
		created, updated time.Time
	)
	if err := row.Scan(&id, &body, &owner, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	job := &models.Job{}
	if err := json.Unmarshal(body, job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	job.ID = id
	job.OwnerID = owner
	job.CreatedAt = created
	job.UpdatedAt = updated
	return job, nil
}

const jobColumns = `id, document, owner_id, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	return scanJob(r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *PostgresRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	body, err := encodeBody(job)
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}

	query :=
		`INSERT INTO jobs (document, owner_id)
		 VALUES ($1, $2)
		 RETURNING ` + jobColumns

	return scanJob(r.db.QueryRowContext(ctx, query, body, job.OwnerID))
}

// Update locks the row for the duration of fn.
func (r *PostgresRepository) Update(ctx context.Context, id string, fn func(job *models.Job) error) (*models.Job, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}

	var result *models.Job
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		job, err := scanJob(tx.QueryRowContext(ctx,
			`SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		if err := fn(job); err != nil {
			return err
		}

		body, err := encodeBody(job)
		if err != nil {
			return fmt.Errorf("encode job: %w", err)
		}

		result, err = scanJob(tx.QueryRowContext(ctx,
			`UPDATE jobs SET document = $2, updated_at = now()
			 WHERE id = $1
			 RETURNING `+jobColumns, id, body))
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}
