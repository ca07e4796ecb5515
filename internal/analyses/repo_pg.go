package analyses

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO analyses (id, user_id, resume_text, job_description, result, status, processing_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.ResumeText,
		rec.JobDescription,
		[]byte(rec.Result),
		rec.Status,
		rec.ProcessingMs,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT id, user_id, resume_text, job_description, result, status, processing_ms, created_at
FROM analyses
WHERE id = $1
LIMIT 1`
	var rec Record
	var result []byte
	var createdAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ResumeText,
		&rec.JobDescription,
		&result,
		&rec.Status,
		&rec.ProcessingMs,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.Result = result
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	} else {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec, nil
}

// ListByUser returns the caller's analyses newest first. The resume and job
// description texts are left out of list rows.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	const query = `
SELECT id, user_id, result, status, processing_ms, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var result []byte
		var createdAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.UserID, &result, &rec.Status, &rec.ProcessingMs, &createdAt); err != nil {
			return nil, err
		}
		rec.Result = result
		if createdAt.Valid {
			rec.CreatedAt = createdAt.Time
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
