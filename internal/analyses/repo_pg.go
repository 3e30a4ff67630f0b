package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ats-backend/internal/matching"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectAnalysisColumns = `
SELECT id, input_fingerprint, source, resume_file_name, jd_file_name, options, result, report_key, created_at
FROM analyses`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, input_fingerprint, source, resume_file_name, jd_file_name, options, score, result, report_key, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	optionsPayload, err := json.Marshal(analysis.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	resultPayload, err := json.Marshal(analysis.Result.Normalized())
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.InputFingerprint,
		analysis.Source,
		analysis.ResumeFileName,
		analysis.JDFileName,
		optionsPayload,
		analysis.Result.Score,
		resultPayload,
		analysis.ReportKey,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := selectAnalysisColumns + `
WHERE id = $1
LIMIT 1`
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return a, nil
}

// List returns analyses newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if offset < 0 {
		offset = 0
	}
	query := selectAnalysisColumns + `
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`

	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := r.DB.QueryContext(ctx, query, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var optionsRaw, resultRaw []byte
	if err := row.Scan(
		&a.ID,
		&a.InputFingerprint,
		&a.Source,
		&a.ResumeFileName,
		&a.JDFileName,
		&optionsRaw,
		&resultRaw,
		&a.ReportKey,
		&a.CreatedAt,
	); err != nil {
		return Analysis{}, err
	}
	if len(optionsRaw) > 0 {
		if err := json.Unmarshal(optionsRaw, &a.Options); err != nil {
			return Analysis{}, fmt.Errorf("decode options id=%s: %w", a.ID, err)
		}
	}
	var result matching.Result
	if len(resultRaw) > 0 {
		if err := json.Unmarshal(resultRaw, &result); err != nil {
			return Analysis{}, fmt.Errorf("decode result id=%s: %w", a.ID, err)
		}
	}
	a.Result = result.Normalized()
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
