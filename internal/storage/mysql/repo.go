package mysql

import (
	"context"
	"database/sql"

	"gourmet_search/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo keeps the ingestion audit trail. Venues themselves are never stored.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) RecordRun(ctx context.Context, run domain.IngestRun) error {
	_, err := r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.Source,
		run.Status,
		run.Venues,
		run.Rejected,
		valStr(run.Error),
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
	)
	return err
}

func (r *Repo) LatestRuns(ctx context.Context, source string, limit int) ([]domain.IngestRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, latestRunsSQL, source, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.IngestRun
	for rows.Next() {
		var run domain.IngestRun
		var errMsg sql.NullString
		if err := rows.Scan(
			&run.ID,
			&run.Source,
			&run.Status,
			&run.Venues,
			&run.Rejected,
			&errMsg,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, err
		}
		if errMsg.Valid {
			s := errMsg.String
			run.Error = &s
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
