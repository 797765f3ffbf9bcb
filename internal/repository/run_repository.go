package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/qaportal-net/qaportal-be/internal/model"
)

type runRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) IRunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(ctx context.Context, run *model.TestRun) (int, error) {
	query := `
		INSERT INTO test_runs (api_test_id, suite_id, started_by, name, reference, status, environment, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id`

	var runID int
	err := r.db.QueryRowContext(ctx, query,
		run.APITestID,
		run.SuiteID,
		run.StartedBy,
		run.Name,
		run.Reference,
		run.Status,
		run.Environment,
	).Scan(&runID)
	if err != nil {
		return 0, err
	}
	return runID, nil
}

// Finish writes the terminal state of a run. Runs are never mutated
// again after finished_at is set.
func (r *runRepository) Finish(ctx context.Context, run *model.TestRun) error {
	query := `
		UPDATE test_runs
		SET status = $1, finished_at = NOW(), duration_ms = $2,
		    total_requests = $3, success_count = $4, failed_count = $5, skipped_count = $6, success_rate = $7
		WHERE id = $8`

	_, err := r.db.ExecContext(ctx, query,
		run.Status,
		run.DurationMs,
		run.TotalRequests,
		run.SuccessCount,
		run.FailedCount,
		run.SkippedCount,
		run.SuccessRate,
		run.ID,
	)
	return err
}

const runSummaryColumns = `
	tr.id, tr.api_test_id, tr.suite_id, tr.started_by, tr.name, tr.reference, tr.status,
	tr.environment, tr.started_at, tr.finished_at, tr.duration_ms, tr.total_requests,
	tr.success_count, tr.failed_count, tr.skipped_count, tr.success_rate, tr.created_at,
	COALESCE(ts.name, at.name, '') AS test_name,
	u.username AS started_by_name`

const runSummaryJoins = `
	FROM test_runs tr
	LEFT JOIN test_suites ts ON tr.suite_id = ts.id
	LEFT JOIN api_tests at ON tr.api_test_id = at.id
	JOIN users u ON tr.started_by = u.id`

func scanRunSummary(s interface{ Scan(...any) error }) (*model.RunSummary, error) {
	var run model.RunSummary
	err := s.Scan(
		&run.ID,
		&run.APITestID,
		&run.SuiteID,
		&run.StartedBy,
		&run.Name,
		&run.Reference,
		&run.Status,
		&run.Environment,
		&run.StartedAt,
		&run.FinishedAt,
		&run.DurationMs,
		&run.TotalRequests,
		&run.SuccessCount,
		&run.FailedCount,
		&run.SkippedCount,
		&run.SuccessRate,
		&run.CreatedAt,
		&run.TestName,
		&run.StartedByName,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *runRepository) GetSummaryByID(ctx context.Context, id int) (*model.RunSummary, error) {
	query := `SELECT` + runSummaryColumns + runSummaryJoins + `
	WHERE tr.id = $1`

	run, err := scanRunSummary(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return run, nil
}

func (r *runRepository) List(ctx context.Context, limit, offset int) ([]*model.RunSummary, error) {
	query := `SELECT` + runSummaryColumns + runSummaryJoins + `
	ORDER BY tr.created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*model.RunSummary
	for rows.Next() {
		run, err := scanRunSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *runRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM test_runs`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *runRepository) CountByStatus(ctx context.Context, status model.RunStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM test_runs WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AverageSuccessRate aggregates over finished runs only; running and
// queued rows have no meaningful rate yet.
func (r *runRepository) AverageSuccessRate(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(AVG(success_rate), 0) FROM test_runs WHERE status IN ('passed', 'failed')`

	var avg float64
	if err := r.db.QueryRowContext(ctx, query).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *runRepository) DeleteCascade(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM response_logs WHERE test_run_id = $1`,
		`DELETE FROM performance_runs WHERE test_run_id = $1`,
		`DELETE FROM test_runs WHERE id = $1`,
	}
	for _, query := range steps {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("cascading delete of test run %d: %w", id, err)
		}
	}

	return tx.Commit()
}

func (r *runRepository) InsertResponseLog(ctx context.Context, entry *model.ResponseLog) error {
	query := `
		INSERT INTO response_logs (test_run_id, request_index, request_method, request_url, response_status, response_time_ms, is_success, response_body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		entry.TestRunID,
		entry.RequestIndex,
		entry.RequestMethod,
		entry.RequestURL,
		entry.ResponseStatus,
		entry.ResponseTimeMs,
		entry.IsSuccess,
		entry.ResponseBody,
	)
	return err
}

func (r *runRepository) InsertPerformanceRun(ctx context.Context, stats *model.PerformanceRun) error {
	query := `
		INSERT INTO performance_runs (test_run_id, virtual_users, test_duration_seconds, average_ms, min_ms, max_ms, p95_ms, requests_per_sec, total_requests, error_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		stats.TestRunID,
		stats.VirtualUsers,
		stats.TestDurationSeconds,
		stats.AverageMs,
		stats.MinMs,
		stats.MaxMs,
		stats.P95Ms,
		stats.RequestsPerSec,
		stats.TotalRequests,
		stats.ErrorRate,
	)
	return err
}

func (r *runRepository) ListPerformanceRuns(ctx context.Context, runID int) ([]*model.PerformanceRun, error) {
	query := `
		SELECT id, test_run_id, virtual_users, test_duration_seconds, average_ms, min_ms, max_ms, p95_ms, requests_per_sec, total_requests, error_rate
		FROM performance_runs
		WHERE test_run_id = $1`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*model.PerformanceRun
	for rows.Next() {
		var s model.PerformanceRun
		if err := rows.Scan(
			&s.ID,
			&s.TestRunID,
			&s.VirtualUsers,
			&s.TestDurationSeconds,
			&s.AverageMs,
			&s.MinMs,
			&s.MaxMs,
			&s.P95Ms,
			&s.RequestsPerSec,
			&s.TotalRequests,
			&s.ErrorRate,
		); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}

	return stats, rows.Err()
}

func (r *runRepository) GetSuiteName(ctx context.Context, suiteID int) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM test_suites WHERE id = $1`, suiteID).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return name, nil
}
