package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/qaportal-net/qaportal-be/internal/model"
)

type testRepository struct {
	db *sql.DB
}

func NewTestRepository(db *sql.DB) ITestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(ctx context.Context, test *model.APITest) (int, error) {
	query := `
		INSERT INTO api_tests (owner_user_id, name, description, endpoint_url, http_method, request_headers, request_body, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var testID int
	err := r.db.QueryRowContext(ctx, query,
		test.OwnerUserID,
		test.Name,
		test.Description,
		test.EndpointURL,
		test.HTTPMethod,
		test.RequestHeaders,
		test.RequestBody,
		test.Tags,
	).Scan(&testID)
	if err != nil {
		return 0, err
	}
	return testID, nil
}

func (r *testRepository) GetByID(ctx context.Context, id int) (*model.APITest, error) {
	query := `
		SELECT id, owner_user_id, name, description, endpoint_url, http_method, request_headers, request_body, tags, created_at
		FROM api_tests
		WHERE id = $1`

	var test model.APITest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&test.ID,
		&test.OwnerUserID,
		&test.Name,
		&test.Description,
		&test.EndpointURL,
		&test.HTTPMethod,
		&test.RequestHeaders,
		&test.RequestBody,
		&test.Tags,
		&test.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &test, nil
}

func (r *testRepository) List(ctx context.Context, limit, offset int) ([]*model.APITest, error) {
	query := `
		SELECT at.id, at.owner_user_id, at.name, at.description, at.endpoint_url, at.http_method,
		       at.request_headers, at.request_body, at.tags, at.created_at, u.username AS owner_name
		FROM api_tests at
		JOIN users u ON at.owner_user_id = u.id
		ORDER BY at.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []*model.APITest
	for rows.Next() {
		var test model.APITest
		if err := rows.Scan(
			&test.ID,
			&test.OwnerUserID,
			&test.Name,
			&test.Description,
			&test.EndpointURL,
			&test.HTTPMethod,
			&test.RequestHeaders,
			&test.RequestBody,
			&test.Tags,
			&test.CreatedAt,
			&test.OwnerName,
		); err != nil {
			return nil, err
		}
		tests = append(tests, &test)
	}

	return tests, rows.Err()
}

func (r *testRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_tests`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteCascade removes the definition and every dependent row in one
// transaction so a failed delete never leaves orphans behind.
func (r *testRepository) DeleteCascade(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM response_logs WHERE test_run_id IN (SELECT id FROM test_runs WHERE api_test_id = $1)`,
		`DELETE FROM performance_runs WHERE test_run_id IN (SELECT id FROM test_runs WHERE api_test_id = $1)`,
		`DELETE FROM test_runs WHERE api_test_id = $1`,
		`DELETE FROM api_tests WHERE id = $1`,
	}
	for _, query := range steps {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("cascading delete of api test %d: %w", id, err)
		}
	}

	return tx.Commit()
}
