// Package tasks provides the PostgreSQL-backed task store.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/dbx"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (id, user_id, title, completed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, task.ID, task.UserID, task.Title, task.Completed).Scan(&task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// ListByOwner returns the owner's tasks oldest first. An empty result is
// not an error here.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query :=
		`SELECT id, user_id, title, completed, created_at FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindByIDAndOwner(ctx context.Context, taskID, ownerID string) (*models.Task, error) {
	query :=
		`SELECT id, user_id, title, completed, created_at FROM tasks
		 WHERE id = $1 AND user_id = $2`

	return r.scanOne(r.db.QueryRowContext(ctx, query, taskID, ownerID))
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, taskID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// UpdateCompleted is a single find-and-update statement, so concurrent
// writers to the same task never interleave a read and a write.
func (r *PostgresRepository) UpdateCompleted(ctx context.Context, taskID, ownerID string, completed bool) (*models.Task, error) {
	query :=
		`UPDATE tasks SET completed = $3
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, completed, created_at`

	return r.scanOne(r.db.QueryRowContext(ctx, query, taskID, ownerID, completed))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Task, error) {
	var t models.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}
