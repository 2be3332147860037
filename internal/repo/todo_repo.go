package repo

import (
	"context"
	"time"

	"github.com/Bartuster/todo-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo owns todo persistence. Every read and write below takes the
// owner's user id and includes it in the selection predicate, so a row
// owned by someone else behaves exactly like a missing row.
type TodoRepo interface {
	Create(ctx context.Context, t domain.Todo) (domain.Todo, error)
	GetByID(ctx context.Context, userID, id int64) (domain.Todo, error)
	List(ctx context.Context, userID int64) ([]domain.Todo, error)
	Update(ctx context.Context, userID, id int64, patch domain.Todo) (domain.Todo, error)
	SoftDelete(ctx context.Context, userID, id int64) (bool, error)
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	query := `
		INSERT INTO todos (user_id, title, description, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, description, completed, created_at, updated_at, deleted_at`
	var out domain.Todo
	err := r.db.QueryRow(ctx, query, t.UserID, t.Title, t.Description, t.Completed).Scan(
		&out.ID, &out.UserID, &out.Title, &out.Description, &out.Completed,
		&out.CreatedAt, &out.UpdatedAt, &out.DeletedAt,
	)
	return out, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, userID, id int64) (domain.Todo, error) {
	query := `
		SELECT id, user_id, title, description, completed, created_at, updated_at, deleted_at
		FROM todos WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	var t domain.Todo
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
		&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	return t, err
}

func (r *PGTodoRepo) List(ctx context.Context, userID int64) ([]domain.Todo, error) {
	query := `
		SELECT id, user_id, title, description, completed, created_at, updated_at, deleted_at
		FROM todos WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Todo
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Update(ctx context.Context, userID, id int64, patch domain.Todo) (domain.Todo, error) {
	query := `
		UPDATE todos SET title = $3, description = $4, completed = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING id, user_id, title, description, completed, created_at, updated_at, deleted_at`
	var t domain.Todo
	err := r.db.QueryRow(ctx, query, id, userID, patch.Title, patch.Description, patch.Completed).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
		&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	return t, err
}

// SoftDelete marks the todo deleted and reports whether a row was hit.
func (r *PGTodoRepo) SoftDelete(ctx context.Context, userID, id int64) (bool, error) {
	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx,
		`UPDATE todos SET deleted_at = $3, updated_at = $3 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		id, userID, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
