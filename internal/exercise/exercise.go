package exercise

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"gymcore/internal/api"
	"gymcore/internal/db"
)

// Exercise is a catalog entry shared by all trainings. Names are unique.
type Exercise struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Category    string     `db:"category" json:"category"`
	Description string     `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type CreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Category    string `json:"category" binding:"required,max=50"`
	Description string `json:"description"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Category    *string `json:"category" binding:"omitempty,max=50"`
	Description *string `json:"description"`
}

type Repository interface {
	Create(ctx context.Context, req CreateRequest) (*Exercise, error)
	FindByID(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context, category string, limit, offset int) ([]Exercise, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Exercise, error)
	Delete(ctx context.Context, id int) (bool, error)
	ExistAll(ctx context.Context, ids []int) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const exerciseColumns = `id, name, category, description, created_at, updated_at`

func (r *repository) Create(ctx context.Context, req CreateRequest) (*Exercise, error) {
	query := `
		INSERT INTO exercises (name, category, description)
		VALUES ($1, $2, $3)
		RETURNING ` + exerciseColumns

	var ex Exercise
	err := r.db.GetContext(ctx, &ex, query, req.Name, req.Category, req.Description)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, api.Conflict("an exercise named %q already exists", req.Name)
		}
		return nil, err
	}
	return &ex, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Exercise, error) {
	var ex Exercise
	err := r.db.GetContext(ctx, &ex, `SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("exercise not found")
		}
		return nil, err
	}
	return &ex, nil
}

func (r *repository) List(ctx context.Context, category string, limit, offset int) ([]Exercise, error) {
	var exercises []Exercise
	var err error

	if category != "" {
		query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE category = $1 ORDER BY name LIMIT $2 OFFSET $3`
		err = r.db.SelectContext(ctx, &exercises, query, category, limit, offset)
	} else {
		query := `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY name LIMIT $1 OFFSET $2`
		err = r.db.SelectContext(ctx, &exercises, query, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateRequest) (*Exercise, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Category != nil {
		current.Category = *req.Category
	}
	if req.Description != nil {
		current.Description = *req.Description
	}

	query := `
		UPDATE exercises
		SET name = $2, category = $3, description = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + exerciseColumns

	var ex Exercise
	err = r.db.GetContext(ctx, &ex, query, id, current.Name, current.Category, current.Description)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, api.Conflict("an exercise named %q already exists", current.Name)
		}
		return nil, err
	}
	return &ex, nil
}

func (r *repository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExistAll reports whether every given exercise ID is present.
func (r *repository) ExistAll(ctx context.Context, ids []int) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	query, args, err := sqlx.In(`SELECT COUNT(*) FROM exercises WHERE id IN (?)`, ids)
	if err != nil {
		return false, err
	}

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return false, err
	}
	return count == len(ids), nil
}
