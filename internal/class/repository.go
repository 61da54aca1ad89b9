package class

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const classColumns = `
	id, trainer_id, name, description, start_day, end_day, start_time, end_time,
	duration_minutes, active, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, trainerID int, req CreateRequest) (*Class, error) {
	query := `
		INSERT INTO classes (
			trainer_id, name, description, start_day, end_day, start_time,
			end_time, duration_minutes, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING ` + classColumns

	var cls Class
	err := r.db.GetContext(ctx, &cls, query,
		trainerID, req.Name, req.Description, req.StartDay, req.EndDay,
		req.StartTime, req.EndTime, req.DurationMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &cls, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	var cls Class
	if err := r.db.GetContext(ctx, &cls, query, id); err != nil {
		return nil, err
	}
	return &cls, nil
}

func (r *repository) FindDetails(ctx context.Context, id int) (*ClassDetails, error) {
	query := `
		SELECT
			c.id, c.trainer_id, c.name, c.description, c.start_day, c.end_day,
			c.start_time, c.end_time, c.duration_minutes, c.active,
			c.created_at, c.updated_at,
			u.username AS trainer_name,
			COUNT(res.id) FILTER (WHERE res.status <> 'cancelled') AS reservation_count
		FROM classes c
		JOIN users u ON u.id = c.trainer_id
		LEFT JOIN reservations res ON res.class_id = c.id
		WHERE c.id = $1
		GROUP BY c.id, u.username
	`

	var details ClassDetails
	if err := r.db.GetContext(ctx, &details, query, id); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes ORDER BY id LIMIT $1 OFFSET $2`

	var classes []Class
	if err := r.db.SelectContext(ctx, &classes, query, limit, offset); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID, limit, offset int) ([]Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE trainer_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	var classes []Class
	if err := r.db.SelectContext(ctx, &classes, query, trainerID, limit, offset); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateRequest) (*Class, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.StartDay != nil {
		add("start_day", *req.StartDay)
	}
	if req.EndDay != nil {
		add("end_day", *req.EndDay)
	}
	if req.StartTime != nil {
		add("start_time", *req.StartTime)
	}
	if req.EndTime != nil {
		add("end_time", *req.EndTime)
	}
	if req.DurationMinutes != nil {
		add("duration_minutes", *req.DurationMinutes)
	}
	if req.Active != nil {
		add("active", *req.Active)
	}

	query := fmt.Sprintf(
		`UPDATE classes SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), classColumns,
	)

	var cls Class
	if err := r.db.GetContext(ctx, &cls, query, args...); err != nil {
		return nil, err
	}
	return &cls, nil
}

// DeleteWithReservations removes the class and its reservations atomically so
// a crash between the two deletes cannot orphan reservation rows.
func (r *repository) DeleteWithReservations(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE class_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
