package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const reservationColumns = `
	id, user_id, class_id, reserved_on, status, comment, created_at, updated_at
`

const detailColumns = `
	res.id, res.user_id, res.class_id, res.reserved_on, res.status, res.comment,
	res.created_at, res.updated_at,
	c.name AS class_name, c.start_time, c.end_time, c.trainer_id AS class_trainer_id,
	u.username AS member_name
`

func (r *repository) Create(ctx context.Context, userID, classID int, reservedOn time.Time, comment string) (*Reservation, error) {
	query := `
		INSERT INTO reservations (user_id, class_id, reserved_on, status, comment)
		VALUES ($1, $2, $3, 'confirmed', $4)
		RETURNING ` + reservationColumns

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, userID, classID, reservedOn, comment)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var res Reservation
	if err := r.db.GetContext(ctx, &res, query, id); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) FindDetails(ctx context.Context, id int) (*ReservationDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM reservations res
		JOIN classes c ON c.id = res.class_id
		JOIN users u ON u.id = res.user_id
		WHERE res.id = $1
	`

	var details ReservationDetails
	if err := r.db.GetContext(ctx, &details, query, id); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int, filter ListFilter, limit, offset int) ([]ReservationDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM reservations res
		JOIN classes c ON c.id = res.class_id
		JOIN users u ON u.id = res.user_id
		WHERE res.user_id = $1
	`
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND res.status = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND res.reserved_on >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND res.reserved_on <= $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY res.reserved_on DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var reservations []ReservationDetails
	if err := r.db.SelectContext(ctx, &reservations, query, args...); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *repository) ListByClass(ctx context.Context, classID, limit, offset int) ([]ReservationDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM reservations res
		JOIN classes c ON c.id = res.class_id
		JOIN users u ON u.id = res.user_id
		WHERE res.class_id = $1
		ORDER BY res.reserved_on DESC
		LIMIT $2 OFFSET $3
	`

	var reservations []ReservationDetails
	if err := r.db.SelectContext(ctx, &reservations, query, classID, limit, offset); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *repository) HasActiveReservation(ctx context.Context, userID, classID int, reservedOn time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE user_id = $1 AND class_id = $2 AND reserved_on = $3
			  AND status <> 'cancelled'
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, classID, reservedOn); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status Status) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reservationColumns

	var res Reservation
	if err := r.db.GetContext(ctx, &res, query, id, status); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) UpdateComment(ctx context.Context, id int, comment string) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET comment = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reservationColumns

	var res Reservation
	if err := r.db.GetContext(ctx, &res, query, id, comment); err != nil {
		return nil, err
	}
	return &res, nil
}
