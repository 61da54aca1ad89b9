package opinion

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, userID int, req CreateRequest) (*Opinion, error)
	FindByID(ctx context.Context, id int) (*Opinion, error)
	FindDetails(ctx context.Context, id int) (*OpinionDetails, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]Opinion, error)
	List(ctx context.Context, status Status, limit, offset int) ([]OpinionDetails, error)
	Update(ctx context.Context, id int, opinionType, content string) (*Opinion, error)
	Answer(ctx context.Context, id, responderID int, answer string) (*Opinion, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const opinionColumns = `
	id, user_id, type, content, answer, answered_by, status, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, userID int, req CreateRequest) (*Opinion, error) {
	query := `
		INSERT INTO customer_opinions (user_id, type, content, status)
		VALUES ($1, $2, $3, 'unanswered')
		RETURNING ` + opinionColumns

	var op Opinion
	if err := r.db.GetContext(ctx, &op, query, userID, req.Type, req.Content); err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Opinion, error) {
	var op Opinion
	err := r.db.GetContext(ctx, &op, `SELECT `+opinionColumns+` FROM customer_opinions WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *repository) FindDetails(ctx context.Context, id int) (*OpinionDetails, error) {
	query := `
		SELECT
			o.id, o.user_id, o.type, o.content, o.answer, o.answered_by,
			o.status, o.created_at, o.updated_at,
			author.username AS author_name,
			responder.username AS responder_name
		FROM customer_opinions o
		JOIN users author ON author.id = o.user_id
		LEFT JOIN users responder ON responder.id = o.answered_by
		WHERE o.id = $1
	`

	var details OpinionDetails
	if err := r.db.GetContext(ctx, &details, query, id); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]Opinion, error) {
	var opinions []Opinion
	err := r.db.SelectContext(ctx, &opinions,
		`SELECT `+opinionColumns+` FROM customer_opinions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return opinions, nil
}

func (r *repository) List(ctx context.Context, status Status, limit, offset int) ([]OpinionDetails, error) {
	query := `
		SELECT
			o.id, o.user_id, o.type, o.content, o.answer, o.answered_by,
			o.status, o.created_at, o.updated_at,
			author.username AS author_name,
			responder.username AS responder_name
		FROM customer_opinions o
		JOIN users author ON author.id = o.user_id
		LEFT JOIN users responder ON responder.id = o.answered_by
	`
	args := []interface{}{}

	if status != "" {
		args = append(args, status)
		query += ` WHERE o.status = $1`
	}

	query += ` ORDER BY o.created_at DESC`
	if len(args) == 1 {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	var opinions []OpinionDetails
	if err := r.db.SelectContext(ctx, &opinions, query, args...); err != nil {
		return nil, err
	}
	return opinions, nil
}

func (r *repository) Update(ctx context.Context, id int, opinionType, content string) (*Opinion, error) {
	query := `
		UPDATE customer_opinions
		SET type = $2, content = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + opinionColumns

	var op Opinion
	if err := r.db.GetContext(ctx, &op, query, id, opinionType, content); err != nil {
		return nil, err
	}
	return &op, nil
}

// Answer stores the reply and flips the status in one statement.
func (r *repository) Answer(ctx context.Context, id, responderID int, answer string) (*Opinion, error) {
	query := `
		UPDATE customer_opinions
		SET answer = $3, answered_by = $2, status = 'answered', updated_at = NOW()
		WHERE id = $1
		RETURNING ` + opinionColumns

	var op Opinion
	if err := r.db.GetContext(ctx, &op, query, id, responderID, answer); err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customer_opinions WHERE id = $1`, id)
	return err
}
