package complaint

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, userID int, req CreateRequest) (*Complaint, error)
	FindByID(ctx context.Context, id int) (*Complaint, error)
	FindDetails(ctx context.Context, id int) (*ComplaintDetails, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]Complaint, error)
	ListByTrainer(ctx context.Context, trainerID, limit, offset int) ([]Complaint, error)
	List(ctx context.Context, limit, offset int) ([]ComplaintDetails, error)
	Update(ctx context.Context, id, rating int, comment string) (*Complaint, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const complaintColumns = `
	id, user_id, trainer_id, class_id, rating, comment, created_at, updated_at
`

const complaintDetailColumns = `
	q.id, q.user_id, q.trainer_id, q.class_id, q.rating, q.comment,
	q.created_at, q.updated_at,
	author.username AS author_name,
	trainer.username AS trainer_name,
	c.name AS class_name
`

func (r *repository) Create(ctx context.Context, userID int, req CreateRequest) (*Complaint, error) {
	query := `
		INSERT INTO complaints (user_id, trainer_id, class_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + complaintColumns

	var cp Complaint
	err := r.db.GetContext(ctx, &cp, query, userID, req.TrainerID, req.ClassID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Complaint, error) {
	var cp Complaint
	err := r.db.GetContext(ctx, &cp, `SELECT `+complaintColumns+` FROM complaints WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) FindDetails(ctx context.Context, id int) (*ComplaintDetails, error) {
	query := `
		SELECT ` + complaintDetailColumns + `
		FROM complaints q
		JOIN users author ON author.id = q.user_id
		JOIN users trainer ON trainer.id = q.trainer_id
		JOIN classes c ON c.id = q.class_id
		WHERE q.id = $1
	`

	var details ComplaintDetails
	if err := r.db.GetContext(ctx, &details, query, id); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]Complaint, error) {
	var complaints []Complaint
	err := r.db.SelectContext(ctx, &complaints,
		`SELECT `+complaintColumns+` FROM complaints WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID, limit, offset int) ([]Complaint, error) {
	var complaints []Complaint
	err := r.db.SelectContext(ctx, &complaints,
		`SELECT `+complaintColumns+` FROM complaints WHERE trainer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		trainerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]ComplaintDetails, error) {
	query := `
		SELECT ` + complaintDetailColumns + `
		FROM complaints q
		JOIN users author ON author.id = q.user_id
		JOIN users trainer ON trainer.id = q.trainer_id
		JOIN classes c ON c.id = q.class_id
		ORDER BY q.created_at DESC
		LIMIT $1 OFFSET $2
	`

	var complaints []ComplaintDetails
	if err := r.db.SelectContext(ctx, &complaints, query, limit, offset); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *repository) Update(ctx context.Context, id, rating int, comment string) (*Complaint, error) {
	query := `
		UPDATE complaints
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + complaintColumns

	var cp Complaint
	if err := r.db.GetContext(ctx, &cp, query, id, rating, comment); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = $1`, id)
	return err
}
