package evaluation

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateService(ctx context.Context, req CreateServiceRequest) (*GymService, error)
	FindService(ctx context.Context, id int) (*GymService, error)
	ListServices(ctx context.Context, limit, offset int) ([]GymService, error)
	SetServiceActive(ctx context.Context, id int, active bool) (bool, error)

	Create(ctx context.Context, userID, serviceID, rating int, comment string) (*Evaluation, error)
	FindByID(ctx context.Context, id int) (*Evaluation, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]Evaluation, error)
	ListByService(ctx context.Context, serviceID, limit, offset int) ([]Evaluation, error)
	Stats(ctx context.Context, serviceID int) (*ServiceStats, error)
	Update(ctx context.Context, id int, rating int, comment string) (*Evaluation, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const serviceColumns = `id, name, description, active, created_at, updated_at`
const evaluationColumns = `id, user_id, service_id, rating, comment, created_at, updated_at`

func (r *repository) CreateService(ctx context.Context, req CreateServiceRequest) (*GymService, error) {
	query := `
		INSERT INTO services (name, description, active)
		VALUES ($1, $2, TRUE)
		RETURNING ` + serviceColumns

	var svc GymService
	if err := r.db.GetContext(ctx, &svc, query, req.Name, req.Description); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repository) FindService(ctx context.Context, id int) (*GymService, error) {
	var svc GymService
	err := r.db.GetContext(ctx, &svc, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repository) ListServices(ctx context.Context, limit, offset int) ([]GymService, error) {
	var services []GymService
	err := r.db.SelectContext(ctx, &services,
		`SELECT `+serviceColumns+` FROM services ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repository) SetServiceActive(ctx context.Context, id int, active bool) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE services SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) Create(ctx context.Context, userID, serviceID, rating int, comment string) (*Evaluation, error) {
	query := `
		INSERT INTO service_evaluations (user_id, service_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + evaluationColumns

	var ev Evaluation
	if err := r.db.GetContext(ctx, &ev, query, userID, serviceID, rating, comment); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Evaluation, error) {
	var ev Evaluation
	err := r.db.GetContext(ctx, &ev, `SELECT `+evaluationColumns+` FROM service_evaluations WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]Evaluation, error) {
	var evaluations []Evaluation
	err := r.db.SelectContext(ctx, &evaluations,
		`SELECT `+evaluationColumns+` FROM service_evaluations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *repository) ListByService(ctx context.Context, serviceID, limit, offset int) ([]Evaluation, error) {
	var evaluations []Evaluation
	err := r.db.SelectContext(ctx, &evaluations,
		`SELECT `+evaluationColumns+` FROM service_evaluations WHERE service_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		serviceID, limit, offset)
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *repository) Stats(ctx context.Context, serviceID int) (*ServiceStats, error) {
	query := `
		SELECT
			$1::int AS service_id,
			COUNT(*) AS evaluations,
			COALESCE(AVG(rating), 0) AS average_rating
		FROM service_evaluations
		WHERE service_id = $1
	`

	var stats ServiceStats
	if err := r.db.GetContext(ctx, &stats, query, serviceID); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *repository) Update(ctx context.Context, id int, rating int, comment string) (*Evaluation, error) {
	query := `
		UPDATE service_evaluations
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + evaluationColumns

	var ev Evaluation
	if err := r.db.GetContext(ctx, &ev, query, id, rating, comment); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM service_evaluations WHERE id = $1`, id)
	return err
}
