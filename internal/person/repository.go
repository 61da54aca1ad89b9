package person

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID int) (*Person, error)
	Upsert(ctx context.Context, userID int, req UpsertRequest) (*Person, error)
	List(ctx context.Context, limit, offset int) ([]Person, error)
	DeleteByUserID(ctx context.Context, userID int) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const personColumns = `
	id, user_id, title, first_name, last_name, second_last_name, birth_date,
	photo_url, gender, blood_type, phone, height_m, weight_kg, active,
	created_at, updated_at
`

func (r *repository) FindByUserID(ctx context.Context, userID int) (*Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE user_id = $1`

	var p Person
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates the profile on first write and replaces it afterwards. The
// unique index on user_id makes the ON CONFLICT arm safe under concurrency.
func (r *repository) Upsert(ctx context.Context, userID int, req UpsertRequest) (*Person, error) {
	query := `
		INSERT INTO persons (
			user_id, title, first_name, last_name, second_last_name, birth_date,
			photo_url, gender, blood_type, phone, height_m, weight_kg, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, TRUE)
		ON CONFLICT (user_id) DO UPDATE SET
			title = EXCLUDED.title,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			second_last_name = EXCLUDED.second_last_name,
			birth_date = EXCLUDED.birth_date,
			photo_url = EXCLUDED.photo_url,
			gender = EXCLUDED.gender,
			blood_type = EXCLUDED.blood_type,
			phone = EXCLUDED.phone,
			height_m = EXCLUDED.height_m,
			weight_kg = EXCLUDED.weight_kg,
			updated_at = NOW()
		RETURNING ` + personColumns

	var p Person
	err := r.db.GetContext(ctx, &p, query,
		userID, req.Title, req.FirstName, req.LastName, req.SecondLastName,
		req.BirthDate, req.PhotoURL, string(req.Gender), req.BloodType,
		req.Phone, req.HeightMeters, req.WeightKG,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons ORDER BY id LIMIT $1 OFFSET $2`

	var persons []Person
	if err := r.db.SelectContext(ctx, &persons, query, limit, offset); err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *repository) DeleteByUserID(ctx context.Context, userID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
