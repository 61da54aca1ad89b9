package training

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, userID int, name string, date time.Time, exerciseIDs []int) (*TrainingWithExercises, error)
	FindByID(ctx context.Context, id int) (*TrainingWithExercises, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]TrainingWithExercises, error)
	Update(ctx context.Context, id int, name string, date time.Time, exerciseIDs []int) (*TrainingWithExercises, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const trainingColumns = `id, user_id, name, training_date, created_at, updated_at`

// Create writes the training and its exercise links in one transaction.
func (r *repository) Create(ctx context.Context, userID int, name string, date time.Time, exerciseIDs []int) (*TrainingWithExercises, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO trainings (user_id, name, training_date)
		VALUES ($1, $2, $3)
		RETURNING ` + trainingColumns

	var tr Training
	if err := tx.GetContext(ctx, &tr, query, userID, name, date); err != nil {
		return nil, err
	}

	if err := linkExercises(ctx, tx, tr.ID, exerciseIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &TrainingWithExercises{Training: tr, ExerciseIDs: exerciseIDs}, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*TrainingWithExercises, error) {
	var tr Training
	err := r.db.GetContext(ctx, &tr, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	ids, err := r.exerciseIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TrainingWithExercises{Training: tr, ExerciseIDs: ids}, nil
}

func (r *repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]TrainingWithExercises, error) {
	query := `
		SELECT ` + trainingColumns + `
		FROM trainings
		WHERE user_id = $1
		ORDER BY training_date DESC
		LIMIT $2 OFFSET $3
	`

	var trainings []Training
	if err := r.db.SelectContext(ctx, &trainings, query, userID, limit, offset); err != nil {
		return nil, err
	}

	out := make([]TrainingWithExercises, 0, len(trainings))
	for _, tr := range trainings {
		ids, err := r.exerciseIDs(ctx, tr.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, TrainingWithExercises{Training: tr, ExerciseIDs: ids})
	}
	return out, nil
}

// Update rewrites the exercise links wholesale; partial-link edits are not a
// thing at this layer.
func (r *repository) Update(ctx context.Context, id int, name string, date time.Time, exerciseIDs []int) (*TrainingWithExercises, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE trainings
		SET name = $2, training_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + trainingColumns

	var tr Training
	if err := tx.GetContext(ctx, &tr, query, id, name, date); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM training_exercises WHERE training_id = $1`, id); err != nil {
		return nil, err
	}
	if err := linkExercises(ctx, tx, id, exerciseIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &TrainingWithExercises{Training: tr, ExerciseIDs: exerciseIDs}, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM training_exercises WHERE training_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trainings WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) exerciseIDs(ctx context.Context, trainingID int) ([]int, error) {
	var ids []int
	err := r.db.SelectContext(ctx, &ids,
		`SELECT exercise_id FROM training_exercises WHERE training_id = $1 ORDER BY exercise_id`, trainingID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func linkExercises(ctx context.Context, tx *sqlx.Tx, trainingID int, exerciseIDs []int) error {
	for _, exID := range exerciseIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO training_exercises (training_id, exercise_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			trainingID, exID)
		if err != nil {
			return err
		}
	}
	return nil
}
