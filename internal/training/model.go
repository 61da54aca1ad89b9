package training

import "time"

// Training is a member's workout on a date, composed of catalog exercises
// through a join table.
type Training struct {
	ID        int        `db:"id" json:"id"`
	UserID    int        `db:"user_id" json:"user_id"`
	Name      string     `db:"name" json:"name"`
	Date      time.Time  `db:"training_date" json:"date"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type TrainingWithExercises struct {
	Training
	ExerciseIDs []int `json:"exercise_ids"`
}

type CreateRequest struct {
	UserID      int       `json:"user_id"`
	Name        string    `json:"name" binding:"required,max=100"`
	Date        time.Time `json:"date" binding:"required"`
	ExerciseIDs []int     `json:"exercise_ids" binding:"required,min=1"`
}

type UpdateRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	Date        *time.Time `json:"date"`
	ExerciseIDs []int      `json:"exercise_ids"`
}
