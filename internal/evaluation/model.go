package evaluation

import "time"

// GymService is a rateable facility service (spa, nutrition desk, etc).
// Inactive services cannot receive new evaluations.
type GymService struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description,omitempty"`
	Active      bool       `db:"active" json:"active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type Evaluation struct {
	ID        int        `db:"id" json:"id"`
	UserID    int        `db:"user_id" json:"user_id"`
	ServiceID int        `db:"service_id" json:"service_id"`
	Rating    int        `db:"rating" json:"rating"`
	Comment   string     `db:"comment" json:"comment,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ServiceStats aggregates the ratings of one service.
type ServiceStats struct {
	ServiceID     int     `db:"service_id" json:"service_id"`
	Evaluations   int     `db:"evaluations" json:"evaluations"`
	AverageRating float64 `db:"average_rating" json:"average_rating"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type CreateRequest struct {
	UserID    int    `json:"user_id"`
	ServiceID int    `json:"service_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type UpdateRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}
