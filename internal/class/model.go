package class

import "time"

// Class is a recurring weekly session run by a trainer.
type Class struct {
	ID              int        `db:"id" json:"id"`
	TrainerID       int        `db:"trainer_id" json:"trainer_id"`
	Name            string     `db:"name" json:"name"`
	Description     string     `db:"description" json:"description,omitempty"`
	StartDay        string     `db:"start_day" json:"start_day"`
	EndDay          string     `db:"end_day" json:"end_day"`
	StartTime       string     `db:"start_time" json:"start_time"`
	EndTime         string     `db:"end_time" json:"end_time"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	Active          bool       `db:"active" json:"active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ClassDetails adds the trainer's name and the live reservation count for the
// admin and trainer dashboards.
type ClassDetails struct {
	Class
	TrainerName      string `db:"trainer_name" json:"trainer_name"`
	ReservationCount int    `db:"reservation_count" json:"reservation_count"`
}

type CreateRequest struct {
	TrainerID       int    `json:"trainer_id"`
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description"`
	StartDay        string `json:"start_day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	EndDay          string `json:"end_day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime       string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime         string `json:"end_time" binding:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=480"`
}

// UpdateRequest patches only the supplied fields.
type UpdateRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=100"`
	Description     *string `json:"description"`
	StartDay        *string `json:"start_day" binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	EndDay          *string `json:"end_day" binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime       *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime         *string `json:"end_time" binding:"omitempty,datetime=15:04"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	Active          *bool   `json:"active"`
}
