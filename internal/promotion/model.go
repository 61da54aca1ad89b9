package promotion

import "time"

// Promotion is a discount campaign issued by an admin.
type Promotion struct {
	ID          int        `db:"id" json:"id"`
	IssuerID    int        `db:"issuer_id" json:"issuer_id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description,omitempty"`
	Discount    float64    `db:"discount" json:"discount"`
	Audience    string     `db:"audience" json:"audience"`
	Application string     `db:"application" json:"application"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	Active      bool       `db:"active" json:"active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type CreateRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description"`
	Discount    float64    `json:"discount" binding:"min=0,max=100"`
	Audience    string     `json:"audience" binding:"required,oneof=everyone members new_members trainers"`
	Application string     `json:"application" binding:"required,oneof=membership class service"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	Description *string    `json:"description"`
	Discount    *float64   `json:"discount" binding:"omitempty,min=0,max=100"`
	Audience    *string    `json:"audience" binding:"omitempty,oneof=everyone members new_members trainers"`
	Application *string    `json:"application" binding:"omitempty,oneof=membership class service"`
	EndDate     *time.Time `json:"end_date"`
	Active      *bool      `json:"active"`
}
