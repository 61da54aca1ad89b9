package membership

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusExpired   Status = "expired"
)

// Membership ties a member to a plan. The code is unique, and at most one
// membership per user may be active at a time; both are backed by indexes.
type Membership struct {
	ID        int        `db:"id" json:"id"`
	UserID    int        `db:"user_id" json:"user_id"`
	Code      string     `db:"code" json:"code"`
	Type      string     `db:"type" json:"type"`
	Service   string     `db:"service" json:"service"`
	Plan      string     `db:"plan" json:"plan"`
	Level     string     `db:"level" json:"level"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	Status    Status     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// MembershipDetails joins in the member's account info for admin listings.
type MembershipDetails struct {
	Membership
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
}

type CreateRequest struct {
	UserID    int        `json:"user_id" binding:"required"`
	Code      string     `json:"code" binding:"required,max=30"`
	Type      string     `json:"type" binding:"required,oneof=individual family corporate"`
	Service   string     `json:"service" binding:"required,oneof=basic full coaching nutritionist"`
	Plan      string     `json:"plan" binding:"required,oneof=annual semiannual quarterly monthly weekly daily"`
	Level     string     `json:"level" binding:"required,oneof=new silver gold diamond"`
	StartDate time.Time  `json:"start_date" binding:"required"`
	EndDate   *time.Time `json:"end_date"`
}

type UpdateRequest struct {
	Type    *string    `json:"type" binding:"omitempty,oneof=individual family corporate"`
	Service *string    `json:"service" binding:"omitempty,oneof=basic full coaching nutritionist"`
	Plan    *string    `json:"plan" binding:"omitempty,oneof=annual semiannual quarterly monthly weekly daily"`
	Level   *string    `json:"level" binding:"omitempty,oneof=new silver gold diamond"`
	EndDate *time.Time `json:"end_date"`
	Status  *Status    `json:"status" binding:"omitempty,oneof=active inactive suspended expired"`
}
