package reservation

import "time"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusAttended  Status = "attended"
	StatusNoShow    Status = "no_show"
)

// Reservation books a user into a class on a specific date. At most one
// non-cancelled reservation per (user, class, date), backed by a partial
// unique index.
type Reservation struct {
	ID         int        `db:"id" json:"id"`
	UserID     int        `db:"user_id" json:"user_id"`
	ClassID    int        `db:"class_id" json:"class_id"`
	ReservedOn time.Time  `db:"reserved_on" json:"reserved_on"`
	Status     Status     `db:"status" json:"status"`
	Comment    string     `db:"comment" json:"comment,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ReservationDetails joins in the class schedule and the member's name for
// the detail and per-class listings.
type ReservationDetails struct {
	Reservation
	ClassName  string `db:"class_name" json:"class_name"`
	StartTime  string `db:"start_time" json:"start_time"`
	EndTime    string `db:"end_time" json:"end_time"`
	TrainerID  int    `db:"class_trainer_id" json:"class_trainer_id"`
	MemberName string `db:"member_name" json:"member_name"`
}

type CreateRequest struct {
	UserID     int       `json:"user_id"`
	ClassID    int       `json:"class_id" binding:"required"`
	ReservedOn time.Time `json:"reserved_on" binding:"required"`
	Comment    string    `json:"comment"`
}

// UpdateRequest changes the status or comment. Attendance states are
// restricted to the class trainer and admins.
type UpdateRequest struct {
	Status  *Status `json:"status" binding:"omitempty,oneof=confirmed cancelled attended no_show"`
	Comment *string `json:"comment"`
}

type AttendanceRequest struct {
	Attended bool `json:"attended"`
}

// ListFilter narrows my-reservations listings.
type ListFilter struct {
	Status Status
	From   *time.Time
	To     *time.Time
}
