package opinion

import "time"

type Status string

const (
	StatusUnanswered Status = "unanswered"
	StatusAnswered   Status = "answered"
)

// Opinion is free-text customer feedback. Once answered it is frozen: the
// author can no longer edit it.
type Opinion struct {
	ID         int        `db:"id" json:"id"`
	UserID     int        `db:"user_id" json:"user_id"`
	Type       string     `db:"type" json:"type"`
	Content    string     `db:"content" json:"content"`
	Answer     string     `db:"answer" json:"answer,omitempty"`
	AnsweredBy *int       `db:"answered_by" json:"answered_by,omitempty"`
	Status     Status     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// OpinionDetails adds the author's and responder's usernames for admin views.
type OpinionDetails struct {
	Opinion
	AuthorName    string  `db:"author_name" json:"author_name"`
	ResponderName *string `db:"responder_name" json:"responder_name,omitempty"`
}

type CreateRequest struct {
	Type    string `json:"type" binding:"required,oneof=suggestion complaint praise question"`
	Content string `json:"content" binding:"required"`
}

type UpdateRequest struct {
	Type    *string `json:"type" binding:"omitempty,oneof=suggestion complaint praise question"`
	Content *string `json:"content"`
}

type AnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}
