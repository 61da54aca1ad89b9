package complaint

import "time"

// Complaint is a member's 1-5 rating and comment about a trainer's handling
// of a specific class. The referenced class must belong to that trainer.
type Complaint struct {
	ID        int        `db:"id" json:"id"`
	UserID    int        `db:"user_id" json:"user_id"`
	TrainerID int        `db:"trainer_id" json:"trainer_id"`
	ClassID   int        `db:"class_id" json:"class_id"`
	Rating    int        `db:"rating" json:"rating"`
	Comment   string     `db:"comment" json:"comment"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type ComplaintDetails struct {
	Complaint
	AuthorName  string `db:"author_name" json:"author_name"`
	TrainerName string `db:"trainer_name" json:"trainer_name"`
	ClassName   string `db:"class_name" json:"class_name"`
}

type CreateRequest struct {
	TrainerID int    `json:"trainer_id" binding:"required"`
	ClassID   int    `json:"class_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required"`
}

type UpdateRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}
