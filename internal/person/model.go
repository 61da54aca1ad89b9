package person

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Person is the optional biographical profile attached to a user. At most one
// row per user, enforced by a unique index on user_id.
type Person struct {
	ID             int        `db:"id" json:"id"`
	UserID         int        `db:"user_id" json:"user_id"`
	Title          string     `db:"title" json:"title,omitempty"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	SecondLastName string     `db:"second_last_name" json:"second_last_name,omitempty"`
	BirthDate      *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	PhotoURL       string     `db:"photo_url" json:"photo_url,omitempty"`
	Gender         Gender     `db:"gender" json:"gender,omitempty"`
	BloodType      string     `db:"blood_type" json:"blood_type,omitempty"`
	Phone          string     `db:"phone" json:"phone,omitempty"`
	HeightMeters   *float64   `db:"height_m" json:"height_m,omitempty"`
	WeightKG       *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	Active         bool       `db:"active" json:"active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type UpsertRequest struct {
	Title          string     `json:"title" binding:"max=20"`
	FirstName      string     `json:"first_name" binding:"required,max=80"`
	LastName       string     `json:"last_name" binding:"required,max=80"`
	SecondLastName string     `json:"second_last_name" binding:"max=80"`
	BirthDate      *time.Time `json:"birth_date"`
	PhotoURL       string     `json:"photo_url" binding:"omitempty,url"`
	Gender         Gender     `json:"gender" binding:"omitempty,oneof=male female other"`
	BloodType      string     `json:"blood_type" binding:"omitempty,oneof=O+ O- A+ A- B+ B- AB+ AB-"`
	Phone          string     `json:"phone" binding:"max=20"`
	HeightMeters   *float64   `json:"height_m" binding:"omitempty,gt=0"`
	WeightKG       *float64   `json:"weight_kg" binding:"omitempty,gt=0"`
}
