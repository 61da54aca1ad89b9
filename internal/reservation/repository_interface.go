package reservation

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID, classID int, reservedOn time.Time, comment string) (*Reservation, error)
	FindByID(ctx context.Context, id int) (*Reservation, error)
	FindDetails(ctx context.Context, id int) (*ReservationDetails, error)
	ListByUser(ctx context.Context, userID int, filter ListFilter, limit, offset int) ([]ReservationDetails, error)
	ListByClass(ctx context.Context, classID, limit, offset int) ([]ReservationDetails, error)
	HasActiveReservation(ctx context.Context, userID, classID int, reservedOn time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int, status Status) (*Reservation, error)
	UpdateComment(ctx context.Context, id int, comment string) (*Reservation, error)
}
