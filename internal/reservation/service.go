package reservation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/class"
	"gymcore/internal/db"
	"gymcore/internal/logger"
	"gymcore/internal/metrics"
	"gymcore/internal/user"
)

type Service interface {
	Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Reservation, error)
	GetDetails(ctx context.Context, claims *auth.Claims, id int) (*ReservationDetails, error)
	ListMine(ctx context.Context, claims *auth.Claims, filter ListFilter, limit, offset int) ([]ReservationDetails, error)
	ListByClass(ctx context.Context, claims *auth.Claims, classID, limit, offset int) ([]ReservationDetails, error)
	Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Reservation, error)
	Cancel(ctx context.Context, claims *auth.Claims, id int) (*Reservation, error)
	MarkAttendance(ctx context.Context, claims *auth.Claims, id int, attended bool) (*Reservation, error)
}

type ClassDirectory interface {
	FindByID(ctx context.Context, id int) (*class.Class, error)
}

type UserDirectory interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type Mailer interface {
	SendReservationConfirmation(ctx context.Context, to, name, className string, when time.Time) error
	SendReservationCancellation(ctx context.Context, to, name, className string) error
}

type service struct {
	repo    Repository
	classes ClassDirectory
	users   UserDirectory
	mailer  Mailer
}

func NewService(repo Repository, classes ClassDirectory, users UserDirectory, mailer Mailer) Service {
	return &service{repo: repo, classes: classes, users: users, mailer: mailer}
}

// Create books a spot. The class must exist and be active, and the member
// must not already hold a non-cancelled reservation for that class and date.
// The partial unique index backs the duplicate check under concurrency.
func (s *service) Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Reservation, error) {
	ownerID := claims.ResolveOwner(req.UserID)

	cls, err := s.classes.FindByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("class not found")
		}
		return nil, err
	}
	if !cls.Active {
		return nil, api.InvalidInput("class is not active")
	}

	reservedOn := req.ReservedOn.Truncate(24 * time.Hour)

	taken, err := s.repo.HasActiveReservation(ctx, ownerID, req.ClassID, reservedOn)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, api.Conflict("an active reservation for this class and date already exists")
	}

	res, err := s.repo.Create(ctx, ownerID, req.ClassID, reservedOn, req.Comment)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, api.Conflict("an active reservation for this class and date already exists")
		}
		return nil, err
	}

	metrics.RecordReservation(string(StatusConfirmed))
	s.notifyConfirmation(ctx, ownerID, cls.Name, reservedOn)
	logger.Infof("Reservation %d created for user %d, class %d", res.ID, ownerID, req.ClassID)
	return res, nil
}

func (s *service) GetDetails(ctx context.Context, claims *auth.Claims, id int) (*ReservationDetails, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("reservation not found")
		}
		return nil, err
	}

	if !claims.IsOwnerOrAdmin(details.UserID) && !claims.CanManageClass(details.TrainerID) {
		return nil, api.Forbidden("you cannot view this reservation")
	}

	return details, nil
}

func (s *service) ListMine(ctx context.Context, claims *auth.Claims, filter ListFilter, limit, offset int) ([]ReservationDetails, error) {
	return s.repo.ListByUser(ctx, claims.UserID, filter, limit, offset)
}

// ListByClass is for the class's trainer and admins.
func (s *service) ListByClass(ctx context.Context, claims *auth.Claims, classID, limit, offset int) ([]ReservationDetails, error) {
	cls, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("class not found")
		}
		return nil, err
	}

	if !claims.CanManageClass(cls.TrainerID) {
		return nil, api.Forbidden("you do not manage this class")
	}

	return s.repo.ListByClass(ctx, classID, limit, offset)
}

func (s *service) Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Reservation, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("reservation not found")
		}
		return nil, err
	}

	if !claims.IsOwnerOrAdmin(details.UserID) && !claims.CanManageClass(details.TrainerID) {
		return nil, api.Forbidden("you cannot modify this reservation")
	}

	res := &details.Reservation
	if req.Status != nil && *req.Status != details.Status {
		// Attendance is the trainer's call, not the member's.
		if (*req.Status == StatusAttended || *req.Status == StatusNoShow) && !claims.CanManageClass(details.TrainerID) {
			return nil, api.Forbidden("only the class trainer can set attendance")
		}

		res, err = s.repo.UpdateStatus(ctx, id, *req.Status)
		if err != nil {
			return nil, err
		}
	}

	if req.Comment != nil {
		res, err = s.repo.UpdateComment(ctx, id, *req.Comment)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Cancel releases the spot. Attended and already-cancelled reservations stay
// as they are.
func (s *service) Cancel(ctx context.Context, claims *auth.Claims, id int) (*Reservation, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("reservation not found")
		}
		return nil, err
	}

	if !claims.IsOwnerOrAdmin(details.UserID) && !claims.CanManageClass(details.TrainerID) {
		return nil, api.Forbidden("you cannot cancel this reservation")
	}

	switch details.Status {
	case StatusCancelled:
		return nil, api.Conflict("reservation is already cancelled")
	case StatusAttended:
		return nil, api.Conflict("an attended reservation cannot be cancelled")
	}

	res, err := s.repo.UpdateStatus(ctx, id, StatusCancelled)
	if err != nil {
		return nil, err
	}

	metrics.RecordReservationCancellation()
	s.notifyCancellation(ctx, details.UserID, details.ClassName)
	logger.Infof("Reservation %d cancelled by user %d", id, claims.UserID)
	return res, nil
}

func (s *service) MarkAttendance(ctx context.Context, claims *auth.Claims, id int, attended bool) (*Reservation, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("reservation not found")
		}
		return nil, err
	}

	if !claims.CanManageClass(details.TrainerID) {
		return nil, api.Forbidden("only the class trainer can set attendance")
	}
	if details.Status == StatusCancelled {
		return nil, api.Conflict("attendance cannot be set on a cancelled reservation")
	}

	status := StatusNoShow
	if attended {
		status = StatusAttended
	}

	res, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	metrics.RecordReservation(string(status))
	return res, nil
}

func (s *service) notifyConfirmation(ctx context.Context, userID int, className string, when time.Time) {
	member, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.Errorf("Could not load user %d for confirmation email: %v", userID, err)
		return
	}
	if err := s.mailer.SendReservationConfirmation(ctx, member.Email, member.Username, className, when); err != nil {
		logger.Errorf("Could not queue confirmation email for user %d: %v", userID, err)
	}
}

func (s *service) notifyCancellation(ctx context.Context, userID int, className string) {
	member, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.Errorf("Could not load user %d for cancellation email: %v", userID, err)
		return
	}
	if err := s.mailer.SendReservationCancellation(ctx, member.Email, member.Username, className); err != nil {
		logger.Errorf("Could not queue cancellation email for user %d: %v", userID, err)
	}
}
