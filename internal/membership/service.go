package membership

import (
	"context"
	"database/sql"
	"errors"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/db"
	"gymcore/internal/logger"
	"gymcore/internal/metrics"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Membership, error)
	Get(ctx context.Context, claims *auth.Claims, id int) (*Membership, error)
	GetDetails(ctx context.Context, id int) (*MembershipDetails, error)
	GetMine(ctx context.Context, claims *auth.Claims) (*Membership, error)
	List(ctx context.Context, status Status, limit, offset int) ([]MembershipDetails, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Membership, error)
	Delete(ctx context.Context, id int) error
}

// UserChecker guards the foreign key before insert.
type UserChecker interface {
	UserExists(ctx context.Context, id int) (bool, error)
}

type service struct {
	repo  Repository
	users UserChecker
}

func NewService(repo Repository, users UserChecker) Service {
	return &service{repo: repo, users: users}
}

// Create enrolls a user. Codes are unique and a user can hold only one
// active membership; the database indexes settle races the pre-checks miss.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Membership, error) {
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, api.InvalidInput("end_date must not be before start_date")
	}

	exists, err := s.users.UserExists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, api.NotFound("user not found")
	}

	taken, err := s.repo.CodeExists(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, api.Conflict("membership code %q is already in use", req.Code)
	}

	active, err := s.repo.HasActiveMembership(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, api.Conflict("user %d already has an active membership", req.UserID)
	}

	ms, err := s.repo.Create(ctx, req)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, api.Conflict("membership code or active membership already exists")
		}
		return nil, err
	}

	metrics.RecordMembership(ms.Type)
	logger.Infof("Membership %s created for user %d", ms.Code, ms.UserID)
	return ms, nil
}

func (s *service) Get(ctx context.Context, claims *auth.Claims, id int) (*Membership, error) {
	ms, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("membership not found")
		}
		return nil, err
	}

	if !claims.IsOwnerOrAdmin(ms.UserID) {
		return nil, api.Forbidden("you cannot view this membership")
	}

	return ms, nil
}

func (s *service) GetDetails(ctx context.Context, id int) (*MembershipDetails, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("membership not found")
		}
		return nil, err
	}
	return details, nil
}

func (s *service) GetMine(ctx context.Context, claims *auth.Claims) (*Membership, error) {
	ms, err := s.repo.FindActiveByUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("you have no active membership")
		}
		return nil, err
	}
	return ms, nil
}

func (s *service) List(ctx context.Context, status Status, limit, offset int) ([]MembershipDetails, error) {
	return s.repo.List(ctx, status, limit, offset)
}

func (s *service) Update(ctx context.Context, id int, req UpdateRequest) (*Membership, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("membership not found")
		}
		return nil, err
	}

	if req.EndDate != nil && req.EndDate.Before(current.StartDate) {
		return nil, api.InvalidInput("end_date must not be before start_date")
	}

	// Reactivating must not create a second active membership for the user.
	if req.Status != nil && *req.Status == StatusActive && current.Status != StatusActive {
		active, err := s.repo.HasActiveMembership(ctx, current.UserID)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, api.Conflict("user %d already has an active membership", current.UserID)
		}
	}

	ms, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, api.Conflict("user %d already has an active membership", current.UserID)
		}
		return nil, err
	}
	return ms, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return api.NotFound("membership not found")
	}
	return nil
}
