package class

import (
	"context"
	"database/sql"
	"errors"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/logger"
)

type Service interface {
	List(ctx context.Context, limit, offset int) ([]Class, error)
	ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Class, error)
	Get(ctx context.Context, id int) (*Class, error)
	GetDetails(ctx context.Context, id int) (*ClassDetails, error)
	Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Class, error)
	Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Class, error)
	Delete(ctx context.Context, claims *auth.Claims, id int) error
}

// RoleDirectory answers whether a user carries a given role. Implemented by
// the user repository.
type RoleDirectory interface {
	UserExists(ctx context.Context, id int) (bool, error)
	RolesOf(ctx context.Context, userID int) ([]string, error)
}

type service struct {
	repo  Repository
	users RoleDirectory
}

func NewService(repo Repository, users RoleDirectory) Service {
	return &service{repo: repo, users: users}
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Class, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Class, error) {
	return s.repo.ListByTrainer(ctx, claims.UserID, limit, offset)
}

func (s *service) Get(ctx context.Context, id int) (*Class, error) {
	cls, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("class not found")
		}
		return nil, err
	}
	return cls, nil
}

func (s *service) GetDetails(ctx context.Context, id int) (*ClassDetails, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("class not found")
		}
		return nil, err
	}
	return details, nil
}

// Create registers a class for the calling trainer. Admins may create on
// behalf of another trainer via trainer_id; anyone else gets their own ID
// regardless of what they sent.
func (s *service) Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Class, error) {
	trainerID := claims.ResolveOwner(req.TrainerID)

	if trainerID != claims.UserID {
		exists, err := s.users.UserExists(ctx, trainerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, api.NotFound("trainer not found")
		}

		roles, err := s.users.RolesOf(ctx, trainerID)
		if err != nil {
			return nil, err
		}
		if !hasRole(roles, auth.RoleTrainer) {
			return nil, api.InvalidInput("user %d is not a trainer", trainerID)
		}
	}

	cls, err := s.repo.Create(ctx, trainerID, req)
	if err != nil {
		return nil, err
	}

	logger.Infof("Class %q created by trainer %d (id=%d)", cls.Name, trainerID, cls.ID)
	return cls, nil
}

func (s *service) Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Class, error) {
	cls, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !claims.CanManageClass(cls.TrainerID) {
		return nil, api.Forbidden("you do not manage this class")
	}

	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, claims *auth.Claims, id int) error {
	cls, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !claims.CanManageClass(cls.TrainerID) {
		return api.Forbidden("you do not manage this class")
	}

	if err := s.repo.DeleteWithReservations(ctx, id); err != nil {
		return err
	}

	logger.Infof("Class %d deleted by user %d", id, claims.UserID)
	return nil
}

func hasRole(roles []string, want string) bool {
	for _, role := range roles {
		if role == want {
			return true
		}
	}
	return false
}
