package complaint

import (
	"context"
	"database/sql"
	"errors"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/class"
	"gymcore/internal/logger"
)

type Service interface {
	Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Complaint, error)
	Get(ctx context.Context, claims *auth.Claims, id int) (*Complaint, error)
	GetDetails(ctx context.Context, claims *auth.Claims, id int) (*ComplaintDetails, error)
	ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Complaint, error)
	ListAboutMe(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Complaint, error)
	List(ctx context.Context, limit, offset int) ([]ComplaintDetails, error)
	Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Complaint, error)
	Delete(ctx context.Context, claims *auth.Claims, id int) error
}

type RoleDirectory interface {
	UserExists(ctx context.Context, id int) (bool, error)
	RolesOf(ctx context.Context, userID int) ([]string, error)
}

type ClassDirectory interface {
	FindByID(ctx context.Context, id int) (*class.Class, error)
}

type service struct {
	repo    Repository
	users   RoleDirectory
	classes ClassDirectory
}

func NewService(repo Repository, users RoleDirectory, classes ClassDirectory) Service {
	return &service{repo: repo, users: users, classes: classes}
}

// Create validates the (trainer, class) pair: the trainer must exist and
// carry the trainer role, and the class must be that trainer's class.
func (s *service) Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Complaint, error) {
	exists, err := s.users.UserExists(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, api.NotFound("trainer not found")
	}

	roles, err := s.users.RolesOf(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}
	if !hasRole(roles, auth.RoleTrainer) {
		return nil, api.InvalidInput("user %d is not a trainer", req.TrainerID)
	}

	cls, err := s.classes.FindByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("class not found")
		}
		return nil, err
	}
	if cls.TrainerID != req.TrainerID {
		return nil, api.InvalidInput("class %d does not belong to trainer %d", req.ClassID, req.TrainerID)
	}

	cp, err := s.repo.Create(ctx, claims.UserID, req)
	if err != nil {
		return nil, err
	}

	logger.Infof("Complaint %d filed by user %d against trainer %d (class %d)", cp.ID, claims.UserID, req.TrainerID, req.ClassID)
	return cp, nil
}

func (s *service) Get(ctx context.Context, claims *auth.Claims, id int) (*Complaint, error) {
	cp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canRead(claims, cp) {
		return nil, api.Forbidden("you cannot view this complaint")
	}

	return cp, nil
}

func (s *service) GetDetails(ctx context.Context, claims *auth.Claims, id int) (*ComplaintDetails, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("complaint not found")
		}
		return nil, err
	}

	if !s.canRead(claims, &details.Complaint) {
		return nil, api.Forbidden("you cannot view this complaint")
	}

	return details, nil
}

func (s *service) ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Complaint, error) {
	return s.repo.ListByUser(ctx, claims.UserID, limit, offset)
}

// ListAboutMe returns complaints filed against the calling trainer.
func (s *service) ListAboutMe(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Complaint, error) {
	return s.repo.ListByTrainer(ctx, claims.UserID, limit, offset)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]ComplaintDetails, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update is author-only; the accused trainer cannot soften the record.
func (s *service) Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Complaint, error) {
	cp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if cp.UserID != claims.UserID {
		return nil, api.Forbidden("only the author can edit a complaint")
	}

	rating := cp.Rating
	if req.Rating != nil {
		rating = *req.Rating
	}
	comment := cp.Comment
	if req.Comment != nil {
		comment = *req.Comment
	}

	return s.repo.Update(ctx, id, rating, comment)
}

func (s *service) Delete(ctx context.Context, claims *auth.Claims, id int) error {
	cp, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !claims.IsOwnerOrAdmin(cp.UserID) {
		return api.Forbidden("you cannot delete this complaint")
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) find(ctx context.Context, id int) (*Complaint, error) {
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("complaint not found")
		}
		return nil, err
	}
	return cp, nil
}

func (s *service) canRead(claims *auth.Claims, cp *Complaint) bool {
	return claims.IsOwnerOrAdmin(cp.UserID) || claims.UserID == cp.TrainerID
}

func hasRole(roles []string, want string) bool {
	for _, role := range roles {
		if role == want {
			return true
		}
	}
	return false
}
