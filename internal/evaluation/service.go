package evaluation

import (
	"context"
	"database/sql"
	"errors"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/logger"
)

type Service interface {
	CreateService(ctx context.Context, req CreateServiceRequest) (*GymService, error)
	ListServices(ctx context.Context, limit, offset int) ([]GymService, error)
	SetServiceActive(ctx context.Context, id int, active bool) error

	Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Evaluation, error)
	Get(ctx context.Context, claims *auth.Claims, id int) (*Evaluation, error)
	ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Evaluation, error)
	ListByService(ctx context.Context, serviceID, limit, offset int) ([]Evaluation, error)
	Stats(ctx context.Context, serviceID int) (*ServiceStats, error)
	Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Evaluation, error)
	Delete(ctx context.Context, claims *auth.Claims, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateService(ctx context.Context, req CreateServiceRequest) (*GymService, error) {
	return s.repo.CreateService(ctx, req)
}

func (s *service) ListServices(ctx context.Context, limit, offset int) ([]GymService, error) {
	return s.repo.ListServices(ctx, limit, offset)
}

func (s *service) SetServiceActive(ctx context.Context, id int, active bool) error {
	updated, err := s.repo.SetServiceActive(ctx, id, active)
	if err != nil {
		return err
	}
	if !updated {
		return api.NotFound("service not found")
	}
	return nil
}

// Create rates a service. Only active services accept new evaluations.
func (s *service) Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Evaluation, error) {
	ownerID := claims.ResolveOwner(req.UserID)

	svc, err := s.repo.FindService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("service not found")
		}
		return nil, err
	}
	if !svc.Active {
		return nil, api.Conflict("service %q is not accepting evaluations", svc.Name)
	}

	ev, err := s.repo.Create(ctx, ownerID, req.ServiceID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	logger.Infof("Evaluation %d created: service %d rated %d by user %d", ev.ID, req.ServiceID, req.Rating, ownerID)
	return ev, nil
}

func (s *service) Get(ctx context.Context, claims *auth.Claims, id int) (*Evaluation, error) {
	ev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("evaluation not found")
		}
		return nil, err
	}

	if !claims.IsOwnerOrAdmin(ev.UserID) {
		return nil, api.Forbidden("you cannot view this evaluation")
	}

	return ev, nil
}

func (s *service) ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Evaluation, error) {
	return s.repo.ListByUser(ctx, claims.UserID, limit, offset)
}

func (s *service) ListByService(ctx context.Context, serviceID, limit, offset int) ([]Evaluation, error) {
	if _, err := s.repo.FindService(ctx, serviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("service not found")
		}
		return nil, err
	}
	return s.repo.ListByService(ctx, serviceID, limit, offset)
}

func (s *service) Stats(ctx context.Context, serviceID int) (*ServiceStats, error) {
	if _, err := s.repo.FindService(ctx, serviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("service not found")
		}
		return nil, err
	}
	return s.repo.Stats(ctx, serviceID)
}

func (s *service) Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Evaluation, error) {
	ev, err := s.Get(ctx, claims, id)
	if err != nil {
		return nil, err
	}

	rating := ev.Rating
	if req.Rating != nil {
		rating = *req.Rating
	}
	comment := ev.Comment
	if req.Comment != nil {
		comment = *req.Comment
	}

	return s.repo.Update(ctx, id, rating, comment)
}

func (s *service) Delete(ctx context.Context, claims *auth.Claims, id int) error {
	if _, err := s.Get(ctx, claims, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
