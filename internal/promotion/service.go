package promotion

import (
	"context"
	"database/sql"
	"errors"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/logger"
)

type Service interface {
	Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Promotion, error)
	Get(ctx context.Context, id int) (*Promotion, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]Promotion, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Promotion, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create records the calling admin as the issuer.
func (s *service) Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Promotion, error) {
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, api.InvalidInput("end_date must not be before start_date")
	}

	promo, err := s.repo.Create(ctx, claims.UserID, req)
	if err != nil {
		return nil, err
	}

	logger.Infof("Promotion %q created by user %d (%.0f%% off)", promo.Name, claims.UserID, promo.Discount)
	return promo, nil
}

func (s *service) Get(ctx context.Context, id int) (*Promotion, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("promotion not found")
		}
		return nil, err
	}
	return promo, nil
}

func (s *service) List(ctx context.Context, activeOnly bool, limit, offset int) ([]Promotion, error) {
	return s.repo.List(ctx, activeOnly, limit, offset)
}

func (s *service) Update(ctx context.Context, id int, req UpdateRequest) (*Promotion, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EndDate != nil && req.EndDate.Before(current.StartDate) {
		return nil, api.InvalidInput("end_date must not be before start_date")
	}

	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return api.NotFound("promotion not found")
	}
	return nil
}
