package opinion

import (
	"context"
	"database/sql"
	"errors"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/logger"
)

type Service interface {
	Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Opinion, error)
	Get(ctx context.Context, claims *auth.Claims, id int) (*Opinion, error)
	GetDetails(ctx context.Context, id int) (*OpinionDetails, error)
	ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Opinion, error)
	List(ctx context.Context, status Status, limit, offset int) ([]OpinionDetails, error)
	Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Opinion, error)
	Answer(ctx context.Context, claims *auth.Claims, id int, req AnswerRequest) (*Opinion, error)
	Delete(ctx context.Context, claims *auth.Claims, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*Opinion, error) {
	op, err := s.repo.Create(ctx, claims.UserID, req)
	if err != nil {
		return nil, err
	}

	logger.Infof("Opinion %d (%s) submitted by user %d", op.ID, op.Type, claims.UserID)
	return op, nil
}

func (s *service) Get(ctx context.Context, claims *auth.Claims, id int) (*Opinion, error) {
	op, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !claims.IsOwnerOrAdmin(op.UserID) {
		return nil, api.Forbidden("you cannot view this opinion")
	}

	return op, nil
}

func (s *service) GetDetails(ctx context.Context, id int) (*OpinionDetails, error) {
	details, err := s.repo.FindDetails(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("opinion not found")
		}
		return nil, err
	}
	return details, nil
}

func (s *service) ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]Opinion, error) {
	return s.repo.ListByUser(ctx, claims.UserID, limit, offset)
}

func (s *service) List(ctx context.Context, status Status, limit, offset int) ([]OpinionDetails, error) {
	return s.repo.List(ctx, status, limit, offset)
}

// Update edits the author's own text, but an answered opinion is frozen.
func (s *service) Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*Opinion, error) {
	op, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if op.UserID != claims.UserID {
		return nil, api.Forbidden("only the author can edit an opinion")
	}
	if op.Status == StatusAnswered {
		return nil, api.Conflict("an answered opinion cannot be edited")
	}

	opinionType := op.Type
	if req.Type != nil {
		opinionType = *req.Type
	}
	content := op.Content
	if req.Content != nil {
		content = *req.Content
	}

	return s.repo.Update(ctx, id, opinionType, content)
}

// Answer is the admin reply; it flips the opinion to answered.
func (s *service) Answer(ctx context.Context, claims *auth.Claims, id int, req AnswerRequest) (*Opinion, error) {
	op, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if op.Status == StatusAnswered {
		return nil, api.Conflict("opinion has already been answered")
	}

	answered, err := s.repo.Answer(ctx, id, claims.UserID, req.Answer)
	if err != nil {
		return nil, err
	}

	logger.Infof("Opinion %d answered by user %d", id, claims.UserID)
	return answered, nil
}

func (s *service) Delete(ctx context.Context, claims *auth.Claims, id int) error {
	op, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !claims.IsOwnerOrAdmin(op.UserID) {
		return api.Forbidden("you cannot delete this opinion")
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) find(ctx context.Context, id int) (*Opinion, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("opinion not found")
		}
		return nil, err
	}
	return op, nil
}
