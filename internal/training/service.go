package training

import (
	"context"
	"database/sql"
	"errors"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/logger"
)

type Service interface {
	Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*TrainingWithExercises, error)
	Get(ctx context.Context, claims *auth.Claims, id int) (*TrainingWithExercises, error)
	ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]TrainingWithExercises, error)
	Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*TrainingWithExercises, error)
	Delete(ctx context.Context, claims *auth.Claims, id int) error
}

// ExerciseCatalog verifies the referenced exercises exist before linking.
type ExerciseCatalog interface {
	ExistAll(ctx context.Context, ids []int) (bool, error)
}

type service struct {
	repo      Repository
	exercises ExerciseCatalog
}

func NewService(repo Repository, exercises ExerciseCatalog) Service {
	return &service{repo: repo, exercises: exercises}
}

func (s *service) Create(ctx context.Context, claims *auth.Claims, req CreateRequest) (*TrainingWithExercises, error) {
	ownerID := claims.ResolveOwner(req.UserID)

	ok, err := s.exercises.ExistAll(ctx, req.ExerciseIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.InvalidInput("one or more exercise IDs do not exist")
	}

	tr, err := s.repo.Create(ctx, ownerID, req.Name, req.Date, req.ExerciseIDs)
	if err != nil {
		return nil, err
	}

	logger.Infof("Training %d created for user %d with %d exercises", tr.ID, ownerID, len(req.ExerciseIDs))
	return tr, nil
}

func (s *service) Get(ctx context.Context, claims *auth.Claims, id int) (*TrainingWithExercises, error) {
	tr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.NotFound("training not found")
		}
		return nil, err
	}

	if !claims.IsOwnerOrAdmin(tr.UserID) {
		return nil, api.Forbidden("you cannot view this training")
	}

	return tr, nil
}

func (s *service) ListMine(ctx context.Context, claims *auth.Claims, limit, offset int) ([]TrainingWithExercises, error) {
	return s.repo.ListByUser(ctx, claims.UserID, limit, offset)
}

func (s *service) Update(ctx context.Context, claims *auth.Claims, id int, req UpdateRequest) (*TrainingWithExercises, error) {
	tr, err := s.Get(ctx, claims, id)
	if err != nil {
		return nil, err
	}

	name := tr.Name
	if req.Name != nil {
		name = *req.Name
	}
	date := tr.Date
	if req.Date != nil {
		date = *req.Date
	}
	exerciseIDs := tr.ExerciseIDs
	if req.ExerciseIDs != nil {
		if len(req.ExerciseIDs) == 0 {
			return nil, api.InvalidInput("a training needs at least one exercise")
		}
		ok, err := s.exercises.ExistAll(ctx, req.ExerciseIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, api.InvalidInput("one or more exercise IDs do not exist")
		}
		exerciseIDs = req.ExerciseIDs
	}

	return s.repo.Update(ctx, id, name, date, exerciseIDs)
}

func (s *service) Delete(ctx context.Context, claims *auth.Claims, id int) error {
	if _, err := s.Get(ctx, claims, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
