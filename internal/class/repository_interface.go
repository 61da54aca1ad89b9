package class

import "context"

type Repository interface {
	Create(ctx context.Context, trainerID int, req CreateRequest) (*Class, error)
	FindByID(ctx context.Context, id int) (*Class, error)
	FindDetails(ctx context.Context, id int) (*ClassDetails, error)
	List(ctx context.Context, limit, offset int) ([]Class, error)
	ListByTrainer(ctx context.Context, trainerID, limit, offset int) ([]Class, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Class, error)
	DeleteWithReservations(ctx context.Context, id int) error
}
