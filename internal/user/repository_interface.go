package user

import "context"

type Repository interface {
	Create(ctx context.Context, username, email, passwordHash, phone string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UserExists(ctx context.Context, id int) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]UserWithRoles, error)

	RolesOf(ctx context.Context, userID int) ([]string, error)
	FindRoleByName(ctx context.Context, name string) (*Role, error)
	AssignRole(ctx context.Context, userID, roleID int) error
	RevokeRole(ctx context.Context, userID, roleID int) error
}
