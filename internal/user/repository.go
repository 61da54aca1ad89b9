package user

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"gymcore/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, username, email, passwordHash, phone string) (*User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, phone, status)
		VALUES ($1, $2, $3, $4, 'active')
		RETURNING id, username, email, password_hash, phone, status, created_at, updated_at
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, username, email, passwordHash, phone)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, email, password_hash, phone, status, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, username, email, password_hash, phone, status, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) UserExists(ctx context.Context, id int) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, passwordHash)
	return err
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]UserWithRoles, error) {
	query := `
		SELECT
			u.id, u.username, u.email, u.password_hash, u.phone, u.status,
			u.created_at, u.updated_at,
			COALESCE(json_agg(r.name) FILTER (WHERE r.name IS NOT NULL), '[]') AS roles
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles r ON r.id = ur.role_id
		GROUP BY u.id
		ORDER BY u.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserWithRoles
	for rows.Next() {
		var u UserWithRoles
		var rolesJSON []byte
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Phone, &u.Status,
			&u.CreatedAt, &u.UpdatedAt, &rolesJSON,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rolesJSON, &u.Roles); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *repository) RolesOf(ctx context.Context, userID int) ([]string, error) {
	query := `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`

	var roles []string
	err := r.db.SelectContext(ctx, &roles, query, userID)
	if err != nil {
		return nil, err
	}

	return roles, nil
}

func (r *repository) FindRoleByName(ctx context.Context, name string) (*Role, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM roles
		WHERE name = $1
	`

	var role Role
	err := r.db.GetContext(ctx, &role, query, name)
	if err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *repository) AssignRole(ctx context.Context, userID, roleID int) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, userID, roleID)
	return err
}

func (r *repository) RevokeRole(ctx context.Context, userID, roleID int) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, roleID)
	return err
}
