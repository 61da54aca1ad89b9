package membership

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, req CreateRequest) (*Membership, error)
	FindByID(ctx context.Context, id int) (*Membership, error)
	FindDetails(ctx context.Context, id int) (*MembershipDetails, error)
	FindActiveByUser(ctx context.Context, userID int) (*Membership, error)
	HasActiveMembership(ctx context.Context, userID int) (bool, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, status Status, limit, offset int) ([]MembershipDetails, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Membership, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const membershipColumns = `
	id, user_id, code, type, service, plan, level, start_date, end_date,
	status, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, req CreateRequest) (*Membership, error) {
	query := `
		INSERT INTO memberships (
			user_id, code, type, service, plan, level, start_date, end_date, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active')
		RETURNING ` + membershipColumns

	var ms Membership
	err := r.db.GetContext(ctx, &ms, query,
		req.UserID, req.Code, req.Type, req.Service, req.Plan, req.Level,
		req.StartDate, req.EndDate,
	)
	if err != nil {
		return nil, err
	}
	return &ms, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Membership, error) {
	var ms Membership
	err := r.db.GetContext(ctx, &ms, `SELECT `+membershipColumns+` FROM memberships WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &ms, nil
}

func (r *repository) FindDetails(ctx context.Context, id int) (*MembershipDetails, error) {
	query := `
		SELECT
			m.id, m.user_id, m.code, m.type, m.service, m.plan, m.level,
			m.start_date, m.end_date, m.status, m.created_at, m.updated_at,
			u.username, u.email
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.id = $1
	`

	var details MembershipDetails
	if err := r.db.GetContext(ctx, &details, query, id); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *repository) FindActiveByUser(ctx context.Context, userID int) (*Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1 AND status = 'active'`

	var ms Membership
	if err := r.db.GetContext(ctx, &ms, query, userID); err != nil {
		return nil, err
	}
	return &ms, nil
}

func (r *repository) HasActiveMembership(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM memberships WHERE user_id = $1 AND status = 'active')`, userID)
	return exists, err
}

func (r *repository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM memberships WHERE code = $1)`, code)
	return exists, err
}

func (r *repository) List(ctx context.Context, status Status, limit, offset int) ([]MembershipDetails, error) {
	query := `
		SELECT
			m.id, m.user_id, m.code, m.type, m.service, m.plan, m.level,
			m.start_date, m.end_date, m.status, m.created_at, m.updated_at,
			u.username, u.email
		FROM memberships m
		JOIN users u ON u.id = m.user_id
	`
	args := []interface{}{}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" WHERE m.status = $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY m.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var memberships []MembershipDetails
	if err := r.db.SelectContext(ctx, &memberships, query, args...); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateRequest) (*Membership, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Type != nil {
		add("type", *req.Type)
	}
	if req.Service != nil {
		add("service", *req.Service)
	}
	if req.Plan != nil {
		add("plan", *req.Plan)
	}
	if req.Level != nil {
		add("level", *req.Level)
	}
	if req.EndDate != nil {
		add("end_date", *req.EndDate)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}

	query := fmt.Sprintf(
		`UPDATE memberships SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), membershipColumns,
	)

	var ms Membership
	if err := r.db.GetContext(ctx, &ms, query, args...); err != nil {
		return nil, err
	}
	return &ms, nil
}

func (r *repository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memberships WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
