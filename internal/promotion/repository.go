package promotion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, issuerID int, req CreateRequest) (*Promotion, error)
	FindByID(ctx context.Context, id int) (*Promotion, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]Promotion, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Promotion, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const promotionColumns = `
	id, issuer_id, name, description, discount, audience, application,
	start_date, end_date, active, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, issuerID int, req CreateRequest) (*Promotion, error) {
	query := `
		INSERT INTO promotions (
			issuer_id, name, description, discount, audience, application,
			start_date, end_date, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING ` + promotionColumns

	var promo Promotion
	err := r.db.GetContext(ctx, &promo, query,
		issuerID, req.Name, req.Description, req.Discount, req.Audience,
		req.Application, req.StartDate, req.EndDate,
	)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Promotion, error) {
	var promo Promotion
	err := r.db.GetContext(ctx, &promo, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY start_date DESC LIMIT $1 OFFSET $2`

	var promotions []Promotion
	if err := r.db.SelectContext(ctx, &promotions, query, limit, offset); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateRequest) (*Promotion, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Discount != nil {
		add("discount", *req.Discount)
	}
	if req.Audience != nil {
		add("audience", *req.Audience)
	}
	if req.Application != nil {
		add("application", *req.Application)
	}
	if req.EndDate != nil {
		add("end_date", *req.EndDate)
	}
	if req.Active != nil {
		add("active", *req.Active)
	}

	query := fmt.Sprintf(
		`UPDATE promotions SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), promotionColumns,
	)

	var promo Promotion
	if err := r.db.GetContext(ctx, &promo, query, args...); err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *repository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
