package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mybabyhq/site-server-go/internal/model"
)

type ClientLogoRepository interface {
	Create(ctx context.Context, params model.CreateClientLogoParams) (*model.ClientLogo, error)
	// FindAll returns logos sorted ascending by numeric display order;
	// absent or non-numeric orders sort last, ties by insertion order.
	FindAll(ctx context.Context) ([]model.ClientLogo, error)
	// Delete is idempotent; deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

type clientLogoRepo struct {
	db *sqlx.DB
}

func NewClientLogoRepository(db *sqlx.DB) ClientLogoRepository {
	return &clientLogoRepo{db: db}
}

func (r *clientLogoRepo) Create(ctx context.Context, params model.CreateClientLogoParams) (*model.ClientLogo, error) {
	var logo model.ClientLogo
	err := r.db.GetContext(ctx, &logo, `
		INSERT INTO client_logos (name, logo_path, display_order)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.Name, params.LogoPath, params.DisplayOrder)
	if err != nil {
		return nil, err
	}
	return &logo, nil
}

func (r *clientLogoRepo) FindAll(ctx context.Context) ([]model.ClientLogo, error) {
	logos := []model.ClientLogo{}
	// The length bound keeps the cast inside int range; longer digit
	// strings sort with the non-numeric values.
	err := r.db.SelectContext(ctx, &logos, `
		SELECT * FROM client_logos
		ORDER BY
			CASE WHEN display_order ~ '^[0-9]{1,9}$' THEN display_order::int ELSE 999 END ASC,
			created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	return logos, nil
}

func (r *clientLogoRepo) Delete(ctx context.Context, id string) error {
	// id::text comparison keeps the delete idempotent even for ids that do
	// not parse as UUIDs.
	_, err := r.db.ExecContext(ctx, `DELETE FROM client_logos WHERE id::text = $1`, id)
	return err
}
