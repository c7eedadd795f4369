package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mybabyhq/site-server-go/internal/database"
	"github.com/mybabyhq/site-server-go/internal/model"
)

type BrandingRepository interface {
	// Get returns nil when no logo has ever been uploaded.
	Get(ctx context.Context) (*model.BrandingSettings, error)
	// Upsert creates the singleton row on first call and overwrites
	// logo_path and updated_at thereafter.
	Upsert(ctx context.Context, logoPath string) (*model.BrandingSettings, error)
}

type brandingRepo struct {
	db *database.DB
}

func NewBrandingRepository(db *database.DB) BrandingRepository {
	return &brandingRepo{db: db}
}

func (r *brandingRepo) Get(ctx context.Context) (*model.BrandingSettings, error) {
	return getBrandingSettings(ctx, r.db, "")
}

// getBrandingSettings reads the active row through either the pool or a
// transaction; the suffix carries a lock clause when called inside one.
func getBrandingSettings(ctx context.Context, q database.DBTX, suffix string) (*model.BrandingSettings, error) {
	var settings model.BrandingSettings
	err := q.GetContext(ctx, &settings, `
		SELECT * FROM branding_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`+suffix)
	return HandleNotFound(&settings, err)
}

// Upsert runs read-then-write inside one transaction so concurrent first
// uploads cannot both win; the row lock serializes overwrites.
func (r *brandingRepo) Upsert(ctx context.Context, logoPath string) (*model.BrandingSettings, error) {
	var settings model.BrandingSettings
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := getBrandingSettings(ctx, tx, " FOR UPDATE")
		if err != nil {
			return err
		}

		if existing == nil {
			return tx.GetContext(ctx, &settings, `
				INSERT INTO branding_settings (logo_path)
				VALUES ($1)
				RETURNING *
			`, logoPath)
		}
		return tx.GetContext(ctx, &settings, `
			UPDATE branding_settings SET
				logo_path = $2,
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		`, existing.ID, logoPath)
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
