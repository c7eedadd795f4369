package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mybabyhq/site-server-go/internal/model"
)

type OnboardingRepository interface {
	Create(ctx context.Context, params model.CreateKindergartenOnboardingParams) (*model.KindergartenOnboarding, error)
	// FindAll returns onboarding requests newest first.
	FindAll(ctx context.Context) ([]model.KindergartenOnboarding, error)
}

type onboardingRepo struct {
	db *sqlx.DB
}

func NewOnboardingRepository(db *sqlx.DB) OnboardingRepository {
	return &onboardingRepo{db: db}
}

func (r *onboardingRepo) Create(ctx context.Context, params model.CreateKindergartenOnboardingParams) (*model.KindergartenOnboarding, error) {
	var onboarding model.KindergartenOnboarding
	err := r.db.GetContext(ctx, &onboarding, `
		INSERT INTO kindergarten_onboarding (kindergarten_name, contact_name, email, phone, city, logo_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.KindergartenName, params.ContactName, params.Email, params.Phone, params.City, params.LogoPath)
	if err != nil {
		return nil, err
	}
	return &onboarding, nil
}

func (r *onboardingRepo) FindAll(ctx context.Context) ([]model.KindergartenOnboarding, error) {
	onboardings := []model.KindergartenOnboarding{}
	err := r.db.SelectContext(ctx, &onboardings, `
		SELECT * FROM kindergarten_onboarding
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return onboardings, nil
}
