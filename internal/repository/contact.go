package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mybabyhq/site-server-go/internal/model"
)

type ContactSubmissionRepository interface {
	Create(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error)
	// FindAll returns submissions newest first.
	FindAll(ctx context.Context) ([]model.ContactSubmission, error)
}

type contactSubmissionRepo struct {
	db *sqlx.DB
}

func NewContactSubmissionRepository(db *sqlx.DB) ContactSubmissionRepository {
	return &contactSubmissionRepo{db: db}
}

func (r *contactSubmissionRepo) Create(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error) {
	var submission model.ContactSubmission
	err := r.db.GetContext(ctx, &submission, `
		INSERT INTO contact_submissions (name, email, phone, nursery_name, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.Name, params.Email, params.Phone, params.NurseryName, params.Message)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *contactSubmissionRepo) FindAll(ctx context.Context) ([]model.ContactSubmission, error) {
	submissions := []model.ContactSubmission{}
	err := r.db.SelectContext(ctx, &submissions, `
		SELECT * FROM contact_submissions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
