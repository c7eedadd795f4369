package model

import (
	"time"
)

// ContactSubmission is an immutable record of a contact-form submission.
type ContactSubmission struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	NurseryName string    `db:"nursery_name" json:"nurseryName"`
	Message     *string   `db:"message" json:"message"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateContactSubmissionParams struct {
	Name        string
	Email       string
	Phone       string
	NurseryName string
	Message     *string
}

// OnboardingStatusPending is the initial status of every onboarding request.
const OnboardingStatusPending = "pending"

// KindergartenOnboarding is a lead-capture record from a prospective
// kindergarten, including its mandatory uploaded logo.
type KindergartenOnboarding struct {
	ID               string    `db:"id" json:"id"`
	KindergartenName string    `db:"kindergarten_name" json:"kindergartenName"`
	ContactName      string    `db:"contact_name" json:"contactName"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone"`
	City             string    `db:"city" json:"city"`
	LogoPath         string    `db:"logo_path" json:"logoPath"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

type CreateKindergartenOnboardingParams struct {
	KindergartenName string
	ContactName      string
	Email            string
	Phone            string
	City             string
	LogoPath         string
}
