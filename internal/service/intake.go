package service

import (
	"context"
	"mime/multipart"

	"github.com/mybabyhq/site-server-go/internal/model"
	"github.com/mybabyhq/site-server-go/internal/repository"
	"github.com/mybabyhq/site-server-go/internal/upload"
)

// IntakeService records public lead-capture submissions: contact-form
// messages and kindergarten onboarding requests.
type IntakeService struct {
	contactRepo    repository.ContactSubmissionRepository
	onboardingRepo repository.OnboardingRepository
	uploads        *upload.Store
}

func NewIntakeService(
	contactRepo repository.ContactSubmissionRepository,
	onboardingRepo repository.OnboardingRepository,
	uploads *upload.Store,
) *IntakeService {
	return &IntakeService{
		contactRepo:    contactRepo,
		onboardingRepo: onboardingRepo,
		uploads:        uploads,
	}
}

func (s *IntakeService) CreateContactSubmission(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error) {
	return s.contactRepo.Create(ctx, params)
}

func (s *IntakeService) GetAllContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.contactRepo.FindAll(ctx)
}

// CreateOnboarding stores the mandatory logo first, then the record. The
// logo file is not removed if the record insert fails.
func (s *IntakeService) CreateOnboarding(ctx context.Context, fh *multipart.FileHeader, params model.CreateKindergartenOnboardingParams) (*model.KindergartenOnboarding, error) {
	logoPath, err := s.uploads.Save(fh, upload.PurposeOnboarding)
	if err != nil {
		return nil, err
	}
	params.LogoPath = logoPath
	return s.onboardingRepo.Create(ctx, params)
}

func (s *IntakeService) GetAllOnboardings(ctx context.Context) ([]model.KindergartenOnboarding, error) {
	return s.onboardingRepo.FindAll(ctx)
}
