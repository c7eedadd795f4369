package service

import (
	"context"
	"mime/multipart"

	"github.com/mybabyhq/site-server-go/internal/model"
	"github.com/mybabyhq/site-server-go/internal/repository"
	"github.com/mybabyhq/site-server-go/internal/upload"
)

// BrandingService owns the primary-logo singleton and the client-logo list.
// Files are written before registry records; a registry failure after a
// successful write leaves an orphaned file behind, which is accepted.
type BrandingService struct {
	brandingRepo   repository.BrandingRepository
	clientLogoRepo repository.ClientLogoRepository
	uploads        *upload.Store
}

func NewBrandingService(
	brandingRepo repository.BrandingRepository,
	clientLogoRepo repository.ClientLogoRepository,
	uploads *upload.Store,
) *BrandingService {
	return &BrandingService{
		brandingRepo:   brandingRepo,
		clientLogoRepo: clientLogoRepo,
		uploads:        uploads,
	}
}

// UpdateLogo stores the uploaded file under the fixed primary-logo name and
// records its public path. Last write wins.
func (s *BrandingService) UpdateLogo(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	logoPath, err := s.uploads.Save(fh, upload.PurposeBrand)
	if err != nil {
		return "", err
	}
	if _, err := s.brandingRepo.Upsert(ctx, logoPath); err != nil {
		return "", err
	}
	return logoPath, nil
}

// GetLogo returns the active custom logo path, or nil when the built-in
// default applies.
func (s *BrandingService) GetLogo(ctx context.Context) (*string, error) {
	settings, err := s.brandingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, nil
	}
	return settings.LogoPath, nil
}

func (s *BrandingService) CreateClientLogo(ctx context.Context, fh *multipart.FileHeader, name string, displayOrder *string) (*model.ClientLogo, error) {
	logoPath, err := s.uploads.Save(fh, upload.PurposeClientLogo)
	if err != nil {
		return nil, err
	}
	return s.clientLogoRepo.Create(ctx, model.CreateClientLogoParams{
		Name:         name,
		LogoPath:     logoPath,
		DisplayOrder: displayOrder,
	})
}

func (s *BrandingService) GetAllClientLogos(ctx context.Context) ([]model.ClientLogo, error) {
	return s.clientLogoRepo.FindAll(ctx)
}

func (s *BrandingService) DeleteClientLogo(ctx context.Context, id string) error {
	return s.clientLogoRepo.Delete(ctx, id)
}
