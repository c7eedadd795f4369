package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/mybabyhq/site-server-go/internal/model"
)

// In-memory repositories back the development mode (no DATABASE_URL) and
// tests. State is process-lifetime only.

func newMemoryID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// Admin sessions

type memoryAdminSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*model.AdminSession
}

func NewMemoryAdminSessionRepository() AdminSessionRepository {
	return &memoryAdminSessionRepo{sessions: make(map[string]*model.AdminSession)}
}

func (r *memoryAdminSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, nil
	}
	if !session.ExpiresAt.After(time.Now()) {
		// Lazy expiry: drop the dead record on read.
		delete(r.sessions, tokenHash)
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r *memoryAdminSessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := &model.AdminSession{
		ID:        newMemoryID(),
		TokenHash: params.TokenHash,
		ExpiresAt: params.ExpiresAt,
		CreatedAt: time.Now(),
	}
	r.sessions[params.TokenHash] = session
	cp := *session
	return &cp, nil
}

func (r *memoryAdminSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, tokenHash)
	return nil
}

func (r *memoryAdminSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var deleted int64
	for hash, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.sessions, hash)
			deleted++
		}
	}
	return deleted, nil
}

// Branding settings singleton

type memoryBrandingRepo struct {
	mu       sync.RWMutex
	settings *model.BrandingSettings
}

func NewMemoryBrandingRepository() BrandingRepository {
	return &memoryBrandingRepo{}
}

func (r *memoryBrandingRepo) Get(ctx context.Context) (*model.BrandingSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return nil, nil
	}
	cp := *r.settings
	return &cp, nil
}

func (r *memoryBrandingRepo) Upsert(ctx context.Context, logoPath string) (*model.BrandingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := newMemoryID()
	if r.settings != nil {
		id = r.settings.ID
	}
	path := logoPath
	r.settings = &model.BrandingSettings{
		ID:        id,
		LogoPath:  &path,
		UpdatedAt: time.Now(),
	}
	cp := *r.settings
	return &cp, nil
}

// Client logos

type memoryClientLogoRepo struct {
	mu    sync.RWMutex
	logos []model.ClientLogo
}

func NewMemoryClientLogoRepository() ClientLogoRepository {
	return &memoryClientLogoRepo{}
}

func (r *memoryClientLogoRepo) Create(ctx context.Context, params model.CreateClientLogoParams) (*model.ClientLogo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logo := model.ClientLogo{
		ID:           newMemoryID(),
		Name:         params.Name,
		LogoPath:     params.LogoPath,
		DisplayOrder: params.DisplayOrder,
		CreatedAt:    time.Now(),
	}
	r.logos = append(r.logos, logo)
	return &logo, nil
}

func (r *memoryClientLogoRepo) FindAll(ctx context.Context) ([]model.ClientLogo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logos := make([]model.ClientLogo, len(r.logos))
	copy(logos, r.logos)
	// Stable sort keeps insertion order for equal keys.
	sort.SliceStable(logos, func(i, j int) bool {
		return logos[i].SortKey() < logos[j].SortKey()
	})
	return logos, nil
}

func (r *memoryClientLogoRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, logo := range r.logos {
		if logo.ID == id {
			r.logos = append(r.logos[:i], r.logos[i+1:]...)
			break
		}
	}
	return nil
}

// Contact submissions

type memoryContactRepo struct {
	mu          sync.RWMutex
	submissions []model.ContactSubmission
}

func NewMemoryContactSubmissionRepository() ContactSubmissionRepository {
	return &memoryContactRepo{}
}

func (r *memoryContactRepo) Create(ctx context.Context, params model.CreateContactSubmissionParams) (*model.ContactSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	submission := model.ContactSubmission{
		ID:          newMemoryID(),
		Name:        params.Name,
		Email:       params.Email,
		Phone:       params.Phone,
		NurseryName: params.NurseryName,
		Message:     params.Message,
		CreatedAt:   time.Now(),
	}
	r.submissions = append(r.submissions, submission)
	return &submission, nil
}

func (r *memoryContactRepo) FindAll(ctx context.Context) ([]model.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first.
	submissions := make([]model.ContactSubmission, 0, len(r.submissions))
	for i := len(r.submissions) - 1; i >= 0; i-- {
		submissions = append(submissions, r.submissions[i])
	}
	return submissions, nil
}

// Kindergarten onboarding

type memoryOnboardingRepo struct {
	mu          sync.RWMutex
	onboardings []model.KindergartenOnboarding
}

func NewMemoryOnboardingRepository() OnboardingRepository {
	return &memoryOnboardingRepo{}
}

func (r *memoryOnboardingRepo) Create(ctx context.Context, params model.CreateKindergartenOnboardingParams) (*model.KindergartenOnboarding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	onboarding := model.KindergartenOnboarding{
		ID:               newMemoryID(),
		KindergartenName: params.KindergartenName,
		ContactName:      params.ContactName,
		Email:            params.Email,
		Phone:            params.Phone,
		City:             params.City,
		LogoPath:         params.LogoPath,
		Status:           model.OnboardingStatusPending,
		CreatedAt:        time.Now(),
	}
	r.onboardings = append(r.onboardings, onboarding)
	return &onboarding, nil
}

func (r *memoryOnboardingRepo) FindAll(ctx context.Context) ([]model.KindergartenOnboarding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	onboardings := make([]model.KindergartenOnboarding, 0, len(r.onboardings))
	for i := len(r.onboardings) - 1; i >= 0; i-- {
		onboardings = append(onboardings, r.onboardings[i])
	}
	return onboardings, nil
}
