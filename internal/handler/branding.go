package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/mybabyhq/site-server-go/internal/errors"
	"github.com/mybabyhq/site-server-go/internal/service"
)

// BrandingHandler owns the primary-logo and client-logo endpoints.
type BrandingHandler struct {
	brandingService *service.BrandingService
}

func NewBrandingHandler(brandingService *service.BrandingService) *BrandingHandler {
	return &BrandingHandler{brandingService: brandingService}
}

// UploadLogo replaces the primary brand logo. Admin only.
func (h *BrandingHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	fh, err := formFile(r, "logo")
	if err != nil {
		writeError(w, err)
		return
	}
	if fh == nil {
		writeError(w, apperrors.NoFile())
		return
	}

	logoPath, err := h.brandingService.UpdateLogo(r.Context(), fh)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			log.Error().Err(err).Msg("failed to update branding settings")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"logoPath": logoPath,
	})
}

// GetLogo is the public read of the branding singleton.
func (h *BrandingHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	logoPath, err := h.brandingService.GetLogo(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get branding settings")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch logo"})
		return
	}

	if logoPath != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"hasCustomLogo": true,
			"logoUrl":       *logoPath,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hasCustomLogo": false,
		"logoUrl":       nil,
	})
}

// CreateClientLogo adds a carousel logo. Admin only.
func (h *BrandingHandler) CreateClientLogo(w http.ResponseWriter, r *http.Request) {
	fh, err := formFile(r, "logo")
	if err != nil {
		writeError(w, err)
		return
	}
	if fh == nil {
		writeError(w, apperrors.NoFile())
		return
	}

	name := r.FormValue("name")
	if name == "" {
		writeError(w, apperrors.MissingRequired("Client name"))
		return
	}

	var displayOrder *string
	if v := r.FormValue("displayOrder"); v != "" {
		displayOrder = &v
	}

	clientLogo, err := h.brandingService.CreateClientLogo(r.Context(), fh, name, displayOrder)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			log.Error().Err(err).Msg("failed to create client logo")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"clientLogo": clientLogo,
	})
}

// ListClientLogos is the public read for the homepage carousel.
func (h *BrandingHandler) ListClientLogos(w http.ResponseWriter, r *http.Request) {
	logos, err := h.brandingService.GetAllClientLogos(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list client logos")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch client logos"})
		return
	}
	writeJSON(w, http.StatusOK, logos)
}

// DeleteClientLogo removes a carousel logo; unknown ids succeed. Admin only.
func (h *BrandingHandler) DeleteClientLogo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.brandingService.DeleteClientLogo(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete client logo")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to delete client logo"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
