package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/mybabyhq/site-server-go/internal/errors"
	"github.com/mybabyhq/site-server-go/internal/model"
	"github.com/mybabyhq/site-server-go/internal/service"
)

// IntakeHandler owns the public lead-capture endpoints and their admin-gated
// list counterparts.
type IntakeHandler struct {
	intakeService *service.IntakeService
}

func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

var contactRules = []FieldRule{
	{Field: "name", Label: "Name", Required: true},
	{Field: "email", Label: "Email", Required: true, Email: true},
	{Field: "phone", Label: "Phone number", Required: true},
	{Field: "nurseryName", Label: "Nursery name", Required: true},
}

// CreateContact handles the public contact form.
func (h *IntakeHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		Phone       string  `json:"phone"`
		NurseryName string  `json:"nurseryName"`
		Message     *string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := ValidateFields(map[string]string{
		"name":        req.Name,
		"email":       req.Email,
		"phone":       req.Phone,
		"nurseryName": req.NurseryName,
	}, contactRules); err != nil {
		writeError(w, err)
		return
	}

	submission, err := h.intakeService.CreateContactSubmission(r.Context(), model.CreateContactSubmissionParams{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		NurseryName: req.NurseryName,
		Message:     req.Message,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create contact submission")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to submit contact form"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"submission": submission,
	})
}

// ListContacts returns all contact submissions, newest first. Admin only.
func (h *IntakeHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.intakeService.GetAllContactSubmissions(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list contact submissions")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch contact submissions"})
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

var onboardingRules = []FieldRule{
	{Field: "kindergartenName", Label: "Kindergarten name", Required: true},
	{Field: "contactName", Label: "Contact name", Required: true},
	{Field: "email", Label: "Email", Required: true, Email: true},
	{Field: "phone", Label: "Phone number", Required: true},
	{Field: "city", Label: "City", Required: true},
}

// CreateOnboarding handles the public kindergarten onboarding form: multipart
// fields plus a mandatory logo file.
func (h *IntakeHandler) CreateOnboarding(w http.ResponseWriter, r *http.Request) {
	fh, err := formFile(r, "logo")
	if err != nil {
		writeError(w, err)
		return
	}
	if fh == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeNoFile, "Logo is required"))
		return
	}

	values := map[string]string{
		"kindergartenName": r.FormValue("kindergartenName"),
		"contactName":      r.FormValue("contactName"),
		"email":            r.FormValue("email"),
		"phone":            r.FormValue("phone"),
		"city":             r.FormValue("city"),
	}
	if err := ValidateFields(values, onboardingRules); err != nil {
		writeError(w, err)
		return
	}

	onboarding, err := h.intakeService.CreateOnboarding(r.Context(), fh, model.CreateKindergartenOnboardingParams{
		KindergartenName: values["kindergartenName"],
		ContactName:      values["contactName"],
		Email:            values["email"],
		Phone:            values["phone"],
		City:             values["city"],
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			log.Error().Err(err).Msg("failed to create onboarding request")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Onboarding request submitted successfully",
		"onboarding": onboarding,
	})
}

// ListOnboardings returns all onboarding requests, newest first. Admin only.
func (h *IntakeHandler) ListOnboardings(w http.ResponseWriter, r *http.Request) {
	onboardings, err := h.intakeService.GetAllOnboardings(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list onboarding requests")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch onboarding requests"})
		return
	}
	writeJSON(w, http.StatusOK, onboardings)
}
