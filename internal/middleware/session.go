package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mybabyhq/site-server-go/internal/config"
	"github.com/mybabyhq/site-server-go/internal/model"
	"github.com/mybabyhq/site-server-go/internal/repository"
	"github.com/mybabyhq/site-server-go/internal/util"
)

const AdminSessionCookie = "admin_session"

type contextKey string

const AdminSessionContextKey contextKey = "adminSession"

func GetAdminSession(ctx context.Context) *model.AdminSession {
	if session, ok := ctx.Value(AdminSessionContextKey).(*model.AdminSession); ok {
		return session
	}
	return nil
}

// AdminSessionMiddleware gates admin-only routes on a valid, unexpired
// session cookie. Each request re-validates against the session store.
type AdminSessionMiddleware struct {
	sessionRepo repository.AdminSessionRepository
}

func NewAdminSessionMiddleware(sessionRepo repository.AdminSessionRepository) *AdminSessionMiddleware {
	return &AdminSessionMiddleware{sessionRepo: sessionRepo}
}

func (m *AdminSessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AdminSessionCookie)
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		session, err := m.sessionRepo.FindByTokenHash(r.Context(), util.HashToken(cookie.Value))
		if err != nil {
			log.Error().Err(err).Msg("admin session middleware: store error")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Session validation failed",
			})
			return
		}

		if session == nil {
			// Dead token: tell the browser to stop resending it.
			ClearSessionCookie(w, AdminSessionCookie)
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Session expired",
			})
			return
		}

		ctx := context.WithValue(r.Context(), AdminSessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SetSessionCookie(w http.ResponseWriter, name, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AdminSessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
