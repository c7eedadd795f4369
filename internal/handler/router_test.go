package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybabyhq/site-server-go/internal/config"
	"github.com/mybabyhq/site-server-go/internal/middleware"
	"github.com/mybabyhq/site-server-go/internal/repository"
	"github.com/mybabyhq/site-server-go/internal/service"
	"github.com/mybabyhq/site-server-go/internal/upload"
)

// pngMagic is enough of a PNG header to pass as file content.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)

	sessionRepo := repository.NewMemoryAdminSessionRepository()
	cfg := &config.Config{
		AdminUsername: config.DefaultAdminUsername,
		AdminPassword: "test-secret",
	}

	router := NewRouter(RouterDeps{
		Auth: service.NewAuthService(sessionRepo, cfg),
		Branding: service.NewBrandingService(
			repository.NewMemoryBrandingRepository(),
			repository.NewMemoryClientLogoRepository(),
			store,
		),
		Intake: service.NewIntakeService(
			repository.NewMemoryContactSubmissionRepository(),
			repository.NewMemoryOnboardingRepository(),
			store,
		),
		SessionGate:  middleware.NewAdminSessionMiddleware(sessionRepo),
		UploadDir:    store.Dir(),
		IsProduction: false,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// multipartBody builds a multipart form with the given text fields plus one
// file part, or no file when fileField is empty.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, contentType string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, fileName)}
		hdr["Content-Type"] = []string{contentType}
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doMultipart(t *testing.T, srv *httptest.Server, path string, body io.Reader, contentType string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func login(t *testing.T, srv *httptest.Server) *http.Cookie {
	t.Helper()

	resp := doJSON(t, srv, http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin",
		"password": "test-secret",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == middleware.AdminSessionCookie {
			require.NotEmpty(t, c.Value)
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	t.Run("login sets cookie and gates admin surface", func(t *testing.T) {
		cookie := login(t, srv)

		resp := doJSON(t, srv, http.MethodGet, "/api/admin/me", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decodeBody(t, resp)["authenticated"])

		resp = doJSON(t, srv, http.MethodPost, "/api/admin/logout", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// The session is gone, so the same cookie no longer passes the gate.
		resp = doJSON(t, srv, http.MethodGet, "/api/admin/me", nil, cookie)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Session expired", decodeBody(t, resp)["error"])
	})

	t.Run("wrong password is rejected without a cookie", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/admin/login", map[string]string{
			"username": "admin",
			"password": "wrong",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", decodeBody(t, resp)["error"])
		assert.Empty(t, resp.Cookies())
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/admin/login", map[string]string{
			"username": "admin",
		}, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("admin endpoints reject requests without a cookie", func(t *testing.T) {
		for _, path := range []string{
			"/api/admin/me",
			"/api/admin/contact-submissions",
			"/api/admin/kindergarten-onboardings",
		} {
			resp := doJSON(t, srv, http.MethodGet, path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		}
	})
}

func TestBrandingEndpoints(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	t.Run("logo defaults to none", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/logo", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, false, body["hasCustomLogo"])
		assert.Nil(t, body["logoUrl"])
	})

	t.Run("upload, read back, and serve the logo", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, "logo", "brand.png", "image/png", pngMagic)
		resp := doMultipart(t, srv, "/api/admin/logo", body, contentType, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "/uploads/mybaby-logo.png", decodeBody(t, resp)["logoPath"])

		resp = doJSON(t, srv, http.MethodGet, "/api/logo", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeBody(t, resp)
		assert.Equal(t, true, got["hasCustomLogo"])
		assert.Equal(t, "/uploads/mybaby-logo.png", got["logoUrl"])

		resp = doJSON(t, srv, http.MethodGet, "/uploads/mybaby-logo.png", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		served, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, pngMagic, served)
	})

	t.Run("upload requires a session", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, "logo", "brand.png", "image/png", pngMagic)
		resp := doMultipart(t, srv, "/api/admin/logo", body, contentType, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("upload without a file", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"name": "x"}, "", "", "", nil)
		resp := doMultipart(t, srv, "/api/admin/logo", body, contentType, cookie)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "no_file", decodeBody(t, resp)["code"])
	})

	t.Run("disallowed type is rejected", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, "logo", "brand.gif", "image/gif", []byte("GIF89a"))
		resp := doMultipart(t, srv, "/api/admin/logo", body, contentType, cookie)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		got := decodeBody(t, resp)
		assert.Equal(t, "invalid_type", got["code"])
		assert.Equal(t, "Invalid file type. Only PNG, JPEG, and SVG are allowed.", got["error"])
	})

	t.Run("oversized file is rejected", func(t *testing.T) {
		big := bytes.Repeat([]byte{0xAB}, config.MaxLogoFileSize+1)
		body, contentType := multipartBody(t, nil, "logo", "big.png", "image/png", big)
		resp := doMultipart(t, srv, "/api/admin/logo", body, contentType, cookie)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "size_exceeded", decodeBody(t, resp)["code"])
	})

	t.Run("oversized request body reports the same size error code", func(t *testing.T) {
		// Past the route body ceiling, so the limit middleware rejects it
		// before multipart parsing.
		big := bytes.Repeat([]byte{0xAB}, int(config.MaxUploadBodySize)+1)
		body, contentType := multipartBody(t, nil, "logo", "big.png", "image/png", big)
		resp := doMultipart(t, srv, "/api/admin/logo", body, contentType, cookie)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "size_exceeded", decodeBody(t, resp)["code"])
	})
}

func TestClientLogoEndpoints(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv)

	createLogo := func(name, displayOrder string) map[string]any {
		fields := map[string]string{"name": name}
		if displayOrder != "" {
			fields["displayOrder"] = displayOrder
		}
		body, contentType := multipartBody(t, fields, "logo", name+".png", "image/png", pngMagic)
		resp := doMultipart(t, srv, "/api/admin/client-logos", body, contentType, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decodeBody(t, resp)
	}

	t.Run("list is public and empty at first", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/client-logos", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var logos []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&logos))
		assert.Empty(t, logos)
	})

	t.Run("create requires a name", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, "logo", "x.png", "image/png", pngMagic)
		resp := doMultipart(t, srv, "/api/admin/client-logos", body, contentType, cookie)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "missing_required", decodeBody(t, resp)["code"])
	})

	t.Run("listing follows display order", func(t *testing.T) {
		createLogo("second", "2")
		createLogo("unordered", "")
		createLogo("first", "1")

		resp := doJSON(t, srv, http.MethodGet, "/api/client-logos", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var logos []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&logos))
		require.Len(t, logos, 3)
		assert.Equal(t, "first", logos[0]["name"])
		assert.Equal(t, "second", logos[1]["name"])
		assert.Equal(t, "unordered", logos[2]["name"])

		for _, logo := range logos {
			path, ok := logo["logoPath"].(string)
			require.True(t, ok)
			assert.True(t, strings.HasPrefix(path, "/uploads/client-logo-"), path)
		}
	})

	t.Run("delete removes the record", func(t *testing.T) {
		created := createLogo("doomed", "")
		logo, ok := created["clientLogo"].(map[string]any)
		require.True(t, ok)
		id, ok := logo["id"].(string)
		require.True(t, ok)

		resp := doJSON(t, srv, http.MethodDelete, "/api/admin/client-logos/"+id, nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodGet, "/api/client-logos", nil, nil)
		var logos []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&logos))
		for _, l := range logos {
			assert.NotEqual(t, "doomed", l["name"])
		}
	})
}

func TestContactEndpoints(t *testing.T) {
	srv := newTestServer(t)

	validContact := map[string]string{
		"name":        "Jordan Lee",
		"email":       "jordan@example.com",
		"phone":       "+44 7700 900123",
		"nurseryName": "Little Stars",
	}

	t.Run("valid submission", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/contact", validContact, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])
		submission, ok := body["submission"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Jordan Lee", submission["name"])
	})

	t.Run("field errors are reported per field", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/contact", map[string]string{
			"name":  "Jordan Lee",
			"email": "not-an-email",
			"phone": "+44 7700 900123",
		}, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "validation_error", body["code"])

		details, ok := body["details"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, details, "email")
		assert.Contains(t, details, "nurseryName")
		assert.NotContains(t, details, "name")
	})

	t.Run("admin list returns newest first", func(t *testing.T) {
		cookie := login(t, srv)

		second := map[string]string{}
		for k, v := range validContact {
			second[k] = v
		}
		second["name"] = "Second Sender"
		resp := doJSON(t, srv, http.MethodPost, "/api/contact", second, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodGet, "/api/admin/contact-submissions", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var submissions []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&submissions))
		require.GreaterOrEqual(t, len(submissions), 2)
		assert.Equal(t, "Second Sender", submissions[0]["name"])
	})
}

func TestOnboardingEndpoints(t *testing.T) {
	srv := newTestServer(t)

	validFields := map[string]string{
		"kindergartenName": "Sunny Kids",
		"contactName":      "Avery Chen",
		"email":            "avery@example.com",
		"phone":            "+971 50 123 4567",
		"city":             "Dubai",
	}

	t.Run("logo file is mandatory", func(t *testing.T) {
		body, contentType := multipartBody(t, validFields, "", "", "", nil)
		resp := doMultipart(t, srv, "/api/kindergarten-onboarding", body, contentType, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		got := decodeBody(t, resp)
		assert.Equal(t, "no_file", got["code"])
		assert.Equal(t, "Logo is required", got["error"])
	})

	t.Run("valid submission records a pending request", func(t *testing.T) {
		body, contentType := multipartBody(t, validFields, "logo", "sunny.png", "image/png", pngMagic)
		resp := doMultipart(t, srv, "/api/kindergarten-onboarding", body, contentType, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		got := decodeBody(t, resp)
		assert.Equal(t, true, got["success"])
		assert.Equal(t, "Onboarding request submitted successfully", got["message"])

		onboarding, ok := got["onboarding"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "pending", onboarding["status"])
		path, ok := onboarding["logoPath"].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(path, "/uploads/kindergarten-logo-"), path)
	})

	t.Run("missing fields still reject after the file check", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"city": "Dubai"}, "logo", "sunny.png", "image/png", pngMagic)
		resp := doMultipart(t, srv, "/api/kindergarten-onboarding", body, contentType, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		got := decodeBody(t, resp)
		assert.Equal(t, "validation_error", got["code"])
		details, ok := got["details"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, details, "kindergartenName")
		assert.NotContains(t, details, "city")
	})

	t.Run("admin list requires a session", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/admin/kindergarten-onboardings", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUploadsPathHandling(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing file is a 404", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/uploads/nope.png", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("traversal cannot escape the upload dir", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/uploads/"+strings.ReplaceAll("../go.mod", "/", "%2f"), nil)
		require.NoError(t, err)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.NotEqual(t, http.StatusOK, resp.StatusCode)
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}
