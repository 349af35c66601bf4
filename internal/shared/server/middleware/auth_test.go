package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
)

func newTestIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer("test-secret", "test")
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return issuer
}

func signToken(t *testing.T, issuer *auth.Issuer, id auth.Identity) string {
	t.Helper()
	token, err := issuer.Sign(id)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return token
}

func newAuthRouter(issuer *auth.Issuer, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(issuer)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID, "role": id.Role})
	})
	router.GET("/private", handlers...)
	return router
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(newTestIssuer(t)))
	router.OPTIONS("/api/resumes", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	router := newAuthRouter(newTestIssuer(t))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	router := newAuthRouter(newTestIssuer(t))

	for _, header := range []string{"Bearer nope", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.Code)
		}
	}
}

func TestAuthAcceptsBearerAndLegacyHeader(t *testing.T) {
	issuer := newTestIssuer(t)
	router := newAuthRouter(issuer)
	token := signToken(t, issuer, auth.Identity{UserID: "user-1"})

	bearer := httptest.NewRequest(http.MethodGet, "/private", nil)
	bearer.Header.Set("Authorization", "Bearer "+token)
	lowercase := httptest.NewRequest(http.MethodGet, "/private", nil)
	lowercase.Header.Set("Authorization", "bearer "+token)
	legacy := httptest.NewRequest(http.MethodGet, "/private", nil)
	legacy.Header.Set("x-auth-token", token)
	otherScheme := httptest.NewRequest(http.MethodGet, "/private", nil)
	otherScheme.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	otherScheme.Header.Set("x-auth-token", token)

	for _, req := range []*http.Request{bearer, lowercase, legacy, otherScheme} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	issuer := newTestIssuer(t)
	router := newAuthRouter(issuer, RequireAdmin())

	cases := []struct {
		role string
		want int
	}{
		{auth.RoleUser, http.StatusUnauthorized},
		{auth.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, issuer, auth.Identity{UserID: "u", Role: tc.role}))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, resp.Code)
		}
	}
}
