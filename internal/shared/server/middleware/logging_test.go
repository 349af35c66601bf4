package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.Configure(&buf, "info")
	defer telemetry.Configure(os.Stdout, "info")

	issuer := newTestIssuer(t)
	router := gin.New()
	router.Use(RequestID(), Logging(), Auth(issuer))
	router.GET("/api/resumes/:id", func(c *gin.Context) {
		c.Set("resumeId", c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/res-1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, issuer, auth.Identity{UserID: "user-1"}))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v (%s)", err, last)
	}

	required := []string{"ts", "level", "message", "request_id", "user_id", "resume_id", "duration_ms", "status", "route"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s in %s", key, last)
		}
	}
	if payload["message"] != "request.complete" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
	if payload["user_id"] != "user-1" {
		t.Fatalf("unexpected user_id: %v", payload["user_id"])
	}
	if payload["resume_id"] != "res-1" {
		t.Fatalf("unexpected resume_id: %v", payload["resume_id"])
	}
	if payload["route"] != "/api/resumes/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
	if payload["request_id"] != resp.Header().Get("X-Request-Id") {
		t.Fatalf("request_id %v does not match header %q", payload["request_id"], resp.Header().Get("X-Request-Id"))
	}
}
