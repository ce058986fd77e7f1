package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/middleware"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/ratelimit"
	"github.com/yigit/placement-portal/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestErrorResponseFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing field", apperrors.NewMissingFieldError("email"), http.StatusBadRequest, "Missing required field: email"},
		{"duplicate email", apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email already registered"), http.StatusBadRequest, "Email already registered"},
		{"bare sentinel", apperrors.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{"unverified", apperrors.NewCustomError(apperrors.ErrEmailNotVerified, "Please verify your email"), http.StatusUnauthorized, "Please verify your email"},
		{"forbidden", apperrors.NewForbiddenError("Coordinators only"), http.StatusForbidden, "Coordinators only"},
		{"listing missing", apperrors.ErrJobListingNotFound, http.StatusNotFound, "Job listing not found"},
		{"wrapped conflict", fmt.Errorf("repo: %w", apperrors.NewConflictError("University ID already exists")), http.StatusConflict, "University ID already exists"},
		{"already applied", fmt.Errorf("repo: %w", apperrors.ErrAlreadyApplied), http.StatusConflict, "Student has already applied to this job listing"},
		{"course mismatch", apperrors.ErrCourseMismatch, http.StatusBadRequest, "Student course does not match job requirements"},
		{"drive date", apperrors.NewCustomError(apperrors.ErrDriveAfterJoining, "Campus drive date cannot be after joining date"), http.StatusBadRequest, "Campus drive date cannot be after joining date"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, middleware.MsgServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := middleware.ErrorResponseFor(tt.err)
			if status != tt.status {
				t.Fatalf("status = %d, want %d", status, tt.status)
			}
			if body.Message != tt.message {
				t.Fatalf("message = %q, want %q", body.Message, tt.message)
			}
		})
	}
}

func TestErrorResponseFor_FileUploadDetail(t *testing.T) {
	status, body := middleware.ErrorResponseFor(apperrors.NewFileUploadError("File too large"))
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if body.Message != "File upload error" || body.Error != "File too large" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHandleAPIError_WritesJSON(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		middleware.HandleAPIError(c, apperrors.ErrStudentNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Message != "Student not found" {
		t.Fatalf("message = %q", body.Message)
	}
}

func newAuthRouter(jwt *auth.JWTService) *gin.Engine {
	authMiddleware := middleware.NewAuthMiddleware(jwt)

	router := gin.New()
	protected := router.Group("/", authMiddleware.JWTAuth())
	protected.GET("/me", func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	protected.GET("/coordinators", authMiddleware.RoleRequired(models.RoleCoordinator), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestJWTAuth(t *testing.T) {
	jwt := auth.NewJWTService(auth.JWTConfig{Secret: testutil.JWTSecret, Expiration: time.Hour})
	other := auth.NewJWTService(auth.JWTConfig{Secret: "some-other-secret", Expiration: time.Hour})
	router := newAuthRouter(jwt)

	student, err := jwt.IssueToken(7, string(models.RoleStudent))
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	coordinator, err := jwt.IssueToken(1, string(models.RoleCoordinator))
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	forged, err := other.IssueToken(1, string(models.RoleCoordinator))
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"not bearer", "/me", "Basic abc", http.StatusUnauthorized},
		{"forged", "/me", "Bearer " + forged, http.StatusUnauthorized},
		{"valid", "/me", "Bearer " + student, http.StatusOK},
		{"student on coordinator route", "/coordinators", "Bearer " + student, http.StatusForbidden},
		{"coordinator", "/coordinators", "Bearer " + coordinator, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+student)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var me struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.ID != 7 || me.Role != "student" {
		t.Fatalf("unexpected principal: %+v", me)
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis down")
}

func rateLimitedRouter(limiter ratelimit.Limiter) *gin.Engine {
	router := gin.New()
	router.POST("/login", middleware.RateLimit(limiter, "login", zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimit(t *testing.T) {
	router := rateLimitedRouter(ratelimit.NewMemoryLimiter(ratelimit.Config{Capacity: 2, RefillPerMinute: 1}))

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{}"))
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send("10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}

	rec := send("10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("remaining = %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if body := decodeError(t, rec); body.Message != "Too many requests, please try again later" {
		t.Fatalf("message = %q", body.Message)
	}

	// buckets are per client address
	if rec := send("10.0.0.2"); rec.Code != http.StatusOK {
		t.Fatalf("other client: status = %d", rec.Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	router := rateLimitedRouter(failingLimiter{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when the limiter errors", rec.Code)
	}
}

func TestBindJSON(t *testing.T) {
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req dto.ApplyRequest
		if !middleware.BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"studentId":1,"jobListingId":2}`, http.StatusOK},
		{"missing field", `{"studentId":1}`, http.StatusBadRequest},
		{"malformed", `{"studentId":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
