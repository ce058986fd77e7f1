package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/bootstrap"
	"github.com/yigit/placement-portal/internal/config"
	"github.com/yigit/placement-portal/internal/db"
	"github.com/yigit/placement-portal/internal/testutil"
)

const (
	coordinatorEmail    = "coordinator@college.edu"
	coordinatorPassword = "coordpass1"
)

type testServer struct {
	router *gin.Engine
	db     *db.DB
	deps   *bootstrap.Dependencies
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.MaxBodyBytes = 6 << 20
	cfg.Database.Driver = config.DriverSQLite
	cfg.JWT.Secret = testutil.JWTSecret
	cfg.JWT.Expiration = "24h"
	cfg.Auth.BcryptCost = testutil.BcryptCost
	cfg.Auth.VerificationTokenTTL = "24h"
	cfg.Auth.RateLimitCapacity = 100
	cfg.Auth.RateLimitRefillPerMin = 100
	cfg.Storage.Backend = config.StorageLocal
	cfg.Storage.Path = t.TempDir()
	cfg.Storage.ResumeDir = "resumes"
	cfg.Storage.MaxResumeBytes = 1 << 10
	cfg.Seed.Enabled = true
	cfg.Seed.CoordinatorEmail = coordinatorEmail
	cfg.Seed.CoordinatorPassword = coordinatorPassword

	database := testutil.NewSQLiteDB(t)
	deps, err := bootstrap.BuildDependencies(context.Background(), cfg, database, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildDependencies: %v", err)
	}
	t.Cleanup(deps.Close)

	router := bootstrap.SetupRouter(cfg, deps, zerolog.Nop())
	gin.SetMode(gin.TestMode)
	return &testServer{router: router, db: database, deps: deps}
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) json(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	return s.do(t, method, path, token, body, "application/json")
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d: %s", rec.Code, status, rec.Body.String())
	}
}

func expectMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	expectStatus(t, rec, status)
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	decode(t, rec, &body)
	if body.Message != message {
		t.Fatalf("message = %q, want %q", body.Message, message)
	}
}

func studentFields(email string) map[string]string {
	return map[string]string{
		"email":      email,
		"password":   "secret123",
		"role":       "student",
		"name":       "Asha Rao",
		"department": "CSE",
		"year":       "3",
		"rollNumber": "CSE21-042",
		"cgpa":       "8.4",
	}
}

func (s *testServer) register(t *testing.T, fields map[string]string, files ...testutil.FilePart) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := testutil.MultipartBody(t, fields, files...)
	return s.do(t, http.MethodPost, "/api/user/register", "", body, contentType)
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.json(t, http.MethodPost, "/api/user/login", "", map[string]string{"email": email, "password": password})
	expectStatus(t, rec, http.StatusOK)
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	return resp.Token
}

func (s *testServer) verificationToken(t *testing.T, email string) string {
	t.Helper()
	var token string
	err := s.db.SQL.QueryRow(
		`SELECT t.token FROM email_verification_tokens t JOIN users u ON u.id = t.user_id WHERE u.email = ?`, email,
	).Scan(&token)
	if err != nil {
		t.Fatalf("load verification token: %v", err)
	}
	return token
}

func TestTestingServer(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/testing-server", "", nil, "")
	expectStatus(t, rec, http.StatusOK)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	if !body.Success || body.Message != "Server is testing" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing email", func(t *testing.T) {
		fields := studentFields("")
		delete(fields, "email")
		expectMessage(t, s.register(t, fields), http.StatusBadRequest, "Missing required field: email")
	})

	t.Run("rejected file type", func(t *testing.T) {
		rec := s.register(t, studentFields("asha@college.edu"),
			testutil.FilePart{Field: "resume", Filename: "cv.png", Content: []byte("png")})
		expectMessage(t, rec, http.StatusBadRequest, "File upload error")
		if !strings.Contains(rec.Body.String(), "Only PDF and Word documents are allowed") {
			t.Fatalf("expected rejection reason in body: %s", rec.Body.String())
		}
	})

	t.Run("file too large", func(t *testing.T) {
		rec := s.register(t, studentFields("asha@college.edu"),
			testutil.FilePart{Field: "resume", Filename: "cv.pdf", Content: bytes.Repeat([]byte("a"), 2<<10)})
		expectMessage(t, rec, http.StatusBadRequest, "File upload error")
	})

	t.Run("student with resume", func(t *testing.T) {
		rec := s.register(t, studentFields("asha@college.edu"),
			testutil.FilePart{Field: "resume", Filename: "cv.pdf", Content: []byte("%PDF-1.4")})
		expectStatus(t, rec, http.StatusCreated)

		var resp struct {
			Message string `json:"message"`
			Token   string `json:"token"`
			User    struct {
				ID    int64  `json:"id"`
				Email string `json:"email"`
				Role  string `json:"role"`
				Name  string `json:"name"`
			} `json:"user"`
		}
		decode(t, rec, &resp)
		if resp.Message != "User registered successfully" || resp.Token == "" {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if resp.User.Email != "asha@college.edu" || resp.User.Role != "student" || resp.User.Name != "Asha Rao" {
			t.Fatalf("unexpected user: %+v", resp.User)
		}
		if strings.Contains(rec.Body.String(), "password") {
			t.Fatal("response must not expose the password")
		}

		entries, err := os.ReadDir(s.deps.FileStorage.(interface{ Dir() string }).Dir())
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "-cv.pdf") {
			t.Fatalf("unexpected stored files: %v", entries)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		expectMessage(t, s.register(t, studentFields("ASHA@college.edu")), http.StatusBadRequest, "Email already registered")
	})
}

func TestLoginAndVerificationFlow(t *testing.T) {
	s := newTestServer(t)

	expectStatus(t, s.register(t, studentFields("asha@college.edu")), http.StatusCreated)

	rec := s.do(t, http.MethodPost, "/api/user/login", "", strings.NewReader(`{"email":`), "application/json")
	expectMessage(t, rec, http.StatusBadRequest, "Email and password are required")

	rec = s.json(t, http.MethodPost, "/api/user/login", "", map[string]string{"email": "asha@college.edu", "password": "wrong"})
	expectMessage(t, rec, http.StatusBadRequest, "Invalid credentials")

	rec = s.json(t, http.MethodPost, "/api/user/login", "", map[string]string{"email": "asha@college.edu", "password": "secret123"})
	expectMessage(t, rec, http.StatusUnauthorized, "Please verify your email")

	rec = s.json(t, http.MethodPost, "/api/user/resend-verification", "", map[string]string{"email": "asha@college.edu"})
	expectStatus(t, rec, http.StatusOK)

	rec = s.do(t, http.MethodGet, "/api/user/verify/not-a-token", "", nil, "")
	expectStatus(t, rec, http.StatusBadRequest)

	rec = s.do(t, http.MethodGet, "/api/user/verify/"+s.verificationToken(t, "asha@college.edu"), "", nil, "")
	expectMessage(t, rec, http.StatusOK, "Email verified successfully. You can now log in.")

	rec = s.json(t, http.MethodPost, "/api/user/login", "", map[string]string{"email": "asha@college.edu", "password": "secret123"})
	expectStatus(t, rec, http.StatusOK)
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role    string                 `json:"role"`
			Profile map[string]interface{} `json:"profile"`
		} `json:"user"`
	}
	decode(t, rec, &resp)
	if resp.User.Role != "student" || resp.User.Profile["rollNumber"] != "CSE21-042" {
		t.Fatalf("unexpected login user: %+v", resp.User)
	}

	expectStatus(t, s.do(t, http.MethodGet, "/api/user/profile", "", nil, ""), http.StatusUnauthorized)
	rec = s.do(t, http.MethodGet, "/api/user/profile", resp.Token, nil, "")
	expectStatus(t, rec, http.StatusOK)
	var profile struct {
		Email      string                 `json:"email"`
		IsVerified bool                   `json:"isVerified"`
		Profile    map[string]interface{} `json:"profile"`
	}
	decode(t, rec, &profile)
	if profile.Email != "asha@college.edu" || !profile.IsVerified || profile.Profile["department"] != "CSE" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	rec = s.json(t, http.MethodPost, "/api/user/resend-verification", "", map[string]string{"email": "asha@college.edu"})
	expectMessage(t, rec, http.StatusOK, "If the account exists, a verification email has been sent")
}

func TestResendVerificationHidesAccounts(t *testing.T) {
	s := newTestServer(t)

	expectStatus(t, s.register(t, studentFields("asha@college.edu")), http.StatusCreated)
	expectStatus(t, s.do(t, http.MethodGet, "/api/user/verify/"+s.verificationToken(t, "asha@college.edu"), "", nil, ""), http.StatusOK)

	resend := func(email string) *httptest.ResponseRecorder {
		return s.json(t, http.MethodPost, "/api/user/resend-verification", "", map[string]string{"email": email})
	}
	unknown := resend("nobody@college.edu")
	expectStatus(t, unknown, http.StatusOK)

	for _, email := range []string{coordinatorEmail, "asha@college.edu"} {
		rec := resend(email)
		if rec.Code != unknown.Code || rec.Body.String() != unknown.Body.String() {
			t.Fatalf("%s: got %d %s, unknown address got %d %s",
				email, rec.Code, rec.Body.String(), unknown.Code, unknown.Body.String())
		}
	}
}

func TestRegisteredCoordinatorCanLogIn(t *testing.T) {
	s := newTestServer(t)

	rec := s.register(t, map[string]string{
		"email":      "ravi@college.edu",
		"password":   "secret123",
		"role":       "coordinator",
		"name":       "Ravi Kumar",
		"employeeId": "EMP-1007",
	})
	expectStatus(t, rec, http.StatusCreated)

	token := s.login(t, "ravi@college.edu", "secret123")
	rec = s.do(t, http.MethodGet, "/api/user/profile", token, nil, "")
	expectStatus(t, rec, http.StatusOK)
	var profile struct {
		Role       string `json:"role"`
		IsVerified bool   `json:"isVerified"`
	}
	decode(t, rec, &profile)
	if profile.Role != "coordinator" || !profile.IsVerified {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestPlacementEndpoints(t *testing.T) {
	s := newTestServer(t)

	coordinator := s.login(t, coordinatorEmail, coordinatorPassword)

	expectStatus(t, s.register(t, studentFields("asha@college.edu")), http.StatusCreated)
	expectStatus(t, s.do(t, http.MethodGet, "/api/user/verify/"+s.verificationToken(t, "asha@college.edu"), "", nil, ""), http.StatusOK)
	student := s.login(t, "asha@college.edu", "secret123")

	listing := map[string]interface{}{
		"companyName":           "Acme Corp",
		"typeOfDrive":           "CAMPUS",
		"dateOfCampusDrive":     "2025-01-10",
		"streamRequired":        []string{"B.Tech", "CSE"},
		"batchYear":             "2025",
		"jobPosition":           "Software Engineer",
		"jobLocation":           "Bengaluru",
		"dateOfJoining":         "2025-07-01",
		"payPackage":            1200000,
		"salaryAfterInternship": 1200000,
	}

	expectStatus(t, s.json(t, http.MethodGet, "/api/job-listings", "", nil), http.StatusUnauthorized)
	expectStatus(t, s.json(t, http.MethodPost, "/api/job-listings", student, listing), http.StatusForbidden)

	listing["dateOfCampusDrive"] = "2025-08-01"
	rec := s.json(t, http.MethodPost, "/api/job-listings", coordinator, listing)
	expectMessage(t, rec, http.StatusBadRequest, "Campus drive date cannot be after joining date")

	listing["dateOfCampusDrive"] = "2025-01-10"
	rec = s.json(t, http.MethodPost, "/api/job-listings", coordinator, listing)
	expectStatus(t, rec, http.StatusCreated)
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &created)

	rec = s.json(t, http.MethodGet, "/api/job-listings?stream=CSE", student, nil)
	expectStatus(t, rec, http.StatusOK)
	var page struct {
		JobListings []json.RawMessage `json:"jobListings"`
	}
	decode(t, rec, &page)
	if len(page.JobListings) != 1 {
		t.Fatalf("got %d listings, want 1", len(page.JobListings))
	}

	rec = s.json(t, http.MethodPatch, fmt.Sprintf("/api/job-listings/%d", created.ID), coordinator,
		map[string]string{"dateOfJoining": "2024-12-01"})
	expectMessage(t, rec, http.StatusBadRequest, "Campus drive date cannot be after joining date")

	expectStatus(t, s.json(t, http.MethodGet, "/api/job-listings/abc", student, nil), http.StatusBadRequest)
	expectStatus(t, s.json(t, http.MethodGet, "/api/job-listings/999", student, nil), http.StatusNotFound)

	newStudent := map[string]interface{}{
		"fullName":        "Asha Rao",
		"universityId":    "U2021CS042",
		"universityEmail": "asha.rao@college.edu",
		"course":          "B.Tech",
		"password":        "secret123",
	}
	expectStatus(t, s.json(t, http.MethodPost, "/api/students", student, newStudent), http.StatusForbidden)
	rec = s.json(t, http.MethodPost, "/api/students", coordinator, newStudent)
	expectStatus(t, rec, http.StatusCreated)
	var placed struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &placed)
	expectStatus(t, s.json(t, http.MethodPost, "/api/students", coordinator, newStudent), http.StatusConflict)

	apply := map[string]int64{"studentId": placed.ID, "jobListingId": created.ID}
	expectStatus(t, s.json(t, http.MethodPost, "/api/applications", "", apply), http.StatusUnauthorized)
	expectStatus(t, s.json(t, http.MethodPost, "/api/applications", student, apply), http.StatusForbidden)
	rec = s.json(t, http.MethodPost, "/api/applications", coordinator, apply)
	expectStatus(t, rec, http.StatusCreated)
	var app struct {
		ID            int64  `json:"id"`
		CurrentStatus string `json:"currentStatus"`
	}
	decode(t, rec, &app)
	if app.CurrentStatus != "APPLIED" {
		t.Fatalf("status = %q", app.CurrentStatus)
	}

	rec = s.json(t, http.MethodPost, "/api/applications", coordinator, apply)
	expectMessage(t, rec, http.StatusConflict, "Student has already applied to this job listing")

	rec = s.json(t, http.MethodPost, "/api/applications", coordinator, map[string]int64{"studentId": 999, "jobListingId": created.ID})
	expectMessage(t, rec, http.StatusBadRequest, "Invalid student or job listing")

	statusPath := fmt.Sprintf("/api/applications/%d/status", app.ID)
	expectStatus(t, s.json(t, http.MethodPatch, statusPath, student, map[string]string{"status": "SELECTED"}), http.StatusForbidden)
	rec = s.json(t, http.MethodPatch, statusPath, coordinator, map[string]string{"status": "ROUND1"})
	expectStatus(t, rec, http.StatusOK)

	rec = s.json(t, http.MethodGet, fmt.Sprintf("/api/applications?studentId=%d&status=ROUND1", placed.ID), coordinator, nil)
	expectStatus(t, rec, http.StatusOK)
	var apps struct {
		Applications []json.RawMessage `json:"applications"`
	}
	decode(t, rec, &apps)
	if len(apps.Applications) != 1 {
		t.Fatalf("got %d applications, want 1", len(apps.Applications))
	}
	expectStatus(t, s.json(t, http.MethodGet, "/api/applications?studentId=x", coordinator, nil), http.StatusBadRequest)

	rec = s.json(t, http.MethodDelete, fmt.Sprintf("/api/job-listings/%d", created.ID), coordinator, nil)
	expectMessage(t, rec, http.StatusOK, "Job listing deleted successfully")
}

func TestEventFeed(t *testing.T) {
	s := newTestServer(t)

	coordinator := s.login(t, coordinatorEmail, coordinatorPassword)
	expectStatus(t, s.register(t, studentFields("asha@college.edu")), http.StatusCreated)
	expectStatus(t, s.do(t, http.MethodGet, "/api/user/verify/"+s.verificationToken(t, "asha@college.edu"), "", nil, ""), http.StatusOK)
	student := s.login(t, "asha@college.edu", "secret123")

	expectStatus(t, s.do(t, http.MethodGet, "/api/ws/events", "", nil, ""), http.StatusUnauthorized)
	expectStatus(t, s.do(t, http.MethodGet, "/api/ws/events", student, nil, ""), http.StatusForbidden)

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+coordinator)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws/events", header)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.deps.EventHub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("feed client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	expectStatus(t, s.register(t, studentFields("ravi@college.edu")), http.StatusCreated)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var event struct {
			Type    string `json:"type"`
			Payload struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"payload"`
		}
		if err := conn.ReadJSON(&event); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		// earlier registrations may still be in flight
		if event.Payload.Email != "ravi@college.edu" {
			continue
		}
		if event.Type != "user.registered" || event.Payload.Role != "student" {
			t.Fatalf("unexpected event: %+v", event)
		}
		return
	}
}
