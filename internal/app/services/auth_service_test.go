package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/db"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/events"
	"github.com/yigit/placement-portal/internal/pkg/filestorage"
	"github.com/yigit/placement-portal/internal/pkg/upload"
	"github.com/yigit/placement-portal/internal/testutil"
)

type sentMail struct {
	to    string
	name  string
	token string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) SendVerificationEmail(toEmail, toName, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: toEmail, name: toName, token: token})
	return nil
}

func (m *recordingMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("expected a verification e-mail")
	}
	return m.sent[len(m.sent)-1]
}

type authHarness struct {
	db      *db.DB
	repos   *repositories.Repositories
	store   *filestorage.LocalStorage
	mailer  *recordingMailer
	jwt     *auth.JWTService
	hasher  *auth.PasswordHasher
	service services.AuthService
}

func newAuthHarness(t *testing.T) *authHarness {
	t.Helper()

	database := testutil.NewSQLiteDB(t)
	repos := repositories.NewRepositories(database)
	store, err := filestorage.NewLocalStorage(t.TempDir(), "resumes", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	h := &authHarness{
		db:     database,
		repos:  repos,
		store:  store,
		mailer: &recordingMailer{},
		jwt:    auth.NewJWTService(auth.JWTConfig{Secret: testutil.JWTSecret, Expiration: 24 * time.Hour}),
		hasher: auth.NewPasswordHasher(testutil.BcryptCost),
	}
	h.service = services.NewAuthService(
		database,
		repos.UserRepository,
		repos.VerificationTokenRepository,
		upload.NewGate(store, upload.DefaultMaxBytes, zerolog.Nop()),
		h.hasher,
		h.jwt,
		h.mailer,
		events.NewLogPublisher(zerolog.Nop()),
		time.Hour,
		zerolog.Nop(),
	)
	return h
}

func (h *authHarness) storedFiles(t *testing.T) []filestorage.ObjectInfo {
	t.Helper()
	objects, err := h.store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return objects
}

func studentForm(email string) dto.RegisterForm {
	return dto.RegisterForm{
		Email:      email,
		Password:   "secret123",
		Role:       "student",
		Name:       "Asha Rao",
		Department: "CSE",
		Year:       "3",
		RollNumber: "CSE21-042",
		CGPA:       "8.4",
	}
}

func coordinatorForm(email string) dto.RegisterForm {
	return dto.RegisterForm{
		Email:      email,
		Password:   "secret123",
		Role:       "coordinator",
		Name:       "Ravi Kumar",
		EmployeeID: "EMP-1007",
	}
}

func resumeFile() testutil.FilePart {
	return testutil.FilePart{Field: "resume", Filename: "cv.pdf", Content: []byte("%PDF-1.4 resume")}
}

func expectCustomError(t *testing.T, err, target error, message string) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
	var custom *apperrors.CustomError
	if !errors.As(err, &custom) {
		t.Fatalf("expected *CustomError, got %T", err)
	}
	if message != "" && custom.Message != message {
		t.Fatalf("message = %q, want %q", custom.Message, message)
	}
}

func TestRegister_MissingFieldsInOrder(t *testing.T) {
	h := newAuthHarness(t)

	full := studentForm("asha@college.edu")
	tests := []struct {
		name  string
		clear func(f *dto.RegisterForm)
		field string
	}{
		{"everything missing", func(f *dto.RegisterForm) { *f = dto.RegisterForm{} }, "email"},
		{"password", func(f *dto.RegisterForm) { f.Password = "" }, "password"},
		{"role before name", func(f *dto.RegisterForm) { f.Role = ""; f.Name = "" }, "role"},
		{"name", func(f *dto.RegisterForm) { f.Name = "  " }, "name"},
		{"department", func(f *dto.RegisterForm) { f.Department = "" }, "department"},
		{"year", func(f *dto.RegisterForm) { f.Year = "" }, "year"},
		{"rollNumber", func(f *dto.RegisterForm) { f.RollNumber = "" }, "rollNumber"},
		{"cgpa", func(f *dto.RegisterForm) { f.CGPA = "" }, "cgpa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := full
			tt.clear(&form)
			_, err := h.service.Register(context.Background(), &dto.RegisterInput{RegisterForm: form})
			expectCustomError(t, err, apperrors.ErrMissingField, "Missing required field: "+tt.field)
		})
	}

	t.Run("employeeId", func(t *testing.T) {
		form := coordinatorForm("ravi@college.edu")
		form.EmployeeID = ""
		_, err := h.service.Register(context.Background(), &dto.RegisterInput{RegisterForm: form})
		expectCustomError(t, err, apperrors.ErrMissingField, "Missing required field: employeeId")
	})
}

func TestRegister_InvalidInput(t *testing.T) {
	h := newAuthHarness(t)

	tests := []struct {
		name    string
		mutate  func(f *dto.RegisterForm)
		target  error
		message string
	}{
		{"role", func(f *dto.RegisterForm) { f.Role = "admin" }, apperrors.ErrInvalidRole, "Invalid role"},
		{"email", func(f *dto.RegisterForm) { f.Email = "not-an-email" }, apperrors.ErrInvalidEmail, "Please provide a valid email"},
		{"year", func(f *dto.RegisterForm) { f.Year = "third" }, apperrors.ErrValidationFailed, "Invalid year"},
		{"cgpa", func(f *dto.RegisterForm) { f.CGPA = "-1" }, apperrors.ErrValidationFailed, "Invalid cgpa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := studentForm("asha@college.edu")
			tt.mutate(&form)
			_, err := h.service.Register(context.Background(), &dto.RegisterInput{
				RegisterForm: form,
				Files:        testutil.FileHeaders(t, resumeFile()),
			})
			expectCustomError(t, err, tt.target, tt.message)
		})
	}

	if files := h.storedFiles(t); len(files) != 0 {
		t.Fatalf("rejected registrations left %d files behind", len(files))
	}
}

func TestRegister_StudentWithResume(t *testing.T) {
	ctx := context.Background()
	h := newAuthHarness(t)

	resp, err := h.service.Register(ctx, &dto.RegisterInput{
		RegisterForm: studentForm("  Asha@College.EDU "),
		Files:        testutil.FileHeaders(t, resumeFile()),
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Message != services.MsgRegistered {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.User.Email != "asha@college.edu" || resp.User.Role != models.RoleStudent || resp.User.Name != "Asha Rao" {
		t.Fatalf("unexpected summary: %+v", resp.User)
	}
	claims, err := h.jwt.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ID != resp.User.ID || claims.Role != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	files := h.storedFiles(t)
	if len(files) != 1 {
		t.Fatalf("expected the resume to be kept, found %d files", len(files))
	}

	user, err := h.repos.UserRepository.GetByID(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	profile, _ := user.StudentProfile()
	if profile.Resume == nil || h.store.KeyFromLocation(*profile.Resume) != files[0].Key {
		t.Fatalf("resume reference %v does not match stored %s", profile.Resume, files[0].Key)
	}
	if user.IsVerified {
		t.Fatal("students start unverified")
	}

	mail := h.mailer.last(t)
	if mail.to != "asha@college.edu" || mail.name != "Asha Rao" {
		t.Fatalf("unexpected mail: %+v", mail)
	}
	token, err := h.repos.VerificationTokenRepository.GetByToken(ctx, mail.token)
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if token.UserID != user.ID {
		t.Fatalf("token belongs to user %d, want %d", token.UserID, user.ID)
	}
}

func TestRegister_CoordinatorUploadIsReleased(t *testing.T) {
	ctx := context.Background()
	h := newAuthHarness(t)

	resp, err := h.service.Register(ctx, &dto.RegisterInput{
		RegisterForm: coordinatorForm("ravi@college.edu"),
		Files:        testutil.FileHeaders(t, resumeFile()),
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if files := h.storedFiles(t); len(files) != 0 {
		t.Fatalf("coordinator upload should be deleted, found %d files", len(files))
	}
	if len(h.mailer.sent) != 0 {
		t.Fatal("coordinators are not sent a verification e-mail")
	}

	user, err := h.repos.UserRepository.GetByID(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !user.IsVerified {
		t.Fatal("coordinator should not require verification")
	}
}

func TestRegister_DuplicateEmailReleasesFile(t *testing.T) {
	ctx := context.Background()
	h := newAuthHarness(t)

	if _, err := h.service.Register(ctx, &dto.RegisterInput{RegisterForm: studentForm("asha@college.edu")}); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := h.service.Register(ctx, &dto.RegisterInput{
		RegisterForm: studentForm("ASHA@college.edu"),
		Files:        testutil.FileHeaders(t, resumeFile()),
	})
	expectCustomError(t, err, apperrors.ErrEmailAlreadyExists, services.MsgEmailRegistered)

	if files := h.storedFiles(t); len(files) != 0 {
		t.Fatalf("duplicate registration left %d files behind", len(files))
	}
}

func TestRegister_RejectedUpload(t *testing.T) {
	h := newAuthHarness(t)

	_, err := h.service.Register(context.Background(), &dto.RegisterInput{
		RegisterForm: studentForm("asha@college.edu"),
		Files:        testutil.FileHeaders(t, testutil.FilePart{Field: "resume", Filename: "cv.exe", Content: []byte("MZ")}),
	})
	expectCustomError(t, err, apperrors.ErrFileUpload, "File upload error")

	if _, err := h.repos.UserRepository.GetByEmail(context.Background(), "asha@college.edu"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("no user should be created, got %v", err)
	}
}

func registerVerified(t *testing.T, h *authHarness, form dto.RegisterForm) *dto.RegisterResponse {
	t.Helper()
	ctx := context.Background()

	resp, err := h.service.Register(ctx, &dto.RegisterInput{RegisterForm: form})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if form.Role == string(models.RoleStudent) {
		if err := h.service.VerifyEmail(ctx, h.mailer.last(t).token); err != nil {
			t.Fatalf("VerifyEmail: %v", err)
		}
	}
	return resp
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	h := newAuthHarness(t)

	registerVerified(t, h, studentForm("asha@college.edu"))
	registerVerified(t, h, coordinatorForm("ravi@college.edu"))

	t.Run("missing credentials", func(t *testing.T) {
		for _, req := range []dto.LoginRequest{{}, {Email: "asha@college.edu"}, {Password: "secret123"}} {
			_, err := h.service.Login(ctx, &req)
			expectCustomError(t, err, apperrors.ErrMissingField, services.MsgCredentialsRequired)
		}
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		_, unknown := h.service.Login(ctx, &dto.LoginRequest{Email: "nobody@college.edu", Password: "secret123"})
		_, wrong := h.service.Login(ctx, &dto.LoginRequest{Email: "asha@college.edu", Password: "wrong"})
		expectCustomError(t, unknown, apperrors.ErrInvalidCredentials, services.MsgInvalidCredentials)
		expectCustomError(t, wrong, apperrors.ErrInvalidCredentials, services.MsgInvalidCredentials)
		if unknown.Error() != wrong.Error() {
			t.Fatalf("responses differ: %q vs %q", unknown, wrong)
		}
	})

	t.Run("student profile", func(t *testing.T) {
		resp, err := h.service.Login(ctx, &dto.LoginRequest{Email: "ASHA@college.edu", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		view, ok := resp.User.Profile.(dto.StudentProfileView)
		if !ok {
			t.Fatalf("profile = %T, want StudentProfileView", resp.User.Profile)
		}
		if view.Department != "CSE" || view.Year != 3 || view.RollNumber != "CSE21-042" || view.CGPA != 8.4 {
			t.Fatalf("unexpected profile: %+v", view)
		}
		if _, err := h.jwt.ValidateToken(resp.Token); err != nil {
			t.Fatalf("ValidateToken: %v", err)
		}
	})

	t.Run("coordinator profile", func(t *testing.T) {
		resp, err := h.service.Login(ctx, &dto.LoginRequest{Email: "ravi@college.edu", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		view, ok := resp.User.Profile.(dto.CoordinatorProfileView)
		if !ok || view.EmployeeID != "EMP-1007" {
			t.Fatalf("unexpected profile: %#v", resp.User.Profile)
		}
		if resp.User.Role != models.RoleCoordinator {
			t.Fatalf("role = %s", resp.User.Role)
		}
	})
}

func TestLogin_UnverifiedStudent(t *testing.T) {
	ctx := context.Background()
	h := newAuthHarness(t)

	if _, err := h.service.Register(ctx, &dto.RegisterInput{RegisterForm: studentForm("asha@college.edu")}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := h.service.Login(ctx, &dto.LoginRequest{Email: "asha@college.edu", Password: "secret123"})
	expectCustomError(t, err, apperrors.ErrEmailNotVerified, services.MsgVerifyEmail)

	// a wrong password is still reported as invalid credentials
	_, err = h.service.Login(ctx, &dto.LoginRequest{Email: "asha@college.edu", Password: "nope"})
	expectCustomError(t, err, apperrors.ErrInvalidCredentials, services.MsgInvalidCredentials)
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()
	h := newAuthHarness(t)

	resp, err := h.service.Register(ctx, &dto.RegisterInput{RegisterForm: studentForm("asha@college.edu")})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token := h.mailer.last(t).token

	for _, bad := range []string{"", "  ", "not-a-token"} {
		err := h.service.VerifyEmail(ctx, bad)
		expectCustomError(t, err, apperrors.ErrInvalidEmailToken, "")
	}

	if err := h.service.VerifyEmail(ctx, token); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	user, err := h.repos.UserRepository.GetByID(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !user.IsVerified {
		t.Fatal("expected user to be verified")
	}

	// tokens are single use
	err = h.service.VerifyEmail(ctx, token)
	expectCustomError(t, err, apperrors.ErrInvalidEmailToken, "")
}

func TestVerifyEmail_Expired(t *testing.T) {
	ctx := context.Background()
	h := newAuthHarness(t)

	resp, err := h.service.Register(ctx, &dto.RegisterInput{RegisterForm: studentForm("asha@college.edu")})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	expired := &models.EmailVerificationToken{
		UserID:    resp.User.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := h.repos.VerificationTokenRepository.Create(ctx, expired); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = h.service.VerifyEmail(ctx, "expired-token")
	expectCustomError(t, err, apperrors.ErrInvalidEmailToken, "")
}

func TestResendVerification(t *testing.T) {
	ctx := context.Background()
	h := newAuthHarness(t)

	if _, err := h.service.Register(ctx, &dto.RegisterInput{RegisterForm: studentForm("asha@college.edu")}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	registerVerified(t, h, coordinatorForm("ravi@college.edu"))
	first := h.mailer.last(t).token

	if err := h.service.ResendVerification(ctx, "nobody@college.edu"); err != nil {
		t.Fatalf("unknown address should succeed silently, got %v", err)
	}

	if err := h.service.ResendVerification(ctx, " Asha@college.edu"); err != nil {
		t.Fatalf("ResendVerification: %v", err)
	}
	fresh := h.mailer.last(t).token
	if fresh == first {
		t.Fatal("expected a new token")
	}
	if err := h.service.VerifyEmail(ctx, first); !errors.Is(err, apperrors.ErrInvalidEmailToken) {
		t.Fatalf("old token should be invalidated, got %v", err)
	}
	if err := h.service.VerifyEmail(ctx, fresh); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	sent := len(h.mailer.sent)
	for _, address := range []string{"asha@college.edu", "ravi@college.edu"} {
		if err := h.service.ResendVerification(ctx, address); err != nil {
			t.Fatalf("verified address %s should succeed silently, got %v", address, err)
		}
	}
	if len(h.mailer.sent) != sent {
		t.Fatalf("verified accounts must not be mailed, sent %d extra", len(h.mailer.sent)-sent)
	}
}
