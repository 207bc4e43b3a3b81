package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

type stubUserRepo struct {
	user *models.User
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}

func (r *stubUserRepo) Create(_ context.Context, _ *models.User) error          { return nil }
func (r *stubUserRepo) UpdatePassword(_ context.Context, _ int, _ string) error { return nil }

func testAuthService(t *testing.T, password string) *AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	repo := &stubUserRepo{user: &models.User{
		ID:           1,
		Username:     "operator",
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
	}}

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	limiter := NewLoginLimiter(3, 15*time.Minute, 10*time.Minute)

	return NewAuthService(repo, limiter, &config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, logger)
}

func TestAuthService_LoginIssuesValidToken(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	resp, err := svc.Login(context.Background(), "operator", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if resp.Username != "operator" || resp.Role != "admin" {
		t.Errorf("Unexpected identity in response: %s/%s", resp.Username, resp.Role)
	}
	if resp.Token == "" {
		t.Fatal("Expected a token")
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims["username"] != "operator" {
		t.Errorf("Expected username claim operator, got %v", claims["username"])
	}
	if claims["sub"] != "1" {
		t.Errorf("Expected sub claim 1, got %v", claims["sub"])
	}
}

func TestAuthService_WrongPasswordRejected(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	_, err := svc.Login(context.Background(), "operator", "battery-staple")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_UnknownUserRejected(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LockoutAfterRepeatedFailures(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "operator", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Third failure crosses the limit and locks.
	if _, err := svc.Login(context.Background(), "operator", "wrong"); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("Expected ErrAccountLocked on third failure, got %v", err)
	}

	// Even the correct password is refused while locked.
	if _, err := svc.Login(context.Background(), "operator", "correct-horse"); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("Expected ErrAccountLocked while locked, got %v", err)
	}

	if svc.RetryAfter("operator") <= 0 {
		t.Error("Expected a positive retry-after while locked")
	}
}

func TestAuthService_ValidateTokenRejectsTampering(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	resp, err := svc.Login(context.Background(), "operator", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := svc.ValidateToken(resp.Token + "x"); err == nil {
		t.Error("Expected tampered token to be rejected")
	}
	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("Expected malformed token to be rejected")
	}
}
