package tests

import (
	"context"
	"errors"
	"testing"

	"rental/internal/domain"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// IDENTITY AND SESSIONS
// ──────────────────────────────────────────────

func newAuthFixture() (*MockUserRepository, *MockTokenStore, *service.AuthService) {
	users := NewMockUserRepository()
	tokens := NewMockTokenStore()
	return users, tokens, service.NewAuthService(users, tokens)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthFixture()

	cases := []struct {
		name    string
		req     service.RegisterRequest
		wantErr error
	}{
		{"empty name", service.RegisterRequest{Email: "a@b.com", Role: "RENTER"}, service.ErrInvalidName},
		{"empty email", service.RegisterRequest{Name: "Ana", Role: "RENTER"}, service.ErrInvalidEmail},
		{"malformed email", service.RegisterRequest{Name: "Ana", Email: "not-an-email", Role: "RENTER"}, service.ErrInvalidEmail},
		{"unknown role", service.RegisterRequest{Name: "Ana", Email: "a@b.com", Role: "PILOT"}, service.ErrInvalidRole},
	}

	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.req); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthFixture()

	req := service.RegisterRequest{Name: "Ana", Email: "ana@example.com", Role: "RENTER"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Email matching is case-insensitive.
	req.Email = "ANA@example.com"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginAndValidate(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthFixture()

	registered, err := svc.Register(context.Background(), service.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Role: "host",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if registered.Role != domain.RoleHost {
		t.Errorf("expected role normalized to HOST, got %s", registered.Role)
	}

	token, user, err := svc.Login(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login returned wrong user: %s", user.ID)
	}

	resolved, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if resolved.ID != registered.ID {
		t.Errorf("token resolved to wrong user: %s", resolved.ID)
	}
}

func TestValidateToken_UnknownToken(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthFixture()

	if _, err := svc.ValidateToken(context.Background(), "bogus"); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), ""); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	t.Parallel()

	_, _, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), service.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Role: "RENTER",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	token, _, err := svc.Login(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected revoked token to be invalid, got %v", err)
	}
}
