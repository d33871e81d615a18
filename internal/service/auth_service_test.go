package service

import (
	"alcyxob/tracker-app/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func TestRegisterCreatesPendingProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, " Alice@Example.com ", "", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Status != domain.StatusPending || user.IsAdmin {
		t.Errorf("new user = %+v, want pending non-admin", user)
	}
	if user.Email != "alice@example.com" || user.Username != "alice" {
		t.Errorf("email/username = %q/%q", user.Email, user.Username)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked")
	}

	if _, err := env.auth.Register(ctx, "alice@example.com", "again", "password123"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate register error = %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "password123"},
		{"bad email", "not-an-email", "password123"},
		{"short password", "bob@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(context.Background(), tt.email, "bob", tt.password)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLoginRequiresApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := env.auth.Register(ctx, "carol@example.com", "carol", "password123")

	if _, _, err := env.auth.Login(ctx, "carol@example.com", "wrong-password"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong password error = %v", err)
	}
	if _, _, err := env.auth.Login(ctx, "carol@example.com", "password123"); !errors.Is(err, ErrAccountNotApproved) {
		t.Fatalf("pending login error = %v", err)
	}

	pending, _ := env.auth.ListPendingUsers(ctx)
	if len(pending) != 1 || pending[0].ID != user.ID {
		t.Fatalf("pending = %+v", pending)
	}

	approved, err := env.auth.ApproveUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ApproveUser() error = %v", err)
	}
	if approved.ApprovedAt == nil {
		t.Error("approvedAt not set")
	}

	token, loggedIn, err := env.auth.Login(ctx, "carol@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in as %s, want %s", loggedIn.ID, user.ID)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(env.auth.GetJWTSecret()), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != user.ID || claims.IsAdmin {
		t.Errorf("claims = %+v", claims)
	}

	if pending, _ := env.auth.ListPendingUsers(ctx); len(pending) != 0 {
		t.Errorf("approved user still pending: %+v", pending)
	}
}

func TestRejectedUserCannotLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := env.auth.Register(ctx, "dave@example.com", "dave", "password123")
	if _, err := env.auth.RejectUser(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := env.auth.Login(ctx, "dave@example.com", "password123"); !errors.Is(err, ErrAccountRejected) {
		t.Errorf("error = %v, want ErrAccountRejected", err)
	}
	if _, err := env.auth.ApproveUser(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("approve missing error = %v", err)
	}
}

func TestBootstrapAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.auth.Register(ctx, "ROOT@example.com", "root", "password123")
	if err != nil {
		t.Fatal(err)
	}
	if !user.IsAdmin || user.Status != domain.StatusApproved {
		t.Errorf("bootstrap user = %+v", user)
	}
	if _, _, err := env.auth.Login(ctx, "root@example.com", "password123"); err != nil {
		t.Errorf("bootstrap admin cannot log in: %v", err)
	}
}

func TestCreateAdminPromotesExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := env.auth.Register(ctx, "erin@example.com", "erin", "password123")

	admin, err := env.auth.CreateAdmin(ctx, "erin@example.com", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if admin.ID != user.ID || !admin.IsAdmin || admin.Status != domain.StatusApproved {
		t.Errorf("promoted = %+v", admin)
	}
}
