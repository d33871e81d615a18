package service

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository"
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrAccountNotApproved   = errors.New("account is waiting for administrator approval")
	ErrAccountRejected      = errors.New("account registration was rejected")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// minPasswordLength matches the registration form rule.
const minPasswordLength = 8

// AuthService covers registration, login and the admin approval workflow.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListPendingUsers(ctx context.Context) ([]domain.User, error)
	ApproveUser(ctx context.Context, id string) (*domain.User, error)
	RejectUser(ctx context.Context, id string) (*domain.User, error)
	// CreateAdmin registers (or promotes) an approved admin account.
	CreateAdmin(ctx context.Context, email, username, password string) (*domain.User, error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo       repository.UserRepository
	jwtSecret      string
	jwtExpiration  time.Duration
	bootstrapEmail string
}

// NewAuthService creates a new instance of authService.
// Registrations with bootstrapEmail are approved as admin immediately.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, bootstrapEmail string) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		userRepo:       userRepo,
		jwtSecret:      jwtSecret,
		jwtExpiration:  jwtExpiration,
		bootstrapEmail: normalizeEmail(bootstrapEmail),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// defaultUsername falls back to the local part of the email.
func defaultUsername(email, username string) string {
	if username = strings.TrimSpace(username); username != "" {
		return username
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return ""
}

func validateCredentials(email, username, password string) error {
	if email == "" || username == "" || password == "" {
		return validationError("email, username and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return validationError("invalid email address")
	}
	if len(password) < minPasswordLength {
		return validationError("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// Register creates a pending profile.
func (s *authService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	username = defaultUsername(email, username)
	if err := validateCredentials(email, username, password); err != nil {
		return nil, err
	}

	status := domain.StatusPending
	isAdmin := false
	if s.bootstrapEmail != "" && email == s.bootstrapEmail {
		status = domain.StatusApproved
		isAdmin = true
	}
	return s.create(ctx, email, username, password, status, isAdmin)
}

func (s *authService) create(ctx context.Context, email, username, password string, status domain.UserStatus, isAdmin bool) (*domain.User, error) {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		Status:       status,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
	}
	if status == domain.StatusApproved {
		user.ApprovedAt = &now
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race against a concurrent registration for the same email.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	log.Printf("INFO: Registered user %s (%s)", user.ID, user.Status)
	user.PasswordHash = ""
	return user, nil
}

// Login authenticates an approved profile and issues a JWT.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, validationError("email and password are required")
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	// Credentials are right but the profile is not usable yet.
	switch user.Status {
	case domain.StatusApproved:
	case domain.StatusRejected:
		return "", nil, ErrAccountRejected
	default:
		return "", nil, ErrAccountNotApproved
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetUser returns a profile without its password hash.
func (s *authService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ListPendingUsers returns profiles awaiting approval, oldest first.
func (s *authService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ApproveUser moves a profile to approved; approvedAt is stamped by the repository.
func (s *authService) ApproveUser(ctx context.Context, id string) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.StatusApproved, nil)
}

// RejectUser moves a profile to rejected. Admin rights are dropped.
func (s *authService) RejectUser(ctx context.Context, id string) (*domain.User, error) {
	notAdmin := false
	return s.setStatus(ctx, id, domain.StatusRejected, &notAdmin)
}

func (s *authService) setStatus(ctx context.Context, id string, status domain.UserStatus, isAdmin *bool) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	admin := user.IsAdmin
	if isAdmin != nil {
		admin = *isAdmin
	}
	if err := s.userRepo.UpdateStatus(ctx, id, status, admin); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	log.Printf("INFO: User %s status changed %s -> %s", id, user.Status, status)
	return s.GetUser(ctx, id)
}

// CreateAdmin creates an approved admin, or promotes the existing profile with that email.
func (s *authService) CreateAdmin(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if err := s.userRepo.UpdateStatus(ctx, existing.ID, domain.StatusApproved, true); err != nil {
			return nil, err
		}
		log.Printf("INFO: Promoted user %s to admin", existing.ID)
		return s.GetUser(ctx, existing.ID)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	username = defaultUsername(email, username)
	if err := validateCredentials(email, username, password); err != nil {
		return nil, err
	}
	return s.create(ctx, email, username, password, domain.StatusApproved, true)
}

// --- JWT Helper ---

// Claims defines the structure of the JWT payload.
type Claims struct {
	UserID  string `json:"uid"`
	IsAdmin bool   `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "tracker-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
