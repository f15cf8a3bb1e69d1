package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/config"
	"github.com/shikkhaloy/school-backend/internal/identity"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// ErrInvalidToken is returned when a session token fails validation.
var ErrInvalidToken = errors.New("session token is not valid")

// Claims extends JWT standard claims with the acting identity's email
// and role snapshot. The role is a hint for logging only; authorization
// always re-reads the user record so demotions take effect immediately.
type Claims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// IdentityStore is the user storage the auth service reads and upserts.
type IdentityStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertOnLogin(ctx context.Context, email, name, photoURL string) (*model.User, error)
}

// AuthService exchanges identity-provider tokens for session tokens and
// resolves acting identities on behalf of the authorization guard.
type AuthService struct {
	cfg      *config.Config
	provider identity.Provider
	users    IdentityStore
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, provider identity.Provider, users IdentityStore, log zerolog.Logger) *AuthService {
	return &AuthService{cfg: cfg, provider: provider, users: users, log: log}
}

// Login verifies an identity-provider ID token, upserts the user record
// (first login creates a plain "user"), and issues a session token.
func (s *AuthService) Login(ctx context.Context, idToken string) (*model.LoginResponse, error) {
	account, err := s.provider.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.users.UpsertOnLogin(ctx, account.Email, account.Name, account.PhotoURL)
	if err != nil {
		return nil, fmt.Errorf("upsert user on login: %w", err)
	}

	token, err := s.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("User logged in")
	return &model.LoginResponse{Token: token, User: user}, nil
}

// GenerateToken signs a session JWT for the email/role pair.
func (s *AuthService) GenerateToken(email string, role model.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Email: email,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and verifies a session JWT.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Resolve loads the user record for a claimed acting identity. An empty
// identity or a missing record fails with ErrUnauthenticated.
func (s *AuthService) Resolve(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: no identity supplied", ErrUnauthenticated)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no user record for %s", ErrUnauthenticated, email)
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}
