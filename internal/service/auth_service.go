package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgEmailTaken      = "User with this email already exists"
	msgPasswordTooLong = "Password must be at most 72 bytes"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Claims extends JWT standard claims with the account id and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
}

// AuthService handles accounts, password hashing, and JWT issue/verification.
type AuthService struct {
	clock
	cfg      *config.Config
	userRepo repository.UserRepository
	tokens   repository.TokenStore
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	tokens repository.TokenStore,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Register creates an account. Any known role may self-register.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, invalid("role", "Invalid role specified")
	}
	if len(req.Password) > MaxPasswordBytes {
		return nil, invalid("password", msgPasswordTooLong)
	}
	email := normalizeEmail(req.Email)

	_, err := s.userRepo.GetByEmail(ctx, email)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit {
		return nil, conflict("email", msgEmailTaken)
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.timestamp()
	u := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintUserEmail) {
			return nil, conflict("email", msgEmailTaken)
		}
		return nil, err
	}

	s.log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("User registered")
	return u, nil
}

// Login verifies credentials and issues a signed token. An unknown email and a
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, User: u}, nil
}

// GenerateToken signs an HS256 token carrying the user id and role.
func (s *AuthService) GenerateToken(u *model.User) (string, error) {
	now := s.timestamp()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: u.ID,
		Role:   u.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
// Expired tokens yield an error wrapping jwt.ErrTokenExpired.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.timestamp))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// CheckRevoked returns ErrTokenRevoked if the token was logged out.
func (s *AuthService) CheckRevoked(ctx context.Context, claims *Claims) error {
	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.timestamp())
	}
	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info().Str("user_id", claims.UserID.String()).Msg("User logged out")
	return nil
}

// Me returns the account behind a validated token.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("User")
	}
	return u, err
}
