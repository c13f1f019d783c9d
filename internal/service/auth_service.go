package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tigoviajes/catalog/internal/domain"
)

// FirebaseAuthClient defines the interface for Firebase Auth operations
// This allows mocking for tests
type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService exchanges a Firebase ID token for an admin session token
type AuthService struct {
	authClient  FirebaseAuthClient
	isAdmin     func(email string) bool
	jwtSecret   string
	tokenExpiry time.Duration
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(authClient FirebaseAuthClient, isAdmin func(email string) bool, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		authClient:  authClient,
		isAdmin:     isAdmin,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

// LoginResponse is the admin session issued after a successful login
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
}

// Login verifies the Firebase token and issues a session for allow-listed emails
func (s *AuthService) Login(ctx context.Context, firebaseToken string) (*LoginResponse, error) {
	if s.authClient == nil {
		return nil, fmt.Errorf("firebase auth is not configured")
	}

	token, err := s.authClient.VerifyIDToken(ctx, firebaseToken)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !s.isAdmin(email) {
		return nil, domain.ErrUnauthorizedAdmin
	}

	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = email
	}

	signed, expiresAt, err := s.GenerateAdminToken(token.UID, email, name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{Token: signed, ExpiresAt: expiresAt, Email: email, Name: name}, nil
}

// GenerateAdminToken creates a signed HS256 JWT with admin claims
func (s *AuthService) GenerateAdminToken(uid, email, name string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenExpiry)

	claims := domain.AdminClaims{
		UID:   uid,
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
