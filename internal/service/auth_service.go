package service

import (
	"context"
	"strings"
	"time"

	"combatbible/gymdesk/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AuthService signs users in. There are no passwords: the role picked at the
// login screen is trusted and carried in a signed token.
type AuthService interface {
	Login(ctx context.Context, role domain.Role, name string) (token string, user *domain.User, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	gymName       string
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(gymName, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	return &authService{
		gymName:       gymName,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Login issues a token for role. An empty name falls back to the role's
// default display name. The same role and name always map to the same user id.
func (s *authService) Login(ctx context.Context, role domain.Role, name string) (string, *domain.User, error) {
	if !role.Valid() {
		return "", nil, ErrInvalidRole
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = role.DefaultName()
	}

	user := &domain.User{
		ID:      UserID(role, name),
		Name:    name,
		Role:    role,
		GymName: s.gymName,
	}
	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, user, nil
}

// UserID derives a stable id from role and display name.
func UserID(role domain.Role, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(string(role)+":"+name)).String()
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID  string      `json:"uid"`
	Name    string      `json:"name"`
	Role    domain.Role `json:"role"`
	GymName string      `json:"gym,omitempty"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID:  user.ID,
		Name:    user.Name,
		Role:    user.Role,
		GymName: user.GymName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "gymdesk",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
