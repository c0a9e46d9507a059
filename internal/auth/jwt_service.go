package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"aidfind/internal/model"
)

// TokenExpiry is the duration for which issued tokens are valid. The token is
// the only session state; within this window a role change or account deletion
// is not detected.
const TokenExpiry = 7 * 24 * time.Hour

// Claims represents JWT claims. The claim set is the sole carrier of the
// caller's identity; handlers consume it as a value from the request context.
type Claims struct {
	UserID   uuid.UUID  `json:"id"`
	Role     model.Role `json:"role"`
	Username string     `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateToken mints a token for a Seeker or Donor.
func (s *JWTService) GenerateToken(userID uuid.UUID, role model.Role) (string, error) {
	return s.sign(&Claims{
		UserID: userID,
		Role:   role,
	})
}

// GenerateAdminToken mints a token for an admin. Admin tokens also carry the
// username so the back office can display who is signed in.
func (s *JWTService) GenerateAdminToken(adminID uuid.UUID, username string) (string, error) {
	return s.sign(&Claims{
		UserID:   adminID,
		Role:     model.RoleAdmin,
		Username: username,
	})
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
