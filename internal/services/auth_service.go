package services

import (
	"strconv"
	"time"

	"atelier/internal/apperr"
	"atelier/internal/domain"
	"atelier/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims is the payload carried by both token kinds. Subject holds the
// user id; Typ separates access from refresh so one can never stand in
// for the other.
type Claims struct {
	Admin bool   `json:"adm"`
	Typ   string `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type AuthService struct {
	Users      *repos.UserRepo
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Register creates a common (non-admin) user. Role escalation only
// happens out of band.
func (s *AuthService) Register(name, email, password string) (*domain.User, error) {
	taken, err := s.Users.EmailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflictf("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(name, email, string(hash))
}

// Login verifies credentials and issues both tokens. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, apperr.Unauthenticatedf("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, apperr.Unauthenticatedf("invalid email or password")
	}

	access, err := s.sign(u, tokenTypeAccess, s.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(u, tokenTypeRefresh, s.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// user must still exist; admin status is re-read so a demotion takes
// effect at the next refresh.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthenticatedf("refresh token not provided")
	}
	claims, err := s.parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Typ != tokenTypeRefresh {
		return nil, apperr.Unauthenticatedf("not a refresh token")
	}
	u, err := s.Users.ByID(claims.UserID())
	if err != nil {
		return nil, apperr.Unauthenticatedf("user associated with token not found")
	}
	access, err := s.sign(u, tokenTypeAccess, s.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, TokenType: "bearer"}, nil
}

// ParseAccess validates an access token and returns its claims.
func (s *AuthService) ParseAccess(token string) (*Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	if claims.Typ != tokenTypeAccess {
		return nil, apperr.Unauthenticatedf("not an access token")
	}
	return claims, nil
}

func (s *AuthService) sign(u *domain.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Admin: u.IsAdmin,
		Typ:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if typ == tokenTypeRefresh {
		claims.ID = uuid.NewString()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func (s *AuthService) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthenticatedf("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthenticatedf("invalid or expired token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, apperr.Unauthenticatedf("invalid token payload")
	}
	return claims, nil
}
