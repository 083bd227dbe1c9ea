package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long a session token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the payload of a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService registers users, checks credentials and issues and
// verifies session tokens.
type AuthService struct {
	users  repositories.UserRepository
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// NewAuthService creates an AuthService signing tokens with secret. A
// non-positive ttl falls back to DefaultTokenTTL.
func NewAuthService(users repositories.UserRepository, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

// Register hashes the password and stores a new user.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "password cannot be hashed", err)
	}
	user.Password = string(hash)
	user.BeforeCreate(s.now())

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "email already registered", err)
		}
		return nil, apperr.Wrap(apperr.Store, "failed to create user", err)
	}
	return user, nil
}

// Login checks the credentials and returns a signed session token.
func (s *AuthService) Login(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperr.New(apperr.Validation, "email is required")
	}
	if password == "" {
		return "", apperr.New(apperr.Validation, "password is required")
	}

	user, err := s.users.GetByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", apperr.Wrap(apperr.NotFound, "user not found", err)
	}
	if err != nil {
		return "", apperr.Wrap(apperr.Store, "failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperr.Wrap(apperr.Unauthenticated, "incorrect password", err)
	}
	return s.IssueToken(user)
}

// IssueToken signs a token carrying the user's email, name and role.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.Store, "failed to sign token", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the
// identity it carries.
func (s *AuthService) Verify(tokenString string) (*models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.Unauthenticated, "the token is invalid", err)
	}
	if claims.Email == "" {
		return nil, apperr.New(apperr.Unauthenticated, "the token has no identity")
	}
	return &models.Identity{Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}
