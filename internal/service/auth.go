package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

var (
	ErrSubjectRequired = errors.New("token subject is required")
	ErrNotAdmin        = errors.New("token does not carry the admin role")
)

// AuthService issues and checks the bearer tokens of the admin API.
type AuthService struct {
	jwtSecret string
	jwtExpiry time.Duration
	issuer    string
}

func NewAuthService(jwtSecret string, jwtExpiry time.Duration, issuer string) *AuthService {
	return &AuthService{
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		issuer:    issuer,
	}
}

// GenerateJWT signs an admin token for subject (a bot or operator name).
func (s *AuthService) GenerateJWT(subject string) (string, time.Time, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", time.Time{}, ErrSubjectRequired
	}

	now := time.Now()
	expiry := now.Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": adminRole,
		"iss":  s.issuer,
		"exp":  expiry.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiry, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// VerifyAdmin checks an admin token and returns its subject.
func (s *AuthService) VerifyAdmin(tokenString string) (string, error) {
	claims, err := s.VerifyJWT(tokenString)
	if err != nil {
		return "", err
	}

	if role, _ := claims["role"].(string); role != adminRole {
		return "", ErrNotAdmin
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrSubjectRequired
	}

	return subject, nil
}
