package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/YannisFouzi/blind-test-sub001/internal/config"
	"github.com/YannisFouzi/blind-test-sub001/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService manages host accounts and the tokens that guard catalog
// administration. Tokens carry the host id in the subject claim and are only
// accepted when issuer, method and expiry all check out.
type AuthService struct {
	db       *gorm.DB
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		db:       db,
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		tokenTTL: ttl,
	}
}

// Register creates a host account and returns the profile with a fresh token.
func (s *AuthService) Register(username, password string) (*models.Host, string, error) {
	var count int64
	if err := s.db.Model(&models.Host{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	host := models.Host{Username: username, PasswordHash: string(hash)}
	if err := s.db.Create(&host).Error; err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(&host)
	if err != nil {
		return nil, "", err
	}
	return &host, token, nil
}

// Login checks the credentials and returns the profile with a fresh token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*models.Host, string, error) {
	var host models.Host
	if err := s.db.Where("username = ?", username).First(&host).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(host.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(&host)
	if err != nil {
		return nil, "", err
	}
	return &host, token, nil
}

func (s *AuthService) issueToken(host *models.Host) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatUint(uint64(host.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken returns the host id a token was issued to.
func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, ErrInvalidToken
	}

	hostID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(hostID), nil
}
