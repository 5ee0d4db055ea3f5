package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/config"
	"github.com/sandeshj07/event-management-backend/utils"
)

type Service interface {
	Register(input RegisterInput) error
	Login(input LoginInput) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	Logout(userID uint) error
	GetUserByID(userID uint) (User, error)
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================
func (s *service) Register(in RegisterInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.repo.FindByEmail(email); err == nil {
		return errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		FullName:     in.FullName,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		IsStaff:      false,
		Status:       "active",
	}

	return s.repo.Create(user)
}

// =============================
// Login
// =============================
func (s *service) Login(in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	if user.Status != "active" {
		return nil, nil, errors.New("account is not active")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	access, err := s.generateToken(user, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}

	refresh, err := s.generateToken(user, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	// Track the active refresh token so logout can revoke it
	if err := utils.StoreRefreshToken(context.Background(), user.ID, refresh, s.refreshTTL); err != nil {
		log.Printf("failed to store refresh token: %v", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// =============================
// Refresh
// =============================
func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return "", errors.New("user_id missing in token")
	}
	userID := uint(userIDFloat)

	if err := utils.ValidateRefreshToken(context.Background(), userID, refreshToken); err != nil {
		return "", err
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return s.generateToken(&user, s.accessSecret, s.accessTTL)
}

func (s *service) Logout(userID uint) error {
	return utils.RevokeRefreshToken(context.Background(), userID)
}

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

func (s *service) generateToken(user *User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SeedAdminUser creates the staff account from env config when missing
func SeedAdminUser(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &User{
		FullName:     "Administrator",
		Email:        strings.ToLower(cfg.AdminEmail),
		PasswordHash: string(hash),
		IsStaff:      true,
		Status:       "active",
	}
	return db.Create(admin).Error
}
