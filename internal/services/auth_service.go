package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/mailer"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpDigits = 6

var (
	ErrEmailTaken      = newError(ErrConflict, "Email already registered")
	ErrAccountDisabled = newError(ErrUnauthorized, "Account is disabled")
)

type AuthService struct {
	store  *repository.Store
	cfg    *config.Config
	mailer mailer.Mailer
	now    func() time.Time
}

func NewAuthService(store *repository.Store, cfg *config.Config, m mailer.Mailer) *AuthService {
	return &AuthService{store: store, cfg: cfg, mailer: m, now: time.Now}
}

// Register sends a login code to req.Email. A new email first gets a user
// row built from the profile fields; created reports whether that happened.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (bool, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return false, ErrEmailRequired
	}
	if errs := validation.Field("email", email, "email,max=255"); errs != nil {
		return false, Invalid(errs)
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	created := user == nil

	if created {
		req.Email = email
		if errs := validation.Struct(req); errs != nil {
			return false, Invalid(errs)
		}
		dob, _ := time.Parse("2006-01-02", req.DOB)
		user = &models.User{
			Email:     email,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			DOB:       &dob,
			TOB:       req.TOB,
			POB:       strings.TrimSpace(req.POB),
			Gender:    req.Gender,
			Role:      "user",
			IsActive:  true,
		}
	}

	code, err := generateOTP()
	if err != nil {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash otp: %w", err)
	}

	err = s.store.InTx(ctx, func(tx *repository.Store) error {
		if created {
			if err := tx.Users().Create(ctx, user); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrEmailTaken
				}
				return fmt.Errorf("failed to create user: %w", err)
			}
		}
		return tx.OTPs().Create(ctx, &models.OtpCode{
			Email:     email,
			CodeHash:  string(hash),
			ExpiresAt: s.now().Add(s.cfg.OTPExpiry),
		})
	})
	if err != nil {
		return false, err
	}

	if err := s.sendOTP(ctx, user, code); err != nil {
		return created, err
	}
	return created, nil
}

// VerifyOTP consumes a valid code and issues a token pair for its owner.
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	if errs := validation.Struct(req); errs != nil {
		return nil, Invalid(errs)
	}
	email := normalizeEmail(req.Email)

	codes, err := s.store.OTPs().ListValid(ctx, email, s.now())
	if err != nil {
		return nil, err
	}

	var match *models.OtpCode
	for i := range codes {
		if bcrypt.CompareHashAndPassword([]byte(codes[i].CodeHash), []byte(req.Code)) == nil {
			match = &codes[i]
			break
		}
	}
	if match == nil {
		return nil, ErrInvalidOTP
	}

	consumed, err := s.store.OTPs().MarkUsed(ctx, match.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, ErrInvalidOTP
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.generateTokenPair(ctx, user)
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	stored, err := s.store.Tokens().FindActive(ctx, hashToken(req.Refresh))
	if err != nil {
		return nil, mapNotFound(err, ErrInvalidToken)
	}

	revoked, err := s.store.Tokens().Revoke(ctx, stored.ID)
	if err != nil {
		return nil, err
	}
	if !revoked || s.now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.store.Users().Get(ctx, stored.UserID)
	if err != nil {
		return nil, mapNotFound(err, ErrInvalidToken)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.store.Tokens().RevokeByHash(ctx, hashToken(req.Refresh))
}

func (s *AuthService) sendOTP(ctx context.Context, user *models.User, code string) error {
	minutes := int(s.cfg.OTPExpiry / time.Minute)
	body := fmt.Sprintf("Hello %s,\n\nYour verification code is %s.\nIt expires in %d minutes.\n",
		user.FirstName, code, minutes)

	if err := s.mailer.Send(ctx, user.Email, "Your verification code", body); err != nil {
		slog.Error("otp mail failed", "action", "send_otp", "user_id", user.ID.String(), "error", err)
		return fmt.Errorf("failed to send otp: %w", err)
	}
	return nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Access:  accessToken,
		Refresh: refreshToken,
		User:    toUserResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"is_staff": user.IsStaff,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.store.Tokens().Create(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return rawToken, nil
}

func generateOTP() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
