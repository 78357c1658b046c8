package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vtcal/internal/auth"
	"vtcal/internal/model"
	"vtcal/internal/repository"
)

const (
	bcryptCost = 10

	// emailDomain is the institutional domain required for every account.
	emailDomain = "@vt.edu"

	// devBypassCode is the fixed escape code accepted for any account when
	// the dev bypass flag is on. It must never be accepted in production.
	devBypassCode = "000000"

	sessionLifetime = 30 * 24 * time.Hour
)

// Sentinel errors double as the client-facing messages, so their wording is
// part of the API contract. Register and Login report the same domain check
// with different messages.
var (
	ErrNotVTEmail           = errors.New("Must use a Virginia Tech email (@vt.edu)")
	ErrInvalidVTEmail       = errors.New("Invalid VT email address")
	ErrEmailExists          = errors.New("Email already exists")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrInvalidSession       = errors.New("Invalid session")
	ErrTwoFactorNotEnabled  = errors.New("2FA not enabled for this account")
	ErrInvalidTwoFactorCode = errors.New("Invalid 2FA code")
	ErrUserNotFound         = errors.New("User not found")
)

// LoginResult is the outcome of a credential or second-factor check.
type LoginResult struct {
	UserID            uint
	Email             string
	RequiresTwoFactor bool
	// SessionToken is empty while the second factor is pending.
	SessionToken string
}

// TwoFactorSetup carries the freshly minted shared secret back to the client.
type TwoFactorSetup struct {
	Secret     string
	OTPAuthURL string
}

// AuthService handles registration, login and second-factor verification.
type AuthService interface {
	Register(ctx context.Context, email, password, canvasUserID string) (*model.User, error)
	Login(ctx context.Context, email, password, ip string) (*LoginResult, error)
	VerifyTwoFactor(ctx context.Context, userID uint, code, ip string) (*LoginResult, error)
	SetupTwoFactor(ctx context.Context, userID uint) (*TwoFactorSetup, error)
	TwoFactorQR(ctx context.Context, userID uint) (string, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	// devBypass accepts devBypassCode as a valid second factor.
	devBypass bool
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, devBypass bool) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		devBypass:   devBypass,
	}
}

// Register creates a new account with a hashed password. The domain check
// runs before any password work.
func (s *authService) Register(ctx context.Context, email, password, canvasUserID string) (*model.User, error) {
	if !strings.HasSuffix(email, emailDomain) {
		return nil, ErrNotVTEmail
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		VTEmail:      email,
		CanvasUserID: canvasUserID,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user. When the second factor is enabled it returns a
// pending result without minting a token.
func (s *authService) Login(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	if !strings.HasSuffix(email, emailDomain) {
		return nil, ErrInvalidVTEmail
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		return &LoginResult{
			UserID:            user.ID,
			Email:             user.VTEmail,
			RequiresTwoFactor: true,
		}, nil
	}

	return s.mintSession(ctx, user, ip)
}

// VerifyTwoFactor checks a one-time code and mints a session on success.
func (s *authService) VerifyTwoFactor(ctx context.Context, userID uint, code, ip string) (*LoginResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if !user.TwoFactorEnabled {
		return nil, ErrTwoFactorNotEnabled
	}

	expected := auth.CodeNow(user.TwoFactorSecret)
	if code != expected {
		if !(s.devBypass && code == devBypassCode) {
			return nil, ErrInvalidTwoFactorCode
		}
		log.Warn("second factor accepted via dev bypass code", "user_id", userID)
	}

	return s.mintSession(ctx, user, ip)
}

// SetupTwoFactor mints a shared secret and enables the second factor.
func (s *authService) SetupTwoFactor(ctx context.Context, userID uint) (*TwoFactorSetup, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidSession
	}

	secret := auth.NewTwoFactorSecret()
	if err := s.userRepo.EnableTwoFactor(ctx, user.ID, secret); err != nil {
		return nil, fmt.Errorf("enable two factor: %w", err)
	}
	return &TwoFactorSetup{
		Secret:     secret,
		OTPAuthURL: auth.OTPAuthURL(user.VTEmail, secret),
	}, nil
}

// TwoFactorQR renders the provisioning URL as a PNG data URL.
func (s *authService) TwoFactorQR(ctx context.Context, userID uint) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrInvalidSession
	}
	if !user.TwoFactorEnabled || user.TwoFactorSecret == "" {
		return "", ErrTwoFactorNotEnabled
	}

	png, err := qrcode.Encode(auth.OTPAuthURL(user.VTEmail, user.TwoFactorSecret), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GetUser returns a user's profile.
func (s *authService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// mintSession issues a fresh opaque token, persists it on the user row and
// records the login for auditing.
func (s *authService) mintSession(ctx context.Context, user *model.User, ip string) (*LoginResult, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("mint session token: %w", err)
	}
	if err := s.userRepo.UpdateSessionToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}

	expires := time.Now().Add(sessionLifetime)
	if err := s.sessionRepo.Create(ctx, &model.LoginSession{
		UserID:       user.ID,
		SessionToken: token,
		IPAddress:    ip,
		ExpiresAt:    &expires,
	}); err != nil {
		// audit trail only; never fail a login over it
		log.Warn("record login session", "user_id", user.ID, "err", err)
	}

	return &LoginResult{
		UserID:       user.ID,
		Email:        user.VTEmail,
		SessionToken: token,
	}, nil
}
