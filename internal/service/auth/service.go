package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/ports"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	accountCacheTTL = time.Minute
)

// Service implements ports.AuthService for consumer and operator
// accounts. Both roles share the same credential check; authorization
// beyond existence is out of scope.
type Service struct {
	accountRepo ports.AccountRepository
	cache       ports.Cache
	jwtSecret   []byte
	log         *zap.Logger
}

// NewService creates a new auth service
func NewService(accountRepo ports.AccountRepository, cache ports.Cache, jwtSecret string, log *zap.Logger) ports.AuthService {
	return &Service{
		accountRepo: accountRepo,
		cache:       cache,
		jwtSecret:   []byte(jwtSecret),
		log:         log,
	}
}

// Login verifies credentials and returns an access and a refresh token.
func (s *Service) Login(ctx context.Context, email, password string) (string, string, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", errors.New("invalid credentials")
	}
	if account == nil {
		return "", "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", "", errors.New("invalid credentials")
	}

	return s.generateTokens(account)
}

// Register stores a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, account *domain.Account) error {
	if account.Email == "" {
		return domain.NewValidation("email", "is required")
	}
	if account.Password == "" {
		return domain.NewValidation("password", "is required")
	}

	existing, err := s.accountRepo.FindByEmail(ctx, account.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.NewValidation("email", "already registered")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.Password = string(hashedPwd)

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.Role == "" {
		account.Role = domain.AccountRoleConsumer
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return err
	}

	s.log.Info("Account registered",
		zap.String("account_id", account.ID),
		zap.String("role", string(account.Role)),
	)
	return nil
}

// RefreshToken validates a refresh token and issues a new access token.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	if kind, _ := claims["type"].(string); kind != "refresh" {
		return "", errors.New("not a refresh token")
	}

	accountID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid account id in token")
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil || account == nil {
		return "", errors.New("account not found")
	}

	return s.generateAccessToken(account)
}

// ValidateToken parses an access token and resolves its account, serving
// repeated lookups from the cache.
func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*domain.Account, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	accountID, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid sub")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, "account:"+accountID); err == nil && cached != "" {
			var account domain.Account
			if err := json.Unmarshal([]byte(cached), &account); err == nil {
				return &account, nil
			}
		}
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("account not found")
	}

	if s.cache != nil {
		if data, err := json.Marshal(account); err == nil {
			s.cache.Set(ctx, "account:"+accountID, string(data), accountCacheTTL)
		}
	}

	return account, nil
}

func (s *Service) generateTokens(account *domain.Account) (string, string, error) {
	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  account.ID,
		"exp":  time.Now().Add(refreshTokenTTL).Unix(),
		"type": "refresh",
	})
	refreshTokenStr, err := refreshToken.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshTokenStr, nil
}

func (s *Service) generateAccessToken(account *domain.Account) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  account.ID,
		"role": account.Role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
		"type": "access",
	})
	return token.SignedString(s.jwtSecret)
}
