package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"birthdayreminder/internal/apperr"
	"birthdayreminder/internal/domain/contract"
	"birthdayreminder/internal/domain/entity"
)

type authService struct {
	dm       contract.DataManager
	category *categoryService
	log      zerolog.Logger
	cfg      AuthConfig
}

func newAuth(dm contract.DataManager, category *categoryService, logger zerolog.Logger, cfg AuthConfig) *authService {
	return &authService{
		dm:       dm,
		category: category,
		log:      logger.With().Str("component", "auth").Logger(),
		cfg:      cfg,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Register creates a user together with default notification settings and
// default categories, then issues a token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	exists, err := s.dm.User().ExistsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		if err := dm.User().Create(user); err != nil {
			return err
		}
		if err := dm.Settings().Create(defaultSettings(user.ID)); err != nil {
			return err
		}
		return s.category.CreateDefaults(dm, user.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return s.issueToken(user)
}

// Login verifies credentials and issues a token.
func (s *authService) Login(email, password string) (*AuthResult, error) {
	user, err := s.dm.User().GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return s.issueToken(user)
}

// ParseToken validates a token and returns the user id it was issued for.
func (s *authService) ParseToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.JWTSecret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token claims: %w", apperr.ErrUnauthorized)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", apperr.ErrUnauthorized)
	}

	return userID, nil
}

func (s *authService) issueToken(user *entity.User) (*AuthResult, error) {
	expiresAt := time.Now().Add(s.cfg.TokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
