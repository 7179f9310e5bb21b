package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-demo/studyhub/internal/model"
	"github.com/go-demo/studyhub/internal/pkg/cache"
	apperrors "github.com/go-demo/studyhub/internal/pkg/errors"
	"github.com/go-demo/studyhub/internal/pkg/utils"
	"github.com/go-demo/studyhub/internal/repository"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	cache      *cache.Cache
	refreshTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	jwtManager *utils.JWTManager,
	c *cache.Cache,
	refreshTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cache:      c,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult bundles the user with a fresh token pair
type AuthResult struct {
	User      *model.User
	TokenPair *utils.TokenPair
}

// Register registers a new user. Usernames are lowercased before
// storage so logins are case-insensitive.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	input.Username = strings.ToLower(input.Username)

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	if exists {
		return nil, apperrors.ErrUsernameExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	if exists {
		return nil, apperrors.ErrEmailExists
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// LoginInput represents login input
type LoginInput struct {
	Username string
	Password string
}

// Login authenticates a user. A wrong username and a wrong password
// produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(input.Username))
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, apperrors.ErrInvalidPassword
		}
		s.logger.Error("Failed to get user", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidPassword
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		if err == utils.ErrExpiredToken {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if s.cache != nil {
		revoked, err := s.cache.Exists(ctx, fmt.Sprintf(cache.KeyRevokedRefresh, claims.ID))
		if err != nil {
			s.logger.Warn("Failed to check revoked token", zap.Error(err))
		} else if revoked {
			return nil, apperrors.ErrInvalidToken
		}
	}

	// Make sure the user still exists
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, apperrors.ErrInvalidToken
		}
		s.logger.Error("Failed to get user", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	return tokenPair, nil
}

// Logout revokes a refresh token by blocklisting its ID until it would
// have expired anyway
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		// An invalid token needs no revocation
		return nil
	}

	if s.cache != nil {
		key := fmt.Sprintf(cache.KeyRevokedRefresh, claims.ID)
		if err := s.cache.Set(ctx, key, "1", s.refreshTTL); err != nil {
			s.logger.Warn("Failed to revoke refresh token", zap.Error(err))
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))

	return nil
}

// GetMe retrieves the current user
func (s *AuthService) GetMe(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		s.logger.Error("Failed to get user", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	return user, nil
}
