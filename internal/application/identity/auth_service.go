package identity

import (
	"context"
	"errors"

	"github.com/towntreasure/backend/internal/domain/identity"
	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles sign-in and account operations. Authentication is
// deliberately a mock: any non-empty credentials sign in, creating the
// account on first use. Passwords are hashed at rest but never checked.
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
		logger:   logger.Named("auth"),
	}
}

// Login signs the user in, creating the account if it does not exist
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		user, err = s.createAccount(ctx, req.Email, "", req.Password)
		if err != nil {
			return nil, err
		}
	}

	return s.issueToken(user)
}

// Register creates an account explicitly and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := s.createAccount(ctx, req.Email, req.DisplayName, req.Password)
	if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Profile returns the account for the given user id
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// SwitchRole toggles the account between buyer and seller and returns a
// fresh token carrying the new role
func (s *AuthService) SwitchRole(ctx context.Context, userID uuid.UUID) (*AuthResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.SwitchRole()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("role switched",
		zap.String("user_id", userID.String()),
		zap.String("role", string(user.Role)),
	)

	return s.issueToken(user)
}

func (s *AuthService) createAccount(ctx context.Context, email, displayName, password string) (*identity.User, error) {
	user, err := identity.NewUser(email, displayName, password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return user, nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:        ToUserResponse(user),
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
	}, nil
}
