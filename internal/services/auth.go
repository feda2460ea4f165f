package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dispatch-dashboard/internal/dto"
	"dispatch-dashboard/internal/repositories"
	apperrors "dispatch-dashboard/pkg/errors"
	"dispatch-dashboard/pkg/service"
	"dispatch-dashboard/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, sessionID string) error
}

type AuthService struct {
	staffRepo   repositories.StaffRepositoryInterface
	sessionRepo repositories.SessionRepositoryInterface
	jwtService  service.JWTService
	logger      *zap.Logger
}

func NewAuthService(
	staffRepo repositories.StaffRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		staffRepo:   staffRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login checks the credentials against the CRM staff table and opens a fresh
// dashboard session. Wrong email and wrong password are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	staff, err := s.staffRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		s.logger.Warn("login: staff lookup failed", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(staff.PasswordHash, payload.Password); err != nil {
		s.logger.Warn("login: password mismatch", zap.Uint64("staffID", staff.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(staff.ID, sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("staff logged in", zap.Uint64("staffID", staff.ID), zap.String("sessionID", sessionID))

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
		FullName:     staff.FullName,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair, keeping the same
// dashboard session alive.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	staff, err := s.staffRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(staff.ID, claims.SessionID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    claims.SessionID,
		FullName:     staff.FullName,
	}, nil
}

// Logout drops the session snapshot; the tokens simply age out.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}
