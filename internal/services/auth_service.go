package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"inventory_catalog_backend/pkg/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// The catalog is operated by a single admin account configured from the
// environment; there is no user table.
const adminUserID int64 = 1
const adminRole = "Admin"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

// AuthService issues and refreshes JWT tokens for the admin operator.
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	Refresh(req RefreshTokenRequest) (*AuthResponse, error)
}

type authService struct {
	adminUsername     string
	adminPasswordHash string
}

func NewAuthService(adminUsername, adminPasswordHash string) AuthService {
	return &authService{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
	}
}

func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	if req.Username != s.adminUsername {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(adminUserID, s.adminUsername, adminRole)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(adminUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     s.adminUsername,
		Role:         adminRole,
	}, nil
}

func (s *authService) Refresh(req RefreshTokenRequest) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(req.RefreshToken)
	if err != nil || claims.UserID != adminUserID {
		return nil, ErrInvalidToken
	}

	accessToken, err := utils.GenerateAccessToken(adminUserID, s.adminUsername, adminRole)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
		Username:     s.adminUsername,
		Role:         adminRole,
	}, nil
}
