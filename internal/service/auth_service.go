package service

import (
	"time"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/config"
	"ticketdesk/internal/pkg/crypto"
	"ticketdesk/internal/pkg/jwt"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(refreshToken string) (*dto.RefreshTokenResponse, error)
	Logout(refreshToken string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// Register 开放注册, 新用户固定为USER角色, 归属由管理员后续分配
func (s *authService) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "邮箱已被注册")
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     constants.RoleUser,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, pkgErrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, pkgErrors.ErrUserDisabled
	}
	if !crypto.CheckPassword(req.Password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	tokenUser := toTokenUser(user)
	accessToken, err := jwt.GenerateAccessToken(tokenUser)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成访问令牌失败", err)
	}
	refreshToken, err := jwt.GenerateRefreshToken(tokenUser)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成刷新令牌失败", err)
	}

	cfg := config.GlobalConfig.Auth.JWT

	// 刷新令牌落库, 登出或过期时删除
	record := &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(time.Duration(cfg.RefreshTokenExpire) * time.Second),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    cfg.AccessTokenExpire,
		User:         toUserResponse(user),
	}, nil
}

func (s *authService) Refresh(refreshToken string) (*dto.RefreshTokenResponse, error) {
	claims, err := jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != constants.JWTTypeRefresh {
		return nil, pkgErrors.ErrInvalidToken
	}

	// 服务端必须存有该令牌
	record, err := s.tokenRepo.FindByToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if record.ExpiresAt.Before(time.Now()) {
		// 过期即删
		_ = s.tokenRepo.DeleteByToken(refreshToken)
		return nil, pkgErrors.ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(record.UserID)
	if err != nil {
		return nil, pkgErrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, pkgErrors.ErrUserDisabled
	}

	accessToken, err := jwt.GenerateAccessToken(toTokenUser(user))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成访问令牌失败", err)
	}

	return &dto.RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   config.GlobalConfig.Auth.JWT.AccessTokenExpire,
	}, nil
}

func (s *authService) Logout(refreshToken string) error {
	return s.tokenRepo.DeleteByToken(refreshToken)
}

func toTokenUser(user *model.User) *jwt.TokenUser {
	tokenUser := &jwt.TokenUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.OrganizationID != nil {
		tokenUser.OrganizationID = *user.OrganizationID
	}
	if user.TeamID != nil {
		tokenUser.TeamID = *user.TeamID
	}
	return tokenUser
}
