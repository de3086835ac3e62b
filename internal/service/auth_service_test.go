package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/crypto"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), repository.NewRefreshTokenRepository(db))

	user, err := svc.Register(&dto.RegisterRequest{
		Name:     "新用户",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	// 重复邮箱
	_, err = svc.Register(&dto.RegisterRequest{
		Name:     "重复",
		Email:    "new@example.com",
		Password: "secret123",
	})
	assertErrCode(t, err, pkgErrors.CodeConflict)

	result, err := svc.Login(&dto.LoginRequest{Email: "new@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, 3600, result.ExpiresIn)
	require.NotNil(t, result.User)
	assert.Equal(t, "new@example.com", result.User.Email)

	// 刷新令牌已落库
	var count int64
	require.NoError(t, db.Model(&model.RefreshToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin_Failures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), repository.NewRefreshTokenRepository(db))

	hash, err := crypto.HashPassword("correct")
	require.NoError(t, err)
	user := &model.User{
		Name:     "张三",
		Email:    "zhang@example.com",
		Password: hash,
		Role:     constants.RoleUser,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "correct"})
	assertErrCode(t, err, pkgErrors.CodeUnauthorized)

	_, err = svc.Login(&dto.LoginRequest{Email: "zhang@example.com", Password: "wrong"})
	assertErrCode(t, err, pkgErrors.CodeUnauthorized)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	_, err = svc.Login(&dto.LoginRequest{Email: "zhang@example.com", Password: "correct"})
	assertErrCode(t, err, pkgErrors.CodeForbidden)
}

func TestRefreshToken_Flow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), repository.NewRefreshTokenRepository(db))

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "李四", Email: "li@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	login, err := svc.Login(&dto.LoginRequest{Email: "li@example.com", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// 访问令牌不能当刷新令牌用
	_, err = svc.Refresh(login.AccessToken)
	assertErrCode(t, err, pkgErrors.CodeUnauthorized)

	// 服务端记录过期则删除并拒绝
	require.NoError(t, db.Model(&model.RefreshToken{}).
		Where("token = ?", login.RefreshToken).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)
	_, err = svc.Refresh(login.RefreshToken)
	assertErrCode(t, err, pkgErrors.CodeUnauthorized)

	var count int64
	require.NoError(t, db.Model(&model.RefreshToken{}).
		Where("token = ?", login.RefreshToken).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogout_DeletesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), repository.NewRefreshTokenRepository(db))

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "王五", Email: "wang@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	login, err := svc.Login(&dto.LoginRequest{Email: "wang@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(login.RefreshToken))

	_, err = svc.Refresh(login.RefreshToken)
	assertErrCode(t, err, pkgErrors.CodeUnauthorized)
}
