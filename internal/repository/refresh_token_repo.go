package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type RefreshTokenRepository interface {
	Create(token *model.RefreshToken) error
	FindByToken(token string) (*model.RefreshToken, error)
	DeleteByToken(token string) error
	DeleteByUserID(userID string) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(token *model.RefreshToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "保存刷新令牌失败", err)
	}
	return nil
}

func (r *refreshTokenRepository) FindByToken(token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	err := r.db.First(&rt, "token = ?", token).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrInvalidToken
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询刷新令牌失败", err)
	}
	return &rt, nil
}

func (r *refreshTokenRepository) DeleteByToken(token string) error {
	if err := r.db.Delete(&model.RefreshToken{}, "token = ?", token).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除刷新令牌失败", err)
	}
	return nil
}

func (r *refreshTokenRepository) DeleteByUserID(userID string) error {
	if err := r.db.Delete(&model.RefreshToken{}, "user_id = ?", userID).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除刷新令牌失败", err)
	}
	return nil
}
