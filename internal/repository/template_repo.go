package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type TemplateRepository interface {
	Create(template *model.Template) error
	FindByID(id string) (*model.Template, error)
	// ListVisible 返回用户自己的模板加所有共享模板
	ListVisible(userID string) ([]*model.Template, error)
	Update(template *model.Template) error
	Delete(id string) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(template *model.Template) error {
	if err := r.db.Create(template).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建模板失败", err)
	}
	return nil
}

func (r *templateRepository) FindByID(id string) (*model.Template, error) {
	var template model.Template
	err := r.db.First(&template, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "模板不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询模板失败", err)
	}
	return &template, nil
}

func (r *templateRepository) ListVisible(userID string) ([]*model.Template, error) {
	var templates []*model.Template
	err := r.db.Where("created_by = ? OR is_shared = ?", userID, true).
		Order("created_at DESC").Find(&templates).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询模板列表失败", err)
	}
	return templates, nil
}

func (r *templateRepository) Update(template *model.Template) error {
	if err := r.db.Save(template).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新模板失败", err)
	}
	return nil
}

func (r *templateRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Template{}, "id = ?", id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除模板失败", err)
	}
	return nil
}
