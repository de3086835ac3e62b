package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type OrganizationRepository interface {
	Create(org *model.Organization) error
	FindByID(id string) (*model.Organization, error)
	FindByName(name string) (*model.Organization, error)
	ListAll() ([]*model.Organization, error)
	Update(org *model.Organization) error
	Delete(id string) error
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *model.Organization) error {
	if err := r.db.Create(org).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "组织名称已存在")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建组织失败", err)
	}
	return nil
}

func (r *organizationRepository) FindByID(id string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.First(&org, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "组织不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询组织失败", err)
	}
	return &org, nil
}

func (r *organizationRepository) FindByName(name string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.First(&org, "name = ?", name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询组织失败", err)
	}
	return &org, nil
}

func (r *organizationRepository) ListAll() ([]*model.Organization, error) {
	var orgs []*model.Organization
	err := r.db.Order("name ASC").Find(&orgs).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询组织列表失败", err)
	}
	return orgs, nil
}

func (r *organizationRepository) Update(org *model.Organization) error {
	if err := r.db.Save(org).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "组织名称已存在")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新组织失败", err)
	}
	return nil
}

func (r *organizationRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Organization{}, "id = ?", id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除组织失败", err)
	}
	return nil
}
