package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type TeamRepository interface {
	Create(team *model.Team) error
	FindByID(id string) (*model.Team, error)
	FindByNameInOrg(orgID *string, name string) (*model.Team, error)
	ListAll() ([]*model.Team, error)
	ListByOrganizationID(orgID string) ([]*model.Team, error)
	Update(team *model.Team) error
	Delete(id string) error
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(team *model.Team) error {
	if err := r.db.Create(team).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "团队名称在组织内已存在")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建团队失败", err)
	}
	return nil
}

func (r *teamRepository) FindByID(id string) (*model.Team, error) {
	var team model.Team
	err := r.db.First(&team, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "团队不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询团队失败", err)
	}
	return &team, nil
}

// FindByNameInOrg 组织内按名称查找团队, orgID为nil时匹配无组织归属的团队
func (r *teamRepository) FindByNameInOrg(orgID *string, name string) (*model.Team, error) {
	var team model.Team
	db := r.db.Where("name = ?", name)
	if orgID != nil {
		db = db.Where("organization_id = ?", *orgID)
	} else {
		db = db.Where("organization_id IS NULL")
	}
	err := db.First(&team).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询团队失败", err)
	}
	return &team, nil
}

func (r *teamRepository) ListAll() ([]*model.Team, error) {
	var teams []*model.Team
	err := r.db.Order("name ASC").Find(&teams).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询团队列表失败", err)
	}
	return teams, nil
}

func (r *teamRepository) ListByOrganizationID(orgID string) ([]*model.Team, error) {
	var teams []*model.Team
	err := r.db.Where("organization_id = ?", orgID).Order("name ASC").Find(&teams).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询团队列表失败", err)
	}
	return teams, nil
}

func (r *teamRepository) Update(team *model.Team) error {
	if err := r.db.Save(team).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "团队名称在组织内已存在")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新团队失败", err)
	}
	return nil
}

func (r *teamRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Team{}, "id = ?", id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除团队失败", err)
	}
	return nil
}
