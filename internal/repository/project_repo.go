package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

// ProjectScope 项目列表的角色范围过滤
// 三个条件互斥, 由服务层按actor角色设置其一; 全为空表示不过滤
type ProjectScope struct {
	OrganizationID *string
	TeamID         *string
	UserID         *string // 创建者或成员
}

type ProjectRepository interface {
	Create(project *model.Project) error
	FindByID(id string) (*model.Project, error)
	List(scope ProjectScope) ([]*model.Project, error)
	Update(project *model.Project) error
	Delete(id string) error

	AddMember(member *model.ProjectMember) error
	RemoveMember(projectID, userID string) error
	FindMember(projectID, userID string) (*model.ProjectMember, error)
	ListMemberIDs(projectID string) ([]string, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建项目失败", err)
	}
	return nil
}

func (r *projectRepository) FindByID(id string) (*model.Project, error) {
	var project model.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "项目不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) List(scope ProjectScope) ([]*model.Project, error) {
	db := r.db.Model(&model.Project{})

	if scope.OrganizationID != nil {
		db = db.Where("organization_id = ?", *scope.OrganizationID)
	}
	if scope.TeamID != nil {
		db = db.Where("team_id = ?", *scope.TeamID)
	}
	if scope.UserID != nil {
		db = db.Where("created_by = ? OR id IN (?)", *scope.UserID,
			r.db.Model(&model.ProjectMember{}).Select("project_id").Where("user_id = ?", *scope.UserID))
	}

	var projects []*model.Project
	err := db.Order("created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(project *model.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新项目失败", err)
	}
	return nil
}

func (r *projectRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Project{}, "id = ?", id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除项目失败", err)
	}
	return nil
}

func (r *projectRepository) AddMember(member *model.ProjectMember) error {
	if err := r.db.Create(member).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "用户已是项目成员")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "添加项目成员失败", err)
	}
	return nil
}

func (r *projectRepository) RemoveMember(projectID, userID string) error {
	result := r.db.Delete(&model.ProjectMember{}, "project_id = ? AND user_id = ?", projectID, userID)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "移除项目成员失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "用户不是项目成员")
	}
	return nil
}

func (r *projectRepository) FindMember(projectID, userID string) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.First(&member, "project_id = ? AND user_id = ?", projectID, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询项目成员失败", err)
	}
	return &member, nil
}

func (r *projectRepository) ListMemberIDs(projectID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.ProjectMember{}).
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询项目成员失败", err)
	}
	return ids, nil
}
