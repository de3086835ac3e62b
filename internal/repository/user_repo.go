package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	List(query *dto.ListUsersQuery, orgID, teamID *string) ([]*model.User, int64, error)
	Update(user *model.User) error
	UpdatePassword(id, passwordHash string) error
	Delete(id string) error
	CountActiveByTeamID(teamID string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "邮箱已被使用")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建用户失败", err)
	}
	return nil
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrUserNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询用户失败", err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrUserNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询用户失败", err)
	}
	return &user, nil
}

// List 用户列表, orgID/teamID为角色范围过滤(由服务层按actor角色传入)
func (r *userRepository) List(query *dto.ListUsersQuery, orgID, teamID *string) ([]*model.User, int64, error) {
	db := r.db.Model(&model.User{})

	if orgID != nil {
		db = db.Where("organization_id = ?", *orgID)
	}
	if teamID != nil {
		db = db.Where("team_id = ?", *teamID)
	}
	if query.Role != "" {
		db = db.Where("role = ?", query.Role)
	}
	if query.TeamID != "" {
		db = db.Where("team_id = ?", query.TeamID)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "统计用户失败", err)
	}

	var users []*model.User
	err := db.Order("created_at DESC").
		Limit(query.GetLimit()).Offset(query.GetOffset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询用户列表失败", err)
	}
	return users, total, nil
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "邮箱已被使用")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新用户失败", err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	err := r.db.Model(&model.User{}).Where("id = ?", id).
		Update("password", passwordHash).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新密码失败", err)
	}
	return nil
}

func (r *userRepository) Delete(id string) error {
	if err := r.db.Delete(&model.User{}, "id = ?", id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除用户失败", err)
	}
	return nil
}

// CountActiveByTeamID 统计团队内启用状态的用户数, 用于删除团队前的引用检查
func (r *userRepository) CountActiveByTeamID(teamID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("team_id = ? AND is_active = ?", teamID, true).
		Count(&count).Error
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "统计团队用户失败", err)
	}
	return count, nil
}
