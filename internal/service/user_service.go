package service

import (
	"time"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/crypto"
	"ticketdesk/internal/pkg/rbac"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

type UserService interface {
	List(actor *model.User, query *dto.ListUsersQuery) ([]*dto.UserResponse, int64, error)
	GetByID(actor *model.User, id string) (*dto.UserResponse, error)
	Create(actor *model.User, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(actor *model.User, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(actor *model.User, id string) error
	ResetPassword(actor *model.User, id string, req *dto.ResetPasswordRequest) error
}

type userService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	teamRepo repository.TeamRepository
}

func NewUserService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, teamRepo repository.TeamRepository) UserService {
	return &userService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		teamRepo: teamRepo,
	}
}

// List 按角色范围过滤: ORG_ADMIN只见本组织, TEAM_LEAD只见本团队
func (s *userService) List(actor *model.User, query *dto.ListUsersQuery) ([]*dto.UserResponse, int64, error) {
	var orgID, teamID *string
	switch actor.Role {
	case constants.RoleOrgAdmin:
		orgID = actor.OrganizationID
	case constants.RoleTeamLead:
		teamID = actor.TeamID
	}

	users, total, err := s.userRepo.List(query, orgID, teamID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, total, nil
}

func (s *userService) GetByID(actor *model.User, id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !inActorScope(actor, user) {
		return nil, pkgErrors.ErrForbidden
	}
	return toUserResponse(user), nil
}

func (s *userService) Create(actor *model.User, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !rbac.CanCreateRole(actor.Role, req.Role) {
		return nil, pkgErrors.New(pkgErrors.CodeForbidden, "无权创建该角色的用户")
	}

	// 按actor角色钉死归属范围
	switch actor.Role {
	case constants.RoleOrgAdmin:
		req.OrganizationID = actor.OrganizationID
	case constants.RoleTeamLead:
		req.OrganizationID = actor.OrganizationID
		req.TeamID = actor.TeamID
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "邮箱已被使用")
	}

	if req.OrganizationID != nil && actor.Role == constants.RoleSuperAdmin {
		if _, err := s.orgRepo.FindByID(*req.OrganizationID); err != nil {
			return nil, err
		}
	}
	if req.TeamID != nil {
		if _, err := s.teamRepo.FindByID(*req.TeamID); err != nil {
			return nil, err
		}
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       hash,
		Role:           req.Role,
		OrganizationID: req.OrganizationID,
		TeamID:         req.TeamID,
		IsActive:       true,
		Phone:          req.Phone,
		Designation:    req.Designation,
		Department:     req.Department,
		Bio:            req.Bio,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Update(actor *model.User, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !inActorScope(actor, user) {
		return nil, pkgErrors.ErrForbidden
	}

	if req.Role != nil && *req.Role != user.Role {
		if !rbac.CanCreateRole(actor.Role, *req.Role) {
			return nil, pkgErrors.New(pkgErrors.CodeForbidden, "无权指派该角色")
		}
		user.Role = *req.Role
	}

	if req.Email != nil && *req.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(*req.Email); existing != nil {
			return nil, pkgErrors.New(pkgErrors.CodeConflict, "邮箱已被使用")
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
		}
		user.Password = hash
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.OrganizationID != nil {
		user.OrganizationID = req.OrganizationID
	}
	if req.TeamID != nil {
		if _, err := s.teamRepo.FindByID(*req.TeamID); err != nil {
			return nil, err
		}
		user.TeamID = req.TeamID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Designation != nil {
		user.Designation = req.Designation
	}
	if req.Department != nil {
		user.Department = req.Department
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	// ORG_ADMIN不能把用户挪出自己的组织
	if actor.Role == constants.RoleOrgAdmin {
		user.OrganizationID = actor.OrganizationID
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete 仅SUPER_ADMIN和ORG_ADMIN可删除, 后者限本组织
func (s *userService) Delete(actor *model.User, id string) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !rbac.IsAdminTier(actor.Role) {
		return pkgErrors.ErrForbidden
	}
	if actor.Role == constants.RoleOrgAdmin && !sameScope(actor.OrganizationID, user.OrganizationID) {
		return pkgErrors.ErrForbidden
	}
	return s.userRepo.Delete(id)
}

func (s *userService) ResetPassword(actor *model.User, id string, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !rbac.CanResetPassword(toSubject(actor), toSubject(user)) {
		return pkgErrors.New(pkgErrors.CodeForbidden, "无权重置该用户的密码")
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}
	return s.userRepo.UpdatePassword(id, hash)
}

// inActorScope 读写单个用户时的范围判定
func inActorScope(actor, target *model.User) bool {
	switch actor.Role {
	case constants.RoleOrgAdmin:
		return sameScope(actor.OrganizationID, target.OrganizationID)
	case constants.RoleTeamLead:
		return sameScope(actor.TeamID, target.TeamID)
	}
	return true
}

func sameScope(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func toSubject(user *model.User) rbac.Subject {
	subject := rbac.Subject{Role: user.Role}
	if user.OrganizationID != nil {
		subject.OrganizationID = *user.OrganizationID
	}
	if user.TeamID != nil {
		subject.TeamID = *user.TeamID
	}
	return subject
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		TeamID:         user.TeamID,
		IsActive:       user.IsActive,
		Phone:          user.Phone,
		Designation:    user.Designation,
		Department:     user.Department,
		Bio:            user.Bio,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      user.UpdatedAt.Format(time.RFC3339),
	}
}
