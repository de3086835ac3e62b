package service

import (
	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/rbac"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

type ProjectService interface {
	List(actor *model.User) ([]*model.Project, error)
	GetByID(actor *model.User, id string) (*model.Project, error)
	Create(actor *model.User, req *dto.CreateProjectRequest) (*model.Project, error)
	Update(actor *model.User, id string, req *dto.UpdateProjectRequest) (*model.Project, error)
	Delete(actor *model.User, id string) error
	AddMember(actor *model.User, projectID, userID string) error
	RemoveMember(actor *model.User, projectID, userID string) error
}

type projectService struct {
	repo     repository.ProjectRepository
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

func NewProjectService(repo repository.ProjectRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository) ProjectService {
	return &projectService{
		repo:     repo,
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// List 按角色范围: ORG_ADMIN→本组织, TEAM_LEAD→本团队, USER→自己创建或参与的
func (s *projectService) List(actor *model.User) ([]*model.Project, error) {
	var scope repository.ProjectScope
	switch actor.Role {
	case constants.RoleOrgAdmin:
		scope.OrganizationID = actor.OrganizationID
	case constants.RoleTeamLead:
		scope.TeamID = actor.TeamID
	case constants.RoleUser:
		scope.UserID = &actor.ID
	}
	return s.repo.List(scope)
}

func (s *projectService) GetByID(actor *model.User, id string) (*model.Project, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == constants.RoleOrgAdmin && !sameScope(actor.OrganizationID, project.OrganizationID) {
		return nil, pkgErrors.ErrForbidden
	}
	return project, nil
}

// Create 组织归属从团队推导; 创建者自动成为项目成员
func (s *projectService) Create(actor *model.User, req *dto.CreateProjectRequest) (*model.Project, error) {
	var orgID *string
	if req.TeamID != nil {
		team, err := s.teamRepo.FindByID(*req.TeamID)
		if err != nil {
			return nil, err
		}
		orgID = team.OrganizationID
	}
	if actor.Role == constants.RoleOrgAdmin {
		orgID = actor.OrganizationID
	}

	project := &model.Project{
		Name:           req.Name,
		Description:    req.Description,
		CreatedBy:      actor.ID,
		TeamID:         req.TeamID,
		OrganizationID: orgID,
		IsActive:       true,
	}
	if err := s.repo.Create(project); err != nil {
		return nil, err
	}

	if err := s.repo.AddMember(&model.ProjectMember{ProjectID: project.ID, UserID: actor.ID}); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(actor *model.User, id string, req *dto.UpdateProjectRequest) (*model.Project, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case constants.RoleOrgAdmin:
		if !sameScope(actor.OrganizationID, project.OrganizationID) {
			return nil, pkgErrors.ErrForbidden
		}
	case constants.RoleTeamLead:
		if !sameScope(actor.TeamID, project.TeamID) {
			return nil, pkgErrors.ErrForbidden
		}
	case constants.RoleUser:
		if project.CreatedBy != actor.ID {
			return nil, pkgErrors.ErrForbidden
		}
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.TeamID != nil {
		team, err := s.teamRepo.FindByID(*req.TeamID)
		if err != nil {
			return nil, err
		}
		project.TeamID = req.TeamID
		// ORG_ADMIN不能借改团队把项目挪出本组织
		if actor.Role != constants.RoleOrgAdmin {
			project.OrganizationID = team.OrganizationID
		}
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete 仅管理员层级或创建者可删除, ORG_ADMIN限本组织
func (s *projectService) Delete(actor *model.User, id string) error {
	project, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if !rbac.IsAdminTier(actor.Role) && project.CreatedBy != actor.ID {
		return pkgErrors.ErrForbidden
	}
	if actor.Role == constants.RoleOrgAdmin && !sameScope(actor.OrganizationID, project.OrganizationID) {
		return pkgErrors.ErrForbidden
	}
	return s.repo.Delete(id)
}

func (s *projectService) AddMember(actor *model.User, projectID, userID string) error {
	project, err := s.repo.FindByID(projectID)
	if err != nil {
		return err
	}
	if !rbac.IsAdminTier(actor.Role) && project.CreatedBy != actor.ID {
		return pkgErrors.ErrForbidden
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return err
	}
	if existing, _ := s.repo.FindMember(projectID, userID); existing != nil {
		return pkgErrors.New(pkgErrors.CodeConflict, "用户已是项目成员")
	}
	return s.repo.AddMember(&model.ProjectMember{ProjectID: projectID, UserID: userID})
}

func (s *projectService) RemoveMember(actor *model.User, projectID, userID string) error {
	project, err := s.repo.FindByID(projectID)
	if err != nil {
		return err
	}
	if !rbac.IsAdminTier(actor.Role) && project.CreatedBy != actor.ID {
		return pkgErrors.ErrForbidden
	}
	return s.repo.RemoveMember(projectID, userID)
}
