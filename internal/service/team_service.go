package service

import (
	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/rbac"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

type TeamService interface {
	List(actor *model.User) ([]*model.Team, error)
	GetByID(actor *model.User, id string) (*model.Team, error)
	Create(actor *model.User, req *dto.CreateTeamRequest) (*model.Team, error)
	Update(actor *model.User, id string, req *dto.UpdateTeamRequest) (*model.Team, error)
	Delete(actor *model.User, id string) error
}

type teamService struct {
	repo     repository.TeamRepository
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

func NewTeamService(repo repository.TeamRepository, orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) TeamService {
	return &teamService{
		repo:     repo,
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// List ORG_ADMIN只见本组织的团队, 其余角色可见全部
func (s *teamService) List(actor *model.User) ([]*model.Team, error) {
	if actor.Role == constants.RoleOrgAdmin {
		if actor.OrganizationID == nil {
			return []*model.Team{}, nil
		}
		return s.repo.ListByOrganizationID(*actor.OrganizationID)
	}
	return s.repo.ListAll()
}

func (s *teamService) GetByID(actor *model.User, id string) (*model.Team, error) {
	team, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == constants.RoleOrgAdmin && !sameScope(actor.OrganizationID, team.OrganizationID) {
		return nil, pkgErrors.ErrForbidden
	}
	return team, nil
}

func (s *teamService) Create(actor *model.User, req *dto.CreateTeamRequest) (*model.Team, error) {
	if !rbac.IsAdminTier(actor.Role) {
		return nil, pkgErrors.ErrForbidden
	}

	orgID := req.OrganizationID
	if actor.Role == constants.RoleOrgAdmin {
		orgID = actor.OrganizationID
	} else if orgID != nil {
		if _, err := s.orgRepo.FindByID(*orgID); err != nil {
			return nil, err
		}
	}

	if existing, _ := s.repo.FindByNameInOrg(orgID, req.Name); existing != nil {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "团队名称在组织内已存在")
	}

	team := &model.Team{
		Name:           req.Name,
		OrganizationID: orgID,
		Description:    req.Description,
		IsActive:       true,
	}
	if err := s.repo.Create(team); err != nil {
		return nil, err
	}
	return team, nil
}

// Update ORG_ADMIN限本组织, 且不能把团队挪到别的组织
func (s *teamService) Update(actor *model.User, id string, req *dto.UpdateTeamRequest) (*model.Team, error) {
	if !rbac.IsAdminTier(actor.Role) {
		return nil, pkgErrors.ErrForbidden
	}
	team, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == constants.RoleOrgAdmin && !sameScope(actor.OrganizationID, team.OrganizationID) {
		return nil, pkgErrors.ErrForbidden
	}

	if req.Name != nil && *req.Name != team.Name {
		if existing, _ := s.repo.FindByNameInOrg(team.OrganizationID, *req.Name); existing != nil {
			return nil, pkgErrors.New(pkgErrors.CodeConflict, "团队名称在组织内已存在")
		}
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = req.Description
	}
	if req.IsActive != nil {
		team.IsActive = *req.IsActive
	}

	if err := s.repo.Update(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) Delete(actor *model.User, id string) error {
	if !rbac.IsAdminTier(actor.Role) {
		return pkgErrors.ErrForbidden
	}
	team, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if actor.Role == constants.RoleOrgAdmin && !sameScope(actor.OrganizationID, team.OrganizationID) {
		return pkgErrors.ErrForbidden
	}

	// 仍有启用用户的团队不允许删除
	count, err := s.userRepo.CountActiveByTeamID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return pkgErrors.New(pkgErrors.CodeConflict, "团队内仍有启用中的用户, 无法删除")
	}

	return s.repo.Delete(id)
}
