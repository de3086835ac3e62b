package service

import (
	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

// OrganizationService 组织管理, 全部操作仅SUPER_ADMIN可用
type OrganizationService interface {
	List(actor *model.User) ([]*model.Organization, error)
	GetByID(actor *model.User, id string) (*model.Organization, error)
	Create(actor *model.User, req *dto.CreateOrganizationRequest) (*model.Organization, error)
	Update(actor *model.User, id string, req *dto.UpdateOrganizationRequest) (*model.Organization, error)
	Delete(actor *model.User, id string) error
}

type organizationService struct {
	repo repository.OrganizationRepository
}

func NewOrganizationService(repo repository.OrganizationRepository) OrganizationService {
	return &organizationService{repo: repo}
}

func requireSuperAdmin(actor *model.User) error {
	if actor.Role != constants.RoleSuperAdmin {
		return pkgErrors.ErrForbidden
	}
	return nil
}

func (s *organizationService) List(actor *model.User) ([]*model.Organization, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.ListAll()
}

func (s *organizationService) GetByID(actor *model.User, id string) (*model.Organization, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *organizationService) Create(actor *model.User, req *dto.CreateOrganizationRequest) (*model.Organization, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if existing, _ := s.repo.FindByName(req.Name); existing != nil {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "组织名称已存在")
	}

	org := &model.Organization{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) Update(actor *model.User, id string, req *dto.UpdateOrganizationRequest) (*model.Organization, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	org, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != org.Name {
		if existing, _ := s.repo.FindByName(*req.Name); existing != nil {
			return nil, pkgErrors.New(pkgErrors.CodeConflict, "组织名称已存在")
		}
		org.Name = *req.Name
	}
	if req.Description != nil {
		org.Description = req.Description
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}

	if err := s.repo.Update(org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) Delete(actor *model.User, id string) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
