package service

import (
	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

// TemplateService 工单模板, 共享模板所有人可见, 仅创建者可改删
type TemplateService interface {
	List(actor *model.User) ([]*model.Template, error)
	GetByID(actor *model.User, id string) (*model.Template, error)
	Create(actor *model.User, req *dto.CreateTemplateRequest) (*model.Template, error)
	Update(actor *model.User, id string, req *dto.UpdateTemplateRequest) (*model.Template, error)
	Delete(actor *model.User, id string) error
}

type templateService struct {
	repo repository.TemplateRepository
}

func NewTemplateService(repo repository.TemplateRepository) TemplateService {
	return &templateService{repo: repo}
}

func (s *templateService) List(actor *model.User) ([]*model.Template, error) {
	return s.repo.ListVisible(actor.ID)
}

func (s *templateService) GetByID(actor *model.User, id string) (*model.Template, error) {
	template, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if template.CreatedBy != actor.ID && !template.IsShared {
		return nil, pkgErrors.ErrForbidden
	}
	return template, nil
}

func (s *templateService) Create(actor *model.User, req *dto.CreateTemplateRequest) (*model.Template, error) {
	template := &model.Template{
		Name:               req.Name,
		Type:               req.Type,
		Priority:           req.Priority,
		DefaultTitle:       req.DefaultTitle,
		DefaultDescription: req.DefaultDescription,
		DefaultModule:      req.DefaultModule,
		CreatedBy:          actor.ID,
	}
	if template.Type == "" {
		template.Type = constants.TicketTypeTask
	}
	if template.Priority == "" {
		template.Priority = constants.TicketPriorityMedium
	}
	if req.IsShared != nil {
		template.IsShared = *req.IsShared
	}

	if err := s.repo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *templateService) Update(actor *model.User, id string, req *dto.UpdateTemplateRequest) (*model.Template, error) {
	template, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if template.CreatedBy != actor.ID {
		return nil, pkgErrors.ErrForbidden
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Type != nil {
		template.Type = *req.Type
	}
	if req.Priority != nil {
		template.Priority = *req.Priority
	}
	if req.DefaultTitle != nil {
		template.DefaultTitle = req.DefaultTitle
	}
	if req.DefaultDescription != nil {
		template.DefaultDescription = req.DefaultDescription
	}
	if req.DefaultModule != nil {
		template.DefaultModule = req.DefaultModule
	}
	if req.IsShared != nil {
		template.IsShared = *req.IsShared
	}

	if err := s.repo.Update(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *templateService) Delete(actor *model.User, id string) error {
	template, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if template.CreatedBy != actor.ID {
		return pkgErrors.ErrForbidden
	}
	return s.repo.Delete(id)
}
