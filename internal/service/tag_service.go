package service

import (
	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

type TagService interface {
	List() ([]*model.Tag, error)
	GetByID(id string) (*model.Tag, error)
	Create(req *dto.CreateTagRequest) (*model.Tag, error)
	Update(id string, req *dto.UpdateTagRequest) (*model.Tag, error)
	Delete(id string) error
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List() ([]*model.Tag, error) {
	return s.repo.ListAll()
}

func (s *tagService) GetByID(id string) (*model.Tag, error) {
	return s.repo.FindByID(id)
}

func (s *tagService) Create(req *dto.CreateTagRequest) (*model.Tag, error) {
	if existing, _ := s.repo.FindByName(req.Name); existing != nil {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "标签名称已存在")
	}

	tag := &model.Tag{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	}
	if tag.Color == "" {
		tag.Color = constants.DefaultTagColor
	}
	if err := s.repo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Update(id string, req *dto.UpdateTagRequest) (*model.Tag, error) {
	tag, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != tag.Name {
		if existing, _ := s.repo.FindByName(*req.Name); existing != nil {
			return nil, pkgErrors.New(pkgErrors.CodeConflict, "标签名称已存在")
		}
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if req.Description != nil {
		tag.Description = req.Description
	}

	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
