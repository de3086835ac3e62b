package service

import (
	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/rbac"
	"ticketdesk/internal/repository"
	pkgErrors "ticketdesk/pkg/errors"
)

// CommentService 评论的修改与删除, 创建走TicketService.AddComment
type CommentService interface {
	ListByTicketID(ticketID string) ([]*dto.CommentResponse, error)
	Update(actor *model.User, id string, req *dto.UpdateCommentRequest) (*model.Comment, error)
	Delete(actor *model.User, id string) error
}

type commentService struct {
	repo       repository.CommentRepository
	ticketRepo repository.TicketRepository
}

func NewCommentService(repo repository.CommentRepository, ticketRepo repository.TicketRepository) CommentService {
	return &commentService{
		repo:       repo,
		ticketRepo: ticketRepo,
	}
}

// ListByTicketID 按时间正序返回, 保持对话顺序
func (s *commentService) ListByTicketID(ticketID string) ([]*dto.CommentResponse, error) {
	if _, err := s.ticketRepo.FindByID(ticketID); err != nil {
		return nil, err
	}
	return s.repo.ListByTicketID(ticketID)
}

// Update 仅评论作者可修改
func (s *commentService) Update(actor *model.User, id string, req *dto.UpdateCommentRequest) (*model.Comment, error) {
	comment, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.ID {
		return nil, pkgErrors.ErrForbidden
	}

	comment.CommentText = req.CommentText
	if err := s.repo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete 作者或管理员层级可删除
func (s *commentService) Delete(actor *model.User, id string) error {
	comment, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !rbac.IsAdminTier(actor.Role) {
		return pkgErrors.ErrForbidden
	}
	return s.repo.Delete(id)
}
