package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id string) (*model.Comment, error)
	// ListByTicketID 按时间正序返回, 保持对话顺序
	ListByTicketID(ticketID string) ([]*dto.CommentResponse, error)
	Update(comment *model.Comment) error
	Delete(id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建评论失败", err)
	}
	return nil
}

func (r *commentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "评论不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询评论失败", err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByTicketID(ticketID string) ([]*dto.CommentResponse, error) {
	var comments []*dto.CommentResponse
	err := r.db.Table("comments AS c").
		Select("c.*, u.name AS user_name, u.email AS user_email").
		Joins("INNER JOIN users u ON c.user_id = u.id").
		Where("c.ticket_id = ?", ticketID).
		Order("c.created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询评论列表失败", err)
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *model.Comment) error {
	if err := r.db.Save(comment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新评论失败", err)
	}
	return nil
}

func (r *commentRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Comment{}, "id = ?", id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除评论失败", err)
	}
	return nil
}
