package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type RelationshipRepository interface {
	Create(rel *model.Relationship) error
	FindTriple(ticketID, relatedTicketID, relationshipType string) (*model.Relationship, error)
	ListByTicketID(ticketID string) ([]*model.Relationship, error)
}

type relationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) Create(rel *model.Relationship) error {
	if err := r.db.Create(rel).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "工单关联已存在")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建工单关联失败", err)
	}
	return nil
}

func (r *relationshipRepository) FindTriple(ticketID, relatedTicketID, relationshipType string) (*model.Relationship, error) {
	var rel model.Relationship
	err := r.db.First(&rel,
		"ticket_id = ? AND related_ticket_id = ? AND relationship_type = ?",
		ticketID, relatedTicketID, relationshipType).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询工单关联失败", err)
	}
	return &rel, nil
}

func (r *relationshipRepository) ListByTicketID(ticketID string) ([]*model.Relationship, error) {
	var rels []*model.Relationship
	err := r.db.Where("ticket_id = ? OR related_ticket_id = ?", ticketID, ticketID).
		Find(&rels).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询工单关联失败", err)
	}
	return rels, nil
}
