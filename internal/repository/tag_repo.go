package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	FindByID(id string) (*model.Tag, error)
	FindByName(name string) (*model.Tag, error)
	ListAll() ([]*model.Tag, error)
	Update(tag *model.Tag) error
	Delete(id string) error

	AttachToTicket(ticketID, tagID string) error
	DetachFromTicket(ticketID, tagID string) error
	FindTicketTag(ticketID, tagID string) (*model.TicketTag, error)
	ListByTicketID(ticketID string) ([]*model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "标签名称已存在")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建标签失败", err)
	}
	return nil
}

func (r *tagRepository) FindByID(id string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "标签不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询标签失败", err)
	}
	return &tag, nil
}

func (r *tagRepository) FindByName(name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.First(&tag, "name = ?", name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询标签失败", err)
	}
	return &tag, nil
}

func (r *tagRepository) ListAll() ([]*model.Tag, error) {
	var tags []*model.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询标签列表失败", err)
	}
	return tags, nil
}

func (r *tagRepository) Update(tag *model.Tag) error {
	if err := r.db.Save(tag).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "标签名称已存在")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新标签失败", err)
	}
	return nil
}

func (r *tagRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TicketTag{}, "tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, "id = ?", id).Error
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除标签失败", err)
	}
	return nil
}

func (r *tagRepository) AttachToTicket(ticketID, tagID string) error {
	tt := &model.TicketTag{TicketID: ticketID, TagID: tagID}
	if err := r.db.Create(tt).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "标签已绑定到该工单")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "绑定标签失败", err)
	}
	return nil
}

func (r *tagRepository) DetachFromTicket(ticketID, tagID string) error {
	result := r.db.Delete(&model.TicketTag{}, "ticket_id = ? AND tag_id = ?", ticketID, tagID)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "解绑标签失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "标签未绑定到该工单")
	}
	return nil
}

func (r *tagRepository) FindTicketTag(ticketID, tagID string) (*model.TicketTag, error) {
	var tt model.TicketTag
	err := r.db.First(&tt, "ticket_id = ? AND tag_id = ?", ticketID, tagID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询工单标签失败", err)
	}
	return &tt, nil
}

func (r *tagRepository) ListByTicketID(ticketID string) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := r.db.Table("tags").
		Joins("INNER JOIN ticket_tags tt ON tt.tag_id = tags.id").
		Where("tt.ticket_id = ?", ticketID).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询工单标签失败", err)
	}
	return tags, nil
}
