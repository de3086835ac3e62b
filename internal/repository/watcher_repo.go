package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type WatcherRepository interface {
	Create(watcher *model.Watcher) error
	Find(ticketID, userID string) (*model.Watcher, error)
	Delete(ticketID, userID string) error
	ListByTicketID(ticketID string) ([]*model.Watcher, error)
	ListUserIDsByTicketID(ticketID string) ([]string, error)
}

type watcherRepository struct {
	db *gorm.DB
}

func NewWatcherRepository(db *gorm.DB) WatcherRepository {
	return &watcherRepository{db: db}
}

func (r *watcherRepository) Create(watcher *model.Watcher) error {
	if err := r.db.Create(watcher).Error; err != nil {
		if isDuplicateErr(err) {
			return pkgErrors.New(pkgErrors.CodeConflict, "用户已在关注该工单")
		}
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "添加关注人失败", err)
	}
	return nil
}

func (r *watcherRepository) Find(ticketID, userID string) (*model.Watcher, error) {
	var watcher model.Watcher
	err := r.db.First(&watcher, "ticket_id = ? AND user_id = ?", ticketID, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询关注人失败", err)
	}
	return &watcher, nil
}

func (r *watcherRepository) Delete(ticketID, userID string) error {
	result := r.db.Delete(&model.Watcher{}, "ticket_id = ? AND user_id = ?", ticketID, userID)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "移除关注人失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "用户未关注该工单")
	}
	return nil
}

func (r *watcherRepository) ListByTicketID(ticketID string) ([]*model.Watcher, error) {
	var watchers []*model.Watcher
	err := r.db.Where("ticket_id = ?", ticketID).Find(&watchers).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询关注人列表失败", err)
	}
	return watchers, nil
}

func (r *watcherRepository) ListUserIDsByTicketID(ticketID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Watcher{}).
		Where("ticket_id = ?", ticketID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询关注人列表失败", err)
	}
	return ids, nil
}
