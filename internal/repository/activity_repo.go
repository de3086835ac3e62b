package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

// ActivityRepository 活动记录只增不改
type ActivityRepository interface {
	Create(activity *model.Activity) error
	// ListByTicketID 按时间倒序返回, 活动流最新在前
	ListByTicketID(ticketID string) ([]*dto.ActivityResponse, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	if err := r.db.Create(activity).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "写入活动记录失败", err)
	}
	return nil
}

func (r *activityRepository) ListByTicketID(ticketID string) ([]*dto.ActivityResponse, error) {
	var activities []*dto.ActivityResponse
	err := r.db.Table("ticket_activities AS a").
		Select("a.*, u.name AS user_name, u.email AS user_email").
		Joins("INNER JOIN users u ON a.user_id = u.id").
		Where("a.ticket_id = ?", ticketID).
		Order("a.created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询活动记录失败", err)
	}
	return activities, nil
}
