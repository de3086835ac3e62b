package repository

import (
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type TimeLogRepository interface {
	Create(timeLog *model.TimeLog) error
	ListByTicketID(ticketID string) ([]*model.TimeLog, error)
}

type timeLogRepository struct {
	db *gorm.DB
}

func NewTimeLogRepository(db *gorm.DB) TimeLogRepository {
	return &timeLogRepository{db: db}
}

func (r *timeLogRepository) Create(timeLog *model.TimeLog) error {
	if err := r.db.Create(timeLog).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建工时记录失败", err)
	}
	return nil
}

func (r *timeLogRepository) ListByTicketID(ticketID string) ([]*model.TimeLog, error) {
	var logs []*model.TimeLog
	err := r.db.Where("ticket_id = ?", ticketID).
		Order("logged_date DESC").Find(&logs).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询工时记录失败", err)
	}
	return logs, nil
}
