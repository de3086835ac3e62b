package repository

import (
	"time"

	"gorm.io/gorm"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

// TicketScope 工单列表的角色范围过滤, 由服务层按actor角色设置
type TicketScope struct {
	OrganizationID *string // ORG_ADMIN: 项目归属组织
	TeamID         *string // TEAM_LEAD: 项目归属团队, 或被指派人在其团队内
	UserID         *string // USER: 报告人或被指派人是自己
}

type TicketRepository interface {
	Create(ticket *model.Ticket) error
	FindByID(id string) (*model.Ticket, error)
	FindDetailByID(id string) (*dto.TicketResponse, error)
	List(scope TicketScope, query *dto.ListTicketsQuery) ([]*dto.TicketResponse, int64, error)
	UpdateColumns(id string, columns map[string]interface{}) error
	Delete(id string) error
	ListBreachCandidates(now time.Time, renotifyBefore time.Time) ([]*model.Ticket, error)
	MarkBreached(id string, notifiedAt time.Time) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ticket *model.Ticket) error {
	if err := r.db.Create(ticket).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建工单失败", err)
	}
	return nil
}

func (r *ticketRepository) FindByID(id string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := r.db.First(&ticket, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "工单不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询工单失败", err)
	}
	return &ticket, nil
}

// joined 工单连接项目与用户表, 补出项目名和报告人/被指派人信息
func (r *ticketRepository) joined() *gorm.DB {
	return r.db.Table("tickets AS t").
		Select("t.*, p.name AS project_name, " +
			"r.name AS reporter_name, r.email AS reporter_email, " +
			"a.name AS assignee_name, a.email AS assignee_email").
		Joins("INNER JOIN projects p ON t.project_id = p.id").
		Joins("INNER JOIN users r ON t.reporter_id = r.id").
		Joins("LEFT JOIN users a ON t.assignee_id = a.id")
}

func (r *ticketRepository) FindDetailByID(id string) (*dto.TicketResponse, error) {
	var ticket dto.TicketResponse
	err := r.joined().Where("t.id = ?", id).Take(&ticket).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "工单不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询工单失败", err)
	}
	return &ticket, nil
}

func (r *ticketRepository) List(scope TicketScope, query *dto.ListTicketsQuery) ([]*dto.TicketResponse, int64, error) {
	db := r.joined()

	// 角色范围过滤
	if scope.OrganizationID != nil {
		db = db.Where("p.organization_id = ?", *scope.OrganizationID)
	}
	if scope.TeamID != nil {
		db = db.Where("p.team_id = ? OR t.assignee_id IN (?)", *scope.TeamID,
			r.db.Model(&model.User{}).Select("id").Where("team_id = ?", *scope.TeamID))
	}
	if scope.UserID != nil {
		db = db.Where("t.reporter_id = ? OR t.assignee_id = ?", *scope.UserID, *scope.UserID)
	}

	// 业务过滤
	if query.ProjectID != "" {
		db = db.Where("t.project_id = ?", query.ProjectID)
	}
	if query.Status != "" {
		db = db.Where("t.status = ?", query.Status)
	}
	if query.Priority != "" {
		db = db.Where("t.priority = ?", query.Priority)
	}
	if query.Type != "" {
		db = db.Where("t.type = ?", query.Type)
	}
	if query.Module != "" {
		db = db.Where("t.module = ?", query.Module)
	}
	if query.AssigneeID != "" {
		db = db.Where("t.assignee_id = ?", query.AssigneeID)
	}
	if query.ReporterID != "" {
		db = db.Where("t.reporter_id = ?", query.ReporterID)
	}
	if query.IsBreached != nil {
		db = db.Where("t.is_breached = ?", *query.IsBreached)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		db = db.Where("t.title LIKE ? OR t.description LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "统计工单失败", err)
	}

	var tickets []*dto.TicketResponse
	err := db.Order("t.created_at DESC").
		Limit(query.GetLimit()).Offset(query.GetOffset()).
		Find(&tickets).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询工单列表失败", err)
	}
	return tickets, total, nil
}

// UpdateColumns 按列更新, 允许的列集合由服务层控制
func (r *ticketRepository) UpdateColumns(id string, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}
	err := r.db.Model(&model.Ticket{}).Where("id = ?", id).Updates(columns).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "更新工单失败", err)
	}
	return nil
}

// Delete 硬删除工单及其附属数据
func (r *ticketRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.Comment{}, &model.TicketTag{}, &model.Watcher{},
			&model.TimeLog{}, &model.Activity{},
		} {
			if err := tx.Delete(m, "ticket_id = ?", id).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&model.Relationship{},
			"ticket_id = ? OR related_ticket_id = ?", id, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Ticket{}, "id = ?", id).Error
	})
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除工单失败", err)
	}
	return nil
}

// ListBreachCandidates 查询已超期且需要通知的工单
// 条件: 已过期, 未解决未关闭, 且从未通知或上次通知早于renotifyBefore
func (r *ticketRepository) ListBreachCandidates(now time.Time, renotifyBefore time.Time) ([]*model.Ticket, error) {
	var tickets []*model.Ticket
	err := r.db.Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("status NOT IN ?", []string{constants.TicketStatusSolved, constants.TicketStatusClosed}).
		Where("last_breach_notified_at IS NULL OR last_breach_notified_at < ?", renotifyBefore).
		Find(&tickets).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询超期工单失败", err)
	}
	return tickets, nil
}

func (r *ticketRepository) MarkBreached(id string, notifiedAt time.Time) error {
	err := r.db.Model(&model.Ticket{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_breached":             true,
			"last_breach_notified_at": notifiedAt,
		}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "标记超期工单失败", err)
	}
	return nil
}
