package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ticketdesk/internal/adapter/email"
	"ticketdesk/internal/pkg/config"
	"ticketdesk/internal/pkg/logger"
	"ticketdesk/internal/repository"
	"ticketdesk/internal/service"
	"ticketdesk/pkg/constants"
)

// Scheduler 调度器, 周期扫描SLA超期工单
type Scheduler struct {
	cron            *cron.Cron
	cfg             *config.Config
	ticketRepo      repository.TicketRepository
	userRepo        repository.UserRepository
	notificationSvc service.NotificationService
	mailer          email.Mailer
	cronSchedules   map[string]cron.EntryID
}

// NewScheduler 创建调度器
func NewScheduler(db *gorm.DB, cfg *config.Config) *Scheduler {
	// 创建 cron 实例（带秒级支持）
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:            c,
		cfg:             cfg,
		ticketRepo:      repository.NewTicketRepository(db),
		userRepo:        repository.NewUserRepository(db),
		notificationSvc: service.NewNotificationService(repository.NewNotificationRepository(db)),
		mailer:          email.NewMailer(&cfg.Email),
		cronSchedules:   make(map[string]cron.EntryID),
	}
}

// Start 启动调度器
func (s *Scheduler) Start() error {
	logger.Info("启动定时任务调度器...")

	// cron 表达式格式: 秒 分 时 日 月 周
	cronExpr := s.cfg.SLA.Cron
	if cronExpr == "" {
		cronExpr = "0 */5 * * * *" // 默认: 每5分钟
		logger.Warn("未配置sla.cron, 使用默认值", zap.String("cron", cronExpr))
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		logger.Info("执行定时任务: SLA超期扫描")
		if err := s.ScanBreaches(); err != nil {
			logger.Error("SLA超期扫描任务执行失败", zap.Error(err))
		}
	})
	if err != nil {
		logger.Error("注册SLA超期扫描任务失败",
			zap.String("cron", cronExpr), zap.Error(err))
		return err
	}

	s.cronSchedules["sla_breach_scan"] = entryID
	logger.Info("SLA超期扫描任务已注册",
		zap.String("cron", cronExpr), zap.Int("entry_id", int(entryID)))

	s.cron.Start()
	logger.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	logger.Info("正在停止定时任务调度器...")

	// 停止 cron（等待正在执行的任务完成）
	ctx := s.cron.Stop()
	<-ctx.Done()

	logger.Info("定时任务调度器已停止")
}

// ScanBreaches 扫描超期工单并通知, 同一工单在重复通知间隔内只通知一次
func (s *Scheduler) ScanBreaches() error {
	now := time.Now()
	renotifyInterval := time.Duration(s.cfg.SLA.RenotifyIntervalHours) * time.Hour
	if renotifyInterval <= 0 {
		renotifyInterval = time.Hour
	}

	tickets, err := s.ticketRepo.ListBreachCandidates(now, now.Add(-renotifyInterval))
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		return nil
	}

	logger.Info("发现SLA超期工单", zap.Int("count", len(tickets)))

	for _, ticket := range tickets {
		s.notifyBreach(ticket.ID, ticket.Title, ticket.ReporterID, ticket.AssigneeID)
		if err := s.ticketRepo.MarkBreached(ticket.ID, now); err != nil {
			logger.Error("标记超期工单失败",
				zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}

	return nil
}

// notifyBreach 通知被指派人与报告人, 站内信必发, 邮件尽力而为
func (s *Scheduler) notifyBreach(ticketID, title, reporterID string, assigneeID *string) {
	message := fmt.Sprintf("Ticket has breached its SLA: %s", title)

	recipients := []string{reporterID}
	if assigneeID != nil && *assigneeID != reporterID {
		recipients = append(recipients, *assigneeID)
	}

	entityType := constants.EntityTicket
	for _, userID := range recipients {
		s.notificationSvc.Notify(userID, constants.NotificationSLABreach,
			"SLA Breach", message, &entityType, &ticketID)

		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			continue
		}
		_ = s.mailer.Send(user.Email, "SLA Breach", message)
	}
}
