package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/rbac"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

// TicketService 工单生命周期的唯一修改入口
// 字段变更的活动记录在持久化之前写入, old取更新前快照, new取补丁值
type TicketService interface {
	List(actor *model.User, query *dto.ListTicketsQuery) ([]*dto.TicketResponse, int64, error)
	GetByID(actor *model.User, id string) (*dto.TicketDetailResponse, error)
	Create(actor *model.User, req *dto.CreateTicketRequest) (*model.Ticket, error)
	Update(actor *model.User, id string, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error)
	Delete(actor *model.User, id string) error

	AddComment(actor *model.User, ticketID string, req *dto.AddCommentRequest, attachmentPath *string) (*model.Comment, error)
	AddTag(actor *model.User, ticketID, tagID string) error
	RemoveTag(actor *model.User, ticketID, tagID string) error
	AddWatcher(actor *model.User, ticketID, userID string) error
	RemoveWatcher(actor *model.User, ticketID, userID string) error
	AddRelationship(actor *model.User, ticketID string, req *dto.AddRelationshipRequest) (*model.Relationship, error)
	LogTime(actor *model.User, ticketID string, req *dto.LogTimeRequest) (*model.TimeLog, error)
}

type ticketService struct {
	repo            repository.TicketRepository
	projectRepo     repository.ProjectRepository
	userRepo        repository.UserRepository
	commentRepo     repository.CommentRepository
	tagRepo         repository.TagRepository
	watcherRepo     repository.WatcherRepository
	relRepo         repository.RelationshipRepository
	timeLogRepo     repository.TimeLogRepository
	activitySvc     ActivityService
	notificationSvc NotificationService
}

func NewTicketService(
	repo repository.TicketRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	tagRepo repository.TagRepository,
	watcherRepo repository.WatcherRepository,
	relRepo repository.RelationshipRepository,
	timeLogRepo repository.TimeLogRepository,
	activitySvc ActivityService,
	notificationSvc NotificationService,
) TicketService {
	return &ticketService{
		repo:            repo,
		projectRepo:     projectRepo,
		userRepo:        userRepo,
		commentRepo:     commentRepo,
		tagRepo:         tagRepo,
		watcherRepo:     watcherRepo,
		relRepo:         relRepo,
		timeLogRepo:     timeLogRepo,
		activitySvc:     activitySvc,
		notificationSvc: notificationSvc,
	}
}

// List 按角色范围: ORG_ADMIN→项目归属本组织, TEAM_LEAD→项目归属本团队或被指派人在本团队,
// USER→自己是报告人或被指派人
func (s *ticketService) List(actor *model.User, query *dto.ListTicketsQuery) ([]*dto.TicketResponse, int64, error) {
	var scope repository.TicketScope
	switch actor.Role {
	case constants.RoleOrgAdmin:
		scope.OrganizationID = actor.OrganizationID
	case constants.RoleTeamLead:
		scope.TeamID = actor.TeamID
	case constants.RoleUser:
		scope.UserID = &actor.ID
	}
	return s.repo.List(scope, query)
}

func (s *ticketService) GetByID(actor *model.User, id string) (*dto.TicketDetailResponse, error) {
	ticket, err := s.repo.FindDetailByID(id)
	if err != nil {
		return nil, err
	}

	if actor.Role == constants.RoleOrgAdmin {
		project, err := s.projectRepo.FindByID(ticket.ProjectID)
		if err != nil {
			return nil, err
		}
		if !sameScope(actor.OrganizationID, project.OrganizationID) {
			return nil, pkgErrors.ErrForbidden
		}
	}
	if actor.Role == constants.RoleUser &&
		ticket.ReporterID != actor.ID &&
		(ticket.AssigneeID == nil || *ticket.AssigneeID != actor.ID) {
		return nil, pkgErrors.ErrForbidden
	}

	detail := &dto.TicketDetailResponse{TicketResponse: *ticket}

	// 附属数据彼此独立且只读, 并发查询
	var g errgroup.Group
	g.Go(func() error {
		var err error
		detail.Tags, err = s.tagRepo.ListByTicketID(id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Watchers, err = s.watcherRepo.ListByTicketID(id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Comments, err = s.commentRepo.ListByTicketID(id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Activities, err = s.activitySvc.GetTicketActivities(id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Relationships, err = s.relRepo.ListByTicketID(id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.TimeLogs, err = s.timeLogRepo.ListByTicketID(id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *ticketService) Create(actor *model.User, req *dto.CreateTicketRequest) (*model.Ticket, error) {
	project, err := s.projectRepo.FindByID(req.ProjectID)
	if err != nil {
		return nil, err
	}
	if actor.Role == constants.RoleOrgAdmin && !sameScope(actor.OrganizationID, project.OrganizationID) {
		return nil, pkgErrors.ErrForbidden
	}

	if _, err := s.userRepo.FindByID(req.AssigneeID); err != nil {
		return nil, err
	}

	ticket := &model.Ticket{
		ProjectID:              req.ProjectID,
		Type:                   req.Type,
		Title:                  req.Title,
		Description:            req.Description,
		Module:                 req.Module,
		ReporterID:             actor.ID,
		AssigneeID:             &req.AssigneeID,
		BranchName:             req.BranchName,
		Scenario:               req.Scenario,
		StartDate:              req.StartDate,
		DueDate:                req.DueDate,
		DurationHours:          req.DurationHours,
		BreachThresholdMinutes: req.BreachThresholdMinutes,
		Status:                 constants.TicketStatusCreated,
		Priority:               req.Priority,
	}
	if ticket.Type == "" {
		ticket.Type = constants.TicketTypeTask
	}
	if ticket.Priority == "" {
		ticket.Priority = constants.TicketPriorityMedium
	}

	if err := s.repo.Create(ticket); err != nil {
		return nil, err
	}

	if err := s.activitySvc.LogTicketCreated(ticket.ID, actor.ID, ticket.Title, ticket.Status); err != nil {
		return nil, err
	}

	// 指派给他人才通知
	if req.AssigneeID != actor.ID {
		s.notifyTicket(req.AssigneeID, constants.NotificationTicketAssigned,
			"New Ticket Assigned",
			fmt.Sprintf("You have been assigned to ticket: %s", ticket.Title),
			ticket.ID)
	}

	for _, userID := range lo.Uniq(req.MentionedUsers) {
		if userID == actor.ID {
			continue
		}
		s.notifyTicket(userID, constants.NotificationMention,
			"Mentioned in Ticket",
			fmt.Sprintf("%s mentioned you in ticket: %s", actor.Name, ticket.Title),
			ticket.ID)
	}

	// 标签绑定幂等: 重复和不存在的标签跳过, 不影响工单创建
	for _, tagID := range lo.Uniq(req.Tags) {
		if _, err := s.tagRepo.FindByID(tagID); err != nil {
			continue
		}
		if existing, _ := s.tagRepo.FindTicketTag(ticket.ID, tagID); existing != nil {
			continue
		}
		_ = s.tagRepo.AttachToTicket(ticket.ID, tagID)
	}

	return ticket, nil
}

func (s *ticketService) Update(actor *model.User, id string, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	ticket, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == constants.RoleUser && ticket.ReporterID != actor.ID {
		return nil, pkgErrors.ErrForbidden
	}

	columns := map[string]interface{}{}

	// 状态离开CREATED仅限报告人或管理员层级, 违反则整个更新失败
	if req.Status != nil && *req.Status != ticket.Status {
		if ticket.Status == constants.TicketStatusCreated &&
			ticket.ReporterID != actor.ID && !rbac.IsAdminTier(actor.Role) {
			return nil, pkgErrors.New(pkgErrors.CodeForbidden, "仅报告人或管理员可变更新建工单的状态")
		}
		if err := s.activitySvc.LogStatusChange(id, actor.ID, ticket.Status, *req.Status); err != nil {
			return nil, err
		}
		columns["status"] = *req.Status
	}

	if req.AssigneeID != nil && !samePtr(req.AssigneeID, ticket.AssigneeID) {
		var oldName, newName string
		if ticket.AssigneeID != nil {
			if old, err := s.userRepo.FindByID(*ticket.AssigneeID); err == nil {
				oldName = old.Name
			}
		}
		newAssignee, err := s.userRepo.FindByID(*req.AssigneeID)
		if err != nil {
			return nil, err
		}
		newName = newAssignee.Name

		if err := s.activitySvc.LogAssigneeChange(id, actor.ID, ticket.AssigneeID, req.AssigneeID, oldName, newName); err != nil {
			return nil, err
		}
		if *req.AssigneeID != actor.ID {
			s.notifyTicket(*req.AssigneeID, constants.NotificationTicketAssigned,
				"Ticket Assigned",
				fmt.Sprintf("You have been assigned to ticket: %s", ticket.Title),
				id)
		}
		columns["assignee_id"] = *req.AssigneeID
	}

	if req.Priority != nil && *req.Priority != ticket.Priority {
		if err := s.activitySvc.LogPriorityChange(id, actor.ID, ticket.Priority, *req.Priority); err != nil {
			return nil, err
		}
		columns["priority"] = *req.Priority
	}

	// 通用字段逐一对比, 每个变更写一条FIELD_UPDATED
	if req.Title != nil && *req.Title != ticket.Title {
		if err := s.activitySvc.LogFieldUpdate(id, actor.ID, "title", ticket.Title, *req.Title); err != nil {
			return nil, err
		}
		columns["title"] = *req.Title
	}
	if req.Description != nil && !samePtr(req.Description, ticket.Description) {
		if err := s.activitySvc.LogFieldUpdate(id, actor.ID, "description", deref(ticket.Description), *req.Description); err != nil {
			return nil, err
		}
		columns["description"] = *req.Description
	}
	if req.Module != nil && !samePtr(req.Module, ticket.Module) {
		if err := s.activitySvc.LogFieldUpdate(id, actor.ID, "module", deref(ticket.Module), *req.Module); err != nil {
			return nil, err
		}
		columns["module"] = *req.Module
	}
	if req.Type != nil && *req.Type != ticket.Type {
		if err := s.activitySvc.LogFieldUpdate(id, actor.ID, "type", ticket.Type, *req.Type); err != nil {
			return nil, err
		}
		columns["type"] = *req.Type
	}
	if req.DueDate != nil && (ticket.DueDate == nil || !req.DueDate.Equal(*ticket.DueDate)) {
		var oldValue interface{}
		if ticket.DueDate != nil {
			oldValue = ticket.DueDate.Format(time.RFC3339)
		}
		if err := s.activitySvc.LogFieldUpdate(id, actor.ID, "due_date", oldValue, req.DueDate.Format(time.RFC3339)); err != nil {
			return nil, err
		}
		columns["due_date"] = *req.DueDate
	}

	// 不产生活动记录的字段
	if req.BranchName != nil {
		columns["branch_name"] = *req.BranchName
	}
	if req.Scenario != nil {
		columns["scenario"] = *req.Scenario
	}
	if req.StartDate != nil {
		columns["start_date"] = *req.StartDate
	}
	if req.DurationHours != nil {
		columns["duration_hours"] = *req.DurationHours
	}
	if req.BreachThresholdMinutes != nil {
		columns["breach_threshold_minutes"] = *req.BreachThresholdMinutes
	}

	if err := s.repo.UpdateColumns(id, columns); err != nil {
		return nil, err
	}
	return s.repo.FindDetailByID(id)
}

// Delete 仅SUPER_ADMIN, ORG_ADMIN或报告人可删除
func (s *ticketService) Delete(actor *model.User, id string) error {
	ticket, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if !rbac.IsAdminTier(actor.Role) && ticket.ReporterID != actor.ID {
		return pkgErrors.ErrForbidden
	}
	return s.repo.Delete(id)
}

func (s *ticketService) AddComment(actor *model.User, ticketID string, req *dto.AddCommentRequest, attachmentPath *string) (*model.Comment, error) {
	ticket, err := s.repo.FindByID(ticketID)
	if err != nil {
		return nil, err
	}

	mentioned := lo.Uniq(req.MentionedUsers)
	comment := &model.Comment{
		TicketID:       ticketID,
		UserID:         actor.ID,
		CommentText:    req.CommentText,
		AttachmentPath: attachmentPath,
	}
	if len(mentioned) > 0 {
		data, err := json.Marshal(mentioned)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "序列化提及用户失败", err)
		}
		comment.MentionedUserIDs = data
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if err := s.activitySvc.LogCommentAdded(ticketID, actor.ID, comment.ID); err != nil {
		return nil, err
	}
	if attachmentPath != nil {
		if err := s.activitySvc.LogAttachmentAdded(ticketID, actor.ID, comment.ID, *attachmentPath); err != nil {
			return nil, err
		}
	}

	entityComment := constants.EntityComment
	for _, userID := range mentioned {
		if userID == actor.ID {
			continue
		}
		s.notificationSvc.Notify(userID, constants.NotificationMention,
			"Mentioned in Comment",
			fmt.Sprintf("%s mentioned you in a comment on ticket: %s", actor.Name, ticket.Title),
			&entityComment, &comment.ID)
	}

	watcherIDs, err := s.watcherRepo.ListUserIDsByTicketID(ticketID)
	if err != nil {
		return nil, err
	}
	for _, userID := range watcherIDs {
		if userID == actor.ID {
			continue
		}
		s.notifyTicket(userID, constants.NotificationCommentAdded,
			"New Comment",
			fmt.Sprintf("%s added a comment to ticket: %s", actor.Name, ticket.Title),
			ticketID)
	}

	return comment, nil
}

func (s *ticketService) AddTag(actor *model.User, ticketID, tagID string) error {
	if _, err := s.repo.FindByID(ticketID); err != nil {
		return err
	}
	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		return err
	}
	if existing, _ := s.tagRepo.FindTicketTag(ticketID, tagID); existing != nil {
		return pkgErrors.New(pkgErrors.CodeConflict, "标签已绑定到该工单")
	}
	if err := s.tagRepo.AttachToTicket(ticketID, tagID); err != nil {
		return err
	}
	return s.activitySvc.LogTagAdded(ticketID, actor.ID, tagID, tag.Name)
}

func (s *ticketService) RemoveTag(actor *model.User, ticketID, tagID string) error {
	if _, err := s.repo.FindByID(ticketID); err != nil {
		return err
	}
	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		return err
	}
	if err := s.tagRepo.DetachFromTicket(ticketID, tagID); err != nil {
		return err
	}
	return s.activitySvc.LogTagRemoved(ticketID, actor.ID, tagID, tag.Name)
}

func (s *ticketService) AddWatcher(actor *model.User, ticketID, userID string) error {
	if _, err := s.repo.FindByID(ticketID); err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if existing, _ := s.watcherRepo.Find(ticketID, userID); existing != nil {
		return pkgErrors.New(pkgErrors.CodeConflict, "用户已在关注该工单")
	}
	if err := s.watcherRepo.Create(&model.Watcher{TicketID: ticketID, UserID: userID}); err != nil {
		return err
	}
	return s.activitySvc.LogWatcherAdded(ticketID, actor.ID, userID, user.Name)
}

func (s *ticketService) RemoveWatcher(actor *model.User, ticketID, userID string) error {
	if _, err := s.repo.FindByID(ticketID); err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if err := s.watcherRepo.Delete(ticketID, userID); err != nil {
		return err
	}
	return s.activitySvc.LogWatcherRemoved(ticketID, actor.ID, userID, user.Name)
}

func (s *ticketService) AddRelationship(actor *model.User, ticketID string, req *dto.AddRelationshipRequest) (*model.Relationship, error) {
	if _, err := s.repo.FindByID(ticketID); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(req.RelatedTicketID); err != nil {
		return nil, err
	}
	if existing, _ := s.relRepo.FindTriple(ticketID, req.RelatedTicketID, req.RelationshipType); existing != nil {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "工单关联已存在")
	}

	rel := &model.Relationship{
		TicketID:         ticketID,
		RelatedTicketID:  req.RelatedTicketID,
		RelationshipType: req.RelationshipType,
		CreatedBy:        actor.ID,
	}
	if err := s.relRepo.Create(rel); err != nil {
		return nil, err
	}
	if err := s.activitySvc.LogRelationshipAdded(ticketID, actor.ID, req.RelatedTicketID, req.RelationshipType); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *ticketService) LogTime(actor *model.User, ticketID string, req *dto.LogTimeRequest) (*model.TimeLog, error) {
	if _, err := s.repo.FindByID(ticketID); err != nil {
		return nil, err
	}

	loggedDate := time.Now()
	if req.LoggedDate != nil {
		loggedDate = *req.LoggedDate
	}
	timeLog := &model.TimeLog{
		TicketID:    ticketID,
		UserID:      actor.ID,
		Hours:       req.Hours,
		Description: req.Description,
		LoggedDate:  loggedDate,
	}
	if err := s.timeLogRepo.Create(timeLog); err != nil {
		return nil, err
	}
	if err := s.activitySvc.LogTimeLogged(ticketID, actor.ID, req.Hours, req.Description); err != nil {
		return nil, err
	}
	return timeLog, nil
}

func (s *ticketService) notifyTicket(userID, notificationType, title, message, ticketID string) {
	entity := constants.EntityTicket
	s.notificationSvc.Notify(userID, notificationType, title, message, &entity, &ticketID)
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
