package service

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
)

// ActivityService 工单活动记录
// 活动写入与主操作同属一个逻辑操作, 失败向上传播(通知与邮件才是尽力而为)
type ActivityService interface {
	GetTicketActivities(ticketID string) ([]*dto.ActivityResponse, error)

	LogTicketCreated(ticketID, userID, title, status string) error
	LogStatusChange(ticketID, userID, oldStatus, newStatus string) error
	LogAssigneeChange(ticketID, userID string, oldID, newID *string, oldName, newName string) error
	LogPriorityChange(ticketID, userID, oldPriority, newPriority string) error
	LogFieldUpdate(ticketID, userID, field string, oldValue, newValue interface{}) error
	LogCommentAdded(ticketID, userID, commentID string) error
	LogAttachmentAdded(ticketID, userID, commentID, filename string) error
	LogTagAdded(ticketID, userID, tagID, tagName string) error
	LogTagRemoved(ticketID, userID, tagID, tagName string) error
	LogWatcherAdded(ticketID, userID, watcherID, watcherName string) error
	LogWatcherRemoved(ticketID, userID, watcherID, watcherName string) error
	LogRelationshipAdded(ticketID, userID, relatedTicketID, relationshipType string) error
	LogTimeLogged(ticketID, userID string, hours float64, description *string) error
}

type activityService struct {
	repo       repository.ActivityRepository
	ticketRepo repository.TicketRepository
}

func NewActivityService(repo repository.ActivityRepository, ticketRepo repository.TicketRepository) ActivityService {
	return &activityService{
		repo:       repo,
		ticketRepo: ticketRepo,
	}
}

func (s *activityService) GetTicketActivities(ticketID string) ([]*dto.ActivityResponse, error) {
	if _, err := s.ticketRepo.FindByID(ticketID); err != nil {
		return nil, err
	}
	return s.repo.ListByTicketID(ticketID)
}

// log 写入一条活动, old/new为结构化快照, nil表示无
func (s *activityService) log(ticketID, userID, activityType string, oldValue, newValue map[string]interface{}, description string) error {
	activity := &model.Activity{
		TicketID:     ticketID,
		UserID:       userID,
		ActivityType: activityType,
		OldValue:     snapshot(oldValue),
		NewValue:     snapshot(newValue),
		Description:  description,
	}
	return s.repo.Create(activity)
}

func snapshot(values map[string]interface{}) datatypes.JSON {
	if values == nil {
		return nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return data
}

func (s *activityService) LogTicketCreated(ticketID, userID, title, status string) error {
	return s.log(ticketID, userID, constants.ActivityCreated,
		nil,
		map[string]interface{}{"title": title, "status": status},
		fmt.Sprintf("Ticket created: %s", title))
}

func (s *activityService) LogStatusChange(ticketID, userID, oldStatus, newStatus string) error {
	return s.log(ticketID, userID, constants.ActivityStatusChanged,
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": newStatus},
		fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus))
}

func (s *activityService) LogAssigneeChange(ticketID, userID string, oldID, newID *string, oldName, newName string) error {
	var oldValue, newValue map[string]interface{}
	if oldID != nil {
		oldValue = map[string]interface{}{"assignee_id": *oldID, "assignee_name": oldName}
	}
	if newID != nil {
		newValue = map[string]interface{}{"assignee_id": *newID, "assignee_name": newName}
	}

	description := fmt.Sprintf("Unassigned from %s", oldName)
	if newID != nil {
		description = fmt.Sprintf("Assigned to %s", newName)
	}

	return s.log(ticketID, userID, constants.ActivityAssigneeChanged, oldValue, newValue, description)
}

func (s *activityService) LogPriorityChange(ticketID, userID, oldPriority, newPriority string) error {
	return s.log(ticketID, userID, constants.ActivityPriorityChanged,
		map[string]interface{}{"priority": oldPriority},
		map[string]interface{}{"priority": newPriority},
		fmt.Sprintf("Priority changed from %s to %s", oldPriority, newPriority))
}

func (s *activityService) LogFieldUpdate(ticketID, userID, field string, oldValue, newValue interface{}) error {
	return s.log(ticketID, userID, constants.ActivityFieldUpdated,
		map[string]interface{}{field: oldValue},
		map[string]interface{}{field: newValue},
		fmt.Sprintf("%s updated", field))
}

func (s *activityService) LogCommentAdded(ticketID, userID, commentID string) error {
	return s.log(ticketID, userID, constants.ActivityCommentAdded,
		nil,
		map[string]interface{}{"comment_id": commentID},
		"Comment added")
}

func (s *activityService) LogAttachmentAdded(ticketID, userID, commentID, filename string) error {
	return s.log(ticketID, userID, constants.ActivityAttachmentAdded,
		nil,
		map[string]interface{}{"comment_id": commentID, "filename": filename},
		fmt.Sprintf("Attachment added: %s", filename))
}

func (s *activityService) LogTagAdded(ticketID, userID, tagID, tagName string) error {
	return s.log(ticketID, userID, constants.ActivityTagAdded,
		nil,
		map[string]interface{}{"tag_id": tagID, "tag_name": tagName},
		fmt.Sprintf("Tag added: %s", tagName))
}

func (s *activityService) LogTagRemoved(ticketID, userID, tagID, tagName string) error {
	return s.log(ticketID, userID, constants.ActivityTagRemoved,
		map[string]interface{}{"tag_id": tagID, "tag_name": tagName},
		nil,
		fmt.Sprintf("Tag removed: %s", tagName))
}

func (s *activityService) LogWatcherAdded(ticketID, userID, watcherID, watcherName string) error {
	return s.log(ticketID, userID, constants.ActivityWatcherAdded,
		nil,
		map[string]interface{}{"watcher_id": watcherID, "watcher_name": watcherName},
		fmt.Sprintf("Watcher added: %s", watcherName))
}

func (s *activityService) LogWatcherRemoved(ticketID, userID, watcherID, watcherName string) error {
	return s.log(ticketID, userID, constants.ActivityWatcherRemoved,
		map[string]interface{}{"watcher_id": watcherID, "watcher_name": watcherName},
		nil,
		fmt.Sprintf("Watcher removed: %s", watcherName))
}

func (s *activityService) LogRelationshipAdded(ticketID, userID, relatedTicketID, relationshipType string) error {
	return s.log(ticketID, userID, constants.ActivityRelationshipAdded,
		nil,
		map[string]interface{}{"related_ticket_id": relatedTicketID, "relationship_type": relationshipType},
		fmt.Sprintf("Relationship added: %s", relationshipType))
}

func (s *activityService) LogTimeLogged(ticketID, userID string, hours float64, description *string) error {
	newValue := map[string]interface{}{"hours": hours}
	if description != nil {
		newValue["description"] = *description
	}
	return s.log(ticketID, userID, constants.ActivityTimeLogged,
		nil, newValue,
		fmt.Sprintf("Time logged: %v hours", hours))
}
