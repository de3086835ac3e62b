package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

func TestCreateTicket_SelfAssignProducesNoNotification(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "bob", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)

	ticket, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "自己处理的任务",
		AssigneeID: actor.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.TicketStatusCreated, ticket.Status)
	assert.Equal(t, constants.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, actor.ID, ticket.ReporterID)

	var notificationCount int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&notificationCount).Error)
	assert.Zero(t, notificationCount)

	var activities []*model.Activity
	require.NoError(t, db.Where("ticket_id = ?", ticket.ID).Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Equal(t, constants.ActivityCreated, activities[0].ActivityType)
}

func TestCreateTicket_AssigneeAndMentionsNotified(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	assignee := createTestUser(t, db, "bob", constants.RoleUser, nil, nil)
	mentioned := createTestUser(t, db, "carol", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)

	ticket, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID:      project.ID,
		Title:          "登录页报错",
		Type:           constants.TicketTypeBug,
		AssigneeID:     assignee.ID,
		MentionedUsers: []string{mentioned.ID, actor.ID},
	})
	require.NoError(t, err)

	var assigned model.Notification
	require.NoError(t, db.First(&assigned, "user_id = ?", assignee.ID).Error)
	assert.Equal(t, constants.NotificationTicketAssigned, assigned.Type)
	assert.Equal(t, "New Ticket Assigned", assigned.Title)
	assert.Equal(t, "You have been assigned to ticket: 登录页报错", assigned.Message)
	require.NotNil(t, assigned.RelatedEntityID)
	assert.Equal(t, ticket.ID, *assigned.RelatedEntityID)

	var mention model.Notification
	require.NoError(t, db.First(&mention, "user_id = ?", mentioned.ID).Error)
	assert.Equal(t, constants.NotificationMention, mention.Type)

	// 提及自己不产生通知
	var actorCount int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("user_id = ?", actor.ID).Count(&actorCount).Error)
	assert.Zero(t, actorCount)
}

func TestCreateTicket_TagAttachIdempotent(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)
	tag := &model.Tag{Name: "backend", Color: constants.DefaultTagColor}
	require.NoError(t, db.Create(tag).Error)

	ticket, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "带标签的工单",
		AssigneeID: actor.ID,
		Tags:       []string{tag.ID, tag.ID, "00000000-0000-0000-0000-000000000000"},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.TicketTag{}).
		Where("ticket_id = ?", ticket.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateTicket_OrgAdminCrossOrgDenied(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	orgA := &model.Organization{Name: "A组织", IsActive: true}
	orgB := &model.Organization{Name: "B组织", IsActive: true}
	require.NoError(t, db.Create(orgA).Error)
	require.NoError(t, db.Create(orgB).Error)

	admin := createTestUser(t, db, "admin", constants.RoleOrgAdmin, &orgA.ID, nil)
	creator := createTestUser(t, db, "creator", constants.RoleUser, &orgB.ID, nil)
	project := createTestProject(t, db, creator, nil, &orgB.ID)

	_, err := env.tickets.Create(admin, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "越权工单",
		AssigneeID: admin.ID,
	})
	assertErrCode(t, err, pkgErrors.CodeForbidden)
}

func TestUpdateTicket_NonReporterUserDenied(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	reporter := createTestUser(t, db, "reporter", constants.RoleUser, nil, nil)
	other := createTestUser(t, db, "other", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, reporter, nil, nil)

	ticket, err := env.tickets.Create(reporter, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "状态变更测试",
		AssigneeID: other.ID,
	})
	require.NoError(t, err)

	status := constants.TicketStatusInProgress
	_, err = env.tickets.Update(other, ticket.ID, &dto.UpdateTicketRequest{Status: &status})
	assertErrCode(t, err, pkgErrors.CodeForbidden)
}

func TestUpdateTicket_StatusChangeByReporter(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	reporter := createTestUser(t, db, "reporter", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, reporter, nil, nil)

	ticket, err := env.tickets.Create(reporter, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "状态流转",
		AssigneeID: reporter.ID,
	})
	require.NoError(t, err)

	status := constants.TicketStatusInProgress
	updated, err := env.tickets.Update(reporter, ticket.ID, &dto.UpdateTicketRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, constants.TicketStatusInProgress, updated.Status)

	var activities []*model.Activity
	require.NoError(t, db.Where("ticket_id = ? AND activity_type = ?",
		ticket.ID, constants.ActivityStatusChanged).Find(&activities).Error)
	require.Len(t, activities, 1)

	var oldValue, newValue map[string]string
	require.NoError(t, json.Unmarshal(activities[0].OldValue, &oldValue))
	require.NoError(t, json.Unmarshal(activities[0].NewValue, &newValue))
	assert.Equal(t, constants.TicketStatusCreated, oldValue["status"])
	assert.Equal(t, constants.TicketStatusInProgress, newValue["status"])
	assert.Equal(t, "Status changed from CREATED to IN_PROGRESS", activities[0].Description)
}

func TestUpdateTicket_AssigneeChangeNotifiesNewAssignee(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	reporter := createTestUser(t, db, "reporter", constants.RoleTeamLead, nil, nil)
	assignee := createTestUser(t, db, "assignee", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, reporter, nil, nil)

	ticket, err := env.tickets.Create(reporter, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "改派测试",
		AssigneeID: reporter.ID,
	})
	require.NoError(t, err)

	_, err = env.tickets.Update(reporter, ticket.ID, &dto.UpdateTicketRequest{AssigneeID: &assignee.ID})
	require.NoError(t, err)

	var activity model.Activity
	require.NoError(t, db.First(&activity, "ticket_id = ? AND activity_type = ?",
		ticket.ID, constants.ActivityAssigneeChanged).Error)
	assert.Equal(t, "Assigned to assignee", activity.Description)

	var notification model.Notification
	require.NoError(t, db.First(&notification, "user_id = ?", assignee.ID).Error)
	assert.Equal(t, "Ticket Assigned", notification.Title)
	assert.Equal(t, constants.NotificationTicketAssigned, notification.Type)
}

func TestUpdateTicket_PriorityChangeEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	bob := createTestUser(t, db, "bob", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, bob, nil, nil)

	ticket, err := env.tickets.Create(bob, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "高优先级缺陷",
		Type:       constants.TicketTypeBug,
		Priority:   constants.TicketPriorityHigh,
		AssigneeID: bob.ID,
	})
	require.NoError(t, err)

	feed, err := env.activities.GetTicketActivities(ticket.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, constants.ActivityCreated, feed[0].ActivityType)

	urgent := constants.TicketPriorityUrgent
	updated, err := env.tickets.Update(bob, ticket.ID, &dto.UpdateTicketRequest{Priority: &urgent})
	require.NoError(t, err)
	assert.Equal(t, constants.TicketPriorityUrgent, updated.Priority)

	feed, err = env.activities.GetTicketActivities(ticket.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	var priorityChanged *model.Activity
	for _, entry := range feed {
		if entry.ActivityType == constants.ActivityPriorityChanged {
			priorityChanged = &entry.Activity
		}
	}
	require.NotNil(t, priorityChanged)

	var oldValue, newValue map[string]string
	require.NoError(t, json.Unmarshal(priorityChanged.OldValue, &oldValue))
	require.NoError(t, json.Unmarshal(priorityChanged.NewValue, &newValue))
	assert.Equal(t, constants.TicketPriorityHigh, oldValue["priority"])
	assert.Equal(t, constants.TicketPriorityUrgent, newValue["priority"])
}

func TestDeleteTicket_Permissions(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	reporter := createTestUser(t, db, "reporter", constants.RoleUser, nil, nil)
	other := createTestUser(t, db, "other", constants.RoleTeamLead, nil, nil)
	project := createTestProject(t, db, reporter, nil, nil)

	ticket, err := env.tickets.Create(reporter, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "待删除",
		AssigneeID: reporter.ID,
	})
	require.NoError(t, err)

	err = env.tickets.Delete(other, ticket.ID)
	assertErrCode(t, err, pkgErrors.CodeForbidden)

	require.NoError(t, env.tickets.Delete(reporter, ticket.ID))

	var count int64
	require.NoError(t, db.Model(&model.Activity{}).
		Where("ticket_id = ?", ticket.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddTag_DuplicateConflict(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)
	tag := &model.Tag{Name: "frontend", Color: constants.DefaultTagColor}
	require.NoError(t, db.Create(tag).Error)

	ticket, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "标签冲突测试",
		AssigneeID: actor.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.tickets.AddTag(actor, ticket.ID, tag.ID))

	err = env.tickets.AddTag(actor, ticket.ID, tag.ID)
	assertErrCode(t, err, pkgErrors.CodeConflict)

	var count int64
	require.NoError(t, db.Model(&model.TicketTag{}).
		Where("ticket_id = ? AND tag_id = ?", ticket.ID, tag.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWatcher_DuplicateAndMissing(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	watcher := createTestUser(t, db, "bob", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)

	ticket, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "关注人测试",
		AssigneeID: actor.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.tickets.AddWatcher(actor, ticket.ID, watcher.ID))

	err = env.tickets.AddWatcher(actor, ticket.ID, watcher.ID)
	assertErrCode(t, err, pkgErrors.CodeConflict)

	require.NoError(t, env.tickets.RemoveWatcher(actor, ticket.ID, watcher.ID))

	err = env.tickets.RemoveWatcher(actor, ticket.ID, watcher.ID)
	assertErrCode(t, err, pkgErrors.CodeNotFound)
}

func TestAddComment_FanOutExcludesCommenter(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	watcher := createTestUser(t, db, "bob", constants.RoleUser, nil, nil)
	mentioned := createTestUser(t, db, "carol", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)

	ticket, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "评论通知测试",
		AssigneeID: actor.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.tickets.AddWatcher(actor, ticket.ID, watcher.ID))
	require.NoError(t, env.tickets.AddWatcher(actor, ticket.ID, actor.ID))

	comment, err := env.tickets.AddComment(actor, ticket.ID, &dto.AddCommentRequest{
		CommentText:    "进展同步",
		MentionedUsers: []string{mentioned.ID},
	}, nil)
	require.NoError(t, err)

	var watcherNotification model.Notification
	require.NoError(t, db.First(&watcherNotification,
		"user_id = ? AND type = ?", watcher.ID, constants.NotificationCommentAdded).Error)
	assert.Equal(t, "New Comment", watcherNotification.Title)
	assert.Equal(t, "alice added a comment to ticket: 评论通知测试", watcherNotification.Message)

	var mentionNotification model.Notification
	require.NoError(t, db.First(&mentionNotification,
		"user_id = ? AND type = ?", mentioned.ID, constants.NotificationMention).Error)
	require.NotNil(t, mentionNotification.RelatedEntityType)
	assert.Equal(t, constants.EntityComment, *mentionNotification.RelatedEntityType)
	require.NotNil(t, mentionNotification.RelatedEntityID)
	assert.Equal(t, comment.ID, *mentionNotification.RelatedEntityID)

	// 评论人自己虽是关注者, 不收通知
	var actorCount int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("user_id = ?", actor.ID).Count(&actorCount).Error)
	assert.Zero(t, actorCount)

	var activityCount int64
	require.NoError(t, db.Model(&model.Activity{}).
		Where("ticket_id = ? AND activity_type = ?", ticket.ID, constants.ActivityCommentAdded).
		Count(&activityCount).Error)
	assert.Equal(t, int64(1), activityCount)
}

func TestAddRelationship_TripleUnique(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)

	first, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID: project.ID, Title: "前置工单", AssigneeID: actor.ID,
	})
	require.NoError(t, err)
	second, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID: project.ID, Title: "后续工单", AssigneeID: actor.ID,
	})
	require.NoError(t, err)

	_, err = env.tickets.AddRelationship(actor, first.ID, &dto.AddRelationshipRequest{
		RelatedTicketID:  second.ID,
		RelationshipType: constants.RelationBlocks,
	})
	require.NoError(t, err)

	_, err = env.tickets.AddRelationship(actor, first.ID, &dto.AddRelationshipRequest{
		RelatedTicketID:  second.ID,
		RelationshipType: constants.RelationBlocks,
	})
	assertErrCode(t, err, pkgErrors.CodeConflict)
}

func TestLogTime_WritesActivity(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)

	ticket, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID: project.ID, Title: "工时测试", AssigneeID: actor.ID,
	})
	require.NoError(t, err)

	timeLog, err := env.tickets.LogTime(actor, ticket.ID, &dto.LogTimeRequest{Hours: 2.5})
	require.NoError(t, err)
	assert.Equal(t, 2.5, timeLog.Hours)
	assert.False(t, timeLog.LoggedDate.IsZero())

	var activity model.Activity
	require.NoError(t, db.First(&activity, "ticket_id = ? AND activity_type = ?",
		ticket.ID, constants.ActivityTimeLogged).Error)
	assert.Equal(t, "Time logged: 2.5 hours", activity.Description)
}

func TestListTickets_UserScope(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	alice := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	bob := createTestUser(t, db, "bob", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, alice, nil, nil)

	_, err := env.tickets.Create(alice, &dto.CreateTicketRequest{
		ProjectID: project.ID, Title: "alice的工单", AssigneeID: alice.ID,
	})
	require.NoError(t, err)
	_, err = env.tickets.Create(bob, &dto.CreateTicketRequest{
		ProjectID: project.ID, Title: "bob指派给alice", AssigneeID: alice.ID,
	})
	require.NoError(t, err)
	_, err = env.tickets.Create(bob, &dto.CreateTicketRequest{
		ProjectID: project.ID, Title: "bob自己的工单", AssigneeID: bob.ID,
	})
	require.NoError(t, err)

	items, total, err := env.tickets.List(alice, &dto.ListTicketsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}

func TestGetTicketDetail(t *testing.T) {
	db := setupTestDB(t)
	env := newTicketEnv(db)
	actor := createTestUser(t, db, "alice", constants.RoleUser, nil, nil)
	project := createTestProject(t, db, actor, nil, nil)
	tag := &model.Tag{Name: "api", Color: constants.DefaultTagColor}
	require.NoError(t, db.Create(tag).Error)

	ticket, err := env.tickets.Create(actor, &dto.CreateTicketRequest{
		ProjectID:  project.ID,
		Title:      "详情聚合测试",
		AssigneeID: actor.ID,
		Tags:       []string{tag.ID},
	})
	require.NoError(t, err)
	_, err = env.tickets.AddComment(actor, ticket.ID, &dto.AddCommentRequest{CommentText: "第一条"}, nil)
	require.NoError(t, err)

	detail, err := env.tickets.GetByID(actor, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "详情聚合测试", detail.Title)
	assert.Equal(t, "测试项目", detail.ProjectName)
	assert.Equal(t, "alice", detail.ReporterName)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "api", detail.Tags[0].Name)
	require.Len(t, detail.Comments, 1)
	// 活动流最新在前
	require.Len(t, detail.Activities, 2)
	assert.Equal(t, constants.ActivityCommentAdded, detail.Activities[0].ActivityType)
	assert.Equal(t, constants.ActivityCreated, detail.Activities[1].ActivityType)
}
