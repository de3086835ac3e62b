package constants

// TicketType 工单类型
const (
	TicketTypeTask       = "TASK"
	TicketTypeBug        = "BUG"
	TicketTypeIssue      = "ISSUE"
	TicketTypeSuggestion = "SUGGESTION"
)

// TicketStatus 工单状态
const (
	TicketStatusCreated    = "CREATED"
	TicketStatusInProgress = "IN_PROGRESS"
	TicketStatusDependency = "DEPENDENCY"
	TicketStatusHold       = "HOLD"
	TicketStatusSolved     = "SOLVED"
	TicketStatusClosed     = "CLOSED"
)

// TicketPriority 工单优先级
const (
	TicketPriorityLow    = "LOW"
	TicketPriorityMedium = "MEDIUM"
	TicketPriorityHigh   = "HIGH"
	TicketPriorityUrgent = "URGENT"
)

// ActivityType 工单活动类型
const (
	ActivityCreated           = "CREATED"
	ActivityStatusChanged     = "STATUS_CHANGED"
	ActivityAssigneeChanged   = "ASSIGNEE_CHANGED"
	ActivityPriorityChanged   = "PRIORITY_CHANGED"
	ActivityFieldUpdated      = "FIELD_UPDATED"
	ActivityCommentAdded      = "COMMENT_ADDED"
	ActivityTagAdded          = "TAG_ADDED"
	ActivityTagRemoved        = "TAG_REMOVED"
	ActivityWatcherAdded      = "WATCHER_ADDED"
	ActivityWatcherRemoved    = "WATCHER_REMOVED"
	ActivityRelationshipAdded = "RELATIONSHIP_ADDED"
	ActivityTimeLogged        = "TIME_LOGGED"
	ActivityAttachmentAdded   = "ATTACHMENT_ADDED"
)

// NotificationType 通知类型
const (
	NotificationTicketAssigned = "ticket_assigned"
	NotificationMention        = "mention"
	NotificationCommentAdded   = "comment_added"
	NotificationSLABreach      = "sla_breach"
)

// RelationshipType 工单关联类型
const (
	RelationBlocks    = "BLOCKS"
	RelationBlockedBy = "BLOCKED_BY"
	RelationDuplicate = "DUPLICATE"
	RelationRelatesTo = "RELATES_TO"
	RelationParent    = "PARENT"
	RelationChild     = "CHILD"
)

// 通知关联实体类型
const (
	EntityTicket  = "ticket"
	EntityComment = "comment"
)

// 默认标签颜色
const DefaultTagColor = "#3B82F6"

// ValidTicketTypes 合法的工单类型集合
var ValidTicketTypes = []string{TicketTypeTask, TicketTypeBug, TicketTypeIssue, TicketTypeSuggestion}

// ValidTicketStatuses 合法的工单状态集合
var ValidTicketStatuses = []string{
	TicketStatusCreated, TicketStatusInProgress, TicketStatusDependency,
	TicketStatusHold, TicketStatusSolved, TicketStatusClosed,
}

// ValidTicketPriorities 合法的工单优先级集合
var ValidTicketPriorities = []string{
	TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent,
}

// ValidRelationshipTypes 合法的关联类型集合
var ValidRelationshipTypes = []string{
	RelationBlocks, RelationBlockedBy, RelationDuplicate,
	RelationRelatesTo, RelationParent, RelationChild,
}
