package service

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/config"
	"ticketdesk/internal/pkg/database"
	"ticketdesk/internal/pkg/logger"
	"ticketdesk/internal/repository"
	pkgErrors "ticketdesk/pkg/errors"
)

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{
				Secret:             "test-secret",
				AccessTokenExpire:  3600,
				RefreshTokenExpire: 86400,
			},
		},
	}
	_ = logger.Init(&config.LogConfig{Level: "error", Format: "console", Output: "stdout"})
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// ticketEnv 工单服务及其全部依赖, 共用一个测试库
type ticketEnv struct {
	db            *gorm.DB
	tickets       TicketService
	notifications NotificationService
	activities    ActivityService
}

func newTicketEnv(db *gorm.DB) *ticketEnv {
	ticketRepo := repository.NewTicketRepository(db)
	activitySvc := NewActivityService(repository.NewActivityRepository(db), ticketRepo)
	notificationSvc := NewNotificationService(repository.NewNotificationRepository(db))
	ticketSvc := NewTicketService(
		ticketRepo,
		repository.NewProjectRepository(db),
		repository.NewUserRepository(db),
		repository.NewCommentRepository(db),
		repository.NewTagRepository(db),
		repository.NewWatcherRepository(db),
		repository.NewRelationshipRepository(db),
		repository.NewTimeLogRepository(db),
		activitySvc,
		notificationSvc,
	)
	return &ticketEnv{
		db:            db,
		tickets:       ticketSvc,
		notifications: notificationSvc,
		activities:    activitySvc,
	}
}

var userSeq int

func createTestUser(t *testing.T, db *gorm.DB, name, role string, orgID, teamID *string) *model.User {
	t.Helper()
	userSeq++
	user := &model.User{
		Name:           name,
		Email:          fmt.Sprintf("%s-%d@example.com", name, userSeq),
		Password:       "$2a$10$abcdefghijklmnopqrstuv",
		Role:           role,
		OrganizationID: orgID,
		TeamID:         teamID,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, creator *model.User, teamID, orgID *string) *model.Project {
	t.Helper()
	project := &model.Project{
		Name:           "测试项目",
		CreatedBy:      creator.ID,
		TeamID:         teamID,
		OrganizationID: orgID,
		IsActive:       true,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func assertErrCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var appErr *pkgErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
