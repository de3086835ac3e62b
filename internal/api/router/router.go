package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"ticketdesk/internal/api/handler"
	"ticketdesk/internal/api/middleware"
	"ticketdesk/internal/pkg/config"
	"ticketdesk/internal/repository"
	"ticketdesk/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 附件静态访问
	r.Static("/uploads", cfg.Upload.Dir)

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tagRepo := repository.NewTagRepository(db)
	watcherRepo := repository.NewWatcherRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	timeLogRepo := repository.NewTimeLogRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// 初始化Service
	authService := service.NewAuthService(userRepo, refreshTokenRepo)
	userService := service.NewUserService(userRepo, orgRepo, teamRepo)
	orgService := service.NewOrganizationService(orgRepo)
	teamService := service.NewTeamService(teamRepo, orgRepo, userRepo)
	projectService := service.NewProjectService(projectRepo, teamRepo, userRepo)
	activityService := service.NewActivityService(activityRepo, ticketRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	ticketService := service.NewTicketService(
		ticketRepo, projectRepo, userRepo, commentRepo,
		tagRepo, watcherRepo, relationshipRepo, timeLogRepo,
		activityService, notificationService,
	)
	commentService := service.NewCommentService(commentRepo, ticketRepo)
	tagService := service.NewTagService(tagRepo)
	templateService := service.NewTemplateService(templateRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	teamHandler := handler.NewTeamHandler(teamService)
	projectHandler := handler.NewProjectHandler(projectService)
	ticketHandler := handler.NewTicketHandler(ticketService, activityService)
	commentHandler := handler.NewCommentHandler(commentService)
	tagHandler := handler.NewTagHandler(tagService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	templateHandler := handler.NewTemplateHandler(templateService)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证相关(无需token)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// 需要认证的路由
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(userRepo))
		{
			// 用户管理
			userGroup := authed.Group("/users")
			{
				userGroup.GET("", userHandler.List)
				userGroup.POST("", userHandler.Create)
				userGroup.GET("/:id", userHandler.Get)
				userGroup.PUT("/:id", userHandler.Update)
				userGroup.DELETE("/:id", userHandler.Delete)
				userGroup.POST("/:id/reset-password", userHandler.ResetPassword)
			}

			// 组织管理
			orgGroup := authed.Group("/organizations")
			{
				orgGroup.GET("", orgHandler.List)
				orgGroup.POST("", orgHandler.Create)
				orgGroup.GET("/:id", orgHandler.Get)
				orgGroup.PUT("/:id", orgHandler.Update)
				orgGroup.DELETE("/:id", orgHandler.Delete)
			}

			// 团队管理
			teamGroup := authed.Group("/teams")
			{
				teamGroup.GET("", teamHandler.List)
				teamGroup.POST("", teamHandler.Create)
				teamGroup.GET("/:id", teamHandler.Get)
				teamGroup.PUT("/:id", teamHandler.Update)
				teamGroup.DELETE("/:id", teamHandler.Delete)
			}

			// 项目管理
			projectGroup := authed.Group("/projects")
			{
				projectGroup.GET("", projectHandler.List)
				projectGroup.POST("", projectHandler.Create)
				projectGroup.GET("/:id", projectHandler.Get)
				projectGroup.PUT("/:id", projectHandler.Update)
				projectGroup.DELETE("/:id", projectHandler.Delete)
				projectGroup.POST("/:id/members", projectHandler.AddMember)
				projectGroup.DELETE("/:id/members/:userId", projectHandler.RemoveMember)
			}

			// 工单管理
			ticketGroup := authed.Group("/tickets")
			{
				ticketGroup.GET("", ticketHandler.List)
				ticketGroup.POST("", ticketHandler.Create)
				ticketGroup.GET("/:id", ticketHandler.Get)
				ticketGroup.PUT("/:id", ticketHandler.Update)
				ticketGroup.DELETE("/:id", ticketHandler.Delete)

				ticketGroup.GET("/:id/comments", commentHandler.ListByTicket)
				ticketGroup.POST("/:id/comments", ticketHandler.AddComment)
				ticketGroup.GET("/:id/activities", ticketHandler.Activities)
				ticketGroup.POST("/:id/tags", ticketHandler.AddTag)
				ticketGroup.DELETE("/:id/tags/:tagId", ticketHandler.RemoveTag)
				ticketGroup.POST("/:id/watchers", ticketHandler.AddWatcher)
				ticketGroup.DELETE("/:id/watchers/:userId", ticketHandler.RemoveWatcher)
				ticketGroup.POST("/:id/relationships", ticketHandler.AddRelationship)
				ticketGroup.POST("/:id/time-logs", ticketHandler.LogTime)
			}

			// 评论管理
			commentGroup := authed.Group("/comments")
			{
				commentGroup.PUT("/:id", commentHandler.Update)
				commentGroup.DELETE("/:id", commentHandler.Delete)
			}

			// 标签管理
			tagGroup := authed.Group("/tags")
			{
				tagGroup.GET("", tagHandler.List)
				tagGroup.POST("", tagHandler.Create)
				tagGroup.GET("/:id", tagHandler.Get)
				tagGroup.PUT("/:id", tagHandler.Update)
				tagGroup.DELETE("/:id", tagHandler.Delete)
			}

			// 通知
			notificationGroup := authed.Group("/notifications")
			{
				notificationGroup.GET("", notificationHandler.List)
				notificationGroup.GET("/unread-count", notificationHandler.UnreadCount)
				notificationGroup.PUT("/read-all", notificationHandler.MarkAllAsRead)
				notificationGroup.PUT("/:id/read", notificationHandler.MarkAsRead)
				notificationGroup.DELETE("/:id", notificationHandler.Delete)
			}

			// 工单模板
			templateGroup := authed.Group("/templates")
			{
				templateGroup.GET("", templateHandler.List)
				templateGroup.POST("", templateHandler.Create)
				templateGroup.GET("/:id", templateHandler.Get)
				templateGroup.PUT("/:id", templateHandler.Update)
				templateGroup.DELETE("/:id", templateHandler.Delete)
			}
		}
	}

	return r
}
