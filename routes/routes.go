package routes

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/config"
	"github.com/sandeshj07/event-management-backend/database"
	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/internal/auth"
	"github.com/sandeshj07/event-management-backend/internal/category"
	"github.com/sandeshj07/event-management-backend/internal/coin"
	"github.com/sandeshj07/event-management-backend/internal/comment"
	"github.com/sandeshj07/event-management-backend/internal/event"
	"github.com/sandeshj07/event-management-backend/internal/message"
	"github.com/sandeshj07/event-management-backend/internal/notification"
	"github.com/sandeshj07/event-management-backend/internal/registration"
	"github.com/sandeshj07/event-management-backend/internal/reports"
	"github.com/sandeshj07/event-management-backend/internal/wishlist"
	"github.com/sandeshj07/event-management-backend/middleware"
)

// registrationChecker adapts the registration store to the event
// handler's viewer-state lookup.
type registrationChecker struct {
	repo registration.Repository
}

func (rc registrationChecker) IsRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	_, err := rc.repo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Setup wires every module and mounts the route tree on r
func Setup(r *gin.Engine, cfg *config.Config) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Printf("warning: could not create uploads directory: %v", err)
	}
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	// ========== Categories ==========
	categoryRepo := category.NewRepository(database.DB)
	categorySvc := category.NewService(categoryRepo, auditSvc)
	categoryHandler := category.NewHandler(categorySvc, cfg)

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, authRepo, auditSvc)
	eventHandler := event.NewHandler(eventSvc, cfg)

	// ========== Registrations ==========
	registrationRepo := registration.NewRepository(database.DB)
	registrationSvc := registration.NewService(registrationRepo, auditSvc)
	registrationHandler := registration.NewHandler(registrationSvc)
	eventHandler.Registrations = registrationChecker{repo: registrationRepo}

	// ========== Wishlist ==========
	wishlistRepo := wishlist.NewRepository(database.DB)
	wishlistSvc := wishlist.NewService(wishlistRepo, eventRepo, auditSvc)
	wishlistHandler := wishlist.NewHandler(wishlistSvc)

	// ========== Comments ==========
	commentRepo := comment.NewRepository(database.DB)
	commentSvc := comment.NewService(commentRepo, eventRepo, auditSvc)
	commentHandler := comment.NewHandler(commentSvc)

	// ========== Admin Messages ==========
	messageRepo := message.NewRepository(database.DB)
	messageSvc := message.NewService(messageRepo, auditSvc)
	messageHandler := message.NewHandler(messageSvc)

	// ========== Coins ==========
	coinRepo := coin.NewRepository(database.DB)
	coinSvc := coin.NewService(coinRepo, authRepo, auditSvc)
	coinHandler := coin.NewHandler(coinSvc)

	// ========== Notifications ==========
	notificationRepo := notification.NewRepository(database.DB)
	notificationSvc := notification.NewService(notificationRepo, notification.NewFCMChannel())
	notificationHandler := notification.NewHandler(notificationSvc)
	notification.StartKafkaConsumer(context.Background(), notificationSvc, authRepo, registrationRepo)

	// ========== Reports ==========
	reportsRepo := reports.NewRepository(database.DB)
	reportsSvc := reports.NewService(reportsRepo, reports.NewExporter(), auditSvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	// ---------- Public routes (anonymous welcome) ----------
	public := api.Group("/")
	public.Use(middleware.OptionalAuth(cfg, authSvc))
	{
		public.GET("/categories", categoryHandler.ListCategories)
		public.GET("/categories/:id", categoryHandler.GetCategory)
		public.GET("/events", eventHandler.ListPublicEvents)
		public.GET("/events/:id", eventHandler.GetPublicEvent)
		public.GET("/events/:id/comments", commentHandler.ListByEvent)
		public.POST("/contact", messageHandler.Contact)
	}

	// ---------- Authenticated routes ----------
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		protected.POST("/events/:id/join", registrationHandler.Join)
		protected.GET("/registrations/mine", registrationHandler.MyRegistrations)
		protected.DELETE("/registrations/:id", registrationHandler.Cancel)

		protected.POST("/events/:id/wishlist", wishlistHandler.Add)
		protected.GET("/wishlist/mine", wishlistHandler.MyWishlist)
		protected.DELETE("/wishlist/:id", wishlistHandler.Remove)

		protected.POST("/events/:id/comments", commentHandler.Add)
		protected.DELETE("/comments/:id", commentHandler.Delete)

		protected.POST("/messages", messageHandler.Send)
		protected.GET("/messages/mine", messageHandler.MyMessages)
		protected.GET("/messages/:id", messageHandler.Get)

		protected.GET("/coins/mine", coinHandler.MyCoins)

		protected.GET("/notifications", notificationHandler.ListMine)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.POST("/notifications/devices", notificationHandler.RegisterDevice)
		protected.DELETE("/notifications/devices/:token", notificationHandler.UnregisterDevice)
	}

	// ---------- Staff routes ----------
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireStaff())
	{
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		admin.POST("/events", eventHandler.CreateEvent)
		admin.GET("/events", eventHandler.ListEvents)
		admin.GET("/events/completed", eventHandler.ListCompletedEvents)
		admin.GET("/events/:id", eventHandler.GetEvent)
		admin.PUT("/events/:id", eventHandler.UpdateEvent)
		admin.PATCH("/events/:id/status", eventHandler.UpdateEventStatus)
		admin.DELETE("/events/:id", eventHandler.DeleteEvent)

		admin.GET("/events/:id/members", registrationHandler.ListEventMembers)
		admin.PATCH("/registrations/:id/attendance", registrationHandler.UpdateAttendance)

		admin.GET("/wishlist", wishlistHandler.ListAll)

		admin.GET("/messages", messageHandler.Inbox)
		admin.POST("/messages/:id/respond", messageHandler.Respond)

		admin.POST("/coins", coinHandler.Award)
		admin.GET("/coins", coinHandler.ListAll)
		admin.GET("/coins/users/:id", coinHandler.UserBalance)

		admin.GET("/notifications/logs", notificationHandler.ListLogs)

		admin.GET("/reports/events/:id/roster", reportsHandler.ExportRoster)
		admin.GET("/reports/attendance", reportsHandler.ExportAttendanceSummary)
		admin.GET("/reports/coins", reportsHandler.ExportCoinSummary)

		admin.GET("/auditlogs", auditHandler.GetAuditLogs)
		admin.GET("/auditlogs/:id", auditHandler.GetAuditLogByID)
	}
}
