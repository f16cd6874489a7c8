package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crime-detection/internal/auth"
	"github.com/BruksfildServices01/crime-detection/internal/config"
	"github.com/BruksfildServices01/crime-detection/internal/handlers"
	infraRepo "github.com/BruksfildServices01/crime-detection/internal/infra/repository"
	"github.com/BruksfildServices01/crime-detection/internal/metrics"
	"github.com/BruksfildServices01/crime-detection/internal/middleware"
	"github.com/BruksfildServices01/crime-detection/internal/models"
	"github.com/BruksfildServices01/crime-detection/internal/notify"
	"github.com/BruksfildServices01/crime-detection/internal/storage"
	ucNotification "github.com/BruksfildServices01/crime-detection/internal/usecase/notification"
	ucShift "github.com/BruksfildServices01/crime-detection/internal/usecase/shift"
	ucUser "github.com/BruksfildServices01/crime-detection/internal/usecase/user"
	"github.com/BruksfildServices01/crime-detection/internal/validators"
)

// Dependencies are the long-lived services built in main; they own
// resources that need closing on shutdown.
type Dependencies struct {
	DB         *gorm.DB
	Config     *config.Config
	Log        *zap.Logger
	Tokens     *auth.TokenIssuer
	Blacklist  auth.Blacklist
	Dispatcher *notify.Dispatcher
	Detection  handlers.DetectionService
	Archive    storage.Archive
	Metrics    *metrics.Metrics
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.Tracing(),
		middleware.RequestLogger(deps.Log),
		gin.Recovery(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(deps.DB)
	shiftRepo := infraRepo.NewShiftGormRepository(deps.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(deps.DB)

	// ======================================================
	// USE CASES — USERS
	// ======================================================
	var domainCheck ucUser.DomainCheck
	if cfg.CheckEmailDomain {
		domainCheck = validators.NewEmailDomainChecker(nil, 0).Check
	}

	signupUC := ucUser.NewSignup(userRepo, domainCheck)
	loginUC := ucUser.NewLogin(userRepo, deps.Tokens)
	logoutUC := ucUser.NewLogout(deps.Blacklist)
	updateProfileUC := ucUser.NewUpdateProfile(userRepo)

	// ======================================================
	// USE CASES — SHIFTS
	// ======================================================
	createShiftUC := ucShift.NewCreateShift(shiftRepo)
	listShiftsUC := ucShift.NewListShifts(shiftRepo)
	getShiftUC := ucShift.NewGetShift(shiftRepo)
	updateShiftUC := ucShift.NewUpdateShift(shiftRepo)
	deleteShiftUC := ucShift.NewDeleteShift(shiftRepo)
	approveShiftUC := ucShift.NewApproveShift(shiftRepo, deps.Dispatcher, cfg.Timezone)

	// ======================================================
	// USE CASES — NOTIFICATIONS
	// ======================================================
	createNotificationUC := ucNotification.NewCreateNotification(notificationRepo, userRepo)
	listNotificationsUC := ucNotification.NewListNotifications(notificationRepo)
	getNotificationUC := ucNotification.NewGetNotification(notificationRepo)
	markReadUC := ucNotification.NewMarkNotificationRead(notificationRepo)
	deleteNotificationUC := ucNotification.NewDeleteNotification(notificationRepo)
	deleteAllNotificationsUC := ucNotification.NewDeleteAllNotifications(notificationRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(signupUC, loginUC, logoutUC)
	meHandler := handlers.NewMeHandler(updateProfileUC)

	shiftHandler := handlers.NewShiftHandler(
		createShiftUC,
		listShiftsUC,
		getShiftUC,
		updateShiftUC,
		deleteShiftUC,
		approveShiftUC,
	)

	notificationHandler := handlers.NewNotificationHandler(
		createNotificationUC,
		listNotificationsUC,
		getNotificationUC,
		markReadUC,
		deleteNotificationUC,
		deleteAllNotificationsUC,
	)

	detectionHandler := handlers.NewDetectionHandler(
		deps.Detection,
		deps.Archive,
		deps.Metrics,
		deps.Log,
	)

	// ======================================================
	// PLATFORM
	// ======================================================
	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group(cfg.APIPrefix)
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(deps.Tokens, deps.Blacklist, userRepo))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/auth/users/me", meHandler.GetMe)
			secured.PATCH("/users/me", meHandler.UpdateMe)

			secured.GET("/shifts", shiftHandler.List)
			secured.POST("/shifts", shiftHandler.Create)
			secured.GET("/shifts/:id", shiftHandler.Get)
			secured.PATCH("/shifts/:id", shiftHandler.Update)
			secured.DELETE("/shifts/:id", shiftHandler.Delete)

			secured.GET("/notifications", notificationHandler.List)
			secured.DELETE("/notifications", notificationHandler.DeleteAll)
			secured.GET("/notifications/:id", notificationHandler.Get)
			secured.PATCH("/notifications/:id/mark-read", notificationHandler.MarkRead)
			secured.DELETE("/notifications/:id", notificationHandler.Delete)

			secured.POST("/detection/video", detectionHandler.DetectVideo)
			secured.POST("/detection/image", detectionHandler.DetectImage)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := secured.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.PATCH("/shifts/:id/approve", shiftHandler.Approve)
			admin.POST("/notifications", notificationHandler.Create)
		}
	}
}
