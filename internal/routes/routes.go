package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"field-service/internal/controllers"
	"field-service/internal/services"
	"field-service/pkg/middleware"
	"field-service/pkg/service"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Orders  *zap.Logger
	Journal *zap.Logger
}

// Services are built by the caller; Journal is nil when the journal is disabled.
type Services struct {
	OrderActions services.OrderActionServiceInterface
	Journal      services.JournalServiceInterface
}

func InitRouter(e *echo.Echo, jwtSvc service.JWTService, svcs Services, loggers *Loggers) {
	loggers.Main.Info("InitRouter: registering routes")

	e.GET("/healthz", controllers.Health)

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	orderActionController := controllers.NewOrderActionController(svcs.OrderActions, loggers.Orders)
	runOrderActionRouter(secureGroup, orderActionController)

	if svcs.Journal != nil {
		journalController := controllers.NewJournalController(svcs.Journal, loggers.Journal)
		runJournalRouter(secureGroup, journalController)
	}

	loggers.Main.Info("InitRouter: routes registered")
}
