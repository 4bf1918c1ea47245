package routes

import (
	"webresume_backend/internal/handlers"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options - то, что зависит от конфигурации окружения
type Options struct {
	// MediaDir - каталог локального хранилища, раздается по /media. Пусто - не раздавать.
	MediaDir string
	Swagger  bool
}

// RegisterRoutes регистрирует все HTTP маршруты.
// API доступно и под /api, и от корня: старые клиенты формы ходят без префикса.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, opts Options) {
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	for _, base := range []*gin.RouterGroup{ginRouter.Group("/api"), &ginRouter.RouterGroup} {
		registerAPI(base, appHandlers)
	}

	if opts.MediaDir != "" {
		ginRouter.Static("/media", opts.MediaDir)
		logger.Info("Serving local media", "dir", opts.MediaDir)
	}

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func registerAPI(api *gin.RouterGroup, appHandlers *handlers.AppHandlers) {
	appHandlers.AuthHandler.RegisterRoutes(api)
	appHandlers.ContactHandler.RegisterRoutes(api)
	appHandlers.MessageHandler.RegisterRoutes(api, middleware.RequireStaff())
	appHandlers.ProfileHandler.RegisterRoutes(api, middleware.RequireAuth())

	// Резюме и проекты: чтение открыто, запись через гейт
	gated := api.Group("", middleware.WriteGate())
	{
		appHandlers.ResumeHandler.RegisterRoutes(gated)
		appHandlers.ProjectHandler.RegisterRoutes(gated)
	}
}
