package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/hummbl-dev/models-api/internal/api/http"
	"github.com/hummbl-dev/models-api/internal/api/http/middleware"
	modelshttp "github.com/hummbl-dev/models-api/internal/models/http"
	"github.com/hummbl-dev/models-api/internal/models/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Models      *service.ModelService
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	modelsHandler := modelshttp.New(dep.Models)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORS()...)
	r.Use(gin.CustomRecovery(modelsHandler.Recovered))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Models.Cache(), dep.Redis)
	healthHandler.RegisterRoutes(r)

	modelsHandler.Register(r)

	return r
}
