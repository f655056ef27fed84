package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shipits/recap/internal/http/handler"
	"github.com/shipits/recap/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services, db handler.Pinger) {
	healthHandler := handler.NewHealthHandler(db)
	router.GET("/health", healthHandler.Check)

	v1 := router.Group("/api/v1")
	{
		summaryHandler := handler.NewSummaryHandler(services.Summaries())
		SummaryRouter(v1.Group("/projects"), summaryHandler)
	}
}
