package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shipits/recap/internal/http/handler"
)

// SummaryRouter sets up the per-project summary routes
// - GET reads the cache only and never calls the completion provider
// - POST runs the staleness check and regenerates when needed
func SummaryRouter(rg *gin.RouterGroup, h *handler.SummaryHandler) {
	rg.GET("/:projectId/summary", h.Get)
	rg.POST("/:projectId/summary/generate", h.Generate)
}
