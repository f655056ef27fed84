package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipits/recap/common/llm"
	"github.com/shipits/recap/internal/http/dto"
	"github.com/shipits/recap/internal/service"
)

type SummaryHandler struct {
	summaries service.SummaryService
}

func NewSummaryHandler(summaries service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// Get serves the cached summary without triggering generation.
func (h *SummaryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, err := primitive.ObjectIDFromHex(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	cached, err := h.summaries.GetCached(ctx, projectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load cached summary", "error", err, "project_id", projectID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(cached))
}

// Generate serves the cached summary when fresh and regenerates it otherwise.
func (h *SummaryHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, err := primitive.ObjectIDFromHex(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	result, err := h.summaries.GetOrGenerate(ctx, projectID)
	if err != nil {
		h.writeGenerateError(c, projectID, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGenerateSummaryResponse(result))
}

func (h *SummaryHandler) writeGenerateError(c *gin.Context, projectID primitive.ObjectID, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	case errors.Is(err, llm.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "summary generation is not available"})
		return
	}

	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		slog.ErrorContext(ctx, "summary generation failed upstream",
			"error", err,
			"kind", upstream.Kind,
			"project_id", projectID.Hex())

		switch upstream.Kind {
		case llm.UpstreamRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "summary generation is rate limited, try again shortly"})
		case llm.UpstreamTimeout:
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "summary generation timed out"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate summary"})
		}
		return
	}

	slog.ErrorContext(ctx, "failed to generate summary", "error", err, "project_id", projectID.Hex())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate summary"})
}
