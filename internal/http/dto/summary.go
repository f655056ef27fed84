package dto

import (
	"time"

	"github.com/shipits/recap/internal/service"
)

// Field names stay camelCase to match the forum's existing JS clients.

type SummaryResponse struct {
	Summary      string     `json:"summary"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"`
	CommentCount int        `json:"commentCount"`
	HasSummary   bool       `json:"hasSummary"`
}

func ToSummaryResponse(cached *service.CachedSummary) SummaryResponse {
	resp := SummaryResponse{
		Summary:      cached.Summary,
		CommentCount: cached.CommentCount,
		HasSummary:   cached.HasSummary,
	}
	if cached.HasSummary {
		t := cached.LastUpdated
		resp.LastUpdated = &t
	}
	return resp
}

type GenerateSummaryResponse struct {
	Summary      string     `json:"summary"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"`
	CommentCount int        `json:"commentCount"`
	UpdateCount  int        `json:"updateCount"`
	Generated    bool       `json:"generated"`
}

func ToGenerateSummaryResponse(result *service.SummaryResult) GenerateSummaryResponse {
	resp := GenerateSummaryResponse{
		Summary:      result.Summary,
		CommentCount: result.CommentCount,
		UpdateCount:  result.UpdateCount,
		Generated:    result.Generated,
	}
	if !result.LastUpdated.IsZero() {
		t := result.LastUpdated
		resp.LastUpdated = &t
	}
	return resp
}
