package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"

	"github.com/shipits/recap/common/id"
	"github.com/shipits/recap/common/llm"
	"github.com/shipits/recap/common/logger"
	"github.com/shipits/recap/internal/model"
	"github.com/shipits/recap/internal/queue"
	"github.com/shipits/recap/internal/store"
	"github.com/shipits/recap/internal/thread"
)

const (
	// A summary goes stale when activity volume moves by regenActivityDelta
	// items, when it ages past summaryMaxAge, or when the newest activity
	// item changes identity. The identity check catches edits-by-replacement
	// and deletions that leave the count within the delta.
	regenActivityDelta = 3
	summaryMaxAge      = 24 * time.Hour

	generationTemperature = 0.3
)

// NoActivityText is served for projects without comments or updates. The
// cache is neither read nor written for such projects.
const NoActivityText = "No activity on this project yet."

// ErrProjectNotFound is returned when the project does not exist
var ErrProjectNotFound = errors.New("project not found")

// CachedSummary is the read-only view of the summary cache. HasSummary is
// false when no summary has ever been generated for the project.
type CachedSummary struct {
	Summary      string
	LastUpdated  time.Time
	CommentCount int
	HasSummary   bool
}

// SummaryResult is the outcome of the check-and-maybe-regenerate flow.
// CommentCount carries the cache row's activity count (comments plus
// updates at generation time); UpdateCount is the update total read
// during this call.
type SummaryResult struct {
	Summary      string
	LastUpdated  time.Time
	CommentCount int
	UpdateCount  int
	Generated    bool
}

// SummaryService owns the thread summary cache for forum projects.
type SummaryService interface {
	// GetCached returns the cached summary without triggering generation.
	GetCached(ctx context.Context, projectID primitive.ObjectID) (*CachedSummary, error)
	// GetOrGenerate serves the cached summary when fresh and regenerates it
	// otherwise.
	GetOrGenerate(ctx context.Context, projectID primitive.ObjectID) (*SummaryResult, error)
}

// SummaryConfig bounds generation. Zero values fall back to defaults.
type SummaryConfig struct {
	MaxLength       int           // rune cap applied to generated text before persisting
	MaxTokens       int           // token cap passed to the completion provider
	GenerateTimeout time.Duration // wall-clock bound on one generation
}

type summaryService struct {
	projects  store.ProjectStore
	comments  store.CommentStore
	updates   store.ProjectUpdateStore
	summaries store.ThreadSummaryStore
	client    llm.Client // nil when no provider is configured
	producer  queue.Producer
	cfg       SummaryConfig
	metrics   *summaryMetrics
}

func NewSummaryService(
	projects store.ProjectStore,
	comments store.CommentStore,
	updates store.ProjectUpdateStore,
	summaries store.ThreadSummaryStore,
	client llm.Client,
	producer queue.Producer,
	cfg SummaryConfig,
) SummaryService {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = 2000
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 800
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}
	if producer == nil {
		producer = queue.NopProducer{}
	}
	return &summaryService{
		projects:  projects,
		comments:  comments,
		updates:   updates,
		summaries: summaries,
		client:    client,
		producer:  producer,
		cfg:       cfg,
		metrics:   newSummaryMetrics(),
	}
}

// NeedsRegeneration reports whether a cached summary is stale against the
// current activity count and the id of the newest activity item.
func NeedsRegeneration(existing *model.ThreadSummary, activityCount int, latestActivityID string) bool {
	if existing == nil {
		return true
	}

	delta := existing.CommentCount - activityCount
	if delta < 0 {
		delta = -delta
	}
	if delta >= regenActivityDelta {
		return true
	}

	if time.Since(existing.LastUpdated) > summaryMaxAge {
		return true
	}

	return latestActivityID != existing.LastCommentID
}

func (s *summaryService) GetCached(ctx context.Context, projectID primitive.ObjectID) (*CachedSummary, error) {
	row, err := s.summaries.GetByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &CachedSummary{}, nil
		}
		return nil, fmt.Errorf("loading summary: %w", err)
	}

	return &CachedSummary{
		Summary:      row.Summary,
		LastUpdated:  row.LastUpdated,
		CommentCount: row.CommentCount,
		HasSummary:   true,
	}, nil
}

func (s *summaryService) GetOrGenerate(ctx context.Context, projectID primitive.ObjectID) (*SummaryResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ProjectID: logger.Ptr(projectID.Hex()),
		Component: "recap.service.summary",
	})

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	comments, err := s.comments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}
	updates, err := s.updates.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading updates: %w", err)
	}

	if len(comments) == 0 && len(updates) == 0 {
		return &SummaryResult{Summary: NoActivityText}, nil
	}

	activityCount := len(comments) + len(updates)
	latestID := latestActivityID(comments, updates)

	existing, err := s.summaries.GetByProject(ctx, projectID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading summary: %w", err)
	}

	if existing != nil && !NeedsRegeneration(existing, activityCount, latestID) {
		s.metrics.cacheHits.Add(ctx, 1)
		slog.DebugContext(ctx, "summary cache hit", "cached_count", existing.CommentCount, "activity_count", activityCount)
		return &SummaryResult{
			Summary:      existing.Summary,
			LastUpdated:  existing.LastUpdated,
			CommentCount: existing.CommentCount,
			UpdateCount:  len(updates),
			Generated:    false,
		}, nil
	}

	return s.generate(ctx, project, comments, updates, activityCount, latestID)
}

func (s *summaryService) generate(
	ctx context.Context,
	project *model.Project,
	comments []model.Comment,
	updates []model.ProjectUpdate,
	activityCount int,
	latestID string,
) (*SummaryResult, error) {
	if s.client == nil {
		return nil, llm.ErrNotConfigured
	}

	genID := id.New()
	ctx = logger.WithLogFields(ctx, logger.LogFields{GenerationID: logger.Ptr(genID)})

	roots, orphans := thread.BuildHierarchy(comments)
	if len(orphans) > 0 {
		ids := make([]string, len(orphans))
		for i, o := range orphans {
			ids[i] = o.ID.Hex()
		}
		slog.WarnContext(ctx, "dropping replies with missing parents", "orphan_ids", ids)
	}
	transcript := thread.MergeTimeline(roots, updates)

	// Detach from the request so an aborted caller doesn't strand an API
	// call we pay for either way; the timeout still bounds the work.
	genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.GenerateTimeout)
	defer cancel()

	sc := logger.StartSpan(genCtx, "summary.generate")
	defer sc.End()
	genCtx = sc.Context()
	sc.SetAttributes(
		attribute.String("recap.project_id", project.ID.Hex()),
		attribute.Int("recap.activity_count", activityCount),
	)

	start := time.Now()
	completion, err := s.client.Complete(genCtx, llm.Request{
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   buildPrompt(project, transcript),
		MaxTokens:    s.cfg.MaxTokens,
		Temperature:  llm.Temp(generationTemperature),
	})
	if err != nil {
		sc.RecordError(err)
		s.metrics.upstreamFailures.Add(genCtx, 1)
		slog.ErrorContext(genCtx, "summary generation failed", "error", err, "model", s.client.Model())
		return nil, fmt.Errorf("generating summary: %w", err)
	}
	duration := time.Since(start)

	row := &model.ThreadSummary{
		ProjectID:     project.ID,
		Summary:       truncateRunes(completion.Text, s.cfg.MaxLength),
		CommentCount:  activityCount,
		LastCommentID: latestID,
		Model:         s.client.Model(),
		GenerationID:  genID,
		LastUpdated:   time.Now().UTC(),
	}
	if err := s.summaries.Upsert(genCtx, row); err != nil {
		return nil, fmt.Errorf("persisting summary: %w", err)
	}

	s.metrics.generations.Add(genCtx, 1)
	s.metrics.generationDuration.Record(genCtx, duration.Seconds())

	s.publishGenerated(genCtx, row, len(comments), len(updates), duration)

	slog.InfoContext(genCtx, "summary generated",
		"activity_count", activityCount,
		"prompt_tokens", completion.PromptTokens,
		"completion_tokens", completion.CompletionTokens,
		"duration_ms", duration.Milliseconds(),
		"summary_preview", logger.Truncate(row.Summary, 200))

	return &SummaryResult{
		Summary:      row.Summary,
		LastUpdated:  row.LastUpdated,
		CommentCount: activityCount,
		UpdateCount:  len(updates),
		Generated:    true,
	}, nil
}

func (s *summaryService) publishGenerated(ctx context.Context, row *model.ThreadSummary, commentCount, updateCount int, duration time.Duration) {
	evt := queue.SummaryGeneratedEvent{
		ProjectID:    row.ProjectID.Hex(),
		GenerationID: row.GenerationID,
		Model:        row.Model,
		CommentCount: commentCount,
		UpdateCount:  updateCount,
		DurationMS:   duration.Milliseconds(),
	}
	if err := s.producer.Publish(ctx, evt); err != nil {
		slog.WarnContext(ctx, "failed to publish summary event", "error", err)
	}
}

// latestActivityID returns the id of the newest activity item. When the
// newest comment and newest update share a timestamp the comment wins,
// keeping the result deterministic.
func latestActivityID(comments []model.Comment, updates []model.ProjectUpdate) string {
	var latestComment *model.Comment
	for i := range comments {
		if latestComment == nil || comments[i].CreatedAt.After(latestComment.CreatedAt) {
			latestComment = &comments[i]
		}
	}

	var latestUpdate *model.ProjectUpdate
	for i := range updates {
		if latestUpdate == nil || updates[i].CreatedAt.After(latestUpdate.CreatedAt) {
			latestUpdate = &updates[i]
		}
	}

	switch {
	case latestComment == nil && latestUpdate == nil:
		return ""
	case latestComment == nil:
		return latestUpdate.ID.Hex()
	case latestUpdate == nil:
		return latestComment.ID.Hex()
	case latestUpdate.CreatedAt.After(latestComment.CreatedAt):
		return latestUpdate.ID.Hex()
	default:
		return latestComment.ID.Hex()
	}
}

// truncateRunes caps s at max runes without splitting a codepoint.
func truncateRunes(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
