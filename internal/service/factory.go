package service

import (
	"github.com/shipits/recap/common/llm"
	"github.com/shipits/recap/internal/queue"
	"github.com/shipits/recap/internal/store"
)

type Services struct {
	stores   *store.Stores
	client   llm.Client
	producer queue.Producer
	summary  SummaryConfig
}

type ServicesConfig struct {
	Stores   *store.Stores
	Client   llm.Client // nil disables generation
	Producer queue.Producer
	Summary  SummaryConfig
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		stores:   cfg.Stores,
		client:   cfg.Client,
		producer: cfg.Producer,
		summary:  cfg.Summary,
	}
}

func (s *Services) Summaries() SummaryService {
	return NewSummaryService(
		s.stores.Projects(),
		s.stores.Comments(),
		s.stores.ProjectUpdates(),
		s.stores.ThreadSummaries(),
		s.client,
		s.producer,
		s.summary,
	)
}
