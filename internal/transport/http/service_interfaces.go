package http

import (
	"context"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/canonical"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/dataprocessing"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/services"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// TransformServiceInterface runs the cleaning pipeline
type TransformServiceInterface interface {
	Transform(ctx context.Context, table *dataprocessing.Table, source string) (*dataprocessing.Result, error)
}

// VocabularyServiceInterface exposes the canonical vocabularies
type VocabularyServiceInterface interface {
	Describe() []canonical.Description
	Fields() []string
	Canonicalize(field string, values []string) ([]string, error)
}

// HealthServiceInterface reports service health
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
}

// RunStore reads persisted runs back
type RunStore interface {
	Summary(ctx context.Context, runID string) (domain.SummaryStatistics, error)
	Rounds(ctx context.Context, runID string) ([]domain.FundingRecord, error)
}
