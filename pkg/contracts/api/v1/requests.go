// Package api contains the request and response bodies of the HTTP API.
// Version v1 represents the current stable API version.
package api

import (
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// CanonicalizeRequest asks for raw values to be mapped through one vocabulary
type CanonicalizeRequest struct {
	Field  string   `json:"field" validate:"required,oneof=investment_type industry city"`
	Values []string `json:"values" validate:"required,min=1,max=10000"`
}

// CanonicalizeResponse pairs each input value with its label
type CanonicalizeResponse struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
	Labels []string `json:"labels"`
}

// RunSummaryResponse is the persisted summary of one run
type RunSummaryResponse struct {
	RunID   string                   `json:"run_id"`
	Summary domain.SummaryStatistics `json:"summary"`
}

// RunRecordsResponse is the persisted records of one run
type RunRecordsResponse struct {
	RunID   string                 `json:"run_id"`
	Count   int                    `json:"count"`
	Records []domain.FundingRecord `json:"records"`
}
