// Package services implements the application use cases on top of the
// repository ports and the naming core: candidate search with the strict
// pass gate and bounded ranking, and direct evaluation of one complete
// name.
package services

import (
	"context"

	domain "github.com/ireum-lab/api/internal/domain"
)

// NamingService exposes the two request surfaces of the naming core.
type NamingService interface {
	// Search enumerates, scores, and ranks candidates for a bracket
	// query. Empty results are not errors.
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error)
	// Evaluate scores one fully specified name. The strict search gate
	// does not apply here; the response carries the aggregate verdict.
	Evaluate(ctx context.Context, cmd EvaluateCommand) (domain.SeedResponse, error)
}

// EvaluateCommand is the input to direct evaluation: either a complete
// bracket query or an explicit name, never both.
type EvaluateCommand struct {
	Query  string
	Name   *domain.NameInput
	Birth  *domain.BirthInfo
	Gender string
}

// SajuProvider computes the birth-chart summary consumed by the saju
// frame scorer. The engine treats the provider as untrusted: a failure is
// replaced with the fallback summary at the service boundary.
type SajuProvider interface {
	Analyze(ctx context.Context, birth domain.BirthInfo, gender string) (domain.SajuSummary, error)
}
