package services

import (
	"context"

	domain "github.com/ireum-lab/api/internal/domain"
)

// FallbackSajuProvider is the default provider wiring: a uniform element
// distribution, source "fallback", and no analysis output. The saju frame
// scorer degrades to neutral sub-scores on the nil output.
type FallbackSajuProvider struct{}

// Analyze implements SajuProvider.
func (FallbackSajuProvider) Analyze(context.Context, domain.BirthInfo, string) (domain.SajuSummary, error) {
	return domain.FallbackSajuSummary(), nil
}
