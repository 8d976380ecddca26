package driving

import (
	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
)

// SelectionService converts an active text selection into page-relative
// highlight bands.
type SelectionService interface {
	// Extract returns nil when there is nothing to highlight.
	Extract(sel driven.Selection) *domain.SelectionInfo

	// ExtractStrict is Extract with the reason: ErrEmptySelection or
	// ErrUnresolvedHost.
	ExtractStrict(sel driven.Selection) (*domain.SelectionInfo, error)
}
