// Package analyzer defines the boundary to the external document
// understanding service that pre-fills a draft from a receipt image.
// The service is treated as unreliable and optional: callers must cope
// with any error by falling back to manual entry.
package analyzer

import (
	"context"

	"github.com/patrickhernande1993/novo-lar/internal/core"
	"github.com/patrickhernande1993/novo-lar/internal/receipt"
)

// Analyzer extracts expense fields from an encoded receipt. A failed
// call carries no retry semantics; it simply returns an error.
type Analyzer interface {
	Analyze(ctx context.Context, att receipt.Attachment) (core.Extraction, error)
}
