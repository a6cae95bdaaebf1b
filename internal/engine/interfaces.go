package engine

import (
	"context"

	"github.com/tuanmtrinh/streamrip-gui/internal/model"
)

// Engine is the external collaborator that turns queue URLs into concrete
// media and performs the long-running download phase.
type Engine interface {
	// Resolve maps each URL to downloadable media metadata, preserving input
	// order. It honors ctx cancellation and deadlines.
	Resolve(ctx context.Context, urls []string) ([]model.ResolvedItem, error)

	// Download fetches every resolved item. It checks ctx between items and
	// reports each item's final outcome through onItemDone, keyed by the
	// item's position in items. A per-item failure is reported and skipped;
	// only cancellation or an engine-wide fault returns an error.
	Download(ctx context.Context, items []model.ResolvedItem, onItemDone func(index int, err error)) error
}
