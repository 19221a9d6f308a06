package telemetry

import "context"

type ITelemetry interface {
	IndexSwapExecutions(ctx context.Context) error
}

// IndexMetrics receives the highest block the indexer has scanned.
type IndexMetrics interface {
	SetIndexedBlock(block uint64)
}
