package processor

import "github.com/mauv0809/ace-ranking/internal/metrics"

// Processor records matches and publishes their consequences.
type Processor struct {
	club     Club
	notifier Notifier
	metrics  metrics.Metrics
}
