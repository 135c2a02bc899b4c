package processor

import (
	"context"

	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/notifier"
)

// Club defines the club operations required by the processor.
type Club interface {
	RecordMatch(ctx context.Context, req club.MatchRequest) (club.MatchResult, error)
	Members() club.Roster
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
