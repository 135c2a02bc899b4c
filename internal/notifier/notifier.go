package notifier

import (
	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about club events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendResultNotification(result club.MatchResult, roster club.Roster, dryRun bool) error
	// For slash commands and scheduled posts
	SendLeaderboard(gender club.Gender, ranking []club.Member, dryRun bool) error
	SendMemberStats(detail stats.Detail, query string, dryRun bool) error
	SendMemberNotFound(query string, suggestions []club.Suggestion, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(gender club.Gender, ranking []club.Member) (any, error)
	FormatMemberStatsResponse(detail stats.Detail, query string) (any, error)
	FormatMemberNotFoundResponse(query string, suggestions []club.Suggestion) (any, error)
}
