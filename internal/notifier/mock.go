package notifier

import (
	"sync"

	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/stats"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultNotificationCalls []struct {
		Result club.MatchResult
		DryRun bool
	}
	SendLeaderboardCalls []struct {
		Gender  club.Gender
		Ranking []club.Member
		DryRun  bool
	}
	SendMemberStatsCalls []struct {
		Detail stats.Detail
		Query  string
	}
	SendMemberNotFoundCalls []string

	// Spies
	SendResultNotificationFunc       func(result club.MatchResult, roster club.Roster, dryRun bool) error
	SendLeaderboardFunc              func(gender club.Gender, ranking []club.Member, dryRun bool) error
	FormatLeaderboardResponseFunc    func(gender club.Gender, ranking []club.Member) (any, error)
	FormatMemberStatsResponseFunc    func(detail stats.Detail, query string) (any, error)
	FormatMemberNotFoundResponseFunc func(query string, suggestions []club.Suggestion) (any, error)

	// Call records for format functions
	LastLeaderboardResponse     any
	LastMemberStatsResponse     any
	LastMemberNotFoundResponse  any
	LastMemberNotFoundSuggested []club.Suggestion
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendMemberStatsCalls = nil
	m.SendMemberNotFoundCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastMemberStatsResponse = nil
	m.LastMemberNotFoundResponse = nil
	m.LastMemberNotFoundSuggested = nil
}

func (m *Mock) SendResultNotification(result club.MatchResult, roster club.Roster, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Result club.MatchResult
		DryRun bool
	}{result, dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(result, roster, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(gender club.Gender, ranking []club.Member, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Gender  club.Gender
		Ranking []club.Member
		DryRun  bool
	}{gender, ranking, dryRun})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(gender, ranking, dryRun)
	}
	return nil
}

func (m *Mock) SendMemberStats(detail stats.Detail, query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMemberStatsCalls = append(m.SendMemberStatsCalls, struct {
		Detail stats.Detail
		Query  string
	}{detail, query})
	return nil
}

func (m *Mock) SendMemberNotFound(query string, suggestions []club.Suggestion, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMemberNotFoundCalls = append(m.SendMemberNotFoundCalls, query)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(gender club.Gender, ranking []club.Member) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(gender, ranking)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatMemberStatsResponse(detail stats.Detail, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatMemberStatsResponseFunc != nil {
		resp, err := m.FormatMemberStatsResponseFunc(detail, query)
		m.LastMemberStatsResponse = resp
		return resp, err
	}
	return "formatted_member_stats", nil
}

func (m *Mock) FormatMemberNotFoundResponse(query string, suggestions []club.Suggestion) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastMemberNotFoundSuggested = suggestions
	if m.FormatMemberNotFoundResponseFunc != nil {
		resp, err := m.FormatMemberNotFoundResponseFunc(query, suggestions)
		m.LastMemberNotFoundResponse = resp
		return resp, err
	}
	return "formatted_member_not_found", nil
}

// ResultNotifications returns how many result notifications were sent.
func (m *Mock) ResultNotifications() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendResultNotificationCalls)
}
