package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	membersRegistered   int
	membersRemoved      int
	matchesRecorded     map[string]int
	drawsRecorded       int
	persistFailures     int
	processingDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	rosterSize          int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchesRecorded:     make(map[string]int),
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMembersRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.membersRegistered++
}

func (m *Mock) IncMembersRemoved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.membersRemoved++
}

func (m *Mock) IncMatchesRecorded(matchType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded[matchType]++
}

func (m *Mock) IncDrawsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drawsRecorded++
}

func (m *Mock) IncPersistFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistFailures++
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetRosterSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterSize = size
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MembersRegistered returns the number of times IncMembersRegistered was called.
func (m *Mock) MembersRegistered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.membersRegistered
}

// MembersRemoved returns the number of times IncMembersRemoved was called.
func (m *Mock) MembersRemoved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.membersRemoved
}

// MatchesRecorded returns how many matches of the given type were recorded.
func (m *Mock) MatchesRecorded(matchType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded[matchType]
}

// DrawsRecorded returns the number of times IncDrawsRecorded was called.
func (m *Mock) DrawsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drawsRecorded
}

// PersistFailures returns the number of times IncPersistFailures was called.
func (m *Mock) PersistFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistFailures
}

// ProcessingDurations returns every observed processing duration.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64{}, m.processingDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// RosterSize returns the last value passed to SetRosterSize.
func (m *Mock) RosterSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterSize
}
