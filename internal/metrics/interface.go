package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMembersRegistered()
	IncMembersRemoved()
	IncMatchesRecorded(matchType string)
	IncDrawsRecorded()
	IncPersistFailures()
	ObserveProcessingDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetRosterSize(size int)
	SetStartupTime(duration float64)
}
