package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MembersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranking_members_registered_total",
			Help: "The total number of members registered.",
		}),
		MembersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranking_members_removed_total",
			Help: "The total number of members removed from the roster.",
		}),
		MatchesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ranking_matches_recorded_total",
			Help: "The total number of match results recorded, by match type.",
		}, []string{"match_type"}),
		DrawsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranking_draws_recorded_total",
			Help: "The total number of recorded matches that ended level.",
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranking_persist_failures_total",
			Help: "The total number of state saves that failed after a mutation.",
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ranking_match_processing_duration_seconds",
			Help:    "The duration of recording a match including notification.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranking_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranking_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		RosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ranking_roster_size",
			Help: "The number of members currently on the roster.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ranking_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MembersRegistered,
		s.MembersRemoved,
		s.MatchesRecorded,
		s.DrawsRecorded,
		s.PersistFailures,
		s.ProcessingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.RosterSize,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMembersRegistered() {
	s.MembersRegistered.Inc()
}

func (s *Service) IncMembersRemoved() {
	s.MembersRemoved.Inc()
}

func (s *Service) IncMatchesRecorded(matchType string) {
	s.MatchesRecorded.WithLabelValues(matchType).Inc()
}

func (s *Service) IncDrawsRecorded() {
	s.DrawsRecorded.Inc()
}

func (s *Service) IncPersistFailures() {
	s.PersistFailures.Inc()
}

func (s *Service) ObserveProcessingDuration(duration float64) {
	s.ProcessingDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetRosterSize(size int) {
	s.RosterSize.Set(float64(size))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
