package http

import (
	"net/http"

	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/config"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"github.com/mauv0809/ace-ranking/internal/notifier"
	"github.com/mauv0809/ace-ranking/internal/processor"
)

func NewServer(c club.Club, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor) *Server {
	server := &Server{
		Club:           c,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackVerified := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /members", Chain(s.ListMembersHandler(), paramsMiddleware))
	s.Router.Handle("POST /members", Chain(s.RegisterMemberHandler(), paramsMiddleware))
	s.Router.Handle("GET /members/{id}", Chain(s.MemberDetailHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /members/{id}", Chain(s.RemoveMemberHandler(), paramsMiddleware))

	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.RecordMatchHandler(), paramsMiddleware))

	s.Router.Handle("GET /attendance/{date}", Chain(s.GetAttendanceHandler(), paramsMiddleware))
	s.Router.Handle("PUT /attendance/{date}", Chain(s.SetAttendanceHandler(), paramsMiddleware))
	s.Router.Handle("POST /attendance/{date}/toggle/{id}", Chain(s.ToggleAttendanceHandler(), paramsMiddleware))
	s.Router.Handle("GET /attendance/{date}/selectable", Chain(s.SelectableHandler(), paramsMiddleware))

	s.Router.Handle("GET /selected-date", Chain(s.GetSelectedDateHandler(), paramsMiddleware))
	s.Router.Handle("PUT /selected-date", Chain(s.SetSelectedDateHandler(), paramsMiddleware))

	s.Router.Handle("GET /verify", Chain(s.VerifyHandler(), paramsMiddleware))
	s.Router.Handle("POST /leaderboard/publish", Chain(s.PublishLeaderboardHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackVerified))
	s.Router.Handle("POST /slack/command/member-stats", Chain(s.MemberStatsCommandHandler(), paramsMiddleware, slackVerified))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
