package http

import (
	"net/http"

	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/config"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"github.com/mauv0809/ace-ranking/internal/notifier"
	"github.com/mauv0809/ace-ranking/internal/processor"
)

type Server struct {
	Club           club.Club
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
}

// memberView is a roster entry with its ledger appearance count.
type memberView struct {
	club.Member
	GamesPlayed int `json:"gamesPlayed"`
}

// matchView is a ledger entry with names resolved against the current roster.
type matchView struct {
	club.MatchResult
	WinnerNames []string `json:"winnerNames"`
	LoserNames  []string `json:"loserNames"`
}

type registerRequest struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

type recordMatchRequest struct {
	WinnerIDs []string `json:"winnerIds"`
	LoserIDs  []string `json:"loserIds"`
	Score     string   `json:"score"`
	MatchType string   `json:"matchType"`
	CourtType string   `json:"courtType,omitempty"`
	CourtName string   `json:"courtName,omitempty"`
	Date      string   `json:"date,omitempty"`
}

type attendanceBody struct {
	Date      string   `json:"date"`
	MemberIDs []string `json:"memberIds"`
}

type selectedDateBody struct {
	Date string `json:"date"`
}

type errorBody struct {
	Error string `json:"error"`
}
