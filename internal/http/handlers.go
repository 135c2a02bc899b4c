package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/stats"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ListMembersHandler serves the roster. With ?gender= it serves that gender's
// ranking instead; ?sort=name orders the roster by name.
func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members := []club.Member(s.Club.Members())

		if g := r.URL.Query().Get("gender"); g != "" {
			gender, err := club.ParseGender(g)
			if err != nil {
				writeError(w, err)
				return
			}
			members = stats.Ranking(members, gender)
		} else if r.URL.Query().Get("sort") == "name" {
			members = stats.SortByName(members)
		}

		played := stats.GamesPlayedIndex(s.Club.Matches())
		views := make([]memberView, 0, len(members))
		for _, m := range members {
			views = append(views, memberView{Member: m, GamesPlayed: played[m.ID]})
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func (s *Server) RegisterMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		gender, err := club.ParseGender(body.Gender)
		if err != nil {
			writeError(w, err)
			return
		}

		member, err := s.Club.Register(r.Context(), body.Name, gender)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, member)
	}
}

// MemberDetailHandler serves the full breakdown for one member. Former
// members that still appear in the ledger are served under the placeholder name.
func (s *Server) MemberDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		detail := stats.DetailFor(s.Club.Members(), s.Club.Matches(), id)
		if !detail.OnRoster && detail.GamesPlayed == 0 {
			writeError(w, fmt.Errorf("%w: %s", club.ErrUnknownMember, id))
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

// RemoveMemberHandler deletes a member. The confirm=true query flag answers
// the confirmation question.
func (s *Server) RemoveMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		confirmed := r.URL.Query().Get("confirm") == "true"

		err := s.Club.Remove(r.Context(), id, club.ConfirmFunc(func(message string) bool {
			log.Info("Removal confirmation", "memberID", id, "question", message, "confirmed", confirmed)
			return confirmed
		}))
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var matches []club.MatchResult
		if date := r.URL.Query().Get("date"); date != "" {
			matches = s.Club.MatchesOn(date)
		} else {
			matches = s.Club.Matches()
		}

		roster := s.Club.Members()
		views := make([]matchView, 0, len(matches))
		for _, m := range matches {
			views = append(views, matchView{
				MatchResult: m,
				WinnerNames: roster.Names(m.WinnerIDs),
				LoserNames:  roster.Names(m.LoserIDs),
			})
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body recordMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		matchType, err := club.ParseMatchType(body.MatchType)
		if err != nil {
			writeError(w, err)
			return
		}
		courtType, err := club.ParseCourtType(body.CourtType)
		if err != nil {
			writeError(w, err)
			return
		}

		result, err := s.Processor.RecordMatch(r.Context(), club.MatchRequest{
			WinnerIDs: body.WinnerIDs,
			LoserIDs:  body.LoserIDs,
			Score:     body.Score,
			MatchType: matchType,
			CourtType: courtType,
			CourtName: body.CourtName,
			Date:      body.Date,
		}, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func (s *Server) GetAttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.PathValue("date")
		writeJSON(w, http.StatusOK, attendanceBody{Date: date, MemberIDs: s.Club.Attendance(date)})
	}
}

func (s *Server) SetAttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.PathValue("date")
		var body attendanceBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		present, err := s.Club.SetAttendance(r.Context(), date, body.MemberIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, attendanceBody{Date: date, MemberIDs: present})
	}
}

func (s *Server) ToggleAttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.PathValue("date")
		present, err := s.Club.ToggleAttendance(r.Context(), date, r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, attendanceBody{Date: date, MemberIDs: present})
	}
}

// SelectableHandler lists the members present on a date who may play the
// requested match type.
func (s *Server) SelectableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchType, err := club.ParseMatchType(r.URL.Query().Get("matchType"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Club.Selectable(r.PathValue("date"), matchType))
	}
}

func (s *Server) GetSelectedDateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, selectedDateBody{Date: s.Club.SelectedDate()})
	}
}

func (s *Server) SetSelectedDateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body selectedDateBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		s.Club.SelectDate(body.Date)
		log.Info("Selected date changed", "date", s.Club.SelectedDate())
		writeJSON(w, http.StatusOK, selectedDateBody{Date: s.Club.SelectedDate()})
	}
}

// VerifyHandler compares every member's cached totals with a full ledger scan.
func (s *Server) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mismatches := stats.Verify(s.Club.Members(), s.Club.Matches())
		if len(mismatches) > 0 {
			log.Warn("Cached totals disagree with the ledger", "members", len(mismatches))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"consistent": len(mismatches) == 0,
			"mismatches": mismatches,
		})
	}
}

// PublishLeaderboardHandler posts the ranking to Slack, for one gender when
// ?gender= is given and for both otherwise.
func (s *Server) PublishLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		var err error
		if g := r.URL.Query().Get("gender"); g != "" {
			gender, parseErr := club.ParseGender(g)
			if parseErr != nil {
				writeError(w, parseErr)
				return
			}
			err = s.Processor.PublishLeaderboard(gender, isDryRun)
		} else {
			err = s.Processor.PublishLeaderboards(isDryRun)
		}
		if err != nil {
			log.Error("Failed to publish leaderboard", "error", err)
			http.Error(w, "Failed to publish leaderboard", http.StatusBadGateway)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Leaderboard published.")
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
// The command text picks the gender and defaults to the men's ranking.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		gender := club.GenderMale
		if text := strings.TrimSpace(r.FormValue("text")); text != "" {
			parsed, err := club.ParseGender(text)
			if err != nil {
				http.Error(w, "Usage: /leaderboard [male|female]", http.StatusBadRequest)
				return
			}
			gender = parsed
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(gender, stats.Ranking(s.Club.Members(), gender))
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// MemberStatsCommandHandler returns a handler for the /member-stats Slack command.
func (s *Server) MemberStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Member name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received member stats command", "query", query)

		var (
			msg any
			err error
		)
		if member, ok := s.Club.FindByName(query); ok {
			detail := stats.DetailFor(s.Club.Members(), s.Club.Matches(), member.ID)
			msg, err = s.Notifier.FormatMemberStatsResponse(detail, query)
		} else {
			suggestions := club.Suggest(s.Club.Members(), query)
			log.Warn("Could not find member", "query", query, "suggestions", len(suggestions))
			msg, err = s.Notifier.FormatMemberNotFoundResponse(query, suggestions)
		}

		if err != nil {
			http.Error(w, "Failed to format member stats", http.StatusInternalServerError)
			log.Error("Failed to format member stats", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps club errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case club.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, club.ErrDeclined):
		status = http.StatusConflict
	case errors.Is(err, club.ErrUnknownMember):
		status = http.StatusNotFound
	default:
		log.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
