package stats

import "github.com/mauv0809/ace-ranking/internal/club"

// Outcome of a match from one member's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
	OutcomeDraw Outcome = "DRAW"
)

// Record aggregates results over a set of matches.
type Record struct {
	Played    int     `json:"played"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Draws     int     `json:"draws"`
	Points    int     `json:"points"`
	WinRate   float64 `json:"winRate"`
	GamesWon  int     `json:"gamesWon"`
	GamesLost int     `json:"gamesLost"`
}

// HistoryEntry is one ledger row annotated for a single member.
type HistoryEntry struct {
	Match         club.MatchResult `json:"match"`
	Outcome       Outcome          `json:"outcome"`
	PartnerIDs    []string         `json:"partnerIds"`
	OpponentIDs   []string         `json:"opponentIds"`
	PartnerNames  []string         `json:"partnerNames"`
	OpponentNames []string         `json:"opponentNames"`
}

// Detail is the full breakdown for one member.
type Detail struct {
	Member      club.Member               `json:"member"`
	OnRoster    bool                      `json:"onRoster"`
	GamesPlayed int                       `json:"gamesPlayed"`
	Overall     Record                    `json:"overall"`
	ByMatchType map[club.MatchType]Record `json:"byMatchType"`
	ByCourtType map[club.CourtType]Record `json:"byCourtType"`
	ByDate      map[string]Record         `json:"byDate"`
	History     []HistoryEntry            `json:"history"`
}

// Mismatch reports a member whose cached totals disagree with the ledger.
type Mismatch struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Cached   Record `json:"cached"`
	Ledger   Record `json:"ledger"`
}
