package club

import (
	"strings"
	"sync"
	"time"

	"github.com/mauv0809/ace-ranking/internal/metrics"
)

// UnknownName is shown in place of a member id that is no longer on the roster.
const UnknownName = "unknown"

// Gender of a member. Drives ranking tabs and match-type eligibility.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ParseGender accepts MALE/FEMALE (any case) and the M/F shorthands.
func ParseGender(s string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE", "M":
		return GenderMale, nil
	case "FEMALE", "F":
		return GenderFemale, nil
	}
	return "", ErrInvalidGender
}

// MatchType is the doubles category a match was played in.
type MatchType string

const (
	MatchTypeMaleDoubles   MatchType = "MALE_DOUBLES"
	MatchTypeFemaleDoubles MatchType = "FEMALE_DOUBLES"
	MatchTypeMixedDoubles  MatchType = "MIXED_DOUBLES"
)

// MatchTypes lists every match type in display order.
var MatchTypes = []MatchType{MatchTypeMaleDoubles, MatchTypeFemaleDoubles, MatchTypeMixedDoubles}

var matchTypeLabels = map[MatchType]string{
	MatchTypeMaleDoubles:   "남복",
	MatchTypeFemaleDoubles: "여복",
	MatchTypeMixedDoubles:  "혼복",
}

// Valid reports whether t is a known match type.
func (t MatchType) Valid() bool {
	_, ok := matchTypeLabels[t]
	return ok
}

// Label is the short name the club uses on the score sheet.
func (t MatchType) Label() string {
	if label, ok := matchTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Eligible reports whether a member of gender g may be picked for this match type.
// Mixed doubles accepts everyone.
func (t MatchType) Eligible(g Gender) bool {
	switch t {
	case MatchTypeMaleDoubles:
		return g == GenderMale
	case MatchTypeFemaleDoubles:
		return g == GenderFemale
	}
	return true
}

// ParseMatchType accepts the enum name (any case) or the score sheet label.
func ParseMatchType(s string) (MatchType, error) {
	s = strings.TrimSpace(s)
	upper := MatchType(strings.ToUpper(s))
	if upper.Valid() {
		return upper, nil
	}
	for t, label := range matchTypeLabels {
		if label == s {
			return t, nil
		}
	}
	return "", ErrInvalidMatchType
}

// CourtType is the court surface. Optional on a match.
type CourtType string

const (
	CourtTypeGrass CourtType = "GRASS"
	CourtTypeHard  CourtType = "HARD"
	CourtTypeClay  CourtType = "CLAY"
)

// CourtTypes lists every court surface in display order.
var CourtTypes = []CourtType{CourtTypeGrass, CourtTypeHard, CourtTypeClay}

var courtTypeLabels = map[CourtType]string{
	CourtTypeGrass: "인잔",
	CourtTypeHard:  "하드",
	CourtTypeClay:  "클레이",
}

func (t CourtType) Valid() bool {
	_, ok := courtTypeLabels[t]
	return ok
}

func (t CourtType) Label() string {
	if label, ok := courtTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseCourtType returns the empty court type for blank input.
func ParseCourtType(s string) (CourtType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	upper := CourtType(strings.ToUpper(s))
	if upper.Valid() {
		return upper, nil
	}
	for t, label := range courtTypeLabels {
		if label == s {
			return t, nil
		}
	}
	return "", ErrInvalidCourtType
}

// Member is a registered club member together with their running totals.
type Member struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Gender  Gender  `json:"gender"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Draws   int     `json:"draws"`
	WinRate float64 `json:"winRate"`
	Points  int     `json:"points"`
}

// Played is the number of games counted in the running totals.
func (m Member) Played() int {
	return m.Wins + m.Losses + m.Draws
}

// MatchResult is one immutable row of the match ledger.
type MatchResult struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	WinnerIDs []string  `json:"winnerIds"`
	LoserIDs  []string  `json:"loserIds"`
	Score     string    `json:"score"`
	MatchType MatchType `json:"matchType"`
	CourtType CourtType `json:"courtType,omitempty"`
	CourtName string    `json:"courtName,omitempty"`
	IsDraw    bool      `json:"isDraw"`
}

// Scores returns the parsed score components.
func (m MatchResult) Scores() (int, int) {
	return ParseScore(m.Score)
}

// OnWinningSide reports whether id is listed among the winners.
func (m MatchResult) OnWinningSide(id string) bool {
	return containsID(m.WinnerIDs, id)
}

// OnLosingSide reports whether id is listed among the losers.
func (m MatchResult) OnLosingSide(id string) bool {
	return containsID(m.LoserIDs, id)
}

// Involves reports whether id appears on either side.
func (m MatchResult) Involves(id string) bool {
	return m.OnWinningSide(id) || m.OnLosingSide(id)
}

// MatchRequest carries the inputs of a match-recording action.
type MatchRequest struct {
	WinnerIDs []string  `json:"winnerIds"`
	LoserIDs  []string  `json:"loserIds"`
	Score     string    `json:"score"`
	MatchType MatchType `json:"matchType"`
	CourtType CourtType `json:"courtType,omitempty"`
	CourtName string    `json:"courtName,omitempty"`
	Date      string    `json:"date,omitempty"`
}

// Attendance maps a calendar date to the member ids marked present that day.
type Attendance map[string][]string

// State is everything the club persists.
type State struct {
	Members    []Member      `json:"members"`
	Matches    []MatchResult `json:"matches"`
	Attendance Attendance    `json:"attendance"`
}

// Roster is an ordered member list with total name lookups.
type Roster []Member

// Find returns the member with the given id.
func (r Roster) Find(id string) (Member, bool) {
	for _, m := range r {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Name resolves id to a display name, falling back to UnknownName.
func (r Roster) Name(id string) string {
	if m, ok := r.Find(id); ok {
		return m.Name
	}
	return UnknownName
}

// Names resolves every id in ids.
func (r Roster) Names(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, r.Name(id))
	}
	return names
}

// club is the in-memory roster, ledger and attendance for one session.
type club struct {
	mu sync.Mutex

	repo    Repository
	metrics metrics.Metrics

	now    func() time.Time
	newID  func() string
	loc    *time.Location
	strict bool

	members      []Member
	matches      []MatchResult
	attendance   Attendance
	selectedDate string
}
