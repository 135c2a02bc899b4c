// Package stats derives rankings and per-member breakdowns from the roster
// and the match ledger. Every function is pure.
package stats

import (
	"sort"

	"github.com/mauv0809/ace-ranking/internal/club"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ranking returns the members of the given gender ordered by points, then
// win rate, then wins, all descending. Ties keep roster order.
func Ranking(members []club.Member, gender club.Gender) []club.Member {
	ranked := make([]club.Member, 0, len(members))
	for _, m := range members {
		if m.Gender == gender {
			ranked = append(ranked, m)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		return a.Wins > b.Wins
	})
	return ranked
}

// SortByName returns a copy of members ordered by name using Korean collation.
func SortByName(members []club.Member) []club.Member {
	sorted := append(make([]club.Member, 0, len(members)), members...)
	c := collate.New(language.Korean)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})
	return sorted
}

// GamesPlayed counts the ledger entries that mention id on either side.
func GamesPlayed(ledger []club.MatchResult, id string) int {
	n := 0
	for _, m := range ledger {
		if m.Involves(id) {
			n++
		}
	}
	return n
}

// GamesPlayedIndex counts ledger appearances for every id in one pass.
func GamesPlayedIndex(ledger []club.MatchResult) map[string]int {
	index := make(map[string]int)
	for _, m := range ledger {
		for _, id := range m.WinnerIDs {
			index[id]++
		}
		for _, id := range m.LoserIDs {
			index[id]++
		}
	}
	return index
}

// Recompute rebuilds a member's totals from the ledger alone.
func Recompute(ledger []club.MatchResult, id string) Record {
	var r Record
	for _, m := range ledger {
		if outcome, ok := outcomeFor(m, id); ok {
			r.add(m, outcome)
		}
	}
	return r
}

// DetailFor scans the ledger for every match involving id. A member that is no
// longer on the roster still gets a breakdown under the placeholder name.
func DetailFor(roster club.Roster, ledger []club.MatchResult, id string) Detail {
	member, onRoster := roster.Find(id)
	if !onRoster {
		member = club.Member{ID: id, Name: club.UnknownName}
	}

	d := Detail{
		Member:      member,
		OnRoster:    onRoster,
		ByMatchType: make(map[club.MatchType]Record),
		ByCourtType: make(map[club.CourtType]Record),
		ByDate:      make(map[string]Record),
		History:     make([]HistoryEntry, 0),
	}

	for _, m := range ledger {
		outcome, ok := outcomeFor(m, id)
		if !ok {
			continue
		}
		d.Overall.add(m, outcome)
		d.ByMatchType[m.MatchType] = addTo(d.ByMatchType[m.MatchType], m, outcome)
		if m.CourtType != "" {
			d.ByCourtType[m.CourtType] = addTo(d.ByCourtType[m.CourtType], m, outcome)
		}
		d.ByDate[m.Date] = addTo(d.ByDate[m.Date], m, outcome)

		own, other := m.WinnerIDs, m.LoserIDs
		if m.OnLosingSide(id) {
			own, other = m.LoserIDs, m.WinnerIDs
		}
		partners := without(own, id)
		d.History = append(d.History, HistoryEntry{
			Match:         m,
			Outcome:       outcome,
			PartnerIDs:    partners,
			OpponentIDs:   append([]string{}, other...),
			PartnerNames:  roster.Names(partners),
			OpponentNames: roster.Names(other),
		})
	}
	d.GamesPlayed = d.Overall.Played

	sort.SliceStable(d.History, func(i, j int) bool {
		return d.History[i].Match.Date > d.History[j].Match.Date
	})
	return d
}

// Verify compares every member's cached totals with a full ledger scan.
func Verify(members []club.Member, ledger []club.MatchResult) []Mismatch {
	mismatches := make([]Mismatch, 0)
	for _, m := range members {
		cached := Record{
			Played:  m.Played(),
			Wins:    m.Wins,
			Losses:  m.Losses,
			Draws:   m.Draws,
			Points:  m.Points,
			WinRate: m.WinRate,
		}
		fresh := Recompute(ledger, m.ID)
		if cached.Played != fresh.Played ||
			cached.Wins != fresh.Wins ||
			cached.Losses != fresh.Losses ||
			cached.Draws != fresh.Draws ||
			cached.Points != fresh.Points ||
			cached.WinRate != fresh.WinRate {
			mismatches = append(mismatches, Mismatch{MemberID: m.ID, Name: m.Name, Cached: cached, Ledger: fresh})
		}
	}
	return mismatches
}

func outcomeFor(m club.MatchResult, id string) (Outcome, bool) {
	switch {
	case !m.Involves(id):
		return "", false
	case m.IsDraw:
		return OutcomeDraw, true
	case m.OnWinningSide(id):
		return OutcomeWin, true
	default:
		return OutcomeLoss, true
	}
}

func (r *Record) add(m club.MatchResult, outcome Outcome) {
	a, b := m.Scores()
	high, low := a, b
	if low > high {
		high, low = low, high
	}

	r.Played++
	switch outcome {
	case OutcomeDraw:
		r.Draws++
		r.Points += club.DrawPoints
		r.GamesWon += high
		r.GamesLost += low
	case OutcomeWin:
		r.Wins++
		r.Points += club.WinPoints
		r.GamesWon += high
		r.GamesLost += low
	default:
		r.Losses++
		r.Points += club.LossPoints
		r.GamesWon += low
		r.GamesLost += high
	}
	r.WinRate = club.WinRate(r.Wins, r.Losses, r.Draws)
}

func addTo(r Record, m club.MatchResult, outcome Outcome) Record {
	r.add(m, outcome)
	return r
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
