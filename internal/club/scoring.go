package club

import (
	"strconv"
	"strings"
)

// Points awarded per outcome.
const (
	WinPoints  = 3
	DrawPoints = 1
	LossPoints = 0
)

// ParseScore splits an "A-B" score. A component without leading digits
// counts as 0, so "6-x" parses as (6, 0).
func ParseScore(score string) (int, int) {
	left, right, _ := strings.Cut(score, "-")
	return parseComponent(left), parseComponent(right)
}

func parseComponent(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// WinRate is wins as a percentage of all games, 0 when nothing was played.
func WinRate(wins, losses, draws int) float64 {
	total := wins + losses + draws
	if total <= 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

// applyResult folds one ledger entry into a member's running totals.
// It returns false when the member did not play in the match.
func applyResult(m *Member, result MatchResult) bool {
	onWin := result.OnWinningSide(m.ID)
	onLoss := result.OnLosingSide(m.ID)
	if !onWin && !onLoss {
		return false
	}

	switch {
	case result.IsDraw:
		m.Draws++
		m.Points += DrawPoints
	case onWin:
		m.Wins++
		m.Points += WinPoints
	default:
		m.Losses++
		m.Points += LossPoints
	}
	m.WinRate = WinRate(m.Wins, m.Losses, m.Draws)
	return true
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// cleanIDs trims ids, drops blanks and keeps the first occurrence of each.
func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || containsID(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
