package club

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	minSuggestConfidence = 0.3
	maxSuggestions       = 5
)

// Suggestion is a roster member whose name resembles a lookup query.
type Suggestion struct {
	Member     Member   `json:"member"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// Suggest ranks roster members by how closely their name matches query,
// best first. Members below a minimum confidence are left out.
func Suggest(roster Roster, query string) []Suggestion {
	q := normalizeName(query)
	if q == "" {
		return nil
	}

	var suggestions []Suggestion
	for _, m := range roster {
		name := normalizeName(m.Name)
		score := nameSimilarity(q, name)
		if score <= minSuggestConfidence {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Member:     m,
			Confidence: score,
			Reasons:    matchReasons(q, name),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func nameSimilarity(query, name string) float64 {
	scores := []float64{stringSimilarity(query, name), tokenSimilarity(query, name)}
	if strings.Contains(name, query) {
		scores = append(scores, 1.0)
	}

	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

// normalizeName lowercases, NFC-composes and strips everything but letters
// and single spaces.
func normalizeName(name string) string {
	name = strings.ToLower(norm.NFC.String(strings.TrimSpace(name)))

	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := max(len(ra), len(rb))
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

func tokenSimilarity(a, b string) float64 {
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	matched := 0
	for _, x := range ta {
		for _, y := range tb {
			if stringSimilarity(x, y) > 0.8 {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(max(len(ta), len(tb)))
}

// levenshtein works on runes so Hangul syllables count as one edit each.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func matchReasons(query, name string) []string {
	var reasons []string
	switch {
	case query == name:
		reasons = append(reasons, "Exact name match")
	case strings.Contains(name, query):
		reasons = append(reasons, "Name contains query")
	case stringSimilarity(query, name) > 0.8:
		reasons = append(reasons, "Very similar name")
	}
	if tokenSimilarity(query, name) > 0.5 {
		reasons = append(reasons, "Matching name components")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Partial name similarity")
	}
	return reasons
}
