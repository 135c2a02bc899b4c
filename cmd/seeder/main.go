package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/config"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"github.com/mauv0809/ace-ranking/internal/stats"
	"github.com/mauv0809/ace-ranking/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	numMatches int
	days       int
	seed       uint64
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Fill the configured storage with random doubles matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&numMatches, "matches", 200, "Number of matches to record")
	rootCmd.Flags().IntVar(&days, "days", 90, "Spread match dates over this many past days")
	rootCmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "Random seed")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...")
	cfg := config.Load()

	repo, teardown, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer teardown()

	c, err := club.New(ctx, repo, metrics.NewService(prometheus.NewRegistry()),
		club.WithLocation(cfg.Location()),
	)
	if err != nil {
		return fmt.Errorf("failed to load club: %w", err)
	}

	rng := rand.New(rand.NewPCG(seed, seed>>1))
	today := time.Now().In(cfg.Location())
	startTime := time.Now()

	recorded := 0
	for i := 0; i < numMatches; i++ {
		req, ok := randomMatch(rng, c.Members())
		if !ok {
			return fmt.Errorf("not enough members to seed %s matches", req.MatchType)
		}
		req.Date = today.AddDate(0, 0, -rng.IntN(max(days, 1))).Format(time.DateOnly)

		if _, err := c.RecordMatch(ctx, req); err != nil {
			return fmt.Errorf("failed to record match %d: %w", i+1, err)
		}
		recorded++
		if recorded%50 == 0 {
			log.Info("Recorded batch", "completed", recorded, "total", numMatches)
		}
	}

	if mismatches := stats.Verify(c.Members(), c.Matches()); len(mismatches) > 0 {
		return fmt.Errorf("seeded totals disagree with the ledger for %d members", len(mismatches))
	}
	log.Info("Successfully seeded matches.", "recorded", recorded, "duration", time.Since(startTime))
	return nil
}

var scores = []string{"6-0", "6-1", "6-2", "6-3", "6-4", "7-5", "7-6", "5-5", "4-4"}

// randomMatch picks a match type, four eligible players and a score.
// Mixed doubles pairs one man with one woman per side.
func randomMatch(rng *rand.Rand, roster club.Roster) (club.MatchRequest, bool) {
	var men, women []string
	for _, m := range roster {
		if m.Gender == club.GenderMale {
			men = append(men, m.ID)
		} else {
			women = append(women, m.ID)
		}
	}
	rng.Shuffle(len(men), func(i, j int) { men[i], men[j] = men[j], men[i] })
	rng.Shuffle(len(women), func(i, j int) { women[i], women[j] = women[j], women[i] })

	req := club.MatchRequest{
		MatchType: club.MatchTypes[rng.IntN(len(club.MatchTypes))],
		CourtType: club.CourtTypes[rng.IntN(len(club.CourtTypes))],
		Score:     scores[rng.IntN(len(scores))],
		CourtName: "Seeded Court",
	}

	var side []string
	switch req.MatchType {
	case club.MatchTypeMaleDoubles:
		side = men
	case club.MatchTypeFemaleDoubles:
		side = women
	default:
		if len(men) < 2 || len(women) < 2 {
			return req, false
		}
		side = []string{men[0], women[0], men[1], women[1]}
	}
	if len(side) < 4 {
		return req, false
	}

	req.WinnerIDs = side[:2]
	req.LoserIDs = side[2:4]
	return req, true
}
