package main

import (
	"math/rand/v2"
	"testing"

	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomMatchPicksEligiblePlayers(t *testing.T) {
	roster := club.Roster(club.SeedRoster())
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		req, ok := randomMatch(rng, roster)
		require.True(t, ok)
		require.Len(t, req.WinnerIDs, 2)
		require.Len(t, req.LoserIDs, 2)

		for _, id := range append(append([]string{}, req.WinnerIDs...), req.LoserIDs...) {
			member, found := roster.Find(id)
			require.True(t, found)
			assert.True(t, req.MatchType.Eligible(member.Gender), "%s in %s", member.Name, req.MatchType)
			assert.NotContains(t, req.LoserIDs, req.WinnerIDs[0])
		}
		assert.NotEmpty(t, req.Score)
	}
}

func TestRandomMatchNeedsFourPlayers(t *testing.T) {
	roster := club.Roster{
		{ID: "m1", Name: "A", Gender: club.GenderMale},
		{ID: "f1", Name: "B", Gender: club.GenderFemale},
	}
	rng := rand.New(rand.NewPCG(1, 2))

	_, ok := randomMatch(rng, roster)
	assert.False(t, ok)
}
