package club_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"github.com/mauv0809/ace-ranking/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClub creates a club on an empty stored roster with predictable ids
// and a fixed clock.
func setupTestClub(t *testing.T, opts ...club.Option) (club.Club, *club.MockRepository, *metrics.Mock) {
	t.Helper()

	repo := club.NewMockRepositoryWith(club.State{Members: []club.Member{}})
	m := metrics.NewMock()
	seq := 0
	base := []club.Option{
		club.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
		club.WithClock(func() time.Time {
			return time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC)
		}),
		club.WithLocation(time.UTC),
	}

	c, err := club.New(context.Background(), repo, m, append(base, opts...)...)
	require.NoError(t, err)
	return c, repo, m
}

func register(t *testing.T, c club.Club, name string, gender club.Gender) club.Member {
	t.Helper()
	member, err := c.Register(context.Background(), name, gender)
	require.NoError(t, err)
	return member
}

func record(t *testing.T, c club.Club, req club.MatchRequest) club.MatchResult {
	t.Helper()
	if req.MatchType == "" {
		req.MatchType = club.MatchTypeMaleDoubles
	}
	result, err := c.RecordMatch(context.Background(), req)
	require.NoError(t, err)
	return result
}

func TestNewSeedsRosterWhenNothingStored(t *testing.T) {
	m := metrics.NewMock()
	c, err := club.New(context.Background(), club.NewMockRepository(), m)
	require.NoError(t, err)

	members := c.Members()
	assert.Len(t, members, 16)
	assert.Equal(t, "m1", members[0].ID)
	assert.Equal(t, club.GenderFemale, members[8].Gender)
	assert.Empty(t, c.Matches())
	assert.Equal(t, 16, m.RosterSize())
}

func TestNewKeepsStoredEmptyRoster(t *testing.T) {
	c, _, _ := setupTestClub(t)
	assert.Empty(t, c.Members())
}

func TestNewFailsWhenLoadFails(t *testing.T) {
	repo := club.NewMockRepository()
	repo.LoadFunc = func(ctx context.Context) (club.State, error) {
		return club.State{}, errors.New("disk gone")
	}

	_, err := club.New(context.Background(), repo, metrics.NewMock())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestRegister(t *testing.T) {
	c, repo, m := setupTestClub(t)

	alice := register(t, c, "  Alice ", club.GenderMale)
	assert.Equal(t, "id-1", alice.ID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Zero(t, alice.Played())
	assert.Zero(t, alice.Points)

	_, err := c.Register(context.Background(), "   ", club.GenderMale)
	assert.ErrorIs(t, err, club.ErrEmptyName)
	assert.True(t, club.IsValidation(err))

	_, err = c.Register(context.Background(), "Eve", club.Gender("OTHER"))
	assert.ErrorIs(t, err, club.ErrInvalidGender)

	assert.Len(t, c.Members(), 1)
	assert.Equal(t, 1, repo.Saves())
	assert.Equal(t, 1, m.MembersRegistered())
	assert.Equal(t, 1, m.RosterSize())
}

func TestRecordMatchWinAndLoss(t *testing.T) {
	c, repo, m := setupTestClub(t)
	alice := register(t, c, "Alice", club.GenderMale)
	bob := register(t, c, "Bob", club.GenderMale)

	result := record(t, c, club.MatchRequest{
		WinnerIDs: []string{alice.ID},
		LoserIDs:  []string{bob.ID},
		Score:     "6-4",
		MatchType: club.MatchTypeMaleDoubles,
	})
	assert.False(t, result.IsDraw)
	assert.Equal(t, "2024-05-10", result.Date)

	a, _ := c.Member(alice.ID)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 3, a.Points)
	assert.Equal(t, 100.0, a.WinRate)

	b, _ := c.Member(bob.ID)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 0, b.Points)
	assert.Equal(t, 0.0, b.WinRate)

	saved, ok := repo.LastSaved()
	require.True(t, ok)
	require.Len(t, saved.Matches, 1)
	assert.Equal(t, result.ID, saved.Matches[0].ID)
	assert.Equal(t, 1, m.MatchesRecorded(string(club.MatchTypeMaleDoubles)))
}

func TestRecordMatchDraw(t *testing.T) {
	c, _, m := setupTestClub(t)
	alice := register(t, c, "Alice", club.GenderMale)
	bob := register(t, c, "Bob", club.GenderMale)
	bystander := register(t, c, "Dan", club.GenderMale)

	result := record(t, c, club.MatchRequest{WinnerIDs: []string{alice.ID}, LoserIDs: []string{bob.ID}, Score: "5-5"})
	assert.True(t, result.IsDraw)

	for _, id := range []string{alice.ID, bob.ID} {
		member, _ := c.Member(id)
		assert.Equal(t, 1, member.Draws)
		assert.Equal(t, 1, member.Points)
		assert.Equal(t, 0.0, member.WinRate)
	}
	d, _ := c.Member(bystander.ID)
	assert.Zero(t, d.Played())
	assert.Equal(t, 1, m.DrawsRecorded())
}

func TestRecordMatchValidation(t *testing.T) {
	c, repo, _ := setupTestClub(t)
	a := register(t, c, "A", club.GenderMale).ID
	b := register(t, c, "B", club.GenderMale).ID
	savesBefore := repo.Saves()

	tests := []struct {
		name string
		req  club.MatchRequest
		want error
	}{
		{"no winners", club.MatchRequest{LoserIDs: []string{b}, Score: "6-4", MatchType: club.MatchTypeMaleDoubles}, club.ErrNoWinners},
		{"blank winners", club.MatchRequest{WinnerIDs: []string{" "}, LoserIDs: []string{b}, Score: "6-4", MatchType: club.MatchTypeMaleDoubles}, club.ErrNoWinners},
		{"no losers", club.MatchRequest{WinnerIDs: []string{a}, Score: "6-4", MatchType: club.MatchTypeMaleDoubles}, club.ErrNoLosers},
		{"overlap", club.MatchRequest{WinnerIDs: []string{a}, LoserIDs: []string{a, b}, Score: "6-4", MatchType: club.MatchTypeMaleDoubles}, club.ErrSidesOverlap},
		{"three a side", club.MatchRequest{WinnerIDs: []string{a, "x", "y"}, LoserIDs: []string{b}, Score: "6-4", MatchType: club.MatchTypeMaleDoubles}, club.ErrTooManyPlayers},
		{"empty score", club.MatchRequest{WinnerIDs: []string{a}, LoserIDs: []string{b}, Score: " ", MatchType: club.MatchTypeMaleDoubles}, club.ErrEmptyScore},
		{"match type", club.MatchRequest{WinnerIDs: []string{a}, LoserIDs: []string{b}, Score: "6-4", MatchType: "SINGLES"}, club.ErrInvalidMatchType},
		{"court type", club.MatchRequest{WinnerIDs: []string{a}, LoserIDs: []string{b}, Score: "6-4", MatchType: club.MatchTypeMaleDoubles, CourtType: "SAND"}, club.ErrInvalidCourtType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.RecordMatch(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, club.IsValidation(err))
		})
	}

	assert.Empty(t, c.Matches())
	assert.Equal(t, savesBefore, repo.Saves())
}

func TestRecordMatchEligibility(t *testing.T) {
	req := func(a, b string) club.MatchRequest {
		return club.MatchRequest{WinnerIDs: []string{a}, LoserIDs: []string{b}, Score: "6-3", MatchType: club.MatchTypeMaleDoubles}
	}

	t.Run("advisory by default", func(t *testing.T) {
		c, _, _ := setupTestClub(t)
		a := register(t, c, "A", club.GenderMale)
		f := register(t, c, "F", club.GenderFemale)
		_, err := c.RecordMatch(context.Background(), req(a.ID, f.ID))
		assert.NoError(t, err)
	})

	t.Run("strict", func(t *testing.T) {
		c, _, _ := setupTestClub(t, club.WithStrictMatchTypes(true))
		a := register(t, c, "A", club.GenderMale)
		f := register(t, c, "F", club.GenderFemale)
		_, err := c.RecordMatch(context.Background(), req(a.ID, f.ID))
		assert.ErrorIs(t, err, club.ErrIneligible)
		assert.Empty(t, c.Matches())
	})
}

func TestRecordMatchEffectiveDate(t *testing.T) {
	c, _, _ := setupTestClub(t, club.WithLocation(time.FixedZone("KST", 9*60*60)))
	a := register(t, c, "A", club.GenderMale).ID
	b := register(t, c, "B", club.GenderMale).ID

	today := record(t, c, club.MatchRequest{WinnerIDs: []string{a}, LoserIDs: []string{b}, Score: "6-1"})
	assert.Equal(t, "2024-05-11", today.Date)

	c.SelectDate("2024-05-01")
	selected := record(t, c, club.MatchRequest{WinnerIDs: []string{a}, LoserIDs: []string{b}, Score: "6-1"})
	assert.Equal(t, "2024-05-01", selected.Date)

	explicit := record(t, c, club.MatchRequest{WinnerIDs: []string{a}, LoserIDs: []string{b}, Score: "6-1", Date: "2024-04-20"})
	assert.Equal(t, "2024-04-20", explicit.Date)

	ledger := c.Matches()
	require.Len(t, ledger, 3)
	assert.Equal(t, explicit.ID, ledger[0].ID)
	assert.Equal(t, today.ID, ledger[2].ID)

	assert.Len(t, c.MatchesOn("2024-05-01"), 1)
	assert.Empty(t, c.MatchesOn("2023-01-01"))
}

func TestRankingAcrossGenders(t *testing.T) {
	c, _, _ := setupTestClub(t)
	alice := register(t, c, "Alice", club.GenderMale)
	bob := register(t, c, "Bob", club.GenderMale)
	carol := register(t, c, "Carol", club.GenderFemale)

	record(t, c, club.MatchRequest{WinnerIDs: []string{bob.ID}, LoserIDs: []string{alice.ID}, Score: "6-2"})

	female := stats.Ranking(c.Members(), club.GenderFemale)
	require.Len(t, female, 1)
	assert.Equal(t, carol.ID, female[0].ID)

	male := stats.Ranking(c.Members(), club.GenderMale)
	require.Len(t, male, 2)
	assert.Equal(t, bob.ID, male[0].ID)
	assert.Equal(t, alice.ID, male[1].ID)
}

func TestRemove(t *testing.T) {
	c, repo, m := setupTestClub(t)
	alice := register(t, c, "Alice", club.GenderMale)
	bob := register(t, c, "Bob", club.GenderMale)
	match := record(t, c, club.MatchRequest{WinnerIDs: []string{alice.ID}, LoserIDs: []string{bob.ID}, Score: "6-4"})
	_, err := c.SetAttendance(context.Background(), "2024-05-10", []string{alice.ID, bob.ID})
	require.NoError(t, err)
	_, err = c.SetAttendance(context.Background(), "2024-05-11", []string{bob.ID})
	require.NoError(t, err)

	t.Run("declined", func(t *testing.T) {
		saves := repo.Saves()
		var asked string
		err := c.Remove(context.Background(), bob.ID, club.ConfirmFunc(func(msg string) bool {
			asked = msg
			return false
		}))
		assert.ErrorIs(t, err, club.ErrDeclined)
		assert.Contains(t, asked, "Bob")
		assert.Len(t, c.Members(), 2)
		assert.Equal(t, saves, repo.Saves())
	})

	t.Run("nil confirmer declines", func(t *testing.T) {
		assert.ErrorIs(t, c.Remove(context.Background(), bob.ID, nil), club.ErrDeclined)
	})

	t.Run("confirmed", func(t *testing.T) {
		require.NoError(t, c.Remove(context.Background(), bob.ID, club.AlwaysConfirm))

		_, ok := c.Member(bob.ID)
		assert.False(t, ok)
		assert.Equal(t, club.UnknownName, c.NameOf(bob.ID))
		assert.Equal(t, []string{alice.ID}, c.Attendance("2024-05-10"))
		assert.Empty(t, c.Attendance("2024-05-11"))
		assert.NotContains(t, c.Snapshot().Attendance, "2024-05-11")

		ledger := c.Matches()
		require.Len(t, ledger, 1)
		assert.Equal(t, match, ledger[0])

		a, _ := c.Member(alice.ID)
		assert.Equal(t, 1, a.Wins)
		assert.Equal(t, 3, a.Points)

		detail := stats.DetailFor(c.Members(), c.Matches(), alice.ID)
		require.Len(t, detail.History, 1)
		assert.Equal(t, []string{club.UnknownName}, detail.History[0].OpponentNames)
		assert.Equal(t, 1, m.MembersRemoved())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		saves := repo.Saves()
		assert.NoError(t, c.Remove(context.Background(), "missing", club.AlwaysConfirm))
		assert.Equal(t, saves, repo.Saves())
	})
}

func TestDetailHistoryOrderedByDate(t *testing.T) {
	c, _, _ := setupTestClub(t)
	alice := register(t, c, "Alice", club.GenderMale)
	bob := register(t, c, "Bob", club.GenderMale)

	record(t, c, club.MatchRequest{WinnerIDs: []string{alice.ID}, LoserIDs: []string{bob.ID}, Score: "6-4", Date: "2024-06-02"})
	record(t, c, club.MatchRequest{WinnerIDs: []string{bob.ID}, LoserIDs: []string{alice.ID}, Score: "6-4", Date: "2024-06-01"})

	detail := stats.DetailFor(c.Members(), c.Matches(), alice.ID)
	require.Len(t, detail.History, 2)
	assert.Equal(t, "2024-06-02", detail.History[0].Match.Date)
	assert.Equal(t, "2024-06-01", detail.History[1].Match.Date)
	assert.Equal(t, 2, stats.GamesPlayed(c.Matches(), alice.ID))
}

func TestCachedTotalsMatchLedger(t *testing.T) {
	c, _, _ := setupTestClub(t)
	ids := make([]string, 0, 4)
	for _, name := range []string{"A", "B", "C", "D"} {
		ids = append(ids, register(t, c, name, club.GenderMale).ID)
	}

	scores := []string{"6-4", "3-3", "7-5", "x-2", "0-0", "4-6"}
	for i, score := range scores {
		winners := []string{ids[i%4], ids[(i+1)%4]}
		losers := []string{ids[(i+2)%4], ids[(i+3)%4]}
		record(t, c, club.MatchRequest{WinnerIDs: winners, LoserIDs: losers, Score: score})

		assert.Empty(t, stats.Verify(c.Members(), c.Matches()), "after match %d", i)
	}

	for _, m := range c.Members() {
		assert.Equal(t, stats.GamesPlayed(c.Matches(), m.ID), m.Played())
		assert.Equal(t, 3*m.Wins+m.Draws, m.Points)
		assert.GreaterOrEqual(t, m.WinRate, 0.0)
		assert.LessOrEqual(t, m.WinRate, 100.0)
	}
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	c, repo, m := setupTestClub(t)
	repo.SaveFunc = func(ctx context.Context, state club.State) error {
		return errors.New("quota exceeded")
	}

	alice, err := c.Register(context.Background(), "Alice", club.GenderFemale)
	require.NoError(t, err)

	_, ok := c.Member(alice.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, m.PersistFailures())
}

func TestAttendance(t *testing.T) {
	c, _, _ := setupTestClub(t)
	a := register(t, c, "A", club.GenderMale)
	f := register(t, c, "F", club.GenderFemale)
	g := register(t, c, "G", club.GenderFemale)
	ctx := context.Background()

	present, err := c.SetAttendance(ctx, "2024-05-10", []string{g.ID, a.ID, g.ID, "ghost", f.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{g.ID, a.ID, f.ID}, present)

	female := c.Selectable("2024-05-10", club.MatchTypeFemaleDoubles)
	assert.Equal(t, []string{f.ID, g.ID}, memberIDs(female))
	assert.Equal(t, []string{a.ID}, memberIDs(c.Selectable("2024-05-10", club.MatchTypeMaleDoubles)))
	assert.Len(t, c.Selectable("2024-05-10", club.MatchTypeMixedDoubles), 3)
	assert.Empty(t, c.Selectable("2024-05-09", club.MatchTypeMixedDoubles))

	present, err = c.ToggleAttendance(ctx, "2024-05-10", a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{g.ID, f.ID}, present)

	present, err = c.ToggleAttendance(ctx, "2024-05-10", a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{g.ID, f.ID, a.ID}, present)

	_, err = c.ToggleAttendance(ctx, "2024-05-10", "ghost")
	assert.ErrorIs(t, err, club.ErrUnknownMember)

	_, err = c.SetAttendance(ctx, " ", []string{a.ID})
	assert.ErrorIs(t, err, club.ErrInvalidDate)

	present, err = c.SetAttendance(ctx, "2024-05-10", nil)
	require.NoError(t, err)
	assert.Empty(t, present)
	assert.NotContains(t, c.Snapshot().Attendance, "2024-05-10")
}

func TestFindByName(t *testing.T) {
	c, _, _ := setupTestClub(t)
	register(t, c, "Annabel", club.GenderFemale)
	ann := register(t, c, "Ann", club.GenderFemale)

	found, ok := c.FindByName("ann")
	require.True(t, ok)
	assert.Equal(t, ann.ID, found.ID)

	found, ok = c.FindByName("bel")
	require.True(t, ok)
	assert.Equal(t, "Annabel", found.Name)

	_, ok = c.FindByName("zed")
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _, _ := setupTestClub(t)
	a := register(t, c, "A", club.GenderMale)
	b := register(t, c, "B", club.GenderMale)
	record(t, c, club.MatchRequest{WinnerIDs: []string{a.ID}, LoserIDs: []string{b.ID}, Score: "6-0"})

	snap := c.Snapshot()
	snap.Members[0].Wins = 99
	snap.Matches[0].WinnerIDs[0] = "tampered"

	member, _ := c.Member(a.ID)
	assert.Equal(t, 1, member.Wins)
	assert.Equal(t, a.ID, c.Matches()[0].WinnerIDs[0])
}

func memberIDs(members []club.Member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}
