package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"github.com/mauv0809/ace-ranking/internal/stats"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

var testRoster = club.Roster{
	{ID: "m1", Name: "김형걸", Gender: club.GenderMale},
	{ID: "m2", Name: "원태훈", Gender: club.GenderMale},
	{ID: "m3", Name: "양규", Gender: club.GenderMale},
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NoTokenIsDryRun(t *testing.T) {
	metrics := metrics.NewMock()
	notifier := NewNotifier("", "C123", metrics)

	ts, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)
	require.NoError(t, err)
	assert.Equal(t, "dry-run-ts", ts)
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendResultNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	result := club.MatchResult{ID: "x", Date: "2024-05-01", WinnerIDs: []string{"m1"}, LoserIDs: []string{"m2"}, Score: "6-4", MatchType: club.MatchTypeMaleDoubles}
	require.NoError(t, notifier.SendResultNotification(result, testRoster, false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendResultNotification")
}

func TestFormatResultNotification(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("win", func(t *testing.T) {
		result := club.MatchResult{
			Date:      "2024-05-01",
			WinnerIDs: []string{"m1", "m2"},
			LoserIDs:  []string{"m3", "gone"},
			Score:     "6-4",
			MatchType: club.MatchTypeMaleDoubles,
			CourtType: club.CourtTypeClay,
			CourtName: "Court 3",
		}
		msg := client.formatResultNotification(result, testRoster)
		require.Len(t, msg.Blocks.BlockSet, 4)

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Contains(t, header.Text.Text, "Match recorded")

		details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "2024-05-01 · 남복 · 클레이 · Court 3", details.Text.Text)

		section, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Result: 김형걸 & 원태훈 won 6-4! 🏆", section.Text.Text)
		require.Len(t, section.Fields, 2)
		assert.Equal(t, "Losers:\n양규 & unknown", section.Fields[1].Text)
	})

	t.Run("draw", func(t *testing.T) {
		result := club.MatchResult{Date: "2024-05-01", WinnerIDs: []string{"m1"}, LoserIDs: []string{"m2"}, Score: "5-5", MatchType: club.MatchTypeMixedDoubles, IsDraw: true}
		msg := client.formatResultNotification(result, testRoster)

		section, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "drew 5-5")

		footer, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
		require.True(t, ok)
		text, ok := footer.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Contains(t, text.Text, "+1 point")
	})
}

func TestFormatLeaderboard(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("ranked members", func(t *testing.T) {
		ranking := []club.Member{
			{Name: "김형걸", Wins: 2, Points: 6, WinRate: 100},
			{Name: "원태훈", Wins: 1, Draws: 1, Losses: 1, Points: 4, WinRate: 33.333},
			{Name: "양규", Losses: 2},
			{Name: "황순철"},
		}
		msg := client.formatLeaderboard(club.GenderMale, ranking)
		require.Len(t, msg.Blocks.BlockSet, 5)

		header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Equal(t, "🏆 Men's Leaderboard 🏆", header.Text.Text)

		first := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "1. 🥇 김형걸\n> Points: 6 | Win %: 100.0% | W-D-L: 2-0-0", first.Text.Text)

		second := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		assert.Equal(t, "2. 🥈 원태훈\n> Points: 4 | Win %: 33.3% | W-D-L: 1-1-1", second.Text.Text)

		fourth := msg.Blocks.BlockSet[4].(*slackapi.SectionBlock)
		assert.Equal(t, "4.  황순철\n> Points: 0 | Win %: 0.0% | W-D-L: 0-0-0", fourth.Text.Text)
	})

	t.Run("empty", func(t *testing.T) {
		msg := client.formatLeaderboard(club.GenderFemale, nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Contains(t, header.Text.Text, "Women's")
	})
}

func TestFormatMemberStats(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	ledger := []club.MatchResult{
		{ID: "2", Date: "2024-05-02", WinnerIDs: []string{"m2", "m3"}, LoserIDs: []string{"m1"}, Score: "6-2", MatchType: club.MatchTypeMaleDoubles, CourtType: club.CourtTypeHard},
		{ID: "1", Date: "2024-05-01", WinnerIDs: []string{"m1"}, LoserIDs: []string{"m2"}, Score: "6-4", MatchType: club.MatchTypeMixedDoubles},
	}
	detail := stats.DetailFor(testRoster, ledger, "m1")

	msg := client.formatMemberStats(detail, "김형걸")
	require.Len(t, msg.Blocks.BlockSet, 4)

	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "🏆 Stats for 김형걸 🏆", header.Text.Text)

	overall := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Contains(t, overall.Text.Text, "*Points*: 3")
	assert.Contains(t, overall.Text.Text, "(1/2)")
	assert.Contains(t, overall.Text.Text, "*Games*: 8 won, 10 lost")

	breakdown := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.Len(t, breakdown.Fields, 3)
	assert.Contains(t, breakdown.Fields[0].Text, "남복")
	assert.Contains(t, breakdown.Fields[2].Text, "하드")

	history := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	text := history.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	assert.Equal(t, "• 2024-05-02 L 6-2 vs 원태훈 & 양규\n• 2024-05-01 W 6-4 vs 원태훈", text.Text)
}

func TestFormatMemberNotFound(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	msg := client.formatMemberNotFound("김형", []club.Suggestion{{Member: testRoster[0], Confidence: 0.6}})
	require.Len(t, msg.Blocks.BlockSet, 1)
	section := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.Contains(t, section.Text.Text, "*김형*")
	assert.Contains(t, section.Text.Text, "Did you mean: 김형걸?")

	msg = client.formatMemberNotFound("nobody", nil)
	section = msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.NotContains(t, section.Text.Text, "Did you mean")
}
