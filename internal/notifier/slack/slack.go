package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"github.com/mauv0809/ace-ranking/internal/notifier"
	"github.com/mauv0809/ace-ranking/internal/stats"
	"github.com/slack-go/slack"
)

// recentMatches is how many history entries the member stats message shows.
const recentMatches = 5

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token every message is
// treated as a dry run.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendResultNotification(result club.MatchResult, roster club.Roster, dryRun bool) error {
	msg := s.formatResultNotification(result, roster)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(gender club.Gender, ranking []club.Member, dryRun bool) error {
	msg := s.formatLeaderboard(gender, ranking)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendMemberStats(detail stats.Detail, query string, dryRun bool) error {
	msg := s.formatMemberStats(detail, query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendMemberNotFound(query string, suggestions []club.Suggestion, dryRun bool) error {
	msg := s.formatMemberNotFound(query, suggestions)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(gender club.Gender, ranking []club.Member) (any, error) {
	return s.formatLeaderboard(gender, ranking), nil
}

// FormatMemberStatsResponse formats a member stats message for a slash command response.
func (s *Notifier) FormatMemberStatsResponse(detail stats.Detail, query string) (any, error) {
	return s.formatMemberStats(detail, query), nil
}

// FormatMemberNotFoundResponse formats a member not found message for a slash command response.
func (s *Notifier) FormatMemberNotFoundResponse(query string, suggestions []club.Suggestion) (any, error) {
	return s.formatMemberNotFound(query, suggestions), nil
}

// formatResultNotification creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatResultNotification(result club.MatchResult, roster club.Roster) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match recorded! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := []string{result.Date, result.MatchType.Label()}
	if result.CourtType != "" {
		details = append(details, result.CourtType.Label())
	}
	if result.CourtName != "" {
		details = append(details, result.CourtName)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(details, " · "), true, false), nil, nil))

	winners := strings.Join(roster.Names(result.WinnerIDs), " & ")
	losers := strings.Join(roster.Names(result.LoserIDs), " & ")

	var resultText, pointsText string
	if result.IsDraw {
		resultText = fmt.Sprintf("Result: %s and %s drew %s 🤝", winners, losers, result.Score)
		pointsText = fmt.Sprintf("+%d point for everyone on court", club.DrawPoints)
	} else {
		resultText = fmt.Sprintf("Result: %s won %s! 🏆", winners, result.Score)
		pointsText = fmt.Sprintf("+%d points for each winner", club.WinPoints)
	}
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("plain_text", "Winners:\n"+winners, true, false),
		slack.NewTextBlockObject("plain_text", "Losers:\n"+losers, true, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), fields, nil))

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", pointsText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display one gender's ranking.
func (s *Notifier) formatLeaderboard(gender club.Gender, ranking []club.Member) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s Leaderboard 🏆", leaderboardTitle(gender)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(ranking) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No members yet. Go register some players!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, member := range ranking {
		rank := i + 1
		memberText := fmt.Sprintf("%d. %s %s\n> Points: %d | Win %%: %.1f%% | W-D-L: %d-%d-%d",
			rank,
			medal(rank),
			member.Name,
			member.Points,
			member.WinRate,
			member.Wins,
			member.Draws,
			member.Losses,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", memberText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMemberStats creates a Slack message to display a single member's breakdown.
func (s *Notifier) formatMemberStats(detail stats.Detail, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", detail.Member.Name)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	overall := detail.Overall
	overallText := fmt.Sprintf("> *Points*: %d\n> *Win %%*: %.1f%% (%d/%d)\n> *W-D-L*: %d-%d-%d\n> *Games*: %d won, %d lost",
		overall.Points,
		overall.WinRate,
		overall.Wins,
		overall.Played,
		overall.Wins,
		overall.Draws,
		overall.Losses,
		overall.GamesWon,
		overall.GamesLost,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", overallText, false, false), nil, nil))

	var fields []*slack.TextBlockObject
	for _, mt := range club.MatchTypes {
		r, ok := detail.ByMatchType[mt]
		if !ok {
			continue
		}
		fields = append(fields, slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("*%s*\n%d-%d-%d · %.1f%%", mt.Label(), r.Wins, r.Draws, r.Losses, r.WinRate), false, false))
	}
	for _, ct := range club.CourtTypes {
		r, ok := detail.ByCourtType[ct]
		if !ok {
			continue
		}
		fields = append(fields, slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("*%s*\n%d-%d-%d · %.1f%%", ct.Label(), r.Wins, r.Draws, r.Losses, r.WinRate), false, false))
	}
	if len(fields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}

	if len(detail.History) > 0 {
		lines := make([]string, 0, recentMatches)
		for i, entry := range detail.History {
			if i == recentMatches {
				break
			}
			line := fmt.Sprintf("• %s %s %s vs %s", entry.Match.Date, outcomeLabel(entry.Outcome), entry.Match.Score, strings.Join(entry.OpponentNames, " & "))
			if len(entry.PartnerNames) > 0 {
				line += " (with " + strings.Join(entry.PartnerNames, " & ") + ")"
			}
			lines = append(lines, line)
		}
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMemberNotFound creates a Slack message for when a member's stats are not found.
func (s *Notifier) formatMemberNotFound(query string, suggestions []club.Suggestion) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a member matching *%s*. Try a different name.", query)
	if len(suggestions) > 0 {
		names := make([]string, 0, len(suggestions))
		for _, suggestion := range suggestions {
			names = append(names, suggestion.Member.Name)
		}
		text += fmt.Sprintf("\nDid you mean: %s?", strings.Join(names, ", "))
	}
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

func leaderboardTitle(gender club.Gender) string {
	switch gender {
	case club.GenderMale:
		return "Men's"
	case club.GenderFemale:
		return "Women's"
	}
	return "Club"
}

func outcomeLabel(outcome stats.Outcome) string {
	switch outcome {
	case stats.OutcomeWin:
		return "W"
	case stats.OutcomeLoss:
		return "L"
	}
	return "D"
}
