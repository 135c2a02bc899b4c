package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"github.com/mauv0809/ace-ranking/internal/stats"
)

// New creates a new Processor.
func New(club Club, notifier Notifier, metrics metrics.Metrics) *Processor {
	return &Processor{
		club:     club,
		notifier: notifier,
		metrics:  metrics,
	}
}

// RecordMatch records the result and announces it. A failed announcement is
// logged but does not undo the recording.
func (p *Processor) RecordMatch(ctx context.Context, req club.MatchRequest, dryRun bool) (club.MatchResult, error) {
	startTime := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration(time.Since(startTime).Seconds())
	}()

	result, err := p.club.RecordMatch(ctx, req)
	if err != nil {
		log.Warn("Match rejected", "error", err)
		return club.MatchResult{}, err
	}

	if err := p.notifier.SendResultNotification(result, p.club.Members(), dryRun); err != nil {
		log.Error("Failed to send result notification", "error", err, "matchID", result.ID)
	}
	return result, nil
}

// PublishLeaderboard posts the current ranking for one gender.
func (p *Processor) PublishLeaderboard(gender club.Gender, dryRun bool) error {
	if !gender.Valid() {
		return club.ErrInvalidGender
	}
	ranking := stats.Ranking(p.club.Members(), gender)
	log.Info("Publishing leaderboard", "gender", gender, "members", len(ranking))
	if err := p.notifier.SendLeaderboard(gender, ranking, dryRun); err != nil {
		return fmt.Errorf("failed to publish %s leaderboard: %w", gender, err)
	}
	return nil
}

// PublishLeaderboards posts the ranking of every gender.
func (p *Processor) PublishLeaderboards(dryRun bool) error {
	var errs []error
	for _, gender := range []club.Gender{club.GenderMale, club.GenderFemale} {
		if err := p.PublishLeaderboard(gender, dryRun); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
