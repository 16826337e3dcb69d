package worker

import (
	"context"
	"log"
	"time"

	"loomconnect/internal/config"
	"loomconnect/internal/domain/notification"
	"loomconnect/internal/domain/profile"
	"loomconnect/internal/usecase"

	"github.com/google/uuid"
)

// Digest periodically recomputes matches for every candidate profile and
// pushes the strongest new results through the notifier.
type Digest struct {
	profiles profile.Repository
	matches  usecase.MatchUsecase
	notifier notification.Notifier
	cfg      config.DigestConfig
	matching config.MatchingConfig
	logger   *log.Logger
}

func NewDigest(
	profiles profile.Repository,
	matches usecase.MatchUsecase,
	notifier notification.Notifier,
	cfg config.DigestConfig,
	matching config.MatchingConfig,
	logger *log.Logger,
) *Digest {
	if notifier == nil {
		notifier = notification.Noop{}
	}
	return &Digest{
		profiles: profiles,
		matches:  matches,
		notifier: notifier,
		cfg:      cfg,
		matching: matching,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. One sweep runs immediately, then one
// per interval.
func (d *Digest) Run(ctx context.Context) {
	if !d.cfg.Enabled {
		return
	}

	interval := d.cfg.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	d.sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.sweep(ctx)
		}
	}
}

func (d *Digest) sweep(ctx context.Context) {
	start := time.Now()

	ids, err := d.profiles.ListCandidateIDs(ctx, uuid.Nil)
	if err != nil {
		if d.logger != nil {
			d.logger.Printf("Digest sweep aborted | error=%v", err)
		}
		return
	}
	if len(ids) == 0 {
		return
	}

	pool := NewPool(d.cfg.Workers, len(ids))
	for _, id := range ids {
		profileID := id
		pool.Submit(func(ctx context.Context) error {
			return d.notifyMatches(ctx, profileID)
		})
	}
	pool.Close()

	var failures int
	for res := range pool.Run(ctx) {
		if res.Err != nil {
			failures++
		}
	}

	if d.logger != nil {
		d.logger.Printf("Digest sweep done | profiles=%d failures=%d took=%s",
			len(ids), failures, time.Since(start))
	}
}

func (d *Digest) notifyMatches(ctx context.Context, profileID uuid.UUID) error {
	results, err := d.matches.FindMatches(ctx, profileID, usecase.FindMatchesParams{
		Limit:    d.matching.DefaultLimit,
		MinScore: d.matching.DefaultMinScore,
	})
	if err != nil {
		return err
	}

	for _, r := range results {
		names := make([]string, 0, len(r.CommonSkills))
		for _, s := range r.CommonSkills {
			names = append(names, s.Name)
		}
		_ = d.notifier.SendMatchNotification(ctx, notification.MatchNotification{
			RecipientID:  profileID,
			MatchedID:    r.ProfileID,
			Score:        r.Score,
			CommonSkills: names,
		})
	}
	return nil
}
