package scores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gigiceria-quiz/internal/domain"
	"gigiceria-quiz/internal/kv"
)

// ProfileStore keeps the single per-device player profile. The record is
// mutated in place: the name always follows the latest attempt, the best
// score only ever goes up.
type ProfileStore struct {
	store kv.Store
	now   func() time.Time
}

func NewProfileStore(store kv.Store) *ProfileStore {
	return &ProfileStore{store: store, now: time.Now}
}

// NewProfileStoreWithClock is test-only for deterministic timestamps.
func NewProfileStoreWithClock(store kv.Store, now func() time.Time) *ProfileStore {
	return &ProfileStore{store: store, now: now}
}

// Load returns the stored profile or the zero profile when none exists.
func (p *ProfileStore) Load(ctx context.Context) domain.PlayerProfile {
	var profile domain.PlayerProfile
	p.store.Get(ctx, kv.PlayerKey, &profile)
	return profile
}

// RecordAttempt folds one finalized attempt into the profile. The updated
// profile is returned even when persistence fails; the error then wraps
// domain.ErrScoreNotSaved.
func (p *ProfileStore) RecordAttempt(ctx context.Context, name string, score int) (domain.PlayerProfile, error) {
	profile := p.Load(ctx)
	now := p.now()

	profile.Name = strings.TrimSpace(name)
	profile.TotalQuizzes++
	if score > profile.BestScore {
		profile.BestScore = score
	}
	profile.LastPlayed = &now

	if !p.store.Set(ctx, kv.PlayerKey, profile) {
		return profile, fmt.Errorf("%w: profile write failed", domain.ErrScoreNotSaved)
	}
	return profile, nil
}

// Clear resets the profile to its zero value.
func (p *ProfileStore) Clear(ctx context.Context) bool {
	return p.store.Remove(ctx, kv.PlayerKey)
}
