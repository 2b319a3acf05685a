// Package santa computes the gift-giving assignment: a uniformly random
// single cycle over all participants, so nobody draws themselves and
// everybody both gives and receives exactly once.
package santa

import (
	"context"
	"errors"
	"math/rand"

	"github.com/krezhov/santabot/internal/db"
)

var ErrNotEnoughParticipants = errors.New("at least 2 participants are required")

// Store is the slice of the record store the engine needs.
type Store interface {
	ListParticipants(ctx context.Context) ([]db.Participant, error)
	SetRecipient(ctx context.Context, giverID, receiverID int64) error
	SetEventStarted(ctx context.Context, started bool) error
}

type Service struct {
	store   Store
	shuffle func(n int, swap func(i, j int))
}

func New(store Store) *Service {
	return &Service{
		store:   store,
		shuffle: rand.Shuffle,
	}
}

// Assign draws the assignment and persists it, then marks the event started.
// Returns the participant count. With fewer than 2 participants it performs
// no writes and returns ErrNotEnoughParticipants.
//
// Re-running overwrites every recipient link; delivery flags are left as-is,
// so completed deliveries are not re-notified.
func (s *Service) Assign(ctx context.Context) (int, error) {
	participants, err := s.store.ListParticipants(ctx)
	if err != nil {
		return 0, err
	}
	if len(participants) < 2 {
		return len(participants), ErrNotEnoughParticipants
	}

	ids := make([]int64, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}

	assignment := buildCycle(ids, s.shuffle)
	// One update per participant; a crash mid-way leaves a partial cycle
	// that the next run repairs by overwriting.
	for giver, receiver := range assignment {
		if err := s.store.SetRecipient(ctx, giver, receiver); err != nil {
			return 0, err
		}
	}

	if err := s.store.SetEventStarted(ctx, true); err != nil {
		return 0, err
	}
	return len(participants), nil
}

// buildCycle shuffles ids and links each position to the next one, closing
// the ring at the end. With n >= 2 no id can map to itself.
func buildCycle(ids []int64, shuffle func(n int, swap func(i, j int))) map[int64]int64 {
	shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	assignment := make(map[int64]int64, len(ids))
	for i, giver := range ids {
		assignment[giver] = ids[(i+1)%len(ids)]
	}
	return assignment
}
