package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cricket-scorecard/internal/domain/match"
)

// MatchRepository keeps the one match being scored. Saving replaces it.
type MatchRepository struct {
	mu      sync.RWMutex
	current *match.State
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

func (r *MatchRepository) GetCurrent(_ context.Context) (match.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return match.State{}, false, nil
	}

	return r.current.Clone(), true, nil
}

func (r *MatchRepository) Save(_ context.Context, state match.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := state.Clone()
	r.current = &copied
	return nil
}
