package match

import "context"

// Repository holds the single match currently being scored.
type Repository interface {
	GetCurrent(ctx context.Context) (State, bool, error)
	Save(ctx context.Context, state State) error
}
