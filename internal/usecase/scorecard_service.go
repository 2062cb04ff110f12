package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/cricket-scorecard/internal/domain/match"
	idgen "github.com/riskibarqy/cricket-scorecard/internal/platform/id"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var scorecardSpans = tracing.NewScope("cricket-scorecard/internal/usecase", "usecase.ScorecardService.")

// NoticeStore keeps the transient notice of each match until it expires.
type NoticeStore interface {
	Get(ctx context.Context, key string) (match.Notice, bool)
	Set(ctx context.Context, key string, notice match.Notice)
	Delete(ctx context.Context, key string)
}

type ScorecardSettings struct {
	TeamAName string
	TeamBName string
	NoticeTTL time.Duration
	RateMode  match.RateMode
}

// StartMatchInput names the two sides. Blank names fall back to the configured defaults.
type StartMatchInput struct {
	TeamAName string
	TeamBName string
}

type AddPlayerInput struct {
	TeamIndex int
	Name      string
}

type AddPlayerResult struct {
	Scorecard Scorecard
	PlayerID  match.PlayerID
	Added     bool
}

// ScorecardService applies scorer actions to the current match one at a time.
type ScorecardService struct {
	mu        sync.Mutex
	matchRepo match.Repository
	notices   NoticeStore
	idGen     idgen.Generator
	settings  ScorecardSettings
	logger    *logging.Logger
	now       func() time.Time
}

func NewScorecardService(
	matchRepo match.Repository,
	notices NoticeStore,
	idGen idgen.Generator,
	settings ScorecardSettings,
	logger *logging.Logger,
) *ScorecardService {
	if logger == nil {
		logger = logging.Default()
	}
	if settings.RateMode == "" {
		settings.RateMode = match.RateModeTrueOvers
	}
	if strings.TrimSpace(settings.TeamAName) == "" {
		settings.TeamAName = match.DefaultTeamAName
	}
	if strings.TrimSpace(settings.TeamBName) == "" {
		settings.TeamBName = match.DefaultTeamBName
	}

	return &ScorecardService{
		matchRepo: matchRepo,
		notices:   notices,
		idGen:     idGen,
		settings:  settings,
		logger:    logger,
		now:       time.Now,
	}
}

// StartMatch discards the current match and begins a new one with Team A batting.
func (s *ScorecardService) StartMatch(ctx context.Context, input StartMatchInput) (Scorecard, error) {
	ctx, span := scorecardSpans.Start(ctx, "StartMatch")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearNotice(ctx)

	state, err := s.newMatch(ctx, input)
	if err != nil {
		return Scorecard{}, err
	}

	s.logger.InfoContext(ctx, "match started",
		"match_id", state.ID,
		"team_a", state.Teams[0].Name,
		"team_b", state.Teams[1].Name,
	)

	return buildScorecard(state, nil, s.settings.RateMode), nil
}

func (s *ScorecardService) GetScorecard(ctx context.Context) (Scorecard, error) {
	ctx, span := scorecardSpans.Start(ctx, "GetScorecard")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return Scorecard{}, err
	}

	return s.view(ctx, state), nil
}

// AddPlayer appends a player to one roster. A blank name is ignored without error.
func (s *ScorecardService) AddPlayer(ctx context.Context, input AddPlayerInput) (AddPlayerResult, error) {
	ctx, span := scorecardSpans.Start(ctx, "AddPlayer", attribute.Int("cricket.team_index", input.TeamIndex))
	defer span.End()

	if input.TeamIndex < 0 || input.TeamIndex >= match.TeamCount {
		return AddPlayerResult{}, fmt.Errorf("%w: team index must be 0 or 1, got %d", ErrInvalidInput, input.TeamIndex)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return AddPlayerResult{}, err
	}

	next, playerID, added, err := match.AddPlayer(state, input.TeamIndex, input.Name)
	if err != nil {
		return AddPlayerResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !added {
		return AddPlayerResult{Scorecard: s.view(ctx, state)}, nil
	}

	if err := s.save(ctx, next); err != nil {
		return AddPlayerResult{}, err
	}

	s.logger.InfoContext(ctx, "player added",
		"match_id", next.ID,
		"team_index", input.TeamIndex,
		"player_id", playerID,
		"player_name", strings.TrimSpace(input.Name),
	)

	return AddPlayerResult{
		Scorecard: s.view(ctx, next),
		PlayerID:  playerID,
		Added:     true,
	}, nil
}

// SelectBatsman makes a player of the batting side the striker.
func (s *ScorecardService) SelectBatsman(ctx context.Context, playerID match.PlayerID) (Scorecard, error) {
	ctx, span := scorecardSpans.Start(ctx, "SelectBatsman", attribute.Int("cricket.player_id", int(playerID)))
	defer span.End()

	return s.mutate(ctx, func(state match.State) (match.State, error) {
		if err := requireOnTeam(state, playerID, state.BattingIndex, "batsman"); err != nil {
			return state, err
		}
		return match.SelectBatsman(state, playerID), nil
	})
}

// SelectBowler makes a player of the fielding side the bowler.
func (s *ScorecardService) SelectBowler(ctx context.Context, playerID match.PlayerID) (Scorecard, error) {
	ctx, span := scorecardSpans.Start(ctx, "SelectBowler", attribute.Int("cricket.player_id", int(playerID)))
	defer span.End()

	return s.mutate(ctx, func(state match.State) (match.State, error) {
		if err := requireOnTeam(state, playerID, state.BowlingIndex(), "bowler"); err != nil {
			return state, err
		}
		return match.SelectBowler(state, playerID), nil
	})
}

func (s *ScorecardService) RecordBall(ctx context.Context, runs int) (Scorecard, error) {
	ctx, span := scorecardSpans.Start(ctx, "RecordBall", attribute.Int("cricket.runs", runs))
	defer span.End()

	if runs < 0 {
		return Scorecard{}, fmt.Errorf("%w: runs cannot be negative", ErrInvalidInput)
	}

	card, err := s.mutate(ctx, func(state match.State) (match.State, error) {
		return match.ApplyBall(state, runs)
	})
	if err != nil {
		return card, err
	}

	s.logger.DebugContext(ctx, "ball recorded",
		"match_id", card.MatchID,
		"runs", runs,
		"batsman", card.BatsmanLabel(),
		"bowler", card.BowlerLabel(),
	)

	return card, nil
}

func (s *ScorecardService) RecordWicket(ctx context.Context) (Scorecard, error) {
	ctx, span := scorecardSpans.Start(ctx, "RecordWicket")
	defer span.End()

	var dismissed string
	card, err := s.mutate(ctx, func(state match.State) (match.State, error) {
		if p, ok := state.BattingTeam().Player(state.BatsmanID); ok {
			dismissed = p.Name
		}
		return match.ApplyWicket(state)
	})
	if err != nil {
		return card, err
	}

	s.logger.InfoContext(ctx, "wicket recorded",
		"match_id", card.MatchID,
		"batsman", dismissed,
		"bowler", card.BowlerLabel(),
	)

	return card, nil
}

// SwitchTeam swaps batting and bowling sides and clears both selections.
func (s *ScorecardService) SwitchTeam(ctx context.Context) (Scorecard, error) {
	ctx, span := scorecardSpans.Start(ctx, "SwitchTeam")
	defer span.End()

	card, err := s.mutate(ctx, func(state match.State) (match.State, error) {
		return match.SwitchTeam(state), nil
	})
	if err != nil {
		return card, err
	}

	s.logger.InfoContext(ctx, "batting side switched",
		"match_id", card.MatchID,
		"batting_index", card.BattingIndex,
	)

	return card, nil
}

// mutate runs one action as load, apply, save under the service lock.
// A selection failure raises the scorer notice and leaves the match untouched.
func (s *ScorecardService) mutate(ctx context.Context, apply func(match.State) (match.State, error)) (Scorecard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.current(ctx)
	if err != nil {
		return Scorecard{}, err
	}

	next, err := apply(state)
	if err != nil {
		tracing.RecordError(trace.SpanFromContext(ctx), err)
		if errors.Is(err, match.ErrSelectionRequired) {
			s.raiseSelectionNotice(ctx, state)
		}
		return s.view(ctx, state), err
	}

	if err := s.save(ctx, next); err != nil {
		return Scorecard{}, err
	}

	return s.view(ctx, next), nil
}

func (s *ScorecardService) raiseSelectionNotice(ctx context.Context, state match.State) {
	notice := match.NewSelectionRequiredNotice(s.now().UTC(), s.settings.NoticeTTL)
	if s.notices != nil {
		s.notices.Set(ctx, state.ID, notice)
	}

	s.logger.WarnContext(ctx, "scoring action rejected",
		"match_id", state.ID,
		"reason", string(notice.Kind),
		"batsman_selected", state.BatsmanID != 0,
		"bowler_selected", state.BowlerID != 0,
	)
}

// clearNotice drops the notice of the match about to be replaced.
func (s *ScorecardService) clearNotice(ctx context.Context) {
	if s.notices == nil {
		return
	}
	previous, exists, err := s.matchRepo.GetCurrent(ctx)
	if err != nil || !exists {
		return
	}
	s.notices.Delete(ctx, previous.ID)
}

// current loads the match in progress, starting a default one on first use.
func (s *ScorecardService) current(ctx context.Context) (match.State, error) {
	state, exists, err := s.matchRepo.GetCurrent(ctx)
	if err != nil {
		return match.State{}, fmt.Errorf("get current match: %w", err)
	}
	if exists {
		return state, nil
	}

	return s.newMatch(ctx, StartMatchInput{})
}

func (s *ScorecardService) newMatch(ctx context.Context, input StartMatchInput) (match.State, error) {
	teamA := strings.TrimSpace(input.TeamAName)
	if teamA == "" {
		teamA = s.settings.TeamAName
	}
	teamB := strings.TrimSpace(input.TeamBName)
	if teamB == "" {
		teamB = s.settings.TeamBName
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.State{}, fmt.Errorf("generate match id: %w", err)
	}

	state := match.New(matchID, teamA, teamB, s.now().UTC())
	if err := s.save(ctx, state); err != nil {
		return match.State{}, err
	}

	return state, nil
}

func (s *ScorecardService) save(ctx context.Context, state match.State) error {
	state.UpdatedAt = s.now().UTC()
	if err := state.Validate(); err != nil {
		return fmt.Errorf("validate match: %w", err)
	}
	if err := s.matchRepo.Save(ctx, state); err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}

func (s *ScorecardService) view(ctx context.Context, state match.State) Scorecard {
	var active *match.Notice
	if s.notices != nil {
		if notice, ok := s.notices.Get(ctx, state.ID); ok && notice.ActiveAt(s.now().UTC()) {
			active = &notice
		}
	}
	return buildScorecard(state, active, s.settings.RateMode)
}

func requireOnTeam(state match.State, playerID match.PlayerID, teamIndex int, role string) error {
	if playerID <= 0 {
		return fmt.Errorf("%w: %s player id is required", ErrInvalidInput, role)
	}
	_, onTeam, found := state.FindPlayer(playerID)
	if !found {
		return fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	if onTeam != teamIndex {
		return fmt.Errorf("%w: player %d cannot be selected as %s for %s", ErrInvalidInput, playerID, role, state.Teams[teamIndex].Name)
	}
	return nil
}
