package usecase

import (
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-scorecard/internal/domain/match"
)

const noneSelected = "None selected"

// Scorecard is the read model returned after every action.
type Scorecard struct {
	MatchID        string
	Teams          []TeamCard
	BattingIndex   int
	BowlingIndex   int
	CurrentBatsman *PlayerRef
	CurrentBowler  *PlayerRef
	Ready          bool
	Notice         *match.Notice
	RateMode       match.RateMode
	UpdatedAt      time.Time
}

type PlayerRef struct {
	ID   match.PlayerID
	Name string
}

type TeamCard struct {
	Index     int
	Name      string
	Score     int
	Wickets   int
	ScoreLine string
	Overs     string
	RunRate   string
	Batting   bool
	Players   []PlayerCard
}

type PlayerCard struct {
	ID   match.PlayerID
	Name string

	Runs       int
	Balls      int
	Fours      int
	Sixes      int
	StrikeRate string

	Wickets      int
	RunsConceded int
	Overs        string
	Economy      string

	CanBat  bool
	CanBowl bool
}

// BatsmanLabel is the current batsman name or the empty-selection placeholder.
func (s Scorecard) BatsmanLabel() string {
	if s.CurrentBatsman == nil {
		return noneSelected
	}
	return s.CurrentBatsman.Name
}

func (s Scorecard) BowlerLabel() string {
	if s.CurrentBowler == nil {
		return noneSelected
	}
	return s.CurrentBowler.Name
}

func buildScorecard(state match.State, notice *match.Notice, mode match.RateMode) Scorecard {
	card := Scorecard{
		MatchID:      state.ID,
		Teams:        make([]TeamCard, 0, match.TeamCount),
		BattingIndex: state.BattingIndex,
		BowlingIndex: state.BowlingIndex(),
		Ready:        state.Ready(),
		Notice:       notice,
		RateMode:     mode,
		UpdatedAt:    state.UpdatedAt,
	}

	for idx, t := range state.Teams {
		batting := idx == state.BattingIndex
		players := make([]PlayerCard, 0, len(t.Players))
		for _, p := range t.Players {
			players = append(players, PlayerCard{
				ID:           p.ID,
				Name:         p.Name,
				Runs:         p.Runs,
				Balls:        p.Balls,
				Fours:        p.Fours,
				Sixes:        p.Sixes,
				StrikeRate:   match.FormatRate(match.StrikeRate(p)),
				Wickets:      p.Wickets,
				RunsConceded: p.RunsConceded,
				Overs:        p.Overs.String(),
				Economy:      match.FormatRate(match.Economy(p, mode)),
				CanBat:       batting,
				CanBowl:      !batting,
			})
		}

		card.Teams = append(card.Teams, TeamCard{
			Index:     idx,
			Name:      t.Name,
			Score:     t.Score,
			Wickets:   t.Wickets,
			ScoreLine: fmt.Sprintf("%d/%d", t.Score, t.Wickets),
			Overs:     t.Overs.String(),
			RunRate:   match.FormatRate(match.RunRate(t, mode)),
			Batting:   batting,
			Players:   players,
		})
	}

	if p, ok := state.BattingTeam().Player(state.BatsmanID); ok {
		card.CurrentBatsman = &PlayerRef{ID: p.ID, Name: p.Name}
	}
	if p, ok := state.BowlingTeam().Player(state.BowlerID); ok {
		card.CurrentBowler = &PlayerRef{ID: p.ID, Name: p.Name}
	}

	return card
}
