package match

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrSelectionRequired = crerr.New("batsman and bowler must be selected")
	ErrInvalidTeam       = crerr.New("invalid team index")
	ErrInvalidRuns       = crerr.New("runs cannot be negative")
	ErrAllOut            = crerr.New("batting team has no wickets left")
)

// AddPlayer appends a zeroed player to the team roster. A blank name is ignored
// and reported with ok=false.
func AddPlayer(s State, teamIndex int, name string) (State, PlayerID, bool, error) {
	if teamIndex < 0 || teamIndex >= TeamCount {
		return s, 0, false, crerr.Wrapf(ErrInvalidTeam, "team index %d", teamIndex)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return s, 0, false, nil
	}

	next := s.Clone()
	if next.NextPlayerID <= 0 {
		next.NextPlayerID = 1
	}
	id := next.NextPlayerID
	next.NextPlayerID++
	next.Teams[teamIndex].Players = append(next.Teams[teamIndex].Players, Player{ID: id, Name: name})

	return next, id, true, nil
}

func SelectBatsman(s State, id PlayerID) State {
	s.BatsmanID = id
	return s
}

func SelectBowler(s State, id PlayerID) State {
	s.BowlerID = id
	return s
}

// SwitchTeam hands the innings to the other side and clears both selections.
func SwitchTeam(s State) State {
	s.BattingIndex = s.BowlingIndex()
	s.BatsmanID = 0
	s.BowlerID = 0
	return s
}

// participants resolves the selected batsman and bowler to roster positions.
// A selection that does not resolve counts as no selection.
func participants(s State) (batsman, bowler int, err error) {
	if !s.Ready() {
		return -1, -1, ErrSelectionRequired
	}
	batsman = s.BattingTeam().PlayerIndex(s.BatsmanID)
	bowler = s.BowlingTeam().PlayerIndex(s.BowlerID)
	if batsman < 0 || bowler < 0 {
		return -1, -1, ErrSelectionRequired
	}
	return batsman, bowler, nil
}

// ApplyBall records one legal delivery from which the batsman scored runs.
// On error the input state is returned unchanged.
func ApplyBall(s State, runs int) (State, error) {
	if runs < 0 {
		return s, crerr.Wrapf(ErrInvalidRuns, "runs=%d", runs)
	}
	batsmanIdx, bowlerIdx, err := participants(s)
	if err != nil {
		return s, err
	}

	next := s.Clone()
	batting := &next.Teams[next.BattingIndex]
	bowling := &next.Teams[next.BowlingIndex()]

	batsman := &batting.Players[batsmanIdx]
	batsman.Runs += runs
	batsman.Balls++
	switch runs {
	case 4:
		batsman.Fours++
	case 6:
		batsman.Sixes++
	}

	bowler := &bowling.Players[bowlerIdx]
	bowler.Overs = bowler.Overs.AddBall()
	bowler.RunsConceded += runs

	batting.Score += runs
	batting.Overs = batting.Overs.AddBall()

	return next, nil
}

// ApplyWicket dismisses the current batsman and credits the bowler.
// The bowler stays selected; a new batsman must be chosen.
func ApplyWicket(s State) (State, error) {
	_, bowlerIdx, err := participants(s)
	if err != nil {
		return s, err
	}
	if s.BattingTeam().Wickets >= MaxWickets {
		return s, crerr.Wrapf(ErrAllOut, "team=%s", s.BattingTeam().Name)
	}

	next := s.Clone()
	next.Teams[next.BattingIndex].Wickets++
	next.Teams[next.BowlingIndex()].Players[bowlerIdx].Wickets++
	next.BatsmanID = 0

	return next, nil
}
