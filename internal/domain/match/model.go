package match

import (
	"time"

	crerr "github.com/cockroachdb/errors"
)

const (
	TeamCount  = 2
	MaxWickets = 10

	DefaultTeamAName = "Team A"
	DefaultTeamBName = "Team B"
)

// PlayerID identifies a player inside one match. Zero means no player.
type PlayerID int

// Player carries both batting and bowling counters for one person.
type Player struct {
	ID   PlayerID
	Name string

	Runs  int
	Balls int
	Fours int
	Sixes int

	Overs        Overs
	Wickets      int
	RunsConceded int
}

// Team is one side of the match with its aggregate innings counters.
type Team struct {
	Name    string
	Players []Player
	Score   int
	Wickets int
	Overs   Overs
}

// PlayerIndex returns the roster position of id, or -1.
func (t Team) PlayerIndex(id PlayerID) int {
	if id == 0 {
		return -1
	}
	for i := range t.Players {
		if t.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func (t Team) Player(id PlayerID) (Player, bool) {
	idx := t.PlayerIndex(id)
	if idx < 0 {
		return Player{}, false
	}
	return t.Players[idx], true
}

// State is the whole scorecard of one match.
type State struct {
	ID           string
	Teams        [TeamCount]Team
	BattingIndex int
	BatsmanID    PlayerID
	BowlerID     PlayerID
	NextPlayerID PlayerID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New starts a match with empty rosters and Team A batting.
func New(id, teamAName, teamBName string, now time.Time) State {
	if teamAName == "" {
		teamAName = DefaultTeamAName
	}
	if teamBName == "" {
		teamBName = DefaultTeamBName
	}

	return State{
		ID: id,
		Teams: [TeamCount]Team{
			{Name: teamAName},
			{Name: teamBName},
		},
		NextPlayerID: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s State) BowlingIndex() int {
	return 1 - s.BattingIndex
}

func (s State) BattingTeam() Team {
	return s.Teams[s.BattingIndex]
}

func (s State) BowlingTeam() Team {
	return s.Teams[s.BowlingIndex()]
}

// Ready reports whether both a batsman and a bowler are selected.
func (s State) Ready() bool {
	return s.BatsmanID != 0 && s.BowlerID != 0
}

// FindPlayer looks a player up across both rosters.
func (s State) FindPlayer(id PlayerID) (Player, int, bool) {
	for teamIndex := range s.Teams {
		if p, ok := s.Teams[teamIndex].Player(id); ok {
			return p, teamIndex, true
		}
	}
	return Player{}, -1, false
}

func (s State) Validate() error {
	if s.ID == "" {
		return crerr.New("match id is required")
	}
	if s.BattingIndex != 0 && s.BattingIndex != 1 {
		return crerr.Wrapf(ErrInvalidTeam, "batting index %d", s.BattingIndex)
	}
	for i, t := range s.Teams {
		if t.Name == "" {
			return crerr.Newf("team %d name is required", i)
		}
		if t.Wickets < 0 || t.Wickets > MaxWickets {
			return crerr.Newf("team %d wickets out of range: %d", i, t.Wickets)
		}
		if t.Overs.Balls < 0 || t.Overs.Balls >= BallsPerOver {
			return crerr.Newf("team %d overs balls out of range: %d", i, t.Overs.Balls)
		}
	}

	return nil
}

// Clone deep-copies the rosters so the result can be mutated independently.
func (s State) Clone() State {
	copied := s
	for i := range s.Teams {
		copied.Teams[i].Players = append([]Player(nil), s.Teams[i].Players...)
	}
	return copied
}
