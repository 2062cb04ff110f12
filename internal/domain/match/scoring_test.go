package match

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// newReadyMatch builds a match with P1 batting for Team A and Q1 bowling for Team B.
func newReadyMatch(t *testing.T) (State, PlayerID, PlayerID) {
	t.Helper()

	s := New("match-1", "", "", time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	s, p1, ok, err := AddPlayer(s, 0, "P1")
	if err != nil || !ok {
		t.Fatalf("add P1: ok=%v err=%v", ok, err)
	}
	s, q1, ok, err := AddPlayer(s, 1, "Q1")
	if err != nil || !ok {
		t.Fatalf("add Q1: ok=%v err=%v", ok, err)
	}

	s = SelectBatsman(s, p1)
	s = SelectBowler(s, q1)
	return s, p1, q1
}

func TestNew_DefaultTeamNames(t *testing.T) {
	s := New("m", "", "Lions", time.Time{})
	if s.Teams[0].Name != DefaultTeamAName {
		t.Fatalf("expected %q, got %q", DefaultTeamAName, s.Teams[0].Name)
	}
	if s.Teams[1].Name != "Lions" {
		t.Fatalf("expected Lions, got %q", s.Teams[1].Name)
	}
	if s.BattingIndex != 0 || s.Ready() {
		t.Fatalf("expected team 0 batting with no selection")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestAddPlayer(t *testing.T) {
	s := New("m", "", "", time.Time{})

	t.Run("blank name is ignored", func(t *testing.T) {
		next, id, ok, err := AddPlayer(s, 0, "   ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || id != 0 {
			t.Fatalf("expected no player added, got ok=%v id=%d", ok, id)
		}
		if len(next.Teams[0].Players) != 0 {
			t.Fatalf("expected empty roster")
		}
	})

	t.Run("invalid team index", func(t *testing.T) {
		_, _, _, err := AddPlayer(s, 2, "X")
		if !errors.Is(err, ErrInvalidTeam) {
			t.Fatalf("expected ErrInvalidTeam, got %v", err)
		}
	})

	t.Run("duplicate names get distinct ids", func(t *testing.T) {
		next, first, _, _ := AddPlayer(s, 0, "Sharma")
		next, second, _, _ := AddPlayer(next, 0, "Sharma")
		if first == second {
			t.Fatalf("expected distinct ids, got %d twice", first)
		}
		if len(next.Teams[0].Players) != 2 {
			t.Fatalf("expected two players, got %d", len(next.Teams[0].Players))
		}
		if len(s.Teams[0].Players) != 0 {
			t.Fatalf("input state was mutated")
		}
	})
}

func TestApplyBall_SixFoursCompletesOneOver(t *testing.T) {
	s, p1, q1 := newReadyMatch(t)

	var err error
	for i := 0; i < 6; i++ {
		s, err = ApplyBall(s, 4)
		if err != nil {
			t.Fatalf("ball %d: %v", i+1, err)
		}
	}

	batsman, _ := s.Teams[0].Player(p1)
	if batsman.Runs != 24 || batsman.Balls != 6 || batsman.Fours != 6 || batsman.Sixes != 0 {
		t.Fatalf("unexpected batsman stats: %+v", batsman)
	}

	bowler, _ := s.Teams[1].Player(q1)
	if bowler.Overs != (Overs{Whole: 1}) || bowler.RunsConceded != 24 {
		t.Fatalf("unexpected bowler stats: %+v", bowler)
	}

	team := s.Teams[0]
	if team.Score != 24 || team.Overs != (Overs{Whole: 1}) {
		t.Fatalf("unexpected team totals: score=%d overs=%s", team.Score, team.Overs)
	}
	if got := FormatRate(RunRate(team, RateModeTrueOvers)); got != "24.00" {
		t.Fatalf("expected run rate 24.00, got %s", got)
	}
}

func TestApplyBall_BoundariesAndSixes(t *testing.T) {
	s, p1, _ := newReadyMatch(t)

	for _, runs := range []int{0, 1, 2, 3, 4, 6, 6} {
		var err error
		s, err = ApplyBall(s, runs)
		if err != nil {
			t.Fatalf("runs=%d: %v", runs, err)
		}
	}

	batsman, _ := s.Teams[0].Player(p1)
	if batsman.Runs != 22 || batsman.Balls != 7 || batsman.Fours != 1 || batsman.Sixes != 2 {
		t.Fatalf("unexpected batsman stats: %+v", batsman)
	}
	if s.Teams[0].Overs != (Overs{Whole: 1, Balls: 1}) {
		t.Fatalf("expected 1.1 overs, got %s", s.Teams[0].Overs)
	}
}

func TestApplyBall_TeamScoreEqualsBatsmenRuns(t *testing.T) {
	s, _, _ := newReadyMatch(t)
	s, p2, _, _ := AddPlayer(s, 0, "P2")

	sequence := []int{1, 4, 0, 6, 2, 3, 1, 1, 4}
	for i, runs := range sequence {
		if i == 4 {
			var err error
			s, err = ApplyWicket(s)
			if err != nil {
				t.Fatalf("wicket: %v", err)
			}
			s = SelectBatsman(s, p2)
		}
		var err error
		s, err = ApplyBall(s, runs)
		if err != nil {
			t.Fatalf("ball %d: %v", i, err)
		}
	}

	sum := 0
	for _, p := range s.Teams[0].Players {
		sum += p.Runs
	}
	if s.Teams[0].Score != sum {
		t.Fatalf("team score %d does not match batsmen total %d", s.Teams[0].Score, sum)
	}
	if s.Teams[0].Overs.TotalBalls() != len(sequence) {
		t.Fatalf("expected %d balls, got %d", len(sequence), s.Teams[0].Overs.TotalBalls())
	}
}

func TestApplyBall_RequiresSelection(t *testing.T) {
	ready, _, _ := newReadyMatch(t)

	tests := []struct {
		name  string
		state State
	}{
		{name: "no batsman", state: SelectBatsman(ready, 0)},
		{name: "no bowler", state: SelectBowler(ready, 0)},
		{name: "nothing selected", state: SwitchTeam(SwitchTeam(ready))},
		{name: "batsman from bowling side", state: SelectBatsman(ready, ready.BowlerID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.state.Clone()

			got, err := ApplyBall(tt.state, 4)
			if !errors.Is(err, ErrSelectionRequired) {
				t.Fatalf("expected ErrSelectionRequired, got %v", err)
			}
			if !reflect.DeepEqual(got, before) {
				t.Fatalf("state changed on failed ball")
			}

			got, err = ApplyWicket(tt.state)
			if !errors.Is(err, ErrSelectionRequired) {
				t.Fatalf("expected ErrSelectionRequired, got %v", err)
			}
			if !reflect.DeepEqual(got, before) {
				t.Fatalf("state changed on failed wicket")
			}
		})
	}
}

func TestApplyBall_NegativeRuns(t *testing.T) {
	s, _, _ := newReadyMatch(t)
	if _, err := ApplyBall(s, -1); !errors.Is(err, ErrInvalidRuns) {
		t.Fatalf("expected ErrInvalidRuns, got %v", err)
	}
}

func TestApplyWicket(t *testing.T) {
	s, _, q1 := newReadyMatch(t)

	next, err := ApplyWicket(s)
	if err != nil {
		t.Fatalf("apply wicket: %v", err)
	}

	if next.Teams[0].Wickets != 1 || next.Teams[1].Wickets != 0 {
		t.Fatalf("unexpected team wickets: %d/%d", next.Teams[0].Wickets, next.Teams[1].Wickets)
	}
	bowler, _ := next.Teams[1].Player(q1)
	if bowler.Wickets != 1 {
		t.Fatalf("expected bowler wickets 1, got %d", bowler.Wickets)
	}
	if next.BatsmanID != 0 {
		t.Fatalf("expected batsman cleared")
	}
	if next.BowlerID != q1 {
		t.Fatalf("expected bowler kept")
	}
	if !next.Teams[0].Overs.IsZero() || next.Teams[0].Score != 0 || bowler.RunsConceded != 0 || !bowler.Overs.IsZero() {
		t.Fatalf("wicket must not change runs or overs")
	}

	if _, err := ApplyWicket(next); !errors.Is(err, ErrSelectionRequired) {
		t.Fatalf("expected ErrSelectionRequired after batsman cleared, got %v", err)
	}
}

func TestApplyWicket_AllOut(t *testing.T) {
	s, p1, _ := newReadyMatch(t)

	for i := 0; i < MaxWickets; i++ {
		var err error
		s, err = ApplyWicket(s)
		if err != nil {
			t.Fatalf("wicket %d: %v", i+1, err)
		}
		s = SelectBatsman(s, p1)
	}

	got, err := ApplyWicket(s)
	if !errors.Is(err, ErrAllOut) {
		t.Fatalf("expected ErrAllOut, got %v", err)
	}
	if got.Teams[0].Wickets != MaxWickets {
		t.Fatalf("expected wickets to stay at %d, got %d", MaxWickets, got.Teams[0].Wickets)
	}
}

func TestSwitchTeam(t *testing.T) {
	s, _, _ := newReadyMatch(t)

	once := SwitchTeam(s)
	if once.BattingIndex != 1 || once.BowlingIndex() != 0 {
		t.Fatalf("expected team 1 batting, got %d", once.BattingIndex)
	}
	if once.BatsmanID != 0 || once.BowlerID != 0 {
		t.Fatalf("expected selections cleared")
	}

	twice := SwitchTeam(once)
	if twice.BattingIndex != s.BattingIndex {
		t.Fatalf("expected batting index restored")
	}
	if twice.Ready() {
		t.Fatalf("expected selections still cleared")
	}
}

func TestApplyBall_BowlerAndTeamOversStayInStep(t *testing.T) {
	s, _, q1 := newReadyMatch(t)

	for i := 0; i < 17; i++ {
		var err error
		s, err = ApplyBall(s, 1)
		if err != nil {
			t.Fatalf("ball %d: %v", i+1, err)
		}
	}

	bowler, _ := s.Teams[1].Player(q1)
	if bowler.Overs != s.Teams[0].Overs {
		t.Fatalf("bowler overs %s drifted from team overs %s", bowler.Overs, s.Teams[0].Overs)
	}
	if s.Teams[0].Overs.String() != "2.5" {
		t.Fatalf("expected 2.5 overs, got %s", s.Teams[0].Overs)
	}
}
