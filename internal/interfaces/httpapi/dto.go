package httpapi

import (
	"time"

	"github.com/riskibarqy/cricket-scorecard/internal/usecase"
)

type startMatchRequest struct {
	TeamAName string `json:"team_a_name" validate:"omitempty,max=60"`
	TeamBName string `json:"team_b_name" validate:"omitempty,max=60"`
}

// Blank names are accepted and ignored by the service.
type addPlayerRequest struct {
	Name string `json:"name" validate:"max=60"`
}

type selectPlayerRequest struct {
	PlayerID int `json:"player_id" validate:"required,gt=0"`
}

type recordBallRequest struct {
	Runs *int `json:"runs" validate:"required,oneof=0 1 2 3 4 6"`
}

type scorecardDTO struct {
	MatchID            string        `json:"match_id"`
	BattingTeamIndex   int           `json:"batting_team_index"`
	BowlingTeamIndex   int           `json:"bowling_team_index"`
	Teams              []teamCardDTO `json:"teams"`
	CurrentBatsman     *playerRefDTO `json:"current_batsman,omitempty"`
	CurrentBowler      *playerRefDTO `json:"current_bowler,omitempty"`
	CurrentBatsmanName string        `json:"current_batsman_name"`
	CurrentBowlerName  string        `json:"current_bowler_name"`
	Ready              bool          `json:"ready"`
	Notice             *noticeDTO    `json:"notice,omitempty"`
	RateMode           string        `json:"rate_mode"`
	UpdatedAt          string        `json:"updated_at"`
}

type playerRefDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type teamCardDTO struct {
	Index     int             `json:"index"`
	Name      string          `json:"name"`
	Score     int             `json:"score"`
	Wickets   int             `json:"wickets"`
	ScoreLine string          `json:"score_line"`
	Overs     string          `json:"overs"`
	RunRate   string          `json:"run_rate"`
	Batting   bool            `json:"batting"`
	Players   []playerCardDTO `json:"players"`
}

type playerCardDTO struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Batting battingFiguresDTO `json:"batting"`
	Bowling bowlingFiguresDTO `json:"bowling"`
	CanBat  bool              `json:"can_bat"`
	CanBowl bool              `json:"can_bowl"`
}

type battingFiguresDTO struct {
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Fours      int    `json:"fours"`
	Sixes      int    `json:"sixes"`
	StrikeRate string `json:"strike_rate"`
}

type bowlingFiguresDTO struct {
	Wickets      int    `json:"wickets"`
	RunsConceded int    `json:"runs_conceded"`
	Overs        string `json:"overs"`
	Economy      string `json:"economy"`
}

type noticeDTO struct {
	Kind         string `json:"kind"`
	Message      string `json:"message"`
	RaisedAt     string `json:"raised_at"`
	DisplayUntil string `json:"display_until"`
}

type addPlayerDTO struct {
	PlayerID  int          `json:"player_id,omitempty"`
	Added     bool         `json:"added"`
	Scorecard scorecardDTO `json:"scorecard"`
}

func scorecardToDTO(card usecase.Scorecard) scorecardDTO {
	out := scorecardDTO{
		MatchID:            card.MatchID,
		BattingTeamIndex:   card.BattingIndex,
		BowlingTeamIndex:   card.BowlingIndex,
		Teams:              make([]teamCardDTO, 0, len(card.Teams)),
		CurrentBatsmanName: card.BatsmanLabel(),
		CurrentBowlerName:  card.BowlerLabel(),
		Ready:              card.Ready,
		RateMode:           string(card.RateMode),
		UpdatedAt:          formatTime(card.UpdatedAt),
	}

	for _, t := range card.Teams {
		players := make([]playerCardDTO, 0, len(t.Players))
		for _, p := range t.Players {
			players = append(players, playerCardDTO{
				ID:   int(p.ID),
				Name: p.Name,
				Batting: battingFiguresDTO{
					Runs:       p.Runs,
					Balls:      p.Balls,
					Fours:      p.Fours,
					Sixes:      p.Sixes,
					StrikeRate: p.StrikeRate,
				},
				Bowling: bowlingFiguresDTO{
					Wickets:      p.Wickets,
					RunsConceded: p.RunsConceded,
					Overs:        p.Overs,
					Economy:      p.Economy,
				},
				CanBat:  p.CanBat,
				CanBowl: p.CanBowl,
			})
		}

		out.Teams = append(out.Teams, teamCardDTO{
			Index:     t.Index,
			Name:      t.Name,
			Score:     t.Score,
			Wickets:   t.Wickets,
			ScoreLine: t.ScoreLine,
			Overs:     t.Overs,
			RunRate:   t.RunRate,
			Batting:   t.Batting,
			Players:   players,
		})
	}

	if card.CurrentBatsman != nil {
		out.CurrentBatsman = &playerRefDTO{ID: int(card.CurrentBatsman.ID), Name: card.CurrentBatsman.Name}
	}
	if card.CurrentBowler != nil {
		out.CurrentBowler = &playerRefDTO{ID: int(card.CurrentBowler.ID), Name: card.CurrentBowler.Name}
	}
	if card.Notice != nil {
		out.Notice = &noticeDTO{
			Kind:         string(card.Notice.Kind),
			Message:      card.Notice.Message,
			RaisedAt:     formatTime(card.Notice.RaisedAt),
			DisplayUntil: formatTime(card.Notice.DisplayUntil),
		}
	}

	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
