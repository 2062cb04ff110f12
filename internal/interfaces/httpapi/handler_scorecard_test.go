package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-scorecard/internal/domain/match"
	"github.com/riskibarqy/cricket-scorecard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/cache"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorecard/internal/usecase"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type scorecardEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       scorecardDTO     `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

type addPlayerEnvelope struct {
	Data  addPlayerDTO     `json:"data"`
	Error *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	service := usecase.NewScorecardService(
		memory.NewMatchRepository(),
		cache.NewStore[match.Notice](3*time.Second),
		staticIDGenerator{id: "match-http"},
		usecase.ScorecardSettings{NoticeTTL: 3 * time.Second},
		logger,
	)
	return NewRouter(NewHandler(service, logger), logger, RouterOptions{SwaggerEnabled: true, CORSAllowedOrigins: []string{"*"}})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeScorecard(t *testing.T, rec *httptest.ResponseRecorder) scorecardEnvelope {
	t.Helper()

	var out scorecardEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal scorecard: %v body=%s", err, rec.Body.String())
	}
	return out
}

func addPlayerVia(t *testing.T, router http.Handler, teamIndex, name string) int {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/v1/match/teams/"+teamIndex+"/players", `{"name":"`+name+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add player %s: status=%d body=%s", name, rec.Code, rec.Body.String())
	}

	var out addPlayerEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal add player: %v", err)
	}
	if !out.Data.Added || out.Data.PlayerID <= 0 {
		t.Fatalf("unexpected add player payload: %+v", out.Data)
	}
	return out.Data.PlayerID
}

func TestHandler_ScoringFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/match", `{"team_a_name":"India","team_b_name":"Australia"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start match: status=%d body=%s", rec.Code, rec.Body.String())
	}
	started := decodeScorecard(t, rec)
	if started.APIVersion != "2.0" || started.Data.MatchID != "match-http" {
		t.Fatalf("unexpected start payload: %+v", started)
	}
	if started.Data.CurrentBatsmanName != "None selected" {
		t.Fatalf("expected placeholder batsman name, got %q", started.Data.CurrentBatsmanName)
	}

	batter := addPlayerVia(t, router, "0", "Kohli")
	bowler := addPlayerVia(t, router, "1", "Cummins")

	rec = doRequest(t, router, http.MethodPut, "/v1/match/batsman", `{"player_id":`+strconv.Itoa(batter)+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("select batsman: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, router, http.MethodPut, "/v1/match/bowler", `{"player_id":`+strconv.Itoa(bowler)+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("select bowler: status=%d body=%s", rec.Code, rec.Body.String())
	}

	for i := 0; i < 6; i++ {
		rec = doRequest(t, router, http.MethodPost, "/v1/match/balls", `{"runs":4}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("record ball %d: status=%d body=%s", i+1, rec.Code, rec.Body.String())
		}
	}

	card := decodeScorecard(t, rec).Data
	team := card.Teams[0]
	if team.ScoreLine != "24/0" || team.Overs != "1.0" || team.RunRate != "24.00" {
		t.Fatalf("unexpected batting team: %+v", team)
	}
	if got := team.Players[0].Batting; got.Runs != 24 || got.Fours != 6 || got.StrikeRate != "400.00" {
		t.Fatalf("unexpected batting figures: %+v", got)
	}
	if got := card.Teams[1].Players[0].Bowling; got.Overs != "1.0" || got.RunsConceded != 24 {
		t.Fatalf("unexpected bowling figures: %+v", got)
	}
	if !team.Players[0].CanBat || team.Players[0].CanBowl {
		t.Fatalf("unexpected affordances for batter: %+v", team.Players[0])
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/match/wickets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("record wicket: status=%d body=%s", rec.Code, rec.Body.String())
	}
	card = decodeScorecard(t, rec).Data
	if card.Teams[0].ScoreLine != "24/1" || card.CurrentBatsman != nil {
		t.Fatalf("unexpected card after wicket: %+v", card)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/match/switch-team", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("switch team: status=%d body=%s", rec.Code, rec.Body.String())
	}
	card = decodeScorecard(t, rec).Data
	if card.BattingTeamIndex != 1 || card.CurrentBowler != nil {
		t.Fatalf("unexpected card after switch: %+v", card)
	}
}

func TestHandler_RecordBall_WithoutSelectionReturnsConflictAndNotice(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/match/balls", `{"runs":1}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	failed := decodeScorecard(t, rec)
	if failed.Error == nil || failed.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("unexpected error body: %+v", failed.Error)
	}
	if failed.Error.Errors[0].Reason != "selectionRequired" {
		t.Fatalf("unexpected reason: %s", failed.Error.Errors[0].Reason)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/match", "")
	card := decodeScorecard(t, rec).Data
	if card.Notice == nil || card.Notice.Message != match.SelectionRequiredMessage {
		t.Fatalf("expected active notice, got %+v", card.Notice)
	}
	if card.Teams[0].Score != 0 || card.Teams[0].Overs != "0.0" {
		t.Fatalf("rejected ball changed the score: %+v", card.Teams[0])
	}
}

func TestHandler_ValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "runs of five", method: http.MethodPost, path: "/v1/match/balls", body: `{"runs":5}`, want: http.StatusBadRequest},
		{name: "negative runs", method: http.MethodPost, path: "/v1/match/balls", body: `{"runs":-1}`, want: http.StatusBadRequest},
		{name: "missing runs", method: http.MethodPost, path: "/v1/match/balls", body: `{}`, want: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/v1/match/balls", body: `{"runs":1,"extra":true}`, want: http.StatusBadRequest},
		{name: "empty ball body", method: http.MethodPost, path: "/v1/match/balls", body: "", want: http.StatusBadRequest},
		{name: "team index out of range", method: http.MethodPost, path: "/v1/match/teams/2/players", body: `{"name":"X"}`, want: http.StatusBadRequest},
		{name: "team index not a number", method: http.MethodPost, path: "/v1/match/teams/a/players", body: `{"name":"X"}`, want: http.StatusBadRequest},
		{name: "zero player id", method: http.MethodPut, path: "/v1/match/batsman", body: `{"player_id":0}`, want: http.StatusBadRequest},
		{name: "unknown player", method: http.MethodPut, path: "/v1/match/bowler", body: `{"player_id":42}`, want: http.StatusNotFound},
		{name: "team name too long", method: http.MethodPost, path: "/v1/match", body: `{"team_a_name":"` + strings.Repeat("x", 61) + `"}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d body=%s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandler_AddPlayer_BlankNameIsIgnored(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/match/teams/0/players", `{"name":"   "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var out addPlayerEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal add player: %v", err)
	}
	if out.Data.Added || len(out.Data.Scorecard.Teams[0].Players) != 0 {
		t.Fatalf("blank name must not add a player: %+v", out.Data)
	}
}

func TestHandler_StartMatch_EmptyBodyUsesDefaults(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/match", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	card := decodeScorecard(t, rec).Data
	if card.Teams[0].Name != "Team A" || card.Teams[1].Name != "Team B" {
		t.Fatalf("unexpected default names: %q %q", card.Teams[0].Name, card.Teams[1].Name)
	}
}

func TestHandler_HealthAndDocs(t *testing.T) {
	router := newTestRouter(t)

	if rec := doRequest(t, router, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
	rec := doRequest(t, router, http.MethodGet, "/openapi.yaml", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/v1/match/balls") {
		t.Fatalf("openapi: status=%d", rec.Code)
	}
}
