package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/cricket-scorecard/internal/domain/match"
	"github.com/riskibarqy/cricket-scorecard/internal/usecase"
)

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpans.Start(r.Context(), "StartMatch")
	defer span.End()

	var req startMatchRequest
	if err := decodeRequest(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	card, err := h.scorecardService.StartMatch(ctx, usecase.StartMatchInput{
		TeamAName: req.TeamAName,
		TeamBName: req.TeamBName,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "start match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, scorecardToDTO(card))
}

func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpans.Start(r.Context(), "GetScorecard")
	defer span.End()

	card, err := h.scorecardService.GetScorecard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get scorecard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, scorecardToDTO(card))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpans.Start(r.Context(), "AddPlayer")
	defer span.End()

	teamIndex, err := strconv.Atoi(strings.TrimSpace(r.PathValue("teamIndex")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: team index must be a number", usecase.ErrInvalidInput))
		return
	}

	var req addPlayerRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.scorecardService.AddPlayer(ctx, usecase.AddPlayerInput{
		TeamIndex: teamIndex,
		Name:      req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add player failed", "team_index", teamIndex, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if res.Added {
		status = http.StatusCreated
	}
	writeSuccess(w, status, addPlayerDTO{
		PlayerID:  int(res.PlayerID),
		Added:     res.Added,
		Scorecard: scorecardToDTO(res.Scorecard),
	})
}

func (h *Handler) SelectBatsman(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpans.Start(r.Context(), "SelectBatsman")
	defer span.End()

	var req selectPlayerRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	card, err := h.scorecardService.SelectBatsman(ctx, match.PlayerID(req.PlayerID))
	if err != nil {
		h.logger.WarnContext(ctx, "select batsman failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, scorecardToDTO(card))
}

func (h *Handler) SelectBowler(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpans.Start(r.Context(), "SelectBowler")
	defer span.End()

	var req selectPlayerRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	card, err := h.scorecardService.SelectBowler(ctx, match.PlayerID(req.PlayerID))
	if err != nil {
		h.logger.WarnContext(ctx, "select bowler failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, scorecardToDTO(card))
}

func (h *Handler) RecordBall(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpans.Start(r.Context(), "RecordBall")
	defer span.End()

	var req recordBallRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	card, err := h.scorecardService.RecordBall(ctx, *req.Runs)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, scorecardToDTO(card))
}

func (h *Handler) RecordWicket(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpans.Start(r.Context(), "RecordWicket")
	defer span.End()

	card, err := h.scorecardService.RecordWicket(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, scorecardToDTO(card))
}

func (h *Handler) SwitchTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpans.Start(r.Context(), "SwitchTeam")
	defer span.End()

	card, err := h.scorecardService.SwitchTeam(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "switch team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, scorecardToDTO(card))
}
