package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/tracing"
	"github.com/riskibarqy/cricket-scorecard/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const maxRequestBodyBytes = 64 << 10

var handlerSpans = tracing.NewScope("cricket-scorecard/internal/interfaces/httpapi", "httpapi.Handler.")

type Handler struct {
	scorecardService *usecase.ScorecardService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(scorecardService *usecase.ScorecardService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scorecardService: scorecardService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst. An empty body leaves dst zeroed
// when allowEmpty is set.
func decodeRequest(r *http.Request, dst any, allowEmpty bool) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if r.Body != nil {
		if _, err := buf.ReadFrom(io.LimitReader(r.Body, maxRequestBodyBytes)); err != nil {
			return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
		}
	}
	if len(bytes.TrimSpace(buf.B)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(buf.B))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
