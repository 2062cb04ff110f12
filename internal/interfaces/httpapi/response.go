package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-scorecard/internal/domain/match"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/tracing"
	"github.com/riskibarqy/cricket-scorecard/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/trace"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "cricket-scorecard"

	reasonSelectionRequired = "selectionRequired"
	reasonInternal          = "internalError"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorRules is checked in order; the first sentinel found in the chain wins.
var errorRules = []struct {
	targets []error
	mapped  mappedError
}{
	{
		targets: []error{match.ErrSelectionRequired},
		mapped:  mappedError{HTTPStatus: http.StatusConflict, Reason: reasonSelectionRequired, Status: "FAILED_PRECONDITION"},
	},
	{
		targets: []error{match.ErrAllOut},
		mapped:  mappedError{HTTPStatus: http.StatusConflict, Reason: "allOut", Status: "FAILED_PRECONDITION"},
	},
	{
		targets: []error{usecase.ErrInvalidInput, match.ErrInvalidTeam, match.ErrInvalidRuns},
		mapped:  mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		targets: []error{usecase.ErrNotFound},
		mapped:  mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: reasonInternal, Status: "INTERNAL"}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.mapped
			}
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		writeEncodeFailure(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeEncodeFailure(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`))
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError renders err in the error envelope. Server-side failures are
// recorded on the active span; internal details stay out of the message.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)

	message := err.Error()
	detail := message
	switch mapped.Reason {
	case reasonSelectionRequired:
		message = match.SelectionRequiredMessage
	case reasonInternal:
		tracing.RecordError(trace.SpanFromContext(ctx), err)
		message = "internal server error"
		detail = message
	}

	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: detail,
			}},
		},
	})
}
