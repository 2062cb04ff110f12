package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-scorecard/internal/platform/logging"
)

type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

type route struct {
	pattern string
	handler http.HandlerFunc
}

func systemRoutes(h *Handler, swaggerEnabled bool) []route {
	routes := []route{{"GET /healthz", h.Healthz}}
	if swaggerEnabled {
		routes = append(routes,
			route{"GET " + openAPIPath, h.OpenAPI},
			route{"GET /docs", h.SwaggerUI},
			route{"GET /docs/", h.SwaggerUI},
		)
	}
	return routes
}

func scorecardRoutes(h *Handler) []route {
	return []route{
		{"POST /v1/match", h.StartMatch},
		{"GET /v1/match", h.GetScorecard},
		{"POST /v1/match/teams/{teamIndex}/players", h.AddPlayer},
		{"PUT /v1/match/batsman", h.SelectBatsman},
		{"PUT /v1/match/bowler", h.SelectBowler},
		{"POST /v1/match/balls", h.RecordBall},
		{"POST /v1/match/wickets", h.RecordWicket},
		{"POST /v1/match/switch-team", h.SwitchTeam},
	}
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	for _, group := range [][]route{systemRoutes(handler, opts.SwaggerEnabled), scorecardRoutes(handler)} {
		for _, rt := range group {
			mux.HandleFunc(rt.pattern, rt.handler)
		}
	}

	return chain(mux,
		RequestTracing,
		RequestLogging(logger),
		CORS(opts.CORSAllowedOrigins),
		recoverPanic(logger),
	)
}
