package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/cricket-scorecard/internal/config"
	"github.com/riskibarqy/cricket-scorecard/internal/domain/match"
	"github.com/riskibarqy/cricket-scorecard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-scorecard/internal/interfaces/httpapi"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/cache"
	idgen "github.com/riskibarqy/cricket-scorecard/internal/platform/id"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorecard/internal/usecase"
)

func NewScorecardService(cfg config.Config, logger *logging.Logger) *usecase.ScorecardService {
	return usecase.NewScorecardService(
		memory.NewMatchRepository(),
		cache.NewStore[match.Notice](cfg.NoticeTTL),
		idgen.NewUUIDGenerator("match_"),
		usecase.ScorecardSettings{
			TeamAName: cfg.TeamAName,
			TeamBName: cfg.TeamBName,
			NoticeTTL: cfg.NoticeTTL,
			RateMode:  cfg.RateMode,
		},
		logger,
	)
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	scorecardSvc := NewScorecardService(cfg, logger)
	handler := httpapi.NewHandler(scorecardSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
