package main

import (
	"context"
	"time"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/internal/config"
	"github.com/SAACyberV99/VibeFlix/internal/errors"
	"github.com/SAACyberV99/VibeFlix/internal/handlers"
	"github.com/SAACyberV99/VibeFlix/internal/render"
	"github.com/SAACyberV99/VibeFlix/internal/view"
	"github.com/SAACyberV99/VibeFlix/pkg/logger"
	"github.com/SAACyberV99/VibeFlix/pkg/ratelimiter"
)

const sessionSweepInterval = 10 * time.Minute

var (
	Logger   logger.Logger
	Config   *config.Config
	sessions *view.Store
	limiter  *ratelimiter.PerClient
	handler  *handlers.Handler
)

func InitializeLogger() {
	Logger = logger.New()
}

func InitializeConfig() {
	var err error
	Config, err = config.Load()
	if err != nil {
		Logger.Fatalf("[App] failed to load configuration: %v", err)
	}

	// The config file may set a different level than the environment
	if !logger.ValidLevel(Config.LogLevel) {
		Logger.Warnf("[App] unknown log level '%s', defaulting to info", Config.LogLevel)
	}
	Logger = logger.NewWithLevel(Config.LogLevel)
}

func InitializeServices(ctx context.Context) {
	engine := browse.NewEngine(Config.Locale)

	images := catalog.DefaultImages()
	images.PosterBase = Config.TMDBImageBaseURL
	renderer, err := render.New(images)
	if err != nil {
		Logger.Fatalf("[App] failed to load templates: %v", err)
	}

	if Config.RateLimitEnabled() {
		limiter = ratelimiter.NewPerClient(Config.RateLimitRPS, Config.RateLimitBurst)
		limiter.StartCleanup(ctx)
	}

	if Config.NeedsSetup() {
		Logger.Warnf("[App] TMDB_API_KEY is not set; serving setup instructions only")
		handler = handlers.New(Config, nil, nil, renderer, engine, Logger)
		return
	}

	client := catalog.NewClient(Config.TMDBAPIKey,
		catalog.WithBaseURL(Config.TMDBBaseURL),
		catalog.WithTimeout(Config.HTTPTimeout),
		catalog.WithLogger(Logger),
	)
	if err := client.CheckAPIKey(); errors.Is(err, errors.ErrorTypeAPIKeyInvalid) {
		Logger.Warnf("[App] TMDB_API_KEY does not look like a v3 key (32 hex characters); requests will probably fail")
	}

	sessions = view.NewStore(Config.SessionCapacity, Config.SessionTTL, client, engine, Logger)
	sessions.StartCleanup(ctx, sessionSweepInterval)

	handler = handlers.New(Config, client, sessions, renderer, engine, Logger)

	Logger.Infof("[App] services initialized successfully")
}
