// Command server runs the portfolio's activity-data API: two JSON routes
// backed by the Strava aggregation engine, with token persistence and an
// optional background cache warmer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron"
	"go.uber.org/zap"

	"github.com/AshifAli007/portfolio-v4/internal/auth"
	"github.com/AshifAli007/portfolio-v4/internal/cache"
	"github.com/AshifAli007/portfolio-v4/internal/config"
	"github.com/AshifAli007/portfolio-v4/internal/server"
	"github.com/AshifAli007/portfolio-v4/internal/service"
	"github.com/AshifAli007/portfolio-v4/internal/store"
	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

func main() {
	authorize := flag.Bool("authorize", false, "run the one-shot OAuth flow and store the token")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := run(*authorize, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(authorize bool, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	goal, err := config.LoadGoal(cfg.GoalFile)
	if err != nil {
		return err
	}

	var tokenDB *store.DB
	if cfg.TokenDBPath != "" {
		tokenDB, err = store.Open(cfg.TokenDBPath)
		if err != nil {
			return fmt.Errorf("opening token store: %w", err)
		}
		defer tokenDB.Close()
	}

	if authorize {
		return runAuthorize(ctx, cfg, tokenDB)
	}

	seed := seedToken(cfg, tokenDB, logger)
	cfg = withSeedCredentials(cfg, seed)
	if !cfg.Configured() {
		logger.Warn("strava integration not configured; API routes will fail fast")
	}

	tokens := strava.NewTokenManager(
		auth.NewOAuthConfig(cfg.ClientID, cfg.ClientSecret, ""),
		seed,
		persistOnRefresh(cfg, tokenDB, logger),
	)

	svc := service.NewOverviewService(strava.NewClient(tokens), cache.New(), cfg, goal, logger)

	if cfg.WarmSchedule != "" {
		warmer := cron.New()
		if err := warmer.AddFunc(cfg.WarmSchedule, func() {
			if _, err := svc.GetOverview(context.Background(), true); err != nil {
				logger.Warn("cache warm failed", zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("invalid warm schedule %q: %w", cfg.WarmSchedule, err)
		}
		warmer.Start()
		defer warmer.Stop()
		logger.Info("cache warmer scheduled", zap.String("schedule", cfg.WarmSchedule))
	}

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(svc, logger).Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// seedToken prefers the persisted token (it may hold a rotated refresh token
// newer than the environment's) and falls back to the env-provided one.
func seedToken(cfg config.Config, tokenDB *store.DB, logger *zap.Logger) strava.Token {
	if tokenDB != nil {
		tok, err := tokenDB.Load()
		if err == nil {
			return tok
		}
		if !errors.Is(err, store.ErrNoToken) {
			logger.Warn("loading stored token", zap.Error(err))
		}
	}

	return strava.Token{
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		ExpiresAt:    cfg.AccessTokenExpiresAt,
	}
}

// withSeedCredentials copies the seeded token state into the config. A token
// minted via -authorize lives only in the store, so without this the service
// would reject a store-only setup as unconfigured.
func withSeedCredentials(cfg config.Config, seed strava.Token) config.Config {
	cfg.AccessToken = seed.AccessToken
	cfg.RefreshToken = seed.RefreshToken
	cfg.AccessTokenExpiresAt = seed.ExpiresAt
	return cfg
}

func persistOnRefresh(cfg config.Config, tokenDB *store.DB, logger *zap.Logger) func(strava.Token) error {
	return func(tok strava.Token) error {
		if tokenDB != nil {
			if err := tokenDB.Save(tok); err != nil {
				return fmt.Errorf("persisting refreshed token: %w", err)
			}
			return nil
		}
		if cfg.RefreshToken != "" && tok.RefreshToken != cfg.RefreshToken {
			logger.Warn("refresh token rotated; update STRAVA_REFRESH_TOKEN or set STRAVA_TOKEN_DB to avoid re-authentication on restart")
		}
		return nil
	}
}

func runAuthorize(ctx context.Context, cfg config.Config, tokenDB *store.DB) error {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return errors.New("STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET are required to authorize")
	}
	if tokenDB == nil {
		return errors.New("set STRAVA_TOKEN_DB so the minted token can be stored")
	}

	oauthCfg := auth.NewOAuthConfig(cfg.ClientID, cfg.ClientSecret,
		fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort))

	token, err := auth.Authorize(ctx, oauthCfg, func(url string) {
		fmt.Println("Open this URL in your browser to authorize:")
		fmt.Println()
		fmt.Printf("  %s\n\n", url)
		fmt.Println("Waiting for authorization...")
	})
	if err != nil {
		return err
	}

	if err := tokenDB.Save(strava.Token{
		AccessToken:   token.AccessToken,
		RefreshToken:  token.RefreshToken,
		ExpiresAt:     token.Expiry,
		LastRefreshAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}

	_, _ = os.Stdout.WriteString("Authorized. Token stored.\n")
	return nil
}
