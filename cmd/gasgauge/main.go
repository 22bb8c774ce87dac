package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	adapthttp "github.com/xivind/gas-gauge/internal/adapter/http"
	"github.com/xivind/gas-gauge/internal/adapter/memory"
	"github.com/xivind/gas-gauge/internal/adapter/postgres"
	"github.com/xivind/gas-gauge/internal/app"
	"github.com/xivind/gas-gauge/internal/config"
	"github.com/xivind/gas-gauge/internal/domain"
	"github.com/xivind/gas-gauge/internal/scheduler"
)

type repositories interface {
	domain.CanisterRepository
	domain.CanisterTypeRepository
	domain.WeighingRepository
	domain.UserRepository
	domain.SessionRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var repo repositories
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		repo = db
	} else {
		log.Print("DATABASE_URL not set, using in-memory store")
		repo = memory.New()
	}

	viewSvc := app.NewViewService(repo, repo, repo)
	canisterSvc := app.NewCanisterService(repo, repo)
	typeSvc := app.NewTypeService(repo)
	weighingSvc := app.NewWeighingService(repo, repo)
	authSvc := app.NewAuthService(repo, repo)

	if err := typeSvc.Seed(context.Background()); err != nil {
		log.Fatalf("seed: %v", err)
	}

	oidcCfg, err := buildOIDC(cfg)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	sched := scheduler.New(authSvc, cfg.SessionPurgeInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer sched.Stop()

	h := adapthttp.New(viewSvc, canisterSvc, typeSvc, weighingSvc, authSvc, oidcCfg, cfg.WebDir).Handler()
	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func buildOIDC(cfg *config.Config) (adapthttp.OIDCConfig, error) {
	if !cfg.SSOEnabled() {
		return adapthttp.OIDCConfig{}, nil
	}

	provider, err := oidc.NewProvider(context.Background(), cfg.OIDCIssuerURL)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}

	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}
