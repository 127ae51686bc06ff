package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/config"
	"github.com/jask/packit/internal/identity"
	"github.com/jask/packit/internal/logger"
	"github.com/jask/packit/internal/secrets"
	"github.com/jask/packit/internal/service"
	"github.com/jask/packit/internal/store"
	"github.com/jask/packit/internal/trip"
	"github.com/jask/packit/internal/wizard"
)

type rootOptions struct {
	configPath  string
	logLevel    string
	metricsAddr string
}

// env is everything a command needs, built from configuration.
type env struct {
	cfg     config.Config
	log     zerolog.Logger
	uid     string
	client  *backend.Client
	store   store.Store
	trips   *service.TripService
	closers []func() error
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	if o.configPath != "" {
		if err := os.Setenv("PACKIT_CONFIG", o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

func (o *rootOptions) setup() (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	f, err := logger.OpenFile(cfg.Log.Path)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, f.Close)
	if e.log, err = logger.New("packit", f, cfg.Log.Level); err != nil {
		_ = e.close()
		return nil, err
	}

	ids, err := identity.Default()
	if err != nil {
		_ = e.close()
		return nil, fmt.Errorf("identity: %w", err)
	}
	if e.uid, err = ids.UID(); err != nil {
		_ = e.close()
		return nil, fmt.Errorf("identity: %w", err)
	}

	e.client, err = backend.New(cfg.Backend.BaseURL,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithAPIKey(resolveToken(cfg)),
		backend.WithLogger(e.log),
	)
	if err != nil {
		_ = e.close()
		return nil, err
	}

	st, closeStore, err := store.Open(cfg, e.client)
	if err != nil {
		_ = e.close()
		return nil, err
	}
	e.store = st
	e.closers = append(e.closers, closeStore)
	e.trips = &service.TripService{Store: st, UID: e.uid, Log: e.log}

	if o.metricsAddr != "" {
		serveMetrics(o.metricsAddr, e.log)
	}
	e.log.Info().Str("store", cfg.Store.Driver).Str("backend", cfg.Backend.BaseURL).Msg("packit started")
	return e, nil
}

// resolveToken prefers the configured key or its env var, then the secrets store.
func resolveToken(cfg config.Config) string {
	if k := strings.TrimSpace(cfg.Backend.APIKeyFromEnv()); k != "" {
		return k
	}
	sec, err := secrets.Default()
	if err != nil {
		return ""
	}
	if k, err := sec.Get(secrets.BackendToken); err == nil {
		return k
	}
	return ""
}

func serveMetrics(addr string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
}

func (e *env) runner() *wizard.Runner {
	return &wizard.Runner{Backend: e.client, Store: e.store, UID: e.uid, Log: e.log}
}

// draft applies the configured trip defaults to a new draft.
func (e *env) draft() trip.Draft {
	d := trip.NewDraft()
	t := e.cfg.Trip
	if t.AirlineLimitKg > 0 {
		d.LimitKg = t.AirlineLimitKg
	}
	if t.SuitcaseL > 0 {
		d.Suitcase.VolumeLiters = t.SuitcaseL
	}
	if t.TravelClass != "" {
		d.TravelClass = t.TravelClass
	}
	if t.Purpose != "" {
		d.Purpose = t.Purpose
	}
	return d
}

func (e *env) close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
