// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/cite-check/internal/enrich"
	"github.com/pdiddy/cite-check/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "cite-check/0.1"
)

// enrichmentConfig assembles the enrichment settings from flags, the
// config file, and secrets, in that precedence order.
func enrichmentConfig(timeout, delay time.Duration, cachePath string) types.EnrichmentConfig {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if delay == 0 {
		delay = defaultDelay
	}
	if cachePath == "" {
		cachePath = viper.GetString("crossref.cache")
	}
	return types.EnrichmentConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Mailto:     secretDefault("crossref-mailto", viper.GetString("crossref.mailto")),
		PlusToken:  secretDefault("crossref-plus-api-token", viper.GetString("crossref.plus_token")),
		BatchDelay: delay,
		MaxRetries: viper.GetInt("crossref.max_retries"),
		CachePath:  cachePath,
	}
}

// newEnricher builds the CrossRef enricher from its configuration. The
// returned cleanup closes the lookup cache when one was opened.
func newEnricher(cfg types.EnrichmentConfig, logger *zap.Logger) (*enrich.Enricher, func(), error) {
	client := &enrich.Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Mailto:     cfg.Mailto,
		PlusToken:  cfg.PlusToken,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}

	e := &enrich.Enricher{
		Client:  client,
		Timeout: cfg.Timeout,
		Delay:   cfg.BatchDelay,
		Logger:  logger,
	}

	cleanup := func() {}
	if cfg.CachePath != "" {
		cache, err := enrich.OpenCache(cfg.CachePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening lookup cache: %w", err)
		}
		e.Cache = cache
		cleanup = func() { cache.Close() }
	}

	return e, cleanup, nil
}

// newLogger builds the zap logger used by the enricher and the server.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if viper.GetBool("debug") {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not build logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}
