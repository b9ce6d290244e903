// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/cite-check/internal/server"
	"github.com/pdiddy/cite-check/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the citation validation HTTP service",
	Long: `Serve exposes the validation pipeline over HTTP: POST /v1/validate takes
citation text and an enrichment flag, GET /healthz reports liveness.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Duration("timeout", 0, "enrichment request timeout (default 30s)")
	serveCmd.Flags().Duration("delay", 0, "pause between enrichment lookups (default 1s)")
	serveCmd.Flags().String("cache", "", "path to the enrichment lookup cache database")
	serveCmd.Flags().Int64("max-body", 0, "request body size limit in bytes (default 1 MiB)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if v := viper.GetString("server.addr"); v != "" && !cmd.Flags().Changed("addr") {
		addr = v
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")
	cachePath, _ := cmd.Flags().GetString("cache")
	maxBody, _ := cmd.Flags().GetInt64("max-body")

	srvCfg := types.ServerConfig{
		Addr:         addr,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		MaxBodyBytes: maxBody,
	}

	logger := newLogger()
	defer logger.Sync()

	enricher, cleanup, err := newEnricher(enrichmentConfig(timeout, delay, cachePath), logger)
	if err != nil {
		return err
	}
	defer cleanup()

	s := &server.Server{
		Enricher:     enricher,
		Logger:       logger,
		MaxBodyBytes: srvCfg.MaxBodyBytes,
	}

	httpServer := &http.Server{
		Addr:         srvCfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
	}

	logger.Info("listening", zap.String("addr", srvCfg.Addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
