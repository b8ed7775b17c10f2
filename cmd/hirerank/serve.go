package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sha9506/HireRank/internal/db"
	"github.com/sha9506/HireRank/internal/server"
)

var (
	serveConfigPath string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the scoring engine and, when a
database is configured, persistence endpoints for rankings and history.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}

	eng, client, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	} else {
		log.Printf("no API key configured, scoring in taxonomy-only mode")
	}

	var store server.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		store = database
	} else {
		log.Printf("no database configured, persistence endpoints disabled")
	}

	srv := server.New(eng, server.Options{
		Addr:  cfg.Addr(),
		Store: store,
	})
	return srv.Start()
}
