package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/seo-tools/traffic-atlas/pkg/server"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	collectsnapshot "github.com/seo-tools/traffic-atlas/pkg/services/collect/snapshot"
	"github.com/seo-tools/traffic-atlas/pkg/services/config"
	"github.com/seo-tools/traffic-atlas/pkg/services/ga4"
	"github.com/seo-tools/traffic-atlas/pkg/services/workflow"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb/snapshot"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	registryPath string
	dbPath       string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Traffic Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&registryPath, "registry", "r", "properties.ini",
		"Path to the property registry file")
	rootCmd.Flags().StringVar(&dbPath, "db", "traffic-atlas.db",
		"Path to the snapshot database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	properties, err := config.NewRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to create property registry: %w", err)
	}

	collectors := collect.NewRegistry(map[string]collect.CollectorFactory{
		"ga4":      ga4.CollectorFactory,
		"snapshot": collectsnapshot.CollectorFactory,
	})

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: dbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	snapshotStore, err := snapshot.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create snapshot store: %w", err)
	}

	workflowCtrl := workflow.NewController(db, properties, collectors, snapshotStore)
	if err := workflowCtrl.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize workflow controller: %w", err)
	}

	logger.Info().Msgf("Property registry found at `%s` successfully loaded.", registryPath)
	logger.Info().Msgf("Found the following properties:")
	names, _ := properties.GetProperties(ctx)
	for _, name := range names {
		property, err := properties.GetProperty(ctx, name)
		if err != nil {
			logger.Warn().Err(err).Msgf("Skipping `%s`", name)
			continue
		}
		logger.Info().Msgf("Name: `%s`, Property ID: `%s`", property.Name, property.PropertyID)
	}

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			Properties: properties,
			Collectors: collectors,
			Snapshots:  snapshotStore,
			Logger:     logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, mux)
}
