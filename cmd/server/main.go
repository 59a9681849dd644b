package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/benjaminneilan16/NeilanX/internal/server"
	"github.com/benjaminneilan16/NeilanX/pkg/analysis"
	"github.com/benjaminneilan16/NeilanX/pkg/config"
	"github.com/benjaminneilan16/NeilanX/pkg/logger"
)

const envPrefix = "NEILANX"

func main() {
	var (
		configFile     = flag.String("config", "", "Path to configuration file")
		generateConfig = flag.String("generate-config", "", "Generate example configuration file at specified path")
		validateConfig = flag.Bool("validate-config", false, "Validate configuration and exit")
		host           = flag.String("host", "", "Server host")
		port           = flag.Int("port", 0, "Server port")
		lexiconPath    = flag.String("lexicon", "", "Path to a YAML lexicon extending the built-in word lists")
		reportsDir     = flag.String("reports-dir", "", "Directory for generated PDF reports")
		logLevel       = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		version        = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *version {
		fmt.Printf("NeilanX Server v%s\n", server.Version)
		os.Exit(0)
	}

	loader := config.NewLoader(envPrefix)

	if *generateConfig != "" {
		if err := loader.WriteExample(*generateConfig, server.GetDefaultConfig()); err != nil {
			log.Fatalf("Failed to generate config file: %v", err)
		}
		fmt.Printf("Example configuration file generated at: %s\n", *generateConfig)
		fmt.Println("Edit the file to customize your configuration.")
		os.Exit(0)
	}

	if err := config.ValidateConfigPath(*configFile); err != nil {
		log.Fatalf("Invalid config file: %v", err)
	}

	serverConfig := server.GetDefaultConfig()
	if err := loader.Load(*configFile, serverConfig); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Command line flags take highest priority.
	if *host != "" {
		serverConfig.Host = *host
	}
	if *port != 0 {
		serverConfig.Port = *port
	}
	if *lexiconPath != "" {
		serverConfig.LexiconPath = *lexiconPath
	}
	if *reportsDir != "" {
		serverConfig.ReportsDir = *reportsDir
	}
	if *logLevel != "" {
		serverConfig.LogLevel = *logLevel
	}

	if *validateConfig {
		if err := serverConfig.Validate(); err != nil {
			fmt.Printf("Configuration validation failed:\n%v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration validation passed successfully.")
		os.Exit(0)
	}

	logFormat := logger.JSONFormat
	if serverConfig.LogFormat == "text" {
		logFormat = logger.TextFormat
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:   logger.ParseLogLevel(serverConfig.LogLevel),
		Format:  logFormat,
		Output:  os.Stdout,
		Service: "neilanx",
		Version: server.Version,
		Fields:  make(map[string]interface{}),
	})
	logger.SetDefault(appLogger)

	lexicon, err := analysis.LoadLexicon(serverConfig.LexiconPath)
	if err != nil {
		appLogger.Fatal("Failed to load lexicon: %v", err)
	}
	service := analysis.NewService(lexicon)

	appLogger.WithFields(map[string]interface{}{
		"host":         serverConfig.Host,
		"port":         serverConfig.Port,
		"tls_enabled":  serverConfig.TLSEnabled,
		"reports_dir":  serverConfig.ReportsDir,
		"lexicon_path": serverConfig.LexiconPath,
	}).Info("Initializing server")

	srv, err := server.New(serverConfig, service, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server: %v", err)
	}

	protocol := "http"
	if serverConfig.TLSEnabled {
		protocol = "https"
	}

	appLogger.WithFields(map[string]interface{}{
		"server_url":       fmt.Sprintf("%s://%s:%d", protocol, serverConfig.Host, serverConfig.Port),
		"api_prefix":       serverConfig.APIPrefix,
		"health_check":     fmt.Sprintf("%s://%s:%d%s", protocol, serverConfig.Host, serverConfig.Port, serverConfig.HealthCheckPath),
		"rate_limiting":    serverConfig.RateLimitEnabled,
		"rate_limit_rps":   serverConfig.RateLimitRPS,
		"cors_enabled":     serverConfig.CORSEnabled,
		"retention_days":   serverConfig.RetentionDays,
		"cleanup_schedule": serverConfig.CleanupSchedule,
		"log_level":        serverConfig.LogLevel,
		"log_format":       serverConfig.LogFormat,
	}).Info("NeilanX Server Configuration")

	appLogger.Info("Starting NeilanX server")
	if err := srv.Start(context.Background()); err != nil {
		appLogger.Fatal("Server failed: %v", err)
	}
}
