package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/dgallion1/docmark/internal/api"
	"github.com/dgallion1/docmark/internal/config"
	"github.com/dgallion1/docmark/internal/marker"
	"github.com/dgallion1/docmark/internal/pipeline"
)

func main() {
	var (
		jobsPath    = flag.String("jobs", "", "YAML job file listing documents to mark")
		input       = flag.String("input", "", "single input document (alternative to --jobs)")
		output      = flag.String("output", "", "output path for --input")
		markerFlag  = flag.String("marker", "", "override the marker token")
		model       = flag.String("model", "", "override the Gemini model")
		envFile     = flag.String("env-file", "", "dotenv file holding GOOGLE_API_KEY")
		forceClean  = flag.Bool("cleanup", false, "force brochure cleanup for --input")
		serve       = flag.Bool("serve", false, "run the HTTP API instead of processing jobs")
	)
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if *model != "" {
		cfg.GeminiModel = *model
	}
	if *markerFlag != "" {
		cfg.Marker = *markerFlag
	}
	if *envFile != "" {
		cfg.EnvFile = *envFile
	}

	key, source, err := config.ResolveCredential(config.DefaultCredentialSources(cfg.EnvFile))
	if err != nil {
		log.Error("no API credential found", "error", err, "env_file", cfg.EnvFile)
		os.Exit(1)
	}
	cfg.GoogleAPIKey = key
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log.Info("gemini client configured", "model", cfg.GeminiModel, "credential_source", source)

	client := marker.NewGeminiClient(cfg.GoogleAPIKey, cfg.GeminiModel)
	defer client.Close()

	if *serve {
		runServer(client, log, cfg)
		return
	}

	var jobs []pipeline.Job
	switch {
	case *jobsPath != "":
		jf, err := pipeline.LoadJobs(*jobsPath)
		if err != nil {
			log.Error("loading job file failed", "path", *jobsPath, "error", err)
			os.Exit(1)
		}
		if jf.Marker != "" && *markerFlag == "" {
			cfg.Marker = jf.Marker
		}
		jobs = jf.Jobs
	case *input != "" && *output != "":
		jobs = []pipeline.Job{{Input: *input, Output: *output, Cleanup: *forceClean}}
	default:
		log.Error("nothing to do: pass --jobs or both --input and --output")
		os.Exit(1)
	}

	p := pipeline.New(client, log, cfg.Marker, cfg.CleanupPathTag)
	results := p.Run(context.Background(), jobs)

	var processed, failed, skipped int
	for _, r := range results {
		switch {
		case r.Skipped:
			skipped++
		case r.Err != nil:
			failed++
		default:
			processed++
		}
	}
	// Per-job failures were already logged; the run itself still exits clean.
	log.Info("run complete", "processed", processed, "failed", failed, "skipped", skipped)
}

func runServer(client *marker.GeminiClient, log *slog.Logger, cfg config.Config) {
	srv := api.NewServer(client, client.Stats(), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docmark", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
