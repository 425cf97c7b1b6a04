package main

import (
	"context"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/ashumehta18/bajaj-test/config"
	"github.com/ashumehta18/bajaj-test/modules/ai"
	"github.com/ashumehta18/bajaj-test/modules/api"
	"github.com/ashumehta18/bajaj-test/modules/audit"
	"github.com/ashumehta18/bajaj-test/modules/compute"
)

func main() {
	log.Println("=== BFHL API - Fiber + mono ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == "error" {
		logLevel = mono.LogLevelError
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - ai: Gemini text client behind services.ai.generate
	// - audit: Event consumer (subscribes to OperationEvaluated)
	// - compute: Core domain (/bfhl dispatcher, depends on ai, emits events)
	// - api: Driving adapter (Fiber HTTP server, depends on compute)
	modules := []mono.Module{
		ai.NewModule(ai.NewGeminiClient(cfg), logger.WithModule("ai")),
		audit.NewModule(logger.WithModule("audit")),
		compute.NewModule(cfg.AITimeout, logger.WithModule("compute")),
		api.NewModule(cfg, logger.WithModule("api")),
	}
	for _, module := range modules {
		if err := app.Register(module); err != nil {
			log.Fatalf("Failed to register %s module: %v", module.Name(), err)
		}
	}

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	aiStatus := "configured"
	if cfg.GeminiAPIKey == "" {
		aiStatus = "NOT configured (AI requests will fail)"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("  - Official email: %s", cfg.OfficialEmail)
	log.Printf("  - Gemini model: %s (%s)", cfg.GeminiModel, aiStatus)
	if cfg.PublicDir != "" {
		log.Printf("  - Static files: %s", cfg.PublicDir)
	}
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", cfg.Port)
	log.Println("  GET    /health     - Health check")
	log.Println("  POST   /bfhl       - fibonacci | prime | lcm | hcf | AI")
	log.Println("")
	log.Println(`Example: curl -X POST localhost:` + cfg.Port + `/bfhl -H 'Content-Type: application/json' -d '{"fibonacci": 7}'`)
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
