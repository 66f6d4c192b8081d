package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/qiniu/x/log"

	"github.com/siddharthkul/voyager-gha/internal/config"
	"github.com/siddharthkul/voyager-gha/internal/event"
	"github.com/siddharthkul/voyager-gha/internal/githost"
	"github.com/siddharthkul/voyager-gha/internal/llm"
	"github.com/siddharthkul/voyager-gha/internal/orchestrator"
)

func main() {
	configPath := flag.String("config", "", "path to an optional configuration file")
	flag.Parse()

	// Local runs keep credentials in .env; the Actions runner injects them
	// directly, in which case there is nothing to load.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx := context.Background()

	host, err := githost.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create GitHub client: %v", err)
	}

	provider, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create completion provider: %v", err)
	}
	log.Infof("Using completion provider %s", provider.Name())

	issues := event.NewSource(cfg.GitHub.EventPath)

	report, err := orchestrator.New(cfg, issues, host, provider).Run(ctx)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	if report.PRURL != "" {
		log.Infof("Done: %d change(s) applied, PR %s", report.AppliedCount(), report.PRURL)
	} else {
		log.Infof("Done: no applicable changes, commented on the issue")
	}
}
