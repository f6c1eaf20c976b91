package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/config"
	"github.com/Komy007/kkshop-sub000/internal/logging"
	"github.com/Komy007/kkshop-sub000/internal/services"
)

// exitDrift is returned with -fail when at least one bundle is missing.
const exitDrift = 3

// Options for the translation audit job
type Options struct {
	Languages string
	Format    string
	Fail      bool
	Timeout   time.Duration
}

func main() {
	// Parse command-line flags
	opts := Options{}
	flag.StringVar(&opts.Languages, "langs", "", "Comma-separated languages to audit (default: SUPPORTED_LANGUAGES)")
	flag.StringVar(&opts.Format, "format", "text", "Output format: text or json")
	flag.BoolVar(&opts.Fail, "fail", false, "Exit with status 3 when any bundle is missing")
	flag.DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "Query deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}

	logs, err := logging.NewGoLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}
	logger := logging.ModuleLogger(logs, logging.AuditModule)

	missing, err := audit(cfg, logs, opts)
	if err != nil {
		logger.Error("audit.failed", "error", err.Error())
		os.Exit(1)
	}

	if err := report(os.Stdout, opts.Format, missing); err != nil {
		logger.Error("audit.report_failed", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("audit.completed", "missing", len(missing))
	if opts.Fail && len(missing) > 0 {
		os.Exit(exitDrift)
	}
}

func audit(cfg *config.Config, logs logging.Provider, opts Options) ([]contracts.MissingTranslation, error) {
	if cfg.StorageBackend == config.BackendMemory {
		return nil, fmt.Errorf("the memory backend has nothing to audit")
	}

	langs := cfg.Languages
	if opts.Languages != "" {
		parsed, err := domain.ParseLanguages(opts.Languages)
		if err != nil {
			return nil, fmt.Errorf("invalid -langs: %w", err)
		}
		langs = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logs)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	return serviceOpts.Auditor.MissingTranslations(ctx, langs)
}

type missingJSON struct {
	ProductID int64  `json:"productId,string"`
	SKU       string `json:"sku"`
	Lang      string `json:"lang"`
}

func report(w io.Writer, format string, missing []contracts.MissingTranslation) error {
	switch format {
	case "json":
		out := make([]missingJSON, 0, len(missing))
		for _, m := range missing {
			out = append(out, missingJSON{ProductID: m.ProductID, SKU: m.SKU, Lang: string(m.Lang)})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case "text":
		if len(missing) == 0 {
			_, err := fmt.Fprintln(w, "All ACTIVE products have a bundle in every audited language")
			return err
		}
		for _, m := range missing {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", m.ProductID, m.SKU, m.Lang); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%d missing bundles\n", len(missing))
		return err

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
