package services

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"gorm.io/gorm"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/queries/get_product"
	"github.com/Komy007/kkshop-sub000/internal/app/product/queries/list_products"
	"github.com/Komy007/kkshop-sub000/internal/app/product/repo"
	"github.com/Komy007/kkshop-sub000/internal/app/product/repo/gormrepo"
	"github.com/Komy007/kkshop-sub000/internal/app/product/repo/memory"
	"github.com/Komy007/kkshop-sub000/internal/app/product/translation"
	"github.com/Komy007/kkshop-sub000/internal/app/product/translation/googletranslate"
	"github.com/Komy007/kkshop-sub000/internal/app/product/usecases/create_product"
	"github.com/Komy007/kkshop-sub000/internal/config"
	"github.com/Komy007/kkshop-sub000/internal/logging"
	"github.com/Komy007/kkshop-sub000/internal/pkg/clock"
	transporthttp "github.com/Komy007/kkshop-sub000/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	GormDB        *gorm.DB

	CreateProduct  *create_product.Interactor
	ListProducts   *list_products.Query
	GetProduct     *get_product.Query
	Auditor        contracts.TranslationAuditor
	CatalogHandler *transporthttp.CatalogHandler
}

// storage groups the three catalog contracts of one backend.
type storage struct {
	writer    contracts.CatalogWriter
	readModel contracts.ReadModel
	auditor   contracts.TranslationAuditor
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logs logging.Provider) (*ServiceOptions, error) {
	s := &ServiceOptions{}

	// 1. Initialize storage backend
	store, err := s.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// 2. Create translation provider
	provider, err := newProvider(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	// 3. Create translators
	translationCfg := translation.Config{
		CallTimeout:   cfg.TranslationTimeout,
		MaxConcurrent: cfg.TranslationConcurrent,
	}
	translationLog := logging.ModuleLogger(logs, logging.TranslationModule)
	fieldTranslator := translation.NewFieldTranslator(provider, translationCfg, translationLog)
	fanOut := translation.NewFanOutTranslator(fieldTranslator, cfg.Languages, translationCfg, translationLog)

	// 4. Create command use cases (write operations)
	s.CreateProduct = create_product.NewInteractor(
		fanOut,
		store.writer,
		clock.NewRealClock(),
		logging.ModuleLogger(logs, logging.WriteModule),
	)

	// 5. Create query use cases (read operations)
	readLog := logging.ModuleLogger(logs, logging.ReadModule)
	s.ListProducts = list_products.NewQuery(store.readModel, cfg.Languages, readLog)
	s.GetProduct = get_product.NewQuery(store.readModel, cfg.Languages, readLog)
	s.Auditor = store.auditor

	// 6. Create HTTP handler
	s.CatalogHandler = transporthttp.NewCatalogHandler(
		s.CreateProduct,
		s.ListProducts,
		s.GetProduct,
		logging.ModuleLogger(logs, logging.HTTPModule),
	)

	return s, nil
}

func (s *ServiceOptions) openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageBackend {
	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		return &storage{
			writer:    repo.NewCatalogWriter(client),
			readModel: repo.NewReadModel(client),
			auditor:   repo.NewAuditor(client),
		}, nil

	case config.BackendPostgres:
		db, err := gormrepo.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		s.GormDB = db
		if err := gormrepo.Migrate(db.WithContext(ctx)); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to migrate postgres schema: %w", err)
		}
		r := gormrepo.NewRepository(db)
		return &storage{writer: r, readModel: r, auditor: r}, nil

	case config.BackendMemory:
		m := memory.NewStore()
		return &storage{writer: m, readModel: m, auditor: m}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func newProvider(ctx context.Context, cfg *config.Config) (contracts.TranslationProvider, error) {
	switch cfg.TranslationProvider {
	case config.ProviderGoogle:
		p, err := googletranslate.New(ctx, googletranslate.Config{
			APIKey:   cfg.GoogleAPIKey,
			Endpoint: cfg.GoogleEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderDisabled:
		return translation.DisabledProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.TranslationProvider)
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() error {
	var errs []error
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.GormDB != nil {
		if sqlDB, err := s.GormDB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		} else {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
