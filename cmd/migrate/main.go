package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Komy007/kkshop-sub000/internal/app/product/repo/gormrepo"
	"github.com/Komy007/kkshop-sub000/internal/logging"
)

var (
	backend     = flag.String("backend", getEnvOrDefault("STORAGE_BACKEND", "spanner"), "Storage backend to migrate: spanner or postgres")
	projectID   = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID  = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID  = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "catalog-db"), "Spanner database ID")
	migrateDir  = flag.String("migrations", "migrations", "Directory containing Spanner DDL files")
	postgresDSN = flag.String("dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL DSN (postgres backend)")
	timeout     = flag.Duration("timeout", 5*time.Minute, "Overall migration deadline")
)

func main() {
	flag.Parse()

	logs, err := logging.NewGoLogger(logging.Config{Level: getEnvOrDefault("LOG_LEVEL", "info"), Format: getEnvOrDefault("LOG_FORMAT", "console")})
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	logger := logging.ModuleLogger(logs, "catalog.migrate")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *backend {
	case "spanner":
		m := &spannerMigrator{
			project:  *projectID,
			instance: *instanceID,
			database: *databaseID,
			dir:      *migrateDir,
			emulator: os.Getenv("SPANNER_EMULATOR_HOST"),
			logger:   logger,
		}
		err = m.run(ctx)
	case "postgres":
		err = migratePostgres(*postgresDSN, logger)
	default:
		err = fmt.Errorf("unknown backend %q", *backend)
	}
	if err != nil {
		logger.Error("migrate.failed", "backend", *backend, "error", err.Error())
		cancel()
		os.Exit(1)
	}

	logger.Info("migrate.completed", "backend", *backend)
}

func migratePostgres(dsn string, logger logging.Logger) error {
	if dsn == "" {
		return fmt.Errorf("-dsn or POSTGRES_DSN is required for the postgres backend")
	}
	db, err := gormrepo.Open(dsn)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	logger.Info("migrate.postgres.automigrate")
	return gormrepo.Migrate(db)
}

type spannerMigrator struct {
	project  string
	instance string
	database string
	dir      string
	emulator string
	logger   logging.Logger
}

func (m *spannerMigrator) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", m.project, m.instance)
}

func (m *spannerMigrator) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", m.instancePath(), m.database)
}

func (m *spannerMigrator) run(ctx context.Context) error {
	if m.emulator != "" {
		m.logger.Info("migrate.spanner.emulator", "host", m.emulator)

		// Only the emulator gets its instance created on the fly.
		if err := m.ensureInstance(ctx); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	if err := m.ensureDatabase(ctx, adminClient); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	if err := m.applyMigrations(ctx, adminClient); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (m *spannerMigrator) ensureInstance(ctx context.Context) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instancePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check instance: %w", err)
	}

	m.logger.Info("migrate.spanner.create_instance", "instance", m.instance)
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + m.project,
		InstanceId: m.instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.project),
			DisplayName: "Catalog Development Instance",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to wait for instance creation: %w", err)
	}
	return nil
}

func (m *spannerMigrator) ensureDatabase(ctx context.Context, adminClient *database.DatabaseAdminClient) error {
	_, err := adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.databasePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check database: %w", err)
	}

	m.logger.Info("migrate.spanner.create_database", "database", m.database)
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.database),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// applyMigrations runs every *.sql file in name order, skipping statements
// whose table or index already exists so the tool can be re-run.
func (m *spannerMigrator) applyMigrations(ctx context.Context, adminClient *database.DatabaseAdminClient) error {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		m.logger.Warn("migrate.spanner.no_files", "dir", m.dir)
		return nil
	}

	current, err := adminClient.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: m.databasePath()})
	if err != nil {
		return fmt.Errorf("failed to read current schema: %w", err)
	}
	existing := existingObjects(current.GetStatements())

	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := pendingStatements(splitDDLStatements(string(content)), existing)
		if len(statements) == 0 {
			m.logger.Info("migrate.spanner.up_to_date", "file", name)
			continue
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}

		for _, stmt := range statements {
			if obj, ok := createdObject(stmt); ok {
				existing[obj] = struct{}{}
			}
		}
		m.logger.Info("migrate.spanner.applied", "file", name, "statements", len(statements))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
