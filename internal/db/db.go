package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/envutil"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

// Service owns the gorm handle. Postgres in deployments; sqlite when
// DB_DRIVER=sqlite (local runs and tests).
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := envutil.Str("DB_DRIVER", "postgres")
	var (
		gdb *gorm.DB
		err error
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	}
	switch driver {
	case "sqlite":
		path := envutil.Str("SQLITE_PATH", "goalflow.db")
		serviceLog.Info("Connecting to sqlite", "path", path)
		gdb, err = gorm.Open(sqlite.Open(path), cfg)
	default:
		host := envutil.Str("POSTGRES_HOST", "localhost")
		port := envutil.Str("POSTGRES_PORT", "5432")
		user := envutil.Str("POSTGRES_USER", "postgres")
		password := envutil.Str("POSTGRES_PASSWORD", "")
		name := envutil.Str("POSTGRES_NAME", "goalflow")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		serviceLog.Info("Connecting to Postgres", "host", host, "db", name)
		gdb, err = gorm.Open(postgres.Open(dsn), cfg)
	}
	if err != nil {
		serviceLog.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return &Service{db: gdb, log: serviceLog}, nil
}

// NewSQLiteMemory opens an in-memory database. Used in tests.
func NewSQLiteMemory(log *logger.Logger) (*Service, error) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &Service{db: gdb, log: log.With("service", "DBService")}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := s.db.AutoMigrate(
		&types.DecisionRecord{},
		&types.JudgeCallLog{},
	); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
