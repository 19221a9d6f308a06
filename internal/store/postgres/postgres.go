package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dwarvesf/swappy/internal/types/environments"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

const (
	pingTimeout     = 5 * time.Second
	connMaxLifetime = 30 * time.Minute
)

// New opens the facilitator database and exits the process when it is unreachable.
func New(appConfig *config.AppConfig, logger *logger.Logger) *gorm.DB {
	db, err := connectPostgres(appConfig)
	if err != nil {
		logger.Fatal("[pgstore.New][connectPostgres]", map[string]string{
			"host":  appConfig.Postgres.Host,
			"db":    appConfig.Postgres.Name,
			"error": err.Error(),
		})
	}

	logger.Info("[pgstore.New] database connected", map[string]string{
		"host": appConfig.Postgres.Host,
		"db":   appConfig.Postgres.Name,
	})
	return db
}

// DSN renders the libpq keyword/value connection string. Empty settings are
// left out so the driver defaults apply.
func DSN(conn config.DBConnection) string {
	pairs := []struct{ key, value string }{
		{"host", conn.Host},
		{"port", conn.Port},
		{"user", conn.User},
		{"password", conn.Pass},
		{"dbname", conn.Name},
		{"sslmode", conn.SSLMode},
	}

	var ds string
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		if ds != "" {
			ds += " "
		}
		ds += fmt.Sprintf("%s=%s", p.key, p.value)
	}
	return ds
}

func connectPostgres(appConfig *config.AppConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(appConfig.Postgres)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel(appConfig.Environment)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	if appConfig.Postgres.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(appConfig.Postgres.MaxOpenConns)
	}
	if appConfig.Postgres.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(appConfig.Postgres.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping postgres")
	}

	return db, nil
}

// logLevel keeps SQL tracing to development.
func logLevel(env environments.Environment) gormlogger.LogLevel {
	switch env {
	case environments.Development:
		return gormlogger.Info
	case environments.Test:
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}
