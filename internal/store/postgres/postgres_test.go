package pgstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dwarvesf/swappy/internal/types/environments"
	"github.com/dwarvesf/swappy/internal/utils/config"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		conn config.DBConnection
		want string
	}{
		{
			name: "full",
			conn: config.DBConnection{Host: "db", Port: "5432", User: "swappy", Pass: "secret", Name: "swappy", SSLMode: "disable"},
			want: "host=db port=5432 user=swappy password=secret dbname=swappy sslmode=disable",
		},
		{
			name: "without password or ssl mode",
			conn: config.DBConnection{Host: "localhost", Port: "5432", User: "postgres", Name: "swappy"},
			want: "host=localhost port=5432 user=postgres dbname=swappy",
		},
		{
			name: "empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DSN(tt.conn))
		})
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, logLevel(environments.Development))
	assert.Equal(t, gormlogger.Silent, logLevel(environments.Test))
	assert.Equal(t, gormlogger.Warn, logLevel(environments.Production))
	assert.Equal(t, gormlogger.Warn, logLevel(environments.Staging))
}
