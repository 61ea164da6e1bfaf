package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const (
	defaultMaxOpenConns           = 10
	defaultMaxIdleConns           = 5
	connMaxLifetime               = 5 * time.Minute
	connMaxIdleTime               = 1 * time.Minute
	defaultStatementTimeoutMillis = 30000
	pingTimeout                   = 5 * time.Second
)

type Config struct {
	Enabled                bool   `envconfig:"ENABLED" default:"false"`
	Host                   string `envconfig:"HOST" default:"localhost"`
	Port                   string `envconfig:"PORT" default:"5432"`
	Username               string `envconfig:"USERNAME" default:"astrografia"`
	Password               string `envconfig:"PASSWORD"`
	Database               string `envconfig:"DATABASE" default:"astrografia"`
	SSLMode                string `envconfig:"SSL_MODE" default:"disable"`
	MaxOpenConns           int    `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns           int    `envconfig:"MAX_IDLE_CONNS" default:"5"`
	StatementTimeoutMillis int    `envconfig:"STATEMENT_TIMEOUT" default:"30000"`
}

// DSN строка подключения в формате key=value; statement_timeout передаётся
// параметром рантайма, поэтому действует на каждое соединение пула
func (c *Config) DSN() string {
	timeout := c.StatementTimeoutMillis
	if timeout <= 0 {
		timeout = defaultStatementTimeoutMillis
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s statement_timeout=%d",
		c.Host,
		c.Port,
		c.Username,
		c.Database,
		c.Password,
		c.SSLMode,
		timeout,
	)
}

// NewConnection открывает пул через драйвер pgx и проверяет соединение
func (c *Config) NewConnection() (*sqlx.DB, error) {
	connConfig, err := pgx.ParseConfig(c.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	db, err := sqlx.Open("pgx", stdlib.RegisterConnConfig(connConfig))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	maxOpen := c.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := c.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}
