package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	CatalogSourceDefault = "default"
	CatalogSourceFile    = "file"
	CatalogSourceMySQL   = "mysql"

	InvoiceArchiveMemory = "memory"
	InvoiceArchiveMySQL  = "mysql"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	Invoice  InvoiceConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

type LogConfig struct {
	Level    string
	Encoding string
}

type CatalogConfig struct {
	Source string
	File   string
}

type CartConfig struct {
	TaxRate decimal.Decimal
}

type InvoiceConfig struct {
	StartNumber      int
	Archive          string
	MaxRetryAttempts int
}

// UsesDatabase reports whether any component needs a MySQL connection.
func (c *Config) UsesDatabase() bool {
	return c.Catalog.Source == CatalogSourceMySQL || c.Invoice.Archive == InvoiceArchiveMySQL
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "storefront")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "storefront")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_QUERY_TIMEOUT", "5s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
	v.SetDefault("CATALOG_SOURCE", CatalogSourceDefault)
	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("CART_TAX_RATE", "0.16")
	v.SetDefault("INVOICE_START_NUMBER", 1000)
	v.SetDefault("INVOICE_ARCHIVE", InvoiceArchiveMemory)
	v.SetDefault("INVOICE_MAX_RETRY_ATTEMPTS", 3)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	serverTimeouts := make(map[string]time.Duration, 4)
	for _, key := range []string{"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		serverTimeouts[key] = d
	}

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	queryTimeout, err := time.ParseDuration(v.GetString("DB_QUERY_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_QUERY_TIMEOUT: %w", err)
	}

	taxRate, err := decimal.NewFromString(v.GetString("CART_TAX_RATE"))
	if err != nil {
		return nil, fmt.Errorf("parsing CART_TAX_RATE: %w", err)
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("CART_TAX_RATE must be non-negative, got %s", taxRate)
	}

	startNumber := v.GetInt("INVOICE_START_NUMBER")
	if startNumber < 0 {
		return nil, fmt.Errorf("INVOICE_START_NUMBER must be non-negative, got %d", startNumber)
	}

	catalogSource := strings.ToLower(v.GetString("CATALOG_SOURCE"))
	catalogFile := v.GetString("CATALOG_FILE")
	if catalogSource == CatalogSourceDefault && catalogFile != "" {
		catalogSource = CatalogSourceFile
	}
	switch catalogSource {
	case CatalogSourceDefault, CatalogSourceMySQL:
	case CatalogSourceFile:
		if catalogFile == "" {
			return nil, fmt.Errorf("CATALOG_FILE is required when CATALOG_SOURCE is %q", CatalogSourceFile)
		}
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", catalogSource)
	}

	maxRetryAttempts := v.GetInt("INVOICE_MAX_RETRY_ATTEMPTS")
	if maxRetryAttempts < 1 {
		return nil, fmt.Errorf("INVOICE_MAX_RETRY_ATTEMPTS must be at least 1, got %d", maxRetryAttempts)
	}

	archive := strings.ToLower(v.GetString("INVOICE_ARCHIVE"))
	if archive != InvoiceArchiveMemory && archive != InvoiceArchiveMySQL {
		return nil, fmt.Errorf("unknown INVOICE_ARCHIVE %q", archive)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ReadTimeout:     serverTimeouts["SERVER_READ_TIMEOUT"],
			WriteTimeout:    serverTimeouts["SERVER_WRITE_TIMEOUT"],
			IdleTimeout:     serverTimeouts["SERVER_IDLE_TIMEOUT"],
			ShutdownTimeout: serverTimeouts["SERVER_SHUTDOWN_TIMEOUT"],
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			QueryTimeout:    queryTimeout,
		},
		Log: LogConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
		Catalog: CatalogConfig{
			Source: catalogSource,
			File:   catalogFile,
		},
		Cart: CartConfig{
			TaxRate: taxRate,
		},
		Invoice: InvoiceConfig{
			StartNumber:      startNumber,
			Archive:          archive,
			MaxRetryAttempts: maxRetryAttempts,
		},
	}

	return cfg, nil
}
