package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	InvoiceAPI struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
		UseMock        bool   `mapstructure:"use_mock"`
	} `mapstructure:"invoice_api"`

	PDF struct {
		LetterheadPath string `mapstructure:"letterhead_path"`
		OutputDir      string `mapstructure:"output_dir"`
	} `mapstructure:"pdf"`

	Archive struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
		Prefix    string `mapstructure:"prefix"`
	} `mapstructure:"archive"`
}

// Timeout returns the invoice API client timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.InvoiceAPI.TimeoutSeconds) * time.Second
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("invoice_api.base_url", "http://localhost:5000/api/invoice")
	v.SetDefault("invoice_api.timeout_seconds", 30)
	v.SetDefault("pdf.letterhead_path", "assets/letterhead.png")
	v.SetDefault("pdf.output_dir", "invoices")
	v.SetDefault("archive.region", "auto")
	v.SetDefault("archive.prefix", "invoices/")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override invoice API settings from environment variables
	if base := os.Getenv("INVOICE_API_URL"); base != "" {
		cfg.InvoiceAPI.BaseURL = base
	}
	if timeout := os.Getenv("INVOICE_API_TIMEOUT"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil && n > 0 {
			cfg.InvoiceAPI.TimeoutSeconds = n
		}
	}
	if mock := os.Getenv("INVOICE_API_MOCK"); mock != "" {
		cfg.InvoiceAPI.UseMock = mock == "true" || mock == "1"
	}

	// Override PDF settings from environment variables
	if path := os.Getenv("LETTERHEAD_PATH"); path != "" {
		cfg.PDF.LetterheadPath = path
	}
	if dir := os.Getenv("PDF_OUTPUT_DIR"); dir != "" {
		cfg.PDF.OutputDir = dir
	}

	// Archive credentials come from the environment, never the file
	if endpoint := os.Getenv("ARCHIVE_ENDPOINT"); endpoint != "" {
		cfg.Archive.Endpoint = endpoint
	}
	if key := os.Getenv("ARCHIVE_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("ARCHIVE_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
	if bucket := os.Getenv("ARCHIVE_BUCKET"); bucket != "" {
		cfg.Archive.Bucket = bucket
	}

	return &cfg
}
