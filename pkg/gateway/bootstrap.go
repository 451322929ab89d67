package gateway

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imbecility/tubesave/pkg/client"
	"github.com/imbecility/tubesave/pkg/downloader"
	"github.com/imbecility/tubesave/pkg/extractor"
)

// Config represents the configuration for gateway initialization.
type Config struct {
	// Listen is the address the API server binds to.
	Listen string `yaml:"listen"`
	// WebUI serves the browser page on "/".
	WebUI bool `yaml:"web_ui"`
	// DownloadTimeout bounds buffering, measured from stream acquisition.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	MetadataTimeout time.Duration `yaml:"metadata_timeout"`
	// MaxBytes caps a single buffered download.
	MaxBytes int64 `yaml:"max_bytes"`
	// ClientTimeout applies to each outbound HTTP request.
	ClientTimeout time.Duration `yaml:"client_timeout"`
	ProxyURL      string        `yaml:"proxy_url"`
	RateLimit     float64       `yaml:"rate_limit"`
	RateBurst     int           `yaml:"rate_burst"`
	// AllowOrigin is sent as Access-Control-Allow-Origin.
	AllowOrigin string `yaml:"allow_origin"`
	Debug       bool   `yaml:"debug"`
	JSONLogs    bool   `yaml:"json_logs"`
}

func DefaultConfig() Config {
	return Config{
		Listen:          ":8080",
		WebUI:           true,
		DownloadTimeout: downloader.DefaultTimeout,
		MetadataTimeout: 30 * time.Second,
		MaxBytes:        1 << 30,
		ClientTimeout:   10 * time.Minute,
		RateLimit:       10,
		RateBurst:       20,
		AllowOrigin:     "*",
	}
}

// WithDefaults fills every zero field from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.DownloadTimeout <= 0 {
		c.DownloadTimeout = d.DownloadTimeout
	}
	if c.MetadataTimeout <= 0 {
		c.MetadataTimeout = d.MetadataTimeout
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = d.MaxBytes
	}
	if c.ClientTimeout <= 0 {
		c.ClientTimeout = d.ClientTimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = d.RateLimit
	}
	if c.RateBurst <= 0 {
		c.RateBurst = d.RateBurst
	}
	if c.AllowOrigin == "" {
		c.AllowOrigin = d.AllowOrigin
	}
	return c
}

// LoadConfig reads a YAML file on top of DefaultConfig. An empty path returns
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.WithDefaults(), nil
}

// New creates a ready-to-use Service instance with all necessary dependencies.
func New(cfg Config) (*Service, error) {
	cfg = cfg.WithDefaults()

	httpClient, err := client.NewHttpClient(client.Config{
		Timeout:  cfg.ClientTimeout,
		ProxyURL: cfg.ProxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init http client: %w", err)
	}

	dl := &downloader.Downloader{
		Timeout:          cfg.DownloadTimeout,
		MaxBytes:         cfg.MaxBytes,
		ProgressInterval: 2 * time.Second,
	}

	return NewService(extractor.NewYouTube(httpClient), dl, cfg.MetadataTimeout), nil
}
