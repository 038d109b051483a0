package config

// Config holds gazette configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Download DownloadCfg `mapstructure:"download" yaml:"download"`
	Parse    ParseCfg    `mapstructure:"parse" yaml:"parse"`
	Server   ServerCfg   `mapstructure:"server" yaml:"server"`
}

// DownloadCfg configures the gazette issue downloader.
type DownloadCfg struct {
	// URLTemplate is the issue PDF URL pattern. %d/%d expands to year/number.
	URLTemplate string `mapstructure:"url_template" yaml:"url_template"`
	// MaxRetries is the number of download attempts before giving up.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ParseCfg configures the parsing pipeline.
type ParseCfg struct {
	// Workers is the number of acts parsed concurrently within one issue.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// PatternFile is an optional YAML file extending the built-in
	// phrase template tables.
	PatternFile string `mapstructure:"pattern_file" yaml:"pattern_file"`
}

// ServerCfg configures the read-only HTTP API.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadCfg{
			URLTemplate:    "https://magyarkozlony.hu/dokumentumok/%d/%d.pdf",
			MaxRetries:     5,
			TimeoutSeconds: 60,
		},
		Parse: ParseCfg{
			Workers: 4,
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}
