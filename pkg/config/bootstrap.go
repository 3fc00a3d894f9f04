package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BootstrapFileName is looked up inside the configuration directory.
const BootstrapFileName = "pathscript_config.yaml"

const (
	defaultHTTPPort       = 8080
	defaultRequestTimeout = 10
	defaultWorkers        = 4
	defaultQueueSize      = 64
)

// BootstrapConfig holds the startup configuration loaded from pathscript_config.yaml
type BootstrapConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	ZeroMQ     ZeroMQBootstrap  `yaml:"zeromq"`
	Data       DataConfig       `yaml:"data"`
	Processing ProcessingConfig `yaml:"processing"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogPath string `yaml:"log_path,omitempty"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	HTTPPort int `yaml:"http_port"`
	// RequestTimeout bounds reads and writes, in seconds.
	RequestTimeout int `yaml:"request_timeout"`
}

// ZeroMQBootstrap holds ZeroMQ transport settings
type ZeroMQBootstrap struct {
	Enabled            bool   `yaml:"enabled"`
	RequestBindAddress string `yaml:"request_bind_address"`
	PublishBindAddress string `yaml:"publish_bind_address"`
}

// ProcessingConfig sizes the batch worker pool
type ProcessingConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// DataConfig locates the generator configuration file
type DataConfig struct {
	Directory               string `yaml:"directory"`
	GeneratorConfigFilename string `yaml:"generator_config_file"`
}

// GeneratorConfigPath joins the data directory and the generator config file name.
func (b *BootstrapConfig) GeneratorConfigPath() string {
	return filepath.Join(b.Data.Directory, b.Data.GeneratorConfigFilename)
}

// LoadBootstrapConfig loads configDir/pathscript_config.yaml, checks required
// fields and fills defaults for the optional ones.
func LoadBootstrapConfig(configDir string) (*BootstrapConfig, error) {
	bootstrapConfigPath := filepath.Join(configDir, BootstrapFileName)

	data, err := os.ReadFile(bootstrapConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error reading bootstrap config file '%s': %w", bootstrapConfigPath, err)
	}

	var bootstrapCfg BootstrapConfig
	if err := yaml.Unmarshal(data, &bootstrapCfg); err != nil {
		return nil, fmt.Errorf("error parsing bootstrap config file '%s': %w", bootstrapConfigPath, err)
	}

	if bootstrapCfg.ZeroMQ.Enabled {
		if bootstrapCfg.ZeroMQ.RequestBindAddress == "" {
			return nil, fmt.Errorf("missing required field in bootstrap config: zeromq.request_bind_address")
		}
		if bootstrapCfg.ZeroMQ.PublishBindAddress == "" {
			return nil, fmt.Errorf("missing required field in bootstrap config: zeromq.publish_bind_address")
		}
	}
	if bootstrapCfg.Data.Directory == "" {
		return nil, fmt.Errorf("missing required field in bootstrap config: data.directory")
	}
	if bootstrapCfg.Data.GeneratorConfigFilename == "" {
		return nil, fmt.Errorf("missing required field in bootstrap config: data.generator_config_file")
	}

	bootstrapCfg.applyDefaults()
	return &bootstrapCfg, nil
}

func (b *BootstrapConfig) applyDefaults() {
	if b.Logging.Level == "" {
		b.Logging.Level = "info"
	}
	if b.Server.HTTPPort == 0 {
		b.Server.HTTPPort = defaultHTTPPort
	}
	if b.Server.RequestTimeout == 0 {
		b.Server.RequestTimeout = defaultRequestTimeout
	}
	if b.Processing.Workers <= 0 {
		b.Processing.Workers = defaultWorkers
	}
	if b.Processing.QueueSize <= 0 {
		b.Processing.QueueSize = defaultQueueSize
	}
}
