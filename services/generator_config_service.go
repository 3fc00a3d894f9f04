package services

import (
	"fmt"
	"os"
	"sync"

	"github.com/open-teleop/pathscript/pkg/config"
	customlog "github.com/open-teleop/pathscript/pkg/log"
)

// ConfigPublisher announces configuration changes to subscribers.
type ConfigPublisher interface {
	PublishConfigUpdatedNotification() error
}

// GeneratorConfigService manages the operational generator configuration.
type GeneratorConfigService interface {
	LoadConfig() error
	GetCurrentConfig() *config.Config
	GetCurrentConfigYAML() ([]byte, error)
	// Settings resolves the current configuration, or the built-in defaults
	// when none is loaded.
	Settings() config.GeneratorSettings
	UpdateConfig(newConfigYAML []byte) error
	PersistConfig(yamlData []byte) error
	SetPublisher(p ConfigPublisher)
}

type generatorConfigService struct {
	configPath      string
	logger          customlog.Logger
	configPublisher ConfigPublisher
	currentConfig   *config.Config
	settings        config.GeneratorSettings
	mu              sync.RWMutex
}

func defaultSettings() config.GeneratorSettings {
	settings, _ := (&config.Config{}).Settings()
	return settings
}

// NewGeneratorConfigService creates the service and attempts an initial load.
// A missing or invalid file is logged and the defaults stay in effect until
// a valid configuration is provided through UpdateConfig.
func NewGeneratorConfigService(configPath string, logger customlog.Logger) (GeneratorConfigService, error) {
	if configPath == "" {
		return nil, fmt.Errorf("generator configuration path cannot be empty")
	}
	if logger == nil {
		logger = customlog.Nop()
	}

	service := &generatorConfigService{
		configPath: configPath,
		logger:     logger.WithField("component", "generator-config"),
		settings:   defaultSettings(),
	}

	if err := service.LoadConfig(); err != nil {
		service.logger.Warnf("Initial load of generator config '%s' failed: %v. Using defaults.", configPath, err)
		return service, nil
	}

	service.logger.Infof("GeneratorConfigService initialized for path: %s", configPath)
	return service, nil
}

// LoadConfig reads the configuration file and swaps it in. The previous
// configuration is kept when the file cannot be read or is invalid.
func (s *generatorConfigService) LoadConfig() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Infof("Loading generator configuration from: %s", s.configPath)
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		s.logger.Errorf("Error loading generator config '%s': %v", s.configPath, err)
		return fmt.Errorf("error loading generator config '%s': %w", s.configPath, err)
	}

	if err := s.applyUnlocked(cfg); err != nil {
		return err
	}
	s.logger.Infof("Loaded generator configuration ID: %s, Version: %s", cfg.ConfigID, cfg.Version)
	return nil
}

func (s *generatorConfigService) applyUnlocked(cfg *config.Config) error {
	settings, err := cfg.Settings()
	if err != nil {
		return fmt.Errorf("invalid generator config: %w", err)
	}
	s.currentConfig = cfg
	s.settings = settings
	return nil
}

// GetCurrentConfig returns the loaded configuration, nil when none is loaded.
// Callers must treat it as read-only.
func (s *generatorConfigService) GetCurrentConfig() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentConfig
}

func (s *generatorConfigService) Settings() config.GeneratorSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// GetCurrentConfigYAML returns the raw file content.
func (s *generatorConfigService) GetCurrentConfigYAML() ([]byte, error) {
	s.mu.RLock()
	path := s.configPath
	s.mu.RUnlock()

	s.logger.Debugf("Reading raw generator configuration YAML from: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Errorf("Error reading generator config file '%s' for YAML export: %v", path, err)
		return nil, fmt.Errorf("error reading generator config file '%s': %w", path, err)
	}
	return data, nil
}

// UpdateConfig validates, persists and applies new YAML, then notifies the
// publisher asynchronously.
func (s *generatorConfigService) UpdateConfig(newConfigYAML []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	newCfg, err := config.ParseConfig(newConfigYAML)
	if err != nil {
		s.logger.Errorf("Rejected generator configuration: %v", err)
		return &ConfigValidationError{Err: err}
	}
	if newCfg.ConfigID == "" || newCfg.Version == "" {
		s.logger.Errorf("Rejected generator configuration: missing config_id or version")
		return &ConfigValidationError{Err: fmt.Errorf("missing required fields (config_id, version)")}
	}

	if err := s.persistConfigUnlocked(newConfigYAML); err != nil {
		return err
	}

	oldID := "N/A"
	if s.currentConfig != nil {
		oldID = s.currentConfig.ConfigID
	}
	if err := s.applyUnlocked(newCfg); err != nil {
		return &ConfigValidationError{Err: err}
	}
	s.logger.Infof("Updated generator configuration. ID %s -> %s, Version: %s", oldID, newCfg.ConfigID, newCfg.Version)

	if s.configPublisher != nil {
		go func(publisher ConfigPublisher) {
			if err := publisher.PublishConfigUpdatedNotification(); err != nil {
				s.logger.Warnf("Failed to publish config update notification: %v", err)
				return
			}
			s.logger.Debugf("Published config update notification")
		}(s.configPublisher)
	}

	return nil
}

// PersistConfig writes yamlData to the configuration file without applying it.
func (s *generatorConfigService) PersistConfig(yamlData []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistConfigUnlocked(yamlData)
}

func (s *generatorConfigService) persistConfigUnlocked(yamlData []byte) error {
	if err := os.WriteFile(s.configPath, yamlData, 0644); err != nil {
		s.logger.Errorf("Error writing generator config file '%s': %v", s.configPath, err)
		return fmt.Errorf("error writing generator config file '%s': %w", s.configPath, err)
	}
	s.logger.Infof("Persisted generator configuration to %s", s.configPath)
	return nil
}

func (s *generatorConfigService) SetPublisher(p ConfigPublisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configPublisher = p
}

// ConfigValidationError wraps a rejected configuration update.
type ConfigValidationError struct {
	Err error
}

func (e *ConfigValidationError) Error() string { return "validation failed: " + e.Err.Error() }

func (e *ConfigValidationError) Unwrap() error { return e.Err }

func (e *ConfigValidationError) IsValidationError() bool { return true }
