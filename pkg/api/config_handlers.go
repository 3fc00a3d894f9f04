package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"

	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/services"
)

// ConfigHandler holds dependencies for configuration API endpoints.
type ConfigHandler struct {
	configService services.GeneratorConfigService
	logger        customlog.Logger
}

// NewConfigHandler creates a new handler for configuration endpoints.
func NewConfigHandler(configService services.GeneratorConfigService, logger customlog.Logger) *ConfigHandler {
	if configService == nil {
		panic("ConfigService cannot be nil in NewConfigHandler")
	}
	if logger == nil {
		panic("Logger cannot be nil in NewConfigHandler")
	}
	return &ConfigHandler{
		configService: configService,
		logger:        logger,
	}
}

// RegisterConfigRoutes registers the configuration API endpoints with the Fiber app.
func RegisterConfigRoutes(app *fiber.App, configService services.GeneratorConfigService, logger customlog.Logger) {
	h := NewConfigHandler(configService, logger)

	apiGroup := app.Group("/api/v1/config")
	apiGroup.Get("/generator", h.handleGetGeneratorConfig)
	apiGroup.Put("/generator", h.handleUpdateGeneratorConfig)

	logger.Infof("Registered generator configuration API endpoints under /api/v1/config")
}

// handleGetGeneratorConfig returns the stored generator config YAML.
func (h *ConfigHandler) handleGetGeneratorConfig(c *fiber.Ctx) error {
	h.logger.Debugf("Handling GET request for /api/v1/config/generator")
	yamlData, err := h.configService.GetCurrentConfigYAML()
	if errors.Is(err, os.ErrNotExist) {
		yamlData, err = nil, nil
	}
	if err != nil {
		h.logger.Errorf("Failed to get current generator config YAML: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to retrieve configuration: %v", err),
		})
	}

	if yamlData == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Generator configuration not found or not yet set.",
		})
	}

	c.Set(fiber.HeaderContentType, "application/x-yaml")
	return c.Send(yamlData)
}

// handleUpdateGeneratorConfig validates, persists and applies a new YAML document.
func (h *ConfigHandler) handleUpdateGeneratorConfig(c *fiber.Ctx) error {
	h.logger.Debugf("Handling PUT request for /api/v1/config/generator")

	switch c.Get(fiber.HeaderContentType) {
	case "application/x-yaml", "application/yaml", "text/yaml":
	default:
		h.logger.Warnf("Received PUT request with unexpected Content-Type: %s", c.Get(fiber.HeaderContentType))
	}

	newConfigYAML := c.Body()
	if len(newConfigYAML) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Request body cannot be empty.",
		})
	}

	if err := h.configService.UpdateConfig(newConfigYAML); err != nil {
		h.logger.Errorf("Failed to update generator configuration: %v", err)
		if StatusFor(err) == http.StatusBadRequest {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Configuration update failed: %v", err),
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Internal server error during configuration update: %v", err),
		})
	}

	h.logger.Infof("Generator configuration updated.")
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Generator configuration updated successfully.",
	})
}
