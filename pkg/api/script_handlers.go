package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/pkg/processing"
	"github.com/open-teleop/pathscript/pkg/request"
	"github.com/open-teleop/pathscript/pkg/script"
	"github.com/open-teleop/pathscript/services"
)

// DefaultBatchTimeout bounds how long a batch request waits for the pool.
const DefaultBatchTimeout = 30 * time.Second

// ScriptHandler holds dependencies for the script generation endpoints.
type ScriptHandler struct {
	scripts      services.ScriptService
	pool         *processing.ProcessingPool
	logger       customlog.Logger
	batchTimeout time.Duration
}

// NewScriptHandler creates a new handler for script endpoints. The pool may
// be nil, in which case batch requests are refused.
func NewScriptHandler(scripts services.ScriptService, pool *processing.ProcessingPool, logger customlog.Logger, batchTimeout time.Duration) *ScriptHandler {
	if scripts == nil {
		panic("ScriptService cannot be nil in NewScriptHandler")
	}
	if logger == nil {
		panic("Logger cannot be nil in NewScriptHandler")
	}
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}
	return &ScriptHandler{
		scripts:      scripts,
		pool:         pool,
		logger:       logger,
		batchTimeout: batchTimeout,
	}
}

// RegisterScriptRoutes registers the script API endpoints with the Fiber app.
func RegisterScriptRoutes(app *fiber.App, h *ScriptHandler) {
	apiGroup := app.Group("/api/v1/scripts")
	apiGroup.Post("/", h.handleGenerate)
	apiGroup.Post("/batch", h.handleBatch)

	h.logger.Infof("Registered script API endpoints under /api/v1/scripts")
}

// RegisterFormRoutes registers the HTML form and its result page.
func RegisterFormRoutes(app *fiber.App, h *ScriptHandler) {
	app.Get("/", h.handleForm)
	app.Post("/", h.handleFormSubmit)
}

func (h *ScriptHandler) handleGenerate(c *fiber.Ctx) error {
	var dto request.ScriptRequestDTO
	if err := json.Unmarshal(c.Body(), &dto); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid JSON body: %v", err),
		})
	}

	req, err := dto.ToRequest(h.scripts.DefaultDelay())
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	generated, err := h.scripts.Generate(req)
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if c.Query("format") == "text" {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(joinLines(generated.Commands))
	}
	return c.JSON(generated)
}

func (h *ScriptHandler) handleBatch(c *fiber.Ctx) error {
	if h.pool == nil || !h.pool.IsRunning() {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "batch processing is not available",
		})
	}

	var batch BatchRequest
	if err := json.Unmarshal(c.Body(), &batch); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid JSON body: %v", err),
		})
	}
	if len(batch.Requests) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "requests cannot be empty",
		})
	}
	if capacity := h.pool.GetQueueCapacity(); len(batch.Requests) > capacity {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("batch of %d requests exceeds queue capacity %d", len(batch.Requests), capacity),
		})
	}

	resp := BatchResponse{Results: make([]BatchItem, len(batch.Requests))}

	// Only requests that convert cleanly are queued; positions maps each
	// queued request back to its batch index.
	delay := h.scripts.DefaultDelay()
	var queued []script.Request
	var positions []int
	for i, dto := range batch.Requests {
		resp.Results[i].Index = i
		req, err := dto.ToRequest(delay)
		if err != nil {
			resp.Results[i].Error = err.Error()
			continue
		}
		queued = append(queued, req)
		positions = append(positions, i)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.batchTimeout)
	defer cancel()

	for j, res := range h.pool.RunBatch(ctx, queued) {
		item := &resp.Results[positions[j]]
		if res.Error != nil {
			item.Error = res.Error.Error()
			continue
		}
		item.Script = res.Script
	}

	for _, item := range resp.Results {
		if item.Error != "" {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}

	h.logger.Infof("Batch processed: %d succeeded, %d failed", resp.Succeeded, resp.Failed)
	return c.JSON(resp)
}

func (h *ScriptHandler) handleForm(c *fiber.Ctx) error {
	return c.Render("form", fiber.Map{
		"DefaultDelay": h.scripts.DefaultDelay(),
	})
}

// handleFormSubmit renders the result page, or a single error line when the
// submission cannot be turned into a script.
func (h *ScriptHandler) handleFormSubmit(c *fiber.Ctx) error {
	req, err := request.FromForm(func(key string) string { return c.FormValue(key) }, h.scripts.DefaultDelay())
	if err == nil {
		var generated *services.GeneratedScript
		if generated, err = h.scripts.Generate(req); err == nil {
			return c.Render("result", generated)
		}
	}

	h.logger.Debugf("Form submission rejected: %v", err)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(StatusFor(err)).SendString("Error in input data: " + err.Error())
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
