package api

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewViewsEngine loads the embedded form and result templates.
func NewViewsEngine() *html.Engine {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(views), ".html")
}

// NewApp creates the fiber app with the embedded views and the JSON error handler.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		Views:        NewViewsEngine(),
		ErrorHandler: ErrorHandler,
	})
}

// ErrorHandler renders unhandled errors as {"error": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// StatusFor maps request and configuration problems to 400 and anything
// else to 500.
func StatusFor(err error) int {
	var v interface{ IsValidationError() bool }
	if errors.As(err, &v) && v.IsValidationError() {
		return http.StatusBadRequest
	}
	var c interface{ IsConfigurationError() bool }
	if errors.As(err, &c) && c.IsConfigurationError() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
