package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// HelloHandler serves the plain-text greeting routes kept for older clients
type HelloHandler struct{}

// NewHelloHandler creates a new hello handler
func NewHelloHandler() *HelloHandler {
	return &HelloHandler{}
}

// Hello handles GET /hello
func (h *HelloHandler) Hello(c *fiber.Ctx) error {
	return c.SendString("Hello, world!")
}

// HelloPeople handles GET /hello/people
func (h *HelloHandler) HelloPeople(c *fiber.Ctx) error {
	return c.SendString("Hello People!")
}

// HelloName handles GET /hello/:name
func (h *HelloHandler) HelloName(c *fiber.Ctx) error {
	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return c.SendString("Hello, " + name + "!")
}

// RegisterRoutes registers greeting routes
func (h *HelloHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/hello", h.Hello)
	app.Get("/hello/people", h.HelloPeople)
	app.Get("/hello/:name", h.HelloName)
}
