// Package server builds the fiber application shared by cmd/server and the
// handler tests.
package server

import (
	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/config"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewApp creates the fiber app with the global middlewares installed
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Bookshelf API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	middleware.Setup(app, cfg)
	return app
}
