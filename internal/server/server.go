// server.go
//
// A file-backed document store and offline sync service for the lessonsync learning platform
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of lessonsync.
// lessonsync is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// lessonsync is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with lessonsync.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package server assembles the fiber application that serves the API.
package server

import (
	"errors"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/lessonsync/internal/handlers"
	"github.com/localnerve/lessonsync/internal/logger"
	"github.com/localnerve/lessonsync/internal/services"
	"github.com/localnerve/lessonsync/internal/types"
	"github.com/localnerve/lessonsync/internal/utils"

	_ "github.com/localnerve/lessonsync/docs/api" // Swagger docs
)

// Options selects the optional parts of the app.
type Options struct {
	BodyLimitMB int
	AccessLog   bool
	// Metrics registers the Prometheus collectors globally, so only one app
	// per process may enable it.
	Metrics bool
	Swagger bool
}

// New builds the fiber app with the API mounted under /api.
func New(svc *services.Service, log *logger.Logger, opts Options) *fiber.App {
	if log == nil {
		log = logger.NewNop()
	}
	bodyLimit := opts.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 50
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler(log),
		BodyLimit:             bodyLimit * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(compress.New())

	// Prometheus metrics
	if opts.Metrics {
		prometheus := fiberprometheus.New("lessonsync")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	// Swagger documentation
	if opts.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	api := app.Group("/api")
	handlers.New(svc, log).Register(api)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}

// errorHandler renders errors that escape a handler. CustomError and
// fiber.Error carry their own status; anything else is a 500 whose detail
// stays in the log.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ce *types.CustomError
		if errors.As(err, &ce) {
			log.Debug("request rejected", "url", c.OriginalURL(), "method", c.Method(), "status", ce.Code, "message", ce.Message)
			return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Message, fe.Code, "unknown")
		}

		log.Error("unhandled error", "url", c.OriginalURL(), "method", c.Method(), "error", err)
		return utils.ErrorResponse(c, "Internal Server Error", fiber.StatusInternalServerError, "unknown")
	}
}
