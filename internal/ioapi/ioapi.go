// Package ioapi serves a small JSON API over the workflow service.
//
// Reads are always available. Transitions through POST are admin-only and
// are refused unless the server is configured to allow them.
package ioapi

import (
	"context"
	"log/slog"
	"time"

	wastd "github.com/dbca-wa/wastd/pkg"
	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Prefix of all routes.
const Prefix = "/api/v1"

// Server is the HTTP front of a workflow.Service.
type Server struct {
	app      *fiber.App
	svc      workflow.Service
	cfg      *config.Config
	validate *validator.Validate
}

// New creates the server and registers routes.
func New(svc workflow.Service, cfg *config.Config) *Server {
	res := &Server{
		svc:      svc,
		cfg:      cfg,
		validate: validator.New(),
		app: fiber.New(fiber.Config{
			AppName:               "wastd " + wastd.Version,
			DisableStartupMessage: true,
			ErrorHandler:          errorHandler,
		}),
	}

	res.app.Use(recover.New())
	res.app.Use(requestLog)

	api := res.app.Group(Prefix)
	api.Get("/ping", res.ping)
	api.Get("/version", res.version)
	api.Get("/gazettals/taxon/:id", res.gazettal(workflow.KindTaxonGazettal))
	api.Get("/gazettals/community/:id",
		res.gazettal(workflow.KindCommunityGazettal))
	api.Get("/:kind/:id/transitions", res.available)
	api.Post("/:kind/:id/transitions", res.transition)
	api.Get("/:kind/:id/history", res.history)
	return res
}

// App exposes the fiber application, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Addr()
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()
	slog.Info("API server started", "address", addr,
		"allow_transitions", s.cfg.Server.AllowTransitions)

	select {
	case err := <-errCh:
		if err != nil {
			return ServerStartError(addr, err)
		}
		return nil
	case <-ctx.Done():
		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("API server is shutting down")
		return s.app.ShutdownWithContext(sCtx)
	}
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	slog.Debug("Request",
		"method", c.Method(),
		"path", c.OriginalURL(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
	)
	return err
}
