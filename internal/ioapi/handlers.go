package ioapi

import (
	wastd "github.com/dbca-wa/wastd/pkg"
	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/dbca-wa/wastd/pkg/fsm"
	"github.com/gofiber/fiber/v2"
)

// TransitionRequest is the body of POST /:kind/:id/transitions.
type TransitionRequest struct {
	Operation string `json:"operation" validate:"required,max=64"`
	Actor     string `json:"actor" validate:"required,max=255"`
}

func (s *Server) ping(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (s *Server) version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": wastd.Version,
		"build":   wastd.Build,
	})
}

func (s *Server) gazettal(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := recordID(c)
		if err != nil {
			return err
		}
		res, err := s.svc.Gazettal(c.UserContext(), kind, id)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func (s *Server) available(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	res, err := s.svc.Available(c.UserContext(), c.Params("kind"), id)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (s *Server) history(c *fiber.Ctx) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	res, err := s.svc.History(c.UserContext(), c.Params("kind"), id)
	if err != nil {
		return err
	}
	if res == nil {
		res = []audit.Entry{}
	}
	return c.JSON(res)
}

func (s *Server) transition(c *fiber.Ctx) error {
	if !s.cfg.Server.AllowTransitions {
		return fiber.NewError(fiber.StatusForbidden,
			"transitions are disabled on this server")
	}
	id, err := recordID(c)
	if err != nil {
		return err
	}

	var req TransitionRequest
	if err = c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err = s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := s.svc.Transition(
		c.UserContext(),
		c.Params("kind"),
		id,
		fsm.Operation(req.Operation),
		req.Actor,
	)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func recordID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest,
			"id must be a positive integer")
	}
	return uint(id), nil
}
