package session

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evsync/evsync/internal/ports"
)

// Handler handles charging session HTTP requests
type Handler struct {
	service ports.SessionService
}

// NewHandler creates a new session handler
func NewHandler(service ports.SessionService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers session routes
func (h *Handler) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	sessions := app.Group("/api/v1/sessions", authMiddleware)

	sessions.Post("/start", h.StartSession)
	sessions.Put("/:id/end", h.EndSession)
	sessions.Post("/:id/interrupt", h.InterruptSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Delete("/:id", h.DeleteSession)
}

// StartSessionRequest represents the request body
type StartSessionRequest struct {
	ReservationID string `json:"reservation_id"`
}

// EndSessionRequest represents the request body
type EndSessionRequest struct {
	EnergyKWh float64 `json:"energy_kwh"`
}

// InterruptSessionRequest represents the request body
type InterruptSessionRequest struct {
	Reason string `json:"reason"`
}

// StartSession handles POST /api/v1/sessions/start
func (h *Handler) StartSession(c *fiber.Ctx) error {
	var req StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ReservationID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "reservation_id is required")
	}

	session, err := h.service.StartSession(c.Context(), req.ReservationID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// EndSession handles PUT /api/v1/sessions/:id/end
func (h *Handler) EndSession(c *fiber.Ctx) error {
	var req EndSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := h.service.EndSession(c.Context(), c.Params("id"), req.EnergyKWh)
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// InterruptSession handles POST /api/v1/sessions/:id/interrupt
func (h *Handler) InterruptSession(c *fiber.Ctx) error {
	var req InterruptSessionRequest
	c.BodyParser(&req)

	session, err := h.service.InterruptSession(c.Context(), c.Params("id"), req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *Handler) GetSession(c *fiber.Ctx) error {
	session, err := h.service.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	if err := h.service.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Session deleted",
	})
}
