package rating

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evsync/evsync/internal/ports"
)

// Handler handles rating HTTP requests
type Handler struct {
	service ports.RatingService
}

// NewHandler creates a new rating handler
func NewHandler(service ports.RatingService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers rating routes
func (h *Handler) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	app.Post("/api/v1/stations/:id/ratings", authMiddleware, h.RateStation)
	app.Get("/api/v1/stations/:id/ratings", h.GetStationRatings)
	app.Get("/api/v1/impact/estimate", h.EstimateImpact)
}

// RateStationRequest represents the request body
type RateStationRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// RateStation handles POST /api/v1/stations/:id/ratings
func (h *Handler) RateStation(c *fiber.Ctx) error {
	accountID := c.Locals("account_id").(string)

	var req RateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	rating, err := h.service.RateStation(c.Context(), accountID, c.Params("id"), req.Score, req.Comment)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetStationRatings handles GET /api/v1/stations/:id/ratings
func (h *Handler) GetStationRatings(c *fiber.Ctx) error {
	ratings, average, err := h.service.GetStationRatings(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"ratings": ratings,
		"average": average,
		"count":   len(ratings),
	})
}

// EstimateImpact handles GET /api/v1/impact/estimate
func (h *Handler) EstimateImpact(c *fiber.Ctx) error {
	energy := c.QueryFloat("energy", 0)

	return c.JSON(fiber.Map{
		"energy_kwh":     energy,
		"co2_avoided_kg": h.service.EstimateImpact(energy),
	})
}
