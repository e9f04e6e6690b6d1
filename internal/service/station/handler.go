package station

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evsync/evsync/internal/ports"
)

// Handler handles station HTTP requests
type Handler struct {
	service ports.StationService
}

// NewHandler creates a new station handler
func NewHandler(service ports.StationService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers station routes
func (h *Handler) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	stations := app.Group("/api/v1/stations")

	stations.Get("/", h.ListStations)
	stations.Get("/nearby", h.FindNearby)
	stations.Get("/:id", h.GetStation)

	stations.Post("/", authMiddleware, h.RegisterStation)
	stations.Delete("/:id", authMiddleware, h.DeleteStation)
	stations.Post("/:id/outlets", authMiddleware, h.AddOutlet)
}

// RegisterStationRequest represents the request body
type RegisterStationRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// AddOutletRequest represents the request body
type AddOutletRequest struct {
	CostPerHour float64 `json:"cost_per_hour"`
	MaxPowerKW  float64 `json:"max_power_kw"`
}

// RegisterStation handles POST /api/v1/stations
func (h *Handler) RegisterStation(c *fiber.Ctx) error {
	accountID := c.Locals("account_id").(string)

	var req RegisterStationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	station, err := h.service.RegisterStation(c.Context(), &ports.StationRequest{
		Name:       req.Name,
		OperatorID: accountID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Address:    req.Address,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(station)
}

// GetStation handles GET /api/v1/stations/:id
func (h *Handler) GetStation(c *fiber.Ctx) error {
	station, err := h.service.GetStation(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(station)
}

// ListStations handles GET /api/v1/stations
func (h *Handler) ListStations(c *fiber.Ctx) error {
	stations, err := h.service.ListStations(c.Context(), c.Query("status", ""))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"stations": stations,
		"count":    len(stations),
	})
}

// FindNearby handles GET /api/v1/stations/nearby
func (h *Handler) FindNearby(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat", 0)
	lon := c.QueryFloat("lon", 0)
	radius := c.QueryFloat("radius", 10)

	stations, err := h.service.FindNearby(c.Context(), lat, lon, radius)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"stations": stations,
		"count":    len(stations),
	})
}

// DeleteStation handles DELETE /api/v1/stations/:id
func (h *Handler) DeleteStation(c *fiber.Ctx) error {
	if err := h.service.DeleteStation(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Station deleted",
	})
}

// AddOutlet handles POST /api/v1/stations/:id/outlets
func (h *Handler) AddOutlet(c *fiber.Ctx) error {
	var req AddOutletRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	outlet, err := h.service.AddOutlet(c.Context(), &ports.OutletRequest{
		StationID:   c.Params("id"),
		CostPerHour: req.CostPerHour,
		MaxPowerKW:  req.MaxPowerKW,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(outlet)
}
