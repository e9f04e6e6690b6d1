package reservation

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/evsync/evsync/internal/ports"
)

// Handler handles reservation HTTP requests
type Handler struct {
	service ports.ReservationService
}

// NewHandler creates a new reservation handler
func NewHandler(service ports.ReservationService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers reservation routes
func (h *Handler) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	reservations := app.Group("/api/v1/reservations", authMiddleware)

	reservations.Post("/", h.CreateReservation)
	reservations.Get("/", h.GetConsumerReservations)
	reservations.Get("/:id", h.GetReservation)
	reservations.Post("/:id/confirm", h.ConfirmReservation)
	reservations.Post("/:id/cancel", h.CancelReservation)

	app.Get("/api/v1/stations/:id/reservations", authMiddleware, h.GetStationReservations)
}

// CreateReservationRequest represents the request body
type CreateReservationRequest struct {
	StationID     string    `json:"station_id"`
	StartTime     time.Time `json:"start_time"`
	DurationHours float64   `json:"duration_hours"`
}

// CreateReservation handles POST /api/v1/reservations
func (h *Handler) CreateReservation(c *fiber.Ctx) error {
	accountID := c.Locals("account_id").(string)

	var req CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	reservation, err := h.service.CreateReservation(c.Context(), &ports.ReservationRequest{
		ConsumerID:    accountID,
		StationID:     req.StationID,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(reservation)
}

// GetReservation handles GET /api/v1/reservations/:id
func (h *Handler) GetReservation(c *fiber.Ctx) error {
	reservation, err := h.service.GetReservation(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(reservation)
}

// GetConsumerReservations handles GET /api/v1/reservations
func (h *Handler) GetConsumerReservations(c *fiber.Ctx) error {
	accountID := c.Locals("account_id").(string)
	status := c.Query("status", "")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	reservations, err := h.service.GetConsumerReservations(c.Context(), accountID, status, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"reservations": reservations,
		"limit":        limit,
		"offset":       offset,
	})
}

// ConfirmReservation handles POST /api/v1/reservations/:id/confirm
func (h *Handler) ConfirmReservation(c *fiber.Ctx) error {
	reservation, err := h.service.ConfirmReservation(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(reservation)
}

// CancelReservation handles POST /api/v1/reservations/:id/cancel
func (h *Handler) CancelReservation(c *fiber.Ctx) error {
	reservation, err := h.service.CancelReservation(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(reservation)
}

// GetStationReservations handles GET /api/v1/stations/:id/reservations
func (h *Handler) GetStationReservations(c *fiber.Ctx) error {
	stationID := c.Params("id")
	dateStr := c.Query("date", time.Now().Format("2006-01-02"))

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)")
	}

	reservations, err := h.service.GetStationReservations(c.Context(), stationID, date)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"station_id":   stationID,
		"date":         dateStr,
		"reservations": reservations,
	})
}
