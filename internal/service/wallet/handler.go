package wallet

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evsync/evsync/internal/ports"
)

// Handler handles wallet HTTP requests
type Handler struct {
	service ports.WalletService
}

// NewHandler creates a new wallet handler
func NewHandler(service ports.WalletService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers wallet routes
func (h *Handler) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	wallet := app.Group("/api/v1/wallet", authMiddleware)

	wallet.Get("/", h.GetWallet)
	wallet.Post("/topup", h.TopUp)
	wallet.Get("/transactions", h.GetTransactions)
}

// TopUpRequest represents the request body
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// GetWallet handles GET /api/v1/wallet
func (h *Handler) GetWallet(c *fiber.Ctx) error {
	accountID := c.Locals("account_id").(string)

	wallet, err := h.service.GetWallet(c.Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(wallet)
}

// TopUp handles POST /api/v1/wallet/topup
func (h *Handler) TopUp(c *fiber.Ctx) error {
	accountID := c.Locals("account_id").(string)

	var req TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.service.Credit(c.Context(), accountID, req.Amount, ""); err != nil {
		return err
	}

	wallet, err := h.service.GetWallet(c.Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(wallet)
}

// GetTransactions handles GET /api/v1/wallet/transactions
func (h *Handler) GetTransactions(c *fiber.Ctx) error {
	accountID := c.Locals("account_id").(string)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	transactions, err := h.service.GetTransactions(c.Context(), accountID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"limit":        limit,
		"offset":       offset,
	})
}
