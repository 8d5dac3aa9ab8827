package handler

import (
	"time"

	"honesty-store-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func parseSheetDate(c *fiber.Ctx) (time.Time, error) {
	dateStr := c.Query("date")
	if dateStr == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse("2006-01-02", dateStr)
}

// GetSheet returns the reconciliation sheet for a date
// GET /api/v1/stock/sheet?date=YYYY-MM-DD&category=Snacks&low_stock=true
func (h *StockHandler) GetSheet(c *fiber.Ctx) error {
	date, err := parseSheetDate(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	category := c.Query("category")
	lowStockOnly := c.QueryBool("low_stock", false)

	rows, err := h.service.BuildSheet(date, category, lowStockOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build stock sheet"})
	}

	return c.JSON(fiber.Map{
		"date": date.Format("2006-01-02"),
		"rows": rows,
	})
}

// SaveSheet persists the edited sheet for a date
// PUT /api/v1/stock/sheet?date=YYYY-MM-DD
func (h *StockHandler) SaveSheet(c *fiber.Ctx) error {
	date, err := parseSheetDate(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	var req struct {
		Entries []service.SheetEntry `json:"entries"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.SaveSheet(date, req.Entries, getUserID(c), getUserName(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Stock sheet saved", "date": date.Format("2006-01-02")})
}
