package handler

import (
	"honesty-store-backend/internal/model"
	"honesty-store-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: s}
}

// GetNotifications lists the notices visible to the caller's role.
// Publishers see everything regardless of audience.
// GET /api/v1/notifications?category=Snacks
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	if hasPrivilege(c, "notification:create") {
		notifications, err := h.service.GetAllNotifications()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch notifications"})
		}
		return c.JSON(notifications)
	}

	notifications, err := h.service.GetNotificationsForRole(getRoleCode(c), c.Query("category"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}
	return c.JSON(notifications)
}

// CreateNotification publishes an announcement
// POST /api/v1/notifications
func (h *NotificationHandler) CreateNotification(c *fiber.Ctx) error {
	var notification model.Notification
	if err := c.BodyParser(&notification); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateNotification(&notification, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Notification created", "data": notification})
}
