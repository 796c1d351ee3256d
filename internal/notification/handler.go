package notification

import (
	"net/http"

	"FacultyManager/internal/views"

	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests for notifications.
type NotificationHandler struct {
	service *NotificationService
}

func NewNotificationHandler(service *NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListNotifications renders the audit log by recency.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	records, err := h.service.ListNotifications(c.Request().Context())
	if err != nil {
		return err
	}
	return views.Render(c, http.StatusOK, "notifications.html", echo.Map{"Notifications": records})
}
