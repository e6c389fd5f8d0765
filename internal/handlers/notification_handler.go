package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// NotificationHandler handles notification and preference HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	preferenceRepository   repositories.PreferenceRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notifRepo repositories.NotificationRepository,
	prefRepo repositories.PreferenceRepository,
	userRepo repositories.UserRepository,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		preferenceRepository:   prefRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification and preference routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notification-preferences/:user_id", h.GetPreferences)
	g.PUT("/notification-preferences/:user_id", h.UpdatePreferences)

	// The :id segment is the recipient's user id on listing routes and
	// the notification id on single-row routes, as in the upstream API.
	g.GET("/notifications/:id", h.GetNotifications)
	g.GET("/notifications/:id/unread/count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/:id/read-all", h.MarkAllAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

func (h *NotificationHandler) enrichNotifications(notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	userCache := make(map[uint]models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if actor, ok := userCache[n.ActorID]; ok {
			enriched[i].Actor = actor
		} else if user, err := h.userRepository.GetUserByID(n.ActorID); err == nil {
			compact := user.ToCompact()
			userCache[n.ActorID] = compact
			enriched[i].Actor = compact
		}
	}
	return enriched
}

// GetPreferences returns the user's notification preferences, falling
// back to defaults when none were ever saved
func (h *NotificationHandler) GetPreferences(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	prefs, err := h.preferenceRepository.GetPreferences(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences saves the user's notification preferences
func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	var req models.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	prefs, err := h.preferenceRepository.UpdatePreferences(userID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, prefs)
}

// GetNotifications returns paginated notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	notifications, total, err := h.notificationRepository.GetByRecipientID(userID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": h.enrichNotifications(notifications),
		"meta": echo.Map{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  total,
		},
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks one notification as read; only the owner can
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	notificationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAsRead(notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllAsRead marks all of a user's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAllAsRead(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}

// DeleteNotification deletes one notification; only the owner can
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	notificationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationRepository.DeleteNotification(notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification deleted"})
}
