package handlers

import (
	"net/http"

	"hirelink_backend/internal/logger"
	"hirelink_backend/internal/middleware"
	"hirelink_backend/internal/models"
	"hirelink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Only candidates and recruiters have a notification inbox.
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCandidate, models.UserRoleRecruiter))
	{
		notifications.GET("", h.GetUserNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PUT("/:notificationId/read", h.MarkAsRead)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.DELETE("/:notificationId", h.DeleteNotification)
	}
}

func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	response, err := h.notificationService.ListForUser(userID, role, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxDebug(c.Request.Context(), "notifications listed", "count", response.Total, "page", page)
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(userID, role, c.Param("notificationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllRead(userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": updated})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, role, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	if err := h.notificationService.Delete(userID, role, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
