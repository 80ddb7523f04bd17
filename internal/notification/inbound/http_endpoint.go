package inbound

import (
	"github.com/careplus/woundtrack/internal/notification/entity"
	"github.com/careplus/woundtrack/internal/notification/usecase"
	"github.com/careplus/woundtrack/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for in-app notifications.
type HTTPEndpoint struct {
	uc uc
}

// ListNotifications returns the caller's notifications.
// @Summary List notifications
// @Description Returns the authenticated user's notifications, newest first.
// @Tags Notification
// @Produce json
// @Param status query string false "Filter: all, read, unread"
// @Param size query int false "Page size (default 20)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} router.successResponse{data=ListNotificationsResponse} "Notification list"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications [get]
func (h *HTTPEndpoint) ListNotifications(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListNotifications(r.Context(), usecase.ListNotificationsInput{
		Status: entity.NotificationStatus(r.GetQuery("status")),
		Size:   size,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}

	return ListNotificationsResponse{
		Notifications: lo.Map(resp.Notifications, func(it entity.NotificationItem, _ int) NotificationItemResponse {
			return newNotificationItemResponse(it)
		}),
		UnreadCount: resp.UnreadCount,
	}, nil
}

// MarkRead marks one notification as read.
// @Summary Mark notification read
// @Description Marks the notification as read for the authenticated user.
// @Tags Notification
// @Param id path int true "Notification ID"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Notification not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/{id}/read [patch]
func (h *HTTPEndpoint) MarkRead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.MarkRead(r.Context(), usecase.MarkReadInput{NotificationID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

// MarkReadAll marks every unread notification as read.
// @Summary Mark all notifications read
// @Description Marks all of the authenticated user's unread notifications as read.
// @Tags Notification
// @Produce json
// @Success 200 {object} router.successResponse{data=MarkReadAllResponse} "Update count"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/read-all [put]
func (h *HTTPEndpoint) MarkReadAll(r *router.Request) (any, error) {
	resp, err := h.uc.MarkReadAll(r.Context())
	if err != nil {
		return nil, err
	}

	return MarkReadAllResponse{Updated: resp.Updated}, nil
}
