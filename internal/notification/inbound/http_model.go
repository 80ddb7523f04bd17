package inbound

import (
	"time"

	"github.com/careplus/woundtrack/internal/notification/entity"
	"github.com/careplus/woundtrack/internal/pkg/valueobject"
)

type NotificationItemResponse struct {
	ID         int64               `json:"id,string"`
	TriggerKey string              `json:"trigger_key"`
	Data       valueobject.JSONMap `json:"data"`
	ReadAt     *time.Time          `json:"read_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

func newNotificationItemResponse(it entity.NotificationItem) NotificationItemResponse {
	return NotificationItemResponse{
		ID:         it.ID,
		TriggerKey: it.TriggerKey.String(),
		Data:       it.Data,
		ReadAt:     it.ReadAt,
		CreatedAt:  it.CreatedAt,
	}
}

type ListNotificationsResponse struct {
	Notifications []NotificationItemResponse `json:"notifications"`
	UnreadCount   int64                      `json:"unread_count"`
}

type MarkReadAllResponse struct {
	Updated int64 `json:"updated"`
}
