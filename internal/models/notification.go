package models

import "time"

type NotificationType string

const (
	NotifyBookingStatus NotificationType = "booking_status"
	NotifyPostLiked     NotificationType = "post_liked"
	NotifyNewFollower   NotificationType = "new_follower"
	NotifyAnnouncement  NotificationType = "announcement"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int              `json:"user_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
