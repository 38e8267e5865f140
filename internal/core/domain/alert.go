package domain

import "time"

// Alert is a notification addressed to one user. A broadcast becomes one
// alert per active user so each can be read independently.
type Alert struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertFilter pages through a user's alerts.
type AlertFilter struct {
	Skip       int
	Limit      int
	UnreadOnly bool
}

// AlertInbox is one page of a user's alerts plus the unread total.
type AlertInbox struct {
	Alerts      []Alert `json:"alerts"`
	Total       int64   `json:"total"`
	UnreadCount int64   `json:"unread_count"`
}
