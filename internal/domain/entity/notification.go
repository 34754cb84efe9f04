package entity

import "time"

const (
	NotificationMessage   = "message"
	NotificationResponse  = "response"
	NotificationSold      = "sold"
	NotificationPriceDrop = "price_drop"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	FromUser  string    `json:"from_user_id,omitempty"`
	ThreadID  string    `json:"thread_id,omitempty"`
	ListingID string    `json:"listing_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
