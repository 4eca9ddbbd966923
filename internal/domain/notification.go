package domain

import "time"

type Notification struct {
	ID        string
	Kind      NotificationKind
	Title     string
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the notification's display time has elapsed at now.
func (n *Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
