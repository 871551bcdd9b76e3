package models

import "time"

// Notice is a society notice-board entry, read-only for this client.
type Notice struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	PostedAt time.Time `json:"posted_at"`
}
