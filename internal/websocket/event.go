// internal/websocket/event.go
package websocket

import "time"

type EventType string

const (
	EventPostCreated EventType = "post_created"
	EventPostUpdated EventType = "post_updated"
	EventPostDeleted EventType = "post_deleted"
)

// Event is one post lifecycle notification pushed to connected admin
// consoles. Pure fan-out; clients never send events back.
type Event struct {
	Type   EventType `json:"type"`
	PostID int64     `json:"post_id"`
	Title  string    `json:"title,omitempty"`
	At     time.Time `json:"at"`
}
