package dto

import "time"

const (
	ChangeEntityFolder     = "folder"
	ChangeEntityNote       = "note"
	ChangeEntityAttachment = "attachment"
	ChangeEntityEvent      = "event"

	ChangeActionCreated = "created"
	ChangeActionUpdated = "updated"
	ChangeActionMoved   = "moved"
	ChangeActionDeleted = "deleted"
)

// ChangeNotification tells the presentation layer that data it may be
// displaying has changed.
type ChangeNotification struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	Id         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}
