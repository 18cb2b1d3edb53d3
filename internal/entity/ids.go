package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// FolderId identifies a folder. The zero value is not a valid id.
type FolderId struct {
	uuid uuid.UUID
}

func NewFolderId() FolderId {
	return FolderId{uuid: uuid.New()}
}

func ParseFolderId(s string) (FolderId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return FolderId{}, fmt.Errorf("invalid folder id: %w", err)
	}
	return FolderId{uuid: id}, nil
}

func (f FolderId) UUID() uuid.UUID { return f.uuid }
func (f FolderId) String() string  { return f.uuid.String() }
func (f FolderId) IsZero() bool    { return f.uuid == uuid.Nil }

func (f FolderId) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.uuid.String())
}

func (f *FolderId) UnmarshalJSON(data []byte) error {
	return unmarshalUUID(data, &f.uuid)
}

func (f FolderId) Value() (driver.Value, error) {
	if f.IsZero() {
		return nil, nil
	}
	return f.uuid.String(), nil
}

func (f *FolderId) Scan(value any) error {
	return scanUUID(value, &f.uuid)
}

func (FolderId) GormDataType() string { return "text" }

// NoteId identifies a note.
type NoteId struct {
	uuid uuid.UUID
}

func NewNoteId() NoteId {
	return NoteId{uuid: uuid.New()}
}

func ParseNoteId(s string) (NoteId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NoteId{}, fmt.Errorf("invalid note id: %w", err)
	}
	return NoteId{uuid: id}, nil
}

func (n NoteId) UUID() uuid.UUID { return n.uuid }
func (n NoteId) String() string  { return n.uuid.String() }
func (n NoteId) IsZero() bool    { return n.uuid == uuid.Nil }

func (n NoteId) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.uuid.String())
}

func (n *NoteId) UnmarshalJSON(data []byte) error {
	return unmarshalUUID(data, &n.uuid)
}

func (n NoteId) Value() (driver.Value, error) {
	if n.IsZero() {
		return nil, nil
	}
	return n.uuid.String(), nil
}

func (n *NoteId) Scan(value any) error {
	return scanUUID(value, &n.uuid)
}

func (NoteId) GormDataType() string { return "text" }

// AttachmentId identifies an attachment.
type AttachmentId struct {
	uuid uuid.UUID
}

func NewAttachmentId() AttachmentId {
	return AttachmentId{uuid: uuid.New()}
}

func ParseAttachmentId(s string) (AttachmentId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AttachmentId{}, fmt.Errorf("invalid attachment id: %w", err)
	}
	return AttachmentId{uuid: id}, nil
}

func (a AttachmentId) UUID() uuid.UUID { return a.uuid }
func (a AttachmentId) String() string  { return a.uuid.String() }
func (a AttachmentId) IsZero() bool    { return a.uuid == uuid.Nil }

func (a AttachmentId) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.uuid.String())
}

func (a *AttachmentId) UnmarshalJSON(data []byte) error {
	return unmarshalUUID(data, &a.uuid)
}

func (a AttachmentId) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	return a.uuid.String(), nil
}

func (a *AttachmentId) Scan(value any) error {
	return scanUUID(value, &a.uuid)
}

func (AttachmentId) GormDataType() string { return "text" }

// EventId identifies a calendar event.
type EventId struct {
	uuid uuid.UUID
}

func NewEventId() EventId {
	return EventId{uuid: uuid.New()}
}

func ParseEventId(s string) (EventId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EventId{}, fmt.Errorf("invalid event id: %w", err)
	}
	return EventId{uuid: id}, nil
}

func (e EventId) UUID() uuid.UUID { return e.uuid }
func (e EventId) String() string  { return e.uuid.String() }
func (e EventId) IsZero() bool    { return e.uuid == uuid.Nil }

func (e EventId) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.uuid.String())
}

func (e *EventId) UnmarshalJSON(data []byte) error {
	return unmarshalUUID(data, &e.uuid)
}

func (e EventId) Value() (driver.Value, error) {
	if e.IsZero() {
		return nil, nil
	}
	return e.uuid.String(), nil
}

func (e *EventId) Scan(value any) error {
	return scanUUID(value, &e.uuid)
}

func (EventId) GormDataType() string { return "text" }

func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan type %T into an id", value)
	}
	return nil
}

func unmarshalUUID(data []byte, target *uuid.UUID) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = id
	return nil
}
