package dto

import (
	"time"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
	// FolderId may be left zero to file the note under the default folder.
	FolderId entity.FolderId `json:"folder_id"`
}

type CreateNoteResponse struct {
	Id entity.NoteId `json:"id"`
}

type ShowNoteResponse struct {
	Id            entity.NoteId         `json:"id"`
	Title         string                `json:"title"`
	Content       string                `json:"content"`
	FolderId      entity.FolderId       `json:"folder_id"`
	AttachmentIds []entity.AttachmentId `json:"attachment_ids"`
	CreatedAt     time.Time             `json:"created_at"`
	ModifiedAt    time.Time             `json:"modified_at"`
}

type ListNoteResponse struct {
	Id         entity.NoteId   `json:"id"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	FolderId   entity.FolderId `json:"folder_id"`
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
}

type UpdateNoteRequest struct {
	Id entity.NoteId `json:"id" validate:"required"`
	// Nil fields keep their current value.
	Title   *string `json:"title" validate:"omitempty,min=1"`
	Content *string `json:"content"`
}

type UpdateNoteResponse struct {
	Id entity.NoteId `json:"id"`
}

type MoveNoteRequest struct {
	Id       entity.NoteId   `json:"id" validate:"required"`
	FolderId entity.FolderId `json:"folder_id" validate:"required"`
}

type MoveNoteResponse struct {
	Id entity.NoteId `json:"id"`
}

type SearchNotesRequest struct {
	Query    string           `json:"query"`
	FolderId *entity.FolderId `json:"folder_id"`
	// Nil include flags default to true.
	IncludeTitle   *bool `json:"include_title"`
	IncludeContent *bool `json:"include_content"`
	CaseSensitive  bool  `json:"case_sensitive"`
}
