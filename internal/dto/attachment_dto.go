package dto

import (
	"time"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
)

type AddAttachmentRequest struct {
	NoteId   entity.NoteId `json:"note_id" validate:"required"`
	FileName string        `json:"file_name" validate:"required"`
}

type AddAttachmentResponse struct {
	Id       entity.AttachmentId `json:"id"`
	FileName string              `json:"file_name"`
	Kind     string              `json:"kind"`
}

type ShowAttachmentResponse struct {
	Id          entity.AttachmentId `json:"id"`
	NoteId      entity.NoteId       `json:"note_id"`
	FileName    string              `json:"file_name"`
	FileType    string              `json:"file_type"`
	Kind        string              `json:"kind"`
	ContentType string              `json:"content_type"`
	SizeBytes   int64               `json:"size_bytes"`
	CreatedAt   time.Time           `json:"created_at"`
}
