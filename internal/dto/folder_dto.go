package dto

import (
	"time"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
)

type CreateFolderRequest struct {
	Name     string           `json:"name" validate:"required"`
	ParentId *entity.FolderId `json:"parent_id"`
}

type CreateFolderResponse struct {
	Id entity.FolderId `json:"id"`
}

type RenameFolderRequest struct {
	Id   entity.FolderId `json:"id" validate:"required"`
	Name string          `json:"name" validate:"required"`
}

type RenameFolderResponse struct {
	Id entity.FolderId `json:"id"`
}

type MoveFolderRequest struct {
	Id       entity.FolderId  `json:"id" validate:"required"`
	ParentId *entity.FolderId `json:"parent_id"`
}

type MoveFolderResponse struct {
	Id entity.FolderId `json:"id"`
}

type DeleteFolderRequest struct {
	Id     entity.FolderId     `json:"id" validate:"required"`
	Policy entity.DeletePolicy `json:"policy" validate:"required,oneof=cascade reject-if-non-empty"`
}

type ShowFolderResponse struct {
	Id        entity.FolderId  `json:"id"`
	Name      string           `json:"name"`
	ParentId  *entity.FolderId `json:"parent_id"`
	Path      string           `json:"path"`
	IsDefault bool             `json:"is_default"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at"`
}

// FolderTreeResponse is one row of the depth-annotated folder listing used
// by tree widgets.
type FolderTreeResponse struct {
	Id        entity.FolderId  `json:"id"`
	Name      string           `json:"name"`
	ParentId  *entity.FolderId `json:"parent_id"`
	Path      string           `json:"path"`
	Depth     int              `json:"depth"`
	NoteCount int64            `json:"note_count"`
}
