package entity

import (
	"time"

	"github.com/MatheusOtenio/Pink-Note/pkg/blobstore"
)

type Attachment struct {
	Id           AttachmentId  `gorm:"type:text;primaryKey"`
	NoteId       NoteId        `gorm:"type:text;not null;index"`
	OriginalName string        `gorm:"not null"`
	StoredRef    blobstore.Ref `gorm:"not null"`
	FileType     string
	ContentType  string
	SizeBytes    int64
	CreatedAt    time.Time
}

func (Attachment) TableName() string { return "attachments" }
