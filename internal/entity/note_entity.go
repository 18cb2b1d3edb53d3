package entity

import (
	"time"
)

type Note struct {
	Id         NoteId `gorm:"type:text;primaryKey"`
	Title      string `gorm:"not null"`
	Content    string
	FolderId   FolderId `gorm:"type:text;not null;index"`
	CreatedAt  time.Time
	ModifiedAt time.Time `gorm:"index"`
}

func (Note) TableName() string { return "notes" }
