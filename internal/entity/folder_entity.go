package entity

import (
	"time"
)

type Folder struct {
	Id        FolderId  `gorm:"type:text;primaryKey"`
	Name      string    `gorm:"not null"`
	ParentId  *FolderId `gorm:"type:text;index"`
	Path      string    `gorm:"not null;uniqueIndex"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (Folder) TableName() string { return "folders" }
