package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MatheusOtenio/Pink-Note/internal/constant"
	"github.com/MatheusOtenio/Pink-Note/internal/entity"
)

// Migrate creates or updates the schema for all persisted entities.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Folder{},
		&entity.Note{},
		&entity.Attachment{},
		&entity.Event{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Seed inserts the default folder and its welcome note into an empty
// database. Running it again is a no-op.
func Seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.Folder{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count folders: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	folder := entity.Folder{
		Id:        entity.NewFolderId(),
		Name:      constant.DefaultFolderName,
		Path:      "/" + constant.DefaultFolderName,
		IsDefault: true,
		CreatedAt: now,
	}
	if err := db.WithContext(ctx).Create(&folder).Error; err != nil {
		return fmt.Errorf("seed default folder: %w", err)
	}

	note := entity.Note{
		Id:         entity.NewNoteId(),
		Title:      constant.WelcomeNoteTitle,
		Content:    constant.WelcomeNoteContent,
		FolderId:   folder.Id,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := db.WithContext(ctx).Create(&note).Error; err != nil {
		return fmt.Errorf("seed welcome note: %w", err)
	}

	return nil
}
