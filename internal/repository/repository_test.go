package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/pkg/blobstore"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func newTestFolder(name string, parent *entity.Folder) *entity.Folder {
	path := "/" + name
	var parentId *entity.FolderId
	if parent != nil {
		path = parent.Path + "/" + name
		parentId = &parent.Id
	}
	return &entity.Folder{
		Id:        entity.NewFolderId(),
		Name:      name,
		ParentId:  parentId,
		Path:      path,
		CreatedAt: time.Now(),
	}
}

func mustCreateFolder(t *testing.T, repo IFolderRepository, name string, parent *entity.Folder) *entity.Folder {
	t.Helper()
	folder := newTestFolder(name, parent)
	require.NoError(t, repo.Create(context.Background(), folder))
	return folder
}

func mustCreateNote(t *testing.T, repo INoteRepository, folderId entity.FolderId, title, content string, at time.Time) *entity.Note {
	t.Helper()
	note := &entity.Note{
		Id:         entity.NewNoteId(),
		Title:      title,
		Content:    content,
		FolderId:   folderId,
		CreatedAt:  at,
		ModifiedAt: at,
	}
	require.NoError(t, repo.Create(context.Background(), note))
	return note
}

func mustCreateEvent(t *testing.T, repo IEventRepository, date entity.DateKey, title string, at time.Time) *entity.Event {
	t.Helper()
	event := &entity.Event{
		Id:        entity.NewEventId(),
		Date:      date,
		Title:     title,
		CreatedAt: at,
	}
	require.NoError(t, repo.Create(context.Background(), event))
	return event
}

func mustCreateAttachment(t *testing.T, repo IAttachmentRepository, noteId entity.NoteId, name string, at time.Time) *entity.Attachment {
	t.Helper()
	attachment := &entity.Attachment{
		Id:           entity.NewAttachmentId(),
		NoteId:       noteId,
		OriginalName: name,
		StoredRef:    blobstore.Ref("blobs/" + name),
		FileType:     "txt",
		ContentType:  "text/plain; charset=utf-8",
		SizeBytes:    3,
		CreatedAt:    at,
	}
	require.NoError(t, repo.Create(context.Background(), attachment))
	return attachment
}
