package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MatheusOtenio/Pink-Note/internal/constant"
	"github.com/MatheusOtenio/Pink-Note/internal/dto"
	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/repository"
	"github.com/MatheusOtenio/Pink-Note/pkg/blobstore"
)

// memBlobStore keeps blobs in memory and can be told to fail, standing in
// for a full disk or an unreachable bucket.
type memBlobStore struct {
	mu         sync.Mutex
	objects    map[blobstore.Ref][]byte
	saves      int
	failSave   bool
	failDelete bool
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: make(map[blobstore.Ref][]byte)}
}

func (m *memBlobStore) Save(ctx context.Context, content io.Reader, suggestedName string) (blobstore.Ref, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSave {
		return "", errors.New("blob store refused the write")
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	m.saves++
	ref := blobstore.Ref(fmt.Sprintf("mem/%d", m.saves))
	m.objects[ref] = data
	return ref, nil
}

func (m *memBlobStore) Open(ctx context.Context, ref blobstore.Ref) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[ref]
	if !ok {
		return nil, fmt.Errorf("blob %s does not exist", ref)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBlobStore) Delete(ctx context.Context, ref blobstore.Ref) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failDelete {
		return errors.New("blob store refused the delete")
	}
	delete(m.objects, ref)
	return nil
}

func (m *memBlobStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type testEnv struct {
	db          *gorm.DB
	blobs       *memBlobStore
	folderRepo  repository.IFolderRepository
	noteRepo    repository.INoteRepository
	attachRepo  repository.IAttachmentRepository
	folders     IFolderService
	notes       INoteService
	attachments IAttachmentService
	events      IEventService
	changes     IChangeFeedService
	publisher   IPublisherService
}

func newTestEnv(t *testing.T) *testEnv {
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

	ctx := context.Background()
	require.NoError(t, repository.Migrate(db))
	require.NoError(t, repository.Seed(ctx, db))

	folderRepo := repository.NewFolderRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	attachRepo := repository.NewAttachmentRepository(db)
	eventRepo := repository.NewEventRepository(db)

	blobs := newMemBlobStore()
	log := zerolog.Nop()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := NewPublisherService(constant.DataChangedTopicName, pubSub)

	return &testEnv{
		db:          db,
		blobs:       blobs,
		folderRepo:  folderRepo,
		noteRepo:    noteRepo,
		attachRepo:  attachRepo,
		folders:     NewFolderService(folderRepo, noteRepo, attachRepo, blobs, publisher, log, db),
		notes:       NewNoteService(noteRepo, folderRepo, attachRepo, blobs, publisher, log, db),
		attachments: NewAttachmentService(noteRepo, attachRepo, blobs, publisher, log, db),
		events:      NewEventService(eventRepo, publisher, log),
		changes:     NewChangeFeedService(pubSub, constant.DataChangedTopicName, log),
		publisher:   publisher,
	}
}

func (e *testEnv) defaultFolder(t *testing.T) *entity.Folder {
	t.Helper()
	def, err := e.folderRepo.GetDefault(context.Background())
	require.NoError(t, err)
	return def
}

func (e *testEnv) mustCreateFolder(t *testing.T, name string, parentId *entity.FolderId) entity.FolderId {
	t.Helper()
	res, err := e.folders.Create(context.Background(), &dto.CreateFolderRequest{Name: name, ParentId: parentId})
	require.NoError(t, err)
	return res.Id
}

func (e *testEnv) mustCreateNote(t *testing.T, title, content string, folderId entity.FolderId) entity.NoteId {
	t.Helper()
	res, err := e.notes.Create(context.Background(), &dto.CreateNoteRequest{Title: title, Content: content, FolderId: folderId})
	require.NoError(t, err)
	return res.Id
}

func (e *testEnv) mustAddAttachment(t *testing.T, noteId entity.NoteId, fileName, content string) entity.AttachmentId {
	t.Helper()
	res, err := e.attachments.Add(
		context.Background(),
		&dto.AddAttachmentRequest{NoteId: noteId, FileName: fileName},
		strings.NewReader(content),
	)
	require.NoError(t, err)
	return res.Id
}
