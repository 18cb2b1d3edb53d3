package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/MatheusOtenio/Pink-Note/internal/constant"
	"github.com/MatheusOtenio/Pink-Note/internal/dto"
	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
	"github.com/MatheusOtenio/Pink-Note/internal/repository"
	"github.com/MatheusOtenio/Pink-Note/pkg/blobstore"
)

type IAttachmentService interface {
	Add(ctx context.Context, req *dto.AddAttachmentRequest, content io.Reader) (*dto.AddAttachmentResponse, error)
	Show(ctx context.Context, id entity.AttachmentId) (*dto.ShowAttachmentResponse, error)
	ListForNote(ctx context.Context, noteId entity.NoteId) ([]*dto.ShowAttachmentResponse, error)
	Open(ctx context.Context, id entity.AttachmentId) (io.ReadCloser, error)
	Remove(ctx context.Context, id entity.AttachmentId) error
}

type attachmentService struct {
	noteRepository       repository.INoteRepository
	attachmentRepository repository.IAttachmentRepository
	blobs                blobstore.Store
	publisherService     IPublisherService
	log                  zerolog.Logger
	db                   *gorm.DB
}

func NewAttachmentService(
	noteRepository repository.INoteRepository,
	attachmentRepository repository.IAttachmentRepository,
	blobs blobstore.Store,
	publisherService IPublisherService,
	log zerolog.Logger,
	db *gorm.DB,
) IAttachmentService {
	return &attachmentService{
		noteRepository:       noteRepository,
		attachmentRepository: attachmentRepository,
		blobs:                blobs,
		publisherService:     publisherService,
		log:                  log,
		db:                   db,
	}
}

func (s *attachmentService) Add(ctx context.Context, req *dto.AddAttachmentRequest, content io.Reader) (*dto.AddAttachmentResponse, error) {
	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepository.GetById(ctx, req.NoteId)
	if err != nil {
		return nil, err
	}

	contentType, replay, err := blobstore.SniffContentType(content)
	if err != nil {
		return nil, fmt.Errorf("read attachment content: %v: %w", err, apperrors.ErrStorage)
	}

	counting := &countingReader{r: replay}
	suggested := fmt.Sprintf("note_%s/%s", note.Id, req.FileName)

	ref, err := s.blobs.Save(ctx, counting, suggested)
	if err != nil {
		return nil, fmt.Errorf("store attachment bytes: %v: %w", err, apperrors.ErrStorage)
	}

	attachment := entity.Attachment{
		Id:           entity.NewAttachmentId(),
		NoteId:       note.Id,
		OriginalName: req.FileName,
		StoredRef:    ref,
		FileType:     strings.TrimPrefix(strings.ToLower(filepath.Ext(req.FileName)), "."),
		ContentType:  contentType,
		SizeBytes:    counting.n,
		CreatedAt:    time.Now(),
	}

	err = s.attachmentRepository.Create(ctx, &attachment)
	if err != nil {
		s.log.Error().Err(err).Str("ref", ref.String()).Msg("save attachment metadata")

		// The bytes are already stored; remove them so nothing leaks.
		deleteErr := s.blobs.Delete(ctx, ref)
		if deleteErr != nil {
			s.log.Error().Err(deleteErr).Str("ref", ref.String()).Msg("remove orphaned attachment bytes")
		}

		return nil, fmt.Errorf("save attachment metadata: %v: %w", err, apperrors.ErrStorage)
	}

	publishChange(ctx, s.log, s.publisherService, dto.ChangeEntityAttachment, dto.ChangeActionCreated, attachment.Id.String())

	return &dto.AddAttachmentResponse{
		Id:       attachment.Id,
		FileName: attachment.OriginalName,
		Kind:     constant.FileKindForName(attachment.OriginalName),
	}, nil
}

func (s *attachmentService) Show(ctx context.Context, idParam entity.AttachmentId) (*dto.ShowAttachmentResponse, error) {
	attachment, err := s.attachmentRepository.GetById(ctx, idParam)
	if err != nil {
		return nil, err
	}

	return showAttachmentResponse(attachment), nil
}

func (s *attachmentService) ListForNote(ctx context.Context, noteId entity.NoteId) ([]*dto.ShowAttachmentResponse, error) {
	note, err := s.noteRepository.GetById(ctx, noteId)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepository.GetByNoteId(ctx, note.Id)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowAttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		result = append(result, showAttachmentResponse(attachment))
	}

	return result, nil
}

func (s *attachmentService) Open(ctx context.Context, idParam entity.AttachmentId) (io.ReadCloser, error) {
	attachment, err := s.attachmentRepository.GetById(ctx, idParam)
	if err != nil {
		return nil, err
	}

	rc, err := s.blobs.Open(ctx, attachment.StoredRef)
	if err != nil {
		return nil, fmt.Errorf("open stored bytes for attachment %s: %v: %w", attachment.Id, err, apperrors.ErrStorage)
	}

	return rc, nil
}

func (s *attachmentService) Remove(ctx context.Context, idParam entity.AttachmentId) error {
	attachment, err := s.attachmentRepository.GetById(ctx, idParam)
	if err != nil {
		return err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer tx.Rollback()

	attachmentRepo := s.attachmentRepository.UsingTx(ctx, tx)

	err = attachmentRepo.DeleteById(ctx, attachment.Id)
	if err != nil {
		return err
	}

	// A failed byte delete rolls the metadata back, so the row never points
	// at bytes that are gone and the bytes never outlive the row.
	err = s.blobs.Delete(ctx, attachment.StoredRef)
	if err != nil {
		return fmt.Errorf("delete stored bytes for attachment %s: %v: %w", attachment.Id, err, apperrors.ErrStorage)
	}

	err = tx.Commit().Error
	if err != nil {
		return fmt.Errorf("commit attachment remove: %w", apperrors.ErrStorage)
	}

	publishChange(ctx, s.log, s.publisherService, dto.ChangeEntityAttachment, dto.ChangeActionDeleted, attachment.Id.String())

	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func showAttachmentResponse(attachment *entity.Attachment) *dto.ShowAttachmentResponse {
	return &dto.ShowAttachmentResponse{
		Id:          attachment.Id,
		NoteId:      attachment.NoteId,
		FileName:    attachment.OriginalName,
		FileType:    attachment.FileType,
		Kind:        constant.FileKindForName(attachment.OriginalName),
		ContentType: attachment.ContentType,
		SizeBytes:   attachment.SizeBytes,
		CreatedAt:   attachment.CreatedAt,
	}
}
