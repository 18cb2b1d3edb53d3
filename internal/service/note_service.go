package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/MatheusOtenio/Pink-Note/internal/dto"
	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
	"github.com/MatheusOtenio/Pink-Note/internal/repository"
	"github.com/MatheusOtenio/Pink-Note/pkg/blobstore"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, id entity.NoteId) (*dto.ShowNoteResponse, error)
	List(ctx context.Context, folderId *entity.FolderId) ([]*dto.ListNoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Move(ctx context.Context, req *dto.MoveNoteRequest) (*dto.MoveNoteResponse, error)
	Delete(ctx context.Context, idParam entity.NoteId) error
	Search(ctx context.Context, req *dto.SearchNotesRequest) ([]*dto.ListNoteResponse, error)
}

type noteService struct {
	noteRepository       repository.INoteRepository
	folderRepository     repository.IFolderRepository
	attachmentRepository repository.IAttachmentRepository
	blobs                blobstore.Store
	publisherService     IPublisherService
	log                  zerolog.Logger
	db                   *gorm.DB
}

func NewNoteService(
	noteRepository repository.INoteRepository,
	folderRepository repository.IFolderRepository,
	attachmentRepository repository.IAttachmentRepository,
	blobs blobstore.Store,
	publisherService IPublisherService,
	log zerolog.Logger,
	db *gorm.DB,
) INoteService {
	return &noteService{
		noteRepository:       noteRepository,
		folderRepository:     folderRepository,
		attachmentRepository: attachmentRepository,
		blobs:                blobs,
		publisherService:     publisherService,
		log:                  log,
		db:                   db,
	}
}

func (c *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {

	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("note title must not be blank: %w", apperrors.ErrValidation)
	}

	folderId := req.FolderId
	if folderId.IsZero() {
		def, err := c.folderRepository.GetDefault(ctx)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("default folder is missing: %w", apperrors.ErrIntegrity)
			}
			return nil, err
		}
		folderId = def.Id
	} else {
		_, err := c.folderRepository.GetById(ctx, folderId)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("folder %s does not exist: %w", folderId, apperrors.ErrValidation)
			}
			return nil, err
		}
	}

	now := time.Now()
	note := entity.Note{
		Id:         entity.NewNoteId(),
		Title:      title,
		Content:    req.Content,
		FolderId:   folderId,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	err = c.noteRepository.Create(ctx, &note)
	if err != nil {
		return nil, err
	}

	publishChange(ctx, c.log, c.publisherService, dto.ChangeEntityNote, dto.ChangeActionCreated, note.Id.String())

	return &dto.CreateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) Show(ctx context.Context, idParam entity.NoteId) (*dto.ShowNoteResponse, error) {

	note, err := c.noteRepository.GetById(ctx, idParam)
	if err != nil {
		return nil, err
	}

	attachments, err := c.attachmentRepository.GetByNoteId(ctx, note.Id)
	if err != nil {
		return nil, err
	}

	attachmentIds := make([]entity.AttachmentId, 0, len(attachments))
	for _, attachment := range attachments {
		attachmentIds = append(attachmentIds, attachment.Id)
	}

	res := dto.ShowNoteResponse{
		Id:            note.Id,
		Title:         note.Title,
		Content:       note.Content,
		FolderId:      note.FolderId,
		AttachmentIds: attachmentIds,
		CreatedAt:     note.CreatedAt,
		ModifiedAt:    note.ModifiedAt,
	}

	return &res, nil
}

func (c *noteService) List(ctx context.Context, folderId *entity.FolderId) ([]*dto.ListNoteResponse, error) {

	var notes []*entity.Note
	var err error

	if folderId == nil {
		notes, err = c.noteRepository.GetAll(ctx)
	} else {
		_, err = c.folderRepository.GetById(ctx, *folderId)
		if err != nil {
			return nil, err
		}
		notes, err = c.noteRepository.GetByFolderId(ctx, *folderId)
	}
	if err != nil {
		return nil, err
	}

	return listNoteResponses(notes), nil
}

func (c *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {

	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	note, err := c.noteRepository.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("note title must not be blank: %w", apperrors.ErrValidation)
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	note.ModifiedAt = time.Now()

	err = c.noteRepository.Update(ctx, note)
	if err != nil {
		return nil, err
	}

	publishChange(ctx, c.log, c.publisherService, dto.ChangeEntityNote, dto.ChangeActionUpdated, note.Id.String())

	return &dto.UpdateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) Move(ctx context.Context, req *dto.MoveNoteRequest) (*dto.MoveNoteResponse, error) {

	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	note, err := c.noteRepository.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if note.FolderId == req.FolderId {
		return &dto.MoveNoteResponse{Id: note.Id}, nil
	}

	_, err = c.folderRepository.GetById(ctx, req.FolderId)
	if err != nil {
		return nil, err
	}

	note.FolderId = req.FolderId
	note.ModifiedAt = time.Now()

	err = c.noteRepository.Update(ctx, note)
	if err != nil {
		return nil, err
	}

	publishChange(ctx, c.log, c.publisherService, dto.ChangeEntityNote, dto.ChangeActionMoved, note.Id.String())

	return &dto.MoveNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) Delete(ctx context.Context, idParam entity.NoteId) error {

	note, err := c.noteRepository.GetById(ctx, idParam)
	if err != nil {
		return err
	}

	attachments, err := c.attachmentRepository.GetByNoteId(ctx, note.Id)
	if err != nil {
		return err
	}

	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer tx.Rollback()

	noteRepo := c.noteRepository.UsingTx(ctx, tx)
	attachmentRepo := c.attachmentRepository.UsingTx(ctx, tx)

	err = attachmentRepo.DeleteByNoteIds(ctx, []entity.NoteId{note.Id})
	if err != nil {
		return err
	}

	err = noteRepo.DeleteById(ctx, note.Id)
	if err != nil {
		return err
	}

	for _, attachment := range attachments {
		err = c.blobs.Delete(ctx, attachment.StoredRef)
		if err != nil {
			return fmt.Errorf("delete stored bytes for attachment %s: %v: %w", attachment.Id, err, apperrors.ErrStorage)
		}
	}

	err = tx.Commit().Error
	if err != nil {
		return fmt.Errorf("commit note delete: %w", apperrors.ErrStorage)
	}

	publishChange(ctx, c.log, c.publisherService, dto.ChangeEntityNote, dto.ChangeActionDeleted, note.Id.String())

	return nil
}

func (c *noteService) Search(ctx context.Context, req *dto.SearchNotesRequest) ([]*dto.ListNoteResponse, error) {

	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	// A blank query matches nothing rather than everything.
	if strings.TrimSpace(req.Query) == "" {
		return make([]*dto.ListNoteResponse, 0), nil
	}

	criteria := entity.NewSearchCriteria(req.Query)
	criteria.CaseSensitive = req.CaseSensitive
	if req.IncludeTitle != nil {
		criteria.IncludeTitle = *req.IncludeTitle
	}
	if req.IncludeContent != nil {
		criteria.IncludeContent = *req.IncludeContent
	}

	if req.FolderId != nil {
		folder, err := c.folderRepository.GetById(ctx, *req.FolderId)
		if err != nil {
			return nil, err
		}

		subtree, err := c.folderRepository.GetSubtree(ctx, folder.Path)
		if err != nil {
			return nil, err
		}
		for _, f := range subtree {
			criteria.FolderIds = append(criteria.FolderIds, f.Id)
		}
	}

	notes, err := c.noteRepository.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	return listNoteResponses(notes), nil
}

func listNoteResponses(notes []*entity.Note) []*dto.ListNoteResponse {
	result := make([]*dto.ListNoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, &dto.ListNoteResponse{
			Id:         note.Id,
			Title:      note.Title,
			Content:    note.Content,
			FolderId:   note.FolderId,
			CreatedAt:  note.CreatedAt,
			ModifiedAt: note.ModifiedAt,
		})
	}
	return result
}
