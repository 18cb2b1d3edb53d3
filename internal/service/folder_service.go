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

type IFolderService interface {
	Create(ctx context.Context, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error)
	Show(ctx context.Context, id entity.FolderId) (*dto.ShowFolderResponse, error)
	GetChildren(ctx context.Context, parentId *entity.FolderId) ([]*dto.ShowFolderResponse, error)
	GetTree(ctx context.Context) ([]*dto.FolderTreeResponse, error)
	GetPath(ctx context.Context, id entity.FolderId) ([]*dto.ShowFolderResponse, error)
	Rename(ctx context.Context, req *dto.RenameFolderRequest) (*dto.RenameFolderResponse, error)
	Move(ctx context.Context, req *dto.MoveFolderRequest) (*dto.MoveFolderResponse, error)
	Delete(ctx context.Context, req *dto.DeleteFolderRequest) error
	NoteCount(ctx context.Context, id entity.FolderId) (int64, error)
}

type folderService struct {
	folderRepository     repository.IFolderRepository
	noteRepository       repository.INoteRepository
	attachmentRepository repository.IAttachmentRepository
	blobs                blobstore.Store
	publisherService     IPublisherService
	log                  zerolog.Logger

	db *gorm.DB
}

func NewFolderService(
	folderRepository repository.IFolderRepository,
	noteRepository repository.INoteRepository,
	attachmentRepository repository.IAttachmentRepository,
	blobs blobstore.Store,
	publisherService IPublisherService,
	log zerolog.Logger,
	db *gorm.DB) IFolderService {
	return &folderService{
		folderRepository:     folderRepository,
		noteRepository:       noteRepository,
		attachmentRepository: attachmentRepository,
		blobs:                blobs,
		publisherService:     publisherService,
		log:                  log,
		db:                   db,
	}
}

func (c *folderService) Create(ctx context.Context, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error) {

	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("folder name must not be blank: %w", apperrors.ErrValidation)
	}

	basePath := ""
	if req.ParentId != nil {
		parent, err := c.folderRepository.GetById(ctx, *req.ParentId)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("parent folder %s does not exist: %w", req.ParentId, apperrors.ErrValidation)
			}
			return nil, err
		}
		basePath = parent.Path
	}

	taken, err := c.folderRepository.CountSiblingsNamed(ctx, req.ParentId, name, entity.FolderId{})
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fmt.Errorf("a folder named %q already exists here: %w", name, apperrors.ErrConflict)
	}

	folder := entity.Folder{
		Id:        entity.NewFolderId(),
		Name:      name,
		ParentId:  req.ParentId,
		Path:      basePath + "/" + name,
		CreatedAt: time.Now(),
	}

	err = c.folderRepository.Create(ctx, &folder)
	if err != nil {
		return nil, err
	}

	publishChange(ctx, c.log, c.publisherService, dto.ChangeEntityFolder, dto.ChangeActionCreated, folder.Id.String())

	return &dto.CreateFolderResponse{
		Id: folder.Id,
	}, nil
}

func (c *folderService) Show(ctx context.Context, idParam entity.FolderId) (*dto.ShowFolderResponse, error) {

	folder, err := c.folderRepository.GetById(ctx, idParam)
	if err != nil {
		return nil, err
	}

	return showFolderResponse(folder), nil
}

func (c *folderService) GetChildren(ctx context.Context, parentId *entity.FolderId) ([]*dto.ShowFolderResponse, error) {

	if parentId != nil {
		_, err := c.folderRepository.GetById(ctx, *parentId)
		if err != nil {
			return nil, err
		}
	}

	folders, err := c.folderRepository.GetChildren(ctx, parentId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowFolderResponse, 0, len(folders))
	for _, folder := range folders {
		result = append(result, showFolderResponse(folder))
	}

	return result, nil
}

func (c *folderService) GetTree(ctx context.Context) ([]*dto.FolderTreeResponse, error) {

	folders, err := c.folderRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := c.noteRepository.CountGroupedByFolder(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FolderTreeResponse, 0, len(folders))
	for _, folder := range folders {
		result = append(result, &dto.FolderTreeResponse{
			Id:        folder.Id,
			Name:      folder.Name,
			ParentId:  folder.ParentId,
			Path:      folder.Path,
			Depth:     strings.Count(folder.Path, "/") - 1,
			NoteCount: counts[folder.Id],
		})
	}

	return result, nil
}

func (c *folderService) GetPath(ctx context.Context, idParam entity.FolderId) ([]*dto.ShowFolderResponse, error) {

	arena, err := c.loadArena(ctx)
	if err != nil {
		return nil, err
	}

	folder, ok := arena[idParam]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	result := make([]*dto.ShowFolderResponse, 0)
	visited := make(map[entity.FolderId]bool)
	for {
		if visited[folder.Id] {
			return nil, fmt.Errorf("folder tree contains a cycle at %s: %w", folder.Id, apperrors.ErrIntegrity)
		}
		visited[folder.Id] = true

		result = append([]*dto.ShowFolderResponse{showFolderResponse(folder)}, result...)

		if folder.ParentId == nil {
			return result, nil
		}

		parent, ok := arena[*folder.ParentId]
		if !ok {
			return nil, fmt.Errorf("folder %s references a missing parent: %w", folder.Id, apperrors.ErrIntegrity)
		}
		folder = parent
	}
}

func (c *folderService) Rename(ctx context.Context, req *dto.RenameFolderRequest) (*dto.RenameFolderResponse, error) {

	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("folder name must not be blank: %w", apperrors.ErrValidation)
	}

	folder, err := c.folderRepository.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if folder.IsDefault {
		return nil, fmt.Errorf("the default folder cannot be renamed: %w", apperrors.ErrConflict)
	}

	if name == folder.Name {
		return &dto.RenameFolderResponse{Id: folder.Id}, nil
	}

	taken, err := c.folderRepository.CountSiblingsNamed(ctx, folder.ParentId, name, folder.Id)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fmt.Errorf("a folder named %q already exists here: %w", name, apperrors.ErrConflict)
	}

	oldPath := folder.Path
	newPath := strings.TrimSuffix(folder.Path, "/"+folder.Name) + "/" + name

	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	defer tx.Rollback()

	folderRepo := c.folderRepository.UsingTx(ctx, tx)

	err = folderRepo.RewritePaths(ctx, oldPath, newPath)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder.Name = name
	folder.Path = newPath
	folder.UpdatedAt = &now

	err = folderRepo.Update(ctx, folder)
	if err != nil {
		return nil, err
	}

	err = tx.Commit().Error
	if err != nil {
		return nil, fmt.Errorf("commit folder rename: %w", apperrors.ErrStorage)
	}

	publishChange(ctx, c.log, c.publisherService, dto.ChangeEntityFolder, dto.ChangeActionUpdated, folder.Id.String())

	return &dto.RenameFolderResponse{
		Id: folder.Id,
	}, nil
}

func (c *folderService) Move(ctx context.Context, req *dto.MoveFolderRequest) (*dto.MoveFolderResponse, error) {

	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	folder, err := c.folderRepository.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if folder.IsDefault {
		return nil, fmt.Errorf("the default folder cannot be moved: %w", apperrors.ErrConflict)
	}

	sameParent := folder.ParentId == nil && req.ParentId == nil ||
		folder.ParentId != nil && req.ParentId != nil && *folder.ParentId == *req.ParentId
	if sameParent {
		return &dto.MoveFolderResponse{Id: folder.Id}, nil
	}

	basePath := ""
	if req.ParentId != nil {
		if *req.ParentId == folder.Id {
			return nil, fmt.Errorf("a folder cannot be moved into itself: %w", apperrors.ErrConflict)
		}

		parent, err := c.folderRepository.GetById(ctx, *req.ParentId)
		if err != nil {
			return nil, err
		}

		arena, err := c.loadArena(ctx)
		if err != nil {
			return nil, err
		}

		inside, err := isDescendantOf(arena, parent, folder.Id)
		if err != nil {
			return nil, err
		}
		if inside {
			return nil, fmt.Errorf("a folder cannot be moved into its own subtree: %w", apperrors.ErrConflict)
		}

		basePath = parent.Path
	}

	taken, err := c.folderRepository.CountSiblingsNamed(ctx, req.ParentId, folder.Name, folder.Id)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fmt.Errorf("a folder named %q already exists here: %w", folder.Name, apperrors.ErrConflict)
	}

	oldPath := folder.Path
	newPath := basePath + "/" + folder.Name

	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	defer tx.Rollback()

	folderRepo := c.folderRepository.UsingTx(ctx, tx)

	err = folderRepo.RewritePaths(ctx, oldPath, newPath)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder.ParentId = req.ParentId
	folder.Path = newPath
	folder.UpdatedAt = &now

	err = folderRepo.Update(ctx, folder)
	if err != nil {
		return nil, err
	}

	err = tx.Commit().Error
	if err != nil {
		return nil, fmt.Errorf("commit folder move: %w", apperrors.ErrStorage)
	}

	publishChange(ctx, c.log, c.publisherService, dto.ChangeEntityFolder, dto.ChangeActionMoved, folder.Id.String())

	return &dto.MoveFolderResponse{
		Id: folder.Id,
	}, nil
}

func (c *folderService) Delete(ctx context.Context, req *dto.DeleteFolderRequest) error {

	err := apperrors.ValidateRequest(req)
	if err != nil {
		return err
	}

	folder, err := c.folderRepository.GetById(ctx, req.Id)
	if err != nil {
		return err
	}

	if folder.IsDefault {
		return fmt.Errorf("the default folder cannot be deleted: %w", apperrors.ErrConflict)
	}

	if req.Policy == entity.RejectIfNonEmpty {
		children, err := c.folderRepository.CountChildren(ctx, folder.Id)
		if err != nil {
			return err
		}
		notes, err := c.noteRepository.CountByFolderId(ctx, folder.Id)
		if err != nil {
			return err
		}
		if children > 0 || notes > 0 {
			return fmt.Errorf("folder %q is not empty: %w", folder.Name, apperrors.ErrConflict)
		}
	}

	subtree, err := c.folderRepository.GetSubtree(ctx, folder.Path)
	if err != nil {
		return err
	}

	folderIds := make([]entity.FolderId, 0, len(subtree))
	for _, f := range subtree {
		folderIds = append(folderIds, f.Id)
	}

	notes, err := c.noteRepository.GetByFolderIds(ctx, folderIds)
	if err != nil {
		return err
	}

	noteIds := make([]entity.NoteId, 0, len(notes))
	for _, note := range notes {
		noteIds = append(noteIds, note.Id)
	}

	attachments, err := c.attachmentRepository.GetByNoteIds(ctx, noteIds)
	if err != nil {
		return err
	}

	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer tx.Rollback()

	folderRepo := c.folderRepository.UsingTx(ctx, tx)
	noteRepo := c.noteRepository.UsingTx(ctx, tx)
	attachmentRepo := c.attachmentRepository.UsingTx(ctx, tx)

	err = attachmentRepo.DeleteByNoteIds(ctx, noteIds)
	if err != nil {
		return err
	}

	err = noteRepo.DeleteByFolderIds(ctx, folderIds)
	if err != nil {
		return err
	}

	err = folderRepo.DeleteByIds(ctx, folderIds)
	if err != nil {
		return err
	}

	// Stored bytes go before commit so a failed byte delete rolls the
	// metadata back instead of leaving orphaned rows or orphaned files.
	for _, attachment := range attachments {
		err = c.blobs.Delete(ctx, attachment.StoredRef)
		if err != nil {
			return fmt.Errorf("delete stored bytes for attachment %s: %v: %w", attachment.Id, err, apperrors.ErrStorage)
		}
	}

	err = tx.Commit().Error
	if err != nil {
		return fmt.Errorf("commit folder delete: %w", apperrors.ErrStorage)
	}

	publishChange(ctx, c.log, c.publisherService, dto.ChangeEntityFolder, dto.ChangeActionDeleted, folder.Id.String())

	return nil
}

func (c *folderService) NoteCount(ctx context.Context, idParam entity.FolderId) (int64, error) {

	folder, err := c.folderRepository.GetById(ctx, idParam)
	if err != nil {
		return 0, err
	}

	return c.noteRepository.CountByFolderId(ctx, folder.Id)
}

func (c *folderService) loadArena(ctx context.Context) (map[entity.FolderId]*entity.Folder, error) {
	folders, err := c.folderRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	arena := make(map[entity.FolderId]*entity.Folder, len(folders))
	for _, folder := range folders {
		arena[folder.Id] = folder
	}
	return arena, nil
}

// isDescendantOf walks candidate's parent chain through the arena and reports
// whether it passes through rootId. The visited set guards the walk against a
// corrupted tree.
func isDescendantOf(arena map[entity.FolderId]*entity.Folder, candidate *entity.Folder, rootId entity.FolderId) (bool, error) {
	visited := make(map[entity.FolderId]bool)
	for folder := candidate; ; {
		if visited[folder.Id] {
			return false, fmt.Errorf("folder tree contains a cycle at %s: %w", folder.Id, apperrors.ErrIntegrity)
		}
		visited[folder.Id] = true

		if folder.Id == rootId {
			return true, nil
		}
		if folder.ParentId == nil {
			return false, nil
		}

		parent, ok := arena[*folder.ParentId]
		if !ok {
			return false, fmt.Errorf("folder %s references a missing parent: %w", folder.Id, apperrors.ErrIntegrity)
		}
		folder = parent
	}
}

func showFolderResponse(folder *entity.Folder) *dto.ShowFolderResponse {
	return &dto.ShowFolderResponse{
		Id:        folder.Id,
		Name:      folder.Name,
		ParentId:  folder.ParentId,
		Path:      folder.Path,
		IsDefault: folder.IsDefault,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}
}
