package repository

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
)

type IFolderRepository interface {
	UsingTx(ctx context.Context, tx *gorm.DB) IFolderRepository
	Create(ctx context.Context, folder *entity.Folder) error
	GetById(ctx context.Context, id entity.FolderId) (*entity.Folder, error)
	GetDefault(ctx context.Context) (*entity.Folder, error)
	GetAll(ctx context.Context) ([]*entity.Folder, error)
	GetChildren(ctx context.Context, parentId *entity.FolderId) ([]*entity.Folder, error)
	GetSubtree(ctx context.Context, path string) ([]*entity.Folder, error)
	CountChildren(ctx context.Context, id entity.FolderId) (int64, error)
	CountSiblingsNamed(ctx context.Context, parentId *entity.FolderId, name string, exclude entity.FolderId) (int64, error)
	Update(ctx context.Context, folder *entity.Folder) error
	RewritePaths(ctx context.Context, oldPrefix, newPrefix string) error
	DeleteByIds(ctx context.Context, ids []entity.FolderId) error
}

type folderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) IFolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) UsingTx(ctx context.Context, tx *gorm.DB) IFolderRepository {
	return &folderRepository{db: tx}
}

func (r *folderRepository) Create(ctx context.Context, folder *entity.Folder) error {
	return r.db.WithContext(ctx).Create(folder).Error
}

func (r *folderRepository) GetById(ctx context.Context, id entity.FolderId) (*entity.Folder, error) {
	var folder entity.Folder
	err := r.db.WithContext(ctx).First(&folder, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepository) GetDefault(ctx context.Context) (*entity.Folder, error) {
	var folder entity.Folder
	err := r.db.WithContext(ctx).First(&folder, "is_default = ?", true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepository) GetAll(ctx context.Context) ([]*entity.Folder, error) {
	var folders []*entity.Folder
	err := r.db.WithContext(ctx).
		Order("path ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *folderRepository) GetChildren(ctx context.Context, parentId *entity.FolderId) ([]*entity.Folder, error) {
	q := r.db.WithContext(ctx)
	if parentId == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentId)
	}

	var folders []*entity.Folder
	err := q.Order("name ASC, created_at ASC").Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// GetSubtree returns the folder at path and everything below it, parents
// before children.
func (r *folderRepository) GetSubtree(ctx context.Context, path string) ([]*entity.Folder, error) {
	var folders []*entity.Folder
	err := r.db.WithContext(ctx).
		Where("path = ? OR path LIKE ?", path, path+"/%").
		Order("path ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *folderRepository) CountChildren(ctx context.Context, id entity.FolderId) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Folder{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

// CountSiblingsNamed counts folders named name under parentId, skipping
// exclude when it is set.
func (r *folderRepository) CountSiblingsNamed(ctx context.Context, parentId *entity.FolderId, name string, exclude entity.FolderId) (int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Folder{}).Where("name = ?", name)
	if parentId == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentId)
	}
	if !exclude.IsZero() {
		q = q.Where("id <> ?", exclude)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *folderRepository) Update(ctx context.Context, folder *entity.Folder) error {
	return r.db.WithContext(ctx).Save(folder).Error
}

// RewritePaths replaces the oldPrefix of every path at or below it with
// newPrefix.
func (r *folderRepository) RewritePaths(ctx context.Context, oldPrefix, newPrefix string) error {
	return r.db.WithContext(ctx).Exec(
		"UPDATE folders SET path = ? || substr(path, ?) WHERE path = ? OR path LIKE ?",
		newPrefix,
		utf8.RuneCountInString(oldPrefix)+1,
		oldPrefix,
		oldPrefix+"/%",
	).Error
}

func (r *folderRepository) DeleteByIds(ctx context.Context, ids []entity.FolderId) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entity.Folder{}).Error
}
